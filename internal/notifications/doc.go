// Package notifications delivers run events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic URL from
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. All callers depend only on the simple Service interface.
package notifications
