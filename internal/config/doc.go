// Package config loads, normalizes, and validates Trackarr configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SONARR_API_KEY and TRANSMISSION_PASSWORD. The Config type centralizes
// every knob the daemon and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
