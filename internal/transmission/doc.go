// Package transmission provides a minimal Transmission RPC client and a
// seed index used to skip files that are still being seeded.
package transmission
