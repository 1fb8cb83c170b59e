// Package config normalizes and validates the per-run settings for sleeve.
//
// Settings come exclusively from command-line flags; there is no config file
// and no environment lookup. The package supplies conventional defaults,
// expands tilde shortcuts, absolutizes the source directory, and resolves
// cover/output paths relative to it so downstream code only ever sees
// sanitized absolute paths.
package config
