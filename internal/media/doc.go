// Package media discovers and validates the source set for a render run: the
// ordered audio tracks, the cover image, and the source directory itself.
//
// Discovery is the pipeline's validation gate. It runs before any scratch
// state exists and has no side effects, so a configuration failure never
// leaves temporary artifacts behind.
package media
