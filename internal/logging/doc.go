// Package logging assembles the structured slog loggers used across sleeve.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes context helpers so pipeline code automatically tags log lines with
// the run ID and the active stage. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
