// Package stage defines the pipeline stage taxonomy shared by the render
// orchestrator: stage names, the error classification markers each stage tags
// its failures with, and a Run helper that wraps stage execution with uniform
// lifecycle logging.
package stage
