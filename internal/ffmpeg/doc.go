// Package ffmpeg binds sleeve to its external media-encoding collaborator.
//
// The collaborator is treated as an opaque CLI: this package owns binary
// resolution, blocking invocation with captured diagnostics, the three fixed
// argument templates (per-track transcode, stream-copy concatenation, cover
// composition), the concat-demuxer manifest format, and the encoder profile
// table embedded in the binary.
//
// Prefer the Runner interface over ad-hoc exec.Command usage so tests can
// substitute a recording executor.
package ffmpeg
