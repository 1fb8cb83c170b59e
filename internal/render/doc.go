// Package render orchestrates the album-video pipeline: validate the source
// set, normalize each track to the canonical lossless intermediate,
// stream-copy them into one continuous audio file, and compose the result
// against the looped cover image.
//
// Control flows strictly forward through the stages with no retries. A run
// owns one scratch area created after validation and removed on every exit
// path, and one advisory lock on the source directory so concurrent runs
// cannot interleave. Each stage only ever creates new artifacts from prior
// ones; the final container is composed inside the scratch area and promoted
// to its destination only after the encoder exits cleanly.
package render
