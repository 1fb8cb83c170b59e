package ffmpeg

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Canonical lossless intermediate: FLAC frames holding 24-bit samples in the
// s32 container format, resampled to 48 kHz.
const (
	intermediateCodec     = "flac"
	intermediateSampleFmt = "s32"
	intermediateRate      = "48000"
)

const aacBitrate = "320k"

var commonArgs = []string{"-y", "-hide_banner", "-loglevel", "error"}

// TranscodeArgs builds the per-track normalization template: one audio input
// re-encoded to the canonical lossless intermediate, overwriting dest.
func TranscodeArgs(input, dest string) []string {
	args := append([]string{}, commonArgs...)
	return append(args,
		"-i", input,
		"-c:a", intermediateCodec,
		"-sample_fmt", intermediateSampleFmt,
		"-ar", intermediateRate,
		dest,
	)
}

// ConcatArgs builds the join template: the concat demuxer reads the ordered
// manifest and the streams are copied without re-encoding.
func ConcatArgs(manifest, dest string) []string {
	args := append([]string{}, commonArgs...)
	return append(args,
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c:a", "copy",
		dest,
	)
}

// ComposeArgs builds the composition template: the cover looped as a video
// source, the joined audio, the profile's video encoder settings, and
// container-dependent audio handling. Duration follows the audio stream
// ("shortest" against the infinite image loop); the faststart flag moves the
// index atom up front for playback before the download completes.
func ComposeArgs(cover, audio, dest string, profile Profile) []string {
	framerate := strconv.Itoa(profile.FrameRate)
	args := []string{
		"-y",
		"-loop", "1",
		"-framerate", framerate,
		"-i", cover,
		"-i", audio,
	}
	args = append(args, profile.VideoArgs()...)
	args = append(args, "-r", framerate)
	args = append(args, composeAudioArgs(dest)...)
	return append(args,
		"-shortest",
		"-movflags", "+faststart",
		dest,
	)
}

// composeAudioArgs selects the audio strategy from the output container: the
// common consumer container gets lossy AAC at a fixed high bitrate, anything
// else carries the lossless stream through untouched.
func composeAudioArgs(dest string) []string {
	if strings.EqualFold(filepath.Ext(dest), ".mp4") {
		return []string{"-c:a", "aac", "-b:a", aacBitrate}
	}
	return []string{"-c:a", "copy"}
}
