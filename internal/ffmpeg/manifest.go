package ffmpeg

import (
	"fmt"
	"os"
	"strings"
)

// WriteManifest materializes a concat-demuxer manifest listing the given
// files in order, one `file '<path>'` directive per line.
func WriteManifest(paths []string, dest string) error {
	var b strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(path))
	}
	if err := os.WriteFile(dest, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}

// escapeConcatPath escapes single quotes the way the concat demuxer expects:
// the quoted string is closed, an escaped quote emitted, and quoting reopened.
func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
