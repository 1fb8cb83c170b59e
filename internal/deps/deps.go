// Package deps reports the availability of the external collaborators a
// render run shells out to.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Status reports the availability of one external dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Check evaluates the ffmpeg binary and, when it resolves, the hardware
// encoder the default profile relies on.
func Check(ctx context.Context, ffmpegOverride string) []Status {
	binary := CheckFFmpeg(ffmpegOverride)
	statuses := []Status{binary}
	if binary.Available {
		statuses = append(statuses, CheckEncoder(ctx, binary.Command, "h264_nvenc"))
	}
	return statuses
}

// CheckFFmpeg resolves the collaborator binary, honoring an explicit override
// before falling back to PATH lookup.
func CheckFFmpeg(override string) Status {
	name := strings.TrimSpace(override)
	if name == "" {
		name = "ffmpeg"
	}
	status := Status{
		Name:        "FFmpeg",
		Command:     name,
		Description: "Media-encoding collaborator for all pipeline stages",
	}
	path, err := exec.LookPath(name)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", name)
		return status
	}
	status.Command = path
	status.Available = true
	return status
}

// CheckEncoder asks the resolved binary whether it was built with the given
// encoder. The encoder list goes to stdout; a missing entry means the build
// lacks the encoder even though the binary itself is fine.
func CheckEncoder(ctx context.Context, binary, encoder string) Status {
	status := Status{
		Name:        encoder,
		Command:     binary,
		Description: "Hardware video encoder used by the default profile",
	}
	cmd := exec.CommandContext(ctx, binary, "-hide_banner", "-encoders") //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		status.Detail = fmt.Sprintf("query encoders: %v", err)
		return status
	}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == encoder {
			status.Available = true
			return status
		}
	}
	status.Detail = fmt.Sprintf("encoder %q not present in this ffmpeg build", encoder)
	return status
}
