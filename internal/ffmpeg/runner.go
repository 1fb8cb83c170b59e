package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts collaborator invocation for testability.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// Resolve locates the collaborator binary. An empty override falls back to
// "ffmpeg" from PATH.
func Resolve(override string) (string, error) {
	name := strings.TrimSpace(override)
	if name == "" {
		name = "ffmpeg"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locate ffmpeg binary %q: %w", name, err)
	}
	return path, nil
}

// Command runs a resolved binary as a blocking subprocess.
type Command struct {
	binary string
}

// NewCommand wraps the given binary path in a Runner.
func NewCommand(binary string) *Command {
	return &Command{binary: binary}
}

// Binary reports the wrapped binary path.
func (c *Command) Binary() string { return c.binary }

// Run blocks until the invocation exits. A non-zero exit produces a
// *CommandError carrying the full argv and the combined output, which for
// these templates holds only the collaborator's error diagnostics.
func (c *Command) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &CommandError{
			Binary: c.binary,
			Args:   append([]string{}, args...),
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

// CommandError is a failed collaborator invocation: the command line, the
// process error, and the captured diagnostic text.
type CommandError struct {
	Binary string
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Binary, strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
