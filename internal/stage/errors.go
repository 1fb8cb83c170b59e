package stage

import (
	"errors"
	"fmt"
	"strings"
)

// Classification markers for pipeline failures. Every stage error wraps
// exactly one of these so callers can map a failure to the stage taxonomy
// with errors.Is without parsing messages.
var (
	// ErrConfiguration covers bad or missing input paths and empty source
	// sets, detected before any side effects.
	ErrConfiguration = errors.New("configuration error")
	// ErrTranscode covers a failed per-track normalization invocation.
	ErrTranscode = errors.New("transcode error")
	// ErrConcat covers a failed stream-copy join invocation.
	ErrConcat = errors.New("concatenation error")
	// ErrRender covers a failed composition invocation.
	ErrRender = errors.New("render error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage Name, message string, err error) error {
	detail := buildDetail(stage, message)
	if marker == nil {
		marker = ErrRender
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage Name, message string) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(stage.String()); s != "" {
		parts = append(parts, s)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
