package stage_test

import (
	"errors"
	"strings"
	"testing"

	"sleeve/internal/stage"
)

func TestWrapRetainsMarkerAndBase(t *testing.T) {
	base := errors.New("exit status 1")
	err := stage.Wrap(stage.ErrTranscode, stage.Normalizing, "transcode 01.wav", base)
	if !errors.Is(err, stage.ErrTranscode) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"normalizing", "transcode 01.wav", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutBase(t *testing.T) {
	err := stage.Wrap(stage.ErrConfiguration, stage.Validating, "no audio files found", nil)
	if !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "no audio files found") {
		t.Fatalf("message lost: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToRender(t *testing.T) {
	err := stage.Wrap(nil, stage.Composing, "compose", errors.New("boom"))
	if !errors.Is(err, stage.ErrRender) {
		t.Fatalf("expected render fallback marker, got %v", err)
	}
}

func TestMarkersAreDistinct(t *testing.T) {
	markers := []error{stage.ErrConfiguration, stage.ErrTranscode, stage.ErrConcat, stage.ErrRender}
	for i, a := range markers {
		for j, b := range markers {
			if i != j && errors.Is(a, b) {
				t.Fatalf("markers %d and %d overlap", i, j)
			}
		}
	}
}
