package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"sleeve/internal/config"
	"sleeve/internal/ffmpeg"
	"sleeve/internal/logging"
	"sleeve/internal/render"
	"sleeve/internal/stage"
)

// fakeRunner records collaborator invocations and materializes each
// invocation's output file (the final argument), like ffmpeg would.
type fakeRunner struct {
	calls    [][]string
	failWhen func(args []string) error
	manifest string
}

func (f *fakeRunner) Run(_ context.Context, args []string) error {
	f.calls = append(f.calls, append([]string{}, args...))
	if f.failWhen != nil {
		if err := f.failWhen(args); err != nil {
			return err
		}
	}
	// Snapshot the concat manifest now; the scratch area is gone by the
	// time the test can look.
	if idx := slices.Index(args, "-f"); idx >= 0 && idx+1 < len(args) && args[idx+1] == "concat" {
		data, err := os.ReadFile(argAfter(args, "-i"))
		if err != nil {
			return err
		}
		f.manifest = string(data)
	}
	return os.WriteFile(args[len(args)-1], []byte("rendered"), 0o644)
}

func argAfter(args []string, flag string) string {
	if idx := slices.Index(args, flag); idx >= 0 && idx+1 < len(args) {
		return args[idx+1]
	}
	return ""
}

func albumDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func settingsFor(t *testing.T, dir string) config.Settings {
	t.Helper()
	s := config.Default()
	s.SourceDir = dir
	if err := s.Normalize(); err != nil {
		t.Fatalf("normalize settings: %v", err)
	}
	return s
}

// isolateTempDir points the platform temp area at a fresh directory so the
// tests can assert the scratch area is gone after each run.
func isolateTempDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	return tmp
}

func assertNoScratch(t *testing.T, tmp string) {
	t.Helper()
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("read temp area: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("scratch area leaked: %v", entries)
	}
}

func newPipeline(t *testing.T, settings config.Settings, runner ffmpeg.Runner) *render.Pipeline {
	t.Helper()
	p, err := render.New(settings, runner, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestPipelineSuccess(t *testing.T) {
	tmp := isolateTempDir(t)
	// Created out of order; processing must be filename-ascending.
	dir := albumDir(t, "cover.png", "b.wav", "a.wav")
	runner := &fakeRunner{}

	output, err := newPipeline(t, settingsFor(t, dir), runner).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := filepath.Join(dir, "FULL-GPU.mp4"); output != want {
		t.Fatalf("output = %q, want %q", output, want)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output artifact missing: %v", err)
	}
	assertNoScratch(t, tmp)

	if len(runner.calls) != 4 {
		t.Fatalf("expected 2 transcodes + concat + compose, got %d calls", len(runner.calls))
	}
	if got := argAfter(runner.calls[0], "-i"); !strings.HasSuffix(got, "/a.wav") {
		t.Fatalf("first transcode input = %q", got)
	}
	if got := runner.calls[0][len(runner.calls[0])-1]; !strings.HasSuffix(got, "/01.flac") {
		t.Fatalf("first intermediate = %q", got)
	}
	if got := argAfter(runner.calls[1], "-i"); !strings.HasSuffix(got, "/b.wav") {
		t.Fatalf("second transcode input = %q", got)
	}
	if got := runner.calls[1][len(runner.calls[1])-1]; !strings.HasSuffix(got, "/02.flac") {
		t.Fatalf("second intermediate = %q", got)
	}

	lines := strings.Split(strings.TrimSpace(runner.manifest), "\n")
	if len(lines) != 2 {
		t.Fatalf("manifest lines = %v", lines)
	}
	if !strings.Contains(lines[0], "01.flac") || !strings.Contains(lines[1], "02.flac") {
		t.Fatalf("manifest out of order: %v", lines)
	}

	compose := runner.calls[3]
	if got := argAfter(compose, "-c:a"); got != "aac" {
		t.Fatalf("mp4 compose audio codec = %q", got)
	}
	if !slices.Contains(compose, "-shortest") {
		t.Fatalf("compose missing -shortest: %v", compose)
	}
}

func TestPipelineValidationFailureLeavesNoScratch(t *testing.T) {
	tmp := isolateTempDir(t)
	dir := albumDir(t, "a.wav") // no cover
	runner := &fakeRunner{}

	_, err := newPipeline(t, settingsFor(t, dir), runner).Run(context.Background())
	if !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("collaborator invoked despite validation failure: %v", runner.calls)
	}
	assertNoScratch(t, tmp)
}

func TestPipelineTranscodeFailsFast(t *testing.T) {
	tmp := isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav", "b.wav", "c.wav")
	boom := errors.New("unsupported sample format")
	runner := &fakeRunner{failWhen: func(args []string) error {
		if slices.Contains(args, "-sample_fmt") {
			return boom
		}
		return nil
	}}

	_, err := newPipeline(t, settingsFor(t, dir), runner).Run(context.Background())
	if !errors.Is(err, stage.ErrTranscode) {
		t.Fatalf("expected transcode error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("underlying cause lost: %v", err)
	}
	if !strings.Contains(err.Error(), "a.wav") {
		t.Fatalf("offending path missing from error: %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected fail-fast after first transcode, got %d calls", len(runner.calls))
	}
	assertNoScratch(t, tmp)
}

func TestPipelineConcatFailure(t *testing.T) {
	tmp := isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav")
	runner := &fakeRunner{failWhen: func(args []string) error {
		if slices.Contains(args, "concat") {
			return errors.New("invalid manifest")
		}
		return nil
	}}

	_, err := newPipeline(t, settingsFor(t, dir), runner).Run(context.Background())
	if !errors.Is(err, stage.ErrConcat) {
		t.Fatalf("expected concatenation error, got %v", err)
	}
	assertNoScratch(t, tmp)
}

func TestPipelineComposeFailureLeavesNoOutput(t *testing.T) {
	tmp := isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav")
	runner := &fakeRunner{failWhen: func(args []string) error {
		if slices.Contains(args, "-loop") {
			return errors.New("encoder init failed")
		}
		return nil
	}}

	settings := settingsFor(t, dir)
	_, err := newPipeline(t, settings, runner).Run(context.Background())
	if !errors.Is(err, stage.ErrRender) {
		t.Fatalf("expected render error, got %v", err)
	}
	if _, statErr := os.Stat(settings.OutputPath()); !os.IsNotExist(statErr) {
		t.Fatalf("destination should be untouched after compose failure: %v", statErr)
	}
	assertNoScratch(t, tmp)
}

func TestPipelineMkvCopiesAudio(t *testing.T) {
	isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav")
	runner := &fakeRunner{}

	settings := settingsFor(t, dir)
	settings.Output = "album.mkv"

	output, err := newPipeline(t, settings, runner).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output != filepath.Join(dir, "album.mkv") {
		t.Fatalf("output = %q", output)
	}

	compose := runner.calls[len(runner.calls)-1]
	if got := argAfter(compose, "-c:a"); got != "copy" {
		t.Fatalf("mkv compose audio codec = %q, want copy", got)
	}
}

func TestPipelineSingleTrack(t *testing.T) {
	tmp := isolateTempDir(t)
	dir := albumDir(t, "cover.png", "take_mixdown.wav", "take_rough.wav")
	runner := &fakeRunner{}

	settings := settingsFor(t, dir)
	settings.Pattern = "*_mixdown.wav"

	if _, err := newPipeline(t, settings, runner).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(runner.calls) != 3 {
		t.Fatalf("expected transcode + concat + compose, got %d calls", len(runner.calls))
	}
	lines := strings.Split(strings.TrimSpace(runner.manifest), "\n")
	if len(lines) != 1 {
		t.Fatalf("single-entry manifest expected, got %v", lines)
	}
	assertNoScratch(t, tmp)
}

func TestPipelineOverwritesExistingOutput(t *testing.T) {
	isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav")
	runner := &fakeRunner{}
	settings := settingsFor(t, dir)

	if err := os.WriteFile(settings.OutputPath(), []byte("stale"), 0o644); err != nil {
		t.Fatalf("write stale output: %v", err)
	}
	if _, err := newPipeline(t, settings, runner).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(settings.OutputPath())
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "rendered" {
		t.Fatalf("stale output not replaced: %q", data)
	}
}

func TestPipelineRefusesConcurrentRun(t *testing.T) {
	isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav")

	held := flock.New(filepath.Join(dir, ".sleeve.lock"))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	_, runErr := newPipeline(t, settingsFor(t, dir), &fakeRunner{}).Run(context.Background())
	if !errors.Is(runErr, stage.ErrConfiguration) {
		t.Fatalf("expected configuration error for held lock, got %v", runErr)
	}
}

func TestNewRejectsUnknownProfile(t *testing.T) {
	settings := settingsFor(t, albumDir(t))
	settings.Profile = "av1"

	_, err := render.New(settings, &fakeRunner{}, logging.NewNop())
	if !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

// End-to-end through the real subprocess runner, with a shell stub standing in
// for ffmpeg.
func TestPipelineWithCommandRunner(t *testing.T) {
	tmp := isolateTempDir(t)
	dir := albumDir(t, "cover.png", "a.wav", "b.wav")

	binDir := t.TempDir()
	stub := filepath.Join(binDir, "ffmpeg")
	script := "#!/bin/sh\nfor last; do :; done\n: > \"$last\"\nexit 0\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	settings := settingsFor(t, dir)
	settings.FFmpegBinary = stub

	binary, err := ffmpeg.Resolve(settings.FFmpegBinary)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	output, err := newPipeline(t, settings, ffmpeg.NewCommand(binary)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output missing: %v", err)
	}
	assertNoScratch(t, tmp)
}
