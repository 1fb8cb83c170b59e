package config

import (
	"path/filepath"
	"testing"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	s := Settings{SourceDir: dir}
	if err := s.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if s.Cover != "cover.png" {
		t.Fatalf("unexpected cover default: %q", s.Cover)
	}
	if s.Pattern != "*.wav" {
		t.Fatalf("unexpected pattern default: %q", s.Pattern)
	}
	if s.Output != "FULL-GPU.mp4" {
		t.Fatalf("unexpected output default: %q", s.Output)
	}
	if s.Profile != "nvenc" {
		t.Fatalf("unexpected profile default: %q", s.Profile)
	}
	if s.FFmpegBinary != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg default: %q", s.FFmpegBinary)
	}
}

func TestNormalizeRequiresSourceDir(t *testing.T) {
	s := Settings{}
	if err := s.Normalize(); err == nil {
		t.Fatal("expected error for empty source directory")
	}
}

func TestNormalizeAbsolutizesSourceDir(t *testing.T) {
	s := Default()
	s.SourceDir = "."
	if err := s.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !filepath.IsAbs(s.SourceDir) {
		t.Fatalf("source dir not absolute: %q", s.SourceDir)
	}
}

func TestCoverAndOutputResolveRelative(t *testing.T) {
	dir := t.TempDir()
	s := Default()
	s.SourceDir = dir
	if err := s.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if got, want := s.CoverPath(), filepath.Join(dir, "cover.png"); got != want {
		t.Fatalf("cover path %q, want %q", got, want)
	}
	if got, want := s.OutputPath(), filepath.Join(dir, "FULL-GPU.mp4"); got != want {
		t.Fatalf("output path %q, want %q", got, want)
	}
}

func TestCoverAndOutputKeepAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	s := Default()
	s.SourceDir = dir
	s.Cover = filepath.Join(other, "art.png")
	s.Output = filepath.Join(other, "album.mkv")
	if err := s.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if s.CoverPath() != filepath.Join(other, "art.png") {
		t.Fatalf("absolute cover path rewritten: %q", s.CoverPath())
	}
	if s.OutputPath() != filepath.Join(other, "album.mkv") {
		t.Fatalf("absolute output path rewritten: %q", s.OutputPath())
	}
}
