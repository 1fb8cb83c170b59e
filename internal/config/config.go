package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultCover     = "cover.png"
	defaultPattern   = "*.wav"
	defaultOutput    = "FULL-GPU.mp4"
	defaultProfile   = "nvenc"
	defaultFFmpeg    = "ffmpeg"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Settings holds everything one render run needs. A zero value is not usable;
// obtain one via Default and let the CLI overwrite fields from flags.
type Settings struct {
	// SourceDir is the album directory containing the WAV files and cover.
	SourceDir string
	// Cover is the cover image filename, resolved against SourceDir unless absolute.
	Cover string
	// Pattern is the non-recursive glob applied to SourceDir entries.
	Pattern string
	// Output is the final container filename, resolved against SourceDir unless absolute.
	Output string
	// Profile names the encoder profile used for composition.
	Profile string
	// FFmpegBinary overrides the collaborator binary; empty means PATH lookup.
	FFmpegBinary string

	LogLevel  string
	LogFormat string
}

// Default returns Settings populated with the conventional values.
func Default() Settings {
	return Settings{
		Cover:        defaultCover,
		Pattern:      defaultPattern,
		Output:       defaultOutput,
		Profile:      defaultProfile,
		FFmpegBinary: defaultFFmpeg,
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
	}
}

// Normalize expands and absolutizes paths and fills empty fields with
// defaults. It performs no filesystem checks beyond home-directory resolution;
// existence is the validator's concern.
func (s *Settings) Normalize() error {
	source := strings.TrimSpace(s.SourceDir)
	if source == "" {
		return errors.New("source directory must be set")
	}
	expanded, err := expandPath(source)
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	s.SourceDir = expanded

	if strings.TrimSpace(s.Cover) == "" {
		s.Cover = defaultCover
	}
	if strings.TrimSpace(s.Pattern) == "" {
		s.Pattern = defaultPattern
	}
	if strings.TrimSpace(s.Output) == "" {
		s.Output = defaultOutput
	}
	if strings.TrimSpace(s.Profile) == "" {
		s.Profile = defaultProfile
	}
	if strings.TrimSpace(s.FFmpegBinary) == "" {
		s.FFmpegBinary = defaultFFmpeg
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		s.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(s.LogFormat) == "" {
		s.LogFormat = defaultLogFormat
	}
	return nil
}

// CoverPath resolves the cover image location against the source directory.
func (s *Settings) CoverPath() string {
	return resolveAgainst(s.SourceDir, s.Cover)
}

// OutputPath resolves the output artifact location against the source directory.
func (s *Settings) OutputPath() string {
	return resolveAgainst(s.SourceDir, s.Output)
}

func resolveAgainst(dir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}

func expandPath(pathValue string) (string, error) {
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
