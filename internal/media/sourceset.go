package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sleeve/internal/config"
	"sleeve/internal/stage"
)

// Track is one discovered audio file.
type Track struct {
	// Path is the absolute location of the file.
	Path string
	// Name is the bare filename used for ordering.
	Name string
	// Size is the file size in bytes.
	Size int64
}

// SourceSet is the validated input to a render run. Tracks are ordered by
// filename, byte-wise ascending, and that order is what the normalizer and
// concatenator preserve.
type SourceSet struct {
	Dir    string
	Cover  string
	Tracks []Track
}

// Paths returns the track paths in processing order.
func (s *SourceSet) Paths() []string {
	paths := make([]string, len(s.Tracks))
	for i, track := range s.Tracks {
		paths[i] = track.Path
	}
	return paths
}

// Discover validates the source directory, cover image, and discovery pattern
// from the settings and returns the ordered source set. Every failure is
// tagged stage.ErrConfiguration.
func Discover(settings config.Settings) (*SourceSet, error) {
	dir := settings.SourceDir
	info, err := os.Stat(dir)
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("missing input directory %s", dir), err)
	}
	if !info.IsDir() {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("input path %s is not a directory", dir), nil)
	}

	cover := settings.CoverPath()
	if _, err := os.Stat(cover); err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("missing cover image %s", cover), err)
	}

	tracks, err := matchTracks(dir, settings.Pattern)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("no audio files found in %s matching %q", dir, settings.Pattern), nil)
	}

	return &SourceSet{Dir: dir, Cover: cover, Tracks: tracks}, nil
}

// matchTracks applies the glob pattern to the directory's immediate entries.
// Subdirectories are never descended into and never match, even when their
// names fit the pattern.
func matchTracks(dir, pattern string) ([]Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("read input directory %s", dir), err)
	}

	tracks := make([]Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("invalid pattern %q", pattern), err)
		}
		if !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("stat %s", name), err)
		}
		tracks = append(tracks, Track{
			Path: filepath.Join(dir, name),
			Name: name,
			Size: info.Size(),
		})
	}

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Name < tracks[j].Name })
	return tracks, nil
}
