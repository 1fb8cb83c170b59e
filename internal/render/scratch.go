package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sleeve/internal/logging"
)

// scratchArea is the run-exclusive temporary directory holding normalized
// tracks, the concat manifest, the joined audio, and the staged output.
type scratchArea struct {
	dir string
}

// newScratchArea creates the directory under the platform temp area. The run
// ID keeps leftover directories attributable if removal is ever interrupted.
func newScratchArea(runID string) (*scratchArea, error) {
	dir, err := os.MkdirTemp("", fmt.Sprintf("sleeve-%s-", runID))
	if err != nil {
		return nil, fmt.Errorf("create scratch area: %w", err)
	}
	return &scratchArea{dir: dir}, nil
}

// Path resolves a name inside the scratch area.
func (s *scratchArea) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Remove deletes the scratch area. Called unconditionally via defer; removal
// problems are logged rather than surfaced because the pipeline outcome is
// already decided by the time cleanup runs.
func (s *scratchArea) Remove(logger *slog.Logger) {
	if err := os.RemoveAll(s.dir); err != nil {
		logger.Warn("scratch area removal failed",
			logging.String("scratch_dir", s.dir),
			logging.Error(err),
		)
	}
}
