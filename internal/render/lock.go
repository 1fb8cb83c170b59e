package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"sleeve/internal/logging"
	"sleeve/internal/stage"
)

const lockFileName = ".sleeve.lock"

// runLock is an advisory lock on the source directory held for the run
// duration, so two renders of the same album cannot race on the scratch
// naming inside it or on the output artifact.
type runLock struct {
	fl *flock.Flock
}

func acquireRunLock(sourceDir string) (*runLock, error) {
	fl := flock.New(filepath.Join(sourceDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("acquire run lock %s", fl.Path()), err)
	}
	if !locked {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, fmt.Sprintf("another render is already running for %s", sourceDir), nil)
	}
	return &runLock{fl: fl}, nil
}

func (l *runLock) release(logger *slog.Logger) {
	if err := l.fl.Unlock(); err != nil {
		logger.Warn("run lock release failed",
			logging.String("lock_file", l.fl.Path()),
			logging.Error(err),
		)
		return
	}
	_ = os.Remove(l.fl.Path())
}
