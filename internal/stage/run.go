package stage

import (
	"context"
	"log/slog"
	"strings"

	"sleeve/internal/logging"
)

// Run executes fn with the stage recorded in the context and uniform
// start/complete/failure log lines around it. The returned error is fn's
// error unchanged; classification is the stage's own responsibility.
func Run(ctx context.Context, logger *slog.Logger, name Name, fn func(context.Context, *slog.Logger) error) error {
	stageCtx := logging.WithStage(ctx, name.String())
	stageLogger := logging.WithContext(stageCtx, logger)

	stageLogger.Info(
		"stage started",
		logging.String(logging.FieldEventType, "stage_start"),
	)

	if err := fn(stageCtx, stageLogger); err != nil {
		stageLogger.Error(
			"stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.String("error_message", strings.TrimSpace(err.Error())),
		)
		return err
	}

	stageLogger.Info(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
	)
	return nil
}
