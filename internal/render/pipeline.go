package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"sleeve/internal/config"
	"sleeve/internal/ffmpeg"
	"sleeve/internal/fileutil"
	"sleeve/internal/logging"
	"sleeve/internal/media"
	"sleeve/internal/stage"
)

const (
	concatManifestName = "tracks.txt"
	joinedAudioName    = "album_concat.flac"
)

// Pipeline executes one render run. Construct with New, run once, discard;
// the tool carries no state between runs.
type Pipeline struct {
	settings config.Settings
	runner   ffmpeg.Runner
	profile  ffmpeg.Profile
	logger   *slog.Logger
}

// New validates the encoder profile selection and assembles a pipeline. The
// runner abstracts the collaborator so tests can substitute a recording
// executor.
func New(settings config.Settings, runner ffmpeg.Runner, logger *slog.Logger) (*Pipeline, error) {
	profile, err := ffmpeg.LookupProfile(settings.Profile)
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Validating, "encoder profile", err)
	}
	return &Pipeline{
		settings: settings,
		runner:   runner,
		profile:  profile,
		logger:   logging.NewComponentLogger(logger, "render"),
	}, nil
}

// Run drives the stages in order and returns the absolute output path.
// Failures propagate unchanged after the deferred cleanup of the scratch
// area and run lock; no stage retries or is skipped.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	runID := uuid.NewString()[:8]
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	var set *media.SourceSet
	err := stage.Run(ctx, logger, stage.Validating, func(_ context.Context, stageLogger *slog.Logger) error {
		discovered, err := media.Discover(p.settings)
		if err != nil {
			return err
		}
		set = discovered
		stageLogger.Info("source set discovered",
			logging.Int("track_count", len(set.Tracks)),
			logging.String("cover", set.Cover),
			logging.String("source_dir", set.Dir),
		)
		return nil
	})
	if err != nil {
		return "", err
	}

	lock, err := acquireRunLock(set.Dir)
	if err != nil {
		return "", err
	}
	defer lock.release(logger)

	scratch, err := newScratchArea(runID)
	if err != nil {
		return "", stage.Wrap(stage.ErrConfiguration, stage.Validating, "platform temp area unavailable", err)
	}
	defer scratch.Remove(logger)

	intermediates, err := p.normalize(ctx, logger, set, scratch)
	if err != nil {
		return "", err
	}

	joined, err := p.concatenate(ctx, logger, intermediates, scratch)
	if err != nil {
		return "", err
	}

	output, err := p.compose(ctx, logger, set.Cover, joined, scratch)
	if err != nil {
		return "", err
	}

	logger.Info("render complete", logging.String("output", output))
	return output, nil
}

// normalize transcodes every track into the scratch area as NN.flac, the
// zero-padded position preserving source order for the join. The first
// failure aborts the remaining tracks.
func (p *Pipeline) normalize(ctx context.Context, logger *slog.Logger, set *media.SourceSet, scratch *scratchArea) ([]string, error) {
	intermediates := make([]string, 0, len(set.Tracks))
	err := stage.Run(ctx, logger, stage.Normalizing, func(stageCtx context.Context, stageLogger *slog.Logger) error {
		for i, track := range set.Tracks {
			dest := scratch.Path(fmt.Sprintf("%02d.flac", i+1))
			stageLogger.Debug("normalizing track",
				logging.Int("position", i+1),
				logging.String("track", track.Name),
			)
			if err := p.runner.Run(stageCtx, ffmpeg.TranscodeArgs(track.Path, dest)); err != nil {
				return stage.Wrap(stage.ErrTranscode, stage.Normalizing, fmt.Sprintf("transcode %s", track.Path), err)
			}
			intermediates = append(intermediates, dest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return intermediates, nil
}

// concatenate joins the intermediates with a single stream-copy invocation.
func (p *Pipeline) concatenate(ctx context.Context, logger *slog.Logger, intermediates []string, scratch *scratchArea) (string, error) {
	joined := scratch.Path(joinedAudioName)
	err := stage.Run(ctx, logger, stage.Concatenating, func(stageCtx context.Context, stageLogger *slog.Logger) error {
		if len(intermediates) == 0 {
			// Unreachable given validation; a hit means the invariant broke upstream.
			return stage.Wrap(stage.ErrConcat, stage.Concatenating, "no normalized tracks to join", nil)
		}
		manifest := scratch.Path(concatManifestName)
		if err := ffmpeg.WriteManifest(intermediates, manifest); err != nil {
			return stage.Wrap(stage.ErrConcat, stage.Concatenating, "write manifest", err)
		}
		stageLogger.Debug("joining tracks", logging.Int("track_count", len(intermediates)))
		if err := p.runner.Run(stageCtx, ffmpeg.ConcatArgs(manifest, joined)); err != nil {
			return stage.Wrap(stage.ErrConcat, stage.Concatenating, "join normalized tracks", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return joined, nil
}

// compose renders the final container into the scratch area, then promotes it
// to the requested output path. Promotion replaces an existing file, but a
// failed composition leaves the destination untouched.
func (p *Pipeline) compose(ctx context.Context, logger *slog.Logger, cover, joined string, scratch *scratchArea) (string, error) {
	output := p.settings.OutputPath()
	staged := scratch.Path("render" + filepath.Ext(output))
	err := stage.Run(ctx, logger, stage.Composing, func(stageCtx context.Context, stageLogger *slog.Logger) error {
		stageLogger.Debug("composing video",
			logging.String("profile", p.settings.Profile),
			logging.String("output", output),
		)
		if err := p.runner.Run(stageCtx, ffmpeg.ComposeArgs(cover, joined, staged, p.profile)); err != nil {
			return stage.Wrap(stage.ErrRender, stage.Composing, "compose cover video", err)
		}
		if err := fileutil.Promote(staged, output); err != nil {
			return stage.Wrap(stage.ErrRender, stage.Composing, "promote output artifact", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return output, nil
}
