package app

import (
	"context"
	"fmt"
	"log/slog"

	"PostDrafter/internal/agents"
	"PostDrafter/internal/config"
	"PostDrafter/internal/feedback"
	"PostDrafter/internal/infrastructure/generation"
	"PostDrafter/internal/infrastructure/storage"
	"PostDrafter/internal/infrastructure/tracker"
	"PostDrafter/internal/infrastructure/xapi"
	"PostDrafter/internal/ports"
	"PostDrafter/internal/usecase"
)

// Run modes dispatched by the CLI.
const (
	ModeDraft    = "draft"
	ModeFeedback = "feedback"
	ModePublish  = "publish"
	ModeCheck    = "check"
)

// Application wires configuration into the per-mode use cases. Each mode
// runs in its own process; there is no shared state between runs.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, logger *slog.Logger) *Application {
	return &Application{cfg: cfg, logger: logger}
}

// Run validates configuration for the requested mode and executes it.
func (a *Application) Run(ctx context.Context, mode string) error {
	switch mode {
	case ModeDraft:
		if err := a.cfg.ValidateDraft(); err != nil {
			return err
		}
		return a.runDraft(ctx)
	case ModeFeedback:
		if err := a.cfg.ValidateFeedback(); err != nil {
			return err
		}
		return a.runFeedback(ctx)
	case ModePublish:
		if err := a.cfg.ValidatePublish(); err != nil {
			return err
		}
		return a.runPublish(ctx)
	case ModeCheck:
		if err := a.cfg.ValidateCheck(); err != nil {
			return err
		}
		return a.runCheck(ctx)
	default:
		return fmt.Errorf("unknown run mode %q", mode)
	}
}

func (a *Application) runDraft(ctx context.Context) error {
	oracle := generation.NewClient(a.cfg.Generator)
	tr := tracker.NewCLI(a.cfg.Tracker.Repository, a.logger.With("component", "tracker"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Researcher: agents.NewResearcher(oracle, a.logger.With("component", "researcher")),
		Writer:     agents.NewWriter(oracle),
		Editor:     agents.NewEditor(oracle),
		Tracker:    tr,
		Logger:     a.logger.With("component", "pipeline"),
	})
	return pipeline.Run(ctx)
}

func (a *Application) runFeedback(ctx context.Context) error {
	tr := tracker.NewCLI(a.cfg.Tracker.Repository, a.logger.With("component", "tracker"))
	store := feedback.NewStore(a.cfg.Feedback.LogPath, a.logger.With("component", "feedback-store"))

	run := usecase.NewFeedbackRun(tr, store, a.logger.With("component", "feedback"))
	return run.Run(ctx, a.cfg.Tracker.IssueNumber)
}

func (a *Application) runPublish(ctx context.Context) error {
	tr := tracker.NewCLI(a.cfg.Tracker.Repository, a.logger.With("component", "tracker"))
	poster := a.newPoster()

	archive, closeArchive, err := a.openArchive()
	if err != nil {
		return err
	}
	defer closeArchive()

	run := usecase.NewPublishRun(tr, poster, archive,
		a.cfg.Artifacts.URLPath, a.cfg.Artifacts.ErrorPath,
		a.logger.With("component", "publish"))
	return run.Run(ctx, a.cfg.Tracker.IssueNumber)
}

func (a *Application) runCheck(ctx context.Context) error {
	archive, closeArchive, err := a.openArchive()
	if err != nil {
		return err
	}
	defer closeArchive()

	run := usecase.NewCheckRun(a.newPoster(), archive, a.logger.With("component", "check"))
	return run.Run(ctx)
}

func (a *Application) newPoster() *xapi.Client {
	signer := xapi.NewSigner(xapi.Credentials{
		ConsumerKey:       a.cfg.Publish.ConsumerKey,
		ConsumerSecret:    a.cfg.Publish.ConsumerSecret,
		AccessToken:       a.cfg.Publish.AccessToken,
		AccessTokenSecret: a.cfg.Publish.AccessTokenSecret,
	})
	return xapi.NewClient(signer, a.cfg.Publish.BaseURL, a.logger.With("component", "xapi"))
}

// openArchive returns a nil archive when none is configured; callers treat
// nil as disabled. The interface return keeps the disabled case an untyped
// nil. The returned closer is always safe to defer.
func (a *Application) openArchive() (ports.PostArchive, func(), error) {
	if a.cfg.Archive.Path == "" {
		return nil, func() {}, nil
	}

	archive, err := storage.Open(a.cfg.Archive.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open post archive: %w", err)
	}
	return archive, func() { _ = archive.Close() }, nil
}
