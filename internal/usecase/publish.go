package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/infrastructure/xapi"
	"PostDrafter/internal/ports"
)

// PublishRun reads one approved ticket and posts its text. Exactly one
// artifact file is written per run: the permalink on success, the error
// message on failure, both for a downstream workflow step.
type PublishRun struct {
	tracker ports.Tracker
	poster  ports.Poster
	archive ports.PostArchive // optional; nil disables archiving
	urlPath string
	errPath string
	logger  *slog.Logger
	now     func() time.Time
}

// NewPublishRun wires the publish dependencies.
func NewPublishRun(tr ports.Tracker, poster ports.Poster, archive ports.PostArchive, urlPath, errPath string, logger *slog.Logger) *PublishRun {
	return &PublishRun{
		tracker: tr,
		poster:  poster,
		archive: archive,
		urlPath: urlPath,
		errPath: errPath,
		logger:  logger,
		now:     time.Now,
	}
}

// Run publishes the ticket's content. Posting is never retried.
func (p *PublishRun) Run(ctx context.Context, issueNumber int) error {
	t, err := p.tracker.View(ctx, issueNumber)
	if err != nil {
		return p.fail(fmt.Errorf("view ticket %d: %w", issueNumber, err))
	}

	text, err := xapi.ExtractPostText(t.Body)
	if err != nil {
		return p.fail(fmt.Errorf("ticket %d: %w", issueNumber, err))
	}
	p.logger.Info("publishing", "issue", issueNumber, "chars", len([]rune(text)))

	id, permalink, err := p.poster.Post(ctx, text)
	if err != nil {
		return p.fail(err)
	}
	p.logger.Info("published", "id", id, "permalink", permalink)

	if err := os.WriteFile(p.urlPath, []byte(permalink), 0o644); err != nil {
		return fmt.Errorf("write url artifact: %w", err)
	}

	if p.archive != nil {
		record := domain.ArchivedPost{
			IssueNumber: issueNumber,
			PostID:      id,
			Permalink:   permalink,
			Text:        text,
			PostedAt:    p.now(),
		}
		if err := p.archive.Record(ctx, record); err != nil {
			p.logger.Warn("archive record failed", "error", err)
		}
	}

	return nil
}

// fail writes the error artifact and passes the error through.
func (p *PublishRun) fail(err error) error {
	if werr := os.WriteFile(p.errPath, []byte(err.Error()), 0o644); werr != nil {
		p.logger.Error("write error artifact failed", "error", werr)
	}
	return err
}
