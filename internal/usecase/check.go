package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"PostDrafter/internal/ports"
)

// CheckRun verifies the publish credentials outside the critical path and
// reports the most recent archived publish when an archive is configured.
type CheckRun struct {
	poster  ports.Poster
	archive ports.PostArchive // optional
	logger  *slog.Logger
}

// NewCheckRun wires the capability check.
func NewCheckRun(poster ports.Poster, archive ports.PostArchive, logger *slog.Logger) *CheckRun {
	return &CheckRun{poster: poster, archive: archive, logger: logger}
}

// Run calls the authenticated-user endpoint with a signed request.
func (c *CheckRun) Run(ctx context.Context) error {
	username, err := c.poster.VerifyCredentials(ctx)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	c.logger.Info("credentials valid", "username", "@"+username)

	if c.archive != nil {
		latest, err := c.archive.Latest(ctx)
		if err != nil {
			c.logger.Warn("archive lookup failed", "error", err)
		} else if latest != nil {
			c.logger.Info("last published",
				"issue", latest.IssueNumber,
				"permalink", latest.Permalink,
				"postedAt", latest.PostedAt)
		}
	}

	return nil
}
