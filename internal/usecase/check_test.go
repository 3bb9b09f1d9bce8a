package usecase

import (
	"context"
	"testing"
	"time"

	"PostDrafter/internal/domain"
)

func TestCheckRun(t *testing.T) {
	t.Parallel()

	archive := &memArchive{records: []domain.ArchivedPost{{
		IssueNumber: 42,
		Permalink:   "https://x.com/i/status/1",
		PostedAt:    time.Now(),
	}}}

	run := NewCheckRun(&fakePoster{id: "1"}, archive, discardLogger())
	if err := run.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
}

func TestCheckRunNoArchive(t *testing.T) {
	t.Parallel()

	run := NewCheckRun(&fakePoster{id: "1"}, nil, discardLogger())
	if err := run.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
}

func TestCheckRunVerifyFailure(t *testing.T) {
	t.Parallel()

	poster := &failingPoster{}
	if err := NewCheckRun(poster, nil, discardLogger()).Run(context.Background()); err == nil {
		t.Fatal("expected error when credential verification fails")
	}
}

type failingPoster struct{}

func (failingPoster) Post(context.Context, string) (string, string, error) {
	return "", "", context.DeadlineExceeded
}

func (failingPoster) VerifyCredentials(context.Context) (string, error) {
	return "", context.DeadlineExceeded
}
