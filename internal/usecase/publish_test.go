package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/infrastructure/xapi"
)

type fakePoster struct {
	id      string
	postErr error
	posted  []string
}

func (f *fakePoster) Post(_ context.Context, text string) (string, string, error) {
	if f.postErr != nil {
		return "", "", f.postErr
	}
	f.posted = append(f.posted, text)
	return f.id, "https://x.com/i/status/" + f.id, nil
}

func (f *fakePoster) VerifyCredentials(_ context.Context) (string, error) {
	return "kaito", nil
}

type memArchive struct {
	records []domain.ArchivedPost
}

func (m *memArchive) Record(_ context.Context, post domain.ArchivedPost) error {
	m.records = append(m.records, post)
	return nil
}

func (m *memArchive) Latest(_ context.Context) (*domain.ArchivedPost, error) {
	if len(m.records) == 0 {
		return nil, nil
	}
	return &m.records[len(m.records)-1], nil
}

func publishPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "tweet_url.txt"), filepath.Join(dir, "error.txt")
}

func TestPublishRunSuccess(t *testing.T) {
	t.Parallel()

	tr := &viewTracker{ticket: domain.Ticket{
		Number:    42,
		Body:      "<!-- placeholder -->\n\nHello world\n",
		CreatedAt: time.Now(),
	}}
	poster := &fakePoster{id: "1234567890"}
	archive := &memArchive{}
	urlPath, errPath := publishPaths(t)

	run := NewPublishRun(tr, poster, archive, urlPath, errPath, discardLogger())
	if err := run.Run(context.Background(), 42); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	raw, err := os.ReadFile(urlPath)
	if err != nil {
		t.Fatalf("url artifact not written: %v", err)
	}
	if string(raw) != "https://x.com/i/status/1234567890" {
		t.Fatalf("unexpected artifact: %q", raw)
	}
	if _, err := os.Stat(errPath); !os.IsNotExist(err) {
		t.Fatal("error artifact must not exist on success")
	}

	if len(poster.posted) != 1 || poster.posted[0] != "Hello world" {
		t.Fatalf("unexpected posted text: %v", poster.posted)
	}
	if len(archive.records) != 1 || archive.records[0].IssueNumber != 42 {
		t.Fatalf("publish not archived: %+v", archive.records)
	}
}

func TestPublishRunEmptyContent(t *testing.T) {
	t.Parallel()

	tr := &viewTracker{ticket: domain.Ticket{Body: "<!-- nothing else -->\n\n"}}
	poster := &fakePoster{id: "1"}
	urlPath, errPath := publishPaths(t)

	run := NewPublishRun(tr, poster, nil, urlPath, errPath, discardLogger())
	err := run.Run(context.Background(), 42)
	if !errors.Is(err, xapi.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}

	if _, statErr := os.Stat(errPath); statErr != nil {
		t.Fatalf("error artifact not written: %v", statErr)
	}
	if _, statErr := os.Stat(urlPath); !os.IsNotExist(statErr) {
		t.Fatal("url artifact must not exist on failure")
	}
	if len(poster.posted) != 0 {
		t.Fatal("nothing may be posted for empty content")
	}
}

func TestPublishRunAPIFailure(t *testing.T) {
	t.Parallel()

	tr := &viewTracker{ticket: domain.Ticket{Body: "<!--c-->\n\nHello\n"}}
	poster := &fakePoster{postErr: &xapi.RateLimitError{}}
	urlPath, errPath := publishPaths(t)

	run := NewPublishRun(tr, poster, nil, urlPath, errPath, discardLogger())
	err := run.Run(context.Background(), 42)

	var rateErr *xapi.RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}

	raw, readErr := os.ReadFile(errPath)
	if readErr != nil {
		t.Fatalf("error artifact not written: %v", readErr)
	}
	if string(raw) != (&xapi.RateLimitError{}).Error() {
		t.Fatalf("unexpected error artifact: %q", raw)
	}
}
