package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"PostDrafter/internal/domain"
)

func testArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	archive, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func TestArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	archive := testArchive(t)
	ctx := context.Background()

	latest, err := archive.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected empty archive, got %+v", latest)
	}

	posted := time.Date(2026, time.August, 28, 12, 5, 0, 0, time.UTC)
	err = archive.Record(ctx, domain.ArchivedPost{
		IssueNumber: 42,
		PostID:      "1234567890",
		Permalink:   "https://x.com/i/status/1234567890",
		Text:        "Hello world",
		PostedAt:    posted,
	})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}

	latest, err = archive.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if latest == nil || latest.IssueNumber != 42 || latest.PostID != "1234567890" {
		t.Fatalf("unexpected latest: %+v", latest)
	}
	if !latest.PostedAt.Equal(posted) {
		t.Fatalf("postedAt mismatch: %v", latest.PostedAt)
	}
}

func TestArchiveRecordReplacesByIssue(t *testing.T) {
	t.Parallel()

	archive := testArchive(t)
	ctx := context.Background()

	first := domain.ArchivedPost{
		IssueNumber: 7, PostID: "1", Permalink: "https://x.com/i/status/1",
		Text: "v1", PostedAt: time.Date(2026, time.August, 27, 12, 0, 0, 0, time.UTC),
	}
	second := first
	second.PostID = "2"
	second.Permalink = "https://x.com/i/status/2"
	second.Text = "v2"
	second.PostedAt = second.PostedAt.Add(time.Hour)

	if err := archive.Record(ctx, first); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := archive.Record(ctx, second); err != nil {
		t.Fatalf("Record (replace) error: %v", err)
	}

	latest, err := archive.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if latest == nil || latest.PostID != "2" || latest.Text != "v2" {
		t.Fatalf("row not replaced: %+v", latest)
	}
}
