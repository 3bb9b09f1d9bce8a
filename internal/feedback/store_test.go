package feedback

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"PostDrafter/internal/domain"
)

func entry(n int) domain.FeedbackEntry {
	return domain.FeedbackEntry{
		IssueNumber: n,
		Title:       fmt.Sprintf("ticket %d", n),
		Date:        "2026-08-28",
	}
}

func TestUpsertEvictsOldest(t *testing.T) {
	t.Parallel()

	var log domain.FeedbackLog
	for n := 1; n <= 31; n++ {
		log.Upsert(entry(n))
	}

	if len(log.Entries) != domain.MaxFeedbackEntries {
		t.Fatalf("expected %d entries, got %d", domain.MaxFeedbackEntries, len(log.Entries))
	}
	seen := map[int]bool{}
	for i, e := range log.Entries {
		if e.IssueNumber != i+2 {
			t.Fatalf("entry %d has issueNumber %d, want %d", i, e.IssueNumber, i+2)
		}
		if seen[e.IssueNumber] {
			t.Fatalf("duplicate issueNumber %d", e.IssueNumber)
		}
		seen[e.IssueNumber] = true
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	t.Parallel()

	var log domain.FeedbackLog
	for n := 1; n <= 5; n++ {
		log.Upsert(entry(n))
	}

	updated := entry(3)
	updated.Title = "updated title"
	updated.WasModified = true
	log.Upsert(updated)

	if len(log.Entries) != 5 {
		t.Fatalf("length changed: %d", len(log.Entries))
	}
	if log.Entries[2].Title != "updated title" || !log.Entries[2].WasModified {
		t.Fatalf("entry not replaced in place: %+v", log.Entries[2])
	}
	if log.Entries[0].IssueNumber != 1 || log.Entries[4].IssueNumber != 5 {
		t.Fatal("neighboring entries moved")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "feedback-log.json")
	store := NewStore(path, nil)

	log := store.Load()
	if len(log.Entries) != 0 || log.LastUpdated != nil {
		t.Fatalf("expected fresh log, got %+v", log)
	}

	reason := "tone was off"
	e := entry(7)
	e.FeedbackReason = &reason
	log.Upsert(e)

	if err := store.Save(&log); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if log.LastUpdated == nil {
		t.Fatal("Save must stamp lastUpdated")
	}

	reloaded := store.Load()
	if len(reloaded.Entries) != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", len(reloaded.Entries))
	}
	got := reloaded.Entries[0]
	if got.IssueNumber != 7 || got.FeedbackReason == nil || *got.FeedbackReason != reason {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if reloaded.LastUpdated == nil || *reloaded.LastUpdated != *log.LastUpdated {
		t.Fatalf("lastUpdated mismatch: %v vs %v", reloaded.LastUpdated, log.LastUpdated)
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "feedback-log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	log := NewStore(path, nil).Load()
	if len(log.Entries) != 0 {
		t.Fatalf("expected fresh log for corrupt file, got %d entries", len(log.Entries))
	}
}

func TestStoreSaveCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "knowledge", "feedback-log.json")
	store := NewStore(path, nil)

	log := domain.FeedbackLog{}
	log.Upsert(entry(1))
	if err := store.Save(&log); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not written: %v", err)
	}
}
