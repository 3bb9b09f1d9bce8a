package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/feedback"
	"PostDrafter/internal/ports"
	"PostDrafter/internal/ticket"
)

// FeedbackRun reads one closed ticket, extracts the human edits, and
// upserts the record into the feedback log.
type FeedbackRun struct {
	tracker ports.Tracker
	store   ports.FeedbackStore
	logger  *slog.Logger
}

// NewFeedbackRun wires tracker and store.
func NewFeedbackRun(tr ports.Tracker, store ports.FeedbackStore, logger *slog.Logger) *FeedbackRun {
	return &FeedbackRun{tracker: tr, store: store, logger: logger}
}

// Run processes one ticket by number. Tracker view failures are fatal;
// a missing or corrupt log file is not (the store starts fresh).
func (f *FeedbackRun) Run(ctx context.Context, issueNumber int) error {
	t, err := f.tracker.View(ctx, issueNumber)
	if err != nil {
		return fmt.Errorf("view ticket %d: %w", issueNumber, err)
	}
	f.logger.Info("collecting feedback", "issue", issueNumber, "title", t.Title)

	entry := buildEntry(t, issueNumber)

	log := f.store.Load()
	before := len(log.Entries)
	log.Upsert(entry)

	if err := f.store.Save(&log); err != nil {
		return fmt.Errorf("save feedback log: %w", err)
	}

	f.logger.Info("feedback log updated",
		"issue", issueNumber,
		"modified", entry.WasModified,
		"entries", len(log.Entries),
		"replaced", len(log.Entries) == before)
	return nil
}

func buildEntry(t domain.Ticket, issueNumber int) domain.FeedbackEntry {
	ex := feedback.Extract(t.Body)
	md := ticket.ExtractMetadata(t.Body)

	var postedAt *string
	if t.ClosedAt != nil {
		v := t.ClosedAt.UTC().Format(time.RFC3339)
		postedAt = &v
	}

	return domain.FeedbackEntry{
		IssueNumber:    issueNumber,
		Title:          t.Title,
		Date:           t.CreatedAt.UTC().Format("2006-01-02"),
		PostedAt:       postedAt,
		Category:       md.Category,
		Theme:          md.Theme,
		ScheduledTime:  md.ScheduledTime,
		OriginalDraft:  ex.OriginalDraft,
		FinalDraft:     ex.FinalDraft,
		FeedbackReason: ex.FeedbackReason,
		WasModified:    ex.WasModified,
		CharCount:      md.CharCount,
	}
}
