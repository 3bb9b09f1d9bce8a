package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"PostDrafter/internal/agents"
	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
	"PostDrafter/internal/ticket"
)

const historyLimit = 5

// PipelineDeps wires the agent stages and tracker into the drafting
// pipeline. Now and Intn default to the wall clock and math/rand; tests
// inject fixed values.
type PipelineDeps struct {
	Researcher *agents.Researcher
	Writer     *agents.Writer
	Editor     *agents.Editor
	Tracker    ports.Tracker
	Logger     *slog.Logger
	Now        func() time.Time
	Intn       func(n int) int
}

// Pipeline implements the draft run: fetch history, research themes, then
// write, edit, and file one ticket per theme.
type Pipeline struct {
	researcher *agents.Researcher
	writer     *agents.Writer
	editor     *agents.Editor
	tracker    ports.Tracker
	logger     *slog.Logger
	now        func() time.Time
	intn       func(n int) int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		researcher: deps.Researcher,
		writer:     deps.Writer,
		editor:     deps.Editor,
		tracker:    deps.Tracker,
		logger:     deps.Logger,
		now:        deps.Now,
		intn:       deps.Intn,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.intn == nil {
		p.intn = rand.Intn
	}
	return p
}

// Run executes one drafting pass. A research failure aborts the run; a
// failure while processing one theme is logged and the next theme still
// runs. The run fails only when research failed or no theme produced a
// ticket.
func (p *Pipeline) Run(ctx context.Context) error {
	titles := p.recentTitles(ctx)
	p.logger.Info("fetched ticket history", "titles", len(titles))

	research, err := p.researcher.Propose(ctx, titles)
	if err != nil {
		return fmt.Errorf("research themes: %w", err)
	}
	p.logger.Info("research done", "analysis", research.Analysis, "themes", len(research.Themes))

	created := 0
	for i, theme := range research.Themes {
		if err := p.processTheme(ctx, i, theme); err != nil {
			p.logger.Error("theme skipped", "index", i, "theme", theme.Theme, "error", err)
			continue
		}
		created++
	}

	if created == 0 {
		return fmt.Errorf("all %d themes failed", len(research.Themes))
	}

	p.logger.Info("draft run done", "tickets", created)
	return nil
}

func (p *Pipeline) processTheme(ctx context.Context, index int, theme domain.Theme) error {
	if theme.ScheduledTime == "" {
		theme.ScheduledTime = p.slotTime(index)
	}
	p.logger.Info("processing theme", "index", index, "theme", theme.Theme, "scheduled", theme.ScheduledTime)

	draft, err := p.writer.Draft(ctx, theme)
	if err != nil {
		return fmt.Errorf("write draft: %w", err)
	}

	verdict, err := p.editor.Review(ctx, draft, theme)
	if err != nil {
		return fmt.Errorf("review draft: %w", err)
	}
	p.logger.Info("editor verdict",
		"approved", verdict.Approved,
		"charCount", verdict.CharCount,
		"issues", len(verdict.Issues))

	title := ticket.ComposeTitle(p.now(), theme.ScheduledTime, theme.Category)
	body := ticket.ComposeBody(verdict.FinalDraft, theme, verdict.CharCount)

	url, err := p.tracker.Create(ctx, title, body, ticket.PendingLabel)
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	p.logger.Info("ticket created", "url", url)
	return nil
}

// recentTitles degrades to an empty history when the tracker is
// unreachable; a first run has no history either.
func (p *Pipeline) recentTitles(ctx context.Context) []string {
	tickets, err := p.tracker.List(ctx, historyLimit)
	if err != nil {
		p.logger.Warn("ticket history unavailable, assuming first run", "error", err)
		return nil
	}

	titles := make([]string, 0, len(tickets))
	for _, t := range tickets {
		titles = append(titles, t.Title)
	}
	return titles
}

// slotTime places the first theme near midday and the second near evening,
// shifted up to 30 minutes either way.
func (p *Pipeline) slotTime(index int) string {
	base := 12
	if index > 0 {
		base = 19
	}

	minutes := base*60 + p.intn(61) - 30
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
