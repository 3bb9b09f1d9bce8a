package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
)

// Researcher proposes post themes from the recent ticket history.
type Researcher struct {
	oracle ports.Oracle
	logger *slog.Logger
}

// NewResearcher wires the stage to the generation oracle.
func NewResearcher(oracle ports.Oracle, logger *slog.Logger) *Researcher {
	return &Researcher{oracle: oracle, logger: logger}
}

// Propose sends the recent titles as context and parses the themed reply.
// An empty history is presented as a first run. A reply without a themes
// array is a ParseError; there is no fallback theme.
func (r *Researcher) Propose(ctx context.Context, recentTitles []string) (domain.ResearchResult, error) {
	var history strings.Builder
	if len(recentTitles) == 0 {
		history.WriteString("(no recent posts - first run)")
	} else {
		for _, title := range recentTitles {
			fmt.Fprintf(&history, "- %s\n", title)
		}
	}

	user := fmt.Sprintf(`## Recent ticket titles (past post themes)

%s

Propose today's post themes. Avoid topical overlap with the history above.
Output 1-2 themes as JSON.`, strings.TrimRight(history.String(), "\n"))

	raw, err := r.oracle.Complete(ctx, researcherSystemPrompt, user)
	if err != nil {
		return domain.ResearchResult{}, fmt.Errorf("researcher: %w", err)
	}

	var result domain.ResearchResult
	if err := decodeReply("researcher", raw, &result); err != nil {
		return domain.ResearchResult{}, err
	}
	if len(result.Themes) == 0 {
		return domain.ResearchResult{}, &ParseError{Stage: "researcher", Err: errors.New("reply has no themes")}
	}

	if r.logger != nil {
		r.logger.Debug("researcher done", "themes", len(result.Themes))
	}
	return result, nil
}
