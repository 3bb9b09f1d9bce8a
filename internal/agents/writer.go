package agents

import (
	"context"
	"fmt"
	"strings"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
)

// Writer renders one theme into a draft post.
type Writer struct {
	oracle ports.Oracle
}

// NewWriter wires the stage to the generation oracle.
func NewWriter(oracle ports.Oracle) *Writer {
	return &Writer{oracle: oracle}
}

// Draft asks the oracle for one post and trims surrounding whitespace.
// The reply has no structural contract; validation is the editor's job.
func (w *Writer) Draft(ctx context.Context, theme domain.Theme) (string, error) {
	user := fmt.Sprintf(`## Post theme

- category: %s
- theme: %s
- angle: %s
- scheduled time: %s

Write exactly one post for this theme.`, theme.Category, theme.Theme, theme.Angle, theme.ScheduledTime)

	raw, err := w.oracle.Complete(ctx, writerSystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("writer: %w", err)
	}
	return strings.TrimSpace(raw), nil
}
