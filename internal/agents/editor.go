package agents

import (
	"context"
	"fmt"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
)

// Editor reviews a draft and returns the verdict with the final text.
type Editor struct {
	oracle ports.Oracle
}

// NewEditor wires the stage to the generation oracle.
func NewEditor(oracle ports.Oracle) *Editor {
	return &Editor{oracle: oracle}
}

// Review sends the draft for review and parses the verdict. A malformed
// reply is a ParseError, fatal for this theme only.
func (e *Editor) Review(ctx context.Context, draft string, theme domain.Theme) (domain.EditorVerdict, error) {
	user := fmt.Sprintf(`## Draft under review

category: %s
theme: %s

---

%s

---

Review this post.`, theme.Category, theme.Theme, draft)

	raw, err := e.oracle.Complete(ctx, editorSystemPrompt, user)
	if err != nil {
		return domain.EditorVerdict{}, fmt.Errorf("editor: %w", err)
	}

	var verdict domain.EditorVerdict
	if err := decodeReply("editor", raw, &verdict); err != nil {
		return domain.EditorVerdict{}, err
	}
	return verdict, nil
}
