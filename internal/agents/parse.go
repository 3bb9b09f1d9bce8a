package agents

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports an oracle reply that could not be decoded into the
// structure the stage expects. It is fatal for the enclosing stage.
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s stage: malformed oracle reply: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// stripFences removes a wrapping fenced code block from an oracle reply.
// Both the opening fence (with an optional language tag) and the closing
// fence are dropped; the remaining text is trimmed.
func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// decodeReply applies the shared fence-strip + JSON-parse contract.
func decodeReply(stage, raw string, v any) error {
	cleaned := stripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &ParseError{Stage: stage, Err: err}
	}
	return nil
}
