// Package feedback turns closed ticket bodies into structured feedback
// records and keeps them in a bounded on-disk log.
package feedback

import (
	"regexp"
	"strings"
)

const (
	originalHeading = "### 修正前"
	reasonHeading   = "### 修正理由"
)

var commentExpr = regexp.MustCompile(`(?s)<!--.*?-->`)

// Extraction is the result of parsing one ticket body. Nil fields mean the
// region was absent, which includes regions holding only a placeholder
// comment.
type Extraction struct {
	FinalDraft     *string
	OriginalDraft  *string
	FeedbackReason *string
	WasModified    bool
}

// Extract parses the three heading-anchored regions of a ticket body:
// the final content between the leading placeholder comment and the first
// "---" delimiter, the 修正前 (original/before) section, and the 修正理由
// (reason) section running to the end of the body.
func Extract(body string) Extraction {
	var ex Extraction

	ex.FinalDraft = finalContent(body)

	if sec, ok := section(body, originalHeading, reasonHeading); ok {
		if cleaned := withoutComments(sec); cleaned != "" {
			ex.OriginalDraft = &cleaned
			ex.WasModified = true
		}
	}

	if idx := strings.Index(body, reasonHeading); idx >= 0 {
		sec := body[idx+len(reasonHeading):]
		if cleaned := withoutComments(sec); cleaned != "" {
			ex.FeedbackReason = &cleaned
		}
	}

	return ex
}

// finalContent captures the text between the first placeholder comment and
// the first delimiter line, verbatim but trimmed.
func finalContent(body string) *string {
	loc := commentExpr.FindStringIndex(body)
	if loc == nil {
		return nil
	}

	rest := body[loc[1]:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil
	}

	content := strings.TrimSpace(rest[:end])
	if content == "" {
		return nil
	}
	return &content
}

// section returns the text between two headings. A region is only present
// when its closing heading exists further down the body.
func section(body, from, to string) (string, bool) {
	start := strings.Index(body, from)
	if start < 0 {
		return "", false
	}

	rest := body[start+len(from):]
	end := strings.Index(rest, to)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// withoutComments strips placeholder comments so that a comment-only region
// reads as absent rather than present-but-empty.
func withoutComments(s string) string {
	return strings.TrimSpace(commentExpr.ReplaceAllString(s, ""))
}
