// Package ticket fixes the wire format of draft tickets: the title line,
// the body with its human-edit placeholder and metadata footer, and the
// extraction of that footer back into fields. The labels are the ones the
// review workflow was built around and must round-trip unchanged.
package ticket

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"PostDrafter/internal/domain"
)

// PendingLabel marks freshly created draft tickets in the tracker.
const PendingLabel = "pending"

// PlaceholderComment heads every ticket body; the human reviewer edits the
// text below it.
const PlaceholderComment = "<!-- 投稿内容を以下に記載してください（280文字以内推奨） -->"

var (
	scheduledExpr = regexp.MustCompile(`\*\*投稿予定時刻:\*\*\s*(\S+)`)
	categoryExpr  = regexp.MustCompile(`\*\*カテゴリ:\*\*\s*(.+)`)
	themeExpr     = regexp.MustCompile(`\*\*テーマ:\*\*\s*(.+)`)
	charCountExpr = regexp.MustCompile(`\*\*文字数:\*\*\s*(\d+)`)
)

// ComposeTitle embeds the date, scheduled time, and category.
func ComposeTitle(day time.Time, scheduledTime, category string) string {
	return fmt.Sprintf("[%s %s] %s", day.Format("2006-01-02"), scheduledTime, category)
}

// ComposeBody renders the placeholder comment, the final draft, and the
// labeled metadata footer, one label per line.
func ComposeBody(finalDraft string, theme domain.Theme, charCount int) string {
	return fmt.Sprintf(`%s

%s

---
**投稿予定時刻:** %s
**カテゴリ:** %s
**テーマ:** %s
**文字数:** %d字
`, PlaceholderComment, finalDraft, theme.ScheduledTime, theme.Category, theme.Theme, charCount)
}

// Metadata holds the footer fields; a field missing from the body stays nil.
type Metadata struct {
	ScheduledTime *string
	Category      *string
	Theme         *string
	CharCount     *int
}

// ExtractMetadata pulls the labeled scalar fields back out of a ticket
// body. Missing fields are not an error.
func ExtractMetadata(body string) Metadata {
	var md Metadata

	if m := scheduledExpr.FindStringSubmatch(body); m != nil {
		v := m[1]
		md.ScheduledTime = &v
	}
	if m := categoryExpr.FindStringSubmatch(body); m != nil {
		v := strings.TrimSpace(m[1])
		md.Category = &v
	}
	if m := themeExpr.FindStringSubmatch(body); m != nil {
		v := strings.TrimSpace(m[1])
		md.Theme = &v
	}
	if m := charCountExpr.FindStringSubmatch(body); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			md.CharCount = &n
		}
	}

	return md
}
