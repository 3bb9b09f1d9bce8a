package domain

import "time"

// Theme is one post topic proposed by the researcher stage.
type Theme struct {
	Category      string `json:"category"`
	Theme         string `json:"theme"`
	Angle         string `json:"angle"`
	ScheduledTime string `json:"scheduledTime"`
}

// ResearchResult is the parsed researcher reply: an analysis of the recent
// ticket history plus 1-2 proposed themes.
type ResearchResult struct {
	Analysis string  `json:"analysis"`
	Themes   []Theme `json:"themes"`
}

// EditorVerdict is the parsed editor review of one draft. FinalDraft is the
// authoritative post content; Approved is advisory metadata for the human
// reviewer.
type EditorVerdict struct {
	Approved   bool     `json:"approved"`
	CharCount  int      `json:"charCount"`
	Issues     []string `json:"issues"`
	FinalDraft string   `json:"finalDraft"`
}

// Ticket mirrors the fields the external tracker returns for one issue.
// Number is zero for list results that omit it.
type Ticket struct {
	Number    int
	Title     string
	Body      string
	Labels    []string
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// ArchivedPost is one successful publish recorded in the archive.
type ArchivedPost struct {
	IssueNumber int
	PostID      string
	Permalink   string
	Text        string
	PostedAt    time.Time
}
