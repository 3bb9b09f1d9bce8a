package domain

// MaxFeedbackEntries bounds the feedback log; older entries are evicted
// first when the cap is exceeded.
const MaxFeedbackEntries = 30

// FeedbackEntry captures one reviewed ticket. Pointer fields serialize as
// null when the corresponding ticket section or footer field was absent.
type FeedbackEntry struct {
	IssueNumber    int     `json:"issueNumber"`
	Title          string  `json:"title"`
	Date           string  `json:"date"`
	PostedAt       *string `json:"postedAt"`
	Category       *string `json:"category"`
	Theme          *string `json:"theme"`
	ScheduledTime  *string `json:"scheduledTime"`
	OriginalDraft  *string `json:"originalDraft"`
	FinalDraft     *string `json:"finalDraft"`
	FeedbackReason *string `json:"feedbackReason"`
	WasModified    bool    `json:"wasModified"`
	CharCount      *int    `json:"charCount"`
}

// FeedbackLog is the persisted collection of feedback entries, ordered by
// insertion.
type FeedbackLog struct {
	Entries     []FeedbackEntry `json:"entries"`
	LastUpdated *string         `json:"lastUpdated"`
}

// Upsert replaces the entry with the same issue number in place, or appends
// a new one. On overflow the oldest entries (by insertion order, not by the
// Date field) are dropped from the front.
func (l *FeedbackLog) Upsert(entry FeedbackEntry) {
	for i := range l.Entries {
		if l.Entries[i].IssueNumber == entry.IssueNumber {
			l.Entries[i] = entry
			return
		}
	}

	l.Entries = append(l.Entries, entry)
	if len(l.Entries) > MaxFeedbackEntries {
		l.Entries = l.Entries[len(l.Entries)-MaxFeedbackEntries:]
	}
}
