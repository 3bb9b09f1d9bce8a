package ports

import (
	"context"

	"PostDrafter/internal/domain"
)

// Oracle is the text-completion service behind every agent stage.
type Oracle interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Tracker is the external ticket store (issue CRUD).
type Tracker interface {
	List(ctx context.Context, limit int) ([]domain.Ticket, error)
	View(ctx context.Context, number int) (domain.Ticket, error)
	Create(ctx context.Context, title, body, label string) (string, error)
}

// Poster publishes approved text to the microblogging platform.
type Poster interface {
	Post(ctx context.Context, text string) (id, permalink string, err error)
	VerifyCredentials(ctx context.Context) (username string, err error)
}

// FeedbackStore persists the bounded feedback log.
type FeedbackStore interface {
	Load() domain.FeedbackLog
	Save(log *domain.FeedbackLog) error
}

// PostArchive records successful publishes for audit and lookup.
type PostArchive interface {
	Record(ctx context.Context, post domain.ArchivedPost) error
	Latest(ctx context.Context) (*domain.ArchivedPost, error)
}
