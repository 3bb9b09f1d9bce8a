// Package storage persists the record of successful publishes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS published_posts (
	issue_number INTEGER PRIMARY KEY,
	post_id      TEXT NOT NULL,
	permalink    TEXT NOT NULL,
	text         TEXT NOT NULL,
	posted_at    TEXT NOT NULL
)`

// SQLiteArchive records published posts in a local sqlite database.
type SQLiteArchive struct {
	db *sql.DB
}

var _ ports.PostArchive = (*SQLiteArchive)(nil)

// Open creates (if needed) and opens the archive at path.
func Open(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}

	return &SQLiteArchive{db: db}, nil
}

// Close releases the underlying database handle.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// Record upserts the publish result for one ticket. Re-publishing the same
// ticket replaces its row.
func (a *SQLiteArchive) Record(ctx context.Context, post domain.ArchivedPost) error {
	query, args, err := sq.Insert("published_posts").
		Columns("issue_number", "post_id", "permalink", "text", "posted_at").
		Values(post.IssueNumber, post.PostID, post.Permalink, post.Text, post.PostedAt.UTC().Format(time.RFC3339)).
		Suffix(`ON CONFLICT(issue_number) DO UPDATE SET
			post_id = excluded.post_id,
			permalink = excluded.permalink,
			text = excluded.text,
			posted_at = excluded.posted_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record post: %w", err)
	}
	return nil
}

// Latest returns the most recently published post, or nil when the archive
// is empty.
func (a *SQLiteArchive) Latest(ctx context.Context) (*domain.ArchivedPost, error) {
	query, args, err := sq.Select("issue_number", "post_id", "permalink", "text", "posted_at").
		From("published_posts").
		OrderBy("posted_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var (
		post     domain.ArchivedPost
		postedAt string
	)
	row := a.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&post.IssueNumber, &post.PostID, &post.Permalink, &post.Text, &postedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, postedAt)
	if err != nil {
		return nil, fmt.Errorf("parse posted_at: %w", err)
	}
	post.PostedAt = ts

	return &post, nil
}
