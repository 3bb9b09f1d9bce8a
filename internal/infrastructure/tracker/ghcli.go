// Package tracker adapts the gh CLI behind the ports.Tracker interface.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"PostDrafter/internal/domain"
	"PostDrafter/internal/ports"
)

const (
	readAttempts = 3
	retryBackoff = 500 * time.Millisecond
)

// Error reports a failed tracker CLI invocation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tracker %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// runner executes the tracker CLI and returns its stdout; swapped in tests.
type runner func(ctx context.Context, args ...string) ([]byte, error)

// CLI shells out to gh for issue list/view/create.
type CLI struct {
	repo   string
	run    runner
	logger *slog.Logger
}

var _ ports.Tracker = (*CLI)(nil)

// NewCLI wires the adapter for one repository.
func NewCLI(repo string, logger *slog.Logger) *CLI {
	return &CLI{repo: repo, run: execGH, logger: logger}
}

type issuePayload struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt"`
}

// List returns recent issues in any state. The read is retried a bounded
// number of times; callers treat a final failure as "no history".
func (c *CLI) List(ctx context.Context, limit int) ([]domain.Ticket, error) {
	out, err := c.runRead(ctx, "list",
		"issue", "list",
		"--limit", strconv.Itoa(limit),
		"--state", "all",
		"--json", "title,body,labels",
		"--repo", c.repo,
	)
	if err != nil {
		return nil, err
	}

	var payload []issuePayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, &Error{Op: "list", Err: fmt.Errorf("decode output: %w", err)}
	}

	tickets := make([]domain.Ticket, 0, len(payload))
	for _, issue := range payload {
		tickets = append(tickets, issue.toTicket())
	}
	return tickets, nil
}

// View fetches one issue with its timestamps.
func (c *CLI) View(ctx context.Context, number int) (domain.Ticket, error) {
	out, err := c.runRead(ctx, "view",
		"issue", "view", strconv.Itoa(number),
		"--json", "number,title,body,labels,createdAt,closedAt",
		"--repo", c.repo,
	)
	if err != nil {
		return domain.Ticket{}, err
	}

	var payload issuePayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return domain.Ticket{}, &Error{Op: "view", Err: fmt.Errorf("decode output: %w", err)}
	}

	ticket := payload.toTicket()
	if ticket.Number == 0 {
		ticket.Number = number
	}
	return ticket, nil
}

// Create files a new issue and returns the tracker-assigned URL. Creation
// is never retried; a duplicate ticket is worse than a failed run.
func (c *CLI) Create(ctx context.Context, title, body, label string) (string, error) {
	out, err := c.run(ctx,
		"issue", "create",
		"--title", title,
		"--body", body,
		"--label", label,
		"--repo", c.repo,
	)
	if err != nil {
		return "", &Error{Op: "create", Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *CLI) runRead(ctx context.Context, op string, args ...string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		out, err := c.run(ctx, args...)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if c.logger != nil {
			c.logger.Warn("tracker read failed", "op", op, "attempt", attempt, "error", err)
		}
		if attempt == readAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &Error{Op: op, Err: ctx.Err()}
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return nil, &Error{Op: op, Err: lastErr}
}

func (p issuePayload) toTicket() domain.Ticket {
	labels := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		labels = append(labels, l.Name)
	}
	return domain.Ticket{
		Number:    p.Number,
		Title:     p.Title,
		Body:      p.Body,
		Labels:    labels,
		CreatedAt: p.CreatedAt,
		ClosedAt:  p.ClosedAt,
	}
}

func execGH(ctx context.Context, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
