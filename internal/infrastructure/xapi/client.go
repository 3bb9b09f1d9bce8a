package xapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"PostDrafter/internal/ports"
)

const permalinkBase = "https://x.com/i/status/"

// ErrEmptyContent means the ticket body held nothing to publish once the
// placeholder comments were stripped.
var ErrEmptyContent = errors.New("post content is empty")

// RateLimitError is a 429 from the publish API. It is fatal for the run;
// the caller decides when to retry.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "publish API rate limit reached; retry later"
}

// APIError is any other non-success reply from the publish API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("publish API error (%d): %s", e.StatusCode, e.Body)
}

var stripCommentExpr = regexp.MustCompile(`(?s)<!--.*?-->`)

// ExtractPostText strips placeholder comments from a ticket body and trims
// the remainder.
func ExtractPostText(body string) (string, error) {
	content := strings.TrimSpace(stripCommentExpr.ReplaceAllString(body, ""))
	if content == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}

// Client sends signed requests to the publish API.
type Client struct {
	baseURL    string
	signer     *Signer
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Poster = (*Client)(nil)

// NewClient wires a signer and API base URL (no trailing slash).
func NewClient(signer *Signer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		signer:  signer,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type postResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type meResponse struct {
	Data struct {
		Username string `json:"username"`
	} `json:"data"`
}

// Post publishes one text. 201 yields the post id and canonical permalink;
// 429 is a RateLimitError; anything else an APIError with the raw body.
// Posting is never retried, to avoid duplicate posts.
func (c *Client) Post(ctx context.Context, text string) (string, string, error) {
	endpoint := c.baseURL + "/tweets"

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", "", fmt.Errorf("marshal post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", c.signer.AuthorizationHeader(http.MethodPost, endpoint))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("send post: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusCreated:
		var parsed postResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", "", fmt.Errorf("decode post response: %w", err)
		}
		if parsed.Data.ID == "" {
			return "", "", fmt.Errorf("post response has no id")
		}
		return parsed.Data.ID, permalinkBase + parsed.Data.ID, nil
	case http.StatusTooManyRequests:
		return "", "", &RateLimitError{}
	default:
		return "", "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
}

// VerifyCredentials performs the capability check (GET /users/me) and
// returns the authenticated username. The read is idempotent, so transient
// failures are retried a bounded number of times.
func (c *Client) VerifyCredentials(ctx context.Context) (string, error) {
	const attempts = 3

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		username, retryable, err := c.verifyOnce(ctx)
		if err == nil {
			return username, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}

		if c.logger != nil {
			c.logger.Warn("credential check failed", "attempt", attempt, "error", err)
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return "", lastErr
}

func (c *Client) verifyOnce(ctx context.Context) (username string, retryable bool, err error) {
	endpoint := c.baseURL + "/users/me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", c.signer.AuthorizationHeader(http.MethodGet, endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		return "", resp.StatusCode >= http.StatusInternalServerError, apiErr
	}

	var parsed meResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	return parsed.Data.Username, false, nil
}
