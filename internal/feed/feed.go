// Package feed fetches landing-page activity records from the external
// feed API. One blocking GET per call, bounded by the configured timeout;
// failures are classified, never retried.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind string

const (
	// KindNotConfigured means no feed URL is configured.
	KindNotConfigured ErrorKind = "not_configured"
	// KindNetwork covers transport errors, timeouts and non-2xx responses.
	KindNetwork ErrorKind = "network"
	// KindPayload means the body was not valid JSON of the expected shape.
	KindPayload ErrorKind = "payload"
)

// Error is a classified fetch failure. Callers are expected to degrade to an
// empty result set rather than propagate it to the HTTP layer.
type Error struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNotConfigured:
		return "feed: no API URL configured"
	case e.Status != 0:
		return fmt.Sprintf("feed: %s request to %s failed with status %d", e.Kind, e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("feed: %s error fetching %s: %v", e.Kind, e.URL, e.Err)
	default:
		return fmt.Sprintf("feed: %s error fetching %s", e.Kind, e.URL)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Entry is one record from the external source, decoded best-effort.
// Fields absent from the payload stay at their zero values; nothing here is
// validated beyond JSON well-formedness.
type Entry struct {
	ID        json.Number `json:"id"`
	UserID    json.Number `json:"userId"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Timestamp string      `json:"timestamp"`
}

// envelope is the wrapper the keyed feed endpoint returns.
type envelope struct {
	Status  string           `json:"status"`
	Data    map[string]Entry `json:"data"`
	Message string           `json:"message"`
}

// Client performs outbound feed requests.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client with the given request budget.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchKeyed fetches the keyed activity feed: a {status, data, message}
// envelope whose data field maps record ids to records. Returns the data
// mapping; nil data decodes to an empty map.
func (c *Client) FetchKeyed(ctx context.Context, url string) (map[string]Entry, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Debug("Feed returned undecodable body", slog.String("url", url), slog.Any("error", err))
		return nil, &Error{Kind: KindPayload, URL: url, Err: err}
	}

	if payload.Data == nil {
		return map[string]Entry{}, nil
	}
	return payload.Data, nil
}

// FetchList fetches a flat post list: a bare JSON array of records.
func (c *Client) FetchList(ctx context.Context, url string) ([]Entry, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var items []Entry
	if err := json.Unmarshal(body, &items); err != nil {
		c.logger.Debug("Feed returned undecodable body", slog.String("url", url), slog.Any("error", err))
		return nil, &Error{Kind: KindPayload, URL: url, Err: err}
	}

	if items == nil {
		items = []Entry{}
	}
	return items, nil
}

// get performs the single GET and returns the raw body. No retries; the
// first failure is terminal for the request.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &Error{Kind: KindNotConfigured}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Feed request failed", slog.String("url", url), slog.Any("error", err))
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Feed request returned error status",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode))
		return nil, &Error{Kind: KindNetwork, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}

	return body, nil
}
