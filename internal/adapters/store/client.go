// Package store is the HTTP client for the FOGIS event store.
//
// The store keeps a session cookie after Login. Every event write answers
// with the full event list of the match, which callers adopt as their new
// timeline.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/logger"
	"github.com/timmybird/fogis-reporter/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRetries    = 2
	defaultRetryDelay = 200 * time.Millisecond
	maxErrorBody      = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d %s", ErrUnexpectedStatus, e.code, e.body)
}

func (e *statusError) Unwrap() error {
	if e.code == http.StatusUnauthorized || e.code == http.StatusForbidden {
		return ErrUnauthorized
	}
	return ErrUnexpectedStatus
}

// Client talks to the event store over HTTP.
type Client struct {
	baseURL    string
	http       *http.Client
	username   string
	password   string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	logger     logger.Logger
}

// New creates a client for the store at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		timeout:    defaultTimeout,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http = &http.Client{Jar: jar, Timeout: c.timeout}
	}
	return c, nil
}

// Login opens a session with the configured credentials.
func (c *Client) Login(ctx context.Context) error {
	body := map[string]string{"username": c.username, "password": c.password}
	if err := c.do(ctx, "login", http.MethodPost, "/login", body, nil); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.logger.Info(ctx, "logged in to event store", logger.String("username", c.username))
	return nil
}

// FetchMatches lists the matches assigned to the logged in referee.
func (c *Client) FetchMatches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	if err := c.read(ctx, "fetch_matches", "/matches", &out); err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}
	return out, nil
}

// FetchMatch returns one match with its period structure.
func (c *Client) FetchMatch(ctx context.Context, matchID int) (model.Match, error) {
	var out model.Match
	if err := c.read(ctx, "fetch_match", matchPath(matchID, ""), &out); err != nil {
		return model.Match{}, fmt.Errorf("fetch match %d: %w", matchID, err)
	}
	return out, nil
}

// FetchRoster returns the players of one team in a match.
func (c *Client) FetchRoster(ctx context.Context, matchID, teamID int) (model.Roster, error) {
	var out model.Roster
	path := matchPath(matchID, "/teams/"+strconv.Itoa(teamID)+"/players")
	if err := c.read(ctx, "fetch_roster", path, &out); err != nil {
		return nil, fmt.Errorf("fetch roster for team %d: %w", teamID, err)
	}
	return out, nil
}

// FetchEvents returns the full event list of a match.
func (c *Client) FetchEvents(ctx context.Context, matchID int) (model.Timeline, error) {
	var out model.Timeline
	if err := c.read(ctx, "fetch_events", matchPath(matchID, "/events"), &out); err != nil {
		return nil, fmt.Errorf("fetch events for match %d: %w", matchID, err)
	}
	return out, nil
}

// UpsertEvent creates (ID 0) or updates an event and returns the store's
// post-write timeline. It is not retried: a lost response may still have
// been applied.
func (c *Client) UpsertEvent(ctx context.Context, e model.MatchEvent) (model.Timeline, error) {
	var out model.Timeline
	if err := c.do(ctx, "upsert_event", http.MethodPost, matchPath(e.MatchID, "/events"), e, &out); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", e.TypeID, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("upsert %s: %w", e.TypeID, ErrEmptySnapshot)
	}
	return out, nil
}

// ClearEvents removes every event of a match.
func (c *Client) ClearEvents(ctx context.Context, matchID int) error {
	if err := c.do(ctx, "clear_events", http.MethodDelete, matchPath(matchID, "/events"), nil, nil); err != nil {
		return fmt.Errorf("clear events for match %d: %w", matchID, err)
	}
	return nil
}

// FetchResults returns the result records of a match.
func (c *Client) FetchResults(ctx context.Context, matchID int) ([]model.ResultRecord, error) {
	var out []model.ResultRecord
	if err := c.read(ctx, "fetch_results", matchPath(matchID, "/results"), &out); err != nil {
		return nil, fmt.Errorf("fetch results for match %d: %w", matchID, err)
	}
	return out, nil
}

// UpsertResults submits result records.
func (c *Client) UpsertResults(ctx context.Context, p model.ResultPayload) error {
	if err := c.do(ctx, "upsert_results", http.MethodPost, "/results", p, nil); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// UpsertTeamOfficialAction records a caution or dismissal of a team
// official. Like UpsertEvent it is sent once.
func (c *Client) UpsertTeamOfficialAction(ctx context.Context, a model.OfficialAction) error {
	path := matchPath(a.MatchID, "/official-actions")
	if err := c.do(ctx, "upsert_official_action", http.MethodPost, path, a, nil); err != nil {
		return fmt.Errorf("report official %d: %w", a.OfficialID, err)
	}
	return nil
}

func matchPath(matchID int, suffix string) string {
	return "/matches/" + strconv.Itoa(matchID) + suffix
}

func (c *Client) read(ctx context.Context, op, path string, out any) error {
	policy := retryPolicy{attempts: c.retries + 1, initialDelay: c.retryDelay}
	return policy.execute(ctx, op, func() error {
		return c.do(ctx, op, http.MethodGet, path, nil, out)
	})
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.RecordStoreRequest(op, outcome)
		metrics.RecordStoreLatency(op, float64(time.Since(start).Milliseconds()))
	}()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "store request failed",
			logger.String("operation", op),
			logger.Error(err))
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug(ctx, "store request",
		logger.String("operation", op),
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Int64("duration_ms", time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return &statusError{code: resp.StatusCode, body: msg}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return nil
}
