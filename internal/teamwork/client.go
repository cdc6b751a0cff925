package teamwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/christopherklint97/billr/internal/timesheet"
	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL = "https://codewonderland.teamwork.com"

	// Teamwork only checks that a password is present when the API key is
	// the username.
	basicAuthPassword = "f"

	fromDateLayout = "20060102"
)

// ErrNoProgress is returned when a full run of pages ends on the same date it
// started from, so restarting from the last entry's date cannot move forward.
var ErrNoProgress = errors.New("pagination made no progress")

// Limits bounds how Client walks the time_entries listing.
type Limits struct {
	PageSize      int
	MaxPageOffset int           // highest page requested before restarting from the last entry's date
	MaxCalls      int           // requests allowed before pausing
	Pause         time.Duration // how long to pause once MaxCalls is reached
}

func DefaultLimits() Limits {
	return Limits{
		PageSize:      500,
		MaxPageOffset: 90,
		MaxCalls:      140,
		Pause:         60 * time.Second,
	}
}

// Client reads time entries from the Teamwork API. Requests are issued one
// at a time.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limits     Limits
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewClient(apiKey string, baseURL string, limits Limits, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	defaults := DefaultLimits()
	if limits.PageSize <= 0 {
		limits.PageSize = defaults.PageSize
	}
	if limits.MaxPageOffset <= 0 {
		limits.MaxPageOffset = defaults.MaxPageOffset
	}
	if limits.MaxCalls <= 0 {
		limits.MaxCalls = defaults.MaxCalls
	}
	if limits.Pause <= 0 {
		limits.Pause = defaults.Pause
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		limits:     limits,
		logger:     logger,
		sleep:      sleepContext,
	}
}

// FetchEntries returns every time entry logged on or after from.
//
// Pages are requested until one comes back with fewer than PageSize parsed
// entries. The page counter never exceeds MaxPageOffset: past it, paging
// restarts at page 1 from the date of the last entry seen. That re-reads
// entries from that day, so callers are expected to deduplicate.
func (c *Client) FetchEntries(ctx context.Context, from time.Time) ([]timesheet.TimeEntry, error) {
	pace := &pacer{
		maxCalls: c.limits.MaxCalls,
		pause:    c.limits.Pause,
		sleep:    c.sleep,
		logger:   c.logger,
	}
	fromDate := from.Format(fromDateLayout)
	cycleStart := fromDate

	if err := pace.wait(ctx); err != nil {
		return nil, err
	}
	entries, err := c.fetchPage(ctx, fromDate, 0)
	if err != nil {
		return nil, err
	}
	all := entries

	page := 0
	for len(entries) == c.limits.PageSize {
		page++
		if page > c.limits.MaxPageOffset {
			page = 1
			fromDate = all[len(all)-1].Date.Format(fromDateLayout)
			if fromDate == cycleStart {
				return nil, fmt.Errorf("%w: more than %d pages of entries on %s", ErrNoProgress, c.limits.MaxPageOffset, fromDate)
			}
			cycleStart = fromDate
			c.logger.Info("page ceiling reached, restarting from last entry date", "fromdate", fromDate, "fetched", len(all))
		}

		if err := pace.wait(ctx); err != nil {
			return nil, err
		}
		entries, err = c.fetchPage(ctx, fromDate, page)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}

	c.logger.Info("fetched time entries", "count", len(all), "last_page", page)
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, fromDate string, page int) ([]timesheet.TimeEntry, error) {
	path := fmt.Sprintf("/time_entries.json?pageSize=%d&page=%d&fromdate=%s", c.limits.PageSize, page, fromDate)
	data, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("getting time entries page %d: %w", page, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: time entries page %d is not valid JSON", timesheet.ErrJSONParsing, page)
	}
	list := gjson.GetBytes(data, "time-entries")
	if !list.Exists() {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: time-entries on page %d is not an array", timesheet.ErrJSONParsing, page)
	}

	raw := list.Array()
	var entries []timesheet.TimeEntry
	for i, item := range raw {
		entry, err := parseEntry(item)
		if err != nil {
			c.logger.Warn("skipping time entry", "page", page, "index", i, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	c.logger.Debug("time entries page", "page", page, "fromdate", fromDate, "parsed", len(entries), "raw", len(raw))
	return entries, nil
}

func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.SetBasicAuth(c.apiKey, basicAuthPassword)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("teamwork API request", "path", path)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request transport error", "path", path, "error", err, "elapsed", time.Since(requestStart))
		return nil, fmt.Errorf("%w: %w", timesheet.ErrNetworkRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", timesheet.ErrNetworkRequest, err)
	}

	c.logger.Debug("teamwork API response", "path", path, "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(requestStart))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("API request failed", "path", path, "status", resp.StatusCode, "response", truncate(string(respBody), 200))
		return nil, fmt.Errorf("%w: API error (status %d): %s", timesheet.ErrNetworkRequest, resp.StatusCode, truncate(string(respBody), 200))
	}

	return respBody, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
