package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"roomrate/internal/app/dto"
	"roomrate/internal/app/policies"
	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

var (
	ErrNotConfigured = errors.New("feed: client not configured")
	ErrInvalidFeed   = errors.New("feed: invalid calendar feed")
)

// Client fetches month feeds from the remote calendar service:
// GET <BaseURL>?room_id=<id>&month=<yyyy-MM>.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

func (c *Client) Fetch(ctx context.Context, roomID domainrooms.RoomID, month clock.Month) (*domainpricing.CalendarIndex, error) {
	if c == nil || c.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	q := endpoint.Query()
	q.Set("room_id", string(roomID))
	q.Set("month", month.String())
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logError("calendar feed request failed", roomID, month, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("feed: calendar service returned status %d: %s", resp.StatusCode, string(snippet))
		c.logError("calendar feed returned error", roomID, month, err)
		return nil, err
	}
	var body dto.CalendarFeed
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logError("calendar feed decode failed", roomID, month, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	return Decode(body, roomID, month)
}

// Decode validates a wire feed into an index. The feed must describe the
// requested room and month; every day must lie inside that month with
// non-negative price and stock.
func Decode(body dto.CalendarFeed, roomID domainrooms.RoomID, month clock.Month) (*domainpricing.CalendarIndex, error) {
	if body.RoomID != string(roomID) {
		return nil, fmt.Errorf("%w: room %q, want %q", ErrInvalidFeed, body.RoomID, roomID)
	}
	got, err := clock.ParseMonth(body.Month)
	if err != nil || got != month {
		return nil, fmt.Errorf("%w: month %q, want %q", ErrInvalidFeed, body.Month, month.String())
	}
	if body.BasePrice < 0 {
		return nil, fmt.Errorf("%w: negative base price", ErrInvalidFeed)
	}
	entries := make([]domainpricing.CalendarDayEntry, 0, len(body.Days))
	for _, day := range body.Days {
		date, err := clock.ParseDateKey(day.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidFeed, day.Date)
		}
		if clock.MonthOf(date) != month {
			return nil, fmt.Errorf("%w: date %s outside %s", ErrInvalidFeed, day.Date, month.String())
		}
		if day.Price < 0 || day.AvailableStock < 0 {
			return nil, fmt.Errorf("%w: negative price or stock on %s", ErrInvalidFeed, day.Date)
		}
		entries = append(entries, domainpricing.CalendarDayEntry{
			Date:           date,
			Price:          day.Price,
			IsAvailable:    day.IsAvailable,
			AvailableStock: day.AvailableStock,
			IsPeakSeason:   day.IsPeakSeason,
		})
	}
	return domainpricing.NewCalendarIndex(roomID, month, body.BasePrice, entries), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) logError(msg string, roomID domainrooms.RoomID, month clock.Month, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, "room_id", roomID, "month", month.String(), "error", err)
}

var _ policies.CalendarFeed = (*Client)(nil)
