package rooms

import (
	"strings"
	"time"

	"roomrate/internal/domain/shared/daterange"
)

// PeakSeasonRate overrides the base price for every night in [StartDate, EndDate].
type PeakSeasonRate struct {
	ID        string
	RoomID    RoomID
	StartDate time.Time
	EndDate   time.Time
	Price     int64
	CreatedAt time.Time
}

func (p PeakSeasonRate) Window() daterange.Window {
	return daterange.Window{Start: p.StartDate, End: p.EndDate}
}

func (p PeakSeasonRate) Covers(date time.Time) bool {
	return p.Window().Covers(date)
}

// supersedes orders overlapping windows: the most recently created window
// wins, then the later start, then the greater id.
func (p PeakSeasonRate) supersedes(other PeakSeasonRate) bool {
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.After(other.CreatedAt)
	}
	if !p.StartDate.Equal(other.StartDate) {
		return p.StartDate.After(other.StartDate)
	}
	return strings.Compare(p.ID, other.ID) > 0
}

// PeakSeasonRateOn returns the window applying to date. When stored windows
// overlap the winner is deterministic regardless of slice order.
func (r *Room) PeakSeasonRateOn(date time.Time) (PeakSeasonRate, bool) {
	var (
		best  PeakSeasonRate
		found bool
	)
	for _, rate := range r.PeakSeasonRates {
		if !rate.Covers(date) {
			continue
		}
		if !found || rate.supersedes(best) {
			best = rate
			found = true
		}
	}
	return best, found
}

type PeakSeasonParams struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Price     int64
	Now       time.Time
}

// AddPeakSeasonRate validates and appends a new window. Overlaps with an
// existing window of this room are rejected.
func (r *Room) AddPeakSeasonRate(params PeakSeasonParams) (PeakSeasonRate, error) {
	window, err := daterange.NewWindow(params.StartDate, params.EndDate)
	if err != nil {
		return PeakSeasonRate{}, err
	}
	if params.Price < 0 {
		return PeakSeasonRate{}, ErrPeakSeasonPrice
	}
	for _, existing := range r.PeakSeasonRates {
		if existing.Window().Overlaps(window) {
			return PeakSeasonRate{}, ErrPeakSeasonOverlap
		}
	}
	rate := PeakSeasonRate{
		ID:        params.ID,
		RoomID:    r.ID,
		StartDate: window.Start,
		EndDate:   window.End,
		Price:     params.Price,
		CreatedAt: params.Now.UTC(),
	}
	r.PeakSeasonRates = append(r.PeakSeasonRates, rate)
	r.touch(params.Now)
	r.Record(PeakSeasonRateAdded{RoomID: r.ID, RateID: rate.ID, Window: window, Price: rate.Price, At: r.UpdatedAt})
	return rate, nil
}

func (r *Room) RemovePeakSeasonRate(id string, now time.Time) error {
	for i, rate := range r.PeakSeasonRates {
		if rate.ID != id {
			continue
		}
		r.PeakSeasonRates = append(r.PeakSeasonRates[:i:i], r.PeakSeasonRates[i+1:]...)
		r.touch(now)
		r.Record(PeakSeasonRateRemoved{RoomID: r.ID, RateID: id, At: r.UpdatedAt})
		return nil
	}
	return ErrPeakSeasonNotFound
}
