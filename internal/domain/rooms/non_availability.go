package rooms

import (
	"strings"
	"time"

	"roomrate/internal/domain/shared/daterange"
)

// NonAvailability blacks out every date in [StartDate, EndDate] for one room.
type NonAvailability struct {
	ID        string
	RoomID    RoomID
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	CreatedAt time.Time
}

func (n NonAvailability) Window() daterange.Window {
	return daterange.Window{Start: n.StartDate, End: n.EndDate}
}

func (n NonAvailability) Covers(date time.Time) bool {
	return n.Window().Covers(date)
}

// Blocked reports whether any of the room's own windows covers date.
func (r *Room) Blocked(date time.Time) bool {
	for _, w := range r.NonAvailability {
		if w.Covers(date) {
			return true
		}
	}
	return false
}

type BlockParams struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Now       time.Time
}

// AddNonAvailability appends a blackout window. Blackouts may overlap each
// other; the union is what matters.
func (r *Room) AddNonAvailability(params BlockParams) (NonAvailability, error) {
	window, err := daterange.NewWindow(params.StartDate, params.EndDate)
	if err != nil {
		return NonAvailability{}, err
	}
	block := NonAvailability{
		ID:        params.ID,
		RoomID:    r.ID,
		StartDate: window.Start,
		EndDate:   window.End,
		Reason:    strings.TrimSpace(params.Reason),
		CreatedAt: params.Now.UTC(),
	}
	r.NonAvailability = append(r.NonAvailability, block)
	r.touch(params.Now)
	r.Record(NonAvailabilityAdded{RoomID: r.ID, BlockID: block.ID, Window: window, Reason: block.Reason, At: r.UpdatedAt})
	return block, nil
}

func (r *Room) RemoveNonAvailability(id string, now time.Time) error {
	for i, block := range r.NonAvailability {
		if block.ID != id {
			continue
		}
		r.NonAvailability = append(r.NonAvailability[:i:i], r.NonAvailability[i+1:]...)
		r.touch(now)
		r.Record(NonAvailabilityRemoved{RoomID: r.ID, BlockID: id, At: r.UpdatedAt})
		return nil
	}
	return ErrBlockNotFound
}
