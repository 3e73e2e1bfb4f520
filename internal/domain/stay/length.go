package stay

import (
	"errors"
	"fmt"
	"time"

	"roomrate/internal/domain/shared/clock"
)

// DefaultMaxNights caps a single stay when no limit is configured.
const DefaultMaxNights = 365

var ErrStayTooLong = errors.New("stay: too many nights")

// CheckLength rejects stays longer than limit nights. A limit of zero or less
// disables the check.
func CheckLength(checkIn, checkOut time.Time, limit int) error {
	if limit <= 0 || checkIn.IsZero() || checkOut.IsZero() {
		return nil
	}
	if nights := clock.DaysBetween(checkIn, checkOut); nights > limit {
		return fmt.Errorf("%w: %d requested, %d allowed", ErrStayTooLong, nights, limit)
	}
	return nil
}
