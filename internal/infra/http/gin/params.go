package ginserver

import (
	"fmt"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomrate/internal/domain/shared/clock"
)

// parseFlexibleTime accepts RFC3339 instants and bare yyyy-MM-dd dates; bare
// dates are read as business-zone midnight.
func parseFlexibleTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := clock.ParseDateKey(raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseOptionalTime returns the zero time for an empty value.
func parseOptionalTime(name, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, ok := parseFlexibleTime(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s must be yyyy-MM-dd or RFC3339", errBadRequest, name)
	}
	return t, nil
}

func parseRequiredTime(name, raw string) (time.Time, error) {
	t, ok := parseFlexibleTime(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s must be yyyy-MM-dd or RFC3339", errBadRequest, name)
	}
	return t, nil
}

// monthParam reads ?month=yyyy-MM, defaulting to the current business month.
func monthParam(c *gin.Context, now time.Time) (clock.Month, error) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		return clock.MonthOf(now), nil
	}
	return clock.ParseMonth(raw)
}

func bindJSON(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
