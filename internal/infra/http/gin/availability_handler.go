package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomrate/internal/app/dto"
	calendarapp "roomrate/internal/app/handlers/calendar"
	quotesapp "roomrate/internal/app/handlers/quotes"
	"roomrate/internal/app/queries"
	"roomrate/internal/domain/shared/clock"
)

// AvailabilityHandler serves the month feed and the per-date selectability
// flags a date picker renders.
type AvailabilityHandler struct {
	Queries queries.Bus
	Clock   clock.Clock
	Logger  *slog.Logger
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	month, err := monthParam(c, h.now())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	q := calendarapp.GetFeedQuery{RoomID: c.Param("id"), Month: month}
	feed, err := queries.Ask[calendarapp.GetFeedQuery, dto.CalendarFeed](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h AvailabilityHandler) SelectableMonth(c *gin.Context) {
	month, err := monthParam(c, h.now())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	q := quotesapp.SelectableMonthQuery{RoomID: c.Param("id"), Month: month}
	result, err := queries.Ask[quotesapp.SelectableMonthQuery, dto.SelectableMonth](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) SelectableDate(c *gin.Context) {
	date, err := parseRequiredTime("date", c.Param("date"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	q := quotesapp.SelectableDateQuery{RoomID: c.Param("id"), Date: date}
	result, err := queries.Ask[quotesapp.SelectableDateQuery, dto.SelectableDay](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}

var _ AvailabilityHTTP = AvailabilityHandler{}
