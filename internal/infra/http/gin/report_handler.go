package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	calendarapp "roomrate/internal/app/handlers/calendar"
	"roomrate/internal/app/queries"
	"roomrate/internal/domain/shared/clock"
)

type ReportHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Clock    clock.Clock
	Logger   *slog.Logger
}

func (h ReportHandler) Report(c *gin.Context) {
	month, err := monthParam(c, h.now())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	q := calendarapp.PropertyReportQuery{PropertyID: c.Param("id"), Month: month}
	report, err := queries.Ask[calendarapp.PropertyReportQuery, dto.PropertyReport](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h ReportHandler) Export(c *gin.Context) {
	month, err := monthParam(c, h.now())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := calendarapp.ExportReportCommand{PropertyID: c.Param("id"), Month: month}
	export, err := commands.Dispatch[calendarapp.ExportReportCommand, *dto.ReportExport](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

func (h ReportHandler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}

var _ ReportHTTP = ReportHandler{}
