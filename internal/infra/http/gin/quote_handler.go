package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"roomrate/internal/app/dto"
	quotesapp "roomrate/internal/app/handlers/quotes"
	"roomrate/internal/app/queries"
)

type QuoteHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// Quote prices ?check_in=&check_out=. A missing date is not an error: the
// response carries available=false, like an incomplete picker selection.
func (h QuoteHandler) Quote(c *gin.Context) {
	checkIn, err := parseOptionalTime("check_in", c.Query("check_in"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	checkOut, err := parseOptionalTime("check_out", c.Query("check_out"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	q := quotesapp.StayQuoteQuery{RoomID: c.Param("id"), CheckIn: checkIn, CheckOut: checkOut}
	quote, err := queries.Ask[quotesapp.StayQuoteQuery, dto.StayQuote](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

var _ QuoteHTTP = QuoteHandler{}
