package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	roomsapp "roomrate/internal/app/handlers/rooms"
	"roomrate/internal/app/middleware"
	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/shared/daterange"
	"roomrate/internal/domain/stay"
	mongostore "roomrate/internal/infra/db/mongo"
	"roomrate/internal/infra/storage/memory"
	"roomrate/internal/infra/storage/s3"
)

var errBadRequest = errors.New("http: bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainrooms.ErrRoomNotFound),
		errors.Is(err, domainrooms.ErrPeakSeasonNotFound),
		errors.Is(err, domainrooms.ErrBlockNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainbooking.ErrPriceChanged),
		errors.Is(err, domainbooking.ErrDatesNotSelectable),
		errors.Is(err, domainbooking.ErrInvalidState),
		errors.Is(err, domainavailability.ErrSoldOut),
		errors.Is(err, domainavailability.ErrReferenceExists),
		errors.Is(err, domainrooms.ErrPeakSeasonOverlap),
		errors.Is(err, memory.ErrStaleVersion),
		errors.Is(err, mongostore.ErrConcurrentUpdate),
		errors.Is(err, middleware.ErrReplayedFailure):
		return http.StatusConflict
	case isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, s3.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domainrooms.ErrRoomIDRequired),
		errors.Is(err, roomsapp.ErrRoomIDRequired),
		errors.Is(err, domainrooms.ErrPropertyRequired),
		errors.Is(err, domainrooms.ErrNameRequired),
		errors.Is(err, domainrooms.ErrBasePrice),
		errors.Is(err, domainrooms.ErrGuestCapacity),
		errors.Is(err, domainrooms.ErrStock),
		errors.Is(err, domainrooms.ErrPeakSeasonPrice),
		errors.Is(err, domainbooking.ErrInvalidGuests),
		errors.Is(err, domainbooking.ErrGuestsExceedRoom),
		errors.Is(err, domainbooking.ErrGuestRequired),
		errors.Is(err, domainbooking.ErrEmptyQuote),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, daterange.ErrInvalidWindow),
		errors.Is(err, clock.ErrInvalidMonth),
		errors.Is(err, stay.ErrStayTooLong):
		return true
	default:
		return false
	}
}

func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(c.Request.Context(), "request failed", "status", status, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
