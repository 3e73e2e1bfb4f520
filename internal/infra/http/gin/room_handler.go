package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	roomsapp "roomrate/internal/app/handlers/rooms"
	"roomrate/internal/app/queries"
)

// RoomHandler is the tenant rate editor: rooms, base price, peak-season
// windows and blackout windows.
type RoomHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createRoomRequest struct {
	ID            string `json:"id"`
	PropertyID    string `json:"property_id"`
	Name          string `json:"name"`
	BasePrice     int64  `json:"base_price"`
	GuestCapacity int    `json:"guest_capacity"`
	Stock         int    `json:"stock"`
}

type basePriceRequest struct {
	BasePrice int64 `json:"base_price"`
}

type windowRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Price     int64  `json:"price"`
	Reason    string `json:"reason"`
}

func (r windowRequest) dates() (time.Time, time.Time, error) {
	start, err := parseRequiredTime("start_date", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseRequiredTime("end_date", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (h RoomHandler) Create(c *gin.Context) {
	var req createRoomRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := roomsapp.CreateRoomCommand{
		RoomID:        req.ID,
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		BasePrice:     req.BasePrice,
		GuestCapacity: req.GuestCapacity,
		Stock:         req.Stock,
	}
	room, err := commands.Dispatch[roomsapp.CreateRoomCommand, *dto.Room](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h RoomHandler) Get(c *gin.Context) {
	room, err := queries.Ask[roomsapp.GetRoomQuery, dto.Room](c.Request.Context(), h.Queries, roomsapp.GetRoomQuery{RoomID: c.Param("id")})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h RoomHandler) ListByProperty(c *gin.Context) {
	q := roomsapp.ListPropertyRoomsQuery{PropertyID: c.Param("id")}
	rooms, err := queries.Ask[roomsapp.ListPropertyRoomsQuery, []dto.Room](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h RoomHandler) UpdateBasePrice(c *gin.Context) {
	var req basePriceRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := roomsapp.UpdateBasePriceCommand{RoomID: c.Param("id"), BasePrice: req.BasePrice}
	h.respondRoom(c, http.StatusOK, func() (*dto.Room, error) {
		return commands.Dispatch[roomsapp.UpdateBasePriceCommand, *dto.Room](c.Request.Context(), h.Commands, cmd)
	})
}

func (h RoomHandler) AddPeakRate(c *gin.Context) {
	var req windowRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	start, end, err := req.dates()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := roomsapp.AddPeakSeasonRateCommand{RoomID: c.Param("id"), StartDate: start, EndDate: end, Price: req.Price}
	h.respondRoom(c, http.StatusCreated, func() (*dto.Room, error) {
		return commands.Dispatch[roomsapp.AddPeakSeasonRateCommand, *dto.Room](c.Request.Context(), h.Commands, cmd)
	})
}

func (h RoomHandler) RemovePeakRate(c *gin.Context) {
	cmd := roomsapp.RemovePeakSeasonRateCommand{RoomID: c.Param("id"), RateID: c.Param("rateId")}
	h.respondRoom(c, http.StatusOK, func() (*dto.Room, error) {
		return commands.Dispatch[roomsapp.RemovePeakSeasonRateCommand, *dto.Room](c.Request.Context(), h.Commands, cmd)
	})
}

func (h RoomHandler) AddBlock(c *gin.Context) {
	var req windowRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	start, end, err := req.dates()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := roomsapp.AddNonAvailabilityCommand{RoomID: c.Param("id"), StartDate: start, EndDate: end, Reason: req.Reason}
	h.respondRoom(c, http.StatusCreated, func() (*dto.Room, error) {
		return commands.Dispatch[roomsapp.AddNonAvailabilityCommand, *dto.Room](c.Request.Context(), h.Commands, cmd)
	})
}

func (h RoomHandler) RemoveBlock(c *gin.Context) {
	cmd := roomsapp.RemoveNonAvailabilityCommand{RoomID: c.Param("id"), BlockID: c.Param("blockId")}
	h.respondRoom(c, http.StatusOK, func() (*dto.Room, error) {
		return commands.Dispatch[roomsapp.RemoveNonAvailabilityCommand, *dto.Room](c.Request.Context(), h.Commands, cmd)
	})
}

func (h RoomHandler) respondRoom(c *gin.Context, status int, run func() (*dto.Room, error)) {
	room, err := run()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(status, room)
}

var _ RoomHTTP = RoomHandler{}
