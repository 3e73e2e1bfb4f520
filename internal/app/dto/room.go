package dto

import (
	"time"

	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

type PeakSeasonRate struct {
	ID        string    `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type NonAvailability struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

type Room struct {
	ID              string            `json:"id"`
	PropertyID      string            `json:"property_id"`
	Name            string            `json:"name"`
	BasePrice       int64             `json:"base_price"`
	GuestCapacity   int               `json:"guest_capacity"`
	Stock           int               `json:"stock"`
	PeakSeasonRates []PeakSeasonRate  `json:"peak_season_rates"`
	NonAvailability []NonAvailability `json:"non_availability"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func MapRoom(room *domainrooms.Room) Room {
	if room == nil {
		return Room{}
	}
	out := Room{
		ID:              string(room.ID),
		PropertyID:      string(room.PropertyID),
		Name:            room.Name,
		BasePrice:       room.BasePrice,
		GuestCapacity:   room.GuestCapacity,
		Stock:           room.Stock,
		PeakSeasonRates: make([]PeakSeasonRate, 0, len(room.PeakSeasonRates)),
		NonAvailability: make([]NonAvailability, 0, len(room.NonAvailability)),
		UpdatedAt:       room.UpdatedAt,
	}
	for _, rate := range room.PeakSeasonRates {
		out.PeakSeasonRates = append(out.PeakSeasonRates, PeakSeasonRate{
			ID:        rate.ID,
			StartDate: clock.DateKey(rate.StartDate),
			EndDate:   clock.DateKey(rate.EndDate),
			Price:     rate.Price,
			CreatedAt: rate.CreatedAt,
		})
	}
	for _, block := range room.NonAvailability {
		out.NonAvailability = append(out.NonAvailability, NonAvailability{
			ID:        block.ID,
			StartDate: clock.DateKey(block.StartDate),
			EndDate:   clock.DateKey(block.EndDate),
			Reason:    block.Reason,
		})
	}
	return out
}
