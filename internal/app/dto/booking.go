package dto

import (
	"time"

	domainbooking "roomrate/internal/domain/booking"
)

type Booking struct {
	ID            string           `json:"id"`
	RoomID        string           `json:"room_id"`
	PropertyID    string           `json:"property_id"`
	GuestID       string           `json:"guest_id"`
	CheckIn       time.Time        `json:"check_in"`
	CheckOut      time.Time        `json:"check_out"`
	Nights        int              `json:"nights"`
	Guests        int              `json:"guests"`
	Status        string           `json:"status"`
	Total         MoneyDTO         `json:"total"`
	NightlyPrices map[string]int64 `json:"nightly_prices"`
	CreatedAt     time.Time        `json:"created_at"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	if b == nil {
		return Booking{}
	}
	return Booking{
		ID:            string(b.ID),
		RoomID:        string(b.RoomID),
		PropertyID:    string(b.PropertyID),
		GuestID:       b.GuestID,
		CheckIn:       b.Range.CheckIn,
		CheckOut:      b.Range.CheckOut,
		Nights:        b.Price.Nights,
		Guests:        b.Guests,
		Status:        string(b.State),
		Total:         MapMoney(b.Total()),
		NightlyPrices: b.Price.NightlyPrices,
		CreatedAt:     b.CreatedAt,
	}
}
