package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "roomrate/internal/domain/booking"
	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) ListByRoom(ctx context.Context, roomID domainrooms.RoomID) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"room_id": string(roomID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	doc.Version = b.Version + 1
	if err := saveVersioned(ctx, r.col, doc.ID, b.Version, doc); err != nil {
		return err
	}
	b.Version = doc.Version
	return nil
}

type bookingDocument struct {
	ID         string            `bson:"_id"`
	RoomID     string            `bson:"room_id"`
	PropertyID string            `bson:"property_id"`
	GuestID    string            `bson:"guest_id"`
	Range      rangeDocument     `bson:"range"`
	Guests     int               `bson:"guests"`
	Price      breakdownDocument `bson:"price"`
	State      string            `bson:"state"`
	CreatedAt  int64             `bson:"created_at"`
	UpdatedAt  int64             `bson:"updated_at"`
	Version    int64             `bson:"version"`
}

type breakdownDocument struct {
	Nights                 int            `bson:"nights"`
	TotalPrice             int64          `bson:"total_price"`
	PeakSeasonDays         int            `bson:"peak_season_days"`
	PeakSeasonRatePerNight int64          `bson:"peak_season_rate_per_night"`
	Lines                  []lineDocument `bson:"lines"`
}

type lineDocument struct {
	Date         string `bson:"date"`
	Price        int64  `bson:"price"`
	IsPeakSeason bool   `bson:"is_peak_season"`
	Source       string `bson:"source"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	price := breakdownDocument{
		Nights:                 b.Price.Nights,
		TotalPrice:             b.Price.TotalPrice,
		PeakSeasonDays:         b.Price.PeakSeasonDays,
		PeakSeasonRatePerNight: b.Price.PeakSeasonRatePerNight,
		Lines:                  make([]lineDocument, 0, len(b.Price.Lines)),
	}
	for _, line := range b.Price.Lines {
		price.Lines = append(price.Lines, lineDocument{
			Date:         clock.DateKey(line.Date),
			Price:        line.Price,
			IsPeakSeason: line.IsPeakSeason,
			Source:       string(line.Source),
		})
	}
	return bookingDocument{
		ID:         string(b.ID),
		RoomID:     string(b.RoomID),
		PropertyID: string(b.PropertyID),
		GuestID:    b.GuestID,
		Range:      newRangeDocument(b.Range),
		Guests:     b.Guests,
		Price:      price,
		State:      string(b.State),
		CreatedAt:  timeToTimestamp(b.CreatedAt),
		UpdatedAt:  timeToTimestamp(b.UpdatedAt),
		Version:    b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	dr := d.Range.toRange()
	price := domainpricing.PriceBreakdown{
		RoomID:                 domainrooms.RoomID(d.RoomID),
		CheckIn:                dr.CheckIn,
		CheckOut:               dr.CheckOut,
		Nights:                 d.Price.Nights,
		TotalPrice:             d.Price.TotalPrice,
		PeakSeasonDays:         d.Price.PeakSeasonDays,
		PeakSeasonRatePerNight: d.Price.PeakSeasonRatePerNight,
		NightlyPrices:          make(map[string]int64, len(d.Price.Lines)),
	}
	for _, line := range d.Price.Lines {
		date, err := clock.ParseDateKey(line.Date)
		if err != nil {
			continue
		}
		price.Lines = append(price.Lines, domainpricing.NightlyLine{
			Date:         date,
			Price:        line.Price,
			IsPeakSeason: line.IsPeakSeason,
			Source:       domainpricing.Source(line.Source),
		})
		price.NightlyPrices[line.Date] = line.Price
	}
	return &domainbooking.Booking{
		ID:         domainbooking.BookingID(d.ID),
		RoomID:     domainrooms.RoomID(d.RoomID),
		PropertyID: domainrooms.PropertyID(d.PropertyID),
		GuestID:    d.GuestID,
		Range:      dr,
		Guests:     d.Guests,
		Price:      price,
		State:      domainbooking.BookingState(d.State),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}
