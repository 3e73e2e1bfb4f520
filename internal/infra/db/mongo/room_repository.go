package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainrooms "roomrate/internal/domain/rooms"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection(roomsCollection)}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainrooms.RoomID) (*domainrooms.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainrooms.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) ByProperty(ctx context.Context, id domainrooms.PropertyID) ([]*domainrooms.Room, error) {
	cur, err := r.col.Find(ctx, bson.M{"property_id": string(id)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainrooms.Room
	for cur.Next(ctx) {
		var doc roomDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *RoomRepository) Save(ctx context.Context, room *domainrooms.Room) error {
	doc := newRoomDocument(room)
	doc.Version = room.Version + 1
	if err := saveVersioned(ctx, r.col, doc.ID, room.Version, doc); err != nil {
		return err
	}
	room.Version = doc.Version
	return nil
}

type roomDocument struct {
	ID              string             `bson:"_id"`
	PropertyID      string             `bson:"property_id"`
	Name            string             `bson:"name"`
	BasePrice       int64              `bson:"base_price"`
	GuestCapacity   int                `bson:"guest_capacity"`
	Stock           int                `bson:"stock"`
	PeakSeasonRates []peakRateDocument `bson:"peak_season_rates"`
	NonAvailability []windowDocument   `bson:"non_availability"`
	CreatedAt       int64              `bson:"created_at"`
	UpdatedAt       int64              `bson:"updated_at"`
	Version         int64              `bson:"version"`
}

type peakRateDocument struct {
	ID        string `bson:"id"`
	StartDate int64  `bson:"start_date"`
	EndDate   int64  `bson:"end_date"`
	Price     int64  `bson:"price"`
	CreatedAt int64  `bson:"created_at"`
}

type windowDocument struct {
	ID        string `bson:"id"`
	StartDate int64  `bson:"start_date"`
	EndDate   int64  `bson:"end_date"`
	Reason    string `bson:"reason"`
	CreatedAt int64  `bson:"created_at"`
}

func newRoomDocument(r *domainrooms.Room) roomDocument {
	doc := roomDocument{
		ID:            string(r.ID),
		PropertyID:    string(r.PropertyID),
		Name:          r.Name,
		BasePrice:     r.BasePrice,
		GuestCapacity: r.GuestCapacity,
		Stock:         r.Stock,
		CreatedAt:     timeToTimestamp(r.CreatedAt),
		UpdatedAt:     timeToTimestamp(r.UpdatedAt),
		Version:       r.Version,
	}
	doc.PeakSeasonRates = make([]peakRateDocument, 0, len(r.PeakSeasonRates))
	for _, p := range r.PeakSeasonRates {
		doc.PeakSeasonRates = append(doc.PeakSeasonRates, peakRateDocument{
			ID:        p.ID,
			StartDate: timeToTimestamp(p.StartDate),
			EndDate:   timeToTimestamp(p.EndDate),
			Price:     p.Price,
			CreatedAt: timeToTimestamp(p.CreatedAt),
		})
	}
	doc.NonAvailability = make([]windowDocument, 0, len(r.NonAvailability))
	for _, n := range r.NonAvailability {
		doc.NonAvailability = append(doc.NonAvailability, windowDocument{
			ID:        n.ID,
			StartDate: timeToTimestamp(n.StartDate),
			EndDate:   timeToTimestamp(n.EndDate),
			Reason:    n.Reason,
			CreatedAt: timeToTimestamp(n.CreatedAt),
		})
	}
	return doc
}

func (d roomDocument) toAggregate() *domainrooms.Room {
	id := domainrooms.RoomID(d.ID)
	room := &domainrooms.Room{
		ID:            id,
		PropertyID:    domainrooms.PropertyID(d.PropertyID),
		Name:          d.Name,
		BasePrice:     d.BasePrice,
		GuestCapacity: d.GuestCapacity,
		Stock:         d.Stock,
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
		Version:       d.Version,
	}
	for _, p := range d.PeakSeasonRates {
		room.PeakSeasonRates = append(room.PeakSeasonRates, domainrooms.PeakSeasonRate{
			ID:        p.ID,
			RoomID:    id,
			StartDate: timestampToTime(p.StartDate),
			EndDate:   timestampToTime(p.EndDate),
			Price:     p.Price,
			CreatedAt: timestampToTime(p.CreatedAt),
		})
	}
	for _, n := range d.NonAvailability {
		room.NonAvailability = append(room.NonAvailability, domainrooms.NonAvailability{
			ID:        n.ID,
			RoomID:    id,
			StartDate: timestampToTime(n.StartDate),
			EndDate:   timestampToTime(n.EndDate),
			Reason:    n.Reason,
			CreatedAt: timestampToTime(n.CreatedAt),
		})
	}
	return room
}
