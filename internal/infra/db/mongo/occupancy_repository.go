package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainavailability "roomrate/internal/domain/availability"
	domainrooms "roomrate/internal/domain/rooms"
	domainrange "roomrate/internal/domain/shared/daterange"
)

type OccupancyRepository struct {
	col *mongo.Collection
}

func NewOccupancyRepository(db *mongo.Database) *OccupancyRepository {
	return &OccupancyRepository{col: db.Collection(occupancyCollection)}
}

func (r *OccupancyRepository) Occupancy(ctx context.Context, id domainrooms.RoomID) (*domainavailability.Occupancy, error) {
	var doc occupancyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainavailability.ErrOccupancyMissing
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *OccupancyRepository) Save(ctx context.Context, occ *domainavailability.Occupancy) error {
	doc := newOccupancyDocument(occ)
	doc.Version = occ.Version + 1
	if err := saveVersioned(ctx, r.col, doc.ID, occ.Version, doc); err != nil {
		return err
	}
	occ.Version = doc.Version
	return nil
}

type occupancyDocument struct {
	ID           string                `bson:"_id"`
	Stock        int                   `bson:"stock"`
	Reservations []reservationDocument `bson:"reservations"`
	Version      int64                 `bson:"version"`
}

type reservationDocument struct {
	Reference string        `bson:"reference"`
	Range     rangeDocument `bson:"range"`
	CreatedAt int64         `bson:"created_at"`
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func newRangeDocument(dr domainrange.DateRange) rangeDocument {
	return rangeDocument{CheckIn: timeToTimestamp(dr.CheckIn), CheckOut: timeToTimestamp(dr.CheckOut)}
}

func (d rangeDocument) toRange() domainrange.DateRange {
	return domainrange.DateRange{CheckIn: timestampToTime(d.CheckIn), CheckOut: timestampToTime(d.CheckOut)}
}

func newOccupancyDocument(o *domainavailability.Occupancy) occupancyDocument {
	doc := occupancyDocument{
		ID:           string(o.RoomID),
		Stock:        o.Stock,
		Reservations: make([]reservationDocument, 0, len(o.Reservations)),
		Version:      o.Version,
	}
	for _, res := range o.Reservations {
		doc.Reservations = append(doc.Reservations, reservationDocument{
			Reference: res.Reference,
			Range:     newRangeDocument(res.Range),
			CreatedAt: timeToTimestamp(res.CreatedAt),
		})
	}
	return doc
}

func (d occupancyDocument) toAggregate() *domainavailability.Occupancy {
	occ := domainavailability.NewOccupancy(domainrooms.RoomID(d.ID), d.Stock)
	occ.Version = d.Version
	for _, res := range d.Reservations {
		occ.Reservations = append(occ.Reservations, domainavailability.Reservation{
			Range:     res.Range.toRange(),
			Reference: res.Reference,
			CreatedAt: timestampToTime(res.CreatedAt),
		})
	}
	return occ
}
