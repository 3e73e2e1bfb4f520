package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"

	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainrooms "roomrate/internal/domain/rooms"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	RoomsRepo     domainrooms.Repository
	OccupancyRepo domainavailability.Repository
	BookingsRepo  domainbooking.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

func NewFactory(db *mongo.Database) Factory {
	return Factory{
		DB:            db,
		RoomsRepo:     NewRoomRepository(db),
		OccupancyRepo: NewOccupancyRepository(db),
		BookingsRepo:  NewBookingRepository(db),
	}
}

// Begin starts a MongoDB session/transaction. Read-only units read from a
// snapshot so a quote sees one consistent room and ledger.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if opts.ReadOnly {
		txnOpts = txnOpts.SetReadConcern(readconcern.Snapshot())
	}
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:   session,
		rooms:     f.RoomsRepo,
		occupancy: f.OccupancyRepo,
		bookings:  f.BookingsRepo,
	}, nil
}

type Unit struct {
	session mongo.Session

	rooms     domainrooms.Repository
	occupancy domainavailability.Repository
	bookings  domainbooking.Repository
}

func (u *Unit) Rooms() domainrooms.Repository            { return u.rooms }
func (u *Unit) Occupancy() domainavailability.Repository { return u.occupancy }
func (u *Unit) Bookings() domainbooking.Repository       { return u.bookings }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

var (
	_ uow.UoWFactory = Factory{}
	_ uow.UnitOfWork = (*Unit)(nil)
)
