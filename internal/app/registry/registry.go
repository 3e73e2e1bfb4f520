package registry

import (
	"log/slog"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/engine"
	bookingapp "roomrate/internal/app/handlers/booking"
	calendarapp "roomrate/internal/app/handlers/calendar"
	quotesapp "roomrate/internal/app/handlers/quotes"
	roomsapp "roomrate/internal/app/handlers/rooms"
	"roomrate/internal/app/middleware"
	"roomrate/internal/app/outbox"
	"roomrate/internal/app/policies"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/uow"
	"roomrate/internal/domain/shared/clock"
)

// Deps are the ports every handler is built from.
type Deps struct {
	UoWFactory  uow.UoWFactory
	Indexes     policies.CalendarIndexes
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Archive     policies.ReportArchive
	Idempotency middleware.IdempotencyStore
	Clock       clock.Clock
	// MaxStayNights overrides stay.DefaultMaxNights when positive.
	MaxStayNights int
	Logger        *slog.Logger
	NewID         func() string
}

type Buses struct {
	Commands commands.Bus
	Queries  queries.Bus

	CommandKeys []string
	QueryKeys   []string
}

// Build registers every handler and wraps the buses in the middleware
// pipeline: logging, validation, idempotency, transaction, outbox flush.
func Build(d Deps) Buses {
	if d.Encoder == nil {
		d.Encoder = outbox.JSONEventEncoder{IDGenerator: d.NewID}
	}
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	eng := engine.New(d.Clock)
	if d.MaxStayNights > 0 {
		eng.MaxStayNights = d.MaxStayNights
	}
	recorder := outbox.Recorder{Outbox: d.Outbox, Encoder: d.Encoder}
	editor := roomsapp.Editor{Events: recorder, Clock: d.Clock, Logger: d.Logger, NewID: d.NewID}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, roomsapp.CreateRoomCommand{}.Key(), &roomsapp.CreateRoomHandler{Editor: editor})
	commands.RegisterHandler(commandBus, roomsapp.UpdateBasePriceCommand{}.Key(), &roomsapp.UpdateBasePriceHandler{Editor: editor})
	commands.RegisterHandler(commandBus, roomsapp.AddPeakSeasonRateCommand{}.Key(), &roomsapp.AddPeakSeasonRateHandler{Editor: editor})
	commands.RegisterHandler(commandBus, roomsapp.RemovePeakSeasonRateCommand{}.Key(), &roomsapp.RemovePeakSeasonRateHandler{Editor: editor})
	commands.RegisterHandler(commandBus, roomsapp.AddNonAvailabilityCommand{}.Key(), &roomsapp.AddNonAvailabilityHandler{Editor: editor})
	commands.RegisterHandler(commandBus, roomsapp.RemoveNonAvailabilityCommand{}.Key(), &roomsapp.RemoveNonAvailabilityHandler{Editor: editor})
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		Indexes: d.Indexes,
		Engine:  eng,
		Events:  recorder,
		Logger:  d.Logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), &bookingapp.CancelBookingHandler{
		Clock:  d.Clock,
		Events: recorder,
		Logger: d.Logger,
	})
	commands.RegisterHandler(commandBus, calendarapp.ExportReportCommand{}.Key(), &calendarapp.ExportReportHandler{
		UoWFactory: d.UoWFactory,
		Indexes:    d.Indexes,
		Archive:    d.Archive,
		Logger:     d.Logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, roomsapp.GetRoomQuery{}.Key(), &roomsapp.GetRoomHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, roomsapp.ListPropertyRoomsQuery{}.Key(), &roomsapp.ListPropertyRoomsHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, calendarapp.GetFeedQuery{}.Key(), &calendarapp.GetFeedHandler{UoWFactory: d.UoWFactory, Indexes: d.Indexes})
	queries.RegisterHandler(queryBus, calendarapp.PropertyReportQuery{}.Key(), &calendarapp.PropertyReportHandler{UoWFactory: d.UoWFactory, Indexes: d.Indexes})
	queries.RegisterHandler(queryBus, quotesapp.StayQuoteQuery{}.Key(), &quotesapp.StayQuoteHandler{UoWFactory: d.UoWFactory, Indexes: d.Indexes, Engine: eng})
	queries.RegisterHandler(queryBus, quotesapp.SelectableMonthQuery{}.Key(), &quotesapp.SelectableMonthHandler{UoWFactory: d.UoWFactory, Indexes: d.Indexes, Engine: eng})
	queries.RegisterHandler(queryBus, quotesapp.SelectableDateQuery{}.Key(), &quotesapp.SelectableDateHandler{UoWFactory: d.UoWFactory, Indexes: d.Indexes, Engine: eng})
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{UoWFactory: d.UoWFactory})

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mws := []middleware.CommandMiddleware{
		middleware.Logging(logger),
		middleware.Validation(middleware.SelfValidator{}),
	}
	if d.Idempotency != nil {
		mws = append(mws, middleware.Idempotency(d.Idempotency, nil))
	}
	mws = append(mws,
		middleware.Transaction(d.UoWFactory, nil),
		middleware.OutboxFlush(d.Outbox),
	)

	return Buses{
		Commands:    middleware.ChainCommands(commandBus, mws...),
		Queries:     middleware.ChainQueries(queryBus, middleware.QueryLogging(logger), middleware.QueryValidation(middleware.SelfValidator{})),
		CommandKeys: commandBus.Keys(),
		QueryKeys:   queryBus.Keys(),
	}
}
