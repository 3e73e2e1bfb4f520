package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	calendarapp "roomrate/internal/app/handlers/calendar"
	"roomrate/internal/app/middleware"
	appoutbox "roomrate/internal/app/outbox"
	"roomrate/internal/app/policies"
	"roomrate/internal/app/registry"
	"roomrate/internal/app/uow"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/infra/broker/kafka"
	"roomrate/internal/infra/config"
	mongostore "roomrate/internal/infra/db/mongo"
	"roomrate/internal/infra/feed"
	"roomrate/internal/infra/fixtures"
	ginserver "roomrate/internal/infra/http/gin"
	"roomrate/internal/infra/inbox"
	"roomrate/internal/infra/obs"
	infraoutbox "roomrate/internal/infra/outbox"
	"roomrate/internal/infra/storage/memory"
	"roomrate/internal/infra/storage/s3"
)

const (
	serviceName     = "roomrate"
	idempotencyTTL  = 24 * time.Hour
	inboxTTL        = 24 * time.Hour
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env, getenv("LOG_LEVEL", "info"))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger = obs.NewLogger(cfg.Env, cfg.LogLevel)

	zone, err := clock.LoadZone(cfg.BusinessTZ)
	if err != nil {
		logger.Error("invalid business timezone", "tz", cfg.BusinessTZ, "error", err)
		os.Exit(1)
	}
	clock.SetZone(zone)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	fixturesPath := cfg.RoomsFixtures
	if fixturesPath == "" {
		fixturesPath = fixtures.DefaultPath()
	}
	if res, err := fixtures.LoadRooms(ctx, fixturesPath, app.buses.Commands, logger); err != nil {
		logger.Warn("room fixtures load failed", "error", err, "path", fixturesPath)
	} else if res.Rooms > 0 {
		logger.Info("room fixtures loaded", "rooms", res.Rooms, "peak_rates", res.PeakRates, "blocks", res.Blocks, "skipped", res.Skipped)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, app.health, app.handlers(logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.worker.Run(gctx)
	})
	if app.consumer != nil {
		g.Go(func() error {
			return app.consumer.Run(gctx, app.topics)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode, "feed", cfg.FeedMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		stop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("service stopped with error", "error", err)
		app.close(logger)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	instance string
	group    string
	buses    registry.Buses
	clock    clock.Clock
	worker   *infraoutbox.Worker
	consumer *kafka.Consumer
	topics   []string
	health   obs.HealthHandlers
	closers  []func(context.Context) error
	closed   bool
}

type storage struct {
	factory     uow.UoWFactory
	outbox      appoutbox.Outbox
	queue       infraoutbox.Queue
	idempotency middleware.IdempotencyStore
	inbox       inbox.Inbox
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	instance := uuid.NewString()[:8]
	app := &application{
		instance: instance,
		group:    kafka.InstanceGroup(cfg.KafkaConsumerGroup, instance),
		clock:    clock.System{},
		health:   obs.HealthHandlers{Checks: map[string]obs.Check{}},
	}

	store, err := app.buildStorage(ctx, cfg, logger)
	if err != nil {
		app.close(logger)
		return nil, err
	}

	loader := &feed.Loader{
		Feed:   calendarFeed(cfg, store.factory, logger),
		Store:  feed.NewIndexStore(cfg.FeedCacheTTL),
		Logger: logger,
	}
	events := &kafka.CloudEventHandler{
		Inbox:   store.inbox,
		Handler: &calendarapp.Invalidator{Indexes: loader, Logger: logger},
		Logger:  logger,
	}

	producer, err := app.buildMessaging(cfg, events, logger)
	if err != nil {
		app.close(logger)
		return nil, err
	}
	app.worker = &infraoutbox.Worker{
		Queue:       store.queue,
		Producer:    producer,
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Source:      serviceName,
		ID:          serviceName + "-" + app.instance,
		Backoff:     cfg.RetryBackoff,
		Logger:      logger,
	}

	app.buses = registry.Build(registry.Deps{
		UoWFactory:    store.factory,
		Indexes:       loader,
		Outbox:        store.outbox,
		Archive:       app.buildArchive(cfg, logger),
		Idempotency:   store.idempotency,
		Clock:         app.clock,
		MaxStayNights: cfg.MaxStayNights,
		Logger:        logger,
		NewID:         uuid.NewString,
	})
	logger.Info("buses ready", "commands", app.buses.CommandKeys, "queries", app.buses.QueryKeys)
	return app, nil
}

func (a *application) buildStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, error) {
	if cfg.StorageMode != config.StorageMongo {
		box := memory.NewOutbox()
		return storage{
			factory:     memory.NewFactory(memory.NewStore()),
			outbox:      box,
			queue:       box,
			idempotency: memory.NewIdempotencyStore(idempotencyTTL),
			inbox:       memory.NewInbox(),
		}, nil
	}

	client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return storage{}, err
	}
	a.closers = append(a.closers, client.Close)
	a.health.Checks["mongo"] = client.Ping
	if err := client.EnsureIndexes(ctx); err != nil {
		return storage{}, err
	}
	box, err := infraoutbox.NewStore(ctx, client.DB)
	if err != nil {
		return storage{}, err
	}
	idem, err := mongostore.NewIdempotencyStore(ctx, client.DB, idempotencyTTL)
	if err != nil {
		return storage{}, err
	}
	seen, err := inbox.NewStore(ctx, client.DB, a.group, inboxTTL)
	if err != nil {
		return storage{}, err
	}
	logger.Info("mongo storage ready", "db", cfg.MongoDB)
	return storage{
		factory:     mongostore.NewFactory(client.DB),
		outbox:      box,
		queue:       box,
		idempotency: idem,
		inbox:       seen,
	}, nil
}

func calendarFeed(cfg config.Config, factory uow.UoWFactory, logger *slog.Logger) policies.CalendarFeed {
	if cfg.FeedMode == config.FeedRemote {
		logger.Info("remote calendar feed", "url", cfg.FeedURL)
		return &feed.Client{
			HTTP:    &http.Client{Timeout: cfg.FeedTimeout},
			BaseURL: cfg.FeedURL,
			Timeout: cfg.FeedTimeout,
			Logger:  logger,
		}
	}
	return &calendarapp.LocalFeed{UoWFactory: factory}
}

// buildMessaging returns the producer the outbox worker publishes to. Without
// brokers events are handed to the invalidation handler in-process.
func (a *application) buildMessaging(cfg config.Config, events *kafka.CloudEventHandler, logger *slog.Logger) (infraoutbox.Producer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, publishing events locally")
		return &kafka.LocalPublisher{Handler: events, Logger: logger}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, kafka.NewConfig(serviceName+"-producer"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return producer.Close() })

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, a.group, kafka.NewConfig(serviceName+"-consumer"), events, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return consumer.Close() })
	a.consumer = consumer
	a.topics = []string{
		infraoutbox.TopicFor(cfg.KafkaTopicPrefix, "room"),
		infraoutbox.TopicFor(cfg.KafkaTopicPrefix, "booking"),
		infraoutbox.TopicFor(cfg.KafkaTopicPrefix, "occupancy"),
	}
	logger.Info("kafka configured", "brokers", cfg.KafkaBrokers, "group", a.group, "topics", a.topics)
	return producer, nil
}

func (a *application) buildArchive(cfg config.Config, logger *slog.Logger) policies.ReportArchive {
	if cfg.S3Endpoint == "" {
		return s3.NoopArchive{}
	}
	archive, err := s3.NewArchive(s3.Options{
		Endpoint:       cfg.S3Endpoint,
		PublicEndpoint: cfg.S3PublicEndpoint,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		Bucket:         cfg.S3Bucket,
		UseSSL:         cfg.S3UseSSL,
	}, logger)
	if err != nil {
		logger.Warn("report archive disabled", "endpoint", cfg.S3Endpoint, "error", err)
		return s3.NoopArchive{}
	}
	a.health.Checks["s3"] = archive.Ping
	return archive
}

func (a *application) handlers(logger *slog.Logger) ginserver.Handlers {
	b := a.buses
	return ginserver.Handlers{
		Rooms:        ginserver.RoomHandler{Commands: b.Commands, Queries: b.Queries, Logger: logger},
		Availability: ginserver.AvailabilityHandler{Queries: b.Queries, Clock: a.clock, Logger: logger},
		Quotes:       ginserver.QuoteHandler{Queries: b.Queries, Logger: logger},
		Booking:      ginserver.BookingHandler{Commands: b.Commands, Queries: b.Queries, Logger: logger},
		Reports:      ginserver.ReportHandler{Commands: b.Commands, Queries: b.Queries, Clock: a.clock, Logger: logger},
	}
}

// close releases clients in reverse order of creation; safe to call twice.
func (a *application) close(logger *slog.Logger) {
	if a.closed {
		return
	}
	a.closed = true
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
