package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rafeeazmi/employee-portal/internal/app"
	"github.com/rafeeazmi/employee-portal/internal/clock"
	"github.com/rafeeazmi/employee-portal/internal/config"
	"github.com/rafeeazmi/employee-portal/internal/logging"
	"github.com/rafeeazmi/employee-portal/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	loc := time.Local

	store, closeStore, err := openStore(ctx, cfg, loc, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []app.BookingServiceOption{app.WithLogger(logger.Named("bookings"))}
	open, closing, err := cfg.OfficeHours()
	if err != nil {
		return err
	}
	opts = append(opts, app.WithOfficeHours(open, closing))

	var calendarCfg *app.GoogleCalendarConfig
	if cfg.GoogleCalendarEnabled() {
		calendarCfg = app.NewGoogleCalendarConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.GoogleRefreshToken)
		if cfg.GoogleRefreshToken != "" {
			opts = append(opts, app.WithPublisher(app.NewCalendarPublisher(calendarCfg)))
		} else {
			logger.Info("google calendar configured without refresh token; visit /api/calendar/auth to authorize")
		}
	}

	calendars, err := cfg.RoomCalendarIDs()
	if err != nil {
		return err
	}
	rooms := app.DemoRooms()
	for i := range rooms {
		rooms[i].CalendarID = calendars[rooms[i].ID]
	}

	clk := clock.NewSystem()
	bookings := app.NewBookingService(store, app.NewMemoryRoomRegistry(rooms), clk, opts...)

	if cfg.SeedDemo {
		if err := app.SeedDemoBookings(ctx, bookings, clk.Now()); err != nil {
			return err
		}
		logger.Info("seeded demo bookings")
	}

	a := &app.App{
		Bookings:  bookings,
		Employees: app.NewMemoryEmployeeDirectory(app.DemoEmployees()),
		Calendar:  calendarCfg,
		Location:  loc,
		Logger:    logger,
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.AllowedOrigins(),
		RequestsPerMin: cfg.MaxRequestsPerMin,
		Tokens:         cfg.Tokens(),
		JWTSecret:      cfg.JWTHMACSecret,
	}, a)

	return server.Run(ctx, ":"+cfg.Port, router, logger)
}

func openStore(ctx context.Context, cfg config.Config, loc *time.Location, logger *zap.Logger) (app.BookingStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping db: %w", err)
		}
		store := app.NewPostgresStore(pool, loc)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres booking store")
		return store, pool.Close, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("using redis booking store", zap.String("addr", cfg.RedisAddr))
		return app.NewRedisStore(client, "portal:", loc), func() { _ = client.Close() }, nil
	}

	logger.Info("using in-memory booking store")
	return app.NewMemoryStore(), func() {}, nil
}
