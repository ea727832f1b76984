package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // IANA zones on hosts without tzdata

	"warranty-tracker/config"
	sqliteConfig "warranty-tracker/config/sqlite"
	_ "warranty-tracker/docs" // Swagger docs
	"warranty-tracker/internal/httpserver"
	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/internal/warranty/repository/memory"
	sqliteRepo "warranty-tracker/internal/warranty/repository/sqlite"
	"warranty-tracker/internal/warranty/usecase"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/gcalendar"
	"warranty-tracker/pkg/log"
	"warranty-tracker/pkg/thumbnail"
)

// @title       Warranty Tracker API
// @description Track household purchases and their warranty expiration dates.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Warranty Tracker...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Server failed: ", err)
		stop()
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// 3. DateMath parser
	parser, err := datemath.NewParser(cfg.Environment.Timezone)
	if err != nil {
		return err
	}

	// 4. Storage
	var (
		db   *sql.DB
		repo repository.Repository
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn(ctx, "Using in-memory storage: items are lost on restart")
		repo = memory.New()
	default:
		db, err = sqliteConfig.Connect(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer sqliteConfig.Disconnect(db)

		if err := sqliteRepo.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
		repo = sqliteRepo.New(db, logger)
		logger.Infof(ctx, "SQLite database: %s", cfg.Storage.SQLitePath)
	}

	// 5. Thumbnails
	thumbs, err := thumbnail.New(cfg.Thumbnails.Dir, cfg.Thumbnails.Size)
	if err != nil {
		return err
	}
	if err := thumbs.EnsurePlaceholder(); err != nil {
		return err
	}

	// 6. Google Calendar client (optional)
	var calendar usecase.Calendar
	if cfg.GoogleCalendar.Enabled() {
		client, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "Run `go run scripts/gcal-auth/main.go` to generate the token file")
		} else {
			calendar = client
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	lead, err := datemath.ParseDuration(cfg.GoogleCalendar.ReminderLead)
	if err != nil {
		return err
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:             logger,
		Port:               cfg.HTTPServer.Port,
		Mode:               cfg.HTTPServer.Mode,
		Environment:        cfg.Environment.Name,
		DB:                 db,
		Repository:         repo,
		Parser:             parser,
		Thumbnails:         thumbs,
		ThumbnailURLPrefix: cfg.Thumbnails.URLPrefix,
		MaxUploadBytes:     int64(cfg.Thumbnails.MaxUploadMB) << 20,
		Calendar:           calendar,
		ClosestLimit:       cfg.Dashboard.ClosestLimit,
		RecentLimit:        cfg.Dashboard.RecentLimit,
		Reminder: usecase.ReminderOptions{
			CalendarID: cfg.GoogleCalendar.CalendarID,
			Lead:       lead,
			Hour:       cfg.GoogleCalendar.ReminderHour,
			ColorID:    cfg.GoogleCalendar.ColorID,
		},
		RateLimitPerMin: cfg.RateLimit.RequestsPerMin,
	})
	if err != nil {
		return fmt.Errorf("initializing HTTP server: %w", err)
	}

	// 8. Run
	return httpServer.Run(ctx)
}
