package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/internal/warranty/usecase"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/log"
	"warranty-tracker/pkg/thumbnail"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Storage
	db   *sql.DB
	repo repository.Repository

	// Warranty domain
	parser          *datemath.Parser
	thumbnails      *thumbnail.Store
	thumbnailPrefix string
	maxUploadBytes  int64
	calendar        usecase.Calendar
	closestLimit    int
	recentLimit     int
	reminder        usecase.ReminderOptions
	rateLimitPerMin int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Storage. DB is only used by the readiness probe and is nil for the
	// in-memory store.
	DB         *sql.DB
	Repository repository.Repository

	// Warranty domain
	Parser             *datemath.Parser
	Thumbnails         *thumbnail.Store
	ThumbnailURLPrefix string
	MaxUploadBytes     int64
	// Calendar is optional; leave it nil to disable reminders.
	Calendar     usecase.Calendar
	ClosestLimit int
	RecentLimit  int
	Reminder     usecase.ReminderOptions

	// RateLimitPerMin limits write requests per client. Zero disables it.
	RateLimitPerMin int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		db:              cfg.DB,
		repo:            cfg.Repository,
		parser:          cfg.Parser,
		thumbnails:      cfg.Thumbnails,
		thumbnailPrefix: cfg.ThumbnailURLPrefix,
		maxUploadBytes:  cfg.MaxUploadBytes,
		calendar:        cfg.Calendar,
		closestLimit:    cfg.ClosestLimit,
		recentLimit:     cfg.RecentLimit,
		reminder:        cfg.Reminder,
		rateLimitPerMin: cfg.RateLimitPerMin,
	}

	if srv.thumbnailPrefix == "" {
		srv.thumbnailPrefix = "/thumbnails"
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.repo == nil {
		return errors.New("repository is required")
	}
	if srv.parser == nil {
		return errors.New("date parser is required")
	}
	if srv.thumbnails == nil {
		return errors.New("thumbnail store is required")
	}
	return nil
}
