package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"warranty-tracker/pkg/datemath"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Warranty tracker specifics
	Storage        StorageConfig
	Thumbnails     ThumbnailsConfig
	Dashboard      DashboardConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
	// Timezone decides which calendar day "today" is.
	Timezone string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
}

type StorageConfig struct {
	Driver     string
	SQLitePath string
}

type ThumbnailsConfig struct {
	Dir         string
	Size        int
	URLPrefix   string
	MaxUploadMB int
}

type DashboardConfig struct {
	ClosestLimit int
	RecentLimit  int
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	ReminderLead    string
	ReminderHour    int
	ColorID         string
}

// Enabled reports whether calendar reminders are configured.
func (c GoogleCalendarConfig) Enabled() bool {
	return c.CredentialsPath != ""
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/warranty-tracker/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/warranty-tracker/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Environment.Timezone = viper.GetString("environment.timezone")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))
	cfg.Storage.SQLitePath = viper.GetString("storage.sqlite_path")

	// Thumbnails
	cfg.Thumbnails.Dir = viper.GetString("thumbnails.dir")
	cfg.Thumbnails.Size = viper.GetInt("thumbnails.size")
	cfg.Thumbnails.URLPrefix = viper.GetString("thumbnails.url_prefix")
	cfg.Thumbnails.MaxUploadMB = viper.GetInt("thumbnails.max_upload_mb")

	// Dashboard
	cfg.Dashboard.ClosestLimit = viper.GetInt("dashboard.closest_limit")
	cfg.Dashboard.RecentLimit = viper.GetInt("dashboard.recent_limit")

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.ReminderLead = viper.GetString("google_calendar.reminder_lead")
	cfg.GoogleCalendar.ReminderHour = viper.GetInt("google_calendar.reminder_hour")
	cfg.GoogleCalendar.ColorID = viper.GetString("google_calendar.color_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", EnvironmentDevelopment)
	viper.SetDefault("environment.timezone", "UTC")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 120)

	viper.SetDefault("storage.driver", StorageSQLite)
	viper.SetDefault("storage.sqlite_path", "data/warranty.db")

	viper.SetDefault("thumbnails.dir", "data/thumbnails")
	viper.SetDefault("thumbnails.size", 100)
	viper.SetDefault("thumbnails.url_prefix", "/thumbnails")
	viper.SetDefault("thumbnails.max_upload_mb", 10)

	viper.SetDefault("dashboard.closest_limit", 5)
	viper.SetDefault("dashboard.recent_limit", 5)

	viper.SetDefault("google_calendar.credentials_path", "")
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.reminder_lead", "1 month")
	viper.SetDefault("google_calendar.reminder_hour", 9)
	viper.SetDefault("google_calendar.color_id", "6")
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		errs = append(errs, fmt.Errorf("http_server.port: %d out of range", c.HTTPServer.Port))
	}
	switch c.HTTPServer.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("http_server.mode: unknown mode %q", c.HTTPServer.Mode))
	}
	if c.RateLimit.RequestsPerMin < 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_min must not be negative"))
	}
	if _, err := time.LoadLocation(c.Environment.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("environment.timezone: %w", err))
	}

	switch c.Storage.Driver {
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}

	if c.Thumbnails.Dir == "" {
		errs = append(errs, errors.New("thumbnails.dir is required"))
	}
	if c.Thumbnails.Size <= 0 {
		errs = append(errs, fmt.Errorf("thumbnails.size: %d must be positive", c.Thumbnails.Size))
	}
	if c.Thumbnails.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("thumbnails.max_upload_mb: %d must be positive", c.Thumbnails.MaxUploadMB))
	}
	if !strings.HasPrefix(c.Thumbnails.URLPrefix, "/") {
		errs = append(errs, fmt.Errorf("thumbnails.url_prefix: %q must start with /", c.Thumbnails.URLPrefix))
	}

	if c.Dashboard.ClosestLimit <= 0 || c.Dashboard.RecentLimit <= 0 {
		errs = append(errs, errors.New("dashboard limits must be positive"))
	}

	if c.GoogleCalendar.ReminderHour < 0 || c.GoogleCalendar.ReminderHour > 23 {
		errs = append(errs, fmt.Errorf("google_calendar.reminder_hour: %d out of range", c.GoogleCalendar.ReminderHour))
	}
	if _, err := datemath.ParseDuration(c.GoogleCalendar.ReminderLead); err != nil {
		errs = append(errs, fmt.Errorf("google_calendar.reminder_lead: %w", err))
	}

	return errors.Join(errs...)
}
