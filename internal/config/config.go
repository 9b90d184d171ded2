package config

import (
	"fmt"
	"os"
	"schedule-comparison-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SourceFile = "file"
	SourceDB   = "db"
)

// DefaultWeekStart is the Monday compact exports are dated against.
const DefaultWeekStart = "2025-07-07"

// Config is the validated process configuration shared by both commands.
type Config struct {
	Port string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	ScheduleSource    string
	OriginalSchedule  string
	OptimizedSchedule string
	OriginalFormat    domain.SourceFormat
	OptimizedFormat   domain.SourceFormat

	WeekStart  time.Time
	DepotStart *domain.TimeOfDay

	RedisAddr   string
	CORSOrigins []string
}

// Get returns the environment value for key or fallback when it is unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads and validates the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:              Get("PORT", "8080"),
		DBDriver:          strings.ToLower(Get("DB_DRIVER", DriverSQLite)),
		DBPath:            Get("DB_PATH", "data/app.db"),
		DatabaseURL:       Get("DATABASE_URL", ""),
		ScheduleSource:    strings.ToLower(Get("SCHEDULE_SOURCE", SourceFile)),
		OriginalSchedule:  Get("ORIGINAL_SCHEDULE", "data/original_schedule.csv"),
		OptimizedSchedule: Get("OPTIMIZED_SCHEDULE", "data/optimized_schedule.csv"),
		RedisAddr:         Get("REDIS_ADDR", ""),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("load config: PORT must be a TCP port, got %q", cfg.Port)
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return Config{}, fmt.Errorf("load config: DB_DRIVER must be %s or %s, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver)
	}

	switch cfg.ScheduleSource {
	case SourceFile, SourceDB:
	default:
		return Config{}, fmt.Errorf("load config: SCHEDULE_SOURCE must be %s or %s, got %q", SourceFile, SourceDB, cfg.ScheduleSource)
	}

	var err error
	if cfg.OriginalFormat, err = domain.ParseSourceFormat(Get("ORIGINAL_FORMAT", "compact")); err != nil {
		return Config{}, fmt.Errorf("load config: ORIGINAL_FORMAT: %w", err)
	}
	if cfg.OptimizedFormat, err = domain.ParseSourceFormat(Get("OPTIMIZED_FORMAT", "verbose")); err != nil {
		return Config{}, fmt.Errorf("load config: OPTIMIZED_FORMAT: %w", err)
	}

	weekStart := Get("WEEK_START", DefaultWeekStart)
	cfg.WeekStart, err = time.Parse("2006-01-02", weekStart)
	if err != nil {
		return Config{}, fmt.Errorf("load config: WEEK_START must be YYYY-MM-DD, got %q", weekStart)
	}
	if cfg.WeekStart.Weekday() != time.Monday {
		return Config{}, fmt.Errorf("load config: WEEK_START must be a Monday, got %s (%s)", weekStart, cfg.WeekStart.Weekday())
	}

	if raw := Get("DEPOT_START", ""); raw != "" {
		t, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			return Config{}, fmt.Errorf("load config: DEPOT_START: %w", err)
		}
		cfg.DepotStart = &t
	}

	for _, origin := range strings.Split(Get("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}
