package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
	"github.com/i474232898/air-quality-aggregation/internal/common"
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	SensorAPIBaseURL string
	SensorAPIKey     string
	HTTPTimeout      time.Duration

	// StationLocation is the time zone station timestamps are written in.
	StationLocation *time.Location

	// Reading cache.
	CacheTTL        time.Duration
	CacheMaxEntries int // 0 = unlimited

	// PrefetchInterval controls how often preset windows are refreshed.
	PrefetchInterval time.Duration
	PrefetchStations []string

	// CategoryTablesFile optionally overrides built-in category tables.
	CategoryTablesFile string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := ParseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.SensorAPIBaseURL = strings.TrimSpace(os.Getenv("SENSOR_API_BASE_URL"))
	cfg.SensorAPIKey = os.Getenv("SENSOR_API_KEY")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}

	tz := getenvDefault("STATION_TIMEZONE", "Asia/Karachi")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid STATION_TIMEZONE %q: %w", tz, err)
	}
	cfg.StationLocation = loc

	// Reading cache: one hour, unlimited entries.
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "1h"); err != nil {
		return nil, err
	}
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 0)

	if cfg.PrefetchInterval, err = getenvDuration("PREFETCH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	cfg.PrefetchStations = common.SplitList(os.Getenv("PREFETCH_STATIONS"))

	cfg.CategoryTablesFile = strings.TrimSpace(os.Getenv("CATEGORY_TABLES_FILE"))

	return cfg, nil
}

// tablesFile is the YAML layout of a category table override:
//
//	tables:
//	  PM25:
//	    - {name: Good, color: "#268504", range: "0-15 µg/m³"}
type tablesFile struct {
	Tables map[string][]airquality.RawBand `yaml:"tables"`
}

// LoadTables returns the built-in category tables, with any table from path
// replacing its built-in counterpart. Ranges are parsed here, once.
func LoadTables(path string) (airquality.Tables, error) {
	tables := airquality.DefaultTables()
	if path == "" {
		return tables, nil
	}

	var f tablesFile
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("failed to read category tables from %s: %w", path, err)
	}
	override, err := airquality.BuildTables(f.Tables)
	if err != nil {
		return nil, fmt.Errorf("invalid category tables in %s: %w", path, err)
	}
	return airquality.MergeTables(tables, override), nil
}

// ParseLogLevel maps LOG_LEVEL values onto slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
