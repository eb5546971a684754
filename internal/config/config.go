// Package config loads runtime settings from the environment and planner
// table overrides from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/outing/internal/llm"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the outing CLI.
type Config struct {
	DBPath string

	PlacesAPIKey  string
	PlacesBaseURL string
	PlacesRPS     float64
	PlacesTimeout time.Duration

	SearchCalls  int
	DetailsCalls int
	RouteCalls   int

	VenueCacheTTL  time.Duration
	CenterCacheTTL time.Duration
	ClusterRadiusM float64

	// TablesPath points at an optional YAML file overriding planner tables.
	TablesPath string

	LogFormat string
	LogLevel  slog.Level

	LLM llm.LLMConfig
}

const (
	DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api"
	DefaultVenueCacheTTL = 7 * 24 * time.Hour
)

// Default returns the built-in settings. DBPath is left empty; Load fills
// it from the home directory.
func Default() Config {
	return Config{
		PlacesBaseURL:  DefaultPlacesBaseURL,
		PlacesRPS:      5,
		PlacesTimeout:  8 * time.Second,
		SearchCalls:    3,
		DetailsCalls:   6,
		RouteCalls:     2,
		VenueCacheTTL:  DefaultVenueCacheTTL,
		CenterCacheTTL: 24 * time.Hour,
		ClusterRadiusM: 1500,
		LogFormat:      "text",
		LogLevel:       slog.LevelWarn,
		LLM:            llm.DefaultConfig(),
	}
}

// LoadEnvFiles loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads an optional .env file and then OUTING_* variables, falling
// back to defaults for anything unset.
func Load() (Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.DBPath = os.Getenv("OUTING_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".outing", "outing.db")
	}

	cfg.PlacesAPIKey = firstEnv("OUTING_PLACES_API_KEY", "GOOGLE_MAPS_API_KEY")
	if v := os.Getenv("OUTING_PLACES_BASE_URL"); v != "" {
		cfg.PlacesBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("OUTING_PLACES_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("OUTING_PLACES_RPS must be a positive number, got %q", v)
		}
		cfg.PlacesRPS = f
	}
	if err := envDuration("OUTING_PLACES_TIMEOUT", &cfg.PlacesTimeout); err != nil {
		return Config{}, err
	}
	if err := envDuration("OUTING_VENUE_CACHE_TTL", &cfg.VenueCacheTTL); err != nil {
		return Config{}, err
	}
	if err := envDuration("OUTING_CENTER_CACHE_TTL", &cfg.CenterCacheTTL); err != nil {
		return Config{}, err
	}
	for name, dst := range map[string]*int{
		"OUTING_SEARCH_CALLS":  &cfg.SearchCalls,
		"OUTING_DETAILS_CALLS": &cfg.DetailsCalls,
		"OUTING_ROUTE_CALLS":   &cfg.RouteCalls,
	} {
		// Env can only lower a ceiling; the defaults are the maximum.
		if err := envCallLimit(name, dst); err != nil {
			return Config{}, err
		}
	}
	if v := os.Getenv("OUTING_CLUSTER_RADIUS_M"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("OUTING_CLUSTER_RADIUS_M must be a positive number, got %q", v)
		}
		cfg.ClusterRadiusM = f
	}

	cfg.TablesPath = os.Getenv("OUTING_TABLES")

	if v := os.Getenv("OUTING_LOG_FORMAT"); v != "" {
		switch f := strings.ToLower(v); f {
		case "text", "json":
			cfg.LogFormat = f
		default:
			return Config{}, fmt.Errorf("OUTING_LOG_FORMAT must be text or json, got %q", v)
		}
	}
	if v := os.Getenv("OUTING_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("OUTING_LOG_LEVEL: %w", err)
		}
	}

	cfg.LLM = llm.LoadConfig()
	return cfg, nil
}

// NewLogger builds the root logger for the configured format and level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("%s must be a positive duration such as 30s or 168h, got %q", name, v)
	}
	*dst = d
	return nil
}

// envCallLimit reads a call ceiling between 0 and the current value of dst.
func envCallLimit(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > *dst {
		return fmt.Errorf("%s must be an integer between 0 and %d, got %q", name, *dst, v)
	}
	*dst = n
	return nil
}
