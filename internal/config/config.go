package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"flightwatch/internal/models/entities"
)

// Config is the process-wide configuration, loaded once at start-up and
// passed to every collaborator that needs it.
type Config struct {
	AppEnv   string
	HTTPAddr string

	DBDriver string // sqlite | postgres
	DBDSN    string

	CacheBackend  string // memory | redis
	RedisHost     string
	RedisPort     string
	RedisPassword string

	Provider       string // mock | live
	APIBaseURL     string
	APIKey         string
	APITimeout     time.Duration
	AirportTTL     time.Duration
	PollInterval   time.Duration
	SessionIdleTTL time.Duration
	ReaperInterval time.Duration
	WarmInterval   time.Duration
	AirportsFile   string

	RateLimitRPS   float64
	RateLimitBurst int

	Notifications entities.NotificationSettings
}

// Load reads an optional .env file followed by the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:         getEnv("DB_DSN", "file:flightwatch.db?cache=shared"),
		CacheBackend:  strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Provider:      strings.ToLower(getEnv("FLIGHT_DATA_PROVIDER", "mock")),
		APIBaseURL:    getEnv("FLIGHT_API_BASE_URL", "https://api.example-flight-api.com/v1"),
		APIKey:        os.Getenv("FLIGHT_API_KEY"),
		AirportsFile:  os.Getenv("AIRPORTS_FILE"),
	}

	var err error
	if cfg.APITimeout, err = getDuration("FLIGHT_API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.AirportTTL, err = getDuration("AIRPORT_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getDuration("TRACKING_POLL_INTERVAL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getDuration("TRACKING_SESSION_IDLE_TIMEOUT", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReaperInterval, err = getDuration("TRACKING_REAPER_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	if cfg.WarmInterval, err = getDuration("AIRPORT_CACHE_WARM_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	cfg.Notifications = entities.NotificationSettings{
		ShowAlert: getBool("NOTIFY_SHOW_ALERT", true),
		PlaySound: getBool("NOTIFY_PLAY_SOUND", true),
		SetBadge:  getBool("NOTIFY_SET_BADGE", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the process cannot work with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.CacheBackend)
	}
	switch c.Provider {
	case "mock":
	case "live":
		if c.APIKey == "" {
			return fmt.Errorf("FLIGHT_API_KEY is required for the live provider")
		}
	default:
		return fmt.Errorf("unsupported FLIGHT_DATA_PROVIDER %q", c.Provider)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("TRACKING_POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// RedisAddr is host:port for the Redis cache backend.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		// plain integers are seconds
		secs, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		d = time.Duration(secs) * time.Second
	}
	return d, nil
}

func getBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
