package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	LogLevel slog.Level
	// TrustProxyHeaders takes the client IP from X-Forwarded-For/X-Real-IP.
	// Enable only behind a proxy that sets them.
	TrustProxyHeaders bool

	Reference ReferenceConfig
	Geocoder  GeocoderConfig
	Autofill  AutofillConfig
	Redis     RedisConfig
	Records   RecordsConfig
}

// ReferenceConfig points at the country reference provider.
type ReferenceConfig struct {
	BaseURL string
	Timeout time.Duration
	// CollationLocale is a BCP 47 tag used to sort the lookup views.
	CollationLocale string
}

// GeocoderConfig points at the reverse-geocoding provider.
type GeocoderConfig struct {
	BaseURL string
	APIKey  string
}

// AutofillConfig tunes the location autofill coordinator.
type AutofillConfig struct {
	Timeout      time.Duration
	DiscardStale bool
	CacheTTL     time.Duration
	// RateLimit requests per RateWindow per client IP.
	RateLimit  int
	RateWindow time.Duration
}

// RedisConfig is optional; an empty URL selects in-memory stores.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RecordsConfig controls the record table.
type RecordsConfig struct {
	SeedPath string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:     envString("INTAKE_ADDR", ":8080"),
		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		TrustProxyHeaders: envBool("TRUST_PROXY_HEADERS", false),
		Reference: ReferenceConfig{
			BaseURL:         strings.TrimRight(envString("REFERENCE_URL", "https://restcountries.com"), "/"),
			Timeout:         envDuration("REFERENCE_TIMEOUT", 15*time.Second),
			CollationLocale: envString("COLLATION_LOCALE", "en"),
		},
		Geocoder: GeocoderConfig{
			BaseURL: strings.TrimRight(envString("GEOCODER_URL", "https://api.geoapify.com"), "/"),
			APIKey:  os.Getenv("GEOCODER_API_KEY"),
		},
		Autofill: AutofillConfig{
			Timeout:      envDuration("AUTOFILL_TIMEOUT", 10*time.Second),
			DiscardStale: envBool("AUTOFILL_DISCARD_STALE", false),
			CacheTTL:     envDuration("GEOCODE_CACHE_TTL", 10*time.Minute),
			RateLimit:    envInt("AUTOFILL_RATE_LIMIT", 30),
			RateWindow:   envDuration("AUTOFILL_RATE_WINDOW", time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Records: RecordsConfig{
			SeedPath: os.Getenv("RECORDS_SEED_PATH"),
		},
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}
	return lvl
}
