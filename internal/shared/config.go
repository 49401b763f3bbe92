package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string // empty = volatile in-memory approval store
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	HostawayBase    string
	HostawayKey     string // empty = serve the bundled mock payload
	HostawayAccount string
	HostawayMock    string
	GoogleBase      string
	GoogleKey       string // empty = google endpoints report disabled
	CacheTTL        time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		MySQLDSN:        env("MYSQL_DSN", ""),
		RedisAddr:       env("REDIS_ADDR", ""), // empty = no raw-payload cache
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		HostawayBase:    env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayKey:     env("HOSTAWAY_API_KEY", ""),
		HostawayAccount: env("HOSTAWAY_ACCOUNT_ID", ""),
		HostawayMock:    env("HOSTAWAY_MOCK_PATH", "./resources/hostaway-mock.json"),
		GoogleBase:      env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		GoogleKey:       env("GOOGLE_PLACES_API_KEY", ""),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.HostawayKey == "" {
		log.Warn().Str("mock", c.HostawayMock).Msg("HOSTAWAY_API_KEY is empty; serving the bundled mock payload")
	}
	if c.GoogleKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty; google endpoints report disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
