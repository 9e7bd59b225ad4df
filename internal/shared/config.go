package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	StoreDriver string // mongo|mysql|memory
	MongoURI    string
	MongoDB     string
	MySQLDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	RazorpayBase   string
	RazorpayKey    string
	RazorpaySecret string
	RazorpayRPS    int
	Currency       string

	LegacyStatus   bool
	OverlapGuard   bool
	RequestTimeout time.Duration
	SeedWorkers    int
}

// Load reads the environment, after an optional .env file in the working
// directory.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env could not be read")
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		StoreDriver: strings.ToLower(env("STORE_DRIVER", "mongo")),
		MongoURI:    env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     env("MONGO_DB", "staybook"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/staybook?charset=utf8mb4"),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		JWTSecret: env("JWT_SECRET", ""),
		JWTTTL:    time.Duration(atoi("JWT_TTL_HOURS", 24*7)) * time.Hour,

		RazorpayBase:   env("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		RazorpayKey:    env("RAZORPAY_KEY_ID", ""),
		RazorpaySecret: env("RAZORPAY_KEY_SECRET", ""),
		RazorpayRPS:    atoi("RAZORPAY_RPS", 5),
		Currency:       env("PAYMENT_CURRENCY", "INR"),

		LegacyStatus:   boolean("API_LEGACY_STATUS", false),
		OverlapGuard:   boolean("BOOKING_OVERLAP_GUARD", true),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		SeedWorkers:    atoi("SEED_WORKERS", 4),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	if c.RazorpayKey == "" || c.RazorpaySecret == "" {
		log.Warn().Msg("RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func boolean(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
	}
	return def
}
