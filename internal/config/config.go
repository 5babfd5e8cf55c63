package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOUseSSL       bool
	MinIOBucketHotels string
	MinIOPublicURL    string

	HotelImageMaxBytes     int64
	HotelImageMaxDimension int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	AuthRateLimit float64
	AuthRateBurst int

	BookingLocation *time.Location
	MetricsEnabled  bool
	SwaggerPath     string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		AppEnv:          getenv("APP_ENV", "production"),
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTokenTTL:  duration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: duration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		MinIOEndpoint:     must("MINIO_ENDPOINT"),
		MinIOAccessKey:    must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:    must("MINIO_SECRET_KEY"),
		MinIOUseSSL:       getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketHotels: getenv("MINIO_BUCKET_HOTELS", "hotel-images"),
		MinIOPublicURL:    getenv("MINIO_PUBLIC_URL", ""),

		HotelImageMaxBytes:     int64(positiveInt("HOTEL_IMAGE_MAX_BYTES", 5*1024*1024)),
		HotelImageMaxDimension: positiveInt("HOTEL_IMAGE_MAX_DIMENSION", 3840),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       nonNegativeInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(positiveInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		AuthRateLimit: positiveFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: positiveInt("AUTH_RATE_BURST", 10),

		BookingLocation: location("BOOKING_TIMEZONE"),
		MetricsEnabled:  getenv("METRICS_ENABLED", "true") == "true",
		SwaggerPath:     getenv("SWAGGER_PATH", "docs/swagger.yaml"),
	}
}

// LoadDatabaseURL is used by tooling that only needs the database.
func LoadDatabaseURL() string {
	_ = godotenv.Load()
	return getenv("DATABASE_URL", "")
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func duration(k string, d time.Duration) time.Duration {
	if v, err := time.ParseDuration(getenv(k, "")); err == nil && v > 0 {
		return v
	}
	return d
}

func positiveInt(k string, d int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil && v > 0 {
		return v
	}
	return d
}

func nonNegativeInt(k string, d int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil && v >= 0 {
		return v
	}
	return d
}

func positiveFloat(k string, d float64) float64 {
	if v, err := strconv.ParseFloat(getenv(k, ""), 64); err == nil && v > 0 {
		return v
	}
	return d
}

func location(k string) *time.Location {
	name := getenv(k, "UTC")
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown %s %q, using UTC", k, name)
		return time.UTC
	}
	return loc
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
