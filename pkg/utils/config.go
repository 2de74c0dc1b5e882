package utils

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// RedisConfig is optional; an empty Addr disables every redis-backed feature.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
	GroupID      string
}

func LoadConfig() (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "travel-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_CAPACITY", 10)
	v.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	v.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "6s")
	v.SetDefault("RATE_LIMIT_TTL", "10m")
	v.SetDefault("KAFKA_BOOKING_TOPIC", "hotel-booking-events")
	v.SetDefault("KAFKA_GROUP_ID", "travel-booking-worker")

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
			Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   v.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            v.GetDuration("RATE_LIMIT_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			BookingTopic: v.GetString("KAFKA_BOOKING_TOPIC"),
			GroupID:      v.GetString("KAFKA_GROUP_ID"),
		},
	}

	return config, nil
}

// splitList turns "a:9092, b:9092" into a clean slice, empty input gives nil
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
