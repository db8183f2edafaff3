package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds everything read from the environment, .env and config.yaml.
type Settings struct {
	Env     string
	AppPort string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	CacheTTL  time.Duration
	CacheSize int

	MediaRoot string

	KafkaBrokers       []string
	KafkaTopic         string
	KafkaGroupID       string
	OutboxBatchSize    int
	OutboxPollInterval time.Duration

	MailBackend  string
	MailFrom     string
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
}

// ErrMissingSecret is returned by Validate when JWT_SECRET is empty.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Load reads .env (if present) and the process environment through viper.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "yatube.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("CACHE_TTL", "20s")
	v.SetDefault("CACHE_SIZE", 128)
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("KAFKA_TOPIC", "yatube.posts")
	v.SetDefault("KAFKA_GROUP_ID", "yatube-cache")
	v.SetDefault("OUTBOX_BATCH_SIZE", 100)
	v.SetDefault("OUTBOX_POLL_INTERVAL", "1s")
	v.SetDefault("MAIL_BACKEND", "log")
	v.SetDefault("MAIL_FROM", "noreply@yatube.local")

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // optional

	return &Settings{
		Env:                v.GetString("APP_ENV"),
		AppPort:            v.GetString("APP_PORT"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:              v.GetString("DB_DSN"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		TokenTTL:           parseDuration(v.GetString("TOKEN_TTL"), 24*time.Hour),
		CacheTTL:           parseDuration(v.GetString("CACHE_TTL"), 20*time.Second),
		CacheSize:          positive(v.GetInt("CACHE_SIZE"), 128),
		MediaRoot:          v.GetString("MEDIA_ROOT"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
		KafkaGroupID:       v.GetString("KAFKA_GROUP_ID"),
		OutboxBatchSize:    positive(v.GetInt("OUTBOX_BATCH_SIZE"), 100),
		OutboxPollInterval: parseDuration(v.GetString("OUTBOX_POLL_INTERVAL"), time.Second),
		MailBackend:        strings.ToLower(v.GetString("MAIL_BACKEND")),
		MailFrom:           v.GetString("MAIL_FROM"),
		SMTPAddr:           v.GetString("SMTP_ADDR"),
		SMTPUsername:       v.GetString("SMTP_USERNAME"),
		SMTPPassword:       v.GetString("SMTP_PASSWORD"),
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (s *Settings) Validate() error {
	if s.JWTSecret == "" {
		return ErrMissingSecret
	}
	return nil
}

// KafkaEnabled reports whether the outbox and invalidation workers should run.
func (s *Settings) KafkaEnabled() bool {
	return len(s.KafkaBrokers) > 0
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
