package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	s := Load()

	assert.Equal(t, "8000", s.AppPort)
	assert.Equal(t, "sqlite", s.DBDriver)
	assert.Equal(t, 20*time.Second, s.CacheTTL)
	assert.Equal(t, 24*time.Hour, s.TokenTTL)
	assert.Equal(t, 100, s.OutboxBatchSize)
	assert.False(t, s.KafkaEnabled())
	assert.ErrorIs(t, s.Validate(), ErrMissingSecret)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("CACHE_SIZE", "-1")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")

	s := Load()

	assert.Equal(t, "9090", s.AppPort)
	assert.Equal(t, "postgres", s.DBDriver)
	assert.Equal(t, 5*time.Second, s.CacheTTL)
	assert.Equal(t, 128, s.CacheSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, s.KafkaBrokers)
	assert.True(t, s.KafkaEnabled())
	assert.NoError(t, s.Validate())
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := OpenDB(&Settings{DBDriver: "oracle"})
	assert.Error(t, err)
}
