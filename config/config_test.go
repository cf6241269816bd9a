package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleYAML = `
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: facilityhub
  password: secret
  name: facilityhub
  ssl_mode: disable
redis:
  addr: localhost:6379
kafka:
  brokers: ["localhost:9092"]
  booking_topic: bookings
  notifications_topic: notifications
  group_id: facilityhub-worker
booking:
  closing_hour: 19
  weekly_credit_minutes: 300
  slot_hold_ttl_seconds: 60
  facilities_cache_ttl_seconds: 120
worker:
  restore_weekday: 1
  restore_hour: 0
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "host=localhost port=5432 user=facilityhub password=secret dbname=facilityhub sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 19, cfg.Booking.ClosingHour)
	assert.Equal(t, 1, cfg.Worker.RestoreWeekday)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_ADDRESS", ":9090")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))

	assert.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "http:\n  address: \":8080\"\n"))

	assert.NoError(t, err)
	assert.Equal(t, 19, cfg.Booking.ClosingHour)
	assert.Equal(t, float64(300), cfg.Booking.WeeklyCreditMinutes)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
