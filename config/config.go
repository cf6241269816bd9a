package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address" envconfig:"HTTP_ADDRESS"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     int    `yaml:"port" envconfig:"DB_PORT"`
	User     string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name     string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"DB_SSL_MODE"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`
	BookingTopic       string   `yaml:"booking_topic" envconfig:"KAFKA_BOOKING_TOPIC"`
	NotificationsTopic string   `yaml:"notifications_topic" envconfig:"KAFKA_NOTIFICATIONS_TOPIC"`
	GroupID            string   `yaml:"group_id" envconfig:"KAFKA_GROUP_ID"`
	ConsumerMinBytes   int      `yaml:"consumer_min_bytes" envconfig:"KAFKA_CONSUMER_MIN_BYTES"`
	ConsumerMaxBytes   int      `yaml:"consumer_max_bytes" envconfig:"KAFKA_CONSUMER_MAX_BYTES"`
	CommitIntervalMS   int      `yaml:"commit_interval_ms" envconfig:"KAFKA_COMMIT_INTERVAL_MS"`
}

type BookingConfig struct {
	// ClosingHour is the facility daily closing time; bookings may not
	// extend past it.
	ClosingHour         int     `yaml:"closing_hour" envconfig:"BOOKING_CLOSING_HOUR"`
	WeeklyCreditMinutes float64 `yaml:"weekly_credit_minutes" envconfig:"BOOKING_WEEKLY_CREDIT_MINUTES"`
	SlotHoldTTLSeconds  int     `yaml:"slot_hold_ttl_seconds" envconfig:"BOOKING_SLOT_HOLD_TTL_SECONDS"`
	FacilitiesCacheTTL  int     `yaml:"facilities_cache_ttl_seconds" envconfig:"BOOKING_FACILITIES_CACHE_TTL_SECONDS"`
}

type WorkerConfig struct {
	// RestoreWeekday and RestoreHour fix the weekly balance reset; 0 is
	// Sunday, matching time.Weekday.
	RestoreWeekday int `yaml:"restore_weekday" envconfig:"WORKER_RESTORE_WEEKDAY"`
	RestoreHour    int `yaml:"restore_hour" envconfig:"WORKER_RESTORE_HOUR"`
}

// LoadConfig reads the yaml file at path and then applies environment
// overrides, so deployments can keep a checked-in base file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if cfg.Booking.ClosingHour == 0 {
		cfg.Booking.ClosingHour = 19
	}
	if cfg.Booking.WeeklyCreditMinutes == 0 {
		cfg.Booking.WeeklyCreditMinutes = 300
	}

	return &cfg, nil
}
