package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avetrov/facilityhub/config"
	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client        *redis.Client
	facilitiesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, facilitiesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:        redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		facilitiesTTL: facilitiesTTL,
	}
}

func (c *RedisCache) GetFacilities(ctx context.Context) ([]domain.Facility, error) {
	data, err := c.client.Get(ctx, facilitiesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var facilities []domain.Facility
	if err := json.Unmarshal(data, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

func (c *RedisCache) SetFacilities(ctx context.Context, facilities []domain.Facility) error {
	payload, err := json.Marshal(facilities)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, facilitiesKey(), payload, c.facilitiesTTL).Err()
}

// AcquireSlotHold takes a short-lived hold on a facility/date/slot while an
// admission is in flight. It is a cheap pre-insert guard only; the unique
// index on active bookings stays the authoritative conflict gate.
func (c *RedisCache) AcquireSlotHold(ctx context.Context, facilityID int64, date time.Time, slot string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, slotHoldKey(facilityID, date, slot), "held", ttl).Result()
}

func (c *RedisCache) ReleaseSlotHold(ctx context.Context, facilityID int64, date time.Time, slot string) error {
	return c.client.Del(ctx, slotHoldKey(facilityID, date, slot)).Err()
}

func facilitiesKey() string {
	return "cache:facilities"
}

func slotHoldKey(facilityID int64, date time.Time, slot string) string {
	return fmt.Sprintf("hold:facility:%d:%s:%s", facilityID, date.Format("2006-01-02"), slot)
}
