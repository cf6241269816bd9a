package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avetrov/facilityhub/config"
	"github.com/avetrov/facilityhub/internal/bootstrap"
	"github.com/avetrov/facilityhub/internal/cache"
	"github.com/avetrov/facilityhub/internal/kafka"
	"github.com/avetrov/facilityhub/internal/repository"
	"github.com/avetrov/facilityhub/internal/service/booking"
	"github.com/avetrov/facilityhub/internal/service/credit"
	"github.com/avetrov/facilityhub/internal/service/facilities"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FacilitiesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	accountRepo := repository.NewAccountRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	facilityRepo := repository.NewFacilityRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		accountRepo,
		facilityRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		cfg.Booking.ClosingHour,
		time.Duration(cfg.Booking.SlotHoldTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	facilityService := facilities.NewFacilityService(facilityRepo, bookingRepo, bookingService, redisCache)
	creditService := credit.NewCreditService(accountRepo, decimal.NewFromFloat(cfg.Booking.WeeklyCreditMinutes))

	if err := bootstrap.Run(ctx, cfg, bookingService, facilityService, creditService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
