package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avetrov/facilityhub/config"
	"github.com/avetrov/facilityhub/internal/email"
	"github.com/avetrov/facilityhub/internal/kafka"
	"github.com/avetrov/facilityhub/internal/repository"
	"github.com/avetrov/facilityhub/internal/service/credit"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	accountRepo := repository.NewAccountRepository(pool)
	creditService := credit.NewCreditService(accountRepo, decimal.NewFromFloat(cfg.Booking.WeeklyCreditMinutes))

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.NotificationsTopic,
		MinBytes:       cfg.Kafka.ConsumerMinBytes,
		MaxBytes:       cfg.Kafka.ConsumerMaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitIntervalMS) * time.Millisecond,
	})
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
			if err := emailSender.Send(ctx, event); err != nil {
				log.Printf("send email error: %v", err)
			}
			return nil
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	restoreAt := nextRestore(time.Now(), time.Weekday(cfg.Worker.RestoreWeekday), cfg.Worker.RestoreHour)
	timer := time.NewTimer(time.Until(restoreAt))
	defer timer.Stop()
	log.Printf("next credit restoration at %s", restoreAt.Format(time.RFC3339))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-timer.C:
			restored, err := creditService.RestoreWeeklyAllowance(ctx)
			if err != nil {
				log.Printf("credit restoration error: %v", err)
			} else {
				log.Printf("restored weekly allowance for %d accounts", restored)
			}
			restoreAt = nextRestore(time.Now(), time.Weekday(cfg.Worker.RestoreWeekday), cfg.Worker.RestoreHour)
			timer.Reset(time.Until(restoreAt))
			log.Printf("next credit restoration at %s", restoreAt.Format(time.RFC3339))
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// nextRestore finds the next wall-clock instant of the configured weekday
// and hour strictly after now.
func nextRestore(now time.Time, weekday time.Weekday, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}
