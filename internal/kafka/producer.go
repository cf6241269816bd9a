package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every lifecycle transition. Tag selects the
// email template in the notification worker and may differ from Status
// (an approval carries SYSTEMAPPROVED or ADMINAPPROVED).
type BookingEvent struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	FacilityID int64     `json:"facility_id"`
	AccountID  int64     `json:"account_id"`
	Email      string    `json:"email"`
	BookedOn   time.Time `json:"booked_on"`
	TimeSlot   string    `json:"time_slot"`
	Credits    string    `json:"credits"`
	Status     string    `json:"status"`
	Tag        string    `json:"tag"`
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
