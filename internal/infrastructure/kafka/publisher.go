package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type SettlementPublisher struct {
	writer *kafka.Writer
}

func NewSettlementPublisher(brokers []string, topic string) *SettlementPublisher {
	return &SettlementPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *SettlementPublisher) Publish(ctx context.Context, event SettlementEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.PaymentID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *SettlementPublisher) Close() error {
	return p.writer.Close()
}
