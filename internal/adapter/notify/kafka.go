package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"escrow-settlement/config"
	"escrow-settlement/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaSink implements ports.NotificationSink on a Kafka topic. Notices are
// keyed by transaction ID so all events for one escrow land in the same
// partition, in order.
type KafkaSink struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewKafkaSink creates a Kafka-backed notification sink.
func NewKafkaSink(cfg config.KafkaConfig, log zerolog.Logger) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		},
		log: log,
	}
}

// Publish writes the settlement notice as a JSON message.
func (s *KafkaSink) Publish(ctx context.Context, notice domain.SettlementNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal settlement notice: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(notice.TransactionID.String()),
		Value: payload,
		Time:  time.Now(),
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write settlement notice: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// LogSink implements ports.NotificationSink by logging notices. It is the
// sink of last resort when no broker is configured.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a log-only notification sink.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Publish logs the settlement notice.
func (s *LogSink) Publish(_ context.Context, notice domain.SettlementNotice) error {
	s.log.Info().
		Str("event", notice.Event).
		Str("transaction_id", notice.TransactionID.String()).
		Str("seller_id", notice.SellerID.String()).
		Str("amount", notice.Amount.String()).
		Msg("settlement notice")
	return nil
}
