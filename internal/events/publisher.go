// Package events carries the export-request messages between the API and
// the export worker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"catalogo/internal/config"
	"catalogo/internal/logger"
)

// Topic is the kafka topic shared by the API publisher and the worker.
const Topic = "catalog-events"

const TypeExportRequested = "catalog.export.requested"

// Event is an export request. Formats is any subset of {"xlsx", "pdf"}.
type Event struct {
	Type        string    `json:"type"`
	Formats     []string  `json:"formats"`
	RequestedAt time.Time `json:"requested_at"`
}

type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(cfg *config.Config, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers),
		Topic:    Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishExportRequest asks the worker to regenerate the export files.
func (p *Publisher) PublishExportRequest(ctx context.Context, formats []string) error {
	event := Event{
		Type:        TypeExportRequested,
		Formats:     formats,
		RequestedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
		return fmt.Errorf("failed to publish export request: %w", err)
	}

	p.logger.Debug("Published export request: %v", formats)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
