package worker

import (
	"context"
	"encoding/json"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/database"
	"catalogo/internal/events"
	"catalogo/internal/logger"
	"catalogo/internal/worker/processors/export"

	"github.com/segmentio/kafka-go"
)

type Worker struct {
	config   *config.Config
	logger   *logger.Logger
	reader   *kafka.Reader
	exporter *export.Exporter
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "catalogo-worker",
		Topic:          events.Topic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:   cfg,
		logger:   logger,
		reader:   reader,
		exporter: export.New(cfg, logger, db.DB),
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for export requests...")

	for {
		message, err := w.reader.ReadMessage(context.Background())
		if err != nil {
			w.logger.Error("Failed to read message: %v", err)
			return
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if event.Type != events.TypeExportRequested {
			w.logger.Debug("Ignoring event type: %s", event.Type)
			continue
		}

		// One export can paginate the full catalog and fetch every image.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		err = w.exporter.Export(ctx, event.Formats)
		cancel()

		if err != nil {
			w.logger.Error("Failed to process export request: %v", err)
			continue
		}

		w.logger.Debug("Export request processed successfully")
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
