package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quake-dashboard/internal/config"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes dashboard views to a Kafka topic, one message per view.
// It implements pipeline.ViewSink.
type Writer struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the configured views topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaViewsTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// PublishViews writes every view of d in a single WriteMessages call. Views
// are keyed by name so each one lands on a stable partition.
func (w *Writer) PublishViews(ctx context.Context, d *domain.Dashboard) error {
	msgs := make([]kafkago.Message, 0, len(domain.ViewNames))
	for _, name := range domain.ViewNames {
		msg, err := serializeView(name, d)
		if err != nil {
			w.metrics.PublishErrors.Inc()
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish views: %w", err)
	}

	w.metrics.ViewsPublished.Add(float64(len(msgs)))
	w.logger.Debug("views published", "run_id", d.RunID, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeView marshals one named view of d into a Kafka message.
func serializeView(name string, d *domain.Dashboard) (kafkago.Message, error) {
	view, ok := d.Views.Lookup(name)
	if !ok {
		return kafkago.Message{}, fmt.Errorf("serialize view: unknown view %q", name)
	}
	data, err := json.Marshal(view)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize view %s: %w", name, err)
	}
	return kafkago.Message{
		Key:   []byte(name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(d.RunID)},
			{Key: "generated_at", Value: []byte(d.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
