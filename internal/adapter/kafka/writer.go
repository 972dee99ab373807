package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-analysis-service/internal/config"
	"github.com/couchcryptid/weather-analysis-service/internal/report"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces analysis reports to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadReport serializes one cycle's report and publishes it to the sink topic.
func (w *Writer) LoadReport(ctx context.Context, r report.Report) error {
	msg, err := serializeToMessage(r)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	w.logger.Debug("report published", "key", string(msg.Key), "bytes", len(msg.Value))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a report into a Kafka message keyed by its timestamp.
func serializeToMessage(r report.Report) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize analysis report: %w", err)
	}
	stamp := r.Timestamp.UTC().Format(time.RFC3339)
	return kafkago.Message{
		Key:   []byte(stamp),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_count", Value: []byte(strconv.Itoa(len(r.Alerts)))},
			{Key: "city_count", Value: []byte(strconv.Itoa(r.TotalCities))},
			{Key: "generated_at", Value: []byte(stamp)},
		},
	}, nil
}
