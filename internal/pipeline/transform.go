package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
	"github.com/couchcryptid/weather-analysis-service/internal/observability"
	"github.com/couchcryptid/weather-analysis-service/internal/report"
)

// WeatherTransformer implements Transformer with the domain analysis core.
type WeatherTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a WeatherTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *WeatherTransformer {
	return &WeatherTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

// Transform normalizes the raw records, skipping and logging the malformed
// ones, and analyzes the rest as one batch. A cycle where every record was
// skipped still yields a well-formed empty report.
func (t *WeatherTransformer) Transform(ctx context.Context, raws []domain.RawRecord) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	start := time.Now()

	batch, skipped := domain.NormalizeBatch(raws)
	for _, s := range skipped {
		t.logger.Warn("normalize failed, skipping record",
			"error", s.Err,
			"topic", s.Record.Topic,
			"partition", s.Record.Partition,
			"offset", s.Record.Offset,
		)
	}
	t.metrics.NormalizeErrors.Add(float64(len(skipped)))

	result := domain.Analyze(batch)
	t.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	for _, a := range result.Alerts {
		t.metrics.AlertsEmitted.WithLabelValues(string(a.Kind)).Inc()
	}

	if len(result.Alerts) > 0 {
		t.logger.Info("weather alerts raised", "count", len(result.Alerts))
	}

	return report.New(batch, result), nil
}
