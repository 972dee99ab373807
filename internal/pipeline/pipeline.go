package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
	"github.com/couchcryptid/weather-analysis-service/internal/observability"
	"github.com/couchcryptid/weather-analysis-service/internal/report"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw observation records from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRecord, error)
}

// Transformer turns one collection cycle of raw records into a report.
type Transformer interface {
	Transform(ctx context.Context, raws []domain.RawRecord) (report.Report, error)
}

// Loader publishes a report to the destination.
type Loader interface {
	LoadReport(ctx context.Context, r report.Report) error
}

// Pipeline orchestrates the extract-analyze-load loop. Every extracted batch
// is one collection cycle.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	latest      atomic.Pointer[report.Report]
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one report,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any reports yet")
	}
	return nil
}

// Latest returns the most recently published report.
func (p *Pipeline) Latest() (report.Report, bool) {
	r := p.latest.Load()
	if r == nil {
		return report.Report{}, false
	}
	return *r, true
}

// Run executes the analysis loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := initialBackoff

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processCycle(ctx, &backoff) {
			return nil
		}
	}
}

// processCycle runs one extract-analyze-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processCycle(ctx context.Context, backoff *time.Duration) bool {
	start := time.Now()

	raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff)
	}

	if len(raws) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.RecordsConsumed.Add(float64(len(raws)))
	p.metrics.BatchSize.Observe(float64(len(raws)))
	*backoff = initialBackoff

	rep, err := p.transformer.Transform(ctx, raws)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("analyze cycle failed", "error", err, "batch_size", len(raws))
		return p.backoffOrStop(ctx, backoff)
	}

	// The reader does not rewind uncommitted messages, so the cycle's report
	// is retried until it lands rather than re-extracted.
	if !p.loadWithRetry(ctx, rep, backoff) {
		return false
	}

	p.metrics.ReportsProduced.Inc()
	p.latest.Store(&rep)
	p.ready.Store(true)

	for _, raw := range raws {
		p.commitOffset(ctx, raw)
	}

	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	p.logger.Debug("cycle published",
		"records", len(raws),
		"cities", rep.TotalCities,
		"alerts", len(rep.Alerts),
	)
	return true
}

// loadWithRetry publishes rep, backing off between failed attempts. Returns
// false if the context is cancelled before the report is loaded.
func (p *Pipeline) loadWithRetry(ctx context.Context, rep report.Report, backoff *time.Duration) bool {
	for attempt := 1; ; attempt++ {
		err := p.loader.LoadReport(ctx, rep)
		if err == nil {
			*backoff = initialBackoff
			return true
		}
		p.logger.Error("load report failed", "error", err,
			"cities", rep.TotalCities, "attempt", attempt, "backoff", *backoff)
		if !p.backoffOrStop(ctx, backoff) {
			return false
		}
	}
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the record offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawRecord) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
