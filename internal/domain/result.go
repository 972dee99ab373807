package domain

import (
	"slices"
	"sync"
	"time"
)

// AnalysisResult is the output of one collection cycle.
type AnalysisResult struct {
	GeneratedAt time.Time          `json:"timestamp"`
	Metrics     SummaryMetrics     `json:"metrics"`
	Alerts      []Alert            `json:"alerts"`
	Indices     []ObservationIndex `json:"composite_indices"`
}

// AssembleResult merges the component outputs without further computation.
// Slices are copied so later changes by the caller do not leak into the
// result, and nil slices become empty.
func AssembleResult(metrics SummaryMetrics, alerts []Alert, indices []ObservationIndex, at time.Time) AnalysisResult {
	if metrics.Conditions.Distribution == nil {
		metrics.Conditions.Distribution = []ConditionCount{}
	} else {
		metrics.Conditions.Distribution = slices.Clone(metrics.Conditions.Distribution)
	}

	result := AnalysisResult{
		GeneratedAt: at,
		Metrics:     metrics,
		Alerts:      make([]Alert, len(alerts)),
		Indices:     make([]ObservationIndex, len(indices)),
	}
	copy(result.Alerts, alerts)
	copy(result.Indices, indices)
	return result
}

// Analyze runs the aggregator, alert detector and index calculator over the
// batch and assembles their outputs, stamped with the analysis clock. The three
// only read the batch, so they run concurrently.
func Analyze(batch ObservationBatch) AnalysisResult {
	var (
		wg      sync.WaitGroup
		metrics SummaryMetrics
		alerts  []Alert
		indices []ObservationIndex
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		metrics = ComputeMetrics(batch)
	}()
	go func() {
		defer wg.Done()
		alerts = DetectAlerts(batch)
	}()
	go func() {
		defer wg.Done()
		indices = ComputeIndices(batch)
	}()
	wg.Wait()

	return AssembleResult(metrics, alerts, indices, generatedAt())
}
