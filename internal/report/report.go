// Package report renders an analysis result for consumers: the JSON report
// published per collection cycle, the plain-text summary and the HTML page.
package report

import (
	"time"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
)

const (
	DataSource    = "OpenWeatherMap API"
	AnalysisType  = "Real-time Weather Analysis"
	ReportVersion = "1.0"
)

// Metadata describes where a report came from.
type Metadata struct {
	DataSource    string `json:"data_source"`
	AnalysisType  string `json:"analysis_type"`
	ReportVersion string `json:"report_version"`
}

// Report is the published form of one collection cycle.
type Report struct {
	Timestamp   time.Time                 `json:"timestamp"`
	Metrics     domain.SummaryMetrics     `json:"metrics"`
	Alerts      []domain.Alert            `json:"alerts"`
	Indices     []domain.ObservationIndex `json:"composite_indices"`
	CityData    domain.ObservationBatch   `json:"city_data"`
	TotalCities int                       `json:"total_cities_analyzed"`
	Metadata    Metadata                  `json:"report_metadata"`
}

// New builds the report for a batch and the result computed from it.
func New(batch domain.ObservationBatch, result domain.AnalysisResult) Report {
	cities := make(domain.ObservationBatch, len(batch))
	copy(cities, batch)

	return Report{
		Timestamp:   result.GeneratedAt,
		Metrics:     result.Metrics,
		Alerts:      result.Alerts,
		Indices:     result.Indices,
		CityData:    cities,
		TotalCities: len(batch),
		Metadata: Metadata{
			DataSource:    DataSource,
			AnalysisType:  AnalysisType,
			ReportVersion: ReportVersion,
		},
	}
}

// Result recovers the analysis result the report was built from.
func (r Report) Result() domain.AnalysisResult {
	return domain.AssembleResult(r.Metrics, r.Alerts, r.Indices, r.Timestamp)
}
