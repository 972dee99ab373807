// Command validate checks a published analysis report against the raw
// records it was computed from. It re-runs the analysis, compares every
// section, and verifies alert thresholds and index bounds.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input testdata/openweather_current.json \
//	  -report report.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
	"github.com/couchcryptid/weather-analysis-service/internal/report"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// floatTolerance absorbs rounding in reports produced by other encoders.
const floatTolerance = 1e-9

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the JSON array of raw provider records")
	reportPath := flag.String("report", "", "path to the JSON analysis report to validate")
	flag.Parse()

	if *input == "" || *reportPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *reportPath, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, reportPath string, w io.Writer) int {
	fmt.Fprintln(w, "=== Weather Report Validation ===")
	fmt.Fprintln(w)

	values, err := loadJSON[json.RawMessage](inputPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: load raw records: %v\n", err)
		return 1
	}

	rep, err := loadReport(reportPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: load report: %v\n", err)
		return 1
	}

	raws := make([]domain.RawRecord, len(values))
	for i, v := range values {
		raws[i] = domain.RawRecord{Value: v, Offset: int64(i)}
	}
	batch, skipped := domain.NormalizeBatch(raws)

	phases := []*phase{
		validateStructure(rep),
		validateReproducible(rep, batch),
		validateAlerts(rep),
		validateIndices(rep),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d raw, %d skipped, %d cities in report, %d alerts\n",
		len(raws), len(skipped), rep.TotalCities, len(rep.Alerts))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func loadReport(path string) (report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return report.Report{}, err
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return report.Report{}, err
	}
	return rep, nil
}

// ── Phase 1: Structure ──
// Counts agree across sections and the metadata is the one this service writes.

func validateStructure(rep report.Report) *phase {
	p := &phase{name: "Phase 1: Report Structure"}

	want := report.Metadata{
		DataSource:    report.DataSource,
		AnalysisType:  report.AnalysisType,
		ReportVersion: report.ReportVersion,
	}
	if rep.Metadata != want {
		p.errorf("report_metadata = %+v, want %+v", rep.Metadata, want)
	}
	if rep.Timestamp.IsZero() {
		p.errorf("timestamp is missing")
	}
	if rep.TotalCities != len(rep.CityData) {
		p.errorf("total_cities_analyzed = %d, city_data has %d entries", rep.TotalCities, len(rep.CityData))
	}
	if rep.Metrics.Count != rep.TotalCities {
		p.errorf("metrics.total_cities = %d, want %d", rep.Metrics.Count, rep.TotalCities)
	}
	if len(rep.Indices) != rep.TotalCities {
		p.errorf("composite_indices has %d entries, want %d", len(rep.Indices), rep.TotalCities)
	}
	for i := range min(len(rep.Indices), len(rep.CityData)) {
		if rep.Indices[i].City != rep.CityData[i].City {
			p.errorf("composite_indices[%d].city = %q, city_data has %q", i, rep.Indices[i].City, rep.CityData[i].City)
		}
	}

	total := 0
	for _, c := range rep.Metrics.Conditions.Distribution {
		total += c.Count
	}
	if total > rep.TotalCities {
		p.errorf("condition distribution counts %d observations, only %d cities", total, rep.TotalCities)
	}
	return p
}

// ── Phase 2: Reproducibility ──
// Re-running the analysis over the raw input yields the same sections.

func validateReproducible(rep report.Report, batch domain.ObservationBatch) *phase {
	p := &phase{name: "Phase 2: Analysis Reproducibility"}
	opts := cmp.Options{cmpopts.EquateApprox(0, floatTolerance), cmpopts.EquateEmpty()}

	if diff := cmp.Diff(batch, rep.CityData, opts); diff != "" {
		p.errorf("city_data differs from normalized input (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(domain.ComputeMetrics(batch), rep.Metrics, opts); diff != "" {
		p.errorf("metrics differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(domain.DetectAlerts(batch), rep.Alerts, opts); diff != "" {
		p.errorf("alerts differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(domain.ComputeIndices(batch), rep.Indices, opts); diff != "" {
		p.errorf("composite_indices differ (-want +got):\n%s", diff)
	}
	return p
}

// ── Phase 3: Alerts ──
// Every alert names a known kind and its value actually breaches the threshold.

func validateAlerts(rep report.Report) *phase {
	p := &phase{name: "Phase 3: Alert Thresholds"}
	for i, a := range rep.Alerts {
		if a.City == "" {
			p.errorf("alert[%d] has no city", i)
		}
		if a.Message == "" {
			p.errorf("alert[%d] (%s) has no message", i, a.City)
		}
		if !breaches(a) {
			p.errorf("alert[%d] %s %s value %v does not breach its threshold", i, a.City, a.Kind, a.Value)
		}
	}
	return p
}

func breaches(a domain.Alert) bool {
	switch a.Kind {
	case domain.AlertExtremeHeat:
		return a.Value > domain.ExtremeHeatThreshold
	case domain.AlertExtremeCold:
		return a.Value < domain.ExtremeColdThreshold
	case domain.AlertHighWind:
		return a.Value > domain.HighWindThreshold
	case domain.AlertHighHumidity:
		return a.Value > domain.HighHumidityThreshold
	default:
		return false
	}
}

// ── Phase 4: Indices ──
// Scores stay in range and are present exactly when their inputs are.

func validateIndices(rep report.Report) *phase {
	p := &phase{name: "Phase 4: Composite Index Bounds"}
	for i, idx := range rep.Indices {
		if idx.Index != nil {
			checkScore(p, idx.City, "comfort", idx.Index.Comfort)
			checkScore(p, idx.City, "severity", idx.Index.Severity)
		}
		if i >= len(rep.CityData) {
			continue
		}
		obs := rep.CityData[i]
		hasInputs := obs.Temperature != nil && obs.Humidity != nil && obs.WindSpeed != nil
		if hasInputs != (idx.Index != nil) {
			p.errorf("%s: index present = %t, inputs present = %t", idx.City, idx.Index != nil, hasInputs)
		}
	}
	return p
}

func checkScore(p *phase, city, name string, v float64) {
	if v < 0 || v > 100 {
		p.errorf("%s: %s score %v outside [0, 100]", city, name, v)
	}
}
