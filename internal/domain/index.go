package domain

import (
	"errors"
	"math"
)

// ErrIndexNotComputable is returned when temperature, humidity or wind speed is absent.
var ErrIndexNotComputable = errors.New("composite index needs temperature, humidity and wind speed")

// Comfort reference point and penalty weights per unit of deviation.
const (
	IdealTemperature = 21.0 // °C
	IdealHumidity    = 50.0 // %
	IdealWindSpeed   = 2.0  // m/s

	comfortTempWeight     = 5.0
	comfortHumidityWeight = 2.0
	comfortWindWeight     = 20.0
)

// Severity triggers. Each adds a penalty only when its condition holds.
const (
	SeverityHotThreshold   = 35.0 // °C, penalise above
	SeverityColdThreshold  = 0.0  // °C, penalise below
	SeverityWindThreshold  = 10.0 // m/s, penalise above
	SeverityHumidThreshold = 80.0 // %, penalise above
	SeverityDryThreshold   = 20.0 // %, penalise below
)

const (
	severityReferenceTemp     = 20.0
	severityReferenceHumidity = 50.0
	severityTempWeight        = 2.0
	severityWindWeight        = 3.0
)

const maxScore = 100.0

// CompositeIndex scores one observation on a 0–100 scale.
type CompositeIndex struct {
	Comfort  float64 `json:"comfort"`
	Severity float64 `json:"severity"`
}

// ObservationIndex pairs a city with its index. Index is nil when the
// observation lacks the inputs the formulas need.
type ObservationIndex struct {
	City  string          `json:"city"`
	Index *CompositeIndex `json:"index"`
}

// ComputeIndex scores a single observation. Scores depend only on that
// observation, so they compare across batches.
func ComputeIndex(obs Observation) (CompositeIndex, error) {
	if obs.Temperature == nil || obs.Humidity == nil || obs.WindSpeed == nil {
		return CompositeIndex{}, ErrIndexNotComputable
	}
	temp, humidity, wind := *obs.Temperature, *obs.Humidity, *obs.WindSpeed
	return CompositeIndex{
		Comfort:  comfortScore(temp, humidity, wind),
		Severity: severityScore(temp, humidity, wind),
	}, nil
}

// ComputeIndices scores every observation in batch order.
func ComputeIndices(batch ObservationBatch) []ObservationIndex {
	indices := make([]ObservationIndex, 0, len(batch))
	for _, obs := range batch {
		entry := ObservationIndex{City: obs.City}
		if idx, err := ComputeIndex(obs); err == nil {
			entry.Index = &idx
		}
		indices = append(indices, entry)
	}
	return indices
}

// comfortScore averages three sub-scores, each 100 at the ideal point and floored at 0.
func comfortScore(temp, humidity, wind float64) float64 {
	tempScore := math.Max(0, maxScore-math.Abs(temp-IdealTemperature)*comfortTempWeight)
	humidityScore := math.Max(0, maxScore-math.Abs(humidity-IdealHumidity)*comfortHumidityWeight)
	windScore := math.Max(0, maxScore-math.Abs(wind-IdealWindSpeed)*comfortWindWeight)
	return clampScore((tempScore + humidityScore + windScore) / 3)
}

// severityScore sums penalties for extreme temperature, strong wind and
// extreme humidity, clamped to 0–100.
func severityScore(temp, humidity, wind float64) float64 {
	var severity float64
	if temp > SeverityHotThreshold || temp < SeverityColdThreshold {
		severity += math.Abs(temp-severityReferenceTemp) * severityTempWeight
	}
	if wind > SeverityWindThreshold {
		severity += wind * severityWindWeight
	}
	if humidity > SeverityHumidThreshold || humidity < SeverityDryThreshold {
		severity += math.Abs(humidity - severityReferenceHumidity)
	}
	return clampScore(severity)
}

func clampScore(v float64) float64 {
	return math.Min(maxScore, math.Max(0, v))
}
