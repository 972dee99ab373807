package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	fixedTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	batch := ObservationBatch{
		withCondition(obs("A", 45, 50, 1), "Clear"),
		withCondition(obs("B", -25, 95, 25), "Snow"),
	}

	result := Analyze(batch)

	assert.Equal(t, fixedTime, result.GeneratedAt)
	assert.Equal(t, 2, result.Metrics.Count)
	assert.Len(t, result.Alerts, 4)
	require.Len(t, result.Indices, 2)
	assert.Equal(t, "A", result.Indices[0].City)
	assert.Equal(t, "B", result.Indices[1].City)

	if diff := cmp.Diff(ComputeMetrics(batch), result.Metrics); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DetectAlerts(batch), result.Alerts); diff != "" {
		t.Errorf("alerts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ComputeIndices(batch), result.Indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	result := Analyze(ObservationBatch{})

	assert.Equal(t, 0, result.Metrics.Count)
	assert.Nil(t, result.Metrics.MeanTemperature)
	assert.NotNil(t, result.Alerts)
	assert.Empty(t, result.Alerts)
	assert.NotNil(t, result.Indices)
	assert.Empty(t, result.Indices)
	assert.Equal(t, time.UTC, result.GeneratedAt.Location())
}

func TestAssembleResult_CopiesInputs(t *testing.T) {
	alerts := []Alert{{City: "A", Kind: AlertHighWind, Value: 25, Message: "High wind warning: 25.0 m/s"}}
	indices := []ObservationIndex{{City: "A"}}
	metrics := SummaryMetrics{Count: 1, Conditions: ConditionAnalysis{
		Distribution: []ConditionCount{{Condition: "Rain", Count: 1}},
	}}

	result := AssembleResult(metrics, alerts, indices, time.Time{})

	alerts[0].City = "changed"
	indices[0].City = "changed"
	metrics.Conditions.Distribution[0].Count = 99

	assert.Equal(t, "A", result.Alerts[0].City)
	assert.Equal(t, "A", result.Indices[0].City)
	assert.Equal(t, 1, result.Metrics.Conditions.Distribution[0].Count)
}

func TestAssembleResult_NilSlices(t *testing.T) {
	result := AssembleResult(SummaryMetrics{}, nil, nil, time.Time{})

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["alerts"])
	assert.Equal(t, []any{}, decoded["composite_indices"])
	metrics := decoded["metrics"].(map[string]any)
	assert.Nil(t, metrics["avg_temperature"])
	conditions := metrics["weather_conditions"].(map[string]any)
	assert.Equal(t, []any{}, conditions["condition_distribution"])
}

func TestAnalysisResult_JSONRoundTrip(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	batch := ObservationBatch{
		withPressure(withCondition(obs("Austin", 31.5, 40, 4.1), "Clear"), 1012),
		withCondition(obs("Oslo", -21.25, 93, 22), "Snow"),
		{City: "Lima", Country: UnknownName, Humidity: ptr(77.0)},
	}
	result := Analyze(batch)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(result, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSetClock(t *testing.T) {
	t.Run("fake clock pins generatedAt in UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*60*60)
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 9, 0, 0, 0, loc)))
		defer SetClock(nil)

		got := generatedAt()
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("nil restores wall time", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)

		assert.WithinDuration(t, time.Now(), generatedAt(), time.Second)
	})
}
