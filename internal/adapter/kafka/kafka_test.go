package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
	"github.com/couchcryptid/weather-analysis-service/internal/report"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawRecord(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"name":"Austin"}`),
		Topic:     "raw-weather-observations",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("openweather")},
		},
	}

	raw := mapMessageToRawRecord(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"name":"Austin"}`, string(raw.Value))
	assert.Equal(t, "raw-weather-observations", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "openweather", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapMessageToRawRecord_NoHeaders(t *testing.T) {
	raw := mapMessageToRawRecord(kafkago.Message{Value: []byte(`{}`)})
	assert.NotNil(t, raw.Headers)
	assert.Empty(t, raw.Headers)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	temp, humidity, wind := 45.0, 50.0, 1.0
	batch := domain.ObservationBatch{
		{City: "A", Country: "US", Temperature: &temp, Humidity: &humidity, WindSpeed: &wind},
	}
	result := domain.AssembleResult(
		domain.ComputeMetrics(batch),
		domain.DetectAlerts(batch),
		domain.ComputeIndices(batch),
		now,
	)

	msg, err := serializeToMessage(report.New(batch, result))
	require.NoError(t, err)

	assert.Equal(t, []byte("2024-07-01T12:00:00Z"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "alert_count", msg.Headers[0].Key)
	assert.Equal(t, []byte("1"), msg.Headers[0].Value)
	assert.Equal(t, "city_count", msg.Headers[1].Key)
	assert.Equal(t, []byte("1"), msg.Headers[1].Value)
	assert.Equal(t, "generated_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)

	var decoded report.Report
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, 1, decoded.TotalCities)
	require.Len(t, decoded.Alerts, 1)
	assert.Equal(t, domain.AlertExtremeHeat, decoded.Alerts[0].Kind)
	assert.True(t, now.Equal(decoded.Timestamp))
}

func TestSerializeToMessage_NonUTCTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	r := report.Report{Timestamp: time.Date(2024, 7, 1, 14, 0, 0, 0, loc)}

	msg, err := serializeToMessage(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("2024-07-01T12:00:00Z"), msg.Key)
}
