package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrEmptyWeather is returned when the provider sends a "weather" array with no entries.
var ErrEmptyWeather = errors.New("weather array is empty")

// timestampLayouts are tried in order. The collector writes naive ISO-8601
// local timestamps, other producers send RFC 3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseRawObservation deserializes a RawRecord's value into an Observation.
// Missing fields become nil; structural problems (wrong JSON types, an empty
// weather array, an unreadable timestamp) return an error so the caller can
// skip the record.
func ParseRawObservation(raw RawRecord) (Observation, error) {
	var rec providerRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: %w", err)
	}

	obs := Observation{
		City:       nameOrUnknown(rec.Name),
		Country:    UnknownName,
		Visibility: rec.Visibility,
	}

	if rec.Coord != nil {
		obs.Lat = rec.Coord.Lat
		obs.Lon = rec.Coord.Lon
	}
	if rec.Main != nil {
		obs.Temperature = rec.Main.Temp
		obs.FeelsLike = rec.Main.FeelsLike
		obs.Humidity = percentOrNil(rec.Main.Humidity)
		obs.Pressure = rec.Main.Pressure
	}
	if rec.Wind != nil {
		obs.WindSpeed = rec.Wind.Speed
		obs.WindDirection = rec.Wind.Deg
	}
	if rec.Clouds != nil {
		obs.Cloudiness = percentOrNil(rec.Clouds.All)
	}
	if rec.Weather != nil {
		if len(*rec.Weather) == 0 {
			return Observation{}, fmt.Errorf("parse raw observation %q: %w", obs.City, ErrEmptyWeather)
		}
		first := (*rec.Weather)[0]
		obs.Condition = first.Main
		obs.Description = first.Description
	}
	if rec.Sys != nil {
		obs.Country = nameOrUnknown(rec.Sys.Country)
		obs.Sunrise = epochToTime(rec.Sys.Sunrise)
		obs.Sunset = epochToTime(rec.Sys.Sunset)
	}

	observedAt, err := observationTime(rec.Timestamp, rec.Dt)
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw observation %q: %w", obs.City, err)
	}
	obs.ObservedAt = observedAt

	return obs, nil
}

// NormalizeBatch parses every raw record in order. Records that fail are
// reported in the second return value and left out of the batch; the batch
// itself is never rejected.
func NormalizeBatch(raws []RawRecord) (ObservationBatch, []SkippedRecord) {
	batch := make(ObservationBatch, 0, len(raws))
	var skipped []SkippedRecord
	for i, raw := range raws {
		obs, err := ParseRawObservation(raw)
		if err != nil {
			skipped = append(skipped, SkippedRecord{Index: i, Record: raw, Err: err})
			continue
		}
		batch = append(batch, obs)
	}
	return batch, skipped
}

// nameOrUnknown trims a provider name and falls back to UnknownName.
func nameOrUnknown(name *string) string {
	if name == nil {
		return UnknownName
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return UnknownName
	}
	return trimmed
}

// percentOrNil drops values outside 0–100.
func percentOrNil(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || *v < 0 || *v > 100 {
		return nil
	}
	return v
}

// epochToTime converts provider epoch seconds to a UTC instant.
func epochToTime(seconds *float64) *time.Time {
	if seconds == nil {
		return nil
	}
	whole, frac := math.Modf(*seconds)
	t := time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
	return &t
}

// observationTime prefers the collector timestamp and falls back to the provider's dt.
func observationTime(timestamp *string, dt *float64) (*time.Time, error) {
	if timestamp != nil && strings.TrimSpace(*timestamp) != "" {
		t, err := parseTimestamp(*timestamp)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	return epochToTime(dt), nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: unsupported format", value)
}
