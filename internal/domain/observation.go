package domain

import (
	"context"
	"time"
)

// UnknownName is used for a city or country the provider did not report.
const UnknownName = "Unknown"

// RawRecord represents an unprocessed message from the source topic.
type RawRecord struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Observation is one city's weather snapshot for one collection cycle.
// Nil pointers mean the provider did not report the value.
type Observation struct {
	City          string     `json:"city"`
	Country       string     `json:"country"`
	Lat           *float64   `json:"latitude"`
	Lon           *float64   `json:"longitude"`
	Temperature   *float64   `json:"temperature"`
	FeelsLike     *float64   `json:"feels_like"`
	Humidity      *float64   `json:"humidity"`
	Pressure      *float64   `json:"pressure"`
	Visibility    *float64   `json:"visibility"`
	WindSpeed     *float64   `json:"wind_speed"`
	WindDirection *float64   `json:"wind_direction"`
	Cloudiness    *float64   `json:"cloudiness"`
	Condition     *string    `json:"weather_main"`
	Description   *string    `json:"weather_description"`
	Sunrise       *time.Time `json:"sunrise"`
	Sunset        *time.Time `json:"sunset"`
	ObservedAt    *time.Time `json:"timestamp"`
}

// ObservationBatch is the ordered set of observations from one collection cycle.
// Order is fetch order and only matters for tie-breaking.
type ObservationBatch []Observation

// SkippedRecord describes a raw record that could not be normalized.
type SkippedRecord struct {
	Index  int
	Record RawRecord
	Err    error
}

// providerRecord mirrors the subset of the OpenWeatherMap response that is read.
// Every field is a pointer so a missing key can be told apart from a zero.
type providerRecord struct {
	Name       *string              `json:"name"`
	Timestamp  *string              `json:"timestamp"`
	Dt         *float64             `json:"dt"`
	Visibility *float64             `json:"visibility"`
	Coord      *providerCoord       `json:"coord"`
	Main       *providerMain        `json:"main"`
	Wind       *providerWind        `json:"wind"`
	Clouds     *providerClouds      `json:"clouds"`
	Weather    *[]providerCondition `json:"weather"`
	Sys        *providerSys         `json:"sys"`
}

type providerCoord struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type providerMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Humidity  *float64 `json:"humidity"`
	Pressure  *float64 `json:"pressure"`
}

type providerWind struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
}

type providerClouds struct {
	All *float64 `json:"all"`
}

type providerCondition struct {
	Main        *string `json:"main"`
	Description *string `json:"description"`
}

type providerSys struct {
	Country *string  `json:"country"`
	Sunrise *float64 `json:"sunrise"`
	Sunset  *float64 `json:"sunset"`
}
