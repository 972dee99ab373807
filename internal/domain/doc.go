// Package domain turns raw per-city weather observations into summary
// statistics, threshold alerts, and composite comfort/severity indices.
//
// # Data Source
//
// Raw records are OpenWeatherMap "current weather" responses. The upstream
// collector fetches one response per configured city each collection cycle,
// adds a "timestamp" field with the fetch time, and publishes each response
// as JSON to the Kafka source topic.
//
// # Provider Conventions
//
// Record shape (only the fields read here):
//
//	{
//	  "name": "Austin",
//	  "timestamp": "2024-07-01T12:00:00.123456",
//	  "dt": 1719835200,
//	  "coord":   {"lat": 30.27, "lon": -97.74},
//	  "main":    {"temp": 35.2, "feels_like": 38.1, "humidity": 40, "pressure": 1012},
//	  "wind":    {"speed": 4.1, "deg": 180},
//	  "clouds":  {"all": 20},
//	  "weather": [{"main": "Clear", "description": "clear sky"}],
//	  "visibility": 10000,
//	  "sys":     {"country": "US", "sunrise": 1719834000, "sunset": 1719885000}
//	}
//
// Units are metric: °C, %, hPa, m/s, metres.
//
// Timestamps:
//
//	"timestamp" is ISO-8601, with or without an offset. Values without an
//	offset are read as UTC. When missing, the provider "dt" epoch seconds
//	is used. "sunrise" and "sunset" are epoch seconds and are converted to
//	UTC instants.
//
// Missing values:
//
//	Any missing nested field is absent (nil), never zero. A missing "name"
//	or "sys.country" becomes "Unknown". A present but empty "weather" array
//	is malformed and the whole record is skipped. Humidity and cloudiness
//	outside 0–100 are treated as absent.
//
// # Analysis
//
// Each component is a pure function of an [ObservationBatch]:
//
//	ComputeMetrics   summary statistics, see [SummaryMetrics]
//	DetectAlerts     fixed-threshold alerts, see [Alert]
//	ComputeIndices   comfort and severity per observation, see [CompositeIndex]
//
// [Analyze] runs all three and merges them with [AssembleResult].
//
// Statistics skip observations where the field is absent. The temperature
// standard deviation is the sample standard deviation (N−1). The 75th
// percentile used for the high-wind count is the linear interpolation
// between closest ranks (the numpy/pandas default).
package domain
