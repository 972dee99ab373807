package domain

import (
	"fmt"
	"strconv"
)

// AlertKind classifies a threshold breach.
type AlertKind string

const (
	AlertExtremeHeat  AlertKind = "EXTREME_HEAT"
	AlertExtremeCold  AlertKind = "EXTREME_COLD"
	AlertHighWind     AlertKind = "HIGH_WIND"
	AlertHighHumidity AlertKind = "HIGH_HUMIDITY"
)

// Alert thresholds. Comparisons are strict.
const (
	ExtremeHeatThreshold  = 40.0  // °C, alert above
	ExtremeColdThreshold  = -20.0 // °C, alert below
	HighWindThreshold     = 20.0  // m/s, alert above
	HighHumidityThreshold = 90.0  // %, alert above
)

// AlertKinds lists every kind in evaluation order.
var AlertKinds = []AlertKind{AlertExtremeHeat, AlertExtremeCold, AlertHighWind, AlertHighHumidity}

// Alert is a flagged threshold breach for one observation.
type Alert struct {
	City    string    `json:"city"`
	Kind    AlertKind `json:"type"`
	Value   float64   `json:"value"`
	Message string    `json:"message"`
}

// DetectAlerts evaluates every observation against the fixed thresholds and
// returns alerts in batch order. Heat and cold are exclusive; wind and humidity
// are checked independently, so one observation yields at most three alerts.
// Absent fields never trigger.
func DetectAlerts(batch ObservationBatch) []Alert {
	alerts := make([]Alert, 0)
	for _, obs := range batch {
		alerts = append(alerts, observationAlerts(obs)...)
	}
	return alerts
}

func observationAlerts(obs Observation) []Alert {
	var alerts []Alert

	if t := obs.Temperature; t != nil {
		if *t > ExtremeHeatThreshold {
			alerts = append(alerts, Alert{
				City:    obs.City,
				Kind:    AlertExtremeHeat,
				Value:   *t,
				Message: fmt.Sprintf("Extreme heat warning: %.1f°C", *t),
			})
		} else if *t < ExtremeColdThreshold {
			alerts = append(alerts, Alert{
				City:    obs.City,
				Kind:    AlertExtremeCold,
				Value:   *t,
				Message: fmt.Sprintf("Extreme cold warning: %.1f°C", *t),
			})
		}
	}

	if w := obs.WindSpeed; w != nil && *w > HighWindThreshold {
		alerts = append(alerts, Alert{
			City:    obs.City,
			Kind:    AlertHighWind,
			Value:   *w,
			Message: fmt.Sprintf("High wind warning: %.1f m/s", *w),
		})
	}

	if h := obs.Humidity; h != nil && *h > HighHumidityThreshold {
		alerts = append(alerts, Alert{
			City:    obs.City,
			Kind:    AlertHighHumidity,
			Value:   *h,
			Message: "High humidity: " + strconv.FormatFloat(*h, 'f', -1, 64) + "%",
		})
	}

	return alerts
}
