package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
)

const notAvailable = "N/A"

var recommendations = []string{
	"Monitor cities with extreme temperatures for potential health impacts",
	"Consider wind conditions for outdoor activities",
	"Track humidity levels for comfort assessments",
	"Review weather patterns for trend analysis",
}

// Summary renders the plain-text analysis summary. Values that could not be
// computed print as N/A.
func Summary(result domain.AnalysisResult) string {
	m := result.Metrics
	var b strings.Builder

	b.WriteString("WEATHER DATA ANALYSIS SUMMARY\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("OVERVIEW:\n")
	fmt.Fprintf(&b, "- Total cities analyzed: %d\n", m.Count)
	fmt.Fprintf(&b, "- Average temperature: %s\n", number(m.MeanTemperature, "°C"))
	fmt.Fprintf(&b, "- Temperature range: %s to %s\n", number(m.MinTemperature, "°C"), number(m.MaxTemperature, "°C"))
	fmt.Fprintf(&b, "- Average humidity: %s\n", number(m.MeanHumidity, "%"))
	fmt.Fprintf(&b, "- Average pressure: %s\n", number(m.MeanPressure, " hPa"))
	fmt.Fprintf(&b, "- Average wind speed: %s\n\n", number(m.MeanWindSpeed, " m/s"))

	t := m.Temperature
	b.WriteString("TEMPERATURE INSIGHTS:\n")
	fmt.Fprintf(&b, "- Hottest city: %s\n", text(t.HottestCity))
	fmt.Fprintf(&b, "- Coldest city: %s\n", text(t.ColdestCity))
	fmt.Fprintf(&b, "- Cities above average temp: %d\n", t.CountAboveMean)
	fmt.Fprintf(&b, "- Temperature standard deviation: %s\n\n", number(t.StdDev, "°C"))

	b.WriteString("WEATHER CONDITIONS:\n")
	fmt.Fprintf(&b, "- Most common condition: %s\n", text(m.Conditions.MostCommon))
	for _, c := range m.Conditions.Distribution {
		fmt.Fprintf(&b, "- %s: %d %s\n", c.Condition, c.Count, plural(c.Count, "city", "cities"))
	}
	b.WriteString("\n")

	w := m.Wind
	b.WriteString("WIND ANALYSIS:\n")
	fmt.Fprintf(&b, "- Maximum wind speed: %s\n", number(w.MaxSpeed, " m/s"))
	fmt.Fprintf(&b, "- Windiest city: %s\n", text(w.WindiestCity))
	fmt.Fprintf(&b, "- Cities with high wind: %d\n\n", w.CountHighWind)

	h := m.Humidity
	b.WriteString("HUMIDITY ANALYSIS:\n")
	fmt.Fprintf(&b, "- Most humid city: %s\n", text(h.MostHumidCity))
	fmt.Fprintf(&b, "- High humidity cities (>%s%%): %d\n", percent(domain.HumidHumidityThreshold), h.CountHumid)
	fmt.Fprintf(&b, "- Low humidity cities (<%s%%): %d\n\n", percent(domain.DryHumidityThreshold), h.CountDry)

	b.WriteString("WEATHER ALERTS:\n")
	if len(result.Alerts) == 0 {
		b.WriteString("- No weather alerts detected\n")
	}
	for _, a := range result.Alerts {
		fmt.Fprintf(&b, "- %s: %s\n", a.City, a.Message)
	}
	b.WriteString("\n")

	b.WriteString("COMPOSITE INDICES:\n")
	if len(result.Indices) == 0 {
		b.WriteString("- No observations\n")
	}
	for _, idx := range result.Indices {
		if idx.Index == nil {
			fmt.Fprintf(&b, "- %s: %s\n", idx.City, notAvailable)
			continue
		}
		fmt.Fprintf(&b, "- %s: comfort %.1f, severity %.1f\n", idx.City, idx.Index.Comfort, idx.Index.Severity)
	}
	b.WriteString("\n")

	b.WriteString("RECOMMENDATIONS:\n")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}

	return b.String()
}

// Summary renders the text summary of the report's analysis.
func (r Report) Summary() string {
	return Summary(r.Result())
}

func number(v *float64, unit string) string {
	if v == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + unit
}

func text(v *string) string {
	if v == nil {
		return notAvailable
	}
	return *v
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
