package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"number": number,
	"text":   text,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Weather Data Analysis Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
.section { margin: 20px 0; padding: 20px; border: 1px solid #ddd; }
.metric { display: inline-block; margin: 10px; padding: 15px; background-color: #f9f9f9; border-radius: 5px; }
.alert { background-color: #ffebee; border-left: 5px solid #f44336; padding: 10px; margin: 10px 0; }
.data-table { width: 100%; border-collapse: collapse; }
.data-table th, .data-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
.data-table th { background-color: #f2f2f2; }
</style>
</head>
<body>
<div class="header">
<h1>Weather Data Analysis Report</h1>
<p>Generated on: {{.Generated}}</p>
</div>
{{with .Metrics}}
<div class="section">
<h2>Summary Statistics</h2>
<div class="metric"><h3>Cities Analyzed</h3><p>{{.Count}}</p></div>
<div class="metric"><h3>Average Temperature</h3><p>{{number .MeanTemperature "°C"}}</p></div>
<div class="metric"><h3>Temperature Range</h3><p>{{number .MinTemperature "°C"}} - {{number .MaxTemperature "°C"}}</p></div>
<div class="metric"><h3>Average Humidity</h3><p>{{number .MeanHumidity "%"}}</p></div>
<div class="metric"><h3>Average Wind Speed</h3><p>{{number .MeanWindSpeed " m/s"}}</p></div>
</div>
{{end}}
<div class="section">
<h2>Weather Alerts</h2>
{{range .Alerts}}<div class="alert"><strong>{{.City}}</strong>: {{.Message}}</div>
{{else}}<p>No weather alerts at this time.</p>
{{end}}</div>

<div class="section">
<h2>City Data</h2>
<table class="data-table">
<thead>
<tr><th>City</th><th>Temperature (°C)</th><th>Feels Like (°C)</th><th>Humidity (%)</th><th>Wind Speed (m/s)</th><th>Weather</th><th>Comfort</th><th>Severity</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.City}}</td><td>{{number .Temperature ""}}</td><td>{{number .FeelsLike ""}}</td><td>{{number .Humidity ""}}</td><td>{{number .WindSpeed ""}}</td><td>{{text .Description}}</td><td>{{number .Comfort ""}}</td><td>{{number .Severity ""}}</td></tr>
{{end}}</tbody>
</table>
</div>
{{with .Metrics}}
<div class="section">
<h2>Analysis Insights</h2>
<h3>Temperature Analysis</h3>
<ul>
<li>Hottest city: {{text .Temperature.HottestCity}}</li>
<li>Coldest city: {{text .Temperature.ColdestCity}}</li>
<li>Temperature range: {{number .Temperature.Range "°C"}}</li>
<li>Cities above average temperature: {{.Temperature.CountAboveMean}}</li>
</ul>
<h3>Weather Conditions</h3>
<ul>
{{range .Conditions.Distribution}}<li>{{.Condition}}: {{.Count}} {{if eq .Count 1}}city{{else}}cities{{end}}</li>
{{end}}</ul>
</div>
{{end}}
</body>
</html>
`))

type htmlRow struct {
	City        string
	Temperature *float64
	FeelsLike   *float64
	Humidity    *float64
	WindSpeed   *float64
	Description *string
	Comfort     *float64
	Severity    *float64
}

type htmlView struct {
	Generated string
	Metrics   domain.SummaryMetrics
	Alerts    []domain.Alert
	Rows      []htmlRow
}

// HTML renders the report as a standalone HTML page with summary cards, the
// alert list and a per-city table. Every value is escaped.
func HTML(r Report) (string, error) {
	view := htmlView{
		Generated: r.Timestamp.Format("2006-01-02 15:04:05 MST"),
		Metrics:   r.Metrics,
		Alerts:    r.Alerts,
		Rows:      make([]htmlRow, len(r.CityData)),
	}

	for i, obs := range r.CityData {
		row := htmlRow{
			City:        obs.City,
			Temperature: obs.Temperature,
			FeelsLike:   obs.FeelsLike,
			Humidity:    obs.Humidity,
			WindSpeed:   obs.WindSpeed,
			Description: obs.Description,
		}
		// Indices are computed in batch order, one per observation.
		if i < len(r.Indices) && r.Indices[i].City == obs.City && r.Indices[i].Index != nil {
			idx := *r.Indices[i].Index
			row.Comfort, row.Severity = &idx.Comfort, &idx.Severity
		}
		view.Rows[i] = row
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return buf.String(), nil
}
