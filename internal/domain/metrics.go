package domain

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	// HighWindQuantile is the batch quantile above which a city counts as windy.
	HighWindQuantile = 0.75

	// HumidHumidityThreshold and DryHumidityThreshold bound the humidity counts (%).
	HumidHumidityThreshold = 70.0
	DryHumidityThreshold   = 30.0
)

// SummaryMetrics aggregates one batch. Nil fields mean no observation in the
// batch reported the underlying value.
type SummaryMetrics struct {
	Count           int      `json:"total_cities"`
	MeanTemperature *float64 `json:"avg_temperature"`
	MaxTemperature  *float64 `json:"max_temperature"`
	MinTemperature  *float64 `json:"min_temperature"`
	MeanHumidity    *float64 `json:"avg_humidity"`
	MeanPressure    *float64 `json:"avg_pressure"`
	MeanWindSpeed   *float64 `json:"avg_wind_speed"`

	Temperature TemperatureAnalysis `json:"temperature_analysis"`
	Conditions  ConditionAnalysis   `json:"weather_conditions"`
	Wind        WindAnalysis        `json:"wind_analysis"`
	Humidity    HumidityAnalysis    `json:"humidity_analysis"`
}

// TemperatureAnalysis holds the spread of temperatures across cities.
type TemperatureAnalysis struct {
	StdDev         *float64 `json:"std_deviation"` // sample (N−1); nil below two readings
	Range          *float64 `json:"temperature_range"`
	CountAboveMean int      `json:"cities_above_average"`
	HottestCity    *string  `json:"hottest_city"`
	ColdestCity    *string  `json:"coldest_city"`
}

// ConditionCount is one entry of the condition distribution.
type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
}

// ConditionAnalysis holds the distribution of weather categories in first-seen order.
type ConditionAnalysis struct {
	Distribution []ConditionCount `json:"condition_distribution"`
	MostCommon   *string          `json:"most_common_condition"`
}

// WindAnalysis holds wind extremes.
type WindAnalysis struct {
	MaxSpeed       *float64 `json:"max_wind_speed"`
	HighWindCutoff *float64 `json:"high_wind_cutoff"` // 75th percentile of wind speed
	CountHighWind  int      `json:"cities_with_high_wind"`
	WindiestCity   *string  `json:"windiest_city"`
}

// HumidityAnalysis holds humidity extremes.
type HumidityAnalysis struct {
	CountHumid    int     `json:"high_humidity_cities"`
	CountDry      int     `json:"low_humidity_cities"`
	MostHumidCity *string `json:"most_humid_city"`
}

// ComputeMetrics derives SummaryMetrics from a batch. An empty batch yields a
// zero count and nil statistics.
func ComputeMetrics(batch ObservationBatch) SummaryMetrics {
	m := SummaryMetrics{
		Count:      len(batch),
		Conditions: ConditionAnalysis{Distribution: []ConditionCount{}},
	}
	if len(batch) == 0 {
		return m
	}

	temps := presentValues(batch, temperatureOf)
	m.MeanTemperature = meanOrNil(temps)
	m.MeanHumidity = meanOrNil(presentValues(batch, humidityOf))
	m.MeanPressure = meanOrNil(presentValues(batch, pressureOf))
	m.MeanWindSpeed = meanOrNil(presentValues(batch, windSpeedOf))

	m.Temperature, m.MaxTemperature, m.MinTemperature = temperatureAnalysis(batch, temps)
	m.Conditions = conditionAnalysis(batch)
	m.Wind = windAnalysis(batch)
	m.Humidity = humidityAnalysis(batch)
	return m
}

func temperatureAnalysis(batch ObservationBatch, temps []float64) (TemperatureAnalysis, *float64, *float64) {
	var ta TemperatureAnalysis
	if len(temps) == 0 {
		return ta, nil, nil
	}

	maxTemp, hottest := extreme(batch, temperatureOf, greater)
	minTemp, coldest := extreme(batch, temperatureOf, less)
	ta.HottestCity = hottest
	ta.ColdestCity = coldest
	ta.Range = ptr(*maxTemp - *minTemp)

	mean, std := stat.MeanStdDev(temps, nil)
	if len(temps) > 1 {
		ta.StdDev = ptr(std)
	}
	for _, t := range temps {
		if t > mean {
			ta.CountAboveMean++
		}
	}
	return ta, maxTemp, minTemp
}

func conditionAnalysis(batch ObservationBatch) ConditionAnalysis {
	ca := ConditionAnalysis{Distribution: []ConditionCount{}}
	positions := make(map[string]int)
	for _, obs := range batch {
		if obs.Condition == nil {
			continue
		}
		if i, ok := positions[*obs.Condition]; ok {
			ca.Distribution[i].Count++
			continue
		}
		positions[*obs.Condition] = len(ca.Distribution)
		ca.Distribution = append(ca.Distribution, ConditionCount{Condition: *obs.Condition, Count: 1})
	}

	best := -1
	for i, cc := range ca.Distribution {
		if best < 0 || cc.Count > ca.Distribution[best].Count {
			best = i
		}
	}
	if best >= 0 {
		ca.MostCommon = ptr(ca.Distribution[best].Condition)
	}
	return ca
}

func windAnalysis(batch ObservationBatch) WindAnalysis {
	var wa WindAnalysis
	speeds := presentValues(batch, windSpeedOf)
	if len(speeds) == 0 {
		return wa
	}

	wa.MaxSpeed, wa.WindiestCity = extreme(batch, windSpeedOf, greater)

	sorted := slices.Clone(speeds)
	slices.Sort(sorted)
	cutoff := linearQuantile(sorted, HighWindQuantile)
	wa.HighWindCutoff = ptr(cutoff)
	for _, s := range speeds {
		if s > cutoff {
			wa.CountHighWind++
		}
	}
	return wa
}

func humidityAnalysis(batch ObservationBatch) HumidityAnalysis {
	var ha HumidityAnalysis
	for _, h := range presentValues(batch, humidityOf) {
		switch {
		case h > HumidHumidityThreshold:
			ha.CountHumid++
		case h < DryHumidityThreshold:
			ha.CountDry++
		}
	}
	_, ha.MostHumidCity = extreme(batch, humidityOf, greater)
	return ha
}

// linearQuantile interpolates between the closest ranks of sorted values:
// h = (n−1)·q, result = x[⌊h⌋] + (h−⌊h⌋)·(x[⌊h⌋+1] − x[⌊h⌋]).
// This matches numpy.percentile and pandas.Series.quantile defaults.
// gonum's stat.Quantile has no equivalent estimator.
func linearQuantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// extreme returns the first observation in batch order whose field beats every other.
func extreme(batch ObservationBatch, field func(Observation) *float64, better func(a, b float64) bool) (*float64, *string) {
	var best *float64
	var city *string
	for _, obs := range batch {
		v := field(obs)
		if v == nil {
			continue
		}
		if best == nil || better(*v, *best) {
			best = ptr(*v)
			city = ptr(obs.City)
		}
	}
	return best, city
}

func presentValues(batch ObservationBatch, field func(Observation) *float64) []float64 {
	values := make([]float64, 0, len(batch))
	for _, obs := range batch {
		if v := field(obs); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return ptr(stat.Mean(values, nil))
}

func temperatureOf(o Observation) *float64 { return o.Temperature }
func humidityOf(o Observation) *float64    { return o.Humidity }
func pressureOf(o Observation) *float64    { return o.Pressure }
func windSpeedOf(o Observation) *float64   { return o.WindSpeed }

func greater(a, b float64) bool { return a > b }
func less(a, b float64) bool    { return a < b }

func ptr[T any](v T) *T { return &v }
