package domain

// obs builds an observation with the fields most tests care about.
func obs(city string, temp, humidity, wind float64) Observation {
	return Observation{
		City:        city,
		Country:     UnknownName,
		Temperature: ptr(temp),
		Humidity:    ptr(humidity),
		WindSpeed:   ptr(wind),
	}
}

func withCondition(o Observation, condition string) Observation {
	o.Condition = ptr(condition)
	return o
}

func withPressure(o Observation, pressure float64) Observation {
	o.Pressure = ptr(pressure)
	return o
}
