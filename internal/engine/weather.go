package engine

// weatherCycle is the reproducible weather multiplier sequence applied to
// each year's harvest. The modulo indexing lets the sequence repeat after
// 20 turns if more than 20 years are played.
var weatherCycle = []float64{
	1.00, 1.03, 0.87, 1.14, 1.05, 0.94, 0.90, 1.02, 1.08, 0.89, 1.08,
	1.10, 1.01, 1.13, 1.06, 1.19, 1.16, 1.10, 1.01, 1.07, 1.11,
}

// WeatherFor returns the multiplier used while computing the given year's
// harvest.
func WeatherFor(year int) float64 {
	return weatherCycle[year%20]
}

// WeatherShown returns the multiplier the operator report displays for a
// year, which trails the harvest index by one.
func WeatherShown(year int) float64 {
	return weatherCycle[(year-1)%20]
}
