package countries

// EstimateGDP approximates a GDP in USD as population * multiplier / rate.
// Without a usable exchange rate the estimate is 0.
func EstimateGDP(population int64, rate *float64, multiplier int) float64 {
	if rate == nil || *rate <= 0 {
		return 0
	}
	return float64(population) * float64(multiplier) / *rate
}
