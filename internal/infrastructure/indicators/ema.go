package indicators

// CalculateEMA computes the Exponential Moving Average over the full series
// and returns the final value. Seeded with a simple mean of the first
// `period` points, then smoothed with multiplier 2/(period+1).
//
// Series shorter than the period return the last price (or 0 when empty).
func CalculateEMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < period {
		return prices[len(prices)-1]
	}

	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)

	for _, price := range prices[period:] {
		ema = (price-ema)*multiplier + ema
	}

	return ema
}
