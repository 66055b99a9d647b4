package indicators

import "math"

// CalculateVWAP computes the Volume Weighted Average Price over a series and
// the percent deviation of the last price from it.
//
// Zero total volume falls back to (last price, 0) so callers never divide by
// zero. Mismatched or empty inputs return (0, 0).
func CalculateVWAP(prices, volumes []float64) (vwap, deviationPct float64) {
	if len(prices) == 0 || len(volumes) == 0 || len(prices) != len(volumes) {
		return 0, 0
	}

	totalVolume := 0.0
	for _, v := range volumes {
		totalVolume += v
	}
	if totalVolume == 0 {
		return prices[len(prices)-1], 0
	}

	weighted := 0.0
	for i := range prices {
		weighted += prices[i] * volumes[i]
	}
	vwap = weighted / totalVolume

	currentPrice := prices[len(prices)-1]
	if vwap > 0 {
		deviationPct = (currentPrice - vwap) / vwap * 100
	}

	return math.Round(vwap*1e8) / 1e8, math.Round(deviationPct*100) / 100
}
