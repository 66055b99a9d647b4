package indicators

// DetectConsolidationBreak reports whether the current price is breaking out
// of a recent tight trading range.
//
// Two-stage filter: the last `lookback` prices must span less than
// `tightThreshold` of their mean (range compression), and the current price
// must clear the range high by more than 2% (a decisive move, not a single
// candle poking above).
func DetectConsolidationBreak(prices []float64, currentPrice float64, lookback int, tightThreshold float64) bool {
	if len(prices) < lookback {
		return false
	}

	recent := prices[len(prices)-lookback:]
	high := recent[0]
	low := recent[0]
	sum := 0.0
	for _, p := range recent {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
		sum += p
	}

	avg := sum / float64(len(recent))
	if avg == 0 {
		return false
	}

	rangePct := (high - low) / avg
	if rangePct >= tightThreshold {
		return false
	}

	return currentPrice > high*1.02
}
