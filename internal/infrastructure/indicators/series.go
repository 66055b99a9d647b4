package indicators

// ReconstructSeries approximates an hourly price/volume history from the
// aggregated percent-change and volume fields a DEX pair endpoint exposes,
// for use when no candle feed is available.
//
// Prices are anchored at the values implied by the 24h/6h/1h/5m changes
// relative to the current price, with linear interpolation between anchors:
// one point per hour from 24h ago to 1h ago, a 5m-ago point, then the
// current price. Volume interpolates from the 24h hourly average toward the
// most recent 1h volume over the final stretch.
//
// The result is 26 points, enough for RSI(14) and a 20-point lookback.
func ReconstructSeries(currentPrice, change5m, change1h, change6h, change24h, volume1h, volume24h float64) (prices, volumes []float64) {
	if currentPrice <= 0 {
		return nil, nil
	}

	p24 := impliedPrice(currentPrice, change24h)
	p6 := impliedPrice(currentPrice, change6h)
	p1 := impliedPrice(currentPrice, change1h)
	p5m := impliedPrice(currentPrice, change5m)

	prices = make([]float64, 0, 26)
	// 24h ago down to 7h ago, interpolating toward the 6h anchor.
	for h := 24; h > 6; h-- {
		frac := float64(24-h) / 18.0
		prices = append(prices, p24+(p6-p24)*frac)
	}
	// 6h ago down to 1h ago.
	for h := 6; h >= 1; h-- {
		frac := float64(6-h) / 5.0
		prices = append(prices, p6+(p1-p6)*frac)
	}
	prices = append(prices, p5m, currentPrice)

	hourlyAvg := volume24h / 24.0
	volumes = make([]float64, len(prices))
	n := len(volumes)
	for i := range volumes {
		volumes[i] = hourlyAvg
	}
	// Blend the last 6 points from the hourly average toward the live 1h volume.
	for i := 0; i < 6 && i < n; i++ {
		idx := n - 6 + i
		frac := float64(i+1) / 6.0
		volumes[idx] = hourlyAvg + (volume1h-hourlyAvg)*frac
	}

	return prices, volumes
}

// impliedPrice inverts a percent change: the price changePct% ago that leads
// to the current price.
func impliedPrice(currentPrice, changePct float64) float64 {
	denom := 1 + changePct/100
	if denom <= 0 {
		// A -100% (or worse) reading is bad provider data; pin to current.
		return currentPrice
	}
	return currentPrice / denom
}
