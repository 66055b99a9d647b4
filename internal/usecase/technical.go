package usecase

import (
	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/indicators"
)

const (
	rsiPeriod         = 14
	breakoutLookback  = 20
	breakoutThreshold = 0.05
)

// AnalyzeTechnical runs the full technical analysis over a price/volume
// series. Labels and score deltas share thresholds, so a label can never
// disagree with the score it contributed to.
func AnalyzeTechnical(prices, volumes []float64, currentPrice float64) *domain.TechnicalIndicators {
	result := &domain.TechnicalIndicators{
		RSI14:       50.0,
		PriceVsVWAP: domain.StateNeutral,
		RSISignal:   domain.StateNeutral,
	}
	patterns := []string{}

	if len(prices) >= rsiPeriod+1 {
		result.RSI14 = indicators.CalculateRSI(prices, rsiPeriod)
		switch {
		case result.RSI14 < 30:
			result.RSISignal = domain.RSIOversold
			patterns = append(patterns, "RSI Oversold (<30)")
		case result.RSI14 > 70:
			result.RSISignal = domain.RSIOverbought
			patterns = append(patterns, "RSI Overbought (>70)")
		}
	}

	if len(prices) > 0 && len(volumes) > 0 {
		result.VWAP, result.VWAPDeviation = indicators.CalculateVWAP(prices, volumes)
		if result.VWAP > 0 {
			switch {
			case currentPrice > result.VWAP*1.02:
				result.PriceVsVWAP = domain.VWAPAbove
				patterns = append(patterns, "Price above VWAP")
			case currentPrice < result.VWAP*0.98:
				result.PriceVsVWAP = domain.VWAPBelow
				patterns = append(patterns, "Price below VWAP")
			}
		}
	}

	result.ConsolidationBreak = indicators.DetectConsolidationBreak(
		prices, currentPrice, breakoutLookback, breakoutThreshold)
	if result.ConsolidationBreak {
		patterns = append(patterns, "Consolidation breakout")
	}

	result.Patterns = patterns
	result.TechnicalScore = scoreTechnical(result)
	return result
}

// BuildTechnicalIndicators reconstructs a series from a market snapshot and
// analyzes it. Used when no candle feed is available for the pair.
func BuildTechnicalIndicators(m domain.TokenMarketSnapshot) *domain.TechnicalIndicators {
	prices, volumes := indicators.ReconstructSeries(
		m.PriceUSD,
		m.PriceChange5m, m.PriceChange1h, m.PriceChange6h, m.PriceChange24h,
		m.Volume1h, m.Volume24h,
	)
	return AnalyzeTechnical(prices, volumes, m.PriceUSD)
}

// scoreTechnical maps indicator states to a 0-100 score around a neutral 50.
func scoreTechnical(t *domain.TechnicalIndicators) int {
	score := 50

	// RSI contribution (-15 to +15)
	switch {
	case t.RSI14 < 30:
		score += 15 // oversold = bullish reversal bias
	case t.RSI14 < 40:
		score += 10
	case t.RSI14 > 70:
		score -= 15 // overbought = bearish risk
	case t.RSI14 > 60:
		score += 5 // strong momentum
	}

	// VWAP contribution (-10 to +15)
	switch t.PriceVsVWAP {
	case domain.VWAPAbove:
		score += 15
	case domain.VWAPBelow:
		score -= 10
	}

	if t.ConsolidationBreak {
		score += 20
	}

	return clampInt(score, 0, 100)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
