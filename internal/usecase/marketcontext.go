package usecase

import (
	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// EvaluateMarketContext fills MarketFavorable and ContextScore from the raw
// context facts already on mc.
func EvaluateMarketContext(mc *domain.MarketContext) {
	votes := 0
	if mc.FearGreedIndex > 25 {
		votes++
	}
	if mc.BTCAboveEMA20 {
		votes++
	}
	if mc.BTC24hChange > -5 {
		votes++
	}
	if mc.SOL24hChange > -10 {
		votes++
	}
	mc.MarketFavorable = votes >= 3

	score := 50

	switch {
	case mc.FearGreedIndex < 20:
		score -= 20 // extreme fear, nothing pumps
	case mc.FearGreedIndex < 40:
		score -= 5
	case mc.FearGreedIndex > 75:
		score -= 10 // extreme greed, reversal risk
	case mc.FearGreedIndex > 55:
		score += 15
	}

	if mc.BTCAboveEMA20 {
		score += 15
	} else {
		score -= 10
	}

	switch {
	case mc.BTC24hChange > 3:
		score += 10
	case mc.BTC24hChange > 0:
		score += 5
	case mc.BTC24hChange < -5:
		score -= 10
	case mc.BTC24hChange < 0:
		score -= 5
	}

	mc.ContextScore = clampInt(score, 0, 100)
}

// FearGreedLabel maps the 0-100 index to its conventional label.
func FearGreedLabel(index int) string {
	switch {
	case index < 20:
		return "Extreme Fear"
	case index < 40:
		return "Fear"
	case index < 60:
		return "Neutral"
	case index < 80:
		return "Greed"
	default:
		return "Extreme Greed"
	}
}
