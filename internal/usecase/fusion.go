package usecase

import (
	"fmt"
	"math"

	"github.com/eddieom08-star/crypto-signals/internal/config"
	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// EngineConfig holds the fusion thresholds. Zero values are replaced by
// defaults in NewEngine so callers can override selectively.
type EngineConfig struct {
	MinLiquidityUSD   float64 // below this the liquidity factor scores zero
	IdealLiquidityUSD float64 // at or above this the liquidity factor is maxed
}

// AnalysisInput bundles everything known about a token for one scan cycle.
// Market is required. The other assessments are optional: a nil pointer
// means the data source was unavailable and the engine degrades to neutral
// defaults instead of failing.
type AnalysisInput struct {
	Market     domain.TokenMarketSnapshot
	Security   *domain.SecurityAssessment
	SmartMoney *domain.SmartMoneyAssessment
	Technical  *domain.TechnicalIndicators
	Context    *domain.MarketContext
}

// Engine fuses market, security, smart money and technical inputs into a
// CompositeSignal. It is stateless and safe for concurrent use.
type Engine struct {
	weights config.ScoringWeights
	cfg     EngineConfig
}

func NewEngine(weights config.ScoringWeights, cfg EngineConfig) *Engine {
	if cfg.MinLiquidityUSD == 0 {
		cfg.MinLiquidityUSD = 50_000
	}
	if cfg.IdealLiquidityUSD == 0 {
		cfg.IdealLiquidityUSD = 500_000
	}
	return &Engine{weights: weights, cfg: cfg}
}

// Analyze scores one token. Identical inputs always produce identical
// outputs; there is no randomness, no hidden state, and the input
// assessments are never modified.
func (e *Engine) Analyze(in AnalysisInput) (*domain.CompositeSignal, error) {
	m := in.Market
	if m.PriceUSD <= 0 {
		return nil, fmt.Errorf("analyze %s: price %.12f: %w",
			m.Symbol, m.PriceUSD, domain.ErrInvalidMarketData)
	}

	sig := &domain.CompositeSignal{
		Symbol:   m.Symbol,
		Address:  m.Address,
		PriceUSD: m.PriceUSD,
	}

	sig.LiquidityScore = e.scoreLiquidity(m.LiquidityUSD)
	sig.VolumeRatioScore = e.scoreVolumeRatio(m.Volume24h, m.LiquidityUSD)
	sig.MomentumScore = e.scoreMomentum(m)
	sig.BuyPressureScore = e.scoreBuyPressure(m)
	sig.TrendScore = e.scoreTrend(m)
	base := sig.LiquidityScore + sig.VolumeRatioScore + sig.MomentumScore +
		sig.BuyPressureScore + sig.TrendScore

	sec := ScoreSecurity(in.Security)
	sig.RiskLevel = sec.RiskLevel
	sig.SecurityScore = sec.SecurityBonus
	sig.BundlePenalty = sec.BundlePenalty
	sig.SecurityWarnings = sec.Warnings
	if in.Security != nil {
		sig.IsLocked = in.Security.Lock.IsLocked
		sig.LockPercentage = in.Security.Lock.LockPercentage
		sig.IsBundled = in.Security.Bundle.IsBundled
		sig.BundlePercentage = in.Security.Bundle.BundlePercentage
	}

	smBonus := 0.0
	if in.SmartMoney != nil {
		sm := ScoreSmartMoney(in.SmartMoney)
		sig.SmartMoneyScore = sm.Score
		sig.SmartMoneySignal = sm.Signal
		sig.SmartMoneyConfidence = sm.Confidence
		if in.SmartMoney.Social != nil {
			sig.SocialScore = in.SmartMoney.Social.SocialScore
			sig.SocialSentiment = in.SmartMoney.Social.Sentiment
		}
		smBonus = float64(sm.Score-50) / 5.0
	} else {
		sig.SmartMoneySignal = domain.SignalNeutral
		sig.SmartMoneyConfidence = domain.ConfidenceLow
	}

	if in.Technical != nil {
		sig.Technical = in.Technical
		sig.TechnicalScore = in.Technical.TechnicalScore
	} else {
		sig.TechnicalScore = 50
	}
	sig.MarketContext = in.Context

	total := float64(base+sec.SecurityBonus-sec.BundlePenalty) + smBonus
	sig.TotalScore = clampInt(int(total), 0, 100)

	sig.PoP = e.estimatePoP(sig, in, sec)
	sig.SignalStrength = signalStrength(sig.TotalScore, sig.PoP.PopScore)
	sig.Plan = buildTradePlan(m.PriceUSD, sec.RiskLevel)

	return sig, nil
}

// scoreLiquidity scales linearly from the minimum viable liquidity up to the
// ideal. Anything below minimum is untradeable and scores zero.
func (e *Engine) scoreLiquidity(liquidityUSD float64) int {
	maxPts := e.weights.Liquidity
	if liquidityUSD < e.cfg.MinLiquidityUSD {
		return 0
	}
	if liquidityUSD >= e.cfg.IdealLiquidityUSD {
		return maxPts
	}
	ratio := (liquidityUSD - e.cfg.MinLiquidityUSD) /
		(e.cfg.IdealLiquidityUSD - e.cfg.MinLiquidityUSD)
	return int(ratio * float64(maxPts))
}

// scoreVolumeRatio scores 24h volume relative to pool liquidity. The sweet
// spot is a ratio between 0.5 and 1.0; above 2.0 usually means churn or
// wash trading, not organic interest.
func (e *Engine) scoreVolumeRatio(volume24h, liquidityUSD float64) int {
	maxPts := float64(e.weights.VolumeLiquidityRatio)
	if liquidityUSD <= 0 {
		return 0
	}
	ratio := volume24h / liquidityUSD
	switch {
	case ratio < 0.1:
		return int(0.2 * maxPts)
	case ratio < 0.5:
		return int((0.2 + 0.8*ratio/0.5) * maxPts)
	case ratio <= 1.0:
		return int(maxPts)
	case ratio <= 2.0:
		return int(0.8 * maxPts)
	default:
		return int(0.5 * maxPts)
	}
}

// scoreMomentum rewards positive price change across four windows, capped
// per window. A 1h change above 50% halves the whole factor: by then the
// move is already over.
func (e *Engine) scoreMomentum(m domain.TokenMarketSnapshot) int {
	pts := 0.0
	if m.PriceChange5m > 0 {
		pts += math.Min(5, m.PriceChange5m/2)
	}
	if m.PriceChange1h > 0 {
		pts += math.Min(8, m.PriceChange1h/1.5)
	}
	if m.PriceChange6h > 0 {
		pts += math.Min(6, m.PriceChange6h/2)
	}
	if m.PriceChange24h > 0 {
		pts += math.Min(6, m.PriceChange24h/3)
	}
	if m.PriceChange1h > 50 {
		pts *= 0.5
	}
	maxPts := e.weights.PriceMomentum
	return clampInt(int(pts), 0, maxPts)
}

// scoreBuyPressure weights buy ratios across 5m/1h/24h windows, recent
// windows heaviest. Windows with no trades count as a neutral 0.5.
func (e *Engine) scoreBuyPressure(m domain.TokenMarketSnapshot) int {
	weighted := 0.4*buyRatio(m.TxnsBuys5m, m.TxnsSells5m) +
		0.35*buyRatio(m.TxnsBuys1h, m.TxnsSells1h) +
		0.25*buyRatio(m.TxnsBuys24h, m.TxnsSells24h)

	maxPts := float64(e.weights.BuyPressure)
	switch {
	case weighted <= 0.5:
		return 0
	case weighted >= 0.7:
		return int(maxPts)
	default:
		return int((weighted - 0.5) / 0.2 * maxPts)
	}
}

func buyRatio(buys, sells int) float64 {
	total := buys + sells
	if total == 0 {
		return 0.5
	}
	return float64(buys) / float64(total)
}

// scoreTrend measures alignment: how many timeframes agree, whether volume
// is accelerating, and whether there is enough 1h trade flow.
func (e *Engine) scoreTrend(m domain.TokenMarketSnapshot) int {
	score := 0

	positives := 0
	for _, c := range []float64{m.PriceChange5m, m.PriceChange1h, m.PriceChange6h, m.PriceChange24h} {
		if c > 0 {
			positives++
		}
	}
	switch positives {
	case 4:
		score += 8
	case 3:
		score += 5
	case 2:
		score += 2
	}

	hourlyAvg := m.Volume24h / 24
	if m.Volume1h > 0 {
		if m.Volume1h > hourlyAvg*1.5 {
			score += 4
		} else if m.Volume1h > hourlyAvg {
			score += 2
		}
	}

	txns1h := m.TxnsBuys1h + m.TxnsSells1h
	if txns1h > 100 {
		score += 3
	} else if txns1h > 50 {
		score += 1
	}

	return clampInt(score, 0, e.weights.TrendStrength)
}

// popWeights are the per-factor weights of the probability model, summed in
// this fixed order so the float result is reproducible. They add up to 1.0;
// security and smart money carry the most because they are the factors a
// pump cannot fake.
var popWeights = []struct {
	name   string
	weight float64
}{
	{"momentum", 0.15},
	{"volume", 0.10},
	{"buy_pressure", 0.15},
	{"liquidity", 0.10},
	{"security", 0.20},
	{"trend", 0.10},
	{"smart_money", 0.20},
}

// estimatePoP converts the factor scores into a probability-of-profit
// estimate in [5,95]. It never returns 0 or 100: this is a heuristic, not
// an oracle.
func (e *Engine) estimatePoP(sig *domain.CompositeSignal, in AnalysisInput, sec SecurityEvaluation) domain.PoPEstimate {
	factors := map[string]float64{
		"momentum":     norm(sig.MomentumScore, e.weights.PriceMomentum),
		"volume":       norm(sig.VolumeRatioScore, e.weights.VolumeLiquidityRatio),
		"buy_pressure": norm(sig.BuyPressureScore, e.weights.BuyPressure),
		"liquidity":    norm(sig.LiquidityScore, e.weights.Liquidity),
		"trend":        norm(sig.TrendScore, e.weights.TrendStrength),
	}

	if in.Security != nil {
		factors["security"] = 1.0 - float64(sec.RiskScore)/100.0
	} else {
		factors["security"] = 0.5
	}

	if in.SmartMoney != nil {
		sm := float64(sig.SmartMoneyScore) / 100.0
		switch sig.SmartMoneySignal {
		case domain.SignalAccumulation:
			sm *= 1.2
		case domain.SignalDistribution:
			sm *= 0.8
		}
		factors["smart_money"] = sm
	} else {
		factors["smart_money"] = 0.5
	}

	pop := 0.0
	for _, fw := range popWeights {
		pop += factors[fw.name] * fw.weight
	}

	// Every bundle penalty point shaves the probability; at 30 points the
	// signal is dead regardless of everything else.
	bundleFactor := 1.0 - float64(sec.BundlePenalty)/30.0
	if bundleFactor < 0 {
		bundleFactor = 0
	}
	pop *= bundleFactor

	if factors["momentum"] > 0.7 && factors["buy_pressure"] > 0.7 {
		pop *= 1.1
	}
	if in.Security != nil && in.Security.Lock.IsLocked && !in.Security.Bundle.IsBundled {
		pop *= 1.15
	}

	if in.Market.PriceChange1h > 50 {
		pop *= 0.7
	} else if in.Market.PriceChange1h > 30 {
		pop *= 0.85
	}

	popScore := clampFloat(pop*100, 5, 95)

	est := domain.PoPEstimate{
		PopScore:   math.Round(popScore*10) / 10,
		Factors:    factors,
		Confidence: popConfidence(sig, in, popScore),
	}
	est.ExpectedReturn, est.MaxDrawdown = popBands(popScore)
	return est
}

func norm(score, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(score) / float64(max)
}

// popConfidence grades data completeness: how many of the five input
// dimensions actually carried data for this token.
func popConfidence(sig *domain.CompositeSignal, in AnalysisInput, popScore float64) string {
	have := 0
	if sig.LiquidityScore > 0 {
		have++
	}
	if sig.VolumeRatioScore > 0 {
		have++
	}
	if in.Security != nil {
		have++
	}
	if in.SmartMoney != nil {
		have++
	}
	if in.Market.TxnsBuys1h+in.Market.TxnsSells1h > 50 {
		have++
	}
	completeness := float64(have) / 5.0

	switch {
	case completeness >= 0.75 && popScore >= 60:
		return domain.ConfidenceHigh
	case completeness >= 0.5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// popBands maps the probability score to an expected return and drawdown
// band, both in percent.
func popBands(pop float64) (expectedReturn, maxDrawdown float64) {
	switch {
	case pop >= 70:
		return round2(15 + (pop-70)*0.5), round2(8 + (100-pop)*0.2)
	case pop >= 50:
		return round2(5 + (pop-50)*0.5), round2(12 + (70-pop)*0.3)
	default:
		return round2(-5 + pop*0.2), round2(15 + (50-pop)*0.4)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// signalStrength grades the signal from the composite score and the
// probability estimate together. A high score with a weak probability is
// capped at MODERATE.
func signalStrength(totalScore int, popScore float64) string {
	combined := (float64(totalScore) + popScore) / 2
	switch {
	case combined >= 80 && popScore >= 65:
		return domain.StrengthStrong
	case combined >= 65 && popScore >= 50:
		return domain.StrengthModerate
	case combined >= 50:
		return domain.StrengthWeak
	default:
		return domain.StrengthNone
	}
}

// riskMultiplier widens stops and compresses targets as risk grows. UNKNOWN
// risk is treated like HIGH, never like LOW.
func riskMultiplier(level domain.RiskLevel) float64 {
	switch level {
	case domain.RiskLow:
		return 1.0
	case domain.RiskMedium:
		return 1.25
	case domain.RiskHigh:
		return 1.5
	case domain.RiskCritical:
		return 2.0
	default:
		return 1.5
	}
}

// buildTradePlan derives stop and take-profit levels from the entry price,
// scaled by the token's risk level.
func buildTradePlan(entry float64, level domain.RiskLevel) domain.TradePlan {
	m := riskMultiplier(level)

	plan := domain.TradePlan{
		EntryPrice:  entry,
		StopLoss:    entry * (1 - 0.08*m),
		TakeProfit1: entry * (1 + 0.15/m),
		TakeProfit2: entry * (1 + 0.30/m),
		TakeProfit3: entry * (1 + 0.50/m),
	}

	risk := plan.EntryPrice - plan.StopLoss
	if risk > 0 {
		plan.RiskRewardRatio = round2((plan.TakeProfit2 - plan.EntryPrice) / risk)
	}
	return plan
}
