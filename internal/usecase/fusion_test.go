package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eddieom08-star/crypto-signals/internal/config"
	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultScoringWeights(), EngineConfig{})
}

func baselineMarket() domain.TokenMarketSnapshot {
	return domain.TokenMarketSnapshot{
		Symbol:       "TEST",
		Address:      "So11111111111111111111111111111111111111112",
		PriceUSD:     1.0,
		LiquidityUSD: 500_000,
		Volume24h:    250_000,
	}
}

func TestAnalyze_RejectsNonPositivePrice(t *testing.T) {
	e := newTestEngine()

	m := baselineMarket()
	m.PriceUSD = 0

	sig, err := e.Analyze(AnalysisInput{Market: m})
	assert.Nil(t, sig)
	assert.True(t, errors.Is(err, domain.ErrInvalidMarketData))

	m.PriceUSD = -0.5
	_, err = e.Analyze(AnalysisInput{Market: m})
	assert.True(t, errors.Is(err, domain.ErrInvalidMarketData))
}

func TestAnalyze_BaselineDegradesToNeutral(t *testing.T) {
	e := newTestEngine()

	sig, err := e.Analyze(AnalysisInput{Market: baselineMarket()})
	assert.NoError(t, err)

	assert.Equal(t, 20, sig.LiquidityScore)
	assert.Equal(t, 20, sig.VolumeRatioScore) // ratio 0.5 hits the sweet spot
	assert.Equal(t, 0, sig.MomentumScore)
	assert.Equal(t, 0, sig.BuyPressureScore) // all windows neutral 0.5
	assert.Equal(t, 0, sig.TrendScore)
	assert.Equal(t, 40, sig.TotalScore)

	// Missing assessments degrade, never fail.
	assert.Equal(t, domain.RiskUnknown, sig.RiskLevel)
	assert.Equal(t, domain.SignalNeutral, sig.SmartMoneySignal)
	assert.Equal(t, domain.ConfidenceLow, sig.SmartMoneyConfidence)
	assert.Equal(t, 50, sig.TechnicalScore)

	assert.Equal(t, 40.0, sig.PoP.PopScore)
	assert.Equal(t, 0.5, sig.PoP.Factors["security"])
	assert.Equal(t, 0.5, sig.PoP.Factors["smart_money"])
	assert.Equal(t, domain.ConfidenceLow, sig.PoP.Confidence)
	assert.Equal(t, 3.0, sig.PoP.ExpectedReturn)
	assert.Equal(t, 19.0, sig.PoP.MaxDrawdown)

	assert.Equal(t, domain.StrengthNone, sig.SignalStrength)
	assert.False(t, sig.IsValidSignal())

	// UNKNOWN risk widens the stop like HIGH risk does.
	assert.InDelta(t, 0.88, sig.Plan.StopLoss, 1e-9)
	assert.InDelta(t, 1.20, sig.Plan.TakeProfit2, 1e-9)
	assert.Equal(t, 1.67, sig.Plan.RiskRewardRatio)
}

func TestScoreLiquidity_LinearBetweenAnchors(t *testing.T) {
	e := newTestEngine()

	// The scale is anchored at the minimum, not at zero: 275k sits halfway
	// between 50k and 500k and earns half the points.
	cases := []struct {
		liquidity float64
		want      int
	}{
		{49_999, 0},
		{50_000, 0},
		{275_000, 10},
		{387_500, 15},
		{500_000, 20},
		{2_000_000, 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.scoreLiquidity(tc.liquidity), "liquidity %.0f", tc.liquidity)
	}
}

func TestAnalyze_LateEntryPenalized(t *testing.T) {
	e := newTestEngine()

	m := baselineMarket()
	m.PriceChange1h = 60 // already pumped

	sig, err := e.Analyze(AnalysisInput{Market: m})
	assert.NoError(t, err)

	// min(8, 60/1.5) = 8, halved for the parabolic 1h move.
	assert.Equal(t, 4, sig.MomentumScore)
	assert.Equal(t, 44, sig.TotalScore)

	// The probability takes the 0.7 late-entry haircut on top.
	assert.InDelta(t, 29.7, sig.PoP.PopScore, 0.01)
}

func TestAnalyze_LockedTokenBoostsProbability(t *testing.T) {
	e := newTestEngine()

	ext := 800
	sec := &domain.SecurityAssessment{
		Lock:          domain.LiquidityLock{IsLocked: true, LockPercentage: 96},
		ExternalScore: &ext,
	}

	sig, err := e.Analyze(AnalysisInput{Market: baselineMarket(), Security: sec})
	assert.NoError(t, err)

	assert.Equal(t, domain.RiskLow, sig.RiskLevel)
	assert.Equal(t, 14, sig.SecurityScore) // 10 lock tier + 4 external
	assert.Equal(t, 0, sig.BundlePenalty)
	assert.True(t, sig.IsLocked)
	assert.Equal(t, 54, sig.TotalScore)

	// Security factor reflects the low risk score and the locked, unbundled
	// pool earns the 1.15 multiplier.
	assert.InDelta(t, 0.92, sig.PoP.Factors["security"], 1e-9)
	assert.InDelta(t, 55.7, sig.PoP.PopScore, 0.01)
	assert.Equal(t, domain.StrengthWeak, sig.SignalStrength)

	// LOW risk keeps the tight stop and full targets.
	assert.InDelta(t, 0.92, sig.Plan.StopLoss, 1e-9)
	assert.InDelta(t, 1.30, sig.Plan.TakeProfit2, 1e-9)
	assert.Equal(t, 3.75, sig.Plan.RiskRewardRatio)
}

func TestAnalyze_BundledLaunchKillsSignal(t *testing.T) {
	e := newTestEngine()

	sec := &domain.SecurityAssessment{
		Lock: domain.LiquidityLock{IsLocked: false, LockPercentage: 0},
		Bundle: domain.BundleAnalysis{
			IsBundled:           true,
			BundlePercentage:    25,
			BundledWalletsCount: 4,
			DeployerHoldingsPct: 30,
			Top10HoldersPct:     70,
			SniperCount:         30,
		},
		IsMintable:  true,
		IsFreezable: true,
		IsMutable:   true,
	}

	sig, err := e.Analyze(AnalysisInput{Market: baselineMarket(), Security: sec})
	assert.NoError(t, err)

	assert.Equal(t, 42, sig.BundlePenalty)
	assert.Len(t, sig.SecurityWarnings, 7)
	assert.Equal(t, domain.RiskHigh, sig.RiskLevel)

	// 40 base - 42 penalty clamps to zero, probability to the floor.
	assert.Equal(t, 0, sig.TotalScore)
	assert.Equal(t, 5.0, sig.PoP.PopScore)
	assert.Equal(t, domain.StrengthNone, sig.SignalStrength)
}

func TestAnalyze_StrongSignal(t *testing.T) {
	e := newTestEngine()

	m := domain.TokenMarketSnapshot{
		Symbol:         "PUMP",
		Address:        "addr",
		PriceUSD:       0.5,
		LiquidityUSD:   500_000,
		Volume24h:      400_000,
		Volume1h:       30_000,
		PriceChange5m:  2,
		PriceChange1h:  10,
		PriceChange6h:  15,
		PriceChange24h: 30,
		TxnsBuys5m:     70,
		TxnsSells5m:    30,
		TxnsBuys1h:     600,
		TxnsSells1h:    400,
		TxnsBuys24h:    5000,
		TxnsSells24h:   5000,
	}
	ext := 800
	sec := &domain.SecurityAssessment{
		Lock:          domain.LiquidityLock{IsLocked: true, LockPercentage: 96},
		ExternalScore: &ext,
	}

	sig, err := e.Analyze(AnalysisInput{Market: m, Security: sec})
	assert.NoError(t, err)

	assert.Equal(t, 20, sig.LiquidityScore)
	assert.Equal(t, 20, sig.VolumeRatioScore)
	assert.Equal(t, 19, sig.MomentumScore)
	assert.Equal(t, 11, sig.BuyPressureScore)
	assert.Equal(t, 15, sig.TrendScore) // all timeframes up, volume surging, busy pair
	assert.Equal(t, 99, sig.TotalScore)

	assert.InDelta(t, 89.8, sig.PoP.PopScore, 0.01)
	assert.Equal(t, domain.ConfidenceHigh, sig.PoP.Confidence)
	assert.InDelta(t, 24.88, sig.PoP.ExpectedReturn, 0.01)
	assert.InDelta(t, 10.05, sig.PoP.MaxDrawdown, 0.01)

	assert.Equal(t, domain.StrengthStrong, sig.SignalStrength)
	assert.True(t, sig.IsValidSignal())
}

func TestAnalyze_Deterministic(t *testing.T) {
	e := newTestEngine()

	in := AnalysisInput{
		Market: baselineMarket(),
		Security: &domain.SecurityAssessment{
			Lock: domain.LiquidityLock{IsLocked: true, LockPercentage: 85},
		},
		SmartMoney: &domain.SmartMoneyAssessment{
			Whale:   domain.WhaleActivity{WhaleBuys24h: 5, WhaleSells24h: 2, WhaleNetFlow: 40_000},
			Holders: domain.HolderAnalysis{TotalHolders: 2000, HolderChange24h: 120, Top10Concentration: 40},
			Traders: domain.TopTraderSignal{TopTradersBuying: 10, TopTradersSelling: 3, ProfitableHolderPct: 65},
		},
		Context: &domain.MarketContext{FearGreedIndex: 55, BTCAboveEMA20: true},
	}

	first, err := e.Analyze(in)
	assert.NoError(t, err)

	// Every run over the same snapshot lands on the same floats, the PoP
	// factor breakdown included.
	for i := 0; i < 100; i++ {
		again, err := e.Analyze(in)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyze_LeavesInputUntouched(t *testing.T) {
	e := newTestEngine()

	sec := &domain.SecurityAssessment{
		Lock:   domain.LiquidityLock{IsLocked: true, LockPercentage: 85},
		Bundle: domain.BundleAnalysis{DeployerHoldingsPct: 25},
	}
	sm := &domain.SmartMoneyAssessment{
		Whale:   domain.WhaleActivity{WhaleBuys24h: 5, WhaleSells24h: 2, WhaleNetFlow: 40_000},
		Holders: domain.HolderAnalysis{TotalHolders: 2000, HolderChange24h: 120},
		Traders: domain.TopTraderSignal{TopTradersBuying: 10, TopTradersSelling: 3, ProfitableHolderPct: 65},
	}
	secBefore := *sec
	smBefore := *sm

	_, err := e.Analyze(AnalysisInput{Market: baselineMarket(), Security: sec, SmartMoney: sm})
	assert.NoError(t, err)

	// The same assessments may be shared across concurrent analyses, so the
	// engine must treat them as read only.
	assert.Equal(t, secBefore, *sec)
	assert.Equal(t, smBefore, *sm)
}
