package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/birdeye"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/lunarcrush"
)

const (
	defaultAvgHoldTimeHours = 48.0
	defaultDiamondHandsPct  = 30.0
)

// SmartMoneyTracker assembles a SmartMoneyAssessment from on-chain flow and
// social data providers. Either client may be nil when its API key is not
// configured; the tracker degrades accordingly.
type SmartMoneyTracker struct {
	birdeye    *birdeye.Client
	lunarcrush *lunarcrush.Client
}

func NewSmartMoneyTracker(b *birdeye.Client, lc *lunarcrush.Client) *SmartMoneyTracker {
	return &SmartMoneyTracker{birdeye: b, lunarcrush: lc}
}

// Analyze gathers whale, holder, trader and social facts for a token;
// scoring them is the fusion engine's job. Returns an error only when no
// on-chain data could be fetched at all.
func (t *SmartMoneyTracker) Analyze(ctx context.Context, address, symbol string) (*domain.SmartMoneyAssessment, error) {
	if t.birdeye == nil {
		return nil, fmt.Errorf("no on-chain data provider configured")
	}

	overview, ovErr := t.birdeye.GetTokenOverview(ctx, address)
	security, secErr := t.birdeye.GetTokenSecurity(ctx, address)
	if ovErr != nil && secErr != nil {
		return nil, fmt.Errorf("smart money analysis for %s: %w", symbol, ovErr)
	}
	if overview == nil {
		overview = &birdeye.TokenOverview{}
	}
	if security == nil {
		security = &birdeye.TokenSecurity{}
	}

	// Best effort, an empty trader list just means no trader signal.
	traders, _ := t.birdeye.GetTopTraders(ctx, address)

	a := &domain.SmartMoneyAssessment{
		TokenAddress: address,
		Whale:        buildWhaleActivity(overview, security),
		Holders:      buildHolderAnalysis(overview, security),
		Traders:      buildTraderSignal(traders),
	}

	if t.lunarcrush != nil && symbol != "" {
		if m, err := t.lunarcrush.GetCoinMetrics(ctx, symbol); err == nil {
			a.Social = BuildSocialSentiment(
				m.GalaxyScore, m.SocialVolume24h, m.SocialVolumePrevious,
				m.Sentiment, 0, m.Rank)
		}
	}

	return a, nil
}

func buildWhaleActivity(ov *birdeye.TokenOverview, sec *birdeye.TokenSecurity) domain.WhaleActivity {
	// Large transaction estimate: if the average trade is over $1k, assume
	// the top decile of trades are whale-sized.
	largeTxns := 0
	if ov.Trade24h > 0 && ov.Volume24h/float64(ov.Trade24h) > 1000 {
		largeTxns = ov.Trade24h / 10
	}

	return domain.WhaleActivity{
		WhaleBuys24h:      ov.Buy24h,
		WhaleSells24h:     ov.Sell24h,
		WhaleNetFlow:      ov.BuyVolume - ov.SellVolume,
		LargeTxnsCount:    largeTxns,
		SmartMoneyHolding: math.Min(sec.Top10HolderPercent, 100),
	}
}

func buildHolderAnalysis(ov *birdeye.TokenOverview, sec *birdeye.TokenSecurity) domain.HolderAnalysis {
	total := ov.HolderCount
	if total == 0 {
		total = sec.HolderCount
	}

	changePct := 0.0
	if total > 0 {
		changePct = float64(sec.HolderChange24h) / float64(total) * 100
	}

	// Fresh wallet share is a rough proxy derived from holder growth.
	freshPct := 10.0
	if sec.HolderChange24h > 0 {
		freshPct = math.Min(20, math.Max(5, changePct*2))
	}

	return domain.HolderAnalysis{
		TotalHolders:       total,
		HolderChange24h:    sec.HolderChange24h,
		HolderChangePct:    round2(changePct),
		Top10Concentration: round2(sec.Top10HolderPercent),
		FreshWalletPct:     round2(freshPct),
		AvgHoldTimeHours:   defaultAvgHoldTimeHours,
		DiamondHandsPct:    defaultDiamondHandsPct,
	}
}

func buildTraderSignal(traders []birdeye.Trader) domain.TopTraderSignal {
	if len(traders) == 0 {
		return domain.TopTraderSignal{ProfitableHolderPct: 50}
	}
	if len(traders) > 100 {
		traders = traders[:100]
	}

	buying, selling, profitable := 0, 0, 0
	totalPnL := 0.0
	for _, tr := range traders {
		if tr.VolumeBuy > tr.VolumeSell {
			buying++
		} else if tr.VolumeSell > tr.VolumeBuy {
			selling++
		}
		totalPnL += tr.PnL
		if tr.PnL > 0 {
			profitable++
		}
	}

	n := float64(len(traders))
	return domain.TopTraderSignal{
		TopTradersBuying:    buying,
		TopTradersSelling:   selling,
		AvgTraderPnL:        round2(totalPnL / n),
		ProfitableHolderPct: round2(float64(profitable) / n * 100),
	}
}
