package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

func TestScoreSmartMoney_Accumulation(t *testing.T) {
	a := &domain.SmartMoneyAssessment{
		Whale: domain.WhaleActivity{
			WhaleBuys24h:  80,
			WhaleSells24h: 20,
			WhaleNetFlow:  200_000, // clamps to +12
		},
		Holders: domain.HolderAnalysis{
			TotalHolders:    5000,
			HolderChange24h: 150,
		},
		Traders: domain.TopTraderSignal{
			TopTradersBuying:    30,
			TopTradersSelling:   10,
			ProfitableHolderPct: 65,
		},
	}

	before := *a
	eval := ScoreSmartMoney(a)

	// 50 +12 netflow +8 buy ratio +8 holders +12 traders +4 profit = 94.
	assert.Equal(t, 94, eval.Score)
	assert.Equal(t, domain.SignalAccumulation, eval.Signal)
	// Whale, holder and trader data present but no social: quality 3.
	assert.Equal(t, domain.ConfidenceMedium, eval.Confidence)
	// Scoring reads the assessment, never writes it.
	assert.Equal(t, before, *a)
}

func TestScoreSmartMoney_Distribution(t *testing.T) {
	a := &domain.SmartMoneyAssessment{
		Whale: domain.WhaleActivity{
			WhaleBuys24h:  5,
			WhaleSells24h: 60,
			WhaleNetFlow:  -300_000,
		},
		Holders: domain.HolderAnalysis{
			TotalHolders:       2000,
			HolderChange24h:    -80,
			Top10Concentration: 75,
			FreshWalletPct:     40,
		},
		Traders: domain.TopTraderSignal{
			TopTradersBuying:    5,
			TopTradersSelling:   40,
			ProfitableHolderPct: 20,
		},
	}

	eval := ScoreSmartMoney(a)

	// 50 -12 -8 -8 -8 -4 -12 -4 = clamped at 0.
	assert.Equal(t, 0, eval.Score)
	assert.Equal(t, domain.SignalDistribution, eval.Signal)
}

func TestScoreSmartMoney_NoData(t *testing.T) {
	a := &domain.SmartMoneyAssessment{
		Traders: domain.TopTraderSignal{ProfitableHolderPct: 50},
	}

	eval := ScoreSmartMoney(a)

	// Zero trades: buy ratio 0/(0+0+1)=0 < 0.4 costs 8.
	assert.Equal(t, 42, eval.Score)
	assert.Equal(t, domain.SignalNeutral, eval.Signal)
	assert.Equal(t, domain.ConfidenceLow, eval.Confidence)
}

func TestScoreSmartMoney_SocialBoost(t *testing.T) {
	base := domain.SmartMoneyAssessment{
		Whale: domain.WhaleActivity{
			WhaleBuys24h:  70,
			WhaleSells24h: 30,
			WhaleNetFlow:  50_000,
		},
		Holders: domain.HolderAnalysis{TotalHolders: 1000},
		Traders: domain.TopTraderSignal{TopTradersBuying: 10, TopTradersSelling: 2, ProfitableHolderPct: 50},
	}

	withSocial := base
	withSocial.Social = &domain.SocialSentiment{
		SocialScore:        75,
		Mentions24h:        5000,
		Sentiment:          domain.SentimentBullish,
		InfluencerMentions: 4,
		TrendingRank:       12,
	}

	baseEval := ScoreSmartMoney(&base)
	socialEval := ScoreSmartMoney(&withSocial)

	// Social adds 10 (score) + 5 (bullish) + 5 (influencers) + 5 (rank).
	assert.Equal(t, baseEval.Score+25, socialEval.Score)
	// Four data dimensions and an extreme score reach HIGH.
	assert.Equal(t, domain.ConfidenceHigh, socialEval.Confidence)
}

func TestBuildSocialSentiment(t *testing.T) {
	t.Run("bullish trending coin", func(t *testing.T) {
		s := BuildSocialSentiment(80, 3000, 1800, 4.5, 6, 8)

		assert.Equal(t, 80, s.GalaxyScore)
		assert.InDelta(t, 66.67, s.MentionsChangePct, 0.01)
		assert.InDelta(t, 0.8, s.SentimentScore, 1e-9)
		assert.Equal(t, domain.SentimentBullish, s.Sentiment)
		assert.Equal(t, 8, s.TrendingRank)
		// 50 +24 galaxy +15 mentions +8 sentiment +15 influencers +10 rank = 100 capped.
		assert.Equal(t, 100, s.SocialScore)
	})

	t.Run("fading coin", func(t *testing.T) {
		s := BuildSocialSentiment(10, 300, 600, 1.0, 0, 0)

		assert.InDelta(t, -50.0, s.MentionsChangePct, 1e-9)
		assert.Equal(t, domain.SentimentBearish, s.Sentiment)
		// 50 +3 galaxy -10 mentions -6 sentiment (int(-0.6*10)) = 37.
		assert.Equal(t, 37, s.SocialScore)
	})

	t.Run("rank beyond 100 is not trending", func(t *testing.T) {
		s := BuildSocialSentiment(50, 100, 100, 2.5, 0, 150)
		assert.Equal(t, 0, s.TrendingRank)
	})
}
