package usecase

import (
	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// SmartMoneyEvaluation is the smart money scorer output consumed by signal
// fusion. Score is centered at 50, above means accumulation pressure.
type SmartMoneyEvaluation struct {
	Score      int
	Signal     string
	Confidence string
}

// ScoreSmartMoney scores the whale, holder, trader and social facts of an
// assessment. The assessment itself is never modified.
func ScoreSmartMoney(a *domain.SmartMoneyAssessment) SmartMoneyEvaluation {
	score := 50.0

	// Whale net flow, +-12 points scaled by $10k units.
	nf := a.Whale.WhaleNetFlow / 10000.0
	if nf > 12 {
		nf = 12
	} else if nf < -12 {
		nf = -12
	}
	score += nf

	// The +1 keeps the ratio defined with zero trades.
	buyRatio := float64(a.Whale.WhaleBuys24h) /
		float64(a.Whale.WhaleBuys24h+a.Whale.WhaleSells24h+1)
	if buyRatio > 0.6 {
		score += 8
	} else if buyRatio < 0.4 {
		score -= 8
	}

	switch {
	case a.Holders.HolderChange24h > 100:
		score += 8
	case a.Holders.HolderChange24h > 50:
		score += 4
	case a.Holders.HolderChange24h < -50:
		score -= 8
	}

	switch {
	case a.Holders.Top10Concentration > 70:
		score -= 8
	case a.Holders.Top10Concentration > 50:
		score -= 4
	}
	if a.Holders.FreshWalletPct > 30 {
		score -= 4
	}

	buying := float64(a.Traders.TopTradersBuying)
	selling := float64(a.Traders.TopTradersSelling)
	if buying > selling*1.5 {
		score += 12
	} else if selling > buying*1.5 {
		score -= 12
	}
	if a.Traders.ProfitableHolderPct > 60 {
		score += 4
	} else if a.Traders.ProfitableHolderPct < 40 {
		score -= 4
	}

	if a.Social != nil {
		score += socialContribution(a.Social)
	}

	eval := SmartMoneyEvaluation{Score: clampInt(int(score), 0, 100)}

	switch {
	case eval.Score >= 65:
		eval.Signal = domain.SignalAccumulation
	case eval.Score <= 35:
		eval.Signal = domain.SignalDistribution
	default:
		eval.Signal = domain.SignalNeutral
	}

	eval.Confidence = smartMoneyConfidence(a, eval.Score)
	return eval
}

func socialContribution(s *domain.SocialSentiment) float64 {
	contrib := 0.0
	switch {
	case s.SocialScore >= 70:
		contrib += 10
	case s.SocialScore >= 60:
		contrib += 5
	case s.SocialScore <= 30:
		contrib -= 10
	case s.SocialScore <= 40:
		contrib -= 5
	}
	switch s.Sentiment {
	case domain.SentimentBullish:
		contrib += 5
	case domain.SentimentBearish:
		contrib -= 5
	}
	if s.InfluencerMentions >= 3 {
		contrib += 5
	} else if s.InfluencerMentions >= 1 {
		contrib += 2
	}
	if s.TrendingRank > 0 && s.TrendingRank <= 25 {
		contrib += 5
	}
	return contrib
}

// smartMoneyConfidence grades how many independent data dimensions actually
// carried information. An extreme score on thin data stays LOW.
func smartMoneyConfidence(a *domain.SmartMoneyAssessment, score int) string {
	quality := 0
	if a.Whale.WhaleBuys24h > 0 {
		quality++
	}
	if a.Holders.TotalHolders > 0 {
		quality++
	}
	if a.Traders.TopTradersBuying+a.Traders.TopTradersSelling > 0 {
		quality++
	}
	if a.Social != nil && (a.Social.Mentions24h > 0 || a.Social.GalaxyScore > 0) {
		quality++
	}

	switch {
	case quality >= 4 && (score >= 70 || score <= 30):
		return domain.ConfidenceHigh
	case quality >= 3:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// BuildSocialSentiment derives a SocialSentiment from raw aggregator metrics.
// sentimentRaw is on the provider's 0-5 scale, trendingRank of 0 or >100
// means not trending.
func BuildSocialSentiment(galaxyScore float64, mentions24h, mentionsPrev int,
	sentimentRaw float64, influencerMentions, trendingRank int) *domain.SocialSentiment {

	s := &domain.SocialSentiment{
		Mentions24h:        mentions24h,
		InfluencerMentions: influencerMentions,
		GalaxyScore:        int(galaxyScore),
	}

	if mentionsPrev > 0 {
		s.MentionsChangePct = round2((float64(mentions24h) - float64(mentionsPrev)) /
			float64(mentionsPrev) * 100)
	}

	// Normalize 0-5 sentiment to -1..1 around the midpoint.
	s.SentimentScore = round2((sentimentRaw - 2.5) / 2.5)
	switch {
	case s.SentimentScore > 0.3:
		s.Sentiment = domain.SentimentBullish
	case s.SentimentScore < -0.3:
		s.Sentiment = domain.SentimentBearish
	default:
		s.Sentiment = domain.SentimentNeutral
	}

	if trendingRank > 0 && trendingRank <= 100 {
		s.TrendingRank = trendingRank
	}

	s.SocialScore = computeSocialScore(s, galaxyScore)
	return s
}

func computeSocialScore(s *domain.SocialSentiment, galaxyScore float64) int {
	score := 50.0

	g := galaxyScore * 0.3
	if g > 30 {
		g = 30
	}
	score += g

	switch {
	case s.MentionsChangePct > 50:
		score += 15
	case s.MentionsChangePct > 20:
		score += 10
	case s.MentionsChangePct > 0:
		score += 5
	case s.MentionsChangePct < -30:
		score -= 10
	case s.MentionsChangePct < -10:
		score -= 5
	}

	score += float64(int(s.SentimentScore * 10))

	switch {
	case s.InfluencerMentions >= 5:
		score += 15
	case s.InfluencerMentions >= 3:
		score += 10
	case s.InfluencerMentions >= 1:
		score += 5
	}

	switch {
	case s.TrendingRank > 0 && s.TrendingRank <= 10:
		score += 10
	case s.TrendingRank > 0 && s.TrendingRank <= 25:
		score += 5
	}

	return clampInt(int(score), 0, 100)
}
