package domain

import (
	"errors"
	"time"
)

// ErrInvalidMarketData is returned when required market data is missing or
// malformed (non-positive price). Missing optional assessments never produce
// an error; they degrade to neutral defaults.
var ErrInvalidMarketData = errors.New("invalid market data")

// Signal strength labels.
const (
	StrengthStrong   = "STRONG"
	StrengthModerate = "MODERATE"
	StrengthWeak     = "WEAK"
	StrengthNone     = "NO SIGNAL"
)

// PoPEstimate is the Probability of Profit estimate: a 0-100 heuristic of
// the likelihood the trade plan reaches its profit target.
type PoPEstimate struct {
	PopScore       float64            `json:"popScore"` // clamped to [5,95]
	Confidence     string             `json:"confidence"`
	ExpectedReturn float64            `json:"expectedReturn"` // percent
	MaxDrawdown    float64            `json:"maxDrawdown"`    // percent
	Factors        map[string]float64 `json:"factors"`        // per-factor normalized inputs
}

// TradePlan holds concrete entry/exit levels for a signal.
type TradePlan struct {
	EntryPrice      float64 `json:"entryPrice"`
	StopLoss        float64 `json:"stopLoss"`
	TakeProfit1     float64 `json:"takeProfit1"`
	TakeProfit2     float64 `json:"takeProfit2"`
	TakeProfit3     float64 `json:"takeProfit3"`
	RiskRewardRatio float64 `json:"riskRewardRatio"` // (TP2-entry)/(entry-stop)
}

// CompositeSignal is the full analysis output for one (token, scan) pair.
// It is never mutated after construction.
type CompositeSignal struct {
	Symbol   string  `json:"symbol"`
	Address  string  `json:"address"`
	PriceUSD float64 `json:"priceUsd"`

	// Base technical factor scores.
	LiquidityScore   int `json:"liquidityScore"`
	VolumeRatioScore int `json:"volumeRatioScore"`
	MomentumScore    int `json:"momentumScore"`
	BuyPressureScore int `json:"buyPressureScore"`
	TrendScore       int `json:"trendScore"`

	// Security sub-scores.
	RiskLevel        RiskLevel `json:"riskLevel"`
	SecurityScore    int       `json:"securityScore"` // 0-15 bonus added to total
	BundlePenalty    int       `json:"bundlePenalty"`
	SecurityWarnings []string  `json:"securityWarnings"`
	IsLocked         bool      `json:"isLocked"`
	LockPercentage   float64   `json:"lockPercentage"`
	IsBundled        bool      `json:"isBundled"`
	BundlePercentage float64   `json:"bundlePercentage"`

	// Smart money / social sub-scores.
	SmartMoneyScore      int    `json:"smartMoneyScore"`
	SmartMoneySignal     string `json:"smartMoneySignal"`
	SmartMoneyConfidence string `json:"smartMoneyConfidence"`
	SocialScore          int    `json:"socialScore"`
	SocialSentiment      string `json:"socialSentiment"`

	// Technical indicator sub-score and context.
	TechnicalScore int                  `json:"technicalScore"`
	Technical      *TechnicalIndicators `json:"technical,omitempty"`
	MarketContext  *MarketContext       `json:"marketContext,omitempty"`

	PoP PoPEstimate `json:"pop"`

	TotalScore     int       `json:"totalScore"` // 0-100
	SignalStrength string    `json:"signalStrength"`
	Plan           TradePlan `json:"tradePlan"`
}

// IsValidSignal reports whether this signal meets the default alert
// threshold. The scanner applies the configured threshold instead.
func (s *CompositeSignal) IsValidSignal() bool {
	return s.TotalScore >= 70
}

// SignalRecord is a persisted signal with storage metadata.
type SignalRecord struct {
	ID           string           `json:"id"`
	Timestamp    time.Time        `json:"timestamp"`
	Signal       *CompositeSignal `json:"signal"`
	TelegramSent bool             `json:"telegramSent"`
}

// ScanRecord is the compact per-scan row kept for every analyzed token,
// signal or not.
type ScanRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	Symbol         string    `json:"symbol"`
	PriceUSD       float64   `json:"priceUsd"`
	TotalScore     int       `json:"totalScore"`
	PopScore       float64   `json:"popScore"`
	SignalStrength string    `json:"signalStrength"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	IsValidSignal  bool      `json:"isValidSignal"`
}

// BotStatus is the health-check surface exposed over HTTP and mirrored to Redis.
type BotStatus struct {
	Status        string    `json:"status"`
	ScanCount     int       `json:"scanCount"`
	SignalsSent   int       `json:"signalsSent"`
	ErrorsCount   int       `json:"errorsCount"`
	LastScan      time.Time `json:"lastScan"`
	WatchlistSize int       `json:"watchlistSize"`
	Watchlist     []string  `json:"watchlist"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
