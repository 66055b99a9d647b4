package domain

// TokenMarketSnapshot is the raw market data for a token, produced once per
// scan cycle. It is the only required input for an analysis.
type TokenMarketSnapshot struct {
	Symbol         string  `json:"symbol"`
	Address        string  `json:"address"`
	PriceUSD       float64 `json:"priceUsd"`
	PriceChange5m  float64 `json:"priceChange5m"`
	PriceChange1h  float64 `json:"priceChange1h"`
	PriceChange6h  float64 `json:"priceChange6h"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume5m       float64 `json:"volume5m"`
	Volume1h       float64 `json:"volume1h"`
	Volume6h       float64 `json:"volume6h"`
	Volume24h      float64 `json:"volume24h"`
	LiquidityUSD   float64 `json:"liquidityUsd"`
	TxnsBuys5m     int     `json:"txnsBuys5m"`
	TxnsSells5m    int     `json:"txnsSells5m"`
	TxnsBuys1h     int     `json:"txnsBuys1h"`
	TxnsSells1h    int     `json:"txnsSells1h"`
	TxnsBuys24h    int     `json:"txnsBuys24h"`
	TxnsSells24h   int     `json:"txnsSells24h"`
	FDV            float64 `json:"fdv"`
	PairAddress    string  `json:"pairAddress"`
	DexID          string  `json:"dexId"`
}

// RiskLevel classifies security risk. UNKNOWN means data was unavailable,
// which downstream treats as risky, never as safe.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
	RiskUnknown  RiskLevel = "UNKNOWN"
)

// LiquidityLock describes LP token lock status.
type LiquidityLock struct {
	IsLocked         bool    `json:"isLocked"`
	LockPercentage   float64 `json:"lockPercentage"`
	UnlockDate       string  `json:"unlockDate,omitempty"`
	LockerName       string  `json:"lockerName,omitempty"`
	LockDurationDays int     `json:"lockDurationDays"`
}

// BundleAnalysis describes concentrated insider holding patterns detected at launch.
type BundleAnalysis struct {
	IsBundled           bool    `json:"isBundled"`
	BundlePercentage    float64 `json:"bundlePercentage"`
	BundledWalletsCount int     `json:"bundledWalletsCount"`
	DeployerHoldingsPct float64 `json:"deployerHoldingsPct"`
	Top10HoldersPct     float64 `json:"top10HoldersPct"`
	SniperCount         int     `json:"sniperCount"`
}

// SecurityAssessment holds the raw security facts for a token. Scoring is
// the fusion engine's job; this struct stays facts only. A nil
// *SecurityAssessment means "unknown", never "safe".
type SecurityAssessment struct {
	TokenAddress string         `json:"tokenAddress"`
	Lock         LiquidityLock  `json:"liquidityLock"`
	Bundle       BundleAnalysis `json:"bundleAnalysis"`
	IsMintable   bool           `json:"isMintable"`
	IsFreezable  bool           `json:"isFreezable"`
	HasBlacklist bool           `json:"hasBlacklist"`
	IsMutable    bool           `json:"isMutable"`
	// ExternalScore is a third-party safety score on a 0-1000 scale
	// (higher is safer). Nil when the provider had no data.
	ExternalScore *int     `json:"externalScore,omitempty"`
	ExternalRisks []string `json:"externalRisks,omitempty"`
}

// WhaleActivity summarizes whale wallet flows over 24h.
type WhaleActivity struct {
	WhaleBuys24h      int     `json:"whaleBuys24h"`
	WhaleSells24h     int     `json:"whaleSells24h"`
	WhaleNetFlow      float64 `json:"whaleNetFlow"` // signed USD, positive = accumulation
	LargeTxnsCount    int     `json:"largeTxnsCount"`
	SmartMoneyHolding float64 `json:"smartMoneyHolding"`
}

// HolderAnalysis summarizes token holder distribution.
type HolderAnalysis struct {
	TotalHolders       int     `json:"totalHolders"`
	HolderChange24h    int     `json:"holderChange24h"`
	HolderChangePct    float64 `json:"holderChangePct"`
	Top10Concentration float64 `json:"top10Concentration"`
	FreshWalletPct     float64 `json:"freshWalletPct"`
	AvgHoldTimeHours   float64 `json:"avgHoldTimeHours"`
	DiamondHandsPct    float64 `json:"diamondHandsPct"`
}

// TopTraderSignal summarizes activity of top profitable traders.
type TopTraderSignal struct {
	TopTradersBuying    int     `json:"topTradersBuying"`
	TopTradersSelling   int     `json:"topTradersSelling"`
	AvgTraderPnL        float64 `json:"avgTraderPnl"`
	ProfitableHolderPct float64 `json:"profitableHolderPct"`
}

// SocialSentiment is social media sentiment data, optional and nested inside
// SmartMoneyAssessment.
type SocialSentiment struct {
	SocialScore        int     `json:"socialScore"` // 0-100
	Mentions24h        int     `json:"mentions24h"`
	MentionsChangePct  float64 `json:"mentionsChangePct"`
	Sentiment          string  `json:"sentiment"`      // BULLISH, BEARISH, NEUTRAL
	SentimentScore     float64 `json:"sentimentScore"` // -1 to 1
	InfluencerMentions int     `json:"influencerMentions"`
	TrendingRank       int     `json:"trendingRank"` // 0 = not trending
	GalaxyScore        int     `json:"galaxyScore"`
}

const (
	SentimentBullish = "BULLISH"
	SentimentBearish = "BEARISH"
	SentimentNeutral = "NEUTRAL"
)

// Smart money signal labels.
const (
	SignalAccumulation = "ACCUMULATION"
	SignalDistribution = "DISTRIBUTION"
	SignalNeutral      = "NEUTRAL"
)

// Confidence labels shared by the smart money scorer and the PoP estimate.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// SmartMoneyAssessment combines whale, holder, trader and social facts.
// Like SecurityAssessment it carries facts only; scores live on the
// CompositeSignal.
type SmartMoneyAssessment struct {
	TokenAddress string           `json:"tokenAddress"`
	Whale        WhaleActivity    `json:"whaleActivity"`
	Holders      HolderAnalysis   `json:"holderAnalysis"`
	Traders      TopTraderSignal  `json:"traderSignals"`
	Social       *SocialSentiment `json:"socialSentiment,omitempty"`
}

// Technical signal state labels.
const (
	RSIOversold   = "OVERSOLD"
	RSIOverbought = "OVERBOUGHT"
	VWAPAbove     = "ABOVE"
	VWAPBelow     = "BELOW"
	StateNeutral  = "NEUTRAL"
)

// TechnicalIndicators is the output of technical analysis over a price/volume
// series.
type TechnicalIndicators struct {
	RSI14              float64  `json:"rsi14"`
	VWAP               float64  `json:"vwap"`
	VWAPDeviation      float64  `json:"vwapDeviation"` // percent vs current price
	ConsolidationBreak bool     `json:"consolidationBreak"`
	PriceVsVWAP        string   `json:"priceVsVwap"` // ABOVE, BELOW, NEUTRAL
	RSISignal          string   `json:"rsiSignal"`   // OVERSOLD, OVERBOUGHT, NEUTRAL
	TechnicalScore     int      `json:"technicalScore"`
	Patterns           []string `json:"patterns"`
}

// MarketContext is the broader market condition snapshot.
type MarketContext struct {
	BTCPrice        float64 `json:"btcPrice"`
	BTC24hChange    float64 `json:"btc24hChange"`
	BTCAboveEMA20   bool    `json:"btcAboveEma20"`
	FearGreedIndex  int     `json:"fearGreedIndex"` // 0-100
	FearGreedLabel  string  `json:"fearGreedLabel"`
	SOLPrice        float64 `json:"solPrice"`
	SOL24hChange    float64 `json:"sol24hChange"`
	MarketFavorable bool    `json:"marketFavorable"`
	ContextScore    int     `json:"contextScore"` // 0-100
}
