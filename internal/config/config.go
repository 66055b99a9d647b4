package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TokenConfig identifies one watched token.
type TokenConfig struct {
	Symbol  string
	Address string
	Chain   string
}

// ScoringWeights holds the point budget for each base technical factor.
// The five weights sum to 100 in the default configuration; the engine does
// not enforce the sum but callers supplying custom weights should.
type ScoringWeights struct {
	Liquidity            int
	VolumeLiquidityRatio int
	PriceMomentum        int
	BuyPressure          int
	TrendStrength        int
}

// DefaultScoringWeights returns the standard 20/20/25/20/15 split.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Liquidity:            20,
		VolumeLiquidityRatio: 20,
		PriceMomentum:        25,
		BuyPressure:          20,
		TrendStrength:        15,
	}
}

// Config is the application configuration, loaded from environment variables.
type Config struct {
	// Telegram
	TelegramBotToken string
	TelegramChatID   string

	// Scan settings
	ScanInterval     time.Duration
	SignalThreshold  int
	SignalCooldown   time.Duration
	RequestTimeout   time.Duration

	// Provider base URLs (overridable for tests)
	DexScreenerBaseURL string
	RugCheckBaseURL    string
	BirdeyeBaseURL     string
	LunarCrushBaseURL  string
	CoinGeckoBaseURL   string
	FearGreedBaseURL   string

	// Provider API keys (empty disables the provider)
	BirdeyeAPIKey    string
	LunarCrushAPIKey string

	// Storage (empty disables the backend)
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTP server
	HTTPPort string

	Weights   ScoringWeights
	Watchlist []TokenConfig
}

// DefaultWatchlist is the built-in set of monitored Solana tokens.
func DefaultWatchlist() []TokenConfig {
	return []TokenConfig{
		{Symbol: "BONK", Address: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", Chain: "solana"},
		{Symbol: "WIF", Address: "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm", Chain: "solana"},
		{Symbol: "JUP", Address: "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", Chain: "solana"},
	}
}

// Load reads configuration from the environment. A .env file is applied
// first when present. TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required;
// everything else has defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is required")
	}

	cfg := &Config{
		TelegramBotToken: botToken,
		TelegramChatID:   chatID,

		ScanInterval:    time.Duration(envInt("SCAN_INTERVAL", 60)) * time.Second,
		SignalThreshold: envInt("SIGNAL_THRESHOLD", 70),
		SignalCooldown:  time.Duration(envInt("SIGNAL_COOLDOWN", 30)) * time.Minute,
		RequestTimeout:  time.Duration(envInt("REQUEST_TIMEOUT", 30)) * time.Second,

		DexScreenerBaseURL: envStr("DEXSCREENER_BASE_URL", "https://api.dexscreener.com/latest/dex"),
		RugCheckBaseURL:    envStr("RUGCHECK_BASE_URL", "https://api.rugcheck.xyz/v1"),
		BirdeyeBaseURL:     envStr("BIRDEYE_BASE_URL", "https://public-api.birdeye.so"),
		LunarCrushBaseURL:  envStr("LUNARCRUSH_BASE_URL", "https://lunarcrush.com/api4/public"),
		CoinGeckoBaseURL:   envStr("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		FearGreedBaseURL:   envStr("FEARGREED_BASE_URL", "https://api.alternative.me/fng/"),

		BirdeyeAPIKey:    os.Getenv("BIRDEYE_API_KEY"),
		LunarCrushAPIKey: os.Getenv("LUNARCRUSH_API_KEY"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		HTTPPort: envStr("PORT", "8080"),

		Weights:   DefaultScoringWeights(),
		Watchlist: DefaultWatchlist(),
	}

	if wl := os.Getenv("WATCHLIST"); wl != "" {
		parsed, err := parseWatchlist(wl)
		if err != nil {
			return nil, err
		}
		cfg.Watchlist = parsed
	}

	return cfg, nil
}

// parseWatchlist parses "SYMBOL:address,SYMBOL:address" pairs.
func parseWatchlist(raw string) ([]TokenConfig, error) {
	var tokens []TokenConfig
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid WATCHLIST entry %q, expected SYMBOL:address", entry)
		}
		tokens = append(tokens, TokenConfig{
			Symbol:  strings.ToUpper(parts[0]),
			Address: parts[1],
			Chain:   "solana",
		})
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("WATCHLIST is set but contains no valid entries")
	}
	return tokens, nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
