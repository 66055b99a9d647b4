package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/indicators"
)

// Client fetches broad market data: the Fear & Greed index from
// alternative.me and BTC/SOL prices from CoinGecko.
type Client struct {
	fearGreedURL string
	coingeckoURL string
	httpClient   *resty.Client
}

func NewClient(fearGreedURL, coingeckoURL string, timeout time.Duration) *Client {
	return &Client{
		fearGreedURL: fearGreedURL,
		coingeckoURL: coingeckoURL,
		httpClient:   resty.New().SetTimeout(timeout),
	}
}

// FetchContext assembles the raw market context. Each upstream failure
// degrades to a neutral default rather than failing the whole fetch; the
// scorer fields (MarketFavorable, ContextScore) are left for the caller.
func (c *Client) FetchContext(ctx context.Context) *domain.MarketContext {
	mc := &domain.MarketContext{
		FearGreedIndex: 50,
		FearGreedLabel: "Neutral",
	}

	if value, label, err := c.fetchFearGreed(ctx); err == nil {
		mc.FearGreedIndex = value
		mc.FearGreedLabel = label
	}

	if btc, sol, err := c.fetchBTCSOLPrices(ctx); err == nil {
		mc.BTCPrice = btc.price
		mc.BTC24hChange = btc.change24h
		mc.SOLPrice = sol.price
		mc.SOL24hChange = sol.change24h
	}

	if ema20, err := c.fetchBTCEMA20(ctx); err == nil && ema20 > 0 && mc.BTCPrice > 0 {
		mc.BTCAboveEMA20 = mc.BTCPrice > ema20
	}

	return mc
}

func (c *Client) fetchFearGreed(ctx context.Context) (int, string, error) {
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.fearGreedURL)
	if err != nil {
		return 0, "", fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	// Values arrive as strings.
	var result struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 {
		return 0, "", fmt.Errorf("empty fear & greed response")
	}

	value, err := strconv.Atoi(result.Data[0].Value)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse index value: %w", err)
	}
	return value, result.Data[0].Classification, nil
}

type coinPrice struct {
	price     float64
	change24h float64
}

func (c *Client) fetchBTCSOLPrices(ctx context.Context) (btc, sol coinPrice, err error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 "bitcoin,solana",
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
		}).
		Get(c.coingeckoURL + "/simple/price")
	if err != nil {
		return btc, sol, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return btc, sol, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return btc, sol, fmt.Errorf("failed to decode response: %w", err)
	}

	if b, ok := result["bitcoin"]; ok {
		btc = coinPrice{price: b.USD, change24h: b.USD24hChange}
	}
	if s, ok := result["solana"]; ok {
		sol = coinPrice{price: s.USD, change24h: s.USD24hChange}
	}
	return btc, sol, nil
}

// fetchBTCEMA20 computes the 20-day EMA from 30 days of CoinGecko daily
// closes.
func (c *Client) fetchBTCEMA20(ctx context.Context) (float64, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"days":        "30",
		}).
		Get(c.coingeckoURL + "/coins/bitcoin/market_chart")
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		Prices [][2]float64 `json:"prices"` // [timestamp_ms, price]
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make([]float64, 0, len(result.Prices))
	for _, p := range result.Prices {
		prices = append(prices, p[1])
	}
	if len(prices) < 20 {
		return 0, fmt.Errorf("not enough price points: %d", len(prices))
	}
	return indicators.CalculateEMA(prices, 20), nil
}
