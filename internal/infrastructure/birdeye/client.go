package birdeye

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client calls the Birdeye public API for Solana token flow data. All
// endpoints need an API key; without one the server returns 401 and callers
// should treat the data as unavailable.
type Client struct {
	baseURL    string
	httpClient *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("X-API-KEY", apiKey).
		SetHeader("x-chain", "solana")
	return &Client{baseURL: baseURL, httpClient: c}
}

// TokenOverview is the subset of /defi/token_overview used for whale flow.
type TokenOverview struct {
	Symbol      string  `json:"symbol"`
	Buy24h      int     `json:"buy24h"`
	Sell24h     int     `json:"sell24h"`
	Trade24h    int     `json:"trade24h"`
	Volume24h   float64 `json:"v24hUSD"`
	BuyVolume   float64 `json:"vBuy24hUSD"`
	SellVolume  float64 `json:"vSell24hUSD"`
	HolderCount int     `json:"holder"`
}

// TokenSecurity is the subset of /defi/token_security used for holder
// distribution.
type TokenSecurity struct {
	HolderCount        int     `json:"holderCount"`
	Top10HolderPercent float64 `json:"top10HolderPercent"`
	HolderChange24h    int     `json:"holderChange24h"`
}

// Trader is one entry from /defi/v2/tokens/top_traders.
type Trader struct {
	VolumeBuy  float64 `json:"volumeBuy"`
	VolumeSell float64 `json:"volumeSell"`
	PnL        float64 `json:"pnl"`
}

func (c *Client) GetTokenOverview(ctx context.Context, address string) (*TokenOverview, error) {
	var out TokenOverview
	if err := c.getData(ctx, "/defi/token_overview", map[string]string{"address": address}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTokenSecurity(ctx context.Context, address string) (*TokenSecurity, error) {
	var out TokenSecurity
	if err := c.getData(ctx, "/defi/token_security", map[string]string{"address": address}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTopTraders(ctx context.Context, address string) ([]Trader, error) {
	var out struct {
		Traders []Trader `json:"traders"`
	}
	params := map[string]string{"address": address, "time_frame": "24h"}
	if err := c.getData(ctx, "/defi/v2/tokens/top_traders", params, &out); err != nil {
		return nil, err
	}
	return out.Traders, nil
}

// getData unwraps the {"data": ..., "success": ...} envelope every Birdeye
// endpoint shares.
func (c *Client) getData(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Success bool            `json:"success"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return fmt.Errorf("empty response for %s", path)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
