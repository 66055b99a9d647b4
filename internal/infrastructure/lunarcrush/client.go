package lunarcrush

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// slugOverrides maps token symbols to LunarCrush coin slugs where they
// differ from the lowercased symbol.
var slugOverrides = map[string]string{
	"BONK":   "bonk",
	"WIF":    "dogwifhat",
	"JUP":    "jupiter",
	"POPCAT": "popcat",
	"MEW":    "cat-in-a-dogs-world",
	"BOME":   "book-of-meme",
}

// Client fetches social metrics from the LunarCrush public API.
type Client struct {
	baseURL    string
	httpClient *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := resty.New().SetTimeout(timeout)
	if apiKey != "" {
		c.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &Client{baseURL: baseURL, httpClient: c}
}

// CoinMetrics is the subset of the coin endpoint used for social scoring.
// Sentiment is on the provider's 0-5 scale.
type CoinMetrics struct {
	GalaxyScore          float64 `json:"galaxy_score"`
	SocialVolume         int     `json:"social_volume"`
	SocialVolume24h      int     `json:"social_volume_24h"`
	SocialVolumePrevious int     `json:"social_volume_24h_previous"`
	Sentiment            float64 `json:"sentiment"`
	Rank                 int     `json:"rank"`
}

// GetCoinMetrics fetches social metrics by token symbol.
func (c *Client) GetCoinMetrics(ctx context.Context, symbol string) (*CoinMetrics, error) {
	slug, ok := slugOverrides[strings.ToUpper(symbol)]
	if !ok {
		slug = strings.ToLower(symbol)
	}
	url := fmt.Sprintf("%s/coins/%s/v1", c.baseURL, slug)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var envelope struct {
		Data CoinMetrics `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	m := envelope.Data
	if m.SocialVolume24h == 0 {
		m.SocialVolume24h = m.SocialVolume
	}
	if m.SocialVolumePrevious == 0 {
		m.SocialVolumePrevious = m.SocialVolume24h
	}
	return &m, nil
}
