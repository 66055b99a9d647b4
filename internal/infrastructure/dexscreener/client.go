package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// Client fetches token market data from the DEXScreener public API.
type Client struct {
	baseURL    string
	httpClient *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: resty.New().SetTimeout(timeout),
	}
}

// pair mirrors the DEXScreener pair object. Prices arrive as strings, the
// nested windows as objects keyed m5/h1/h6/h24.
type pair struct {
	PriceUSD    string  `json:"priceUsd"`
	PairAddress string  `json:"pairAddress"`
	DexID       string  `json:"dexId"`
	FDV         float64 `json:"fdv"`
	PriceChange struct {
		M5  float64 `json:"m5"`
		H1  float64 `json:"h1"`
		H6  float64 `json:"h6"`
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		M5  float64 `json:"m5"`
		H1  float64 `json:"h1"`
		H6  float64 `json:"h6"`
		H24 float64 `json:"h24"`
	} `json:"volume"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Txns struct {
		M5  txnWindow `json:"m5"`
		H1  txnWindow `json:"h1"`
		H24 txnWindow `json:"h24"`
	} `json:"txns"`
}

type txnWindow struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// FetchTokenData returns a market snapshot for the token, taken from its
// highest-liquidity trading pair.
func (c *Client) FetchTokenData(ctx context.Context, symbol, address string) (*domain.TokenMarketSnapshot, error) {
	url := fmt.Sprintf("%s/tokens/%s", c.baseURL, address)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		Pairs []pair `json:"pairs"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Pairs) == 0 {
		return nil, fmt.Errorf("no pairs found for %s", symbol)
	}

	best := result.Pairs[0]
	for _, p := range result.Pairs[1:] {
		if p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}

	price, _ := strconv.ParseFloat(best.PriceUSD, 64)

	return &domain.TokenMarketSnapshot{
		Symbol:         symbol,
		Address:        address,
		PriceUSD:       price,
		PriceChange5m:  best.PriceChange.M5,
		PriceChange1h:  best.PriceChange.H1,
		PriceChange6h:  best.PriceChange.H6,
		PriceChange24h: best.PriceChange.H24,
		Volume5m:       best.Volume.M5,
		Volume1h:       best.Volume.H1,
		Volume6h:       best.Volume.H6,
		Volume24h:      best.Volume.H24,
		LiquidityUSD:   best.Liquidity.USD,
		TxnsBuys5m:     best.Txns.M5.Buys,
		TxnsSells5m:    best.Txns.M5.Sells,
		TxnsBuys1h:     best.Txns.H1.Buys,
		TxnsSells1h:    best.Txns.H1.Sells,
		TxnsBuys24h:    best.Txns.H24.Buys,
		TxnsSells24h:   best.Txns.H24.Sells,
		FDV:            best.FDV,
		PairAddress:    best.PairAddress,
		DexID:          best.DexID,
	}, nil
}
