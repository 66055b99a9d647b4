package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchContext(t *testing.T) {
	fearGreed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"value": "72", "value_classification": "Greed"}]}`))
	}))
	defer fearGreed.Close()

	coingecko := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/simple/price":
			assert.Equal(t, "bitcoin,solana", r.URL.Query().Get("ids"))
			w.Write([]byte(`{
				"bitcoin": {"usd": 97000, "usd_24h_change": 2.4},
				"solana": {"usd": 185.5, "usd_24h_change": -1.2}
			}`))
		case "/coins/bitcoin/market_chart":
			// 30 flat closes at 90k keep the EMA below the spot price.
			w.Write([]byte(`{"prices": [` + flatPrices(30, 90000) + `]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer coingecko.Close()

	client := NewClient(fearGreed.URL, coingecko.URL, 5*time.Second)
	mc := client.FetchContext(context.Background())

	assert.Equal(t, 72, mc.FearGreedIndex)
	assert.Equal(t, "Greed", mc.FearGreedLabel)
	assert.Equal(t, 97000.0, mc.BTCPrice)
	assert.Equal(t, 2.4, mc.BTC24hChange)
	assert.Equal(t, 185.5, mc.SOLPrice)
	assert.Equal(t, -1.2, mc.SOL24hChange)
	assert.True(t, mc.BTCAboveEMA20)
}

func TestFetchContext_UpstreamsDownDegradeToNeutral(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	client := NewClient(down.URL, down.URL, 5*time.Second)
	mc := client.FetchContext(context.Background())

	assert.Equal(t, 50, mc.FearGreedIndex)
	assert.Equal(t, "Neutral", mc.FearGreedLabel)
	assert.Equal(t, 0.0, mc.BTCPrice)
	assert.False(t, mc.BTCAboveEMA20)
}

func flatPrices(n int, price float64) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "[0,%.0f]", price)
	}
	return b.String()
}
