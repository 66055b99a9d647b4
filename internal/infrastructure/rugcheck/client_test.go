package rugcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeToken_CleanToken(t *testing.T) {
	rug := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/addr123/report", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"score": 850,
			"creator": "creatorWallet",
			"mintAuthority": null,
			"freezeAuthority": null,
			"mutable": false,
			"risks": [],
			"markets": [
				{"marketType": "raydium_amm", "lp": {"lpLockedPct": 45.0}},
				{"marketType": "meteora", "lp": {"lpLockedPct": 98.2}}
			],
			"topHolders": [
				{"address": "w1", "pct": 4.0},
				{"address": "w2", "pct": 3.5},
				{"address": "creatorWallet", "pct": 2.0}
			]
		}`))
	}))
	defer rug.Close()

	dex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pairs": [{"txns": {"m5": {"buys": 8}}}]}`))
	}))
	defer dex.Close()

	client := NewClient(rug.URL, dex.URL, 5*time.Second)
	sec, err := client.AnalyzeToken(context.Background(), "addr123")

	assert.NoError(t, err)
	assert.False(t, sec.IsMintable)
	assert.False(t, sec.IsFreezable)
	assert.False(t, sec.IsMutable)
	assert.Equal(t, 850, *sec.ExternalScore)

	// The best lock across markets wins.
	assert.True(t, sec.Lock.IsLocked)
	assert.Equal(t, 98.2, sec.Lock.LockPercentage)
	assert.Equal(t, "meteora", sec.Lock.LockerName)

	assert.False(t, sec.Bundle.IsBundled)
	assert.Equal(t, 2.0, sec.Bundle.DeployerHoldingsPct)
	assert.Equal(t, 0, sec.Bundle.SniperCount) // 8 buys in 5m is organic
}

func TestAnalyzeToken_BundledLaunch(t *testing.T) {
	rug := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"score": 120,
			"creator": "deployer",
			"mintAuthority": "someAuthority",
			"freezeAuthority": null,
			"mutable": true,
			"risks": [{"name": "Mintable"}, {"name": "Top 10 holders high ownership"}],
			"markets": [{"marketType": "raydium_amm", "lp": {"lpLockedPct": 0}}],
			"topHolders": [
				{"address": "deployer", "pct": 18.0},
				{"address": "w2", "pct": 9.0},
				{"address": "w3", "pct": 8.5},
				{"address": "w4", "pct": 6.0},
				{"address": "w5", "pct": 3.0},
				{"address": "w6", "pct": 2.5}
			]
		}`))
	}))
	defer rug.Close()

	dex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pairs": [{"txns": {"m5": {"buys": 140}}}]}`))
	}))
	defer dex.Close()

	client := NewClient(rug.URL, dex.URL, 5*time.Second)
	sec, err := client.AnalyzeToken(context.Background(), "addr456")

	assert.NoError(t, err)
	assert.True(t, sec.IsMintable)
	assert.True(t, sec.IsMutable)
	assert.Contains(t, sec.ExternalRisks, "Top 10 holders high ownership")

	assert.False(t, sec.Lock.IsLocked)
	assert.Empty(t, sec.Lock.LockerName)

	assert.True(t, sec.Bundle.IsBundled)
	assert.Equal(t, 4, sec.Bundle.BundledWalletsCount)
	assert.Equal(t, 18.0, sec.Bundle.DeployerHoldingsPct)
	assert.Equal(t, 47.0, sec.Bundle.Top10HoldersPct)
	assert.Equal(t, 47.0, sec.Bundle.BundlePercentage)
	assert.Equal(t, 50, sec.Bundle.SniperCount) // capped
}

func TestAnalyzeToken_ReportUnavailable(t *testing.T) {
	rug := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer rug.Close()

	client := NewClient(rug.URL, rug.URL, 5*time.Second)
	sec, err := client.AnalyzeToken(context.Background(), "missing")

	assert.Nil(t, sec)
	assert.Error(t, err)
}
