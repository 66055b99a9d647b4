package rugcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// Client fetches token security reports from the RugCheck API and combines
// them with DEXScreener transaction data for bundle heuristics.
type Client struct {
	baseURL        string
	dexscreenerURL string
	httpClient     *resty.Client
}

func NewClient(baseURL, dexscreenerURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        baseURL,
		dexscreenerURL: dexscreenerURL,
		httpClient:     resty.New().SetTimeout(timeout),
	}
}

type report struct {
	Score           *int    `json:"score"`
	Creator         string  `json:"creator"`
	MintAuthority   *string `json:"mintAuthority"`
	FreezeAuthority *string `json:"freezeAuthority"`
	Mutable         bool    `json:"mutable"`
	Risks           []struct {
		Name string `json:"name"`
	} `json:"risks"`
	Markets []struct {
		MarketType string `json:"marketType"`
		LP         struct {
			LPLockedPct float64 `json:"lpLockedPct"`
		} `json:"lp"`
	} `json:"markets"`
	TopHolders []struct {
		Address string  `json:"address"`
		Pct     float64 `json:"pct"`
	} `json:"topHolders"`
}

// AnalyzeToken builds a security assessment for a token. It reports facts
// only; risk scoring happens downstream.
func (c *Client) AnalyzeToken(ctx context.Context, address string) (*domain.SecurityAssessment, error) {
	rep, err := c.fetchReport(ctx, address)
	if err != nil {
		return nil, err
	}

	sec := &domain.SecurityAssessment{
		TokenAddress: address,
		IsMintable:   rep.MintAuthority != nil,
		IsFreezable:  rep.FreezeAuthority != nil,
		IsMutable:    rep.Mutable,
	}
	for _, r := range rep.Risks {
		sec.ExternalRisks = append(sec.ExternalRisks, r.Name)
		switch r.Name {
		case "Mintable":
			sec.IsMintable = true
		case "Freezable":
			sec.IsFreezable = true
		case "Blacklist":
			sec.HasBlacklist = true
		}
	}
	sec.ExternalScore = rep.Score

	sec.Lock = parseLockInfo(rep)
	sec.Bundle = detectBundles(rep)
	sec.Bundle.SniperCount = c.estimateSnipers(ctx, address)

	return sec, nil
}

func (c *Client) fetchReport(ctx context.Context, address string) (*report, error) {
	url := fmt.Sprintf("%s/tokens/%s/report", c.baseURL, address)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var rep report
	if err := json.Unmarshal(resp.Body(), &rep); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &rep, nil
}

// parseLockInfo takes the best lock across all markets. Locked means at
// least half the LP supply is locked or burned.
func parseLockInfo(rep *report) domain.LiquidityLock {
	lock := domain.LiquidityLock{}
	for _, m := range rep.Markets {
		if m.LP.LPLockedPct > lock.LockPercentage {
			lock.LockPercentage = m.LP.LPLockedPct
			lock.LockerName = m.MarketType
		}
	}
	lock.IsLocked = lock.LockPercentage >= 50
	if !lock.IsLocked {
		lock.LockerName = ""
	}
	return lock
}

// detectBundles applies holder-concentration heuristics: several large
// top-5 holders, a deployer still holding size, or a dominant top 10.
func detectBundles(rep *report) domain.BundleAnalysis {
	b := domain.BundleAnalysis{}

	for i, h := range rep.TopHolders {
		if i >= 10 {
			break
		}
		b.Top10HoldersPct += h.Pct
		if h.Address == rep.Creator {
			b.DeployerHoldingsPct = h.Pct
		}
		if h.Pct > 5 && i < 5 {
			b.BundledWalletsCount++
		}
	}

	b.IsBundled = b.BundledWalletsCount >= 3 ||
		b.DeployerHoldingsPct > 10 ||
		b.Top10HoldersPct > 50
	if b.IsBundled {
		b.BundlePercentage = b.Top10HoldersPct
	}
	return b
}

// estimateSnipers approximates sniper wallets from 5-minute buy bursts.
// Best effort: failures just report zero.
func (c *Client) estimateSnipers(ctx context.Context, address string) int {
	url := fmt.Sprintf("%s/tokens/%s", c.dexscreenerURL, address)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil || resp.StatusCode() != http.StatusOK {
		return 0
	}

	var result struct {
		Pairs []struct {
			Txns struct {
				M5 struct {
					Buys int `json:"buys"`
				} `json:"m5"`
			} `json:"txns"`
		} `json:"pairs"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil || len(result.Pairs) == 0 {
		return 0
	}

	buys5m := result.Pairs[0].Txns.M5.Buys
	if buys5m <= 20 {
		return 0
	}
	if buys5m > 50 {
		return 50
	}
	return buys5m
}
