package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestScoreSecurity_MissingData(t *testing.T) {
	eval := ScoreSecurity(nil)

	assert.Equal(t, 0, eval.RiskScore)
	assert.Equal(t, domain.RiskUnknown, eval.RiskLevel)
	assert.Equal(t, 0, eval.SecurityBonus)
	assert.Equal(t, 0, eval.BundlePenalty)
	assert.Equal(t, []string{"Security data unavailable"}, eval.Warnings)
}

func TestScoreSecurity_WellLockedToken(t *testing.T) {
	sec := &domain.SecurityAssessment{
		TokenAddress:  "So11111111111111111111111111111111111111112",
		Lock:          domain.LiquidityLock{IsLocked: true, LockPercentage: 96},
		ExternalScore: intPtr(800),
	}

	eval := ScoreSecurity(sec)

	// External: 40 - 800/25 = 8. Lock at 96% adds nothing.
	assert.Equal(t, 8, eval.RiskScore)
	assert.Equal(t, domain.RiskLow, eval.RiskLevel)
	// Lock >= 95 gives 10, external 800/200 = 4 more.
	assert.Equal(t, 14, eval.SecurityBonus)
	assert.Equal(t, 0, eval.BundlePenalty)
	assert.Empty(t, eval.Warnings)
}

func TestScoreSecurity_UnlockedNoAudit(t *testing.T) {
	sec := &domain.SecurityAssessment{}

	eval := ScoreSecurity(sec)

	// No audit 20 + unlocked 15.
	assert.Equal(t, 35, eval.RiskScore)
	assert.Equal(t, domain.RiskMedium, eval.RiskLevel)
	assert.Equal(t, 0, eval.SecurityBonus)
}

func TestScoreSecurity_EveryFlagTripped(t *testing.T) {
	sec := &domain.SecurityAssessment{
		Bundle: domain.BundleAnalysis{
			IsBundled:           true,
			BundlePercentage:    72,
			BundledWalletsCount: 4,
			DeployerHoldingsPct: 25,
			Top10HoldersPct:     72,
			SniperCount:         35,
		},
		IsMintable:  true,
		IsFreezable: true,
		IsMutable:   true,
	}

	eval := ScoreSecurity(sec)

	// 10+8+7+5+5+5+2, one warning per flag.
	assert.Equal(t, 42, eval.BundlePenalty)
	assert.Len(t, eval.Warnings, 7)
	// No audit 20, unlocked 15, bundled 10, deployer 5, top10 5,
	// mintable 8, freezable 7, mutable 5.
	assert.Equal(t, 75, eval.RiskScore)
	assert.Equal(t, domain.RiskHigh, eval.RiskLevel)
}

func TestScoreSecurity_RiskLevels(t *testing.T) {
	cases := []struct {
		name  string
		score int
		level domain.RiskLevel
	}{
		{"low boundary", 25, domain.RiskLow},
		{"medium boundary", 50, domain.RiskMedium},
		{"high boundary", 75, domain.RiskHigh},
		{"critical", 76, domain.RiskCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.level, riskLevelFor(tc.score))
		})
	}
}

func TestScoreSecurity_BonusCaps(t *testing.T) {
	sec := &domain.SecurityAssessment{
		Lock:          domain.LiquidityLock{IsLocked: true, LockPercentage: 100},
		ExternalScore: intPtr(1000),
	}

	eval := ScoreSecurity(sec)

	// 10 for the lock + 5 capped external contribution.
	assert.Equal(t, 15, eval.SecurityBonus)
}

func TestScoreSecurity_PartialLockTiers(t *testing.T) {
	for _, tc := range []struct {
		pct   float64
		bonus int
	}{
		{96, 10},
		{85, 7},
		{60, 4},
		{40, 0},
	} {
		sec := &domain.SecurityAssessment{
			Lock: domain.LiquidityLock{IsLocked: tc.pct >= 50, LockPercentage: tc.pct},
		}
		eval := ScoreSecurity(sec)
		assert.Equal(t, tc.bonus, eval.SecurityBonus, "lock pct %.0f", tc.pct)
	}
}
