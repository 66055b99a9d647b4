package usecase

import (
	"fmt"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// SecurityEvaluation is the security scorer output consumed by signal fusion.
type SecurityEvaluation struct {
	RiskScore     int
	RiskLevel     domain.RiskLevel
	SecurityBonus int // 0-15, rewards strong locks and external audits
	BundlePenalty int // additive, no upper bound
	Warnings      []string
}

// ScoreSecurity evaluates the security facts of a token without modifying
// them; the same assessment can feed concurrent evaluations. A nil assessment
// means the data source was unavailable: risk is UNKNOWN, no bonus, no
// penalty, and a warning is raised so the absence is visible downstream.
func ScoreSecurity(sec *domain.SecurityAssessment) SecurityEvaluation {
	if sec == nil {
		return SecurityEvaluation{
			RiskScore: 0,
			RiskLevel: domain.RiskUnknown,
			Warnings:  []string{"Security data unavailable"},
		}
	}

	eval := SecurityEvaluation{
		RiskScore:     computeRiskScore(sec),
		SecurityBonus: computeSecurityBonus(sec),
	}
	eval.RiskLevel = riskLevelFor(eval.RiskScore)
	eval.BundlePenalty, eval.Warnings = computeBundlePenalty(sec)
	return eval
}

// computeRiskScore accumulates risk points on a 0-100 scale, lower is safer.
func computeRiskScore(sec *domain.SecurityAssessment) int {
	risk := 0.0

	// External auditor score, 0-1000 where higher is safer. Absence of the
	// audit itself is a risk.
	if sec.ExternalScore != nil {
		ext := 40.0 - float64(*sec.ExternalScore)/25.0
		if ext > 0 {
			risk += ext
		}
	} else {
		risk += 20
	}

	switch {
	case !sec.Lock.IsLocked:
		risk += 15
	case sec.Lock.LockPercentage < 80:
		risk += 10
	case sec.Lock.LockPercentage < 95:
		risk += 5
	}

	if sec.Bundle.IsBundled {
		risk += 10
	}
	if sec.Bundle.DeployerHoldingsPct > 20 {
		risk += 5
	}
	if sec.Bundle.Top10HoldersPct > 60 {
		risk += 5
	}

	if sec.IsMintable {
		risk += 8
	}
	if sec.IsFreezable {
		risk += 7
	}
	if sec.IsMutable {
		risk += 5
	}

	return clampInt(int(risk), 0, 100)
}

func riskLevelFor(score int) domain.RiskLevel {
	switch {
	case score <= 25:
		return domain.RiskLow
	case score <= 50:
		return domain.RiskMedium
	case score <= 75:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// computeSecurityBonus rewards locked liquidity and good external audit
// scores. The bonus is capped at 15 so security alone never buys a signal.
func computeSecurityBonus(sec *domain.SecurityAssessment) int {
	bonus := 0
	switch {
	case sec.Lock.LockPercentage >= 95:
		bonus += 10
	case sec.Lock.LockPercentage >= 80:
		bonus += 7
	case sec.Lock.LockPercentage >= 50:
		bonus += 4
	}
	if sec.ExternalScore != nil {
		ext := *sec.ExternalScore / 200
		if ext > 5 {
			ext = 5
		}
		if ext > 0 {
			bonus += ext
		}
	}
	if bonus > 15 {
		bonus = 15
	}
	return bonus
}

// computeBundlePenalty accumulates penalty points for insider-concentration
// and mint-authority red flags. Intentionally unbounded: a token that trips
// every flag should be unsalvageable no matter how strong its market data is.
func computeBundlePenalty(sec *domain.SecurityAssessment) (int, []string) {
	penalty := 0
	warnings := []string{}

	if sec.Bundle.IsBundled {
		penalty += 10
		warnings = append(warnings, fmt.Sprintf(
			"Bundled launch: %.1f%% held by %d linked wallets",
			sec.Bundle.BundlePercentage, sec.Bundle.BundledWalletsCount))
	}
	if sec.Bundle.DeployerHoldingsPct > 20 {
		penalty += 8
		warnings = append(warnings, fmt.Sprintf(
			"Deployer holds %.1f%% of supply", sec.Bundle.DeployerHoldingsPct))
	}
	if sec.Bundle.Top10HoldersPct > 60 {
		penalty += 7
		warnings = append(warnings, fmt.Sprintf(
			"Top 10 holders control %.1f%%", sec.Bundle.Top10HoldersPct))
	}
	if sec.Bundle.SniperCount > 20 {
		penalty += 5
		warnings = append(warnings, fmt.Sprintf(
			"High sniper activity: %d wallets", sec.Bundle.SniperCount))
	}
	if sec.IsMintable {
		penalty += 5
		warnings = append(warnings, "Mint authority not revoked")
	}
	if sec.IsFreezable {
		penalty += 5
		warnings = append(warnings, "Freeze authority not revoked")
	}
	if sec.IsMutable {
		penalty += 2
		warnings = append(warnings, "Token metadata is mutable")
	}

	return penalty, warnings
}
