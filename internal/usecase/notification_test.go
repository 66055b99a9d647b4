package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eddieom08-star/crypto-signals/internal/config"
	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

func testSignal() *domain.CompositeSignal {
	return &domain.CompositeSignal{
		Symbol:         "BONK",
		Address:        "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
		PriceUSD:       0.0000251,
		TotalScore:     78,
		SignalStrength: domain.StrengthModerate,
		RiskLevel:      domain.RiskLow,
		IsLocked:       true,
		LockPercentage: 96.5,
		PoP: domain.PoPEstimate{
			PopScore:   68.4,
			Confidence: domain.ConfidenceMedium,
		},
		Plan: domain.TradePlan{
			EntryPrice:      0.0000251,
			StopLoss:        0.0000231,
			TakeProfit1:     0.0000289,
			TakeProfit2:     0.0000326,
			TakeProfit3:     0.0000377,
			RiskRewardRatio: 3.75,
		},
	}
}

func TestSendSignal_CooldownSkips(t *testing.T) {
	n := NewNotifier(nil, nil, nil, config.DefaultScoringWeights(), time.Hour)
	n.notified["BONK"] = time.Now().Add(-10 * time.Minute)

	// Still in cooldown, so no delivery is attempted at all.
	sent := n.SendSignal(context.Background(), testSignal())
	assert.False(t, sent)
}

func TestFormatSignalMessage(t *testing.T) {
	n := NewNotifier(nil, nil, nil, config.DefaultScoringWeights(), time.Hour)
	sig := testSignal()

	msg := n.formatSignalMessage(sig)

	assert.Contains(t, msg, "<b>Token:</b> $BONK")
	assert.Contains(t, msg, "<b>Score:</b> 78/100")
	assert.Contains(t, msg, "68.4% (MEDIUM confidence)")
	assert.Contains(t, msg, "Liquidity locked: 96.5%")
	assert.Contains(t, msg, "<b>R:R Ratio:</b> 1:3.75")
	assert.Contains(t, msg, "<code>DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263</code>")
	// NEUTRAL smart money stays out of the message.
	assert.NotContains(t, msg, "SMART MONEY")
}

func TestFormatSignalMessage_WarningsCapped(t *testing.T) {
	n := NewNotifier(nil, nil, nil, config.DefaultScoringWeights(), time.Hour)
	sig := testSignal()
	for i := 0; i < 8; i++ {
		sig.SecurityWarnings = append(sig.SecurityWarnings, fmt.Sprintf("warning %d", i))
	}

	msg := n.formatSignalMessage(sig)

	assert.Equal(t, maxRenderedWarnings, strings.Count(msg, "⚠️"))
	assert.Contains(t, msg, "warning 4")
	assert.NotContains(t, msg, "warning 5")
}

func TestFormatSignalMessage_SmartMoneySection(t *testing.T) {
	n := NewNotifier(nil, nil, nil, config.DefaultScoringWeights(), time.Hour)
	sig := testSignal()
	sig.SmartMoneySignal = domain.SignalAccumulation
	sig.SmartMoneyScore = 72
	sig.SmartMoneyConfidence = domain.ConfidenceHigh

	msg := n.formatSignalMessage(sig)

	assert.Contains(t, msg, "🐋 SMART MONEY")
	assert.Contains(t, msg, "ACCUMULATION (score 72, HIGH confidence)")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "142.5000", formatPrice(142.5))
	assert.Equal(t, "1.0000", formatPrice(1.0))
	assert.Equal(t, "0.004210", formatPrice(0.00421))
	assert.Equal(t, "0.000100", formatPrice(0.0001))
	assert.Equal(t, "0.0000000420", formatPrice(0.000000042))
}
