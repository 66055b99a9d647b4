package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/eddieom08-star/crypto-signals/internal/config"
	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/fcm"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/telegram"
	"github.com/eddieom08-star/crypto-signals/internal/repository"
)

const maxRenderedWarnings = 5

// Notifier delivers signal alerts over Telegram and, for STRONG signals,
// as FCM push notifications to registered devices. A per-symbol cooldown
// prevents alert spam when a token keeps triggering scan after scan.
type Notifier struct {
	telegram  *telegram.Client
	fcmClient *fcm.Client
	tokenRepo *repository.DeviceTokenRepository
	weights   config.ScoringWeights
	cooldown  time.Duration

	mu       sync.RWMutex
	notified map[string]time.Time
}

func NewNotifier(tg *telegram.Client, fcmClient *fcm.Client, tokenRepo *repository.DeviceTokenRepository,
	weights config.ScoringWeights, cooldown time.Duration) *Notifier {
	return &Notifier{
		telegram:  tg,
		fcmClient: fcmClient,
		tokenRepo: tokenRepo,
		weights:   weights,
		cooldown:  cooldown,
		notified:  make(map[string]time.Time),
	}
}

// SendSignal sends the alert unless the symbol is still in cooldown.
// Returns whether a Telegram message actually went out.
func (n *Notifier) SendSignal(ctx context.Context, sig *domain.CompositeSignal) bool {
	now := time.Now()

	n.mu.RLock()
	lastSent, exists := n.notified[sig.Symbol]
	n.mu.RUnlock()
	if exists && now.Sub(lastSent) < n.cooldown {
		log.Printf("Signal for %s in cooldown, skipping", sig.Symbol)
		return false
	}

	if err := n.telegram.SendMessage(ctx, n.formatSignalMessage(sig)); err != nil {
		log.Printf("Error sending Telegram signal for %s: %v", sig.Symbol, err)
		return false
	}
	log.Printf("Sent signal for %s (score: %d, pop: %.1f)", sig.Symbol, sig.TotalScore, sig.PoP.PopScore)

	n.mu.Lock()
	n.notified[sig.Symbol] = now
	for symbol, ts := range n.notified {
		if now.Sub(ts) > n.cooldown*2 {
			delete(n.notified, symbol)
		}
	}
	n.mu.Unlock()

	if sig.SignalStrength == domain.StrengthStrong {
		n.sendPush(sig)
	}
	return true
}

// sendPush mirrors the STRONG alert to all registered devices.
func (n *Notifier) sendPush(sig *domain.CompositeSignal) {
	if n.fcmClient == nil || !n.fcmClient.IsEnabled() || n.tokenRepo == nil {
		return
	}
	tokens := n.tokenRepo.All()
	if len(tokens) == 0 {
		return
	}

	title := fmt.Sprintf("🚀 %s STRONG signal", sig.Symbol)
	body := fmt.Sprintf("Score: %d | PoP: %.0f%% | Price: $%s | Risk: %s",
		sig.TotalScore, sig.PoP.PopScore, formatPrice(sig.PriceUSD), sig.RiskLevel)
	data := map[string]string{
		"symbol":   sig.Symbol,
		"score":    fmt.Sprintf("%d", sig.TotalScore),
		"popScore": fmt.Sprintf("%.1f", sig.PoP.PopScore),
		"price":    formatPrice(sig.PriceUSD),
		"strength": sig.SignalStrength,
	}

	if err := n.fcmClient.SendMulticast(tokens, title, body, data); err != nil {
		log.Printf("Error sending push notification for %s: %v", sig.Symbol, err)
	} else {
		log.Printf("Sent push notification for %s to %d devices", sig.Symbol, len(tokens))
	}
}

func (n *Notifier) formatSignalMessage(sig *domain.CompositeSignal) string {
	var b strings.Builder

	strengthEmoji := map[string]string{
		domain.StrengthStrong:   "🟢🟢🟢",
		domain.StrengthModerate: "🟡🟡",
		domain.StrengthWeak:     "🔴",
		domain.StrengthNone:     "⚫",
	}[sig.SignalStrength]

	fmt.Fprintf(&b, "<b>🚀 CRYPTO SIGNAL ALERT</b>\n\n")
	fmt.Fprintf(&b, "<b>Token:</b> $%s\n", sig.Symbol)
	fmt.Fprintf(&b, "<b>Signal:</b> %s %s\n", strengthEmoji, sig.SignalStrength)
	fmt.Fprintf(&b, "<b>Score:</b> %d/100\n", sig.TotalScore)
	fmt.Fprintf(&b, "<b>PoP:</b> %.1f%% (%s confidence)\n\n", sig.PoP.PopScore, sig.PoP.Confidence)

	fmt.Fprintf(&b, "<b>📊 ANALYSIS BREAKDOWN</b>\n")
	fmt.Fprintf(&b, "• Liquidity: %d/%d\n", sig.LiquidityScore, n.weights.Liquidity)
	fmt.Fprintf(&b, "• Volume Ratio: %d/%d\n", sig.VolumeRatioScore, n.weights.VolumeLiquidityRatio)
	fmt.Fprintf(&b, "• Momentum: %d/%d\n", sig.MomentumScore, n.weights.PriceMomentum)
	fmt.Fprintf(&b, "• Buy Pressure: %d/%d\n", sig.BuyPressureScore, n.weights.BuyPressure)
	fmt.Fprintf(&b, "• Trend: %d/%d\n\n", sig.TrendScore, n.weights.TrendStrength)

	fmt.Fprintf(&b, "<b>🔒 SECURITY</b>\n")
	fmt.Fprintf(&b, "• Risk: %s\n", sig.RiskLevel)
	if sig.IsLocked {
		fmt.Fprintf(&b, "• Liquidity locked: %.1f%%\n", sig.LockPercentage)
	} else {
		fmt.Fprintf(&b, "• Liquidity: not locked\n")
	}
	warnings := sig.SecurityWarnings
	if len(warnings) > maxRenderedWarnings {
		warnings = warnings[:maxRenderedWarnings]
	}
	for _, w := range warnings {
		fmt.Fprintf(&b, "⚠️ %s\n", w)
	}
	b.WriteString("\n")

	if sig.SmartMoneySignal != "" && sig.SmartMoneySignal != domain.SignalNeutral {
		fmt.Fprintf(&b, "<b>🐋 SMART MONEY</b>\n")
		fmt.Fprintf(&b, "• %s (score %d, %s confidence)\n\n",
			sig.SmartMoneySignal, sig.SmartMoneyScore, sig.SmartMoneyConfidence)
	}

	fmt.Fprintf(&b, "<b>💰 TRADE SETUP</b>\n")
	fmt.Fprintf(&b, "<b>Entry:</b> $%s\n", formatPrice(sig.Plan.EntryPrice))
	fmt.Fprintf(&b, "<b>Stop Loss:</b> $%s\n\n", formatPrice(sig.Plan.StopLoss))
	fmt.Fprintf(&b, "<b>Take Profits:</b>\n")
	fmt.Fprintf(&b, "• TP1: $%s\n", formatPrice(sig.Plan.TakeProfit1))
	fmt.Fprintf(&b, "• TP2: $%s\n", formatPrice(sig.Plan.TakeProfit2))
	fmt.Fprintf(&b, "• TP3: $%s\n\n", formatPrice(sig.Plan.TakeProfit3))
	fmt.Fprintf(&b, "<b>R:R Ratio:</b> 1:%.2f\n\n", sig.Plan.RiskRewardRatio)

	fmt.Fprintf(&b, "<b>📍 Contract:</b>\n<code>%s</code>\n\n", sig.Address)
	fmt.Fprintf(&b, "<i>DYOR - Not financial advice</i>")

	return b.String()
}

// SendStartup announces that the bot is up and what it is watching.
func (n *Notifier) SendStartup(ctx context.Context, scanInterval time.Duration, threshold, watchlistSize int) {
	msg := fmt.Sprintf(
		"<b>🤖 Crypto Signal Bot Started</b>\n\n"+
			"Monitoring %d tokens for trading signals.\n"+
			"Scan interval: %s\n"+
			"Signal threshold: %d/100\n\n"+
			"<i>You will receive alerts when strong signals are detected.</i>",
		watchlistSize, scanInterval, threshold)
	if err := n.telegram.SendMessage(ctx, msg); err != nil {
		log.Printf("Failed to send startup message: %v", err)
	}
}

// SendErrorAlert reports a scanner failure to the chat.
func (n *Notifier) SendErrorAlert(ctx context.Context, errMsg string) {
	msg := fmt.Sprintf(
		"<b>⚠️ Bot Error Alert</b>\n\n%s\n\n<i>Bot will continue attempting to recover.</i>",
		errMsg)
	if err := n.telegram.SendMessage(ctx, msg); err != nil {
		log.Printf("Failed to send error alert: %v", err)
	}
}

// formatPrice picks decimal places suited to the price magnitude, so
// micro-cap prices don't render as 0.0000.
func formatPrice(price float64) string {
	switch {
	case price >= 1:
		return fmt.Sprintf("%.4f", price)
	case price >= 0.0001:
		return fmt.Sprintf("%.6f", price)
	default:
		return fmt.Sprintf("%.10f", price)
	}
}
