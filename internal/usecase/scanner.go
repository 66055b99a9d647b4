package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eddieom08-star/crypto-signals/internal/config"
	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/dexscreener"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/marketdata"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/rugcheck"
)

// StatusStore mirrors the bot status to an external store for health checks.
type StatusStore interface {
	UpdateStatus(ctx context.Context, status domain.BotStatus) error
}

// Scanner runs the watchlist scan loop: fetch market data per token, gather
// the optional assessments, fuse them into a signal, persist and alert.
type Scanner struct {
	cfg        *config.Config
	fetcher    *dexscreener.Client
	security   *rugcheck.Client
	smartMoney *SmartMoneyTracker
	market     *marketdata.Client
	engine     *Engine
	notifier   *Notifier
	stores     []domain.SignalRepository
	status     StatusStore // optional

	mu          sync.RWMutex
	running     bool
	scanCount   int
	signalsSent int
	errorsCount int
	lastScan    time.Time
}

func NewScanner(
	cfg *config.Config,
	fetcher *dexscreener.Client,
	security *rugcheck.Client,
	smartMoney *SmartMoneyTracker,
	market *marketdata.Client,
	engine *Engine,
	notifier *Notifier,
	stores []domain.SignalRepository,
	status StatusStore,
) *Scanner {
	return &Scanner{
		cfg:        cfg,
		fetcher:    fetcher,
		security:   security,
		smartMoney: smartMoney,
		market:     market,
		engine:     engine,
		notifier:   notifier,
		stores:     stores,
		status:     status,
	}
}

// Run starts the scan loop and blocks until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Println("Starting crypto signal scanner...")
	s.notifier.SendStartup(ctx, s.cfg.ScanInterval, s.cfg.SignalThreshold, len(s.cfg.Watchlist))

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	// Initial scan before the first tick.
	s.scanCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scanner stopped")
			return
		case <-ticker.C:
			s.scanCycle(ctx)
		}
	}
}

func (s *Scanner) scanCycle(ctx context.Context) {
	start := time.Now()

	// One market context fetch serves the whole cycle.
	mktCtx := s.market.FetchContext(ctx)
	EvaluateMarketContext(mktCtx)

	var wg sync.WaitGroup
	sem := make(chan struct{}, 4) // keep below provider rate limits

	for _, token := range s.cfg.Watchlist {
		wg.Add(1)
		go func(token config.TokenConfig) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := s.scanToken(ctx, token, mktCtx); err != nil {
				s.recordError(ctx, err)
			}
		}(token)
	}
	wg.Wait()

	s.mu.Lock()
	s.scanCount++
	s.lastScan = time.Now()
	count := s.scanCount
	sent := s.signalsSent
	s.mu.Unlock()

	if count%10 == 0 {
		log.Printf("Scan #%d complete in %v. Signals sent: %d", count, time.Since(start), sent)
	}

	if s.status != nil {
		if err := s.status.UpdateStatus(ctx, s.Status()); err != nil {
			log.Printf("Error updating status: %v", err)
		}
	}
}

func (s *Scanner) scanToken(ctx context.Context, token config.TokenConfig, mktCtx *domain.MarketContext) error {
	market, err := s.fetcher.FetchTokenData(ctx, token.Symbol, token.Address)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", token.Symbol, err)
	}

	// Security and smart money are optional inputs. A failed fetch degrades
	// the analysis instead of aborting it.
	security, err := s.security.AnalyzeToken(ctx, token.Address)
	if err != nil {
		log.Printf("Security analysis unavailable for %s: %v", token.Symbol, err)
		security = nil
	}

	var smartMoney *domain.SmartMoneyAssessment
	if s.smartMoney != nil {
		smartMoney, err = s.smartMoney.Analyze(ctx, token.Address, token.Symbol)
		if err != nil {
			log.Printf("Smart money analysis unavailable for %s: %v", token.Symbol, err)
			smartMoney = nil
		}
	}

	sig, err := s.engine.Analyze(AnalysisInput{
		Market:     *market,
		Security:   security,
		SmartMoney: smartMoney,
		Technical:  BuildTechnicalIndicators(*market),
		Context:    mktCtx,
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", token.Symbol, err)
	}

	now := time.Now()
	isSignal := sig.TotalScore >= s.cfg.SignalThreshold
	scan := domain.ScanRecord{
		Timestamp:      now,
		Symbol:         sig.Symbol,
		PriceUSD:       sig.PriceUSD,
		TotalScore:     sig.TotalScore,
		PopScore:       sig.PoP.PopScore,
		SignalStrength: sig.SignalStrength,
		RiskLevel:      sig.RiskLevel,
		IsValidSignal:  isSignal,
	}
	for _, store := range s.stores {
		store.AddScan(scan)
	}

	log.Printf("%s: score %d/100 pop %.1f%% (L:%d V:%d M:%d B:%d T:%d S:%d P:-%d)",
		sig.Symbol, sig.TotalScore, sig.PoP.PopScore,
		sig.LiquidityScore, sig.VolumeRatioScore, sig.MomentumScore,
		sig.BuyPressureScore, sig.TrendScore, sig.SecurityScore, sig.BundlePenalty)

	if isSignal {
		sent := s.notifier.SendSignal(ctx, sig)
		rec := domain.SignalRecord{
			ID:           uuid.NewString(),
			Timestamp:    now,
			Signal:       sig,
			TelegramSent: sent,
		}
		for _, store := range s.stores {
			store.AddSignal(rec)
		}
		if sent {
			s.mu.Lock()
			s.signalsSent++
			s.mu.Unlock()
		}
	}
	return nil
}

func (s *Scanner) recordError(ctx context.Context, err error) {
	log.Printf("Scan error: %v", err)

	s.mu.Lock()
	s.errorsCount++
	count := s.errorsCount
	s.mu.Unlock()

	// Alert every tenth error so a flapping provider doesn't flood the chat.
	if count%10 == 0 {
		msg := err.Error()
		if len(msg) > 100 {
			msg = msg[:100]
		}
		s.notifier.SendErrorAlert(ctx, fmt.Sprintf("Multiple scan errors (%d total). Latest: %s", count, msg))
	}
}

// Status returns a snapshot of the scanner state for health checks.
func (s *Scanner) Status() domain.BotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := "stopped"
	if s.running {
		state = "running"
	}
	watchlist := make([]string, 0, len(s.cfg.Watchlist))
	for _, t := range s.cfg.Watchlist {
		watchlist = append(watchlist, t.Symbol)
	}

	return domain.BotStatus{
		Status:        state,
		ScanCount:     s.scanCount,
		SignalsSent:   s.signalsSent,
		ErrorsCount:   s.errorsCount,
		LastScan:      s.lastScan,
		WatchlistSize: len(watchlist),
		Watchlist:     watchlist,
		UpdatedAt:     time.Now(),
	}
}
