package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/eddieom08-star/crypto-signals/internal/config"
	httpdelivery "github.com/eddieom08-star/crypto-signals/internal/delivery/http"
	"github.com/eddieom08-star/crypto-signals/internal/delivery/websocket"
	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/birdeye"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/db"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/dexscreener"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/fcm"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/lunarcrush"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/marketdata"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/rugcheck"
	"github.com/eddieom08-star/crypto-signals/internal/infrastructure/telegram"
	"github.com/eddieom08-star/crypto-signals/internal/repository"
	"github.com/eddieom08-star/crypto-signals/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Printf("Watchlist: %d tokens, scan interval %s, threshold %d",
		len(cfg.Watchlist), cfg.ScanInterval, cfg.SignalThreshold)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage. The in-memory ring always serves reads; Redis and Postgres
	// are optional write-through mirrors.
	inmem := repository.NewInMemorySignalRepository()
	stores := []domain.SignalRepository{inmem}
	var statusStore usecase.StatusStore

	if cfg.RedisAddr != "" {
		redisRepo, err := repository.NewRedisSignalRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
		} else {
			defer redisRepo.Close()
			stores = append(stores, redisRepo)
			statusStore = redisRepo
			log.Println("Redis signal store enabled")
		}
	}

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfigFromEnv())
		if err != nil {
			log.Printf("Postgres unavailable, continuing without it: %v", err)
		} else if err := db.Migrate(ctx, pool); err != nil {
			log.Printf("Postgres migration failed, continuing without it: %v", err)
			pool.Close()
		} else {
			defer pool.Close()
			stores = append(stores, repository.NewPostgresSignalRepository(pool))
			log.Println("Postgres signal store enabled")
		}
	}

	// Notifications.
	tokenRepo := repository.NewDeviceTokenRepository()
	fcmClient, err := fcm.NewClient()
	if err != nil {
		log.Printf("FCM disabled: %v", err)
		fcmClient = nil
	}
	tg := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.RequestTimeout)
	notifier := usecase.NewNotifier(tg, fcmClient, tokenRepo, cfg.Weights, cfg.SignalCooldown)

	// Data providers.
	fetcher := dexscreener.NewClient(cfg.DexScreenerBaseURL, cfg.RequestTimeout)
	security := rugcheck.NewClient(cfg.RugCheckBaseURL, cfg.DexScreenerBaseURL, cfg.RequestTimeout)
	market := marketdata.NewClient(cfg.FearGreedBaseURL, cfg.CoinGeckoBaseURL, cfg.RequestTimeout)

	var smartMoney *usecase.SmartMoneyTracker
	if cfg.BirdeyeAPIKey != "" {
		var lc *lunarcrush.Client
		if cfg.LunarCrushAPIKey != "" {
			lc = lunarcrush.NewClient(cfg.LunarCrushBaseURL, cfg.LunarCrushAPIKey, cfg.RequestTimeout)
		}
		be := birdeye.NewClient(cfg.BirdeyeBaseURL, cfg.BirdeyeAPIKey, cfg.RequestTimeout)
		smartMoney = usecase.NewSmartMoneyTracker(be, lc)
	} else {
		log.Println("BIRDEYE_API_KEY not set, smart money analysis disabled")
	}

	engine := usecase.NewEngine(cfg.Weights, usecase.EngineConfig{})
	scanner := usecase.NewScanner(cfg, fetcher, security, smartMoney, market, engine, notifier, stores, statusStore)
	go scanner.Run(ctx)

	// HTTP surface.
	signalHandler := httpdelivery.NewSignalHandler(inmem, scanner)
	tokenHandler := httpdelivery.NewTokenHandler(tokenRepo)
	wsHandler := websocket.NewHandler(inmem)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", signalHandler.HandleStatus)
	mux.HandleFunc("/api/signals", signalHandler.HandleGetSignals)
	mux.HandleFunc("/api/scans", signalHandler.HandleGetScans)
	mux.HandleFunc("/api/tokens/register", tokenHandler.HandleRegisterToken)
	mux.HandleFunc("/api/tokens/unregister", tokenHandler.HandleUnregisterToken)
	mux.HandleFunc("/ws", wsHandler.Handle)

	server := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: mux}
	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		server.Shutdown(context.Background())
	}()

	log.Printf("Server listening on :%s", cfg.HTTPPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Println("Shutdown complete")
}
