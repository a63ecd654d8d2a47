package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"stocks-simulator/config"
	"stocks-simulator/database"
	"stocks-simulator/handlers"
	"stocks-simulator/quotes"
	"stocks-simulator/services"
	"stocks-simulator/session"
	"stocks-simulator/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate models: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rdb, err := config.OpenRedis(ctx, cfg.Redis)
	cancel()
	if err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	store := database.NewStore(db)

	var provider quotes.Provider = quotes.NewAlphaVantage(cfg.Quote.APIKey, cfg.Quote.BaseURL, cfg.Quote.Timeout)
	provider = quotes.NewArchive(provider, store, logger)
	provider = quotes.NewCache(provider, rdb, cfg.Quote.CacheTTL, logger)

	h := handlers.New(handlers.Deps{
		Auth:         services.NewAuthService(store, cfg.StartingCash, cfg.BcryptCost, logger),
		Trading:      services.NewTradingService(store, provider, logger),
		Sessions:     session.NewStore(rdb, []byte(cfg.Session.Secret), cfg.Session.TTL),
		Log:          logger,
		SecureCookie: cfg.Session.SecureCookie,
		Checks: map[string]handlers.Check{
			"database": store.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(h, templates.MustLoad()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return
	}
	logger.Info("Server stopped")
}
