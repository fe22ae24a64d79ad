package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/config"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/httpapi"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/logging"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/storage/memory"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("logger: %v", err)
	}
	defer logger.Sync()

	ledgerService := ledger.NewLedger(memory.NewMemoryTransactionLog())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(ledgerService, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
