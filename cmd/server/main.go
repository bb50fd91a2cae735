package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/app"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/config"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/handler"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/router"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger, time.Now())
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer a.Close()

	h := handler.NewStatementHandler(a.Pipeline, a.Ledger, a.Format, logger)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.SetupRoutes(chi.NewRouter(), h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
	}
}
