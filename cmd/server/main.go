package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"hask/internal/asset"
	"hask/internal/invest"
	"hask/internal/ledger/localnet"
	"hask/internal/notification"
	"hask/internal/platform/config"
	"hask/internal/platform/httpserver"
	"hask/internal/platform/logger"
	"hask/internal/platform/metrics"
	"hask/internal/profile"
	httptransport "hask/internal/transport/http"
	"hask/internal/worth"
	"hask/pkg/platform/audit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Error("config load failed", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	auditor, err := audit.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		log.Error("audit publisher init failed", "error", err)
		os.Exit(1)
	}
	defer auditor.Close()

	m := metrics.New()

	var estimator worth.Estimator
	if cfg.Worth.URL != "" {
		estimator = worth.NewRemote(cfg.Worth.URL, cfg.Worth.Timeout(), log)
	}

	gateway := localnet.New()
	profiles := profile.NewRegistry(profile.NewInMemory(), estimator, log, m)
	issuer := asset.NewIssuer(profiles, gateway, cfg.AssetURL, log, m)
	notifications := notification.NewLedger(notification.NewInMemory(), log)
	investSvc := invest.NewService(profiles, issuer, notifications, gateway, auditor, log, m, invest.Config{
		ExplorerBase: cfg.ExplorerBase,
		DefaultFund:  cfg.FundAmount,
	})

	handler := httptransport.NewHandler(profiles, investSvc, log)
	router := httptransport.NewRouter(handler, log, m)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
