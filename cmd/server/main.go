package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/apacheta/apacheta/internal/config"
	"github.com/apacheta/apacheta/internal/metrics"
	"github.com/apacheta/apacheta/internal/server"
	"github.com/apacheta/apacheta/internal/service"
	"github.com/apacheta/apacheta/internal/storage/sqlite"
	"github.com/apacheta/apacheta/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	handler := server.NewRouter(cfg, server.Deps{
		Service:  service.NewSettlementService(store, m),
		Metrics:  m,
		Gatherer: reg,
		DB:       store,
	})

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg, ln, handler)
}
