package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/timesheet/internal/aggregation"
	corecfg "github.com/aevon-lab/timesheet/internal/core/config"
	"github.com/aevon-lab/timesheet/internal/core/storage/postgres"
	"github.com/aevon-lab/timesheet/internal/ingestion"
	"github.com/aevon-lab/timesheet/internal/logger"
	"github.com/aevon-lab/timesheet/internal/metrics"
	"github.com/aevon-lab/timesheet/internal/migrations"
	"github.com/aevon-lab/timesheet/internal/projection"
	"github.com/aevon-lab/timesheet/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "timesheet.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Bootstrap logger, replaced once the configured level and format are known
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := logger.ParseLevel(cfg.Log.Level) // validated by Load
	logger.SetupDefault(os.Stdout, level, cfg.Log.Format)
	slog.Info("Loaded config",
		"timezone", cfg.Basis().Name(),
		"server", cfg.Server,
		"aggregation", cfg.Aggregation,
		"log", cfg.Log)

	basis := cfg.Basis()

	// 2. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(registry)

	// 3. Initialize Storage (PostgreSQL)
	db, err := postgres.Open(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// 3.1. Run Database Migrations before the adapter checks the schema
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		db.Close()
		os.Exit(1)
	}

	dbAdapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		slog.Error("Failed to initialize storage adapter", "error", err)
		db.Close()
		os.Exit(1)
	}
	defer dbAdapter.Close()

	totalsStore := postgres.NewTotalsAdapter(dbAdapter.DB())

	// 4. Initialize Aggregation (cron-based daily totals rollup)
	rollup := aggregation.NewRollup(
		dbAdapter, // IntervalStore
		totalsStore,
		basis,
		aggregation.RollupParameter{
			BatchSize:   cfg.Aggregation.BatchSize,
			WorkerCount: cfg.Aggregation.WorkerCount,
			SettleDelay: cfg.Aggregation.Settle(),
		},
		recorder,
	)
	scheduler := aggregation.NewScheduler(cfg.Aggregation.Interval(), rollup)

	slog.Info("Aggregation scheduler initialized",
		"interval", cfg.Aggregation.Interval(),
		"enabled", cfg.Aggregation.Enabled,
		"batch_size", cfg.Aggregation.BatchSize,
		"worker_count", cfg.Aggregation.WorkerCount,
		"settle_delay", cfg.Aggregation.Settle(),
	)

	// 5. Initialize Ingestion
	ingestionSvc := ingestion.NewService(dbAdapter, basis, recorder, cfg.Server.MaxBodySizeMB)

	// 6. Initialize Projection (timesheet views)
	projectionSvc := projection.NewService(dbAdapter, totalsStore, basis, recorder)

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)
	if cfg.Metrics.Enabled {
		srv.MountMetrics(cfg.Metrics.Path, registry)
	}

	// 8. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Aggregation.Enabled {
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Aggregation scheduler disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
