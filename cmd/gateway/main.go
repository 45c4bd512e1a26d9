package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/stockdesk/api/routes"
	"github.com/angelmondragon/stockdesk/internal/catalog"
	"github.com/angelmondragon/stockdesk/internal/orders"
	"github.com/angelmondragon/stockdesk/internal/promotions"
	"github.com/angelmondragon/stockdesk/internal/reports"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/config"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/instance"
	"github.com/angelmondragon/stockdesk/pkg/logger"
	"github.com/angelmondragon/stockdesk/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
		Fields: map[string]any{
			"env":      cfg.App.Env,
			"instance": instance.GetID(),
		},
	})

	policy, err := cfg.Access.Policy()
	requireResource(context.Background(), logg, "access policy", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	remote, err := graphql.NewClient(cfg.Remote.Endpoint,
		graphql.WithRequestTimeout(cfg.Remote.RequestTimeout),
		graphql.WithProbeTimeout(cfg.Remote.ProbeTimeout),
		graphql.WithErrorBodyLimit(cfg.Remote.MaxErrorBody),
		graphql.WithDefaultToken(cfg.Remote.Token),
		graphql.WithLogger(logg),
		graphql.WithMetrics(metrics.NewRemoteMetrics(registry)),
	)
	requireResource(context.Background(), logg, "remote client", err)

	wall := clock.System{}
	catalogService, err := catalog.NewService(remote, wall)
	requireResource(context.Background(), logg, "catalog service", err)
	ordersService, err := orders.NewService(remote, wall)
	requireResource(context.Background(), logg, "orders service", err)
	promotionsService, err := promotions.NewService(remote, wall)
	requireResource(context.Background(), logg, "promotions service", err)
	reportsService, err := reports.NewService(remote, wall)
	requireResource(context.Background(), logg, "reports service", err)

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"addr":   addr,
		"remote": cfg.Remote.Endpoint,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Policy:     policy,
			Prober:     remote,
			Gatherer:   registry,
			Catalog:    catalogService,
			Orders:     ordersService,
			Promotions: promotionsService,
			Reports:    reportsService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting gateway server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "gateway server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down gateway server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "gateway shutdown failed", err)
			os.Exit(1)
		}
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "resource", name), "failed to initialize "+name, err)
	os.Exit(1)
}
