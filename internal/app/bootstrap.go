package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sardaar2003/fortigatex-sub001/config"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/importsale"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/psonline"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/radius"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/sempris"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/sublytics"
	cachemem "github.com/Sardaar2003/fortigatex-sub001/internal/cache/memory"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/emailcheck"
	"github.com/Sardaar2003/fortigatex-sub001/internal/events"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
	"github.com/Sardaar2003/fortigatex-sub001/internal/rejectlist"
	"github.com/Sardaar2003/fortigatex-sub001/internal/repo/postgres"
	rest "github.com/Sardaar2003/fortigatex-sub001/internal/transport/http"
	"github.com/Sardaar2003/fortigatex-sub001/internal/usecase"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/logger"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/metrics"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/telemetry"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

// App: the assembled service and its outward surface.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	gracefulTimeout time.Duration
}

// Cleanup releases resources acquired by Bootstrap, in reverse order.
type Cleanup func()

// applyGinMode sets the Gin mode from a config string; an unknown
// value falls back to debug with a warning.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// buildRegistry wires every vendor adapter. Radius serves two
// projects with separate campaign credentials.
func buildRegistry(cfg *config.Config, repo ports.OrderRepository) *adapters.Registry {
	return adapters.NewRegistry(
		radius.New(domain.ProjectFRP, radius.Config{
			Endpoint: cfg.Radius.FRPEndpoint,
			APIKey:   cfg.Radius.FRPAPIKey,
			DNIS:     cfg.Radius.FRPDNIS,
			Timeout:  cfg.Radius.Timeout,
		}),
		radius.New(domain.ProjectMI, radius.Config{
			Endpoint: cfg.Radius.MIEndpoint,
			APIKey:   cfg.Radius.MIAPIKey,
			DNIS:     cfg.Radius.MIDNIS,
			Timeout:  cfg.Radius.Timeout,
		}),
		sempris.New(sempris.Config{
			Endpoint: cfg.Sempris.Endpoint,
			APIKey:   cfg.Sempris.APIKey,
			Timeout:  cfg.Sempris.Timeout,
		}),
		psonline.New(psonline.Config{
			Endpoint:   cfg.PSOnline.Endpoint,
			APIKey:     cfg.PSOnline.APIKey,
			MerchantID: cfg.PSOnline.MerchantID,
			Timeout:    cfg.PSOnline.Timeout,
		}, rejectlist.PSOnlineStates(), rejectlist.PSOnlineBINs()),
		sublytics.New(sublytics.Config{
			Endpoint: cfg.Sublytics.Endpoint,
			AuthKey:  cfg.Sublytics.AuthKey,
			Timeout:  cfg.Sublytics.Timeout,
		}, rejectlist.SublyticsBINs()),
		importsale.New(importsale.Config{
			Endpoint: cfg.ImportSale.Endpoint,
			APIKey:   cfg.ImportSale.APIKey,
			Timeout:  cfg.ImportSale.Timeout,
		}, repo),
	)
}

// Bootstrap assembles the dependency graph and returns the app, a
// cleanup func and an error.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// OTEL tracing when enabled; no-op shutdown otherwise.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	orderCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	orderRepo := postgres.NewOrderRepository(pool)

	// Outcome events are optional; without brokers the publisher is a
	// no-op.
	var publisher ports.OutcomePublisher = events.Noop{}
	if len(cfg.Events.Brokers) > 0 {
		publisher = events.NewPublisher(events.Config{
			Brokers:      cfg.Events.Brokers,
			Topic:        cfg.Events.Topic,
			WriteTimeout: cfg.Events.WriteTimeout,
		})
		logg.Infof(ctx, "outcome events enabled brokers=%v topic=%s",
			cfg.Events.Brokers, cfg.Events.Topic)
	}

	registry := buildRegistry(cfg, orderRepo)
	stateGates := map[domain.Project]*rejectlist.Set{
		domain.ProjectFRP: rejectlist.RadiusStates(),
		domain.ProjectMI:  rejectlist.MIStates(),
	}

	orderService := usecase.NewOrderService(
		orderRepo, orderCache, logg,
		validate.NewSubmissionValidator(),
		registry, publisher, stateGates,
	)

	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := orderService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	emailGate := emailcheck.New(emailcheck.Config{
		Endpoint: cfg.EmailCheck.Endpoint,
		APIKey:   cfg.EmailCheck.APIKey,
		Timeout:  cfg.EmailCheck.Timeout,
	})

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	httpHandler := rest.NewHandler(orderService, orderService, emailGate, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if perr := publisher.Close(); perr != nil {
			logg.Warnf(ctx, "outcome publisher close error: %v", perr)
		}
		pool.Close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run starts the HTTP server, waits for context cancellation or a
// server error, then stops gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "http server error: %v", err)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
