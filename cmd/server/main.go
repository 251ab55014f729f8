package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"intake/internal/autofill"
	"intake/internal/autofill/cache"
	autofillHandler "intake/internal/autofill/handler"
	autofillMetrics "intake/internal/autofill/metrics"
	"intake/internal/form"
	formHandler "intake/internal/form/handler"
	"intake/internal/health"
	"intake/internal/platform/config"
	"intake/internal/platform/httpserver"
	"intake/internal/platform/logger"
	httpMetrics "intake/internal/platform/metrics"
	"intake/internal/platform/redis"
	"intake/internal/preferences"
	preferencesHandler "intake/internal/preferences/handler"
	"intake/internal/providers/geoapify"
	"intake/internal/providers/restcountries"
	"intake/internal/ratelimit"
	ratelimitMetrics "intake/internal/ratelimit/metrics"
	"intake/internal/records"
	recordsHandler "intake/internal/records/handler"
	recordsMetrics "intake/internal/records/metrics"
	"intake/internal/reference"
	referenceHandler "intake/internal/reference/handler"
	referenceMetrics "intake/internal/reference/metrics"
	httptransport "intake/internal/transport/http"
	"intake/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the process lifecycle. Business logic lives
// in the internal module packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("intake exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	resolver, err := reference.New(
		restcountries.New(cfg.Reference.BaseURL, cfg.Reference.Timeout),
		reference.WithLogger(log),
		reference.WithMetrics(referenceMetrics.NewWithRegisterer(reg)),
		reference.WithLocale(cfg.Reference.CollationLocale),
	)
	if err != nil {
		return err
	}

	afMetrics := autofillMetrics.NewWithRegisterer(reg)
	var geoStore cache.Store = cache.NewInMemoryStore(cfg.Autofill.CacheTTL)
	var prefStore preferencesHandler.Store = preferences.NewInMemoryStore()
	var redisHealth health.Pinger
	if redisClient != nil {
		geoStore = cache.NewRedisStore(redisClient.Client, cfg.Autofill.CacheTTL)
		prefStore = preferences.NewRedisStore(redisClient.Client)
		redisHealth = redisClient
	}
	geocoder, err := cache.New(
		geoapify.New(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey, cfg.Autofill.Timeout),
		geoStore,
		cache.WithLogger(log),
		cache.WithMetrics(afMetrics),
	)
	if err != nil {
		return err
	}

	formState := form.NewState(cfg.Autofill.DiscardStale)
	breaker := circuit.New("geocoder")
	coordinator, err := autofill.New(geocoder, resolver, formState,
		autofill.WithLogger(log),
		autofill.WithMetrics(afMetrics),
		autofill.WithTimeout(cfg.Autofill.Timeout),
		autofill.WithBreaker(breaker),
	)
	if err != nil {
		return err
	}

	recordService, err := records.New(records.NewInMemoryStore(),
		records.WithLogger(log),
		records.WithMetrics(recordsMetrics.NewWithRegisterer(reg)),
		records.WithFormResetter(formState),
	)
	if err != nil {
		return err
	}
	if cfg.Records.SeedPath != "" {
		if _, err := recordService.LoadSeed(ctx, cfg.Records.SeedPath); err != nil {
			return err
		}
	}

	autofillLimit := ratelimit.New(ratelimit.NewInMemoryStore(), "autofill",
		cfg.Autofill.RateLimit, cfg.Autofill.RateWindow, log,
		ratelimit.WithMetrics(ratelimitMetrics.NewWithRegisterer(reg)),
	)

	router := httptransport.NewRouter(log, httpMetrics.NewWithRegisterer(reg), reg, cfg.TrustProxyHeaders,
		referenceHandler.New(resolver, log),
		autofillHandler.New(coordinator, formState, log, autofillHandler.WithMiddleware(autofillLimit.Handler)),
		formHandler.New(resolver, formState, log),
		recordsHandler.New(recordService, log),
		preferencesHandler.New(prefStore, log),
		health.New(resolver, breaker, redisHealth, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting intake", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		resolver.FetchAll(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
