package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"regimen/internal/engine"
	"regimen/internal/ledger"
	"regimen/internal/platform/config"
	"regimen/internal/platform/httpserver"
	"regimen/internal/platform/logger"
	"regimen/internal/platform/metrics"
	platformredis "regimen/internal/platform/redis"
	"regimen/internal/routine"
	"regimen/internal/scheduler"
	"regimen/internal/scheduler/occurrence"
	"regimen/internal/streak/cache"
	streakstore "regimen/internal/streak/store"
	"regimen/internal/subscription"
	httptransport "regimen/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// A malformed routine definition must abort before any timer starts.
	registry, err := routine.NewRegistry(routine.Catalog()...)
	if err != nil {
		log.Error("invalid routine catalogue", "error", err)
		os.Exit(1)
	}

	var (
		streaks       streakstore.Store
		subscriptions subscription.Store
		balances      ledger.Store
		occurrences   occurrence.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		streaks = streakstore.NewPostgres(db, cfg.Timezone)
		subscriptions = subscription.NewPostgres(db)
		balances = ledger.NewPostgres(db)
		occurrences = occurrence.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		streaks = streakstore.NewInMemory(cfg.Timezone)
		subscriptions = subscription.NewInMemory()
		balances = ledger.NewInMemory()
		occurrences = occurrence.NewInMemory()
	}

	m := metrics.New()
	engineOpts := []engine.Option{
		engine.WithMetrics(m),
		engine.WithLogger(log),
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		engineOpts = append(engineOpts,
			engine.WithSummaryCache(cache.NewRedis(redisClient.Client, cfg.SummaryCacheTTL)))
	}

	eng, err := engine.New(registry, streaks, subscriptions, balances, cfg.Timezone, engineOpts...)
	if err != nil {
		log.Error("build engine", "error", err)
		os.Exit(1)
	}

	sched, err := scheduler.New(registry, eng, occurrences, cfg.Timezone,
		scheduler.WithLogger(log),
		scheduler.WithMisfireGrace(cfg.MisfireGrace),
	)
	if err != nil {
		log.Error("build scheduler", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(eng, httptransport.RouterConfig{
		AdminToken:     cfg.AdminToken,
		RulesChannelID: cfg.RulesChannelID,
		RulesMessageID: cfg.RulesMessageID,
	}, log)
	router := httptransport.NewRouter(handler)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting regimen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sched.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
