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

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"debt-payoff/config"
	httpLayer "debt-payoff/http"
	"debt-payoff/repository"
	"debt-payoff/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
	serveCmd.Flags().String("store", config.StoreFile, "plan store: memory, file or redis")
	serveCmd.Flags().String("plans-dir", "plans", "directory for the file store")
	serveCmd.Flags().String("redis-addr", "", "redis address for the snapshot cache and redis store")
	serveCmd.Flags().String("redis-password", "", "redis password")
	serveCmd.Flags().Int("redis-db", 0, "redis database")
	serveCmd.Flags().Int("rate-limit", 60, "requests per client per window, 0 disables")
	serveCmd.Flags().Bool("trust-proxy", false, "key clients by X-Forwarded-For / X-Real-IP")
}

type stores struct {
	plans repository.PlanRepository
	cache repository.CacheRepository
	close func()
}

// openStores picks the plan store and the snapshot cache. Redis backs the
// cache whenever an address is configured, whatever the plan store; otherwise
// a bounded in-process cache honours the same TTL.
func openStores(ctx context.Context, cfg *config.Config, logger *log.Logger) (stores, error) {
	s := stores{
		cache: repository.NewCacheRepositoryMemory(cfg.CacheEntries, cfg.CacheTTL),
		close: func() {},
	}

	if cfg.Redis.Addr != "" {
		client, err := repository.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return stores{}, err
		}
		s.cache = repository.NewRedisCache(client, cfg.CacheTTL)
		s.close = func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis", "err", err)
			}
		}
		logger.Info("using redis snapshot cache", "addr", cfg.Redis.Addr)

		if cfg.Store == config.StoreRedis {
			s.plans = repository.NewRedisPlanRepository(client)
		}
	}

	switch cfg.Store {
	case config.StoreMemory:
		s.plans = repository.NewPlanRepositoryMemory()
	case config.StoreFile:
		plans, err := repository.NewFilePlanRepository(cfg.PlansDir, cfg.Passphrase())
		if err != nil {
			s.close()
			return stores{}, err
		}
		s.plans = plans
	}

	logger.Info("plan store ready", "store", cfg.Store)
	return s, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	st, err := openStores(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	planService := service.NewPlanService(st.plans, st.cache, logger, cfg.DefaultHorizon)
	planHandler := httpLayer.NewPlanHandler(planService, logger)

	var rateLimiter *httpLayer.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		rateLimiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
		defer rateLimiter.Stop()
	}

	router := httpLayer.NewRouter(planHandler, logger, httpLayer.RouterOptions{
		Limiter:    rateLimiter,
		TrustProxy: cfg.TrustProxy,
	})

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
