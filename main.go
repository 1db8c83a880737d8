package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"refi-compare/config"
	httpLayer "refi-compare/http"
	"refi-compare/repository"
	"refi-compare/service"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	var cache repository.CacheRepository
	if cfg.Redis.Enabled {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Error connecting to redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisCache.Close()
		cache = redisCache
		log.Printf("Snapshots stored in redis at %s", cfg.Redis.Addr)
	} else {
		cache = repository.NewMockCache()
		log.Println("Redis disabled, snapshots kept in memory")
	}

	snapshots := repository.NewSnapshotRepository(cache, cfg.Snapshot.Key, cfg.Snapshot.TTL)
	aiService := service.NewAIService(cfg.AI.APIKey, cfg.AI.URL, cfg.AI.Model, cfg.AI.Timeout)

	loanService := service.NewLoanService(snapshots, aiService, cfg.Comparison.InterestReductionGoal)
	loanHandler := httpLayer.NewLoanHandler(loanService)

	termRecommendationService := service.NewTermRecommendationService(loanService, aiService)
	termRecommendationHandler := httpLayer.NewTermRecommendationHandler(termRecommendationService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(loanHandler, termRecommendationHandler, rateLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Refinance API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
