// Package main is the entry point for the collection-search-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/config"
	"collection-search-service/internal/domain"
	"collection-search-service/internal/infra/elastic"
	rediscache "collection-search-service/internal/infra/redis"
	"collection-search-service/internal/job"
	"collection-search-service/internal/logger"
	"collection-search-service/internal/transport/httpserver"
	"collection-search-service/internal/validator"
	"collection-search-service/pkg/locker"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting collection-search-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Document store client
	store := elastic.NewStore(
		elastic.Config{
			BaseURL:  cfg.Store.BaseURL,
			Username: cfg.Store.Username,
			Password: cfg.Store.Password,
			Timeout:  cfg.Store.Timeout,
			Retry: elastic.RetryConfig{
				MaxAttempts: cfg.Store.Retry.MaxAttempts,
				WaitTime:    cfg.Store.Retry.WaitTime,
				MaxWaitTime: cfg.Store.Retry.MaxWaitTime,
			},
			CB: elastic.CBConfig{
				MaxRequests:  cfg.Store.CB.MaxRequests,
				Interval:     cfg.Store.CB.Interval,
				Timeout:      cfg.Store.CB.Timeout,
				FailureRatio: cfg.Store.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	ctx := context.Background()
	redisClient, err := rediscache.NewClient(ctx, rediscache.Config{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr()))

	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, cfg.Cache.KeyPrefix, log.Logger)
		log.Info("cache enabled",
			zap.Duration("search_ttl", cfg.Cache.SearchTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	caps := domain.DefaultCapabilities()

	termSvc := service.NewTermService(store, log.Logger)
	searchSvc := service.NewSearchService(store, caps, termSvc, cache, cfg.Cache.SearchTTL, log.Logger)
	documentSvc := service.NewDocumentService(store, log.Logger)
	exportSvc := service.NewExportService(store, log.Logger)

	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	v := validator.New()

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			AppName:   cfg.App.Name,
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
		},
		httpserver.Services{
			Search:   searchSvc,
			Document: documentSvc,
			Term:     termSvc,
			Export:   exportSvc,
		},
		store,
		cache,
		v,
		log.Logger,
	)

	// Periodic stats refresh only makes sense when there is a cache to
	// publish the snapshot into.
	var refresher *job.StatsRefresher
	if cache != nil {
		refresher = job.NewStatsRefresher(
			exportSvc,
			cache,
			job.StatsConfig{
				Interval:  cfg.Stats.Interval,
				Timeout:   cfg.Stats.Timeout,
				TTL:       cfg.Cache.StatsTTL,
				OnStartup: cfg.Stats.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		refresher.Start(cfg.Stats.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if refresher != nil {
			refresher.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
