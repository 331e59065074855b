package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blog-service/internal/application/services"
	"blog-service/internal/config"
	"blog-service/internal/delivery/rest"
	"blog-service/internal/domain/catalog"
	"blog-service/internal/domain/consistency"
	"blog-service/internal/domain/repositories"
	"blog-service/internal/infrastructure"
	"blog-service/internal/infrastructure/db/memstore"
	"blog-service/internal/infrastructure/db/sqlstore"
	"blog-service/internal/infrastructure/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if err := run(cfg, stop); err != nil {
		log.Fatalf("Blog service failed: %v", err)
	}
	log.Println("Blog service stopped")
}

// run serves until stop fires or the listener fails. Stores and connections
// are closed before it returns on every path.
func run(cfg *config.Config, stop <-chan os.Signal) error {
	ctx := context.Background()

	store, idempotencyRepo, closeRedis, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()
	defer closeRedis()

	tagCatalog := catalog.New(cfg.TagVocabulary)
	if err := tagCatalog.Seed(ctx, store); err != nil {
		return fmt.Errorf("seed tag catalog: %w", err)
	}

	publisher, err := messaging.Connect(cfg.NatsURL)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Failed to close NATS connection: %v", err)
		}
	}()

	engine := consistency.NewEngine(consistency.WithCategoryImmutable(cfg.CategoryImmutable))
	userService := services.NewUserService(store, engine, idempotencyRepo, publisher)
	postService := services.NewPostService(store, engine, tagCatalog, idempotencyRepo, publisher)

	clientLimiter := infrastructure.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMaxRequests)
	defer clientLimiter.Stop()

	server := rest.NewServer(userService, postService, rest.Options{
		HandlerTimeout: cfg.HandlerTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		ClientLimiter:  clientLimiter,
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start(cfg.HTTPAddr)
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shut down HTTP server: %v", err)
	}
	return nil
}

// openStore builds the Entity Store and the idempotency backend for it. Redis
// takes precedence; otherwise the sql stores keep records in their own table
// and the memory store runs without idempotent replays.
func openStore(ctx context.Context, cfg *config.Config) (repositories.Store, repositories.IdempotencyRepository, func(), error) {
	var redisService *infrastructure.RedisService
	closeRedis := func() {}
	if cfg.RedisEnabled() {
		redisService = infrastructure.NewRedisService(ctx, infrastructure.RedisOptions{
			URL:      cfg.RedisURL,
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.IdempotencyTTL,
		})
		svc := redisService
		closeRedis = func() {
			if err := svc.Close(); err != nil {
				log.Printf("Failed to close Redis client: %v", err)
			}
		}
		if !redisService.Enabled() {
			redisService = nil
		}
	}

	if cfg.DBDriver == config.DriverMemory {
		store, err := memstore.Open(cfg.MemorySnapshotPath)
		if err != nil {
			closeRedis()
			return nil, nil, nil, err
		}
		if redisService != nil {
			return store, redisService, closeRedis, nil
		}
		log.Println("Idempotency keys are ignored: memory store without Redis")
		return store, nil, closeRedis, nil
	}

	db, err := sqlstore.Open(sqlstore.Options{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DatabaseURL,
		LogLevel: cfg.DBLogLevel,
	})
	if err != nil {
		closeRedis()
		return nil, nil, nil, err
	}
	log.Printf("Connected to %s database", cfg.DBDriver)

	store := sqlstore.NewStore(db)
	if redisService != nil {
		return store, redisService, closeRedis, nil
	}
	return store, sqlstore.NewIdempotencyRepository(db), closeRedis, nil
}
