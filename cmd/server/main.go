package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingflow-service/internal/infrastructure/config"
	"bookingflow-service/internal/infrastructure/persistence"
	"bookingflow-service/internal/interface/repository"
	"bookingflow-service/internal/interface/rest"
	"bookingflow-service/internal/usecase"
	"bookingflow-service/pkg/logger"
	"bookingflow-service/pkg/metrics"

	domainRepo "bookingflow-service/internal/domain/repository"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Bookingflow Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("bookingflow")

	// Hold records go to MongoDB when configured, otherwise stay in memory
	var mongoClient *mongo.Client
	var holdRecords domainRepo.HoldRecordRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword, cfg.MongoConnectTimeout)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		holdRecords = repository.NewMongoHoldRecordRepository(db)
	} else {
		log.Info("MongoDB not configured, keeping hold records in memory")
		holdRecords = repository.NewMemoryHoldRecordRepository()
	}

	// The shared response cache works the same way: Redis when configured,
	// in-process otherwise
	var redisClient *redis.Client
	var responseCache domainRepo.ResponseCache
	if cfg.RedisAddr != "" {
		log.Info("Connecting to Redis", "addr", cfg.RedisAddr)
		redisClient, err = persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		responseCache = repository.NewRedisResponseCache(redisClient)
	} else {
		log.Info("Redis not configured, using in-process response cache")
		responseCache = repository.NewMemoryResponseCache()
	}

	// Set up the booking backend client and the flow orchestrator
	bookingAPI := repository.NewBookingAPIClient(cfg, log, m)
	flow := usecase.NewBookingFlow(bookingAPI, responseCache, holdRecords, cfg.CacheTTL, log, m)

	// Session manager with idle expiry
	sessions := usecase.NewSessionManager(cfg.SessionTTL, log, m)
	sessions.StartSweeper(ctx, cfg.SweepInterval)

	// HTTP routes
	mux := http.NewServeMux()
	rest.NewHandler(sessions, flow, cfg.DefaultCurrency, log, m).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", "error", err)
		}
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Bookingflow Service stopped")
}
