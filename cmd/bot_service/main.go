package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MorningZephyr/zhen-bot/internal/bot_service/api"
	"github.com/MorningZephyr/zhen-bot/internal/bot_service/service"
	"github.com/MorningZephyr/zhen-bot/internal/config"
	"github.com/MorningZephyr/zhen-bot/internal/database/kafka"
	"github.com/MorningZephyr/zhen-bot/internal/database/mongo"
	"github.com/MorningZephyr/zhen-bot/internal/database/redis"
	"github.com/MorningZephyr/zhen-bot/internal/llm"
	"github.com/MorningZephyr/zhen-bot/internal/profile"
	"github.com/MorningZephyr/zhen-bot/internal/profile/extractor"
	"github.com/MorningZephyr/zhen-bot/internal/profile/representer"
	"github.com/MorningZephyr/zhen-bot/internal/profile/store"
	"github.com/MorningZephyr/zhen-bot/pkg/logger"
	"github.com/MorningZephyr/zhen-bot/pkg/ratelimiter"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("bot_service", "", "")

	ctx := context.Background()

	// Initialize the session store backend. Each configured backend also
	// contributes its health probe to the /healthz endpoint.
	health := make(map[string]api.HealthCheckFunc)
	var sessions store.SessionStore
	switch cfg.Storage.Backend {
	case "redis":
		redisClient, err := redis.GetClient(&cfg.Databases.Redis)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
		defer redis.Close()
		sessions = store.NewRedisStore(redisClient)
		health["redis"] = redis.HealthCheck
	case "mongo":
		mongoClient, err := mongo.GetClient(&cfg.Databases.MongoDB)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
		defer mongo.Close(ctx)
		sessions = store.NewMongoStore(mongoClient.Database(cfg.Databases.MongoDB.Database), "profiles")
		health["mongodb"] = mongo.HealthCheck
	default:
		appLogger.Warn("no persistent storage backend configured, using in-memory store")
		sessions = store.NewMemoryStore()
	}

	// Initialize the optional Kafka audit publisher
	var audit profile.AuditSink
	if cfg.Databases.Kafka.Enabled {
		kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
		publisher := kafka.NewAuditPublisher(kafkaClient)
		defer publisher.Close()
		audit = publisher
		health["kafka"] = kafkaClient.HealthCheck
	}

	// Initialize the LLM client, with an optional circuit breaker
	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	if cfg.CircuitBreaker.Enabled {
		timeout, err := time.ParseDuration(cfg.CircuitBreaker.Timeout)
		if err != nil {
			timeout = 30 * time.Second
		}
		llmClient = llm.WithCircuitBreaker(llmClient,
			cfg.CircuitBreaker.FailureThreshold, cfg.CircuitBreaker.SuccessThreshold, timeout)
	}

	// Initialize dependencies (Engine -> Service -> Handler)
	engine := profile.NewEngine(sessions, extractor.NewLlmExtractor(llmClient), cfg.App.Name, appLogger, audit)
	botService := service.NewService(engine, representer.New(llmClient), appLogger)
	apiHandler := api.NewHandler(botService, "bot_service", health)
	appLogger.Info("Dependencies injected")

	// Setup the Gin router with an optional rate limiter
	var limiter ratelimiter.RateLimiter
	if cfg.RateLimiter.Enabled {
		limiter = ratelimiter.New(cfg.RateLimiter.Algorithm, cfg.RateLimiter.Rate, cfg.RateLimiter.Capacity)
	}
	router := api.SetupRouter(apiHandler, cfg.Auth.JwtSecret, limiter)
	appLogger.Info("Router setup completed")

	serverAddress := cfg.Server.Address
	if serverAddress == "" {
		serverAddress = ":8080"
	}
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting server on " + serverAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err.Error())
		}
	}()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown: " + err.Error())
	}

	appLogger.Info("Bot service stopped")
}
