package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"essay-scorer/internal/catalog"
	"essay-scorer/internal/config"
	apihttp "essay-scorer/internal/http"
	"essay-scorer/internal/llm"
	"essay-scorer/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	traitCatalog, err := catalog.FromPath(cfg.TraitCatalogPath)
	if err != nil {
		logger.Fatal("load trait catalog", zap.Error(err))
	}
	logger.Info("trait catalog loaded",
		zap.String("version", traitCatalog.Version),
		zap.Strings("traits", traitCatalog.Names()),
	)

	llmClient := llm.NewFromConfig(cfg, logger)
	evaluator := service.NewTraitEvaluator(llmClient, logger)
	evalSvc := service.NewEvaluationService(evaluator, traitCatalog, cfg.LLMModel, cfg.EvalTraitConcurrency, logger)

	limiter := service.NewMemoryRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)
		}
		cancel()
	}

	var jwtSvc *service.JWTService
	if cfg.JWTSecret != "" {
		jwtSvc = service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL)
	} else {
		logger.Warn("jwt secret not configured, /api is open")
	}

	evalHandler := apihttp.NewEvaluationHandler(logger, evalSvc, cfg.EvalTimeout)
	router := apihttp.NewRouter(logger, evalHandler, apihttp.RouterOptions{
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		RateLimiter:     limiter,
		JWT:             jwtSvc,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("model", cfg.LLMModel))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.EvalTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
