package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"microdose-api/internal/config"
	"microdose-api/internal/db"
	apihttp "microdose-api/internal/http"
	"microdose-api/internal/repository"
	"microdose-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	doseRepo := repository.NewPgDoseResultRepository(pool)
	protocolRepo := repository.NewPgProtocolRepository(pool)
	journalRepo := repository.NewPgJournalRepository(pool)

	// Sin redis el servicio sigue funcionando con variantes en memoria.
	limiter := service.NewCalcRateLimiter(time.Minute, cfg.CalcRateLimitPerMinute)
	reminderQueue := service.NewMemoryReminderQueue()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisCalcRateLimiter(redisClient, time.Minute, cfg.CalcRateLimitPerMinute)
			reminderQueue = service.NewRedisReminderQueue(redisClient)
		}
		cancel()
	}

	userSvc := service.NewUserService(logger, userRepo)
	doseSvc := service.NewDoseService(logger, doseRepo, limiter)
	protocolSvc := service.NewProtocolService(logger, protocolRepo, reminderQueue)
	journalSvc := service.NewJournalService(logger, journalRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc)
	doseHandler := apihttp.NewDoseHandler(logger, doseSvc)
	protocolHandler := apihttp.NewProtocolHandler(logger, protocolSvc)
	journalHandler := apihttp.NewJournalHandler(logger, journalSvc)

	router := apihttp.NewRouter(logger, userHandler, doseHandler, protocolHandler, journalHandler,
		func(c *gin.Context) error {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			return db.Ping(pingCtx, pool)
		},
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
