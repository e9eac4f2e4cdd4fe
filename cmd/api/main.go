package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/planetaketo/forum-service/internal/analytics"
	"github.com/planetaketo/forum-service/internal/config"
	"github.com/planetaketo/forum-service/internal/database"
	"github.com/planetaketo/forum-service/internal/handlers"
	"github.com/planetaketo/forum-service/internal/server"
	"github.com/planetaketo/forum-service/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar().Panicf("failed to load configuration: %s", err.Error())
	}

	db, err := database.New(cfg.DB)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()
	logger.Info("Successfully connected to PostgreSQL")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		// Analytics is the only Redis consumer; the forum stays up without it.
		logger.Sugar().Warnf("redis unavailable, analytics degraded: %s", err.Error())
	} else {
		logger.Info("Successfully connected to Redis")
	}

	st := store.New(db.GetDB(), logger)
	recorder := analytics.NewRecorder(rdb, analytics.DefaultCap, logger)
	handler := handlers.NewHandler(st, recorder)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReconcileSpec, func() {
		if err := st.ReconcileCounters(context.Background()); err != nil {
			logger.Warn("counter reconciliation failed", zap.Error(err))
		}
	}); err != nil {
		logger.Sugar().Panicf("failed to schedule reconciliation: %s", err.Error())
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(cfg, db, handler)

	go func() {
		logger.Sugar().Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %s", err.Error())
	}
}
