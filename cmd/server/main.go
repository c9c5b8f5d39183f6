package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/config"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/api/handler"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/api/router"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/database"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/jwt"
	applogger "github.com/PeterLoonenMetis/eduview-sub000/pkg/logger"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config/config.yaml)")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting eduview",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("obtaining sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("running migrations", zap.Error(err))
	}

	// 4. redis is optional: without it token revocation and rate limiting are off
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token revocation and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. jwt
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. repository -> service -> handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger)
	h := handler.NewHandler(svc)

	// 7. routes
	engine := router.Setup(cfg, h, jwtMgr, rdb, db, logger)

	// 8. http server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("closing database", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("closing redis", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}
