package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peoplematching/internal/app"
	"peoplematching/internal/config"
	"peoplematching/internal/database"
	"peoplematching/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(app.Models()...); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := app.NewStorage(ctx, cfg)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           app.NewRouter(cfg, db, st, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.ServerAddr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
