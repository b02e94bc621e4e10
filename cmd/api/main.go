package main

import (
	"context"
	"time"

	"go-hrdocs/internal/app"
	"go-hrdocs/internal/bootstrap"
	"go-hrdocs/internal/config"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.Name+"-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()

	infra, err := app.NewInfra(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("build infra failed", zap.Error(err))
	}

	router, err := app.NewRouter(infra, log)
	if err != nil {
		log.Fatal("build router failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		router,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		infra.Audit,
		infra.Closers()...,
	)
}
