package main

import (
	"go-hrdocs/internal/app"
	"go-hrdocs/internal/config"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.Name+"-worker")
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
