package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"
	"github.com/vadimbarashkov/microservices/internal/app"
	"github.com/vadimbarashkov/microservices/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env file", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := httplog.NewLogger("microservices", httplog.Options{
		JSON:             cfg.Env != config.EnvDev,
		Concise:          cfg.Env == config.EnvDev,
		LogLevel:         cfg.Log.SlogLevel(),
		MessageFieldName: "message",
	})

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("app stopped with error", "err", err)
		os.Exit(1)
	}
}
