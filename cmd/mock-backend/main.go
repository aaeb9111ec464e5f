package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/servicepro/servicepro-client/internal/mockapi"
	"github.com/servicepro/servicepro-client/pkg/config"
	"github.com/servicepro/servicepro-client/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "mock-backend"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "mock-backend",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	mock := mockapi.New(mockapi.Options{
		JWTSecret: cfg.Mock.JWTSecret,
		TokenTTL:  cfg.Mock.TokenTTL,
		Logger:    logg,
	})
	mock.Seed()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Mock.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting mock backend")

	server := &http.Server{
		Addr:    addr,
		Handler: mock.Handler(),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "mock backend stopped unexpectedly", err)
		os.Exit(1)
	}
}
