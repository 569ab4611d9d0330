package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/ronincompetition/ronin/internal/auth"
	"github.com/ronincompetition/ronin/internal/cache"
	"github.com/ronincompetition/ronin/internal/config"
	"github.com/ronincompetition/ronin/internal/ronin"
	"github.com/ronincompetition/ronin/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	a, err := auth.NewAuth(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
	if err != nil {
		return fmt.Errorf("setting up auth: %w", err)
	}

	api := ronin.NewHTTPClient(cfg.RemoteAPIURL)
	srv := server.NewServer(a, api, cache.NewRedisCache(rdb))

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	slog.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, srv)
}
