package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/baxromumarov/geode/internal/ai"
	"github.com/baxromumarov/geode/internal/api"
	"github.com/baxromumarov/geode/internal/config"
	"github.com/baxromumarov/geode/internal/core"
	"github.com/baxromumarov/geode/internal/httpx"
	"github.com/baxromumarov/geode/internal/web"
)

func main() {
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Mock mode when no credential is configured
	aiClient := ai.NewClient(cfg)

	fetcher := httpx.NewCollyFetcher(cfg.UserAgent, cfg.FetchTimeout, cfg.RespectRobots)
	geodeService := core.NewGeodeService(fetcher, aiClient, cfg.MaxTextLength)

	page := web.NewHandler(web.NewAPIClient(cfg.APIURL, nil))
	srv := api.NewServer(geodeService, page)

	slog.Info("starting server", "port", cfg.Port, "provider", aiClient.Provider())
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
