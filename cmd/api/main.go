package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/config"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/httpapi"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/logging"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/probe"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/registry"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/csvfile"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/postgres"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/scan"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var store repo.HistoryStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(context.Background(), cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		store = pg
	} else {
		store = csvfile.New(cfg.HistoryFile)
	}

	reg := registry.New(cfg.EndpointsFile)
	scanner := scan.NewScanner(probe.NewHTTPChecker(), cfg.MaxConcurrent)
	api := httpapi.NewServer(logger, reg, store, scanner)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
