package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/config"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/logging"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/probe"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/registry"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/render"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/csvfile"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/postgres"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/scan"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()

	var (
		app        = kingpin.New("endpoint-monitor", "Check availability and response latency of configured HTTP endpoints.")
		configPath = app.Flag("config", "Path to the endpoints file").Default(cfg.EndpointsFile).String()

		cadd        = app.Command("add-endpoint", "Add an endpoint to the configuration")
		caddName    = cadd.Arg("name", "Name of the endpoint").Required().String()
		caddURL     = cadd.Arg("url", "URL of the endpoint").Required().String()
		caddTimeout = cadd.Flag("timeout", "Per-check timeout in seconds").Default("10").Int()

		cfetch          = app.Command("fetch", "Scan configured endpoints once")
		cfetchEndpoints = cfetch.Flag("endpoints", "Specific endpoints to scan (repeatable)").Strings()
		cfetchOutput    = cfetch.Flag("output", "Print the scan results").Bool()

		clive          = app.Command("live", "Continuously scan endpoints at a fixed interval")
		cliveInterval  = clive.Flag("interval", "Polling interval, e.g. 30s or 5m").Default(cfg.CheckInterval.String()).Duration()
		cliveEndpoints = clive.Flag("endpoints", "Specific endpoints to scan (repeatable)").Strings()
		cliveOutput    = clive.Flag("output", "Print each batch as it completes").Bool()

		chist          = app.Command("history", "Show the recorded check history")
		chistEndpoints = chist.Flag("endpoints", "Show history for specific endpoints only (repeatable)").Strings()
	)

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	reg := registry.New(*configPath)

	switch cmd {
	case cadd.FullCommand():
		if err := reg.Add(*caddName, *caddURL, *caddTimeout); err != nil {
			return err
		}
		fmt.Printf("Added endpoint: %s (%s) with timeout %ds\n", *caddName, *caddURL, *caddTimeout)
		return nil

	case cfetch.FullCommand():
		return fetchOnce(cfg, reg, *cfetchEndpoints, *cfetchOutput)

	case clive.FullCommand():
		return live(cfg, reg, *cliveInterval, *cliveEndpoints, *cliveOutput)

	case chist.FullCommand():
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		results, err := store.Query(context.Background(), *chistEndpoints)
		if err != nil {
			return err
		}
		return render.NewTable(os.Stdout).Render(results)
	}
	return nil
}

func fetchOnce(cfg config.Config, reg *registry.Registry, names []string, output bool) error {
	eps, err := reg.Select(names)
	if err != nil {
		return err
	}
	if len(eps) == 0 {
		fmt.Println("No endpoints configured. Use 'add-endpoint' to add some.")
		return nil
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	batch := scan.NewScanner(probe.NewHTTPChecker(), cfg.MaxConcurrent).Scan(ctx, eps)
	if err := store.Append(ctx, batch); err != nil {
		return err
	}
	if output {
		return render.NewTable(os.Stdout).Render(batch)
	}
	return nil
}

func live(cfg config.Config, reg *registry.Registry, interval time.Duration, names []string, output bool) error {
	eps, err := reg.Select(names)
	if err != nil {
		return err
	}
	if len(eps) == 0 {
		fmt.Println("No endpoints configured. Use 'add-endpoint' to add some.")
		return nil
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var display scheduler.Display
	if output {
		display = render.NewTable(os.Stdout)
	}

	runner := scheduler.NewRunner(
		logger,
		scan.NewScanner(probe.NewHTTPChecker(), cfg.MaxConcurrent),
		store,
		eps,
		interval,
		display,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting live monitoring with interval %s. Press Ctrl+C to stop.\n", interval)
	if err := runner.Run(ctx); err != nil {
		return err
	}
	fmt.Println("Live monitoring stopped")
	return nil
}

// openStore picks Postgres when DATABASE_URL is set, the CSV file otherwise.
func openStore(cfg config.Config) (repo.HistoryStore, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(context.Background(), cfg.DatabaseURL, zap.NewNop())
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		return pg, pg.Close, nil
	}
	return csvfile.New(cfg.HistoryFile), func() {}, nil
}
