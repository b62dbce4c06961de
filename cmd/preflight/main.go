// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/config"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/registry"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	if strings.TrimSpace(cfg.Addr) == "" {
		warn("API_ADDR is empty; the default bind address will be used.")
	} else {
		ok("API_ADDR=" + cfg.Addr)
	}

	if cfg.DatabaseURL == "" {
		warn("DATABASE_URL empty — history goes to the CSV file " + cfg.HistoryFile)
	} else {
		ok("DATABASE_URL present")
	}

	eps, err := registry.New(cfg.EndpointsFile).Load()
	if err != nil {
		fail("endpoints file unreadable: " + err.Error())
	}
	if len(eps) == 0 {
		warn("no endpoints configured in " + cfg.EndpointsFile + " — scans will be empty")
	} else {
		ok(fmt.Sprintf("%d endpoint(s) configured", len(eps)))
	}

	// History must land somewhere writable before the first scan runs.
	histDir := filepath.Dir(cfg.HistoryFile)
	if err := os.MkdirAll(histDir, 0o755); err != nil {
		fail("history directory not writable: " + err.Error())
	}
	probe := filepath.Join(histDir, ".preflight")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		fail("history directory not writable: " + err.Error())
	}
	_ = os.Remove(probe)
	ok("history directory writable: " + histDir)

	ok("preflight passed")
}
