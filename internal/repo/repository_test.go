package repo_test

import (
	"testing"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/csvfile"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/memory"
	pg "github.com/joaoloboguerraneto/endpoint-monitor/internal/repo/postgres"
)

// Compile-time interface satisfaction checks.
// Using external test package avoids import cycle.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.HistoryStore = memory.New()
	var _ repo.HistoryStore = csvfile.New("history.csv")
	var _ repo.HistoryStore = (*pg.Store)(nil)
}
