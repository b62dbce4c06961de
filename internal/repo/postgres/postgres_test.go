package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// Minimal schema so the test can run on a fresh DB/volume.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS history (
  id            BIGSERIAL PRIMARY KEY,
  endpoint_name TEXT NOT NULL,
  checked_at    TIMESTAMPTZ NOT NULL,
  status        TEXT NOT NULL,
  status_code   INTEGER NULL,
  latency_ms    DOUBLE PRECISION NULL,
  error_message TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_history_name_time ON history (endpoint_name, checked_at DESC);
`

func ensureSchema(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	defer pool.Close()
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
}

func TestPostgresStore_AppendAndQuery(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration test")
	}

	ensureSchema(t, dsn)

	ctx := context.Background()
	store, err := New(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("New store: %v", err)
	}
	defer store.Close()

	// Unique names per run so reruns against the same DB stay isolated.
	nameA := fmt.Sprintf("a-%d", time.Now().UTC().UnixNano())
	nameB := fmt.Sprintf("b-%d", time.Now().UTC().UnixNano())

	code := 200
	lat := 42.0
	batch := []domain.CheckResult{
		{EndpointName: nameA, CheckedAt: time.Now().UTC(), Status: domain.StatusUp, StatusCode: &code, LatencyMS: &lat},
		{EndpointName: nameB, CheckedAt: time.Now().UTC(), Status: domain.StatusError, Error: "timeout"},
	}
	if err := store.Append(ctx, batch); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.Query(ctx, []string{nameA})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 record for %s, got %d", nameA, len(got))
	}
	r := got[0]
	if r.Status != domain.StatusUp || r.StatusCode == nil || *r.StatusCode != 200 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.LatencyMS == nil || *r.LatencyMS != 42.0 {
		t.Fatalf("latency lost: %+v", r.LatencyMS)
	}
}
