package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo"
)

var _ repo.HistoryStore = (*Store)(nil)

// Store is the Postgres-backed history adapter, for operators who want the
// history queryable with SQL instead of the default CSV file.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Append(ctx context.Context, results []domain.CheckResult) error {
	for _, r := range results {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO history
			   (endpoint_name, checked_at, status, status_code, latency_ms, error_message)
			 VALUES
			   ($1, $2, $3, $4, $5, $6)`,
			r.EndpointName, r.CheckedAt, string(r.Status), r.StatusCode, r.LatencyMS, r.Error,
		)
		if err != nil {
			return fmt.Errorf("insert result for %s: %w", r.EndpointName, err)
		}
	}
	return nil
}

func (s *Store) Query(ctx context.Context, names []string) ([]domain.CheckResult, error) {
	q := `SELECT endpoint_name, checked_at, status, status_code, latency_ms, error_message
	        FROM history`
	args := []any{}
	if len(names) > 0 {
		q += ` WHERE endpoint_name = ANY($1)`
		args = append(args, names)
	}
	q += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []domain.CheckResult
	for rows.Next() {
		var (
			r      domain.CheckResult
			status string
		)
		if err := rows.Scan(&r.EndpointName, &r.CheckedAt, &status, &r.StatusCode, &r.LatencyMS, &r.Error); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.Status = domain.Status(status)
		out = append(out, r)
	}
	return out, rows.Err()
}
