package repo

import (
	"context"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// HistoryStore is the single source of truth for past check results.
//
// Append writes the batch in the given order. There is no all-or-nothing
// guarantee across a batch, but each individual record write is atomic.
// Query returns all stored records in insertion order; a non-empty names
// filter restricts the result to those endpoints.
type HistoryStore interface {
	Append(ctx context.Context, results []domain.CheckResult) error
	Query(ctx context.Context, names []string) ([]domain.CheckResult, error)
}
