package memory

import (
	"context"
	"sync"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// Store keeps history in process memory. It exists for tests and for API
// runs without a durable backend; nothing in it survives a restart.
type Store struct {
	mu      sync.RWMutex
	results []domain.CheckResult
}

func New() *Store {
	return &Store{results: make([]domain.CheckResult, 0, 128)}
}

func (m *Store) Append(ctx context.Context, results []domain.CheckResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, results...)
	return nil
}

func (m *Store) Query(ctx context.Context, names []string) ([]domain.CheckResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(names) == 0 {
		out := make([]domain.CheckResult, len(m.results))
		copy(out, m.results)
		return out, nil
	}

	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	var out []domain.CheckResult
	for _, r := range m.results {
		if _, ok := want[r.EndpointName]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}
