package scan

import (
	"context"
	"sync"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/probe"
)

// Scanner fans a batch of checks out over a bounded number of goroutines
// and fans the results back in.
type Scanner struct {
	Checker     probe.Checker
	Concurrency int
}

func NewScanner(checker probe.Checker, concurrency int) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scanner{Checker: checker, Concurrency: concurrency}
}

// Scan checks every endpoint once and returns one result per endpoint, in
// the same order as the input. It returns only after every check has
// completed or run out its own timeout; a failing endpoint never aborts the
// others, since the checker captures all failures into its result.
func (s *Scanner) Scan(ctx context.Context, endpoints []domain.Endpoint) []domain.CheckResult {
	results := make([]domain.CheckResult, len(endpoints))

	sem := make(chan struct{}, s.Concurrency)
	var wg sync.WaitGroup

	for i, ep := range endpoints {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, ep domain.Endpoint) {
			defer func() { <-sem }()
			defer wg.Done()
			results[i] = s.Checker.Check(ctx, ep)
		}(i, ep)
	}

	wg.Wait()
	return results
}
