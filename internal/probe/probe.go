package probe

import (
	"context"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// Checker performs a single probe of one endpoint. Implementations never
// return an error: every failure mode is captured inside the CheckResult so
// the caller can aggregate a batch uniformly.
type Checker interface {
	Check(ctx context.Context, ep domain.Endpoint) domain.CheckResult
}
