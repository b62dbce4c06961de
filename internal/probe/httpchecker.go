package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// HTTPChecker probes an endpoint with a single GET request bounded by the
// endpoint's own timeout. One attempt per call, no retries.
type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker() *HTTPChecker {
	return &HTTPChecker{Client: &http.Client{}}
}

func (h *HTTPChecker) Check(ctx context.Context, ep domain.Endpoint) domain.CheckResult {
	res := domain.CheckResult{
		EndpointName: ep.Name,
		CheckedAt:    time.Now().UTC(),
	}

	cctx, cancel := context.WithTimeout(ctx, ep.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		res.Status = domain.StatusError
		res.Error = err.Error()
		return res
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	if err != nil {
		// timeout, refused connection, DNS or TLS failure: no response,
		// so no status code and no latency
		res.Status = domain.StatusError
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	lat := time.Since(start).Seconds() * 1000
	code := resp.StatusCode
	res.LatencyMS = &lat
	res.StatusCode = &code
	if code >= 200 && code < 400 {
		res.Status = domain.StatusUp
	} else {
		res.Status = domain.StatusDown
		res.Error = resp.Status
	}
	return res
}

var _ Checker = (*HTTPChecker)(nil)
