package domain

import "time"

// Status classifies the outcome of a single check.
//
// UP means the HTTP exchange completed with a status code in [200,400).
// DOWN means the exchange completed with a code outside that range.
// ERROR means the probe never completed: malformed URL, DNS failure, TLS
// failure, timeout, or connection refused. Every transport-level failure
// classifies as ERROR; DOWN is reserved for servers that answered.
type Status string

const (
	StatusUp    Status = "UP"
	StatusDown  Status = "DOWN"
	StatusError Status = "ERROR"
)

// Endpoint is the unit of monitoring: a named URL with its own timeout.
// The name is the identity; an endpoint is immutable once loaded into a scan.
type Endpoint struct {
	Name           string `json:"name" yaml:"-"`
	URL            string `json:"url" yaml:"url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

func (e Endpoint) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// CheckResult is one observation of one endpoint. The checker creates it
// exactly once per attempt and it is never mutated afterwards; history
// stores it append-only.
type CheckResult struct {
	EndpointName string    `json:"endpoint_name"`
	CheckedAt    time.Time `json:"checked_at"`
	Status       Status    `json:"status"`
	StatusCode   *int      `json:"status_code"` // nil when the probe never got a response
	LatencyMS    *float64  `json:"latency_ms"`  // nil when no request completed
	Error        string    `json:"error,omitempty"`
}
