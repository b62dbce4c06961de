package scan

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// fake checker: UP unless the endpoint name says otherwise
type fakeChecker struct {
	delay time.Duration
	calls atomic.Int64
}

func (f *fakeChecker) Check(ctx context.Context, ep domain.Endpoint) domain.CheckResult {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	r := domain.CheckResult{EndpointName: ep.Name, CheckedAt: time.Now().UTC()}
	if ep.Name == "bad" {
		r.Status = domain.StatusError
		r.Error = "no route to host"
		return r
	}
	code := 200
	lat := 1.0
	r.Status = domain.StatusUp
	r.StatusCode = &code
	r.LatencyMS = &lat
	return r
}

func endpoints(names ...string) []domain.Endpoint {
	out := make([]domain.Endpoint, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Endpoint{Name: n, URL: "https://" + n + ".example.com", TimeoutSeconds: 1})
	}
	return out
}

func TestScanner_OneFailureNeverDropsTheOthers(t *testing.T) {
	chk := &fakeChecker{}
	s := NewScanner(chk, 4)

	got := s.Scan(context.Background(), endpoints("a", "bad", "c", "d"))
	if len(got) != 4 {
		t.Fatalf("want 4 results, got %d", len(got))
	}
	if chk.calls.Load() != 4 {
		t.Fatalf("want 4 checker calls, got %d", chk.calls.Load())
	}
	for i, name := range []string{"a", "bad", "c", "d"} {
		if got[i].EndpointName != name {
			t.Fatalf("order lost at %d: want %s got %s", i, name, got[i].EndpointName)
		}
	}
	if got[1].Status != domain.StatusError {
		t.Fatalf("bad endpoint should be ERROR: %+v", got[1])
	}
	for _, i := range []int{0, 2, 3} {
		if got[i].Status != domain.StatusUp {
			t.Fatalf("healthy endpoint corrupted by neighbor failure: %+v", got[i])
		}
	}
}

func TestScanner_OrderPreservedUnderConcurrency(t *testing.T) {
	chk := &fakeChecker{delay: 5 * time.Millisecond}
	s := NewScanner(chk, 8)

	names := []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8"}
	got := s.Scan(context.Background(), endpoints(names...))
	for i, name := range names {
		if got[i].EndpointName != name {
			t.Fatalf("order lost at %d: want %s got %s", i, name, got[i].EndpointName)
		}
	}
}

func TestScanner_ConcurrencyReducesBatchTime(t *testing.T) {
	chk := &fakeChecker{delay: 30 * time.Millisecond}
	s := NewScanner(chk, 8)

	start := time.Now()
	s.Scan(context.Background(), endpoints("a", "b", "c", "d", "e", "f", "g", "h"))
	elapsed := time.Since(start)

	// 8 sequential checks would take >= 240ms
	if elapsed > 150*time.Millisecond {
		t.Fatalf("scan looks sequential: %v", elapsed)
	}
}

func TestScanner_EmptyBatch(t *testing.T) {
	s := NewScanner(&fakeChecker{}, 4)
	got := s.Scan(context.Background(), nil)
	if len(got) != 0 {
		t.Fatalf("want empty batch, got %+v", got)
	}
}
