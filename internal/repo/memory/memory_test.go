package memory

import (
	"context"
	"testing"
	"time"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

func result(name string, status domain.Status) domain.CheckResult {
	return domain.CheckResult{
		EndpointName: name,
		Status:       status,
		CheckedAt:    time.Now().UTC(),
	}
}

func TestMemoryStore_AppendThenQueryAll(t *testing.T) {
	ctx := context.Background()
	s := New()

	batch := []domain.CheckResult{
		result("a", domain.StatusUp),
		result("b", domain.StatusDown),
	}
	if err := s.Append(ctx, batch); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, []domain.CheckResult{result("a", domain.StatusError)}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	all, err := s.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 records, got %d", len(all))
	}
	// insertion order preserved
	if all[0].EndpointName != "a" || all[1].EndpointName != "b" || all[2].EndpointName != "a" {
		t.Fatalf("order lost: %+v", all)
	}
}

func TestMemoryStore_QueryFilter(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.Append(ctx, []domain.CheckResult{
		result("a", domain.StatusUp),
		result("b", domain.StatusUp),
		result("a", domain.StatusDown),
	})

	got, err := s.Query(ctx, []string{"a"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 records for a, got %d", len(got))
	}
	for _, r := range got {
		if r.EndpointName != "a" {
			t.Fatalf("filter leaked record for %q", r.EndpointName)
		}
	}
	if got[0].Status != domain.StatusUp || got[1].Status != domain.StatusDown {
		t.Fatalf("original order lost: %+v", got)
	}
}
