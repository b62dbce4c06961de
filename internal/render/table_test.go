package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

func TestTable_RendersOneRowPerResult(t *testing.T) {
	color.NoColor = true // keep assertions free of ANSI codes

	code := 200
	lat := 12.5
	results := []domain.CheckResult{
		{
			EndpointName: "api",
			CheckedAt:    time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			Status:       domain.StatusUp,
			StatusCode:   &code,
			LatencyMS:    &lat,
		},
		{
			EndpointName: "worker",
			CheckedAt:    time.Date(2026, 8, 20, 10, 0, 1, 0, time.UTC),
			Status:       domain.StatusError,
			Error:        "dial tcp: connection refused",
		},
	}

	var buf bytes.Buffer
	if err := NewTable(&buf).Render(results); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "ENDPOINT") || !strings.Contains(lines[0], "STATUS") {
		t.Fatalf("header missing: %q", lines[0])
	}
	if !strings.Contains(lines[1], "api") || !strings.Contains(lines[1], "UP") || !strings.Contains(lines[1], "200") {
		t.Fatalf("UP row wrong: %q", lines[1])
	}
	if !strings.Contains(lines[2], "worker") || !strings.Contains(lines[2], "ERROR") || !strings.Contains(lines[2], "connection refused") {
		t.Fatalf("ERROR row wrong: %q", lines[2])
	}
	// no response means no code and no latency
	if !strings.Contains(lines[2], "-") {
		t.Fatalf("want placeholder cells on ERROR row: %q", lines[2])
	}
}

func TestTable_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTable(&buf).Render(nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "no results") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}
