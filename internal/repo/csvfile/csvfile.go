// Package csvfile persists check history as an append-only CSV file so
// external tools can tail or parse it without the monitor running.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

// Column order is the stable on-disk contract.
var header = []string{"endpoint_name", "timestamp", "status", "status_code", "latency_ms", "error_message"}

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// Append writes each result as its own CSV row. The file is opened with
// O_APPEND and every record goes out in a single Write call, so records
// stay whole even with a concurrent writer (another process tailing its
// own appends). There is no batch-level transaction: an interrupt between
// records leaves the earlier ones in place.
func (s *Store) Append(ctx context.Context, results []domain.CheckResult) error {
	if len(results) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat history: %w", err)
	}
	if st.Size() == 0 {
		if err := writeRow(f, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, r := range results {
		if err := writeRow(f, encode(r)); err != nil {
			return fmt.Errorf("append record for %s: %w", r.EndpointName, err)
		}
	}
	return nil
}

func (s *Store) Query(ctx context.Context, names []string) ([]domain.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var want map[string]struct{}
	if len(names) > 0 {
		want = make(map[string]struct{}, len(names))
		for _, n := range names {
			want[n] = struct{}{}
		}
	}

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = len(header)
	var out []domain.CheckResult
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		// two processes racing on a fresh file can both win the size==0
		// check and write a header; skip header rows wherever they sit
		if isHeader(rec) {
			continue
		}
		r, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("parse history row: %w", err)
		}
		if want != nil {
			if _, ok := want[r.EndpointName]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// writeRow encodes one row into a buffer and flushes it with a single
// Write so the record hits the file atomically.
func writeRow(f *os.File, fields []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	_, err := f.Write(buf.Bytes())
	return err
}

func isHeader(rec []string) bool {
	for i := range header {
		if rec[i] != header[i] {
			return false
		}
	}
	return true
}

func encode(r domain.CheckResult) []string {
	code := ""
	if r.StatusCode != nil {
		code = strconv.Itoa(*r.StatusCode)
	}
	lat := ""
	if r.LatencyMS != nil {
		lat = strconv.FormatFloat(*r.LatencyMS, 'f', 2, 64)
	}
	return []string{
		r.EndpointName,
		r.CheckedAt.UTC().Format(time.RFC3339Nano),
		string(r.Status),
		code,
		lat,
		r.Error,
	}
}

func decode(rec []string) (domain.CheckResult, error) {
	ts, err := time.Parse(time.RFC3339Nano, rec[1])
	if err != nil {
		return domain.CheckResult{}, err
	}
	r := domain.CheckResult{
		EndpointName: rec[0],
		CheckedAt:    ts,
		Status:       domain.Status(rec[2]),
		Error:        rec[5],
	}
	if rec[3] != "" {
		code, err := strconv.Atoi(rec[3])
		if err != nil {
			return domain.CheckResult{}, err
		}
		r.StatusCode = &code
	}
	if rec[4] != "" {
		lat, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return domain.CheckResult{}, err
		}
		r.LatencyMS = &lat
	}
	return r, nil
}
