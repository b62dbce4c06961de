// Package registry holds the configured endpoints, backed by a YAML file so
// an operator can edit the set by hand between runs.
package registry

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

var ErrDuplicate = errors.New("endpoint already exists")

// UnknownEndpointsError reports every requested name that is not in the
// registry, so a typo surfaces loudly instead of silently shrinking a scan.
type UnknownEndpointsError struct {
	Names []string
}

func (e *UnknownEndpointsError) Error() string {
	return "unknown endpoints: " + strings.Join(e.Names, ", ")
}

type fileModel struct {
	Endpoints map[string]domain.Endpoint `yaml:"endpoints"`
}

type Registry struct {
	path string
}

func New(path string) *Registry {
	return &Registry{path: path}
}

// Load reads the endpoints file fresh. A missing file is an empty registry,
// not an error, so first runs work without setup.
func (r *Registry) Load() (map[string]domain.Endpoint, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]domain.Endpoint{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	var m fileModel
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse endpoints file %s: %w", r.path, err)
	}
	out := make(map[string]domain.Endpoint, len(m.Endpoints))
	for name, ep := range m.Endpoints {
		ep.Name = name
		out[name] = ep
	}
	return out, nil
}

// Add appends a new endpoint and persists the file. A duplicate name fails
// without touching the existing entry.
func (r *Registry) Add(name, rawURL string, timeoutSeconds int) error {
	if name == "" {
		return errors.New("endpoint name is required")
	}
	if !isValidHTTPURL(rawURL) {
		return fmt.Errorf("invalid endpoint URL %q", rawURL)
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	eps, err := r.Load()
	if err != nil {
		return err
	}
	if _, ok := eps[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}
	eps[name] = domain.Endpoint{Name: name, URL: rawURL, TimeoutSeconds: timeoutSeconds}
	return r.save(eps)
}

// Select resolves names into endpoint definitions. An empty selection means
// every endpoint, sorted by name for deterministic scan order; a selection
// containing unknown names fails with all of them listed.
func (r *Registry) Select(names []string) ([]domain.Endpoint, error) {
	eps, err := r.Load()
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		out := make([]domain.Endpoint, 0, len(eps))
		for _, ep := range eps {
			out = append(out, ep)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out, nil
	}

	var unknown []string
	out := make([]domain.Endpoint, 0, len(names))
	for _, n := range names {
		ep, ok := eps[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		out = append(out, ep)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownEndpointsError{Names: unknown}
	}
	return out, nil
}

func (r *Registry) save(eps map[string]domain.Endpoint) error {
	raw, err := yaml.Marshal(fileModel{Endpoints: eps})
	if err != nil {
		return fmt.Errorf("encode endpoints file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("write endpoints file: %w", err)
	}
	return nil
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
