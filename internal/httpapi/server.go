package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/registry"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/scan"
)

type Server struct {
	Logger   *zap.Logger
	Registry *registry.Registry
	Store    repo.HistoryStore
	Scanner  *scan.Scanner
}

func NewServer(l *zap.Logger, reg *registry.Registry, store repo.HistoryStore, scanner *scan.Scanner) *Server {
	return &Server{Logger: l, Registry: reg, Store: store, Scanner: scanner}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/endpoints", s.handleListEndpoints)
	r.Post("/api/endpoints", s.handleAddEndpoint)
	r.Post("/api/scan", s.handleScan)
	r.Get("/api/history", s.handleHistory)

	return r
}

type addPayload struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (s *Server) handleAddEndpoint(w http.ResponseWriter, r *http.Request) {
	var p addPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if !isValidHTTPURL(p.URL) {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}
	if p.TimeoutSeconds <= 0 {
		p.TimeoutSeconds = 10
	}

	if err := s.Registry.Add(p.Name, p.URL, p.TimeoutSeconds); err != nil {
		if errors.Is(err, registry.ErrDuplicate) {
			http.Error(w, "endpoint already exists", http.StatusConflict)
			return
		}
		s.Logger.Error("add_endpoint_failed", zap.String("name", p.Name), zap.Error(err))
		http.Error(w, "could not add", http.StatusInternalServerError)
		return
	}

	ep := domain.Endpoint{Name: p.Name, URL: p.URL, TimeoutSeconds: p.TimeoutSeconds}

	// Run a single check synchronously for immediate feedback
	batch := s.Scanner.Scan(r.Context(), []domain.Endpoint{ep})
	if err := s.Store.Append(r.Context(), batch); err != nil {
		s.Logger.Error("history_append_failed", zap.String("name", p.Name), zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}

	s.Logger.Info("added_endpoint",
		zap.String("name", p.Name),
		zap.String("url", p.URL),
		zap.String("status", string(batch[0].Status)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"endpoint": ep, "result": batch[0],
	})
}

func (s *Server) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	eps, err := s.Registry.Select(nil)
	if err != nil {
		s.Logger.Error("list_endpoints_failed", zap.Error(err))
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(eps)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	eps, err := s.Registry.Select(r.URL.Query()["endpoint"])
	if err != nil {
		var unknown *registry.UnknownEndpointsError
		if errors.As(err, &unknown) {
			http.Error(w, unknown.Error(), http.StatusNotFound)
			return
		}
		s.Logger.Error("scan_load_failed", zap.Error(err))
		http.Error(w, "registry error", http.StatusInternalServerError)
		return
	}

	batch := s.Scanner.Scan(r.Context(), eps)
	if err := s.Store.Append(r.Context(), batch); err != nil {
		s.Logger.Error("history_append_failed", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(batch)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	results, err := s.Store.Query(r.Context(), r.URL.Query()["endpoint"])
	if err != nil {
		s.Logger.Error("history_query_failed", zap.Error(err))
		http.Error(w, "history error", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []domain.CheckResult{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
