package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/tales/internal/presentation/graph"
	"github.com/aretw0/tales/pkg/catalog"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// DefaultRecentLimit bounds /outcomes when no limit is given.
const DefaultRecentLimit = 10

// maxRecentLimit caps the limit query parameter.
const maxRecentLimit = 1000

// Server exposes the catalog and the outcome log read-only. It never traverses.
type Server struct {
	Catalog     *catalog.Catalog
	Recorder    ports.Recorder
	RecentLimit int
	Metrics     http.Handler
	Logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithRecentLimit sets the default size of /outcomes.
func WithRecentLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.RecentLimit = n
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(c *catalog.Catalog, rec ports.Recorder, opts ...Option) http.Handler {
	server := &Server{
		Catalog:     c,
		Recorder:    rec,
		RecentLimit: DefaultRecentLimit,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/stories", server.ListStories)
	r.Get("/stories/{index}", server.GetStory)
	r.Get("/stories/{index}/graph", server.GetGraph)
	r.Get("/outcomes", server.ListOutcomes)
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StorySummary is one catalog entry.
type StorySummary struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Genre   string `json:"genre,omitempty"`
	Start   string `json:"start"`
	Nodes   int    `json:"nodes"`
	Endings int    `json:"endings"`
}

// StoryDetail is a catalog entry with its full graph.
type StoryDetail struct {
	StorySummary
	Graph []domain.Node `json:"graph"`
}

// OutcomeView is one outcome log record. Raw is set only for lines that do
// not parse as an outcome.
type OutcomeView struct {
	domain.Outcome
	Raw string `json:"raw,omitempty"`
}

func summarize(index int, e catalog.Entry) StorySummary {
	return StorySummary{
		Index:   index,
		Name:    e.Name,
		Genre:   e.Genre,
		Start:   e.Graph.Start(),
		Nodes:   e.Graph.Len(),
		Endings: len(e.Graph.Endings()),
	}
}

// ListStories handles GET /stories.
func (s *Server) ListStories(w http.ResponseWriter, r *http.Request) {
	entries := s.Catalog.List()
	resp := make([]StorySummary, 0, len(entries))
	for i, e := range entries {
		resp = append(resp, summarize(i+1, e))
	}
	s.writeJSON(w, resp)
}

// GetStory handles GET /stories/{index}.
func (s *Server) GetStory(w http.ResponseWriter, r *http.Request) {
	index, entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, StoryDetail{
		StorySummary: summarize(index, entry),
		Graph:        entry.Graph.Nodes(),
	})
}

// GetGraph handles GET /stories/{index}/graph as a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	_, entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(entry.Graph, nil)))
}

// ListOutcomes handles GET /outcomes?limit=N.
func (s *Server) ListOutcomes(w http.ResponseWriter, r *http.Request) {
	limit := s.RecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecentLimit)
	}

	lines, err := s.Recorder.Recent(r.Context(), limit)
	if err != nil {
		s.Logger.Error("ListOutcomes failed", "error", err)
		status := http.StatusInternalServerError
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, "outcome log unavailable", status)
		return
	}

	resp := make([]OutcomeView, 0, len(lines))
	for _, line := range lines {
		o, err := domain.ParseOutcome(line)
		if err != nil {
			resp = append(resp, OutcomeView{Raw: line})
			continue
		}
		resp = append(resp, OutcomeView{Outcome: o})
	}
	s.writeJSON(w, resp)
}

func (s *Server) entry(w http.ResponseWriter, r *http.Request) (int, catalog.Entry, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "story index must be an integer", http.StatusBadRequest)
		return 0, catalog.Entry{}, false
	}
	e, err := s.Catalog.At(index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return 0, catalog.Entry{}, false
	}
	return index, e, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
