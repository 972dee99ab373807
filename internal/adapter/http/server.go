package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-analysis-service/internal/report"
)

const errNoReport = "no analysis report has been published yet"

// ReportSource provides the most recently published analysis report.
type ReportSource interface {
	Latest() (report.Report, bool)
}

// Server exposes health, readiness, metrics, and latest-report HTTP endpoints.
type Server struct {
	httpServer *http.Server
	reports    ReportSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /analysis/latest routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, reports ReportSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		reports: reports,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /analysis/latest", s.handleLatest)
	mux.HandleFunc("GET /analysis/latest/summary", s.handleLatestSummary)
	mux.HandleFunc("GET /analysis/latest/html", s.handleLatestHTML)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	r, ok := s.reports.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": errNoReport})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, r)
}

func (s *Server) handleLatestSummary(w http.ResponseWriter, _ *http.Request) {
	r, ok := s.reports.Latest()
	if !ok {
		http.Error(w, errNoReport, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, r.Summary()); err != nil {
		s.logger.Warn("write summary response failed", "error", err)
	}
}

func (s *Server) handleLatestHTML(w http.ResponseWriter, _ *http.Request) {
	r, ok := s.reports.Latest()
	if !ok {
		http.Error(w, errNoReport, http.StatusNotFound)
		return
	}
	page, err := report.HTML(r)
	if err != nil {
		s.logger.Error("render html report failed", "error", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, page); err != nil {
		s.logger.Warn("write html response failed", "error", err)
	}
}
