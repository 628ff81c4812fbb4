package handlers

import (
	"context"
	"html/template"
	"log/slog"
	nethttp "net/http"

	appnews "kbo-news-service/internal/app/news"
	domainnews "kbo-news-service/internal/domain/news"
	domainresults "kbo-news-service/internal/domain/results"
	"kbo-news-service/internal/poller"
)

// NewsService serves paginated team news.
type NewsService interface {
	FirstPage(ctx context.Context, team, date string) appnews.FirstPage
	Window(ctx context.Context, team, date string, offset, bufferPages int) domainnews.WindowResponse
	Total(ctx context.Context, team, date string) domainnews.TotalResponse
}

// ResultsService serves recent match outcomes.
type ResultsService interface {
	Recent(ctx context.Context, team string) domainresults.TeamResults
	All(ctx context.Context) []domainresults.TeamResults
}

// Handler wires HTTP routes to the news and results services.
type Handler struct {
	news     NewsService
	results  ResultsService
	logger   *slog.Logger
	statusFn func() poller.Status
	pages    *template.Template
}

// NewHandler constructs a Handler. statusFn may be nil when no cache warmer
// runs, in which case the service always reports ready.
func NewHandler(news NewsService, results ResultsService, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		news:     news,
		results:  results,
		logger:   logger,
		statusFn: statusFn,
		pages:    pageTemplates,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Healthz is the plain-text liveness check.
func (h *Handler) Healthz(w nethttp.ResponseWriter, r *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness for traffic. With a cache warmer configured the
// service is ready once a warm cycle has succeeded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

func allowGet(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger) bool {
	if r.Method == nethttp.MethodGet || r.Method == nethttp.MethodHead {
		return true
	}
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}
