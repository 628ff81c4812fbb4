package http

import (
	nethttp "net/http"

	"kbo-news-service/internal/http/handlers"
	"kbo-news-service/internal/http/middleware"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/{$}", handler.Home)
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/healthz", handler.Healthz)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/news", handler.NewsPage)
	mux.HandleFunc("/api/news", handler.APINews)
	mux.HandleFunc("/api/news_total", handler.APINewsTotal)
	mux.HandleFunc("/recent", handler.RecentPage)
	mux.Handle("/api/recent/{team}", middleware.CORS(nethttp.HandlerFunc(handler.APIRecent)))
	mux.HandleFunc("/", handler.NotFound)
	return mux
}
