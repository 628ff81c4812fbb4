package handlers

import (
	nethttp "net/http"
	"strconv"

	domainnews "kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/domain/teams"
)

type newsPage struct {
	TeamName    string
	Items       []domainnews.Item
	CurrentPage int
	PerPage     int
}

// NewsPage renders the first page of a team's news.
func (h *Handler) NewsPage(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	first := h.news.FirstPage(r.Context(), r.URL.Query().Get("team"), "")
	h.render(w, r, "news.html", newsPage{
		TeamName:    first.Team.Name,
		Items:       first.Items,
		CurrentPage: 1,
		PerPage:     first.PerPage,
	})
}

// APINews returns a window of the listing starting at offset.
func (h *Handler) APINews(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	q := r.URL.Query()
	offset := queryInt(q.Get("offset"), 0)
	buffer := queryInt(q.Get("buffer"), 1)

	resp := h.news.Window(r.Context(), q.Get("team"), "", offset, buffer)
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// APINewsTotal returns the listing size and page count.
func (h *Handler) APINewsTotal(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	resp := h.news.Total(r.Context(), r.URL.Query().Get("team"), "")
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Home renders the landing page.
func (h *Handler) Home(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	h.render(w, r, "home.html", teams.Canonical())
}

// queryInt parses a non-negative integer, returning fallback when raw is
// empty, malformed or negative.
func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
