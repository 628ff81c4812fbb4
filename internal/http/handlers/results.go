package handlers

import (
	nethttp "net/http"
	"strings"

	domainresults "kbo-news-service/internal/domain/results"
)

// APIRecent returns one team's last five outcomes.
func (h *Handler) APIRecent(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	team := r.PathValue("team")
	if team == "" {
		team = strings.TrimPrefix(r.URL.Path, "/api/recent/")
	}
	row := h.results.Recent(r.Context(), team)
	writeJSON(w, nethttp.StatusOK, domainresults.Response{Results: row.Results}, h.logger)
}

// RecentPage renders the recent-results table for every team.
func (h *Handler) RecentPage(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowGet(w, r, h.logger) {
		return
	}
	h.render(w, r, "recent.html", h.results.All(r.Context()))
}
