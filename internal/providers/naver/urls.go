package naver

import (
	"net/url"
	"strconv"
	"strings"
)

// NewsURL builds the team listing URL, newest first, photo cards enabled.
// An empty date omits the date filter.
func NewsURL(base, code, date string) string {
	q := url.Values{}
	q.Set("sectionId", "kbo")
	q.Set("team", code)
	q.Set("sort", "latest")
	if date != "" {
		q.Set("date", date)
	}
	q.Set("isPhoto", "Y")
	return normalizeBaseURL(base) + "/kbaseball/news?" + encodeOrdered(q, "sectionId", "team", "sort", "date", "isPhoto")
}

// ResultsURL builds the standings page URL for a season.
func ResultsURL(base string, season int) string {
	q := url.Values{}
	q.Set("seasonCode", strconv.Itoa(season))
	q.Set("tab", "teamRank")
	return normalizeBaseURL(base) + "/kbaseball/record/kbo?" + encodeOrdered(q, "seasonCode", "tab")
}

// encodeOrdered keeps the portal's parameter order, which url.Values.Encode
// would sort.
func encodeOrdered(q url.Values, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if !q.Has(k) {
			continue
		}
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(q.Get(k)))
	}
	return strings.Join(parts, "&")
}
