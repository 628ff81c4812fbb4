package news

const (
	// PlaceholderTitle stands in for a card without a title element.
	PlaceholderTitle = "제목 없음"
	// PlaceholderSummary stands in for a card without a description.
	PlaceholderSummary = "요약 없음"
)

// Item is one news card scraped from a team listing. Items carry no identity
// beyond their position in the listing.
type Item struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Press   string `json:"press"`
	Time    string `json:"time"`
	Image   string `json:"image,omitempty"`
	Link    string `json:"link,omitempty"`
}

// WindowResponse is the payload returned by /api/news.
type WindowResponse struct {
	Items   []Item `json:"items"`
	HasMore bool   `json:"has_more"`
	PerPage int    `json:"per_page"`
}

// TotalResponse is the payload returned by /api/news_total.
type TotalResponse struct {
	Count   int `json:"count"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
}

// Window slices items to [offset, end). An offset at or past the end of
// items yields an empty, non-nil window. hasMore reports whether items extend
// beyond end. An end before offset, as left by an overflowing offset, yields
// an empty window with hasMore false.
func Window(items []Item, offset, end int) (window []Item, hasMore bool) {
	if offset < 0 {
		offset = 0
	}
	if end < offset {
		return []Item{}, false
	}
	hasMore = len(items) > end
	if offset >= len(items) || end <= offset {
		return []Item{}, hasMore
	}
	if end > len(items) {
		end = len(items)
	}
	window = make([]Item, end-offset)
	copy(window, items[offset:end])
	return window, hasMore
}

// PageCount returns ceil(count/perPage), or 0 when there is nothing to page.
func PageCount(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// NewTotalResponse builds a TotalResponse for count items.
func NewTotalResponse(count, perPage int) TotalResponse {
	return TotalResponse{
		Count:   count,
		Pages:   PageCount(count, perPage),
		PerPage: perPage,
	}
}
