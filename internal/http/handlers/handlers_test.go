package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appnews "kbo-news-service/internal/app/news"
	domainnews "kbo-news-service/internal/domain/news"
	domainresults "kbo-news-service/internal/domain/results"
	"kbo-news-service/internal/domain/teams"
	"kbo-news-service/internal/http/middleware"
	"kbo-news-service/internal/poller"
	"kbo-news-service/internal/providers"
	"kbo-news-service/internal/teststubs"
	"kbo-news-service/internal/testutil"
)

// recordingNews captures the arguments the handlers pass through.
type recordingNews struct {
	team          string
	offset        int
	buffer        int
	windowResp    domainnews.WindowResponse
	totalResp     domainnews.TotalResponse
	firstPageResp appnews.FirstPage
}

func (n *recordingNews) FirstPage(ctx context.Context, team, date string) appnews.FirstPage {
	_, _ = ctx, date
	n.team = team
	return n.firstPageResp
}

func (n *recordingNews) Window(ctx context.Context, team, date string, offset, bufferPages int) domainnews.WindowResponse {
	_, _ = ctx, date
	n.team, n.offset, n.buffer = team, offset, bufferPages
	return n.windowResp
}

func (n *recordingNews) Total(ctx context.Context, team, date string) domainnews.TotalResponse {
	_, _ = ctx, date
	n.team = team
	return n.totalResp
}

// newTestHandler builds real services over the stubs. Nil stubs are passed
// as nil interfaces so the services see a missing strategy.
func newTestHandler(fast *teststubs.StubFetcher, scroller *teststubs.StubScroller, results *teststubs.StubResults) *Handler {
	var (
		f providers.NewsFetcher
		s providers.NewsScroller
		r providers.RecentResultsFetcher
	)
	if fast != nil {
		f = fast
	}
	if scroller != nil {
		s = scroller
	}
	if results != nil {
		r = results
	}
	return NewHandler(testutil.NewNewsService(f, s), testutil.NewResultsService(r), nil, nil)
}

func defaultHandler() *Handler {
	return newTestHandler(
		&teststubs.StubFetcher{Items: testutil.SampleItems(4)},
		&teststubs.StubScroller{StubFetcher: teststubs.StubFetcher{Items: testutil.SampleItems(9), Uncapped: true}, Total: 9},
		&teststubs.StubResults{Results: map[string][]string{"LG": {"승", "패", "무"}}},
	)
}

func TestHealth(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := defaultHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestHealthz(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.Healthz), http.MethodGet, "/healthz", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertContentType(t, rr, "text/plain")
	if rr.Body.String() != "ok" {
		t.Fatalf("expected plain ok, got %q", rr.Body.String())
	}
}

func TestNewsPageRendersFirstPage(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.NewsPage), http.MethodGet, "/news?team=lgtwins", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertContentType(t, rr, "text/html")
	testutil.AssertBodyContains(t, rr,
		"<title>LG 뉴스</title>",
		`data-per-page="4"`,
		`data-page="1"`,
		"headline 1",
		"headline 4",
		"https://m.sports.naver.com/article/001",
	)
	if strings.Contains(rr.Body.String(), "headline 5") {
		t.Fatalf("expected only the first page rendered")
	}
}

func TestNewsPageDefaultsTeamAndRendersEmptyState(t *testing.T) {
	h := newTestHandler(
		&teststubs.StubFetcher{Err: errors.New("502")},
		&teststubs.StubScroller{StubFetcher: teststubs.StubFetcher{Err: errors.New("crashed")}},
		nil,
	)

	rr := testutil.Serve(http.HandlerFunc(h.NewsPage), http.MethodGet, "/news", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, teams.DefaultName+" 뉴스", "뉴스가 없습니다.")
}

func TestNewsPageEscapesScrapedText(t *testing.T) {
	news := &recordingNews{firstPageResp: appnews.FirstPage{
		Team:    teams.Resolve("KT"),
		Items:   []domainnews.Item{{Title: "<script>alert(1)</script>", Summary: "s"}},
		PerPage: 4,
	}}
	h := NewHandler(news, nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.NewsPage), http.MethodGet, "/news?team=KT", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if strings.Contains(rr.Body.String(), "<script>alert(1)</script>") {
		t.Fatalf("expected scraped title to be escaped")
	}
	if news.team != "KT" {
		t.Fatalf("expected raw team passed through, got %q", news.team)
	}
}

func TestAPINewsReturnsWindow(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.APINews), http.MethodGet, "/api/news?team=LG&offset=4&buffer=2", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertContentType(t, rr, "application/json")

	var resp domainnews.WindowResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Items) != 5 {
		t.Fatalf("expected items 5..9, got %d", len(resp.Items))
	}
	if resp.Items[0].Title != "headline 5" || resp.Items[4].Title != "headline 9" {
		t.Fatalf("unexpected window bounds %+v", resp.Items)
	}
	if resp.HasMore || resp.PerPage != 4 {
		t.Fatalf("unexpected window metadata %+v", resp)
	}
}

func TestAPINewsPastEndIsEmptyList(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.APINews), http.MethodGet, "/api/news?team=LG&offset=40", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `"items":[]`, `"has_more":false`)
}

func TestAPINewsMaxOffsetIsEmptyList(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.APINews), http.MethodGet, "/api/news?team=LG&offset=9223372036854775807&buffer=5", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `"items":[]`, `"has_more":false`)
}

func TestAPINewsQueryParsing(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantOffset int
		wantBuffer int
	}{
		{"defaults", "team=LG", 0, 1},
		{"explicit", "team=LG&offset=8&buffer=3", 8, 3},
		{"malformed", "team=LG&offset=abc&buffer=x", 0, 1},
		{"negative", "team=LG&offset=-4&buffer=-1", 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			news := &recordingNews{windowResp: domainnews.WindowResponse{Items: []domainnews.Item{}}}
			h := NewHandler(news, nil, nil, nil)

			rr := testutil.Serve(http.HandlerFunc(h.APINews), http.MethodGet, "/api/news?"+tc.query, nil)
			testutil.AssertStatus(t, rr, http.StatusOK)
			if news.offset != tc.wantOffset || news.buffer != tc.wantBuffer {
				t.Fatalf("expected offset=%d buffer=%d, got offset=%d buffer=%d", tc.wantOffset, tc.wantBuffer, news.offset, news.buffer)
			}
			if news.team != "LG" {
				t.Fatalf("expected team LG, got %q", news.team)
			}
		})
	}
}

func TestAPINewsTotal(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.APINewsTotal), http.MethodGet, "/api/news_total?team=LG", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domainnews.TotalResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 9 || resp.Pages != 3 || resp.PerPage != 4 {
		t.Fatalf("unexpected total %+v", resp)
	}
}

func TestAPINewsTotalFailureReportsZero(t *testing.T) {
	h := newTestHandler(nil, &teststubs.StubScroller{CountErr: errors.New("crashed")}, nil)

	rr := testutil.Serve(http.HandlerFunc(h.APINewsTotal), http.MethodGet, "/api/news_total?team=LG", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domainnews.TotalResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 0 || resp.Pages != 0 {
		t.Fatalf("expected zero total, got %+v", resp)
	}
}

func TestAPIRecentPadsResults(t *testing.T) {
	h := defaultHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/recent/LG", nil)
	req.SetPathValue("team", "LG")
	rr := testutil.ServeRequest(http.HandlerFunc(h.APIRecent), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domainresults.Response
	testutil.DecodeJSON(t, rr, &resp)
	want := []string{"승", "패", "무", "-", "-"}
	if strings.Join(resp.Results, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, resp.Results)
	}
}

func TestAPIRecentFallsBackToPathWithoutPattern(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.APIRecent), http.MethodGet, "/api/recent/twins", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `"results":["승","패","무","-","-"]`)
}

func TestAPIRecentUnknownTeamIsAllPlaceholders(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.APIRecent), http.MethodGet, "/api/recent/Yankees", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `"results":["-","-","-","-","-"]`)
}

func TestRecentPageListsEveryTeam(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.RecentPage), http.MethodGet, "/recent", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertContentType(t, rr, "text/html")
	for _, name := range teams.Canonical() {
		testutil.AssertBodyContains(t, rr, ">"+name+"</a>")
	}
	testutil.AssertBodyContains(t, rr, `<td class="승">승</td>`)
}

func TestHomeLinksTeams(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.Home), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `href="/news?team=LG"`, `href="/recent"`)
}

func TestRenderFailureReturnsServerError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewHandler(&recordingNews{}, nil, logger, nil)
	h.pages = template.Must(template.New("news.html").Parse(`{{.Missing.Field}}`))

	rr := testutil.Serve(http.HandlerFunc(h.NewsPage), http.MethodGet, "/news", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if !strings.Contains(buf.String(), "render page failed") {
		t.Fatalf("expected render failure logged, got %s", buf.String())
	}
}

func TestNotFound(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	testutil.AssertBodyContains(t, rr, `"error":"not found"`)
}

func TestMethodNotAllowedHandlers(t *testing.T) {
	h := defaultHandler()

	tests := []struct {
		name string
		path string
		fn   func(w http.ResponseWriter, r *http.Request)
	}{
		{"health", "/health", h.Health},
		{"ready", "/ready", h.Ready},
		{"home", "/", h.Home},
		{"news", "/news", h.NewsPage},
		{"apiNews", "/api/news", h.APINews},
		{"apiNewsTotal", "/api/news_total", h.APINewsTotal},
		{"apiRecent", "/api/recent/LG", h.APIRecent},
		{"recent", "/recent", h.RecentPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.Serve(http.HandlerFunc(tt.fn), http.MethodPost, tt.path, nil)
			testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
		})
	}
}

func TestRequestIDPropagatesThroughMiddleware(t *testing.T) {
	h := defaultHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.NotFound)
	wrapped := middleware.LoggingMiddleware(nil, nil, mux)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rr := testutil.ServeRequest(wrapped, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["requestId"] != "abc123" {
		t.Fatalf("expected requestId propagated, got %s", resp["requestId"])
	}
	if resp["error"] == "" {
		t.Fatalf("expected error field in response")
	}
}

func TestReady(t *testing.T) {
	h := defaultHandler()

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyWithStatus(t *testing.T) {
	h := NewHandler(&recordingNews{}, nil, nil, func() poller.Status {
		return poller.Status{
			LastSuccess: time.Now(),
		}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyNotReady(t *testing.T) {
	h := NewHandler(&recordingNews{}, nil, nil, func() poller.Status {
		return poller.Status{}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertBodyContains(t, rr, "not ready")
}

func TestReadyReportsLastError(t *testing.T) {
	h := NewHandler(&recordingNews{}, nil, nil, func() poller.Status {
		return poller.Status{LastSuccess: time.Now(), ConsecutiveFailures: 3, LastError: "KIA: browser crashed"}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertBodyContains(t, rr, "KIA: browser crashed")
}
