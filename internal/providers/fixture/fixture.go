// Package fixture serves deterministic portal markup without network or
// browser access. Markup goes through the same extractor as live pages.
package fixture

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/extract"
	"kbo-news-service/internal/providers"
)

//go:embed data/*
var files embed.FS

var listingTmpl = template.Must(template.ParseFS(files, "data/news.html.tmpl"))

// StaticCards is how many cards the fast view sees, mimicking a listing
// that renders the rest client-side.
const StaticCards = 3

type card struct {
	Title   string
	Summary string
	Press   string
	Time    string
	Image   string
	Link    string
}

var headlines = []struct {
	title, summary, press string
	noSummary, ad         bool
}{
	{title: "선발 호투로 3연승 질주", summary: "선발 투수가 7이닝 무실점으로 팀 승리를 이끌었다.", press: "스포츠조선"},
	{title: "9회말 끝내기 안타", summary: "대타 작전이 적중하며 홈 팬들 앞에서 극적인 승리를 거뒀다.", press: "OSEN"},
	{title: "주전 포수 부상 복귀 임박", summary: "재활을 마친 주전 포수가 이번 주 1군에 합류할 예정이다.", press: "스포티비뉴스"},
	{title: "외국인 타자 멀티 홈런", press: "엑스포츠뉴스", noSummary: true},
	{title: "sponsored", ad: true},
	{title: "불펜 과부하 우려", summary: "최근 열흘간 불펜 소화 이닝이 리그 최다를 기록했다.", press: "스타뉴스"},
	{title: "신인 내야수 데뷔 첫 안타", summary: "퓨처스에서 올라온 신인이 데뷔 타석에서 안타를 신고했다.", press: "MK스포츠"},
	{title: "감독 \"순위 싸움은 지금부터\"", summary: "감독은 경기 전 인터뷰에서 후반기 구상을 밝혔다.", press: "뉴스1"},
	{title: "홈 관중 시즌 최다 기록", summary: "주말 3연전 모두 매진되며 시즌 최다 관중을 기록했다.", press: "연합뉴스"},
	{title: "트레이드 마감 앞두고 분주", summary: "구단은 불펜 보강을 위해 복수의 구단과 협상 중이다.", press: "일간스포츠"},
	{title: "에이스 10승 고지", summary: "에이스가 시즌 10승째를 따내며 다승 공동 선두에 올랐다.", press: "스포츠경향"},
	{title: "우천 취소 후 더블헤더 편성", summary: "취소된 경기는 다음 달 더블헤더로 치러진다.", press: "SBS Sports"},
}

// Provider implements the scroll and results strategies over embedded
// markup. Static returns the matching fast strategy.
type Provider struct {
	now       func() time.Time
	extractor *extract.Extractor
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now:       time.Now,
		extractor: extract.New(""),
	}
}

// FetchNews returns at most count items from the fully rendered listing.
func (p *Provider) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	html, err := p.render(code, date, len(headlines))
	if err != nil {
		return nil, err
	}
	return p.extractor.ItemsFromHTML(strings.NewReader(html), count)
}

// CountNews returns the number of rendered cards, ads included.
func (p *Provider) CountNews(ctx context.Context, code, date string) (int, error) {
	html, err := p.render(code, date, len(headlines))
	if err != nil {
		return 0, err
	}
	return extract.CountHTML(html)
}

// FetchRecentResults parses the embedded standings table.
func (p *Provider) FetchRecentResults(ctx context.Context) (map[string][]string, error) {
	f, err := files.Open("data/standings.html")
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	defer f.Close()
	return extract.RecentResultsFromHTML(f)
}

// Static returns the fast strategy view, which only sees StaticCards cards.
func (p *Provider) Static() providers.NewsFetcher {
	return staticView{p: p}
}

type staticView struct {
	p *Provider
}

func (s staticView) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	html, err := s.p.render(code, date, StaticCards)
	if err != nil {
		return nil, err
	}
	return s.p.extractor.ItemsFromHTML(strings.NewReader(html), count)
}

func (p *Provider) render(code, date string, n int) (string, error) {
	if date == "" {
		date = p.now().Format("20060102")
	}
	if n > len(headlines) {
		n = len(headlines)
	}
	cards := make([]card, 0, n)
	for i, h := range headlines[:n] {
		c := card{Title: h.title}
		if !h.ad {
			c.Title = fmt.Sprintf("[%s] %s", code, h.title)
			c.Press = h.press
			c.Time = fmt.Sprintf("%d시간 전", i+1)
			c.Link = fmt.Sprintf("/kbaseball/news/%s-%s-%02d", code, date, i+1)
			c.Image = fmt.Sprintf("https://imgnews.pstatic.net/fixture/%s/%02d.jpg", code, i+1)
			if !h.noSummary {
				c.Summary = h.summary
			}
		}
		cards = append(cards, c)
	}

	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, struct {
		Code  string
		Cards []card
	}{Code: code, Cards: cards}); err != nil {
		return "", fmt.Errorf("fixture: render listing: %w", err)
	}
	return buf.String(), nil
}
