// Package extract turns portal markup into records. Every selector that
// depends on the portal's markup lives in this package.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kbo-news-service/internal/domain/news"
)

// DefaultOrigin is prefixed to relative article links.
const DefaultOrigin = "https://m.sports.naver.com"

const (
	selItem    = "li.NewsItem_news_item__fhEmd"
	selLink    = "a.NewsItem_link_news__tD7x3"
	selTitle   = "em.NewsItem_title__BXkJ6"
	selSummary = "p[class^='NewsItem_description__']"
	selPress   = "span.NewsItem_press__RJFeh"
	selTime    = "span.time"

	thumbProxyHost = "dthumb-phinf.pstatic.net"
)

// imageAttrs is the lookup order for lazy-loaded thumbnails.
var imageAttrs = []string{
	"src", "data-src", "data-original", "data-lazy", "data-thumb",
	"data-srcset", "data-lazy-src", "data-echo",
}

// Extractor parses news listings.
type Extractor struct {
	origin string
}

// New returns an Extractor resolving relative links against origin.
func New(origin string) *Extractor {
	if origin == "" {
		origin = DefaultOrigin
	}
	return &Extractor{origin: strings.TrimSuffix(origin, "/")}
}

// ItemsFromHTML parses r and extracts at most limit items (all when limit <= 0).
func (e *Extractor) ItemsFromHTML(r io.Reader, limit int) ([]news.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}
	return e.Items(doc, limit), nil
}

// Items extracts news cards in document order. The first limit cards are
// considered (all when limit <= 0); cards without an article link are
// dropped, so the result may be shorter than limit.
func (e *Extractor) Items(doc *goquery.Document, limit int) []news.Item {
	cards := doc.Find(selItem)
	if limit > 0 && cards.Length() > limit {
		cards = cards.Slice(0, limit)
	}

	out := make([]news.Item, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		link := card.Find(selLink).First()
		if link.Length() == 0 {
			return
		}
		out = append(out, news.Item{
			Title:   textOr(link.Find(selTitle), news.PlaceholderTitle),
			Summary: textOr(link.Find(selSummary), news.PlaceholderSummary),
			Press:   textOr(link.Find(selPress), ""),
			Time:    textOr(link.Find(selTime), ""),
			Image:   imageURL(link, card),
			Link:    e.linkURL(link),
		})
	})
	return out
}

// CountHTML returns the number of news cards rendered in html.
func CountHTML(html string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("extract: parse html: %w", err)
	}
	return Count(doc), nil
}

// Count returns the number of news cards in doc, with or without links.
func Count(doc *goquery.Document) int {
	return doc.Find(selItem).Length()
}

func (e *Extractor) linkURL(link *goquery.Selection) string {
	href, ok := link.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return e.origin + href
}

func textOr(sel *goquery.Selection, fallback string) string {
	if sel.Length() == 0 {
		return fallback
	}
	return strings.TrimSpace(sel.First().Text())
}

func imageURL(link, card *goquery.Selection) string {
	img := link.Find("img").First()
	if img.Length() == 0 {
		img = card.Find("img").First()
	}
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range imageAttrs {
		v, ok := img.Attr(attr)
		if !ok || v == "" || strings.HasPrefix(v, "data:") {
			continue
		}
		return unproxy(strings.TrimSpace(v))
	}
	return ""
}

// unproxy returns the original image behind a thumbnail-proxy URL. Anything
// that fails to decode is returned unchanged.
func unproxy(raw string) string {
	if !strings.Contains(raw, thumbProxyHost) {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	src := parsed.Query().Get("src")
	if src == "" {
		return raw
	}
	decoded, err := url.PathUnescape(src)
	if err != nil {
		return raw
	}
	decoded = strings.Trim(decoded, `"`)
	if decoded == "" {
		return raw
	}
	return decoded
}
