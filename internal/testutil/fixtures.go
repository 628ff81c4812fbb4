package testutil

import (
	"fmt"

	domainnews "kbo-news-service/internal/domain/news"
)

// SampleItems returns n distinct news items.
func SampleItems(n int) []domainnews.Item {
	items := make([]domainnews.Item, n)
	for i := range items {
		items[i] = domainnews.Item{
			Title:   fmt.Sprintf("headline %d", i+1),
			Summary: fmt.Sprintf("summary %d", i+1),
			Press:   "press",
			Time:    fmt.Sprintf("%d분 전", i+1),
			Link:    fmt.Sprintf("https://m.sports.naver.com/article/%03d", i+1),
		}
	}
	return items
}
