package naver

import (
	"fmt"
	"strings"
	"time"
)

// listing renders n linked news cards.
func listing(n int) string {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<li class="NewsItem_news_item__fhEmd"><a class="NewsItem_link_news__tD7x3" href="/news/%d">`+
			`<em class="NewsItem_title__BXkJ6">title %d</em></a></li>`, i, i)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

type sleepRecorder struct {
	waits []time.Duration
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.waits = append(r.waits, d)
}
