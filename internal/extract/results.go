package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kbo-news-service/internal/domain/results"
)

// ResultsReadySelector matches the standings rows; browsers wait for it
// before reading the page.
const ResultsReadySelector = "li[class^='TableBody_item__']"

const (
	selTeamName = "div[class^='TeamInfo_team_name__']"
	selOutcome  = "div.ResultInfo_result__Vd3ZN > span.blind"
)

// RecentResultsFromHTML parses r and returns every team's recent results.
func RecentResultsFromHTML(r io.Reader) (map[string][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}
	return AllRecentResults(doc), nil
}

// AllRecentResults maps each standings row's team name to its most recent
// outcomes (at most results.Size).
func AllRecentResults(doc *goquery.Document) map[string][]string {
	out := make(map[string][]string)
	doc.Find(ResultsReadySelector).Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find(selTeamName).First().Text())
		if name == "" {
			return
		}
		if _, seen := out[name]; seen {
			return
		}
		out[name] = rowOutcomes(row)
	})
	return out
}

// RecentResults returns the outcomes for team, and false when the team has
// no row on the page.
func RecentResults(doc *goquery.Document, team string) ([]string, bool) {
	all := AllRecentResults(doc)
	got, ok := all[team]
	return got, ok
}

func rowOutcomes(row *goquery.Selection) []string {
	outcomes := make([]string, 0, results.Size)
	row.Find(selOutcome).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if results.IsOutcome(text) {
			outcomes = append(outcomes, text)
		}
		return len(outcomes) < results.Size
	})
	return outcomes
}
