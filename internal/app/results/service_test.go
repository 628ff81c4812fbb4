package results

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	domainresults "kbo-news-service/internal/domain/results"
	"kbo-news-service/internal/metrics"
	"kbo-news-service/internal/teststubs"
)

func newTestService(fetcher *teststubs.StubResults, now *time.Time) *Service {
	return NewService(fetcher, time.Minute, time.UTC, func() time.Time { return *now }, nil, metrics.NewRecorder())
}

func TestRecentPadsAndResolvesAliases(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &teststubs.StubResults{Results: map[string][]string{"롯데": {"승", "패"}}}
	svc := newTestService(stub, &now)

	got := svc.Recent(context.Background(), "Lotte Giants")

	want := domainresults.TeamResults{Team: "롯데", Results: []string{"승", "패", "-", "-", "-"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRecentUnknownTeamIsAllPlaceholders(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &teststubs.StubResults{Results: map[string][]string{"롯데": {"승"}}}
	svc := newTestService(stub, &now)

	got := svc.Recent(context.Background(), "Yankees")

	if got.Team != "Yankees" || !reflect.DeepEqual(got.Results, domainresults.Unknown()) {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestFetchFailureYieldsPlaceholders(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &teststubs.StubResults{Err: errors.New("standings not rendered")}
	svc := newTestService(stub, &now)

	got := svc.Recent(context.Background(), "한화")
	if !reflect.DeepEqual(got.Results, domainresults.Unknown()) {
		t.Fatalf("expected placeholders, got %+v", got.Results)
	}

	svc.Recent(context.Background(), "한화")
	if stub.Calls.Load() != 2 {
		t.Fatalf("expected failures not to be cached, got %d calls", stub.Calls.Load())
	}
}

func TestAllUsesOneScrapeInStandingsOrder(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &teststubs.StubResults{Results: map[string][]string{
		"한화": {"승", "승", "승", "승", "승"},
		"키움": {"패"},
	}}
	svc := newTestService(stub, &now)

	all := svc.All(context.Background())
	svc.Recent(context.Background(), "키움")

	if len(all) != 10 {
		t.Fatalf("expected 10 teams, got %d", len(all))
	}
	if all[0].Team != "한화" || all[9].Team != "키움" {
		t.Fatalf("unexpected order %s ... %s", all[0].Team, all[9].Team)
	}
	for _, row := range all {
		if len(row.Results) != domainresults.Size {
			t.Fatalf("expected padded row for %s, got %v", row.Team, row.Results)
		}
	}
	if stub.Calls.Load() != 1 {
		t.Fatalf("expected a single scrape, got %d", stub.Calls.Load())
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &teststubs.StubResults{Results: map[string][]string{}}
	svc := newTestService(stub, &now)

	svc.All(context.Background())
	now = now.Add(time.Minute)
	svc.All(context.Background())

	if stub.Calls.Load() != 2 {
		t.Fatalf("expected refetch after ttl, got %d", stub.Calls.Load())
	}
}

func TestNilFetcher(t *testing.T) {
	svc := NewService(nil, 0, nil, nil, nil, nil)
	got := svc.Recent(context.Background(), "")
	if got.Team != "롯데" || !reflect.DeepEqual(got.Results, domainresults.Unknown()) {
		t.Fatalf("unexpected result %+v", got)
	}
}
