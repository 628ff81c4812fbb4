package naver

import "time"

const (
	providerName = "naver"

	DefaultBaseURL   = "https://m.sports.naver.com"
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 10; SM-G975N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Mobile Safari/537.36"
	DefaultTimeout   = 6 * time.Second

	defaultResultsWait = 15 * time.Second
	maxErrorBody       = 512
)

// ScrollPlan controls how far and how patiently a listing is scrolled.
type ScrollPlan struct {
	Settle   time.Duration
	Step     time.Duration
	Fraction float64
	MaxSteps int
}

var (
	// fetchPlan loads listing cards until enough are rendered.
	fetchPlan = ScrollPlan{Settle: 1200 * time.Millisecond, Step: 350 * time.Millisecond, Fraction: 0.9, MaxSteps: 50}
	// countPlan scrolls to the end of the listing.
	countPlan = ScrollPlan{Settle: 900 * time.Millisecond, Step: 250 * time.Millisecond, Fraction: 0.95, MaxSteps: 80}

	topSettle = 50 * time.Millisecond
)
