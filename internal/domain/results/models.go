package results

const (
	// Size is the number of recent games reported per team.
	Size = 5
	// Placeholder fills slots with no known result.
	Placeholder = "-"

	Win  = "승"
	Loss = "패"
	Draw = "무"
)

// TeamResults holds a team's most recent outcomes, newest first.
type TeamResults struct {
	Team    string   `json:"team"`
	Results []string `json:"results"`
}

// Response is the payload returned by /api/recent/{team}.
type Response struct {
	Results []string `json:"results"`
}

// IsOutcome reports whether s is a win, loss or draw marker.
func IsOutcome(s string) bool {
	return s == Win || s == Loss || s == Draw
}

// Pad truncates or pads results to exactly Size entries.
func Pad(results []string) []string {
	out := make([]string, Size)
	for i := range out {
		if i < len(results) {
			out[i] = results[i]
			continue
		}
		out[i] = Placeholder
	}
	return out
}

// Unknown returns a placeholder-only result row.
func Unknown() []string {
	return Pad(nil)
}
