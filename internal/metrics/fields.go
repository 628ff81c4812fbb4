package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrStrategy = "strategy"
	AttrCache    = "cache"
	AttrResult   = "result"
)
