package timeutil

import "time"

const (
	// DateLayout defines the canonical date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// StampLayout is the portal's listing date format (YYYYMMDD).
	StampLayout = "20060102"
	// DefaultZone is the zone listing dates are computed in.
	DefaultZone = "Asia/Seoul"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Stamp formats t as YYYYMMDD in loc (t's own location when loc is nil).
func Stamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(StampLayout)
}

// LoadLocation resolves name, falling back to UTC when it is unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
