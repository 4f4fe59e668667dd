package domain

import "time"

// DefaultReportWindow is how far back the status report looks by default.
const DefaultReportWindow = 14 * 24 * time.Hour

// DateRange is the merge-date window of the status report.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDefaultDateRange returns the range [now-window, now].
func NewDefaultDateRange(now time.Time, window time.Duration) DateRange {
	return DateRange{Start: now.Add(-window), End: now}
}

// Contains reports whether t lies in (Start, End].
// The lower bound is exclusive and the upper bound inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return r.Start.Before(t) && !t.After(r.End)
}

// Valid reports whether Start is not after End.
// An inverted range is allowed; it simply matches nothing.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// In returns the range with both bounds expressed in loc.
func (r DateRange) In(loc *time.Location) DateRange {
	return DateRange{Start: r.Start.In(loc), End: r.End.In(loc)}
}
