package activity

import "time"

// Window is the inclusive calendar date range the user selected.
//
// Both boundaries are inclusive at day granularity: End is extended to the
// last instant of its day, so a record stamped any time on the end date is
// inside regardless of time-of-day.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a Window from two calendar dates. The time-of-day of the
// arguments is ignored: Start snaps to 00:00:00.000 and End to 23:59:59.999
// of their respective days.
func NewWindow(start, end time.Time) Window {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).
		AddDate(0, 0, 1).Add(-time.Millisecond)
	return Window{Start: s, End: e}
}

// Contains reports whether the ISO-8601 timestamp falls inside the window.
// Empty or malformed timestamps are outside; a bad date excludes a record,
// it never crashes a pass.
func (w Window) Contains(ts string) bool {
	t, ok := ParseTime(ts)
	if !ok {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}
