// Package period picks the month an invoice run covers.
package period

import "time"

// Window is a calendar month, identified by its first day at midnight UTC.
type Window struct {
	start time.Time
}

// Target returns the month containing now, or the month before it when
// lastMonth is set. Stepping back a week from the first of the month always
// lands in the previous month, which is then normalized to its first day.
func Target(now time.Time, lastMonth bool) Window {
	start := firstOfMonth(now)
	if lastMonth {
		start = firstOfMonth(start.AddDate(0, 0, -7))
	}
	return Window{start: start}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Start is the first day of the month.
func (w Window) Start() time.Time {
	return w.start
}

// FetchDate formats the first day as Teamwork's fromdate parameter (YYYYMMDD).
func (w Window) FetchDate() string {
	return w.start.Format("20060102")
}

// FolderName names the output folder, e.g. "2024-March".
func (w Window) FolderName() string {
	return w.start.Format("2006-January")
}

// Contains reports whether date falls in the window's month of the same year.
func (w Window) Contains(date time.Time) bool {
	return date.Year() == w.start.Year() && date.Month() == w.start.Month()
}
