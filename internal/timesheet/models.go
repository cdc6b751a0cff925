package timesheet

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TaskList is a Teamwork task list. Name is whatever label the source
// supplied until association replaces it with the catalog name.
type TaskList struct {
	ID   string
	Name string
}

// TimeEntry is one logged unit of work. Teamwork's entry id is not kept, so
// two entries with identical fields are the same entry as far as billr is
// concerned.
type TimeEntry struct {
	Hours       int
	Minutes     int
	List        TaskList
	Task        string
	Description string
	Date        time.Time // midnight UTC
}

// Duration returns the entry length in minutes.
func (e TimeEntry) Duration() int {
	return e.Hours*60 + e.Minutes
}

// ListEntries groups the entries a client logged against one list.
type ListEntries struct {
	List    TaskList
	Entries []TimeEntry
}

// Client is an invoicing recipient. Lists comes from the catalog and is
// authoritative for list ids and names; EntriesByList is filled during
// association.
type Client struct {
	Name          string
	Lists         []TaskList
	EntriesByList []ListEntries
}

// ParseDate reads the calendar date from a Teamwork timestamp such as
// "2024-03-05T09:00:00Z". Anything after the first "T" is ignored.
func ParseDate(s string) (time.Time, error) {
	datestamp, _, _ := strings.Cut(s, "T")
	if datestamp == "" {
		return time.Time{}, fmt.Errorf("%w: no date found in %q", ErrDateParsing, s)
	}
	d, err := time.ParseInLocation(dateLayout, datestamp, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrDateParsing, err)
	}
	return d, nil
}

// Date builds a midnight UTC date, the form every TimeEntry.Date uses.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
