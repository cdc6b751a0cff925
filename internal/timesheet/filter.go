package timesheet

import (
	"cmp"
	"slices"
	"time"
)

// Prune keeps the entries for which inMonth returns true.
func Prune(entries []TimeEntry, inMonth func(time.Time) bool) []TimeEntry {
	kept := make([]TimeEntry, 0, len(entries))
	for _, e := range entries {
		if inMonth(e.Date) {
			kept = append(kept, e)
		}
	}
	return kept
}

// entryKey is the comparable identity of a TimeEntry. Date is reduced to its
// calendar day so the key does not depend on time.Time internals.
type entryKey struct {
	hours, minutes int
	list           TaskList
	task           string
	description    string
	year           int
	month          time.Month
	day            int
}

func keyOf(e TimeEntry) entryKey {
	y, m, d := e.Date.Date()
	return entryKey{
		hours:       e.Hours,
		minutes:     e.Minutes,
		list:        e.List,
		task:        e.Task,
		description: e.Description,
		year:        y,
		month:       m,
		day:         d,
	}
}

// Dedup collapses entries that are equal in every field. The result is
// sorted by date, then task, list, description and duration so the output
// does not depend on fetch order.
func Dedup(entries []TimeEntry) []TimeEntry {
	seen := make(map[entryKey]struct{}, len(entries))
	unique := make([]TimeEntry, 0, len(entries))
	for _, e := range entries {
		k := keyOf(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, e)
	}
	slices.SortFunc(unique, compareEntries)
	return unique
}

func compareEntries(a, b TimeEntry) int {
	return cmp.Or(
		a.Date.Compare(b.Date),
		cmp.Compare(a.Task, b.Task),
		cmp.Compare(a.List.ID, b.List.ID),
		cmp.Compare(a.List.Name, b.List.Name),
		cmp.Compare(a.Description, b.Description),
		cmp.Compare(a.Hours, b.Hours),
		cmp.Compare(a.Minutes, b.Minutes),
	)
}
