// Package invoice turns associated clients into per-client invoice text and
// writes it out.
package invoice

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/christopherklint97/billr/internal/timesheet"
)

const dateHeaderLayout = "Monday, January 2"

// Total returns the minutes billed to a client across all of its lists.
func Total(client timesheet.Client) int {
	total := 0
	for _, bucket := range client.EntriesByList {
		total += listTotal(bucket)
	}
	return total
}

func listTotal(bucket timesheet.ListEntries) int {
	total := 0
	for _, e := range bucket.Entries {
		total += e.Duration()
	}
	return total
}

// Billable reports whether the client has any time to invoice.
func Billable(client timesheet.Client) bool {
	return Total(client) > 0
}

// Render produces the invoice text for one client:
//
//	Acme
//	Total Time: 2 hours, 30 minutes
//
//	Dev (2 hours, 30 minutes)
//	Tuesday, March 5
//	- Fix bug (2 hours, 30 minutes) - patch
//
// Lists keep association order, dates ascend, and entries on the same date
// keep association order.
func Render(client timesheet.Client) string {
	var b strings.Builder

	total := Total(client)
	fmt.Fprintln(&b, client.Name)
	fmt.Fprintf(&b, "Total Time: %s\n", formatMinutes(total))
	fmt.Fprintln(&b)

	for _, bucket := range client.EntriesByList {
		fmt.Fprintf(&b, "%s (%s)\n", bucket.List.Name, formatMinutes(listTotal(bucket)))

		for _, date := range distinctDates(bucket.Entries) {
			fmt.Fprintln(&b, date.Format(dateHeaderLayout))
			for _, e := range bucket.Entries {
				if !e.Date.Equal(date) {
					continue
				}
				fmt.Fprintf(&b, "- %s (%d hours, %d minutes) - %s\n", e.Task, e.Hours, e.Minutes, e.Description)
			}
		}

		fmt.Fprintln(&b)
	}

	return b.String()
}

func formatMinutes(total int) string {
	return fmt.Sprintf("%d hours, %d minutes", total/60, total%60)
}

func distinctDates(entries []timesheet.TimeEntry) []time.Time {
	var dates []time.Time
	for _, e := range entries {
		if !slices.ContainsFunc(dates, e.Date.Equal) {
			dates = append(dates, e.Date)
		}
	}
	slices.SortFunc(dates, time.Time.Compare)
	return dates
}
