package timesheet

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func march2024(date time.Time) bool {
	return date.Year() == 2024 && date.Month() == time.March
}

func TestPrune(t *testing.T) {
	entries := []TimeEntry{
		{Hours: 1, Task: "in", Date: Date(2024, time.March, 1)},
		{Hours: 1, Task: "before", Date: Date(2024, time.February, 29)},
		{Hours: 1, Task: "last day", Date: Date(2024, time.March, 31)},
		{Hours: 1, Task: "after", Date: Date(2024, time.April, 1)},
		{Hours: 1, Task: "other year", Date: Date(2023, time.March, 10)},
	}

	got := Prune(entries, march2024)
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].Task != "in" || got[1].Task != "last day" {
		t.Errorf("Unexpected entries kept: %+v", got)
	}
}

func TestDedup_CollapsesIdenticalEntries(t *testing.T) {
	a := TimeEntry{Hours: 2, Minutes: 30, List: TaskList{ID: "L1", Name: "Dev"}, Task: "Fix bug", Description: "patch", Date: Date(2024, time.March, 5)}
	b := a
	b.Description = "follow-up"

	got := Dedup([]TimeEntry{a, b, a, a})
	if len(got) != 2 {
		t.Fatalf("Expected 2 unique entries, got %d", len(got))
	}
	if !slices.Contains(got, a) || !slices.Contains(got, b) {
		t.Errorf("Expected both distinct entries to survive, got %+v", got)
	}
}

func TestDedup_SortsByDateThenTask(t *testing.T) {
	entries := []TimeEntry{
		{Task: "b", Date: Date(2024, time.March, 7)},
		{Task: "z", Date: Date(2024, time.March, 2)},
		{Task: "a", Date: Date(2024, time.March, 7)},
	}

	got := Dedup(entries)
	want := []string{"z", "a", "b"}
	for i, e := range got {
		if e.Task != want[i] {
			t.Errorf("Position %d: expected %q, got %q", i, want[i], e.Task)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2024-03-05T09:15:00Z", want: Date(2024, time.March, 5)},
		{input: "2024-12-31", want: Date(2024, time.December, 31)},
		{input: "T10:00:00Z", wantErr: true},
		{input: "05/03/2024", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrDateParsing) {
					t.Fatalf("Expected ErrDateParsing, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTimeEntry_Duration(t *testing.T) {
	e := TimeEntry{Hours: 3, Minutes: 45}
	if got := e.Duration(); got != 225 {
		t.Errorf("Expected 225 minutes, got %d", got)
	}
}

// TestFilterProperties checks that pruning and deduplication are idempotent
// and that deduplication ignores input order.
func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("prune is idempotent", prop.ForAll(
		func(entries []TimeEntry) bool {
			once := Prune(entries, march2024)
			return slices.Equal(once, Prune(once, march2024))
		},
		genEntries(),
	))

	properties.Property("prune keeps only the target month", prop.ForAll(
		func(entries []TimeEntry) bool {
			for _, e := range Prune(entries, march2024) {
				if !march2024(e.Date) {
					return false
				}
			}
			return true
		},
		genEntries(),
	))

	properties.Property("dedup is idempotent", prop.ForAll(
		func(entries []TimeEntry) bool {
			once := Dedup(entries)
			return slices.Equal(once, Dedup(once))
		},
		genEntries(),
	))

	properties.Property("dedup ignores input order", prop.ForAll(
		func(entries []TimeEntry, seed uint64) bool {
			shuffled := slices.Clone(entries)
			r := rand.New(rand.NewPCG(seed, seed>>1))
			r.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			return slices.Equal(Dedup(entries), Dedup(shuffled))
		},
		genEntries(),
		gen.UInt64(),
	))

	properties.Property("dedup leaves no duplicates", prop.ForAll(
		func(entries []TimeEntry) bool {
			got := Dedup(entries)
			for i := 1; i < len(got); i++ {
				if got[i] == got[i-1] {
					return false
				}
			}
			for _, e := range entries {
				if !slices.Contains(got, e) {
					return false
				}
			}
			return true
		},
		genEntries(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func genEntries() gopter.Gen {
	return gen.SliceOf(genEntry())
}

// genEntry draws from small value pools so duplicates are common.
func genEntry() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 3),
		gen.OneConstOf(0, 15, 30),
		gen.OneConstOf("L1", "L2"),
		gen.OneConstOf("Fix bug", "Review"),
		gen.OneConstOf("patch", ""),
		gen.OneConstOf(2023, 2024),
		gen.OneConstOf(time.February, time.March, time.April),
		gen.IntRange(1, 3),
	).Map(func(values []interface{}) TimeEntry {
		listID := values[2].(string)
		return TimeEntry{
			Hours:       values[0].(int),
			Minutes:     values[1].(int),
			List:        TaskList{ID: listID, Name: "list " + listID},
			Task:        values[3].(string),
			Description: values[4].(string),
			Date:        Date(values[5].(int), values[6].(time.Month), values[7].(int)),
		}
	})
}
