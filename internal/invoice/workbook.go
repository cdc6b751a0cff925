package invoice

import (
	"fmt"

	"github.com/christopherklint97/billr/internal/timesheet"
	"github.com/xuri/excelize/v2"
)

const (
	WorkbookName = "summary.xlsx"

	entriesSheet = "Entries"
	totalsSheet  = "Totals"
)

var (
	entriesHeader = []interface{}{"Client", "List", "Date", "Task", "Hours", "Minutes", "Description"}
	totalsHeader  = []interface{}{"Client", "Hours", "Minutes", "Total Minutes"}
)

// WriteWorkbook saves every billable entry as a spreadsheet at path, with an
// Entries sheet (one row per entry) and a Totals sheet (one row per client).
func WriteWorkbook(path string, clients []timesheet.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), entriesSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("creating totals sheet: %w", err)
	}

	if err := setRow(f, entriesSheet, 1, entriesHeader); err != nil {
		return err
	}
	if err := setRow(f, totalsSheet, 1, totalsHeader); err != nil {
		return err
	}

	entryRow, totalRow := 2, 2
	for _, client := range clients {
		if !Billable(client) {
			continue
		}
		for _, bucket := range client.EntriesByList {
			for _, e := range bucket.Entries {
				row := []interface{}{client.Name, bucket.List.Name, e.Date.Format("2006-01-02"), e.Task, e.Hours, e.Minutes, e.Description}
				if err := setRow(f, entriesSheet, entryRow, row); err != nil {
					return err
				}
				entryRow++
			}
		}

		total := Total(client)
		if err := setRow(f, totalsSheet, totalRow, []interface{}{client.Name, total / 60, total % 60, total}); err != nil {
			return err
		}
		totalRow++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: saving workbook: %w", timesheet.ErrFile, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
