package teamwork

import (
	"fmt"
	"strconv"

	"github.com/christopherklint97/billr/internal/timesheet"
	"github.com/tidwall/gjson"
)

// Field names in a time_entries.json element.
const (
	fieldHours       = "hours"
	fieldMinutes     = "minutes"
	fieldTaskListID  = "tasklistId"
	fieldTaskList    = "todo-list-name"
	fieldTaskName    = "todo-item-name"
	fieldDescription = "description"
	fieldDate        = "dateUserPerspective"
)

// parseEntry decodes one element of the "time-entries" array. Teamwork sends
// hours and minutes as strings.
func parseEntry(raw gjson.Result) (timesheet.TimeEntry, error) {
	hours, err := intField(raw, fieldHours)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}
	minutes, err := intField(raw, fieldMinutes)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}

	listID, err := stringField(raw, fieldTaskListID)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}
	listName, err := stringField(raw, fieldTaskList)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}
	task, err := stringField(raw, fieldTaskName)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}
	description, err := stringField(raw, fieldDescription)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}

	stamp, err := stringField(raw, fieldDate)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}
	date, err := timesheet.ParseDate(stamp)
	if err != nil {
		return timesheet.TimeEntry{}, err
	}

	return timesheet.TimeEntry{
		Hours:       hours,
		Minutes:     minutes,
		List:        timesheet.TaskList{ID: listID, Name: listName},
		Task:        task,
		Description: description,
		Date:        date,
	}, nil
}

func stringField(raw gjson.Result, name string) (string, error) {
	v := raw.Get(name)
	if v.Type != gjson.String {
		return "", fmt.Errorf("%w: %s", timesheet.ErrTimeEntryParsing, name)
	}
	return v.Str, nil
}

func intField(raw gjson.Result, name string) (int, error) {
	s, err := stringField(raw, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", timesheet.ErrTimeEntryParsing, name, err)
	}
	return n, nil
}
