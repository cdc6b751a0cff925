package timesheet

import "errors"

// Error kinds surfaced by the invoicing pipeline. Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	ErrTimeEntryParsing = errors.New("time entry parsing")
	ErrDateParsing      = errors.New("date parsing")
	ErrNetworkRequest   = errors.New("network request")
	ErrJSONParsing      = errors.New("json parsing")
	ErrFile             = errors.New("file")
	ErrClientNotFound   = errors.New("client not found")
)
