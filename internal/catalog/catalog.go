// Package catalog loads the client list and attributes time entries to the
// client that owns each task list.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/christopherklint97/billr/internal/timesheet"
	"github.com/tidwall/gjson"
)

// DefaultPath is where billr looks for the client list.
const DefaultPath = "clients.json"

// ErrDuplicateList is returned when two clients claim the same list id.
var ErrDuplicateList = errors.New("list assigned to more than one client")

// Load reads and parses the client file at path.
func Load(path string) ([]timesheet.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading client list: %w", timesheet.ErrFile, err)
	}
	return Parse(data)
}

// Parse decodes a client list of the form
//
//	[{"name": "Acme", "lists": [{"id": "123", "name": "Website"}]}]
//
// Every field is required. The first missing or mistyped field fails the
// whole list.
func Parse(data []byte) ([]timesheet.Client, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: client list is not valid JSON", timesheet.ErrJSONParsing)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: clients", timesheet.ErrJSONParsing)
	}

	var clients []timesheet.Client
	owner := make(map[string]string)
	for i, raw := range root.Array() {
		client, err := parseClient(raw)
		if err != nil {
			return nil, fmt.Errorf("client %d: %w", i, err)
		}
		for _, l := range client.Lists {
			if prev, ok := owner[l.ID]; ok {
				return nil, fmt.Errorf("%w: list %q belongs to %q and %q", ErrDuplicateList, l.ID, prev, client.Name)
			}
			owner[l.ID] = client.Name
		}
		clients = append(clients, client)
	}

	return clients, nil
}

func parseClient(raw gjson.Result) (timesheet.Client, error) {
	name := raw.Get("name")
	if name.Type != gjson.String {
		return timesheet.Client{}, fmt.Errorf("%w: name", timesheet.ErrJSONParsing)
	}
	lists := raw.Get("lists")
	if !lists.IsArray() {
		return timesheet.Client{}, fmt.Errorf("%w: lists", timesheet.ErrJSONParsing)
	}

	client := timesheet.Client{Name: name.Str}
	for _, l := range lists.Array() {
		id := l.Get("id")
		if id.Type != gjson.String {
			return timesheet.Client{}, fmt.Errorf("%w: id", timesheet.ErrJSONParsing)
		}
		listName := l.Get("name")
		if listName.Type != gjson.String {
			return timesheet.Client{}, fmt.Errorf("%w: name", timesheet.ErrJSONParsing)
		}
		client.Lists = append(client.Lists, timesheet.TaskList{ID: id.Str, Name: listName.Str})
	}

	return client, nil
}
