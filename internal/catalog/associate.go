package catalog

import (
	"fmt"

	"github.com/christopherklint97/billr/internal/timesheet"
)

type listOwner struct {
	client int
	list   timesheet.TaskList
}

// Associate files each entry under the client that owns its list, creating
// the client's bucket for that list on first use. The entry's list name is
// replaced with the catalog name. An entry whose list no client owns aborts
// the whole run.
func Associate(clients []timesheet.Client, entries []timesheet.TimeEntry) error {
	index := make(map[string]listOwner)
	for i, c := range clients {
		for _, l := range c.Lists {
			if _, ok := index[l.ID]; !ok {
				index[l.ID] = listOwner{client: i, list: l}
			}
		}
	}

	for _, entry := range entries {
		owner, ok := index[entry.List.ID]
		if !ok {
			return fmt.Errorf("%w: no client for list %q (%s)", timesheet.ErrClientNotFound, entry.List.ID, entry.List.Name)
		}
		entry.List = owner.list
		addEntry(&clients[owner.client], entry)
	}

	return nil
}

func addEntry(client *timesheet.Client, entry timesheet.TimeEntry) {
	for i := range client.EntriesByList {
		if client.EntriesByList[i].List.ID == entry.List.ID {
			client.EntriesByList[i].Entries = append(client.EntriesByList[i].Entries, entry)
			return
		}
	}
	client.EntriesByList = append(client.EntriesByList, timesheet.ListEntries{
		List:    entry.List,
		Entries: []timesheet.TimeEntry{entry},
	})
}
