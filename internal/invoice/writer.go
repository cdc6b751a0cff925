package invoice

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/christopherklint97/billr/internal/timesheet"
)

// DefaultDir is the root folder invoices are written under.
const DefaultDir = "output"

// Writer writes one text file per billable client into <Dir>/<folder>/.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir, logger: logger}
}

// Folder returns the directory a run for folder writes into.
func (w *Writer) Folder(folder string) string {
	return filepath.Join(w.dir, folder)
}

// Write renders each client with billable time to "<client name>.txt" and
// returns the paths written. The client name is used as the file name as-is.
// Files written before a failure stay on disk.
func (w *Writer) Write(folder string, clients []timesheet.Client) ([]string, error) {
	dir := w.Folder(folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", timesheet.ErrFile, err)
	}

	var written []string
	for _, client := range clients {
		if !Billable(client) {
			w.logger.Debug("skipping client with no time", "client", client.Name)
			continue
		}

		path := filepath.Join(dir, client.Name+".txt")
		if err := os.WriteFile(path, []byte(Render(client)), 0644); err != nil {
			return written, fmt.Errorf("%w: writing invoice for %s: %w", timesheet.ErrFile, client.Name, err)
		}
		w.logger.Info("wrote invoice", "client", client.Name, "path", path, "minutes", Total(client))
		written = append(written, path)
	}

	return written, nil
}
