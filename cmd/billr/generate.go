package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/christopherklint97/billr/internal/catalog"
	"github.com/christopherklint97/billr/internal/config"
	"github.com/christopherklint97/billr/internal/invoice"
	"github.com/christopherklint97/billr/internal/period"
	"github.com/christopherklint97/billr/internal/teamwork"
	"github.com/christopherklint97/billr/internal/timesheet"
)

type result struct {
	window  period.Window
	clients []timesheet.Client
	written []string
}

// generate runs one invoicing pass for the month picked by now and lastMonth.
// The client list is read before fetching so a broken clients.json fails
// before the slow part of the run.
func generate(ctx context.Context, cfg *config.Config, lastMonth bool, now time.Time, logger *slog.Logger) (*result, error) {
	window := period.Target(now, lastMonth)
	logger.Info("invoicing month", "month", window.FolderName(), "fromdate", window.FetchDate())

	clients, err := catalog.Load(cfg.Paths.Clients)
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}

	client := teamwork.NewClient(cfg.Teamwork.APIKey, cfg.Teamwork.BaseURL, cfg.Limits(), logger)
	entries, err := client.FetchEntries(ctx, window.Start())
	if err != nil {
		return nil, fmt.Errorf("fetching time entries: %w", err)
	}

	fetched := len(entries)
	entries = timesheet.Prune(entries, window.Contains)
	pruned := len(entries)
	entries = timesheet.Dedup(entries)
	logger.Info("filtered time entries", "fetched", fetched, "in_month", pruned, "unique", len(entries))

	if err := catalog.Associate(clients, entries); err != nil {
		return nil, fmt.Errorf("associating entries with clients: %w", err)
	}

	w := invoice.NewWriter(cfg.Paths.Output, logger)
	written, err := w.Write(window.FolderName(), clients)
	if err != nil {
		return nil, fmt.Errorf("writing invoices: %w", err)
	}

	if cfg.Report.Workbook {
		path := filepath.Join(w.Folder(window.FolderName()), invoice.WorkbookName)
		if err := invoice.WriteWorkbook(path, clients); err != nil {
			return nil, fmt.Errorf("writing workbook: %w", err)
		}
		logger.Info("wrote workbook", "path", path)
	}

	return &result{window: window, clients: clients, written: written}, nil
}
