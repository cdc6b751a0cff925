package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/christopherklint97/billr/internal/config"
	"github.com/christopherklint97/billr/internal/invoice"
	"github.com/christopherklint97/billr/internal/notify"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "billr",
	Short: "Build monthly client invoices from Teamwork time entries",
	Long: "billr fetches the month's Teamwork time entries, matches them to the clients in clients.json " +
		"by task list, and writes one invoice summary per client under output/<YYYY-Month>/.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolP("last-month", "l", false, "Invoice last month instead of the current month")
	rootCmd.Flags().String("config", config.DefaultPath, "Path to the config file")
	rootCmd.Flags().Bool("xlsx", false, "Also write a summary.xlsx workbook next to the invoices")
	rootCmd.Flags().BoolP("verbose", "v", false, "Log every API request")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(path string) (*config.Config, error) {
	// A .env file is optional; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	lastMonth, _ := cmd.Flags().GetBool("last-month")
	configPath, _ := cmd.Flags().GetString("config")
	workbook, _ := cmd.Flags().GetBool("xlsx")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if workbook {
		cfg.Report.Workbook = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	res, err := generate(ctx, cfg, lastMonth, time.Now(), logger)
	if err != nil {
		return err
	}

	fmt.Println(invoice.Summary(res.window.FolderName(), res.clients))

	if err := notify.InvoicesReady(notify.New(cfg.Notifications.Enabled), res.window.FolderName(), len(res.written)); err != nil {
		logger.Warn("notification failed", "error", err)
	}

	return nil
}
