package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"tululu/loader/internal/config"
	"tululu/loader/internal/container"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "loader <first-id> <last-id>",
	Short: "Download books from a numbered online catalog",
	Long: `Loader walks an inclusive range of catalog identifiers and, for every
book that exists, saves its plain text and cover image to disk together with
the metadata scraped from its page. Identifiers the catalog has no content
for are skipped; transient network failures are retried.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		first, last, err := parseRange(args)
		if err != nil {
			return err
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		app, err := container.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.Run(ctx, first, last)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func parseRange(args []string) (int, int, error) {
	first, err := strconv.Atoi(args[0])
	if err != nil || first < 1 {
		return 0, 0, fmt.Errorf("first id must be a positive integer, got %q", args[0])
	}

	last, err := strconv.Atoi(args[1])
	if err != nil || last < 1 {
		return 0, 0, fmt.Errorf("last id must be a positive integer, got %q", args[1])
	}

	if last < first {
		return 0, 0, fmt.Errorf("last id %d is below first id %d", last, first)
	}

	return first, last, nil
}
