// Package cmd wires configuration, scrapers and writers into the
// vacuum-research command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vacuum-research/config"
	"vacuum-research/fetch"
	"vacuum-research/scraper"
	"vacuum-research/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:           "vacuum-research",
	Short:         "vacuum-research collects robot-vacuum specs, expert scores and community sentiment.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = utils.NewLogger(cfg.LogLevel).With("run_id", uuid.NewString())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pageOpener picks the session kind for page extraction. The browser is the
// default; the plain HTTP session only suits server-rendered pages.
func pageOpener(useHTTP bool) fetch.Opener {
	if useHTTP {
		return fetch.NewHTTPOpener(fetch.HTTPOptions{
			UserAgent:         cfg.UserAgent,
			NavigationTimeout: cfg.NavigationTimeout,
			CloudflareBypass:  cfg.CloudflareBypass,
		}, logger)
	}
	return fetch.NewChromeOpener(fetch.ChromeOptions{
		Headless:          cfg.Headless,
		ChromeBin:         cfg.ChromeBin,
		ProfileDir:        cfg.ProfileDir,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		ReadyTimeout:      cfg.ReadyTimeout,
	}, logger)
}

func newVisitor(useHTTP bool) *scraper.Visitor {
	return scraper.NewVisitor(pageOpener(useHTTP), cfg.SnapshotDir, logger)
}
