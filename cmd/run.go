package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"vacuum-research/scraper/retailer"
	"vacuum-research/services"
)

var (
	runHTTPReviews *bool
	runSkipReddit  *bool
)

func init() {
	runHTTPReviews = runCmd.Flags().Bool("http-reviews", false, "Fetch review articles with a plain HTTP session.")
	runSkipReddit = runCmd.Flags().Bool("skip-discussions", false, "Skip the Reddit mining stage.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes every configured page, then mines discussions.",
	Long: "Runs the review-site and retailer scrapers over VACUUMWARS_URL, AMAZON_URL and\n" +
		"BESTBUY_URL, then the discussion miner. A failing stage does not stop the next one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var jobs []services.Job
		jobs = append(jobs, jobsFor(newReviewScraper(*runHTTPReviews, ""), []string{cfg.VacuumWarsURL})...)
		browser := newVisitor(false)
		jobs = append(jobs, jobsFor(retailer.New(retailer.Amazon, browser, logger), []string{cfg.AmazonURL})...)
		jobs = append(jobs, jobsFor(retailer.New(retailer.BestBuy, browser, logger), []string{cfg.BestBuyURL})...)

		var errs []error
		if err := collect(ctx, jobs); err != nil {
			logger.Error("[run] Page stage: %v", err)
			errs = append(errs, err)
		}

		if !*runSkipReddit {
			if err := mineDiscussions(ctx, cmd.OutOrStdout(), 0, "", ""); err != nil {
				logger.Error("[run] Discussion stage: %v", err)
				errs = append(errs, err)
			}
		}

		logger.Info("[run] Finished")
		return errors.Join(errs...)
	},
}
