package cmd

import (
	"github.com/spf13/cobra"

	"vacuum-research/scraper/reviewsite"
)

var (
	reviewHTTP  *bool
	reviewLabel *string
)

func init() {
	reviewHTTP = reviewsiteCmd.Flags().Bool("http", false, "Fetch with a plain HTTP session instead of the browser.")
	reviewLabel = reviewsiteCmd.Flags().String("label", "", "Text labelling the score container (default SCORE_TABLE_LABEL).")
	rootCmd.AddCommand(reviewsiteCmd)
}

var reviewsiteCmd = &cobra.Command{
	Use:   "reviewsite [--http] [--label <text>] [url...]",
	Short: "Scrapes expert score tables from review articles.",
	RunE: func(cmd *cobra.Command, args []string) error {
		urls := args
		if len(urls) == 0 {
			urls = []string{cfg.VacuumWarsURL}
		}
		return collect(cmd.Context(), jobsFor(newReviewScraper(*reviewHTTP, *reviewLabel), urls))
	},
}

func newReviewScraper(useHTTP bool, label string) *reviewsite.Scraper {
	if label == "" {
		label = cfg.ScoreTableLabel
	}
	return reviewsite.New(newVisitor(useHTTP), label, logger)
}
