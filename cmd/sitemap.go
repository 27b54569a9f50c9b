package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sitemapHTTP *bool

func init() {
	sitemapHTTP = sitemapCmd.Flags().Bool("http", false, "Fetch with a plain HTTP session instead of the browser.")
	rootCmd.AddCommand(sitemapCmd)
}

var sitemapCmd = &cobra.Command{
	Use:   "sitemap [--http] [url]",
	Short: "Lists review and guide links found on one sitemap page.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sitemapURL := cfg.SitemapURL
		if len(args) == 1 {
			sitemapURL = args[0]
		}

		urls, err := newReviewScraper(*sitemapHTTP, "").ReviewURLs(cmd.Context(), sitemapURL)
		if err != nil {
			return err
		}
		for _, u := range urls {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}
