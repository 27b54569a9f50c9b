package cmd

import (
	"github.com/spf13/cobra"

	"vacuum-research/scraper/retailer"
)

var retailerSite *string

func init() {
	retailerSite = retailerCmd.Flags().String("site", "amazon", "Retailer rule table to apply (amazon, bestbuy).")
	rootCmd.AddCommand(retailerCmd)
}

var retailerCmd = &cobra.Command{
	Use:   "retailer [--site amazon|bestbuy] [url...]",
	Short: "Scrapes retailer product pages into canonical records.",
	Long: "Scrapes price, star rating and review snippets from retailer product pages.\n" +
		"Without arguments the configured AMAZON_URL or BESTBUY_URL is used.",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := retailer.SiteFor(*retailerSite)
		if err != nil {
			return err
		}

		urls := args
		if len(urls) == 0 {
			urls = []string{configuredURL(site)}
		}

		target := retailer.New(site, newVisitor(false), logger)
		return collect(cmd.Context(), jobsFor(target, urls))
	},
}

func configuredURL(site retailer.Site) string {
	if site.Source.Tag == retailer.BestBuy.Source.Tag {
		return cfg.BestBuyURL
	}
	return cfg.AmazonURL
}
