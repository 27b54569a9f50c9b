package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vacuum-research/models"
	"vacuum-research/scraper/reddit"
	"vacuum-research/services"
	"vacuum-research/storage"
)

// rankedBrands is how many brands the console ranking shows.
const rankedBrands = 5

var (
	discussionLimit  *int
	discussionOut    *string
	discussionReport *string
)

func init() {
	discussionLimit = discussionsCmd.Flags().Int("limit", 0, "Total posts to request across communities (default REDDIT_LIMIT).")
	discussionOut = discussionsCmd.Flags().String("out", "", "Corpus JSON path (default CORPUS_PATH).")
	discussionReport = discussionsCmd.Flags().String("report", "", "Brand sentiment CSV path (default REPORT_PATH).")
	rootCmd.AddCommand(discussionsCmd)
}

var discussionsCmd = &cobra.Command{
	Use:   "discussions [--limit N] [--out corpus.json] [--report brands.csv]",
	Short: "Mines Reddit for robot-vacuum threads and scores brand sentiment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mineDiscussions(cmd.Context(), cmd.OutOrStdout(), *discussionLimit, *discussionOut, *discussionReport)
	},
}

func mineDiscussions(ctx context.Context, w io.Writer, limit int, out, reportPath string) error {
	if limit <= 0 {
		limit = cfg.RedditLimit
	}
	if out == "" {
		out = cfg.CorpusPath
	}
	if reportPath == "" {
		reportPath = cfg.ReportPath
	}

	client, err := reddit.NewClient(reddit.Credentials{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		UserAgent:    cfg.RedditUserAgent,
	}, reddit.Options{}, logger)
	if err != nil {
		if errors.Is(err, reddit.ErrCredentialMissing) {
			logger.Error("[reddit] %v", err)
			logger.Error("[reddit] Add the missing keys to .env, e.g. REDDIT_CLIENT_ID=..., REDDIT_CLIENT_SECRET=..., REDDIT_USER_AGENT=\"vacuum-research/1.0 by <username>\"")
		}
		return err
	}

	miner := reddit.NewMiner(client, cfg.Subreddits, cfg.Keywords, logger)
	posts, err := miner.Mine(ctx, limit)
	if err != nil {
		return fmt.Errorf("mine discussions: %w", err)
	}

	csvWriter, err := storage.NewCSVWriter(reportPath)
	if err != nil {
		return err
	}
	defer csvWriter.Close()

	aggregator := services.NewSentimentAggregator(nil, logger)
	if err := publishDiscussions(w, posts, storage.NewJSONWriter(cfg.OutputDir), out, csvWriter, aggregator); err != nil {
		return err
	}
	logger.Info("[sentiment] Brand report saved to %s", reportPath)
	return nil
}

// publishDiscussions saves the corpus, scores it against the brand list and
// hands the report to the console and to reports.
func publishDiscussions(w io.Writer, posts []*models.DiscussionPost, corpus storage.CorpusWriter, out string,
	reports storage.ReportWriter, aggregator *services.SentimentAggregator) error {
	if err := corpus.WriteCorpus(out, posts); err != nil {
		return err
	}
	logger.Info("[reddit] Saved %d posts to %s", len(posts), out)

	report := aggregator.Aggregate(posts, cfg.Brands)
	services.PrintReport(w, report, rankedBrands)
	return reports.WriteReport(report)
}
