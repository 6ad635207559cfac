package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yschen25/apprank/internal/config"
	"github.com/yschen25/apprank/internal/report"
	"github.com/yschen25/apprank/internal/scrape"
	"github.com/yschen25/apprank/internal/snapshot"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch the configured listings and write a ranking snapshot",
	Long: `Fetches every configured App Store listing page in order, with a
fixed delay between requests, prints the ranking table, and writes the
snapshot JSON into the snapshot directory.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringSlice("url", []string{}, "Target listing URL (use multiple times; overrides configured targets)")
	scrapeCmd.Flags().DurationP("delay", "r", 2*time.Second, "Delay between requests")
	scrapeCmd.Flags().DurationP("timeout", "t", 30*time.Second, "HTTP request timeout")
	scrapeCmd.Flags().StringP("user-agent", "u", "", "HTTP User-Agent header (default: desktop browser)")

	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"request_delay", "delay"},
		{"request_timeout", "timeout"},
		{"user_agent", "user-agent"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, scrapeCmd.Flags().Lookup(bind.flagName)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// --url replaces the configured target list entirely; an unchanged
	// flag keeps the config-file or built-in targets.
	if cmd.Flags().Changed("url") {
		urls, _ := cmd.Flags().GetStringSlice("url")
		cfg.TargetURLs = urls
	}
	if len(cfg.TargetURLs) == 0 {
		return config.ErrNoTargetURLs
	}
	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	slog.Info("starting scrape", "targets", len(cfg.TargetURLs), "delay", cfg.RequestDelay.String())

	scraper := scrape.NewScraper(cfg.UserAgent, cfg.RequestTimeout, cfg.RequestDelay)
	defer scraper.Close()

	records := scraper.FetchAll(cmd.Context(), cfg.TargetURLs)
	scrape.SortByRanking(records)

	report.RenderRanking(os.Stdout, records)

	snap := &scrape.Snapshot{
		Timestamp: scrape.FormatTimestamp(time.Now()),
		Apps:      records,
	}
	path, err := snapshot.Write(snap, cfg.SnapshotDir)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	slog.Info("snapshot written", "path", path, "records", len(records))
	fmt.Printf("\n數據已保存到: %s\n", path)
	return nil
}
