package commands

import (
	"log/slog"
	"os"
	"poebuilds/lib/telemetry"
	"poebuilds/services/buildsearch"
	"time"

	"github.com/spf13/cobra"
)

var (
	searchOutput   string
	searchPages    int
	searchDelay    float64
	searchClasses  []string
	searchProgress bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "File thread references are appended to. (default from config: builds.txt)")
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 0, "Listing pages to crawl per class. (default from config: 1)")
	searchCmd.Flags().Float64Var(&searchDelay, "delay", 0, "Mean delay between listing pages in seconds. (default from config: 1)")
	searchCmd.Flags().StringSliceVarP(&searchClasses, "class", "c", nil, "Classes to crawl, repeatable. (default from config: all)")
	searchCmd.Flags().BoolVar(&searchProgress, "progress", true, "Draw a progress bar on stderr.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [--class <name>...] [--pages <n>] [--output <file>]",
	Short: "Discovers build-guide threads by crawling class forum listings in random order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("output") {
			cfg.Output = searchOutput
		}
		if flags.Changed("pages") {
			cfg.PagesPerClass = searchPages
		}
		if flags.Changed("delay") {
			cfg.DelayMeanSec = searchDelay
		}
		if flags.Changed("class") {
			cfg.Classes = searchClasses
		}

		client, err := newForumClient()
		if err != nil {
			return err
		}

		opts := buildsearch.Options{
			Filename:      cfg.Output,
			PagesPerClass: cfg.PagesPerClass,
			DelayMean:     cfg.DelayMean(),
		}
		if searchProgress {
			opts.Progress = os.Stderr
		}
		searcher := buildsearch.NewSearcher(client, opts)

		telemetry.InstrumentPerfStats(cmd.Context(), time.Second*30)

		t1 := time.Now()
		err = searcher.Crawl(cmd.Context(), cfg.Classes)
		if err != nil {
			return err
		}
		slog.Info("crawl finished", "seconds", time.Since(t1).Seconds(), "output", cfg.Output)
		return nil
	},
}
