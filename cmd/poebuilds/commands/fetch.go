package commands

import (
	"errors"
	"log/slog"
	"poebuilds/services/buildfetch"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	fetchOutput string
	fetchFrom   string
	fetchOutDir string
	fetchRate   float64
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "File a single build is written to. (default: <thread-id>.txt)")
	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "Fetch every thread listed in this discovery output instead.")
	fetchCmd.Flags().StringVar(&fetchOutDir, "out-dir", "", "Directory builds fetched with --from go to. (default from config: corpus)")
	fetchCmd.Flags().Float64Var(&fetchRate, "rate", 0, "Requests per second while fetching with --from. (default from config: 1)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch (<thread-id> [--output <file>] | --from <builds.txt> [--out-dir <dir>])",
	Short: "Fetches the first post of build threads and writes their cleaned text.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("out-dir") {
			cfg.OutDir = fetchOutDir
		}
		if flags.Changed("rate") {
			cfg.RequestsPerSec = fetchRate
		}

		if (fetchFrom == "") == (len(args) == 0) {
			return errors.New("expected either a thread id or --from")
		}

		client, err := newForumClient()
		if err != nil {
			return err
		}
		fetcher := buildfetch.NewFetcher(client)

		if len(args) == 1 {
			threadId := args[0]
			output := fetchOutput
			if output == "" {
				output = threadId + ".txt"
			}
			err := fetcher.Write(cmd.Context(), threadId, output)
			if err != nil {
				return err
			}
			slog.Info("wrote build", "thread_id", threadId, "output", output)
			return nil
		}

		limit := rate.Inf
		if cfg.RequestsPerSec > 0 {
			limit = rate.Limit(cfg.RequestsPerSec)
		}
		limiter := rate.NewLimiter(limit, 1)

		t1 := time.Now()
		written, err := fetcher.FetchAll(cmd.Context(), fetchFrom, cfg.OutDir, limiter)
		slog.Info("fetched builds", "written", written, "seconds", time.Since(t1).Seconds(), "out_dir", cfg.OutDir)
		return err
	},
}
