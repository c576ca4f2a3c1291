package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"poebuilds/lib/restyutil"
	"poebuilds/lib/scrapers/poeforum"
	"poebuilds/lib/serviceutil"
	"poebuilds/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpDir    string

	tel telemetry.Telemetry
	cfg Config
)

var rootCmd = &cobra.Command{
	Use:   "poebuilds",
	Short: "poebuilds crawls the Path of Exile forum for build guides and collects them into a text corpus.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "poebuilds")
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no telemetry config found, telemetry disabled")
		} else if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
		}

		cfg, err = LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Config file, merged with its .local variant.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-http", "", "With --verbose, write every HTTP exchange to this directory.")
}

func newForumClient() (*poeforum.Client, error) {
	opts := poeforum.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Timeout:          cfg.Timeout(),
		Headers:          cfg.Headers,
		CloudflareBypass: cfg.CloudflareBypass,
	}
	if verbose && dumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(dumpDir)
		if err != nil {
			return nil, err
		}
		opts.InstrumentOutput = out
	}
	return poeforum.NewClient(opts)
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}
	if err != nil {
		serviceutil.Fatal("poebuilds failed", err)
	}
}
