package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/health"
	"github.com/Dallionking/waybar-finance/internal/market"
)

var (
	doctorCategory string
	doctorOffline  bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and provider connectivity",
	Long: `Run diagnostic checks against the local setup.

Checks are grouped into categories:
  config   - config file, watchlist symbols, API key
  network  - Finnhub quote, Yahoo crumb handshake, treasury yields
  runtime  - log directory

Use --category to run a single group, or --offline to skip the network.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		logPath := viper.GetString("log_file")
		if logPath == "" {
			if logPath, err = config.DefaultLogPath(); err != nil {
				return fmt.Errorf("resolving log path: %w", err)
			}
		}

		var prober health.Prober
		if !doctorOffline {
			log, closer, err := newLogger()
			if err != nil {
				return err
			}
			defer closer.Close()

			client, err := market.NewClient(marketOptions(), log)
			if err != nil {
				return fmt.Errorf("creating market client: %w", err)
			}
			prober = client
		}

		checker := health.NewChecker(path, logPath, prober)
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var report *health.Report
		if doctorCategory != "" {
			report = checker.RunCategory(ctx, doctorCategory)
		} else {
			report = checker.RunAll(ctx)
		}

		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
		if !report.Healthy {
			return fmt.Errorf("%d check(s) failed", report.Failed)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorCategory, "category", "", "run only checks in this category (config, network, runtime)")
	doctorCmd.Flags().BoolVar(&doctorOffline, "offline", false, "skip network checks")
	rootCmd.AddCommand(doctorCmd)
}
