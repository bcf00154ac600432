package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/events"
	"github.com/Dallionking/waybar-finance/internal/logging"
	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/views"
	"github.com/Dallionking/waybar-finance/internal/waybar"
)

// oneShotTimeout bounds the whole Waybar refresh so a hung upstream never
// stalls the bar.
const oneShotTimeout = 20 * time.Second

var (
	cfgFile string
	logFile string
	verbose bool
	noColor bool
	tuiMode bool
)

var rootCmd = &cobra.Command{
	Use:   "waybar-finance",
	Short: "Stock ticker for Waybar with an interactive dashboard",
	Long: `waybar-finance: watchlist quotes for your status bar

Without flags, fetches a quote for every symbol in the watchlist and prints
one JSON line for a Waybar custom module. With --tui, opens the full-screen
dashboard to manage the watchlist, inspect fundamentals and charts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		log, closer, err := newLogger()
		if err != nil {
			return err
		}
		defer closer.Close()

		if viper.GetBool("tui") {
			return views.RunDashboard(views.Options{
				ConfigPath:     path,
				Market:         marketOptions(),
				TickPeriod:     events.DefaultTickPeriod,
				MarketSchedule: viper.GetString("market_schedule"),
				FetchTimeout:   events.DefaultFetchTimeout,
				Logger:         log,
			})
		}

		cfg, _, err := config.Effective(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		client, err := market.NewClient(marketOptions(), log)
		if err != nil {
			return fmt.Errorf("creating market client: %w", err)
		}

		ctx, cancel := signalContext(oneShotTimeout)
		defer cancel()
		return waybar.Emit(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), client, cfg, log)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/waybar-finance/config.json)")
	pf.StringVar(&logFile, "log-file", "", "log file (default is $XDG_CACHE_HOME/waybar-finance/waybar-finance.log)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVarP(&tuiMode, "tui", "t", false, "open the interactive dashboard")

	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("log_file", pf.Lookup("log-file"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("no_color", pf.Lookup("no-color"))
	_ = viper.BindPFlag("tui", rootCmd.Flags().Lookup("tui"))
}

func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("market_schedule", events.DefaultMarketSchedule)

	if viper.GetBool("no_color") || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		text.DisableColors()
	}
}

// configPath returns the --config override or the per-user default.
func configPath() (string, error) {
	if p := viper.GetString("config"); p != "" {
		return p, nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return p, nil
}

// newLogger opens the file logger. stdout belongs to Waybar or the
// dashboard, so nothing is ever logged there.
func newLogger() (zerolog.Logger, io.Closer, error) {
	path := viper.GetString("log_file")
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("resolving log path: %w", err)
		}
		path = p
	}

	level := "info"
	if viper.GetBool("verbose") {
		level = "debug"
	}
	log, closer, err := logging.New(logging.Config{Level: level, File: path})
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("initializing logger: %w", err)
	}
	return log, closer, nil
}

// marketOptions reads endpoint overrides from the environment, which tests
// and mirrors use. Empty values select the public endpoints.
func marketOptions() market.Options {
	return market.Options{
		FinnhubURL: viper.GetString("finnhub_url"),
		YahooURL:   viper.GetString("yahoo_url"),
	}
}

// signalContext is cancelled on SIGINT/SIGTERM or after timeout.
func signalContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}
