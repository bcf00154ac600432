package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/waybar"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Print the watchlist as a table",
	Long: `Fetch a live quote for every watchlist symbol and print a table.

Symbols whose fetch fails are listed with the error instead of a price.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		cfg, _, err := config.Effective(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if !cfg.HasAPIKey() {
			return fmt.Errorf("no API key configured in %s; run with --tui to set one", path)
		}

		log, closer, err := newLogger()
		if err != nil {
			return err
		}
		defer closer.Close()

		client, err := market.NewClient(marketOptions(), log)
		if err != nil {
			return fmt.Errorf("creating market client: %w", err)
		}

		ctx, cancel := signalContext(oneShotTimeout)
		defer cancel()

		results := waybar.FetchAll(ctx, client, cfg.Stocks, cfg.APIKey, waybar.DefaultConcurrency)
		renderQuotes(cmd.OutOrStdout(), results)
		return nil
	},
}

// renderQuotes writes results as a borderless table.
func renderQuotes(w io.Writer, results []waybar.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	tw.AppendHeader(table.Row{"SYMBOL", "PRICE", "CHANGE"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})

	for _, r := range results {
		if r.Err != nil {
			tw.AppendRow(table.Row{r.Symbol, text.Colors{text.FgHiBlack}.Sprint("???"), text.Colors{text.FgHiBlack}.Sprint(errorKind(r.Err))})
			continue
		}
		change := fmt.Sprintf("%+.2f%%", r.Quote.Percent)
		switch {
		case r.Quote.Percent > 0:
			change = text.Colors{text.FgGreen}.Sprint(change)
		case r.Quote.Percent < 0:
			change = text.Colors{text.FgRed}.Sprint(change)
		}
		tw.AppendRow(table.Row{r.Symbol, fmt.Sprintf("%.2f", r.Quote.Price), change})
	}
	tw.Render()
}

func errorKind(err error) string {
	for _, k := range []market.Kind{market.KindCredential, market.KindNetwork, market.KindParse, market.KindEmpty} {
		if market.IsKind(err, k) {
			return k.String()
		}
	}
	return "error"
}

func init() {
	rootCmd.AddCommand(quotesCmd)
}
