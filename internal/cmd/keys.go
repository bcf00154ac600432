package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const keysReference = `# Dashboard keys

## Normal

| Key | Action |
|-----|--------|
| ↑ / k | Move up the watchlist |
| ↓ / j | Move down the watchlist |
| Enter | Load quote, chart and fundamentals |
| a | Add a symbol |
| d / Delete | Remove the selected symbol |
| q | Quit |

## Add symbol

| Key | Action |
|-----|--------|
| typing | Edit the symbol, search after two characters |
| ↑ / ↓ | Pick a search result |
| Enter | Add the picked result or the typed symbol |
| Backspace | Delete the last character |
| Esc | Cancel |

## API key

| Key | Action |
|-----|--------|
| typing / paste | Enter the Finnhub key |
| Enter | Save the key |
| Esc | Quit |

Ctrl+C quits from any mode. The watchlist is saved on exit.
`

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the dashboard key reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		style := glamour.WithAutoStyle()
		if viper.GetBool("no_color") {
			style = glamour.WithStandardStyle("notty")
		}
		r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(keysReference)
		if err != nil {
			return fmt.Errorf("rendering key reference: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
