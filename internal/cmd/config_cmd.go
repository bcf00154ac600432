package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// --- config (parent) ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display where the configuration lives and the settings in effect after
merging the local file with the shared fallback (shared.yaml and environment).

Subcommands:
  path   Print the local config file path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		cfg, shared, err := config.Effective(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.Title.Render("Configuration"))
		fmt.Fprintln(out)

		local := path
		if !config.Exists(path) {
			local += " " + styles.Dim("(not created yet)")
		}
		fmt.Fprintln(out, styles.Label.Render("LOCAL")+"     "+styles.Value.Render(local))
		sharedFile := styles.Dim("none")
		if shared != nil && shared.File() != "" {
			sharedFile = styles.Value.Render(shared.File())
		}
		fmt.Fprintln(out, styles.Label.Render("SHARED")+"    "+sharedFile)
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.Divider(50))
		fmt.Fprintln(out)

		data, err := yaml.Marshal(redacted(cfg))
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Fprint(out, string(data))

		if errs := config.Validate(cfg); len(errs) > 0 {
			fmt.Fprintln(out)
			for _, ve := range errs {
				fmt.Fprintln(out, styles.Colored("! ", styles.StatusWarn)+ve.Error())
			}
		}
		return nil
	},
}

// --- config path ---

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the local config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// redacted hides all but the last four characters of the API key.
func redacted(cfg config.Config) config.Config {
	out := cfg.Clone()
	if n := len(out.APIKey); n > 4 {
		out.APIKey = strings.Repeat("*", n-4) + out.APIKey[n-4:]
	} else if n > 0 {
		out.APIKey = strings.Repeat("*", n)
	}
	return out
}

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
