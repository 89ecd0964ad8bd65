package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rungrid/rungrid/internal/config"
	"github.com/rungrid/rungrid/internal/flags"
	"github.com/rungrid/rungrid/internal/presentation"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List feature flags",
	Long: `List feature flags and their defaults as JSON.

Examples:
  rungrid flags
  rungrid flags | jq '.[] | select(.enabled != .default)'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dtos := presentation.FromFlags(flags.New(cfg.Flags).All(), flags.Defaults())
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatFlags(dtos)
	},
}

var flagsSetCmd = &cobra.Command{
	Use:   "set <name> <true|false>",
	Short: "Turn a feature flag on or off in the config file",
	Long: `Turn a feature flag on or off. The flags section of the config file
is rewritten; other sections and their comments are kept.

Examples:
  rungrid flags set icon-watcher false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, known := flags.Defaults()[name]; !known {
			return fmt.Errorf("unknown flag %q", name)
		}
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("flag value must be true or false, got %q", args[1])
		}

		updated := flags.WithDefaults(cfg.Flags)
		updated[name] = enabled
		path := configPath()
		if err := config.SaveFlags(path, updated); err != nil {
			return fmt.Errorf("saving flags: %w", err)
		}
		cfg.Flags = updated

		dtos := presentation.FromFlags(updated, flags.Defaults())
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatFlags(dtos)
	},
}

func init() {
	flagsCmd.AddCommand(flagsSetCmd)
	rootCmd.AddCommand(flagsCmd)
}
