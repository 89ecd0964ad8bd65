package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rungrid/rungrid/internal/backend/memory"
	"github.com/rungrid/rungrid/internal/flags"
	"github.com/rungrid/rungrid/internal/presentation"
	"github.com/rungrid/rungrid/internal/settings"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Show the folders a shortcut scan searches",
	Long: `Show the folders a shortcut scan searches, as JSON.

Saved roots come from the settings store. Without saved roots the
backend's defaults are listed.

Examples:
  rungrid roots
  rungrid roots | jq '.roots[]'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, closeStore, err := openStore(flags.New(cfg.Flags))
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		roots, saved := store.ScanRoots(ctx)
		if !saved {
			if roots, err = memory.Demo(nil).ListScanRoots(ctx); err != nil {
				return fmt.Errorf("listing default roots: %w", err)
			}
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatRoots(presentation.FromRoots(roots, saved))
	},
}

var rootsSetCmd = &cobra.Command{
	Use:   "set <folder>...",
	Short: "Save the folders a shortcut scan searches",
	Long: `Save the folders a shortcut scan searches. Blank entries and
case-insensitive duplicates are dropped.

Examples:
  rungrid roots set /Applications ~/Desktop`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(flags.New(cfg.Flags))
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		roots := settings.NormalizeRoots(args)
		if len(roots) == 0 {
			return fmt.Errorf("no folders given")
		}
		if err := store.SaveScanRoots(ctx, roots); err != nil {
			return fmt.Errorf("saving roots: %w", err)
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatRoots(presentation.FromRoots(roots, true))
	},
}

func init() {
	rootsCmd.AddCommand(rootsSetCmd)
	rootCmd.AddCommand(rootsCmd)
}
