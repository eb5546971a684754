package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local venue cache",
	}
	cmd.AddCommand(newCachePurgeCmd(app))
	return cmd
}

func newCachePurgeCmd(app *App) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached venues fetched longer ago than --older-than",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Cache.PurgeCache(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached venues older than %s.\n", n, olderThan)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Age above which cached venues are deleted; 0 deletes everything")

	return cmd
}
