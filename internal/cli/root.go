package cli

import (
	"github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/planner"
	"github.com/spf13/cobra"
)

// App holds references to all use cases used by CLI commands.
type App struct {
	Plan  app.PlanUseCase
	Cache app.CacheUseCase
	// Intent is nil when the LLM is disabled; plan --ask then fails.
	Intent app.IntentUseCase

	Tables planner.Tables
}

// NewRootCmd creates the top-level "outing" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "outing",
		Short:         "Budget-aware evening itinerary planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newSkeletonCmd(app),
		newCacheCmd(app),
	)

	return root
}
