package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/clients/icbadclient"
	"github.com/asbg75/interclubs/pkg/core/services"
)

// FetchResultsCmd creates the fetchResults command
func FetchResultsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "fetchResults",
		Short:       "Fetch the club's Interclubs results and store them",
		Args:        cobra.NoArgs,
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ic := app.Cfg.Interclubs
			app.Logger.Debug("fetchResults command", zap.String("base_url", ic.BaseURL), zap.String("instance", ic.Instance))

			client := icbadclient.NewClient(ic.BaseURL, ic.Instance, ic.ClubName, ic.Timeout, nil)
			result, err := services.FetchResults(app.Ctx, client, app.Database, app.Metrics, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored %d results of %d teams\n", result.Results, result.Teams)
			return nil
		},
	}
}

// ViewResultsCmd creates the viewResults command
func ViewResultsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "viewResults [mixed|men|women|veterans]",
		Short:       "Show wins and losses per discipline (all competitions by default)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var competition string
			if len(args) > 0 {
				competition = args[0]
			}

			sections, err := services.ViewResults(app.Ctx, app.Database, app.Logger, competition)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results stored yet, run fetchResults first.")
				return nil
			}
			return printSections(cmd.OutOrStdout(), sections)
		},
	}
}
