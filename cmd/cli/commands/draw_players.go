package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/core/services"
)

// DrawPlayersCmd creates the drawPlayers command
func DrawPlayersCmd(app *AppContext) *cobra.Command {
	var opts services.DrawOptions

	cmd := &cobra.Command{
		Use:         "drawPlayers",
		Short:       "Fill the configured teams from the ranked players and store the draw",
		Args:        cobra.NoArgs,
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Rank = opts.Rank || opts.Ranking.Example
			app.Logger.Debug("drawPlayers command", zap.Bool("rank", opts.Rank), zap.Bool("example", opts.Ranking.Example))

			result, err := services.DrawPlayers(app.Ctx, app.Database, app.Cfg, app.Metrics, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printTeams(out, result.Outcome.Teams); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n✓ Draw %s stored (%d teams)\n", result.Run.ID, result.Run.TeamCount)
			fmt.Fprintf(out, "Players left out: %d women, %d men\n",
				len(result.Outcome.RemainingWomen), len(result.Outcome.RemainingMen))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Rank, "rank", false, "Rank the players again before drawing")
	cmd.Flags().BoolVar(&opts.Ranking.Example, "example", false, "Rank and draw the built-in example players")

	return cmd
}
