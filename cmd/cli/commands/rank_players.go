package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/core/services"
	"github.com/asbg75/interclubs/pkg/utils/render"
)

// RankPlayersCmd creates the rankPlayers command
func RankPlayersCmd(app *AppContext) *cobra.Command {
	var opts services.RankOptions

	cmd := &cobra.Command{
		Use:   "rankPlayers",
		Short: "Rank the participating players of each gender and save the rankings files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("rankPlayers command",
				zap.String("rankings", opts.RankingsPath),
				zap.String("criteria", opts.CriteriaPath),
				zap.Bool("example", opts.Example))

			result, err := services.RankPlayers(app.Cfg, app.Metrics, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, genre := range result.Ranking.Genders {
				fmt.Fprintf(out, "\n%s\n", genre)
				if err := render.Table(out, playerHeaders, playerRows(result.Ranking.ByGender[genre])); err != nil {
					return err
				}
			}

			fmt.Fprintln(out)
			if opts.Example {
				fmt.Fprintln(out, "Example players, rankings files left untouched")
			}
			for _, file := range result.Files {
				fmt.Fprintf(out, "✓ Saved %s\n", file)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.RankingsPath, "rankings", "", "Rankings file (defaults to rankingsPath from the config)")
	cmd.Flags().StringVar(&opts.CriteriaPath, "criteria", "", "Long criteria file (defaults to criteriaPath from the config)")
	cmd.Flags().BoolVar(&opts.Example, "example", false, "Use the built-in example players")
	cmd.MarkFlagsMutuallyExclusive("example", "rankings")
	cmd.MarkFlagsMutuallyExclusive("example", "criteria")

	return cmd
}
