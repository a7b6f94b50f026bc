package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/asbg75/interclubs/pkg/core/services"
	"github.com/asbg75/interclubs/pkg/utils/render"
)

// ListDrawsCmd creates the listDraws command
func ListDrawsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "listDraws",
		Short:       "List the stored draws, most recent first",
		Args:        cobra.NoArgs,
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := services.ListDraws(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No draw stored yet.")
				return nil
			}

			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Source, strconv.Itoa(r.TeamCount)}
			}
			return render.Table(out, []string{"id", "date", "source", "teams"}, rows)
		},
	}
}

// ViewDrawCmd creates the viewDraw command
func ViewDrawCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "viewDraw [draw_id]",
		Short:       "Show the teams of a stored draw (defaults to the latest)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) > 0 {
				id = args[0]
			}

			summary, err := services.ViewDraw(app.Ctx, app.Database, app.Logger, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Draw %s (%s)\n", summary.Run.ID, summary.Run.CreatedAt.Local().Format(time.DateTime))
			for _, team := range summary.Teams {
				fmt.Fprintf(out, "\n%s\n", teamTitle(team.Category, team.Instance))
				if err := render.Table(out, playerHeaders, assignmentRows(team.Players)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
