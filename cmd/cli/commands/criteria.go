package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asbg75/interclubs/pkg/core/services"
)

// ReshapeCriteriaCmd creates the reshapeCriteria command
func ReshapeCriteriaCmd(app *AppContext) *cobra.Command {
	var src, dst string

	cmd := &cobra.Command{
		Use:   "reshapeCriteria",
		Short: "Convert a long criteria file to one column per scored sub-criterion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wide, err := services.ReshapeCriteria(app.Cfg.ResolvePath(src), app.Cfg.ResolvePath(dst), app.Logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d players written to %s\n", wide.Len(), app.Cfg.ResolvePath(dst))
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Long criteria file")
	cmd.Flags().StringVar(&dst, "dst", "", "Wide criteria file to write")
	cmd.MarkFlagRequired("src")
	cmd.MarkFlagRequired("dst")

	return cmd
}

// GenerateRankingsCmd creates the generateRankings command
func GenerateRankingsCmd(app *AppContext) *cobra.Command {
	var dst string
	var players int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generateRankings",
		Short: "Write a random rankings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := services.GenerateRankings(app.Cfg.ResolvePath(dst), players, seed, app.Logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d players written to %s\n", len(rows), app.Cfg.ResolvePath(dst))
			return nil
		},
	}

	cmd.Flags().StringVar(&dst, "dst", "rankings.csv", "Rankings file to write")
	cmd.Flags().IntVar(&players, "players", 50, "Number of players")
	cmd.Flags().Uint64Var(&seed, "seed", 2008, "Random seed")

	return cmd
}

// GenerateCriteriaCmd creates the generateCriteria command
func GenerateCriteriaCmd(app *AppContext) *cobra.Command {
	var rankings, dst string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generateCriteria",
		Short: "Write a random long criteria file for the players of a rankings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := services.GenerateCriteria(app.Cfg.ResolvePath(rankings), app.Cfg.ResolvePath(dst), app.Cfg.Criteria, seed, app.Logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d rows written to %s\n", len(rows), app.Cfg.ResolvePath(dst))
			return nil
		},
	}

	cmd.Flags().StringVar(&rankings, "rankings", "rankings.csv", "Rankings file of the players")
	cmd.Flags().StringVar(&dst, "dst", "criteria.csv", "Long criteria file to write")
	cmd.Flags().Uint64Var(&seed, "seed", 2008, "Random seed")

	return cmd
}
