package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/asbg75/interclubs/pkg/core/allocator"
	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/results"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/utils/render"
)

var playerHeaders = []string{"licence", "nom", "prenom", "genre", "ranking", "score"}

func playerRows(players []model.RankedPlayer) [][]string {
	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = []string{p.Licence, p.Nom, p.Prenom, p.Genre, p.Ranking.String(), formatScore(p.Score)}
	}
	return rows
}

func assignmentRows(assignments []db.DrawAssignment) [][]string {
	rows := make([][]string, len(assignments))
	for i, a := range assignments {
		rows[i] = []string{a.Licence, a.Nom, a.Prenom, a.Genre, model.Rank(a.Ranking).String(), formatScore(a.Score)}
	}
	return rows
}

func summaryRows(summaries []results.DisciplineSummary) [][]string {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.Discipline, strconv.Itoa(s.Wins), strconv.Itoa(s.Losses), formatPercent(s.WinPercentage)}
	}
	return rows
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}

func formatPercent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + " %"
}

func teamTitle(category string, instance int) string {
	return fmt.Sprintf("%s %d", category, instance)
}

func printTeams(w io.Writer, teams []allocator.TeamDraw) error {
	for _, team := range teams {
		fmt.Fprintf(w, "\n%s\n", teamTitle(team.Category, team.Instance))
		if err := render.Table(w, playerHeaders, playerRows(team.Players())); err != nil {
			return err
		}
	}
	return nil
}

func printSections(w io.Writer, sections []results.Section) error {
	for _, section := range sections {
		fmt.Fprintf(w, "\n%s\n", section.Title)
		if len(section.Summaries) == 0 {
			fmt.Fprintln(w, "No match played.")
			continue
		}
		headers := []string{"Discipline", "Victoires", "Défaites", "Victoires (%)"}
		if err := render.Table(w, headers, summaryRows(section.Summaries)); err != nil {
			return err
		}
	}
	return nil
}
