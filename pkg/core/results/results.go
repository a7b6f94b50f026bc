// Package results summarises the club's Interclubs results per discipline.
package results

import (
	"fmt"

	"github.com/asbg75/interclubs/pkg/db"
)

// Disciplines in display order: men's and women's singles, men's, women's and mixed doubles
var Disciplines = []string{"SH", "SD", "DH", "DD", "DX"}

// Competition is an Interclubs competition the club enters teams in
type Competition struct {
	Key   string
	Name  string
	Title string
}

// Competitions lists the competitions in display order
var Competitions = []Competition{
	{Key: "mixed", Name: "Interclubs Comité 75 D1", Title: "Résultats des équipes mixtes"},
	{Key: "men", Name: "Interclubs Comité 75 D1 Masculin", Title: "Résultats des équipes masculines"},
	{Key: "women", Name: "Interclubs Comité 75 D1 Féminin", Title: "Résultats des équipes féminines"},
	{Key: "veterans", Name: "Interclubs Comité 75 D1 Vétérans", Title: "Résultats des équipes vétérans"},
}

// AllTeamsTitle is the title of the summary over every competition
const AllTeamsTitle = "Résultats de l'ensemble des équipes"

// LookupCompetition finds a competition by key
func LookupCompetition(key string) (Competition, error) {
	for _, c := range Competitions {
		if c.Key == key {
			return c, nil
		}
	}
	return Competition{}, fmt.Errorf("unknown competition %q", key)
}

// DisciplineSummary is the club's record in one discipline
type DisciplineSummary struct {
	Discipline    string  `json:"discipline"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"win_percentage"`
}

// Filter keeps the results of one competition, by full name
func Filter(rows []db.TeamResult, competition string) []db.TeamResult {
	var filtered []db.TeamResult
	for _, r := range rows {
		if r.Competition == competition {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Aggregate sums wins and losses per discipline across teams.
// Missing counts count as zero and disciplines without any match are left out.
func Aggregate(rows []db.TeamResult) []DisciplineSummary {
	wins := make(map[string]int)
	losses := make(map[string]int)
	for _, r := range rows {
		if r.Wins != nil {
			wins[r.Discipline] += *r.Wins
		}
		if r.Losses != nil {
			losses[r.Discipline] += *r.Losses
		}
	}

	summaries := []DisciplineSummary{}
	for _, d := range Disciplines {
		played := wins[d] + losses[d]
		if played == 0 {
			continue
		}
		summaries = append(summaries, DisciplineSummary{
			Discipline:    d,
			Wins:          wins[d],
			Losses:        losses[d],
			WinPercentage: float64(wins[d]) / float64(played),
		})
	}
	return summaries
}

// Section is a titled summary, the unit shown by the CLI and the dashboard
type Section struct {
	Key       string              `json:"key"`
	Title     string              `json:"title"`
	Summaries []DisciplineSummary `json:"summaries"`
}

// Sections builds the overall summary followed by one per competition,
// skipping those without any match played
func Sections(rows []db.TeamResult) []Section {
	var sections []Section
	if all := Aggregate(rows); len(all) > 0 {
		sections = append(sections, Section{Key: "all", Title: AllTeamsTitle, Summaries: all})
	}
	for _, c := range Competitions {
		if summaries := Aggregate(Filter(rows, c.Name)); len(summaries) > 0 {
			sections = append(sections, Section{Key: c.Key, Title: c.Title, Summaries: summaries})
		}
	}
	return sections
}
