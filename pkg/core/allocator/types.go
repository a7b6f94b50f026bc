package allocator

import "github.com/asbg75/interclubs/pkg/core/model"

// TeamComposition describes one team category of the club
type TeamComposition struct {
	// Category is the team category name (e.g. "mixte", "masculine")
	Category string

	// Number is how many teams of this category are entered
	Number int

	// Women and Men are the number of players of each gender in one team
	Women int
	Men   int
}

// Size returns the number of players in one team of the category
func (tc TeamComposition) Size() int {
	return tc.Women + tc.Men
}

// Requirements returns the total number of women and men needed to fill every team
func Requirements(teams []TeamComposition) (women, men int) {
	for _, team := range teams {
		women += team.Number * team.Women
		men += team.Number * team.Men
	}
	return women, men
}

// DrawConfig contains everything needed to draw the teams
type DrawConfig struct {
	// Teams in configuration order; earlier categories get the best players
	Teams []TeamComposition

	// Women and Men are the ranked players of each gender, best first
	Women []model.RankedPlayer
	Men   []model.RankedPlayer
}

// TeamDraw holds the players drawn for one team instance
type TeamDraw struct {
	Category string

	// Instance is the 1-based number of the team within its category
	Instance int

	Women []model.RankedPlayer
	Men   []model.RankedPlayer
}

// Players returns the women then the men of the team
func (td TeamDraw) Players() []model.RankedPlayer {
	players := make([]model.RankedPlayer, 0, len(td.Women)+len(td.Men))
	players = append(players, td.Women...)
	return append(players, td.Men...)
}

// DrawOutcome represents the result of a team draw
type DrawOutcome struct {
	// Teams in draw order: categories in configuration order, instances ascending
	Teams []TeamDraw

	// RemainingWomen and RemainingMen are the players left in the pools, in rank order
	RemainingWomen []model.RankedPlayer
	RemainingMen   []model.RankedPlayer

	// ValidationErrors contains any post-condition violation found in the draw
	ValidationErrors []TeamValidationError

	// Success indicates the draw passed validation
	Success bool
}

// TeamValidationError represents a validation error for a drawn team
type TeamValidationError struct {
	Category    string
	Instance    int
	Rule        string
	Description string
}
