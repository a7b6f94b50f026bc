package allocator

import (
	"fmt"

	"github.com/asbg75/interclubs/pkg/core/model"
)

// Validation rule names
const (
	RuleUniquePlayer = "UniquePlayer"
	RuleTeamSize     = "TeamSize"
	RuleGender       = "Gender"
	RuleTeamCount    = "TeamCount"
)

// ValidateDraw validates a draw against the team configuration.
// Returns a slice of validation errors for any violation; an empty slice means the draw is valid.
func ValidateDraw(outcome *DrawOutcome, teams []TeamComposition) []TeamValidationError {
	errors := []TeamValidationError{}
	if outcome == nil {
		return errors
	}

	compositions := make(map[string]TeamComposition, len(teams))
	for _, team := range teams {
		compositions[team.Category] = team
	}

	instances := make(map[string]int)
	assigned := make(map[string]TeamDraw)

	for _, team := range outcome.Teams {
		instances[team.Category]++

		composition, ok := compositions[team.Category]
		if !ok {
			errors = append(errors, TeamValidationError{
				Category:    team.Category,
				Instance:    team.Instance,
				Rule:        RuleTeamCount,
				Description: fmt.Sprintf("category %q is not configured", team.Category),
			})
			continue
		}

		if len(team.Women) != composition.Women {
			errors = append(errors, TeamValidationError{
				Category:    team.Category,
				Instance:    team.Instance,
				Rule:        RuleTeamSize,
				Description: fmt.Sprintf("team has %d women but %d are configured", len(team.Women), composition.Women),
			})
		}
		if len(team.Men) != composition.Men {
			errors = append(errors, TeamValidationError{
				Category:    team.Category,
				Instance:    team.Instance,
				Rule:        RuleTeamSize,
				Description: fmt.Sprintf("team has %d men but %d are configured", len(team.Men), composition.Men),
			})
		}

		errors = append(errors, checkGender(team, team.Women, model.GenderWomen)...)
		errors = append(errors, checkGender(team, team.Men, model.GenderMen)...)

		for _, player := range team.Players() {
			if previous, dup := assigned[player.Licence]; dup {
				errors = append(errors, TeamValidationError{
					Category: team.Category,
					Instance: team.Instance,
					Rule:     RuleUniquePlayer,
					Description: fmt.Sprintf("player %s is already in %s %d",
						player.Licence, previous.Category, previous.Instance),
				})
				continue
			}
			assigned[player.Licence] = team
		}
	}

	for _, team := range teams {
		if instances[team.Category] != team.Number {
			errors = append(errors, TeamValidationError{
				Category:    team.Category,
				Rule:        RuleTeamCount,
				Description: fmt.Sprintf("%d teams drawn but %d are configured", instances[team.Category], team.Number),
			})
		}
	}

	return errors
}

func checkGender(team TeamDraw, players []model.RankedPlayer, gender string) []TeamValidationError {
	var errors []TeamValidationError
	for _, player := range players {
		if player.Genre != gender {
			errors = append(errors, TeamValidationError{
				Category:    team.Category,
				Instance:    team.Instance,
				Rule:        RuleGender,
				Description: fmt.Sprintf("player %s (%s) is in a %s slot", player.Licence, player.Genre, gender),
			})
		}
	}
	return errors
}
