package allocator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrInvalidComposition  = errors.New("invalid team composition")
)

// InsufficientPlayersError reports the shortfall of both genders at once
type InsufficientPlayersError struct {
	WomenNeeded    int
	WomenAvailable int
	MenNeeded      int
	MenAvailable   int
}

// WomenShortfall returns how many women are missing, 0 when there are enough
func (e *InsufficientPlayersError) WomenShortfall() int {
	return max(e.WomenNeeded-e.WomenAvailable, 0)
}

// MenShortfall returns how many men are missing, 0 when there are enough
func (e *InsufficientPlayersError) MenShortfall() int {
	return max(e.MenNeeded-e.MenAvailable, 0)
}

func (e *InsufficientPlayersError) Error() string {
	var parts []string
	if s := e.WomenShortfall(); s > 0 {
		parts = append(parts, fmt.Sprintf("missing %d women (%d needed, %d available)", s, e.WomenNeeded, e.WomenAvailable))
	}
	if s := e.MenShortfall(); s > 0 {
		parts = append(parts, fmt.Sprintf("missing %d men (%d needed, %d available)", s, e.MenNeeded, e.MenAvailable))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientPlayers, strings.Join(parts, ", "))
}

func (e *InsufficientPlayersError) Is(target error) bool {
	return target == ErrInsufficientPlayers
}

// ValidateCompositions checks the team configuration itself: named, unique
// categories, non-negative counts and at least one player per entered team
func ValidateCompositions(teams []TeamComposition) error {
	seen := make(map[string]bool, len(teams))
	for i, team := range teams {
		if team.Category == "" {
			return fmt.Errorf("%w: team %d has no category", ErrInvalidComposition, i+1)
		}
		if seen[team.Category] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidComposition, team.Category)
		}
		seen[team.Category] = true

		if team.Number < 0 || team.Women < 0 || team.Men < 0 {
			return fmt.Errorf("%w: category %q has a negative count (number=%d, women=%d, men=%d)",
				ErrInvalidComposition, team.Category, team.Number, team.Women, team.Men)
		}
		if team.Number > 0 && team.Size() == 0 {
			return fmt.Errorf("%w: category %q enters %d team(s) without players", ErrInvalidComposition, team.Category, team.Number)
		}
	}
	return nil
}

// CheckFeasibility verifies there are enough players of each gender to fill every team.
// Both shortfalls are reported together in an InsufficientPlayersError.
func CheckFeasibility(teams []TeamComposition, women, men int) error {
	if err := ValidateCompositions(teams); err != nil {
		return err
	}

	womenNeeded, menNeeded := Requirements(teams)
	if womenNeeded <= women && menNeeded <= men {
		return nil
	}

	return &InsufficientPlayersError{
		WomenNeeded:    womenNeeded,
		WomenAvailable: women,
		MenNeeded:      menNeeded,
		MenAvailable:   men,
	}
}
