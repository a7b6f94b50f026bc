package allocator

import "github.com/asbg75/interclubs/pkg/core/model"

// Allocator hands out ranked players to team slots
type Allocator struct {
	teams []TeamComposition
	women []model.RankedPlayer
	men   []model.RankedPlayer
}

// Draw fills every team of the configuration from the ranked pools.
//
// Categories are visited in configuration order and instances from 1 to Number;
// each team takes its women then its men from the head of the remaining pools.
// The best players therefore land in the first configured category. Nothing is
// rebalanced afterwards. The feasibility check runs first and no team is drawn
// when it fails.
func Draw(config DrawConfig) (*DrawOutcome, error) {
	if err := CheckFeasibility(config.Teams, len(config.Women), len(config.Men)); err != nil {
		return nil, err
	}

	allocator := &Allocator{
		teams: config.Teams,
		women: config.Women,
		men:   config.Men,
	}

	var drawn []TeamDraw
	for _, team := range allocator.teams {
		for instance := 1; instance <= team.Number; instance++ {
			drawn = append(drawn, TeamDraw{
				Category: team.Category,
				Instance: instance,
				Women:    allocator.takeWomen(team.Women),
				Men:      allocator.takeMen(team.Men),
			})
		}
	}

	return allocator.buildOutcome(drawn), nil
}

func (a *Allocator) takeWomen(n int) []model.RankedPlayer {
	var taken []model.RankedPlayer
	taken, a.women = take(a.women, n)
	return taken
}

func (a *Allocator) takeMen(n int) []model.RankedPlayer {
	var taken []model.RankedPlayer
	taken, a.men = take(a.men, n)
	return taken
}

// take removes the first n players of the pool
func take(pool []model.RankedPlayer, n int) (taken, rest []model.RankedPlayer) {
	taken = make([]model.RankedPlayer, n)
	copy(taken, pool[:n])
	return taken, pool[n:]
}

// buildOutcome creates the final draw outcome report
func (a *Allocator) buildOutcome(drawn []TeamDraw) *DrawOutcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &DrawOutcome{
		Teams:          []TeamDraw{},
		RemainingWomen: append([]model.RankedPlayer{}, a.women...),
		RemainingMen:   append([]model.RankedPlayer{}, a.men...),
	}
	outcome.Teams = append(outcome.Teams, drawn...)

	outcome.ValidationErrors = ValidateDraw(outcome, a.teams)
	outcome.Success = len(outcome.ValidationErrors) == 0

	return outcome
}
