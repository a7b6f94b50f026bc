package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asbg75/interclubs/pkg/core/model"
)

func woman(licence string) model.RankedPlayer {
	return model.RankedPlayer{Licence: licence, Genre: model.GenderWomen}
}

func man(licence string) model.RankedPlayer {
	return model.RankedPlayer{Licence: licence, Genre: model.GenderMen}
}

func findRule(errs []TeamValidationError, rule string) *TeamValidationError {
	for i := range errs {
		if errs[i].Rule == rule {
			return &errs[i]
		}
	}
	return nil
}

func TestValidateDraw_Valid(t *testing.T) {
	teams := []TeamComposition{{Category: "mixte", Number: 1, Women: 1, Men: 1}}
	outcome := &DrawOutcome{Teams: []TeamDraw{
		{Category: "mixte", Instance: 1, Women: []model.RankedPlayer{woman("1")}, Men: []model.RankedPlayer{man("2")}},
	}}

	assert.Empty(t, ValidateDraw(outcome, teams))
}

func TestValidateDraw_DuplicatePlayer(t *testing.T) {
	teams := []TeamComposition{{Category: "mixte", Number: 2, Women: 1, Men: 0}}
	outcome := &DrawOutcome{Teams: []TeamDraw{
		{Category: "mixte", Instance: 1, Women: []model.RankedPlayer{woman("1")}},
		{Category: "mixte", Instance: 2, Women: []model.RankedPlayer{woman("1")}},
	}}

	errs := ValidateDraw(outcome, teams)
	found := findRule(errs, RuleUniquePlayer)
	if assert.NotNil(t, found) {
		assert.Equal(t, 2, found.Instance)
		assert.Contains(t, found.Description, "player 1 is already in mixte 1")
	}
}

func TestValidateDraw_OversizedSlot(t *testing.T) {
	teams := []TeamComposition{{Category: "mixte", Number: 1, Women: 1, Men: 1}}
	outcome := &DrawOutcome{Teams: []TeamDraw{
		{Category: "mixte", Instance: 1,
			Women: []model.RankedPlayer{woman("1")},
			Men:   []model.RankedPlayer{man("2"), man("3")}},
	}}

	errs := ValidateDraw(outcome, teams)
	found := findRule(errs, RuleTeamSize)
	if assert.NotNil(t, found) {
		assert.Contains(t, found.Description, "team has 2 men but 1 are configured")
	}
}

func TestValidateDraw_WrongGenderAndCounts(t *testing.T) {
	teams := []TeamComposition{
		{Category: "mixte", Number: 2, Women: 1},
		{Category: "masculine", Number: 1, Men: 1},
	}
	outcome := &DrawOutcome{Teams: []TeamDraw{
		{Category: "mixte", Instance: 1, Women: []model.RankedPlayer{man("9")}},
		{Category: "unknown", Instance: 1},
	}}

	errs := ValidateDraw(outcome, teams)
	assert.NotNil(t, findRule(errs, RuleGender))

	var counts []string
	for _, e := range errs {
		if e.Rule == RuleTeamCount {
			counts = append(counts, e.Category)
		}
	}
	assert.ElementsMatch(t, []string{"unknown", "mixte", "masculine"}, counts)
}

func TestValidateDraw_Nil(t *testing.T) {
	assert.Empty(t, ValidateDraw(nil, nil))
}
