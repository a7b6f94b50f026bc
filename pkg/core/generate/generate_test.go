package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asbg75/interclubs/pkg/core/criteria"
	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/ranking"
	"github.com/asbg75/interclubs/pkg/table"
)

func TestClip(t *testing.T) {
	tests := []struct {
		n, lower, upper, expected int
	}{
		{2008, 2000, 2010, 2008},
		{2, 0, 2, 2},
		{3, 0, 2, 2},
		{3, 2, 2, 2},
		{2, 2, 2, 2},
		{-1, 4, 5, 4},
	}

	for _, tt := range tests {
		got, err := Clip(tt.n, tt.lower, tt.upper)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "Clip(%d, %d, %d)", tt.n, tt.lower, tt.upper)
	}
}

func TestClip_InvalidBounds(t *testing.T) {
	_, err := Clip(94, 20, 8)
	assert.Error(t, err)
}

func TestRankings(t *testing.T) {
	players, err := Rankings(NewRand(2008), 200)
	require.NoError(t, err)
	require.Len(t, players, 200)

	assert.Equal(t, "0", players[0].Licence)
	assert.Equal(t, "199", players[199].Licence)

	for _, p := range players {
		assert.Len(t, p.Nom, 3)
		assert.Len(t, p.Prenom, 3)
		assert.Contains(t, []string{model.GenderWomen, model.GenderMen}, p.Genre)

		var ranks []model.Rank
		for _, label := range []string{p.Simple, p.Double, p.Mixte} {
			rank, ok := model.ParseRank(label)
			require.True(t, ok, "label %q", label)
			ranks = append(ranks, rank)
		}
		// every discipline is within one step of the same base level
		assert.LessOrEqual(t, int(max(ranks[0], ranks[1], ranks[2])-min(ranks[0], ranks[1], ranks[2])), 2)
	}

	normalized, err := ranking.NormalizeRankings(players)
	require.NoError(t, err)
	assert.Len(t, normalized, 200)
}

func TestRankings_SameSeedSamePlayers(t *testing.T) {
	first, err := Rankings(NewRand(7), 20)
	require.NoError(t, err)
	second, err := Rankings(NewRand(7), 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := Rankings(NewRand(8), 20)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRankings_Negative(t *testing.T) {
	_, err := Rankings(NewRand(1), -1)
	assert.Error(t, err)
}

func testCriteria() []ranking.Criterion {
	return []ranking.Criterion{
		{Name: "physique", Weight: 0.6, Subcriteria: []ranking.Subcriterion{{Name: "endurance", Weight: 0.5}, {Name: "vitesse", Weight: 0.5}}},
		{Name: "assiduite", Weight: 0.4},
	}
}

func TestCriteria(t *testing.T) {
	rng := NewRand(42)
	players, err := Rankings(rng, 30)
	require.NoError(t, err)

	rows := Criteria(rng, players, testCriteria())
	require.Len(t, rows, 30*3)
	require.NoError(t, criteria.ValidateLongRows(rows))

	genders := map[string]string{}
	for _, p := range players {
		genders[p.Licence] = p.Genre
	}
	participation := map[string]bool{}
	for _, row := range rows {
		assert.Equal(t, genders[row.Licence], row.Genre)
		assert.GreaterOrEqual(t, row.Score, 0.0)
		assert.LessOrEqual(t, row.Score, float64(MaxScore))

		if previous, ok := participation[row.Licence]; ok {
			assert.Equal(t, previous, row.Participation, "participation is per player")
		}
		participation[row.Licence] = row.Participation
	}

	assert.Equal(t, "endurance", *rows[0].SousCritere)
	assert.Equal(t, "vitesse", *rows[1].SousCritere)
	assert.Nil(t, rows[2].SousCritere)
}

func TestCriteria_FeedsThePipeline(t *testing.T) {
	rng := NewRand(3)
	players, err := Rankings(rng, 100)
	require.NoError(t, err)

	long, err := table.Encode(Criteria(rng, players, testCriteria()))
	require.NoError(t, err)

	wide, err := criteria.Reshape(long, criteria.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 100, wide.Len())

	scores, err := ranking.ComputeScores(wide, testCriteria())
	require.NoError(t, err)

	normalized, err := ranking.NormalizeRankings(players)
	require.NoError(t, err)

	result, err := ranking.RankPlayers(normalized, scores)
	require.NoError(t, err)
	assert.Empty(t, result.GenderMismatches)
	assert.Equal(t, 100, len(result.ByGender[model.GenderWomen])+len(result.ByGender[model.GenderMen])+result.NotParticipating)
}
