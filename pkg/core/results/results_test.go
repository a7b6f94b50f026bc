package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asbg75/interclubs/pkg/db"
)

func intPtr(i int) *int { return &i }

func sampleResults() []db.TeamResult {
	mixed := Competitions[0].Name
	men := Competitions[1].Name
	return []db.TeamResult{
		{TeamID: "1", Competition: mixed, Discipline: "DX", Wins: intPtr(3), Losses: intPtr(1)},
		{TeamID: "1", Competition: mixed, Discipline: "SH", Wins: intPtr(1), Losses: intPtr(3)},
		{TeamID: "1", Competition: mixed, Discipline: "SD", Wins: nil, Losses: nil},
		{TeamID: "2", Competition: mixed, Discipline: "DX", Wins: intPtr(1), Losses: intPtr(3)},
		{TeamID: "3", Competition: men, Discipline: "SH", Wins: intPtr(2), Losses: intPtr(0)},
		{TeamID: "3", Competition: men, Discipline: "DH", Wins: intPtr(0), Losses: intPtr(0)},
	}
}

func TestFilter(t *testing.T) {
	filtered := Filter(sampleResults(), Competitions[1].Name)
	require.Len(t, filtered, 2)
	assert.Equal(t, "3", filtered[0].TeamID)

	assert.Empty(t, Filter(sampleResults(), "Interclubs Comité 75 D2"))
}

func TestAggregate(t *testing.T) {
	summaries := Aggregate(sampleResults())

	// SD and DH were never played, DX comes last
	require.Len(t, summaries, 2)
	assert.Equal(t, DisciplineSummary{Discipline: "SH", Wins: 3, Losses: 3, WinPercentage: 0.5}, summaries[0])
	assert.Equal(t, DisciplineSummary{Discipline: "DX", Wins: 4, Losses: 4, WinPercentage: 0.5}, summaries[1])
}

func TestAggregate_Empty(t *testing.T) {
	summaries := Aggregate(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestAggregate_OnlyLosses(t *testing.T) {
	summaries := Aggregate([]db.TeamResult{{Discipline: "DD", Wins: nil, Losses: intPtr(2)}})
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].WinPercentage)
}

func TestSections(t *testing.T) {
	sections := Sections(sampleResults())
	require.Len(t, sections, 3)
	assert.Equal(t, "all", sections[0].Key)
	assert.Equal(t, AllTeamsTitle, sections[0].Title)
	assert.Equal(t, "mixed", sections[1].Key)
	assert.Equal(t, "men", sections[2].Key)
	assert.Equal(t, 1.0, sections[2].Summaries[0].WinPercentage)
}

func TestLookupCompetition(t *testing.T) {
	c, err := LookupCompetition("women")
	require.NoError(t, err)
	assert.Equal(t, "Interclubs Comité 75 D1 Féminin", c.Name)

	_, err = LookupCompetition("juniors")
	assert.ErrorContains(t, err, `unknown competition "juniors"`)
}
