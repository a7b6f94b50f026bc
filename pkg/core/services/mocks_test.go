package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/clients/icbadclient"
	"github.com/asbg75/interclubs/pkg/core/ranking"
	"github.com/asbg75/interclubs/pkg/db"
)

const rankingsCSV = `licence;nom;prenom;genre;simple;double;mixte
1;Doe;Jane;Femme;P10;D9;P12
2;Roe;Anna;Femme;P12;P12;P11
3;Poe;Paul;Homme;D8;P10;NC
4;Loe;Marc;Homme;P11;P11;P11
5;Moe;Luc;Homme;P11;NC;NC
`

const criteriaCSV = `licence;genre;participation;critere;poids;sous_critere;sous_critere_poids;score
1;Femme;true;physique;0.6;endurance;0.5;80
1;Femme;true;physique;0.6;vitesse;0.5;60
1;Femme;true;assiduite;0.4;;;10
2;Femme;true;physique;0.6;endurance;0.5;20
2;Femme;true;physique;0.6;vitesse;0.5;40
2;Femme;true;assiduite;0.4;;;30
3;Homme;true;physique;0.6;endurance;0.5;50
3;Homme;true;physique;0.6;vitesse;0.5;50
3;Homme;true;assiduite;0.4;;;20
4;Homme;true;physique;0.6;endurance;0.5;90
4;Homme;true;physique;0.6;vitesse;0.5;10
4;Homme;true;assiduite;0.4;;;0
5;Homme;false;physique;0.6;endurance;0.5;0
5;Homme;false;physique;0.6;vitesse;0.5;0
5;Homme;false;assiduite;0.4;;;0
`

func testCriteria() config.CriteriaSection {
	return config.CriteriaSection{
		{Name: "physique", Weight: 0.6, Subcriteria: []ranking.Subcriterion{
			{Name: "endurance", Weight: 0.5},
			{Name: "vitesse", Weight: 0.5},
		}},
		{Name: "assiduite", Weight: 0.4},
	}
}

// testConfig writes the rankings and criteria fixtures into a temporary data directory
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rankings.csv"), []byte(rankingsCSV), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "criteria.csv"), []byte(criteriaCSV), 0644))

	return &config.Config{
		DataDir:      dir,
		RankingsPath: "rankings.csv",
		CriteriaPath: "criteria.csv",
		Criteria:     testCriteria(),
		Teams: config.TeamsSection{
			{Category: "mixte", Number: 1, Women: 1, Men: 1},
		},
	}
}

type mockDrawStore struct {
	runs        []db.DrawRun
	assignments map[string][]db.DrawAssignment
	insertErr   error
	inserted    int
}

func newMockDrawStore() *mockDrawStore {
	return &mockDrawStore{assignments: make(map[string][]db.DrawAssignment)}
}

func (m *mockDrawStore) InsertDraw(ctx context.Context, run *db.DrawRun, assignments []db.DrawAssignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted++
	m.runs = append([]db.DrawRun{*run}, m.runs...)
	m.assignments[run.ID] = assignments
	return nil
}

func (m *mockDrawStore) GetDraws(ctx context.Context) ([]db.DrawRun, error) {
	return m.runs, nil
}

func (m *mockDrawStore) GetDrawAssignments(ctx context.Context, drawID string) ([]db.DrawAssignment, error) {
	return m.assignments[drawID], nil
}

type mockResultStore struct {
	teams   []db.Team
	results []db.Result
	rows    []db.TeamResult
	err     error
}

func (m *mockResultStore) UpsertTeams(ctx context.Context, teams []db.Team) error {
	m.teams = append(m.teams, teams...)
	return m.err
}

func (m *mockResultStore) UpsertResults(ctx context.Context, results []db.Result) error {
	m.results = append(m.results, results...)
	return m.err
}

func (m *mockResultStore) GetResults(ctx context.Context) ([]db.TeamResult, error) {
	return m.rows, m.err
}

type mockResultsClient struct {
	teams   []icbadclient.Team
	results map[string][]icbadclient.DisciplineResult
	err     error
}

func (m *mockResultsClient) GetTeams(ctx context.Context) ([]icbadclient.Team, error) {
	return m.teams, m.err
}

func (m *mockResultsClient) GetTeamResults(ctx context.Context, teamID string) ([]icbadclient.DisciplineResult, error) {
	results, ok := m.results[teamID]
	if !ok {
		return nil, os.ErrNotExist
	}
	return results, nil
}

