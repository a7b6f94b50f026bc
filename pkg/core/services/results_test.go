package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/clients/icbadclient"
	"github.com/asbg75/interclubs/pkg/core/results"
	"github.com/asbg75/interclubs/pkg/db"
)

func intPtr(i int) *int { return &i }

func TestFetchResults(t *testing.T) {
	client := &mockResultsClient{
		teams: []icbadclient.Team{
			{ID: "1002", Competition: "Interclubs Comité 75 D1", Division: "D1", Group: "Poule A", Year: "2024-2025"},
		},
		results: map[string][]icbadclient.DisciplineResult{
			"1002": {
				{Discipline: "SH", Played: true, Wins: 3, Losses: 1},
				{Discipline: "DH"},
			},
		},
	}
	store := &mockResultStore{}

	result, err := FetchResults(context.Background(), client, store, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, &FetchResultsResult{Teams: 1, Results: 2}, result)

	require.Len(t, store.teams, 1)
	assert.Equal(t, "Poule A", store.teams[0].Group)

	require.Len(t, store.results, 2)
	assert.Equal(t, db.Result{TeamID: "1002", Discipline: "SH", Wins: intPtr(3), Losses: intPtr(1)}, store.results[0])
	assert.Nil(t, store.results[1].Wins)
	assert.Nil(t, store.results[1].Losses)
}

func TestFetchResults_Errors(t *testing.T) {
	_, err := FetchResults(context.Background(), &mockResultsClient{err: errors.New("timeout")}, &mockResultStore{}, nil, zap.NewNop())
	assert.ErrorContains(t, err, "failed to fetch teams: timeout")

	client := &mockResultsClient{teams: []icbadclient.Team{{ID: "9"}}}
	store := &mockResultStore{}
	_, err = FetchResults(context.Background(), client, store, nil, zap.NewNop())
	assert.ErrorContains(t, err, "failed to fetch results of team 9")
	assert.Empty(t, store.teams)
}

func TestViewResults(t *testing.T) {
	store := &mockResultStore{rows: []db.TeamResult{
		{TeamID: "1", Competition: results.Competitions[0].Name, Discipline: "DX", Wins: intPtr(2), Losses: intPtr(2)},
		{TeamID: "2", Competition: results.Competitions[3].Name, Discipline: "SH", Wins: intPtr(1), Losses: intPtr(0)},
	}}

	sections, err := ViewResults(context.Background(), store, zap.NewNop(), "")
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "veterans", sections[2].Key)

	sections, err = ViewResults(context.Background(), store, zap.NewNop(), "women")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Empty(t, sections[0].Summaries)

	_, err = ViewResults(context.Background(), store, zap.NewNop(), "juniors")
	assert.Error(t, err)
}
