package services

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/core/allocator"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/metrics"
)

func TestDrawPlayers_FromSavedRankings(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	_, err := RankPlayers(cfg, nil, zap.NewNop(), RankOptions{})
	require.NoError(t, err)

	store := newMockDrawStore()
	result, err := DrawPlayers(ctx, store, cfg, nil, zap.NewNop(), DrawOptions{})
	require.NoError(t, err)

	assert.True(t, result.Outcome.Success)
	assert.Equal(t, SourceSavedRankings, result.Run.Source)
	assert.Equal(t, 1, result.Run.TeamCount)
	assert.NotEmpty(t, result.Run.ID)

	require.Equal(t, 1, store.inserted)
	assignments := store.assignments[result.Run.ID]
	require.Len(t, assignments, 2)
	assert.Equal(t, "1", assignments[0].Licence)
	assert.Equal(t, 1, assignments[0].Position)
	assert.Equal(t, "3", assignments[1].Licence)
	assert.Equal(t, 2, assignments[1].Position)
	assert.Equal(t, "mixte", assignments[1].Category)
	assert.NotEqual(t, assignments[0].ID, assignments[1].ID)

	assert.Equal(t, []string{"2"}, licences(result.Outcome.RemainingWomen))
	assert.Equal(t, []string{"4"}, licences(result.Outcome.RemainingMen))
}

func TestDrawPlayers_RankFirst(t *testing.T) {
	cfg := testConfig(t)
	store := newMockDrawStore()

	result, err := DrawPlayers(context.Background(), store, cfg, nil, zap.NewNop(), DrawOptions{Rank: true})
	require.NoError(t, err)
	assert.Equal(t, SourceFreshRanking, result.Run.Source)
	assert.FileExists(t, cfg.ResolvePath("rankings-femme.csv"))
}

func TestDrawPlayers_NoSavedRankings(t *testing.T) {
	cfg := testConfig(t)

	_, err := DrawPlayers(context.Background(), newMockDrawStore(), cfg, nil, zap.NewNop(), DrawOptions{})
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.ErrorContains(t, err, "run rankPlayers first")
}

func TestDrawPlayers_InsufficientPlayers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Teams = config.TeamsSection{
		{Category: "feminine", Number: 1, Women: 3},
		{Category: "masculine", Number: 1, Men: 2},
	}

	core, logs := observer.New(zapcore.ErrorLevel)
	registry := prometheus.NewRegistry()
	m := metrics.NewManager(metrics.WithRegistry(registry))
	store := newMockDrawStore()

	_, err := DrawPlayers(context.Background(), store, cfg, m, zap.New(core), DrawOptions{Rank: true})
	require.ErrorIs(t, err, allocator.ErrInsufficientPlayers)

	var shortage *allocator.InsufficientPlayersError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 1, shortage.WomenShortfall())
	assert.Equal(t, 0, shortage.MenShortfall())

	// only the short gender is logged
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Not enough women to fill the teams", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["missing"])

	assert.Equal(t, 0, store.inserted)
}

func TestDrawPlayers_StoreError(t *testing.T) {
	cfg := testConfig(t)
	store := newMockDrawStore()
	store.insertErr = errors.New("disk full")

	_, err := DrawPlayers(context.Background(), store, cfg, nil, zap.NewNop(), DrawOptions{Rank: true})
	assert.ErrorContains(t, err, "failed to store draw: disk full")
}

func TestViewDraw(t *testing.T) {
	ctx := context.Background()
	store := newMockDrawStore()
	require.NoError(t, store.InsertDraw(ctx, &db.DrawRun{ID: "old"}, nil))
	require.NoError(t, store.InsertDraw(ctx, &db.DrawRun{ID: "new", TeamCount: 2}, []db.DrawAssignment{
		{Category: "mixte", Instance: 1, Position: 1, Licence: "1"},
		{Category: "mixte", Instance: 1, Position: 2, Licence: "3"},
		{Category: "mixte", Instance: 2, Position: 1, Licence: "2"},
		{Category: "masculine", Instance: 1, Position: 1, Licence: "4"},
	}))

	summary, err := ViewDraw(ctx, store, zap.NewNop(), "")
	require.NoError(t, err)
	assert.Equal(t, "new", summary.Run.ID)
	require.Len(t, summary.Teams, 3)
	assert.Len(t, summary.Teams[0].Players, 2)
	assert.Equal(t, 2, summary.Teams[1].Instance)
	assert.Equal(t, "masculine", summary.Teams[2].Category)

	summary, err = ViewDraw(ctx, store, zap.NewNop(), "old")
	require.NoError(t, err)
	assert.Empty(t, summary.Teams)

	_, err = ViewDraw(ctx, store, zap.NewNop(), "missing")
	assert.ErrorContains(t, err, "draw missing not found")
}

func TestViewDraw_NoDraws(t *testing.T) {
	_, err := ViewDraw(context.Background(), newMockDrawStore(), zap.NewNop(), "")
	assert.ErrorContains(t, err, "no draw stored yet")
}
