package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/core/allocator"
	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/metrics"
)

// Draw sources recorded with each draw run
const (
	SourceSavedRankings = "saved-rankings"
	SourceFreshRanking  = "fresh-ranking"
	SourceExample       = "example"
)

// DrawOptions controls where the ranked players come from.
// With Rank set the players are ranked again first, using Ranking.
type DrawOptions struct {
	Rank    bool
	Ranking RankOptions
}

// DrawPlayersResult holds the stored draw run and the drawn teams
type DrawPlayersResult struct {
	Run     *db.DrawRun
	Outcome *allocator.DrawOutcome
}

// DrawPlayers fills the configured teams from the ranked players and stores the draw
func DrawPlayers(ctx context.Context, store db.DrawStore, cfg *config.Config, m *metrics.Manager, logger *zap.Logger, opts DrawOptions) (*DrawPlayersResult, error) {
	women, men, source, err := loadRankedPlayers(cfg, m, logger, opts)
	if err != nil {
		return nil, err
	}

	teams := []allocator.TeamComposition(cfg.Teams)
	womenNeeded, menNeeded := allocator.Requirements(teams)
	logger.Debug("Drawing teams",
		zap.Int("teams", len(teams)),
		zap.Int("women_needed", womenNeeded),
		zap.Int("women_available", len(women)),
		zap.Int("men_needed", menNeeded),
		zap.Int("men_available", len(men)))

	outcome, err := allocator.Draw(allocator.DrawConfig{Teams: teams, Women: women, Men: men})
	if err != nil {
		var shortage *allocator.InsufficientPlayersError
		if errors.As(err, &shortage) {
			logShortage(logger, shortage)
			m.RecordInfeasibleDraw(shortage.WomenShortfall(), shortage.MenShortfall())
		}
		return nil, err
	}

	if !outcome.Success {
		for _, v := range outcome.ValidationErrors {
			logger.Error("Invalid team",
				zap.String("category", v.Category),
				zap.Int("instance", v.Instance),
				zap.String("rule", v.Rule),
				zap.String("description", v.Description))
		}
		return nil, fmt.Errorf("draw produced %d invalid team(s)", len(outcome.ValidationErrors))
	}

	run := &db.DrawRun{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		TeamCount: len(outcome.Teams),
	}
	assignments := drawAssignments(run.ID, outcome.Teams)

	logger.Debug("Storing draw", zap.String("id", run.ID), zap.Int("assignments", len(assignments)))
	if err := store.InsertDraw(ctx, run, assignments); err != nil {
		return nil, fmt.Errorf("failed to store draw: %w", err)
	}

	m.RecordDraw(playersByCategory(outcome.Teams))
	logger.Info("Draw completed",
		zap.String("id", run.ID),
		zap.Int("teams", len(outcome.Teams)),
		zap.Int("remaining_women", len(outcome.RemainingWomen)),
		zap.Int("remaining_men", len(outcome.RemainingMen)))

	return &DrawPlayersResult{Run: run, Outcome: outcome}, nil
}

func loadRankedPlayers(cfg *config.Config, m *metrics.Manager, logger *zap.Logger, opts DrawOptions) (women, men []model.RankedPlayer, source string, err error) {
	if opts.Rank {
		ranked, err := RankPlayers(cfg, m, logger, opts.Ranking)
		if err != nil {
			return nil, nil, "", err
		}
		source = SourceFreshRanking
		if opts.Ranking.Example {
			source = SourceExample
		}
		return ranked.Ranking.ByGender[model.GenderWomen], ranked.Ranking.ByGender[model.GenderMen], source, nil
	}

	store := RankingsStore{Dir: cfg.DataDir}
	if women, err = store.LoadRankings(model.GenderWomen); err != nil {
		return nil, nil, "", fmt.Errorf("failed to load women rankings (run rankPlayers first): %w", err)
	}
	if men, err = store.LoadRankings(model.GenderMen); err != nil {
		return nil, nil, "", fmt.Errorf("failed to load men rankings (run rankPlayers first): %w", err)
	}
	return women, men, SourceSavedRankings, nil
}

// logShortage logs one error per gender lacking players
func logShortage(logger *zap.Logger, shortage *allocator.InsufficientPlayersError) {
	if missing := shortage.WomenShortfall(); missing > 0 {
		logger.Error("Not enough women to fill the teams",
			zap.Int("missing", missing),
			zap.Int("needed", shortage.WomenNeeded),
			zap.Int("available", shortage.WomenAvailable))
	}
	if missing := shortage.MenShortfall(); missing > 0 {
		logger.Error("Not enough men to fill the teams",
			zap.Int("missing", missing),
			zap.Int("needed", shortage.MenNeeded),
			zap.Int("available", shortage.MenAvailable))
	}
}

func drawAssignments(drawID string, teams []allocator.TeamDraw) []db.DrawAssignment {
	var assignments []db.DrawAssignment
	for _, team := range teams {
		for i, p := range team.Players() {
			assignments = append(assignments, db.DrawAssignment{
				ID:       uuid.New().String(),
				DrawID:   drawID,
				Category: team.Category,
				Instance: team.Instance,
				Position: i + 1,
				Licence:  p.Licence,
				Nom:      p.Nom,
				Prenom:   p.Prenom,
				Genre:    p.Genre,
				Ranking:  int(p.Ranking),
				Score:    p.Score,
			})
		}
	}
	return assignments
}

func playersByCategory(teams []allocator.TeamDraw) map[string]int {
	counts := make(map[string]int)
	for _, team := range teams {
		counts[team.Category] += len(team.Women) + len(team.Men)
	}
	return counts
}

// DrawSummary is a stored draw with its players grouped back into teams
type DrawSummary struct {
	Run   db.DrawRun
	Teams []DrawnTeam
}

// DrawnTeam is one team instance of a stored draw
type DrawnTeam struct {
	Category string
	Instance int
	Players  []db.DrawAssignment
}

// ListDraws returns the stored draws, most recent first
func ListDraws(ctx context.Context, store db.DrawStore, logger *zap.Logger) ([]db.DrawRun, error) {
	runs, err := store.GetDraws(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draws: %w", err)
	}
	logger.Debug("Fetched draws", zap.Int("count", len(runs)))
	return runs, nil
}

// ViewDraw returns a stored draw by id, or the latest one when id is empty
func ViewDraw(ctx context.Context, store db.DrawStore, logger *zap.Logger, id string) (*DrawSummary, error) {
	runs, err := ListDraws(ctx, store, logger)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no draw stored yet")
	}

	run := runs[0]
	if id != "" {
		found := false
		for _, r := range runs {
			if r.ID == id {
				run, found = r, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("draw %s not found", id)
		}
	}

	assignments, err := store.GetDrawAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draw assignments: %w", err)
	}

	summary := &DrawSummary{Run: run}
	for _, a := range assignments {
		n := len(summary.Teams)
		if n == 0 || summary.Teams[n-1].Category != a.Category || summary.Teams[n-1].Instance != a.Instance {
			summary.Teams = append(summary.Teams, DrawnTeam{Category: a.Category, Instance: a.Instance})
			n++
		}
		summary.Teams[n-1].Players = append(summary.Teams[n-1].Players, a)
	}
	return summary, nil
}
