package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/clients/icbadclient"
	"github.com/asbg75/interclubs/pkg/core/results"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/metrics"
)

// ResultsClient fetches the club's teams and their results
type ResultsClient interface {
	GetTeams(ctx context.Context) ([]icbadclient.Team, error)
	GetTeamResults(ctx context.Context, teamID string) ([]icbadclient.DisciplineResult, error)
}

// FetchResultsResult counts what was stored
type FetchResultsResult struct {
	Teams   int
	Results int
}

// FetchResults scrapes every team of the club and stores teams and results,
// replacing those of previous fetches
func FetchResults(ctx context.Context, client ResultsClient, store db.ResultStore, m *metrics.Manager, logger *zap.Logger) (*FetchResultsResult, error) {
	teams, err := client.GetTeams(ctx)
	if err != nil {
		m.RecordFetchError()
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	logger.Info("Fetched teams", zap.Int("count", len(teams)))

	dbTeams := make([]db.Team, 0, len(teams))
	var dbResults []db.Result
	for _, team := range teams {
		logger.Debug("Fetching team results", zap.String("team_id", team.ID), zap.String("competition", team.Competition))

		teamResults, err := client.GetTeamResults(ctx, team.ID)
		if err != nil {
			m.RecordFetchError()
			return nil, fmt.Errorf("failed to fetch results of team %s: %w", team.ID, err)
		}
		m.RecordTeamFetched()

		dbTeams = append(dbTeams, db.Team{
			ID:          team.ID,
			Competition: team.Competition,
			Division:    team.Division,
			Group:       team.Group,
			Year:        team.Year,
		})
		for _, r := range teamResults {
			result := db.Result{TeamID: team.ID, Discipline: r.Discipline}
			if r.Played {
				wins, losses := r.Wins, r.Losses
				result.Wins, result.Losses = &wins, &losses
			}
			dbResults = append(dbResults, result)
		}
	}

	if err := store.UpsertTeams(ctx, dbTeams); err != nil {
		return nil, fmt.Errorf("failed to store teams: %w", err)
	}
	if err := store.UpsertResults(ctx, dbResults); err != nil {
		return nil, fmt.Errorf("failed to store results: %w", err)
	}

	logger.Info("Results stored", zap.Int("teams", len(dbTeams)), zap.Int("results", len(dbResults)))
	return &FetchResultsResult{Teams: len(dbTeams), Results: len(dbResults)}, nil
}

// ViewResults summarises the stored results. An empty competition key returns
// the overall summary and one per competition; a key returns that competition only.
func ViewResults(ctx context.Context, store db.ResultStore, logger *zap.Logger, competitionKey string) ([]results.Section, error) {
	rows, err := store.GetResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	logger.Debug("Fetched results", zap.Int("rows", len(rows)))

	if competitionKey == "" {
		return results.Sections(rows), nil
	}

	competition, err := results.LookupCompetition(competitionKey)
	if err != nil {
		return nil, err
	}
	return []results.Section{{
		Key:       competition.Key,
		Title:     competition.Title,
		Summaries: results.Aggregate(results.Filter(rows, competition.Name)),
	}}, nil
}
