package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/asbg75/interclubs/pkg/db"
)

// UpsertTeams inserts teams, replacing those already known
func (d *DB) UpsertTeams(ctx context.Context, teams []db.Team) error {
	batch := &pgx.Batch{}
	for _, t := range teams {
		batch.Queue(`
			INSERT INTO team (team_id, competition, division, group_name, year)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (team_id) DO UPDATE SET
				competition = EXCLUDED.competition,
				division = EXCLUDED.division,
				group_name = EXCLUDED.group_name,
				year = EXCLUDED.year
		`, t.ID, t.Competition, t.Division, t.Group, t.Year)
	}

	if err := d.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert teams: %w", err)
	}
	return nil
}

// UpsertResults inserts results, replacing those already known for the same team and discipline
func (d *DB) UpsertResults(ctx context.Context, results []db.Result) error {
	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(`
			INSERT INTO result (team_id, discipline, wins, losses)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (team_id, discipline) DO UPDATE SET
				wins = EXCLUDED.wins,
				losses = EXCLUDED.losses
		`, r.TeamID, r.Discipline, r.Wins, r.Losses)
	}

	if err := d.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert results: %w", err)
	}
	return nil
}

// GetResults retrieves every result with the competition of its team
func (d *DB) GetResults(ctx context.Context) ([]db.TeamResult, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT result.team_id, team.competition, result.discipline, result.wins, result.losses
		FROM result
		INNER JOIN team ON result.team_id = team.team_id
		ORDER BY result.team_id, result.discipline
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}

	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.TeamResult])
	if err != nil {
		return nil, fmt.Errorf("failed to collect results: %w", err)
	}
	return results, nil
}
