package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/asbg75/interclubs/pkg/db"
)

// InsertDraw stores a draw run and its assignments in one transaction
func (d *DB) InsertDraw(ctx context.Context, run *db.DrawRun, assignments []db.DrawAssignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO draw_run (id, created_at, source, team_count)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.CreatedAt.UTC(), run.Source, run.TeamCount)
	if err != nil {
		return fmt.Errorf("failed to insert draw: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO draw_assignment (id, draw_id, category, instance, position, licence, nom, prenom, genre, ranking, score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, a.ID, run.ID, a.Category, a.Instance, a.Position, a.Licence, a.Nom, a.Prenom, a.Genre, a.Ranking, a.Score)
		if err != nil {
			return fmt.Errorf("failed to insert draw assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit draw: %w", err)
	}
	return nil
}

// GetDraws retrieves every draw run, most recent first
func (d *DB) GetDraws(ctx context.Context) ([]db.DrawRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text AS id, created_at, source, team_count
		FROM draw_run
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}

	runs, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.DrawRun])
	if err != nil {
		return nil, fmt.Errorf("failed to collect draws: %w", err)
	}
	return runs, nil
}

// GetDrawAssignments retrieves the players of a draw in the order they were drawn
func (d *DB) GetDrawAssignments(ctx context.Context, drawID string) ([]db.DrawAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text AS id, draw_id::text AS draw_id, category, instance, position,
			licence, nom, prenom, genre, ranking, score
		FROM draw_assignment
		WHERE draw_id = $1
		ORDER BY seq
	`, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw assignments: %w", err)
	}

	assignments, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.DrawAssignment])
	if err != nil {
		return nil, fmt.Errorf("failed to collect draw assignments: %w", err)
	}
	return assignments, nil
}
