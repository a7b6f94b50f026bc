package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS team (
	team_id     TEXT PRIMARY KEY,
	competition TEXT NOT NULL,
	division    TEXT NOT NULL,
	group_name  TEXT NOT NULL,
	year        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS result (
	team_id    TEXT NOT NULL REFERENCES team(team_id),
	discipline TEXT NOT NULL,
	wins       INTEGER,
	losses     INTEGER,
	PRIMARY KEY (team_id, discipline)
);

CREATE TABLE IF NOT EXISTS draw_run (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	source     TEXT NOT NULL,
	team_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS draw_assignment (
	id       TEXT PRIMARY KEY,
	draw_id  TEXT NOT NULL REFERENCES draw_run(id),
	category TEXT NOT NULL,
	instance INTEGER NOT NULL,
	position INTEGER NOT NULL,
	licence  TEXT NOT NULL,
	nom      TEXT NOT NULL,
	prenom   TEXT NOT NULL,
	genre    TEXT NOT NULL,
	ranking  INTEGER NOT NULL,
	score    REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_draw_assignment_draw_id ON draw_assignment(draw_id);
`

// SQLite provides database operations on a local SQLite file
type SQLite struct {
	conn *sql.DB
}

// NewSQLite opens (creating it if needed) the database file and its schema
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLite{conn: conn}, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// UpsertTeams inserts teams, replacing those already known
func (s *SQLite) UpsertTeams(ctx context.Context, teams []Team) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range teams {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO team (team_id, competition, division, group_name, year)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(team_id) DO UPDATE SET
					competition = excluded.competition,
					division = excluded.division,
					group_name = excluded.group_name,
					year = excluded.year
			`, t.ID, t.Competition, t.Division, t.Group, t.Year)
			if err != nil {
				return fmt.Errorf("failed to upsert team %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// UpsertResults inserts results, replacing those already known for the same team and discipline
func (s *SQLite) UpsertResults(ctx context.Context, results []Result) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, r := range results {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO result (team_id, discipline, wins, losses)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(team_id, discipline) DO UPDATE SET
					wins = excluded.wins,
					losses = excluded.losses
			`, r.TeamID, r.Discipline, r.Wins, r.Losses)
			if err != nil {
				return fmt.Errorf("failed to upsert result %s/%s: %w", r.TeamID, r.Discipline, err)
			}
		}
		return nil
	})
}

// GetResults retrieves every result with the competition of its team
func (s *SQLite) GetResults(ctx context.Context) ([]TeamResult, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT result.team_id, team.competition, result.discipline, result.wins, result.losses
		FROM result
		INNER JOIN team ON result.team_id = team.team_id
		ORDER BY result.team_id, result.discipline
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []TeamResult
	for rows.Next() {
		var r TeamResult
		var wins, losses sql.NullInt64
		if err := rows.Scan(&r.TeamID, &r.Competition, &r.Discipline, &wins, &losses); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Wins = nullableInt(wins)
		r.Losses = nullableInt(losses)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

// InsertDraw stores a draw run and its assignments in one transaction
func (s *SQLite) InsertDraw(ctx context.Context, run *DrawRun, assignments []DrawAssignment) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO draw_run (id, created_at, source, team_count)
			VALUES (?, ?, ?, ?)
		`, run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Source, run.TeamCount)
		if err != nil {
			return fmt.Errorf("failed to insert draw: %w", err)
		}

		for _, a := range assignments {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO draw_assignment (id, draw_id, category, instance, position, licence, nom, prenom, genre, ranking, score)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, a.ID, run.ID, a.Category, a.Instance, a.Position, a.Licence, a.Nom, a.Prenom, a.Genre, a.Ranking, a.Score)
			if err != nil {
				return fmt.Errorf("failed to insert draw assignment: %w", err)
			}
		}
		return nil
	})
}

// GetDraws retrieves every draw run, most recent first
func (s *SQLite) GetDraws(ctx context.Context) ([]DrawRun, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, created_at, source, team_count
		FROM draw_run
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer rows.Close()

	var runs []DrawRun
	for rows.Next() {
		var r DrawRun
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Source, &r.TeamCount); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse draw date %q: %w", createdAt, err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draws: %w", err)
	}

	return runs, nil
}

// GetDrawAssignments retrieves the players of a draw in team and position order
func (s *SQLite) GetDrawAssignments(ctx context.Context, drawID string) ([]DrawAssignment, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, draw_id, category, instance, position, licence, nom, prenom, genre, ranking, score
		FROM draw_assignment
		WHERE draw_id = ?
		ORDER BY rowid
	`, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw assignments: %w", err)
	}
	defer rows.Close()

	var assignments []DrawAssignment
	for rows.Next() {
		var a DrawAssignment
		if err := rows.Scan(&a.ID, &a.DrawID, &a.Category, &a.Instance, &a.Position,
			&a.Licence, &a.Nom, &a.Prenom, &a.Genre, &a.Ranking, &a.Score); err != nil {
			return nil, fmt.Errorf("failed to scan draw assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draw assignments: %w", err)
	}

	return assignments, nil
}

func (s *SQLite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
