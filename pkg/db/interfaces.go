package db

import "context"

// ResultStore defines the interface for Interclubs results operations
type ResultStore interface {
	UpsertTeams(ctx context.Context, teams []Team) error
	UpsertResults(ctx context.Context, results []Result) error
	GetResults(ctx context.Context) ([]TeamResult, error)
}

// DrawStore defines the interface for team draw operations
type DrawStore interface {
	InsertDraw(ctx context.Context, run *DrawRun, assignments []DrawAssignment) error
	GetDraws(ctx context.Context) ([]DrawRun, error)
	GetDrawAssignments(ctx context.Context, drawID string) ([]DrawAssignment, error)
}

// Database defines the interface for all database operations.
// Both the SQLite-backed db.SQLite and postgres.DB implement this interface.
type Database interface {
	ResultStore
	DrawStore
	Close() error
}
