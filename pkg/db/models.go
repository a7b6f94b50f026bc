package db

import "time"

// Team is a club team entered in an Interclubs competition
type Team struct {
	ID          string `db:"team_id"`
	Competition string `db:"competition"`
	Division    string `db:"division"`
	Group       string `db:"group_name"`
	Year        string `db:"year"`
}

// Result holds a team's wins and losses in one discipline.
// Wins and Losses are nil when the team does not play the discipline.
type Result struct {
	TeamID     string `db:"team_id"`
	Discipline string `db:"discipline"`
	Wins       *int   `db:"wins"`
	Losses     *int   `db:"losses"`
}

// TeamResult is a result joined with its team's competition
type TeamResult struct {
	TeamID      string `db:"team_id"`
	Competition string `db:"competition"`
	Discipline  string `db:"discipline"`
	Wins        *int   `db:"wins"`
	Losses      *int   `db:"losses"`
}

// DrawRun records one team draw
type DrawRun struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Source    string    `db:"source"`
	TeamCount int       `db:"team_count"`
}

// DrawAssignment is a player drawn into a team instance
type DrawAssignment struct {
	ID       string  `db:"id"`
	DrawID   string  `db:"draw_id"`
	Category string  `db:"category"`
	Instance int     `db:"instance"`
	Position int     `db:"position"`
	Licence  string  `db:"licence"`
	Nom      string  `db:"nom"`
	Prenom   string  `db:"prenom"`
	Genre    string  `db:"genre"`
	Ranking  int     `db:"ranking"`
	Score    float64 `db:"score"`
}
