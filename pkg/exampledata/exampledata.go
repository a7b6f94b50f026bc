// Package exampledata provides a reproducible population of players to try
// the ranking and the draw without the club's files.
package exampledata

import (
	"fmt"

	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/core/criteria"
	"github.com/asbg75/interclubs/pkg/core/generate"
	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/table"
)

const (
	// Seed makes the example population identical on every run
	Seed = 2008

	// Players is the size of the example population
	Players = 50
)

// Config returns the example configuration the example data is generated from
func Config() *config.Config {
	return config.Example()
}

// Rankings returns the example rankings
func Rankings() []model.RankingRow {
	rankings, _ := generateAll()
	return rankings
}

// Criteria returns the example criteria in long form
func Criteria() []model.CriterionRow {
	_, rows := generateAll()
	return rows
}

// RankingsTable returns the example rankings as a table
func RankingsTable() (*table.Table, error) {
	return table.Encode(Rankings())
}

// CriteriaTable returns the example criteria, already reshaped to the wide form
func CriteriaTable() (*table.Table, error) {
	long, err := table.Encode(Criteria())
	if err != nil {
		return nil, fmt.Errorf("failed to encode example criteria: %w", err)
	}
	return criteria.Reshape(long, criteria.DefaultOptions())
}

func generateAll() ([]model.RankingRow, []model.CriterionRow) {
	rng := generate.NewRand(Seed)

	rankings, err := generate.Rankings(rng, Players)
	if err != nil {
		panic(fmt.Sprintf("failed to generate example rankings: %v", err))
	}
	return rankings, generate.Criteria(rng, rankings, Config().Criteria)
}
