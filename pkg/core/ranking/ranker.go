package ranking

import (
	"fmt"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/table"
)

// RankResult holds the participating players ordered within each gender
type RankResult struct {
	// ByGender maps a gender label to its players, best first
	ByGender map[string][]model.RankedPlayer

	// Genders lists the keys of ByGender in first-seen order
	Genders []string

	// GenderMismatches lists licences whose gender differs between rankings and criteria.
	// The rankings gender is used for them.
	GenderMismatches []string

	// NotParticipating is the number of joined players who did not opt in
	NotParticipating int
}

// RankPlayers joins rankings and scores on the licence, keeps the participating
// players and orders each gender by unified rank then score, both descending.
//
// Players that compare equal on both keys keep their input order; no further
// tie-break is applied. Every player must appear in both inputs.
func RankPlayers(rankings []model.PlayerRanking, scores []model.ScoredPlayer) (*RankResult, error) {
	seen := make(map[string]bool, len(rankings))
	for _, p := range rankings {
		if seen[p.Licence] {
			return nil, fmt.Errorf("duplicate licence %s in rankings", p.Licence)
		}
		seen[p.Licence] = true
	}

	left, err := table.Encode(rankings)
	if err != nil {
		return nil, fmt.Errorf("failed to build rankings table: %w", err)
	}
	right, err := table.Encode(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to build scores table: %w", err)
	}

	joined, err := table.Join(left, right, ColumnLicence)
	if err != nil {
		return nil, fmt.Errorf("failed to join rankings and scores: %w", err)
	}
	if len(joined.LeftOnly) > 0 || len(joined.RightOnly) > 0 {
		return nil, &MissingCriteriaDataError{
			MissingScores:   joined.LeftOnly,
			MissingRankings: joined.RightOnly,
		}
	}

	result := &RankResult{
		ByGender:         make(map[string][]model.RankedPlayer),
		Genders:          []string{},
		GenderMismatches: []string{},
	}

	scoresGenre := ColumnGenre + "_right"
	for _, row := range joined.Table.Rows {
		if row.Get(ColumnGenre).String() != row.Get(scoresGenre).String() {
			result.GenderMismatches = append(result.GenderMismatches, row.Get(ColumnLicence).String())
		}
	}

	participating := joined.Table.Filter(func(row table.Row) bool {
		ok, err := row.Get(ColumnParticipation).Bool()
		return err == nil && ok
	})
	result.NotParticipating = joined.Table.Len() - participating.Len()

	sorted, err := participating.SortStable(
		table.SortKey{Column: "ranking", Descending: true, Numeric: true},
		table.SortKey{Column: "score", Descending: true, Numeric: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sort players: %w", err)
	}

	genders, partitions, err := sorted.PartitionBy(ColumnGenre)
	if err != nil {
		return nil, fmt.Errorf("failed to partition players: %w", err)
	}

	for _, gender := range genders {
		players, err := table.DecodeAs[model.RankedPlayer](partitions[gender])
		if err != nil {
			return nil, fmt.Errorf("failed to decode ranked players: %w", err)
		}
		result.ByGender[gender] = players
		result.Genders = append(result.Genders, gender)
	}

	return result, nil
}
