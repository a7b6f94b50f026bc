package ranking

import (
	"fmt"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/table"
)

// UnifiedRank returns the best of the three discipline ranks.
// A player's selectability follows their best discipline, not an average.
func UnifiedRank(simple, double, mixte model.Rank) model.Rank {
	return max(simple, double, mixte)
}

// LoadRankings decodes a rankings table and normalizes it
func LoadRankings(t *table.Table) ([]model.PlayerRanking, error) {
	rows, err := table.DecodeAs[model.RankingRow](t)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rankings: %w", err)
	}
	return NormalizeRankings(rows)
}

// NormalizeRankings parses the discipline labels of every player and computes the unified rank.
// Any label outside the ranking scale aborts the whole run.
func NormalizeRankings(rows []model.RankingRow) ([]model.PlayerRanking, error) {
	players := make([]model.PlayerRanking, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		if row.Licence == "" {
			return nil, fmt.Errorf("rankings row %d has no licence", i+1)
		}
		if seen[row.Licence] {
			return nil, fmt.Errorf("duplicate licence %s in rankings", row.Licence)
		}
		seen[row.Licence] = true

		simple, err := parseRank(row.Licence, "simple", row.Simple)
		if err != nil {
			return nil, err
		}
		double, err := parseRank(row.Licence, "double", row.Double)
		if err != nil {
			return nil, err
		}
		mixte, err := parseRank(row.Licence, "mixte", row.Mixte)
		if err != nil {
			return nil, err
		}

		players = append(players, model.PlayerRanking{
			Licence: row.Licence,
			Nom:     row.Nom,
			Prenom:  row.Prenom,
			Genre:   row.Genre,
			Simple:  simple,
			Double:  double,
			Mixte:   mixte,
			Ranking: UnifiedRank(simple, double, mixte),
		})
	}

	return players, nil
}

func parseRank(licence, column, label string) (model.Rank, error) {
	rank, ok := model.ParseRank(label)
	if !ok {
		return 0, &UnknownRankingLabelError{Licence: licence, Column: column, Label: label}
	}
	return rank, nil
}
