// Package criteria converts the long criteria file (one row per player and
// sub-criterion) into the wide table the score computation reads.
package criteria

import (
	"fmt"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/ranking"
	"github.com/asbg75/interclubs/pkg/table"
)

// Long-format column names
const (
	ColumnCriterion          = "critere"
	ColumnCriterionWeight    = "poids"
	ColumnSubcriterion       = "sous_critere"
	ColumnSubcriterionWeight = "sous_critere_poids"
	ColumnScore              = "score"
)

// Options selects the columns used to pivot the long table
type Options struct {
	Index   []string
	GroupBy []string
	Value   string
}

// DefaultOptions pivots on (critere, sous_critere) with one row per (licence, genre, participation)
func DefaultOptions() Options {
	return Options{
		Index:   []string{ranking.ColumnLicence, ranking.ColumnGenre, ranking.ColumnParticipation},
		GroupBy: []string{ColumnCriterion, ColumnSubcriterion},
		Value:   ColumnScore,
	}
}

// Reshape pivots a long criteria table into a wide one.
//
// Every distinct group becomes a column named after its last non-null element,
// so (physique, endurance) becomes "endurance" and (assiduite, null) becomes
// "assiduite". Combinations absent from the long table are null, never 0.
func Reshape(long *table.Table, opts Options) (*table.Table, error) {
	if len(opts.Index) == 0 || len(opts.GroupBy) == 0 || opts.Value == "" {
		return nil, fmt.Errorf("reshape needs index, group by and value columns")
	}

	wide, err := table.Pivot(long, opts.Index, opts.GroupBy, opts.Value, columnName)
	if err != nil {
		return nil, fmt.Errorf("failed to pivot criteria: %w", err)
	}
	return wide, nil
}

func columnName(group []table.Cell) string {
	for i := len(group) - 1; i >= 0; i-- {
		if !group[i].IsNull() {
			return group[i].String()
		}
	}
	return ""
}

// LoadLong decodes and validates a long criteria table
func LoadLong(long *table.Table) ([]model.CriterionRow, error) {
	rows, err := table.DecodeAs[model.CriterionRow](long)
	if err != nil {
		return nil, fmt.Errorf("failed to decode criteria: %w", err)
	}
	if err := ValidateLongRows(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ValidateLongRows checks that a sub-criterion weight is given if and only if a
// sub-criterion is, and that all rows of a player agree on genre and participation
func ValidateLongRows(rows []model.CriterionRow) error {
	first := make(map[string]int, len(rows))
	for i, row := range rows {
		if row.Licence == "" {
			return fmt.Errorf("row %d: empty licence", i+1)
		}
		if row.Critere == "" {
			return fmt.Errorf("row %d: player %s has no criterion", i+1, row.Licence)
		}
		hasSub := row.SousCritere != nil && *row.SousCritere != ""
		if hasSub && row.SousCriterePoids == nil {
			return fmt.Errorf("row %d: player %s, %s.%s has no sub-criterion weight",
				i+1, row.Licence, row.Critere, *row.SousCritere)
		}
		if !hasSub && row.SousCriterePoids != nil {
			return fmt.Errorf("row %d: player %s, %s has a sub-criterion weight but no sub-criterion",
				i+1, row.Licence, row.Critere)
		}

		j, seen := first[row.Licence]
		if !seen {
			first[row.Licence] = i
			continue
		}
		if rows[j].Genre != row.Genre {
			return fmt.Errorf("row %d: player %s has genre %q but %q on row %d",
				i+1, row.Licence, row.Genre, rows[j].Genre, j+1)
		}
		if rows[j].Participation != row.Participation {
			return fmt.Errorf("row %d: player %s has participation %t but %t on row %d",
				i+1, row.Licence, row.Participation, rows[j].Participation, j+1)
		}
	}
	return nil
}

// Weights rebuilds the weight tree recorded in the long rows, in first-seen order.
// Rows disagreeing on a weight are an error.
func Weights(rows []model.CriterionRow) ([]ranking.Criterion, error) {
	var criteria []ranking.Criterion
	positions := make(map[string]int)

	for _, row := range rows {
		idx, ok := positions[row.Critere]
		if !ok {
			idx = len(criteria)
			positions[row.Critere] = idx
			criteria = append(criteria, ranking.Criterion{Name: row.Critere, Weight: row.Poids})
		}
		criterion := &criteria[idx]

		if criterion.Weight != row.Poids {
			return nil, &ranking.InvalidWeightConfigurationError{
				Field:  row.Critere,
				Reason: fmt.Sprintf("rows record weights %g and %g", criterion.Weight, row.Poids),
			}
		}
		if row.SousCritere == nil {
			continue
		}

		found := false
		for _, sub := range criterion.Subcriteria {
			if sub.Name != *row.SousCritere {
				continue
			}
			found = true
			if row.SousCriterePoids != nil && sub.Weight != *row.SousCriterePoids {
				return nil, &ranking.InvalidWeightConfigurationError{
					Field:  row.Critere + "." + sub.Name,
					Reason: fmt.Sprintf("rows record weights %g and %g", sub.Weight, *row.SousCriterePoids),
				}
			}
		}
		if !found {
			weight := 0.0
			if row.SousCriterePoids != nil {
				weight = *row.SousCriterePoids
			}
			criterion.Subcriteria = append(criterion.Subcriteria, ranking.Subcriterion{Name: *row.SousCritere, Weight: weight})
		}
	}

	return criteria, nil
}
