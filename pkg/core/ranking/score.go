package ranking

import (
	"fmt"
	"math"
	"slices"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/table"
)

// WeightTolerance is the accepted distance between the sum of effective weights and 1
const WeightTolerance = 1e-9

// Index columns every wide criteria table carries
const (
	ColumnLicence       = "licence"
	ColumnGenre         = "genre"
	ColumnParticipation = "participation"
)

// Subcriterion is a leaf of a criterion with its weight inside the criterion
type Subcriterion struct {
	Name   string
	Weight float64
}

// Criterion is a top-level scoring criterion.
// A nil Subcriteria means the criterion is scored directly, in a column named after it.
type Criterion struct {
	Name        string
	Weight      float64
	Subcriteria []Subcriterion
}

// LeafWeight is the effective weight applied to one column of the wide criteria table
type LeafWeight struct {
	Criterion string
	Column    string
	// Weight is the criterion weight times the subcriterion weight
	Weight float64
}

// LeafWeights flattens the weight tree, in configuration order
func LeafWeights(criteria []Criterion) []LeafWeight {
	var leaves []LeafWeight
	for _, criterion := range criteria {
		if criterion.Subcriteria == nil {
			leaves = append(leaves, LeafWeight{
				Criterion: criterion.Name,
				Column:    criterion.Name,
				Weight:    criterion.Weight,
			})
			continue
		}
		for _, sub := range criterion.Subcriteria {
			leaves = append(leaves, LeafWeight{
				Criterion: criterion.Name,
				Column:    sub.Name,
				Weight:    criterion.Weight * sub.Weight,
			})
		}
	}
	return leaves
}

// ValidateWeights checks the weight tree without looking at any player data.
// The effective leaf weights must be non-negative, target distinct columns and sum to 1.
func ValidateWeights(criteria []Criterion) error {
	for _, criterion := range criteria {
		if criterion.Name == "" {
			return &InvalidWeightConfigurationError{Reason: "criterion without a name"}
		}
		if !isValidWeight(criterion.Weight) {
			return &InvalidWeightConfigurationError{Field: criterion.Name, Reason: fmt.Sprintf("invalid weight %g", criterion.Weight)}
		}
		if criterion.Subcriteria != nil && len(criterion.Subcriteria) == 0 {
			return &InvalidWeightConfigurationError{Field: criterion.Name, Reason: "empty subcriteria (use null for a criterion scored directly)"}
		}
		for _, sub := range criterion.Subcriteria {
			field := criterion.Name + "." + sub.Name
			if sub.Name == "" {
				return &InvalidWeightConfigurationError{Field: field, Reason: "subcriterion without a name"}
			}
			if !isValidWeight(sub.Weight) {
				return &InvalidWeightConfigurationError{Field: field, Reason: fmt.Sprintf("invalid weight %g", sub.Weight)}
			}
		}
	}

	leaves := LeafWeights(criteria)
	columns := make(map[string]string, len(leaves))
	sum := 0.0
	for _, leaf := range leaves {
		if other, dup := columns[leaf.Column]; dup {
			return &InvalidWeightConfigurationError{
				Field:  leaf.Criterion + "." + leaf.Column,
				Reason: fmt.Sprintf("column %q is already used by criterion %q", leaf.Column, other),
			}
		}
		columns[leaf.Column] = leaf.Criterion
		sum += leaf.Weight
	}

	if math.Abs(sum-1) > WeightTolerance {
		return &InvalidWeightConfigurationError{Reason: "effective weights must sum to 1", Sum: sum}
	}
	return nil
}

// MatchWeights checks that every criterion and subcriterion weight recorded
// alongside the scores equals the configured one. Configured criteria absent
// from recorded are not checked here.
func MatchWeights(recorded, configured []Criterion) error {
	byName := make(map[string]Criterion, len(configured))
	for _, c := range configured {
		byName[c.Name] = c
	}

	for _, rec := range recorded {
		conf, ok := byName[rec.Name]
		if !ok {
			return &InvalidWeightConfigurationError{Field: rec.Name, Reason: "criterion is not configured"}
		}
		if !sameWeight(rec.Weight, conf.Weight) {
			return &InvalidWeightConfigurationError{
				Field:  rec.Name,
				Reason: fmt.Sprintf("weight %g differs from the configured %g", rec.Weight, conf.Weight),
			}
		}
		if (rec.Subcriteria == nil) != (conf.Subcriteria == nil) {
			return &InvalidWeightConfigurationError{Field: rec.Name, Reason: "subcriteria differ from the configuration"}
		}

		for _, sub := range rec.Subcriteria {
			field := rec.Name + "." + sub.Name
			idx := slices.IndexFunc(conf.Subcriteria, func(s Subcriterion) bool { return s.Name == sub.Name })
			if idx < 0 {
				return &InvalidWeightConfigurationError{Field: field, Reason: "subcriterion is not configured"}
			}
			if want := conf.Subcriteria[idx].Weight; !sameWeight(sub.Weight, want) {
				return &InvalidWeightConfigurationError{
					Field:  field,
					Reason: fmt.Sprintf("weight %g differs from the configured %g", sub.Weight, want),
				}
			}
		}
	}
	return nil
}

func sameWeight(a, b float64) bool {
	return math.Abs(a-b) <= WeightTolerance
}

func isValidWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}

// ComputeScores computes the weighted score of every player of a wide criteria table.
//
// Each leaf column is min-max normalized over every row of the table, then
// multiplied by its effective weight; the score is the sum of the weighted columns.
// Null cells mean "not scored": they are left out of the min and max and add nothing.
// Rows are returned in table order.
func ComputeScores(wide *table.Table, criteria []Criterion) ([]model.ScoredPlayer, error) {
	if err := ValidateWeights(criteria); err != nil {
		return nil, err
	}

	for _, column := range []string{ColumnLicence, ColumnGenre, ColumnParticipation} {
		if !wide.HasColumn(column) {
			return nil, fmt.Errorf("criteria table has no %q column", column)
		}
	}

	leaves := LeafWeights(criteria)
	for _, leaf := range leaves {
		if !wide.HasColumn(leaf.Column) {
			return nil, &MissingCriterionColumnError{Column: leaf.Column}
		}
	}

	scores := make([]float64, wide.Len())

	for _, leaf := range leaves {
		normalized, err := NormalizeColumn(wide, leaf.Column)
		if err != nil {
			return nil, err
		}

		for i, n := range normalized {
			if n != nil {
				scores[i] += *n * leaf.Weight
			}
		}
	}

	players := make([]model.ScoredPlayer, wide.Len())
	for i, row := range wide.Rows {
		participation, err := row.Get(ColumnParticipation).Bool()
		if err != nil {
			return nil, fmt.Errorf("row %d, column %s: %w", i+1, ColumnParticipation, err)
		}
		players[i] = model.ScoredPlayer{
			Licence:       row.Get(ColumnLicence).String(),
			Genre:         row.Get(ColumnGenre).String(),
			Participation: participation,
			Score:         scores[i],
		}
	}

	return players, nil
}

// NormalizeColumn returns the min-max normalized values of a column (nil for null cells)
func NormalizeColumn(wide *table.Table, column string) ([]*float64, error) {
	if !wide.HasColumn(column) {
		return nil, &MissingCriterionColumnError{Column: column}
	}

	values, present, err := columnValues(wide, column)
	if err != nil {
		return nil, err
	}

	lo, hi, ok := valueRange(values, present)
	if !ok {
		return nil, &DegenerateCriterionRangeError{Column: column}
	}
	if hi == lo {
		return nil, &DegenerateCriterionRangeError{Column: column, Value: &lo}
	}

	out := make([]*float64, len(values))
	for i, v := range values {
		if present[i] {
			n := (v - lo) / (hi - lo)
			out[i] = &n
		}
	}
	return out, nil
}

func columnValues(wide *table.Table, column string) ([]float64, []bool, error) {
	cells, err := wide.Column(column)
	if err != nil {
		return nil, nil, err
	}

	values := make([]float64, len(cells))
	present := make([]bool, len(cells))
	for i, cell := range cells {
		if cell.IsNull() {
			continue
		}
		v, err := cell.Float64()
		if err != nil {
			return nil, nil, fmt.Errorf("row %d, column %s: %w", i+1, column, err)
		}
		values[i] = v
		present[i] = true
	}
	return values, present, nil
}

func valueRange(values []float64, present []bool) (lo, hi float64, ok bool) {
	for i, v := range values {
		if !present[i] {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, ok
}
