package ranking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRankingLabel        = errors.New("unknown ranking label")
	ErrDegenerateCriterionRange   = errors.New("degenerate criterion range")
	ErrInvalidWeightConfiguration = errors.New("invalid weight configuration")
	ErrMissingCriteriaData        = errors.New("missing criteria data")
	ErrMissingCriterionColumn     = errors.New("missing criterion column")
)

// UnknownRankingLabelError reports a rank outside the ranking scale
type UnknownRankingLabelError struct {
	Licence string
	Column  string
	Label   string
}

func (e *UnknownRankingLabelError) Error() string {
	return fmt.Sprintf("%s: player %s has %s=%q", ErrUnknownRankingLabel, e.Licence, e.Column, e.Label)
}

func (e *UnknownRankingLabelError) Is(target error) bool {
	return target == ErrUnknownRankingLabel
}

// DegenerateCriterionRangeError reports a criterion column whose values are all equal (or all null)
type DegenerateCriterionRangeError struct {
	Column string
	// Value is the single value of the column, nil when the column has no value at all
	Value *float64
}

func (e *DegenerateCriterionRangeError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: column %q has no score", ErrDegenerateCriterionRange, e.Column)
	}
	return fmt.Sprintf("%s: every score of column %q equals %g", ErrDegenerateCriterionRange, e.Column, *e.Value)
}

func (e *DegenerateCriterionRangeError) Is(target error) bool {
	return target == ErrDegenerateCriterionRange
}

// InvalidWeightConfigurationError reports a criteria weight tree that cannot be used
type InvalidWeightConfigurationError struct {
	// Field is the offending criterion (or criterion.subcriterion), empty when the whole tree is at fault
	Field  string
	Reason string
	Sum    float64
}

func (e *InvalidWeightConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s (sum of effective weights is %.12g)", ErrInvalidWeightConfiguration, e.Reason, e.Sum)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidWeightConfiguration, e.Field, e.Reason)
}

func (e *InvalidWeightConfigurationError) Is(target error) bool {
	return target == ErrInvalidWeightConfiguration
}

// MissingCriteriaDataError reports players present in only one of the rankings and the criteria
type MissingCriteriaDataError struct {
	// MissingScores are licences with a ranking but no criteria row
	MissingScores []string
	// MissingRankings are licences with criteria but no ranking row
	MissingRankings []string
}

func (e *MissingCriteriaDataError) Error() string {
	var parts []string
	if len(e.MissingScores) > 0 {
		parts = append(parts, fmt.Sprintf("%d ranked player(s) without criteria [%s]",
			len(e.MissingScores), strings.Join(e.MissingScores, ", ")))
	}
	if len(e.MissingRankings) > 0 {
		parts = append(parts, fmt.Sprintf("%d player(s) with criteria but no ranking [%s]",
			len(e.MissingRankings), strings.Join(e.MissingRankings, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrMissingCriteriaData, strings.Join(parts, "; "))
}

func (e *MissingCriteriaDataError) Is(target error) bool {
	return target == ErrMissingCriteriaData
}

// MissingCriterionColumnError reports a configured criterion with no column in the criteria table
type MissingCriterionColumnError struct {
	Column string
}

func (e *MissingCriterionColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingCriterionColumn, e.Column)
}

func (e *MissingCriterionColumnError) Is(target error) bool {
	return target == ErrMissingCriterionColumn
}
