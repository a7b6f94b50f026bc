package model

import (
	"fmt"
	"strings"
)

// Rank is a player's official ranking in one discipline.
// Values are ordinal: a higher value is a better ranking.
// The scale deliberately stops at D7, which covers every player of the club.
type Rank int

const (
	RankNC Rank = iota
	RankP12
	RankP11
	RankP10
	RankD9
	RankD8
	RankD7
)

// rankLabels holds the label of each rank, indexed by rank value (worst to best)
var rankLabels = [...]string{"NC", "P12", "P11", "P10", "D9", "D8", "D7"}

// Ranks returns every rank from worst to best
func Ranks() []Rank {
	ranks := make([]Rank, len(rankLabels))
	for i := range rankLabels {
		ranks[i] = Rank(i)
	}
	return ranks
}

// MinRank and MaxRank bound the scale
const (
	MinRank = RankNC
	MaxRank = RankD7
)

func (r Rank) IsValid() bool {
	return r >= MinRank && r <= MaxRank
}

func (r Rank) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankLabels[r]
}

// ParseRank maps a ranking label to its rank.
// Labels are matched exactly (surrounding whitespace is ignored); there is no fallback.
func ParseRank(label string) (Rank, bool) {
	label = strings.TrimSpace(label)
	for i, l := range rankLabels {
		if l == label {
			return Rank(i), true
		}
	}
	return 0, false
}
