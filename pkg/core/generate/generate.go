// Package generate builds random but plausible player files, used as example
// data and to try the ranking on a realistic population.
package generate

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/ranking"
)

const (
	// WomenRatio is the share of women among generated players
	WomenRatio = 0.3

	// ParticipationRatio is the share of players opting in to the draw
	ParticipationRatio = 0.8

	// MaxScore is the highest raw criterion score
	MaxScore = 100
)

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
)

// Clip bounds n to [lower, upper]
func Clip(n, lower, upper int) (int, error) {
	if lower > upper {
		return 0, fmt.Errorf("lower bound %d is greater than upper bound %d", lower, upper)
	}
	return max(lower, min(n, upper)), nil
}

// Rankings generates n players. Each player gets a base level and each
// discipline rank is within one step of it, clipped to the ranking scale.
// Licences are "0" to "n-1".
func Rankings(rng *rand.Rand, n int) ([]model.RankingRow, error) {
	if n < 0 {
		return nil, fmt.Errorf("number of players must not be negative, got %d", n)
	}

	players := make([]model.RankingRow, 0, n)
	for licence := range n {
		nom := randomLetters(rng, upperLetters, 3)
		prenom := randomLetters(rng, lowerLetters, 3)
		base := int(model.Ranks()[rng.IntN(len(model.Ranks()))])

		var labels [3]string
		for i := range labels {
			rank, err := Clip(base+rng.IntN(3)-1, int(model.MinRank), int(model.MaxRank))
			if err != nil {
				return nil, err
			}
			labels[i] = model.Rank(rank).String()
		}

		players = append(players, model.RankingRow{
			Licence: strconv.Itoa(licence),
			Nom:     nom,
			Prenom:  prenom,
			Genre:   randomGender(rng),
			Simple:  labels[0],
			Double:  labels[1],
			Mixte:   labels[2],
		})
	}

	return players, nil
}

// Criteria generates the long criteria rows of every player: one row per leaf
// of the weight tree, each with a score between 0 and MaxScore.
// The gender comes from the player so both files always agree.
func Criteria(rng *rand.Rand, players []model.RankingRow, criteria []ranking.Criterion) []model.CriterionRow {
	var rows []model.CriterionRow

	for _, player := range players {
		participation := rng.Float64() < ParticipationRatio

		for _, criterion := range criteria {
			base := model.CriterionRow{
				Licence:       player.Licence,
				Genre:         player.Genre,
				Participation: participation,
				Critere:       criterion.Name,
				Poids:         criterion.Weight,
			}

			if criterion.Subcriteria == nil {
				base.Score = float64(rng.IntN(MaxScore + 1))
				rows = append(rows, base)
				continue
			}

			for _, sub := range criterion.Subcriteria {
				row := base
				row.SousCritere = &sub.Name
				row.SousCriterePoids = &sub.Weight
				row.Score = float64(rng.IntN(MaxScore + 1))
				rows = append(rows, row)
			}
		}
	}

	return rows
}

// NewRand returns a deterministic generator for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func randomGender(rng *rand.Rand) string {
	if rng.Float64() < WomenRatio {
		return model.GenderWomen
	}
	return model.GenderMen
}

func randomLetters(rng *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return string(b)
}
