package model

// Gender labels as they appear in the club's player files
const (
	GenderWomen = "Femme"
	GenderMen   = "Homme"
)

// RankingRow is a raw line of the rankings file
type RankingRow struct {
	Licence string `table:"licence"`
	Nom     string `table:"nom"`
	Prenom  string `table:"prenom"`
	Genre   string `table:"genre"`
	Simple  string `table:"simple"`
	Double  string `table:"double"`
	Mixte   string `table:"mixte"`
}

// PlayerRanking is a player with parsed discipline ranks and their unified rank
type PlayerRanking struct {
	Licence string `table:"licence"`
	Nom     string `table:"nom"`
	Prenom  string `table:"prenom"`
	Genre   string `table:"genre"`
	Simple  Rank   `table:"simple"`
	Double  Rank   `table:"double"`
	Mixte   Rank   `table:"mixte"`

	// Ranking is the best of the three discipline ranks
	Ranking Rank `table:"ranking"`
}

// CriterionRow is a line of the long-form criteria file
type CriterionRow struct {
	Licence          string   `table:"licence"`
	Genre            string   `table:"genre"`
	Participation    bool     `table:"participation"`
	Critere          string   `table:"critere"`
	Poids            float64  `table:"poids"`
	SousCritere      *string  `table:"sous_critere"`
	SousCriterePoids *float64 `table:"sous_critere_poids"`
	Score            float64  `table:"score"`
}

// ScoredPlayer is a player with the weighted score computed from the criteria
type ScoredPlayer struct {
	Licence       string  `table:"licence"`
	Genre         string  `table:"genre"`
	Participation bool    `table:"participation"`
	Score         float64 `table:"score"`
}

// RankedPlayer is a participating player ordered for the draw
type RankedPlayer struct {
	Licence string  `table:"licence"`
	Nom     string  `table:"nom"`
	Prenom  string  `table:"prenom"`
	Genre   string  `table:"genre"`
	Ranking Rank    `table:"ranking"`
	Score   float64 `table:"score"`
}
