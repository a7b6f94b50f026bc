package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/core/criteria"
	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/ranking"
	"github.com/asbg75/interclubs/pkg/exampledata"
	"github.com/asbg75/interclubs/pkg/metrics"
	"github.com/asbg75/interclubs/pkg/table"
)

// RankOptions selects the inputs of a ranking.
// Empty paths fall back to the configured ones; Example ignores both.
type RankOptions struct {
	RankingsPath string
	CriteriaPath string
	Example      bool
}

// RankPlayersResult holds the ranking and the files it was saved to.
// Files is empty for an example ranking.
type RankPlayersResult struct {
	Ranking *ranking.RankResult
	Files   []string
}

// RankPlayers ranks the participating players of each gender and saves one
// rankings file per gender in the data directory. An example ranking is not
// saved so the club's rankings files are left untouched.
func RankPlayers(cfg *config.Config, m *metrics.Manager, logger *zap.Logger, opts RankOptions) (*RankPlayersResult, error) {
	result, err := rankPlayers(cfg, logger, opts)
	if err != nil {
		m.RecordRankingError()
		return nil, err
	}

	for _, genre := range result.Genders {
		players := result.ByGender[genre]
		logger.Info("Ranked players", zap.String("genre", genre), zap.Int("count", len(players)))
		m.RecordPlayersRanked(genre, len(players))
	}

	if opts.Example {
		logger.Info("Example ranking, rankings files not saved")
		return &RankPlayersResult{Ranking: result}, nil
	}

	files, err := SaveRankings(cfg.DataDir, result)
	if err != nil {
		return nil, err
	}

	return &RankPlayersResult{Ranking: result, Files: files}, nil
}

func rankPlayers(cfg *config.Config, logger *zap.Logger, opts RankOptions) (*ranking.RankResult, error) {
	// fail on the configuration before reading any player data
	if err := ranking.ValidateWeights(cfg.Criteria); err != nil {
		return nil, err
	}

	rankingsTable, wide, err := loadRankingInputs(cfg, logger, opts)
	if err != nil {
		return nil, err
	}

	players, err := ranking.LoadRankings(rankingsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings: %w", err)
	}
	logger.Debug("Loaded rankings", zap.Int("players", len(players)))

	scores, err := ranking.ComputeScores(wide, cfg.Criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to compute scores: %w", err)
	}
	logger.Debug("Computed scores", zap.Int("players", len(scores)))

	result, err := ranking.RankPlayers(players, scores)
	if err != nil {
		return nil, err
	}

	if len(result.GenderMismatches) > 0 {
		logger.Warn("Gender differs between rankings and criteria, using the rankings gender",
			zap.Strings("licences", result.GenderMismatches))
	}
	logger.Debug("Players not participating", zap.Int("count", result.NotParticipating))

	return result, nil
}

func loadRankingInputs(cfg *config.Config, logger *zap.Logger, opts RankOptions) (rankings, wide *table.Table, err error) {
	if opts.Example {
		logger.Info("Using example data")
		if rankings, err = exampledata.RankingsTable(); err != nil {
			return nil, nil, fmt.Errorf("failed to build example rankings: %w", err)
		}
		if wide, err = exampledata.CriteriaTable(); err != nil {
			return nil, nil, fmt.Errorf("failed to build example criteria: %w", err)
		}
		return rankings, wide, nil
	}

	rankingsPath, err := inputPath(cfg, opts.RankingsPath, cfg.RankingsPath, "rankings")
	if err != nil {
		return nil, nil, err
	}
	criteriaPath, err := inputPath(cfg, opts.CriteriaPath, cfg.CriteriaPath, "criteria")
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("Reading inputs", zap.String("rankings", rankingsPath), zap.String("criteria", criteriaPath))

	rankings, err = table.ReadFile(rankingsPath)
	if err != nil {
		return nil, nil, err
	}

	long, err := table.ReadFile(criteriaPath)
	if err != nil {
		return nil, nil, err
	}
	rows, err := criteria.LoadLong(long)
	if err != nil {
		return nil, nil, err
	}
	recorded, err := criteria.Weights(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("criteria file %s: %w", criteriaPath, err)
	}
	if err := ranking.MatchWeights(recorded, cfg.Criteria); err != nil {
		return nil, nil, fmt.Errorf("criteria file %s does not match the configuration: %w", criteriaPath, err)
	}

	wide, err = criteria.Reshape(long, criteria.DefaultOptions())
	if err != nil {
		return nil, nil, err
	}

	return rankings, wide, nil
}

func inputPath(cfg *config.Config, override, configured, what string) (string, error) {
	path := override
	if path == "" {
		path = configured
	}
	if path == "" {
		return "", fmt.Errorf("no %s file given and none configured", what)
	}
	return cfg.ResolvePath(path), nil
}

// RankingsFileName is the name of the rankings file of a gender
func RankingsFileName(genre string) string {
	return "rankings-" + strings.ToLower(genre) + ".csv"
}

// SaveRankings writes one rankings file per gender into dir and returns their paths
func SaveRankings(dir string, result *ranking.RankResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	files := make([]string, 0, len(result.Genders))
	for _, genre := range result.Genders {
		t, err := table.Encode(result.ByGender[genre])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s rankings: %w", genre, err)
		}

		path := filepath.Join(dir, RankingsFileName(genre))
		if err := table.WriteFile(path, t); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

// RankingsStore reads the rankings files saved in a directory
type RankingsStore struct {
	Dir string
}

// LoadRankings reads the saved rankings of a gender, best player first.
// A missing file yields an error matching fs.ErrNotExist.
func (s RankingsStore) LoadRankings(genre string) ([]model.RankedPlayer, error) {
	if genre == "" || strings.ContainsAny(genre, `/\`) || strings.Contains(genre, "..") {
		return nil, fmt.Errorf("invalid gender %q: %w", genre, os.ErrNotExist)
	}

	t, err := table.ReadFile(filepath.Join(s.Dir, RankingsFileName(genre)))
	if err != nil {
		return nil, err
	}

	players, err := table.DecodeAs[model.RankedPlayer](t)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s rankings: %w", genre, err)
	}
	for _, p := range players {
		if !p.Ranking.IsValid() {
			return nil, fmt.Errorf("%s rankings: player %s has ranking %d outside the ranking scale", genre, p.Licence, int(p.Ranking))
		}
	}
	return players, nil
}
