package services

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/core/criteria"
	"github.com/asbg75/interclubs/pkg/core/generate"
	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/ranking"
	"github.com/asbg75/interclubs/pkg/table"
)

// ReshapeCriteria converts a long criteria file into the wide layout, one column per scored sub-criterion
func ReshapeCriteria(src, dst string, logger *zap.Logger) (*table.Table, error) {
	long, err := table.ReadFile(src)
	if err != nil {
		return nil, err
	}

	rows, err := criteria.LoadLong(long)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded long criteria", zap.String("path", src), zap.Int("rows", len(rows)))

	wide, err := criteria.Reshape(long, criteria.DefaultOptions())
	if err != nil {
		return nil, err
	}

	if err := writeTable(dst, wide); err != nil {
		return nil, err
	}
	logger.Info("Criteria reshaped", zap.String("path", dst), zap.Int("players", wide.Len()))
	return wide, nil
}

// GenerateRankings writes a random rankings file of n players
func GenerateRankings(dst string, n int, seed uint64, logger *zap.Logger) ([]model.RankingRow, error) {
	rows, err := generate.Rankings(generate.NewRand(seed), n)
	if err != nil {
		return nil, err
	}

	t, err := table.Encode(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rankings: %w", err)
	}
	if err := writeTable(dst, t); err != nil {
		return nil, err
	}

	logger.Info("Rankings generated", zap.String("path", dst), zap.Int("players", len(rows)), zap.Uint64("seed", seed))
	return rows, nil
}

// GenerateCriteria writes a random long criteria file for the players of a rankings file
func GenerateCriteria(rankingsPath, dst string, weights []ranking.Criterion, seed uint64, logger *zap.Logger) ([]model.CriterionRow, error) {
	if err := ranking.ValidateWeights(weights); err != nil {
		return nil, err
	}

	rankings, err := table.ReadFile(rankingsPath)
	if err != nil {
		return nil, err
	}
	players, err := table.DecodeAs[model.RankingRow](rankings)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rankings: %w", err)
	}

	rows := generate.Criteria(generate.NewRand(seed), players, weights)

	t, err := table.Encode(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode criteria: %w", err)
	}
	if err := writeTable(dst, t); err != nil {
		return nil, err
	}

	logger.Info("Criteria generated", zap.String("path", dst), zap.Int("players", len(players)), zap.Int("rows", len(rows)))
	return rows, nil
}

func writeTable(path string, t *table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return table.WriteFile(path, t)
}
