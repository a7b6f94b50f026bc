package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asbg75/interclubs/pkg/core/allocator"
	"github.com/asbg75/interclubs/pkg/core/ranking"
)

const validConfig = `
dataDir: "data"
rankingsPath: "rankings.csv"
criteriaPath: "/srv/criteria.csv"
database:
  driver: sqlite
  dsn: "data/interclubs.db"
interclubs:
  baseURL: "https://icbad.ffbad.org"
  instance: "ASBG75"
  clubName: "Association Sportive des Badistes Givrés"
  timeout: 10s
dashboard:
  addr: ":8080"
criteria:
  physique:
    weight: 0.6
    subcriteria:
      vitesse: 0.5
      endurance: 0.5
  assiduite:
    weight: 0.4
    subcriteria: null
teams:
  veterans:
    number: 1
    women: 1
    men: 3
  mixte:
    number: 2
    women: 2
    men: 2
  masculine:
    number: 1
    men: 4
`

func validConfigStruct() *Config {
	return &Config{
		DataDir:  "data",
		Database: Database{Driver: "postgres", DSN: "postgres://localhost/interclubs"},
		Interclubs: Interclubs{
			BaseURL:  "https://icbad.ffbad.org",
			Instance: "ASBG75",
			ClubName: "ASBG",
		},
		Criteria: CriteriaSection{{Name: "assiduite", Weight: 1}},
		Teams:    TeamsSection{{Category: "mixte", Number: 1, Women: 2, Men: 2}},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test_config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfigStruct()))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := validConfigStruct()
	cfg.DataDir = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfigStruct()
	cfg.Database.Driver = "mysql"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	cfg := validConfigStruct()
	cfg.Interclubs.BaseURL = "not-a-valid-url"

	assert.Error(t, Validate(cfg))
}

func TestValidate_WeightsNotSummingToOne(t *testing.T) {
	cfg := validConfigStruct()
	cfg.Criteria = CriteriaSection{{Name: "a", Weight: 0.49}, {Name: "b", Weight: 0.5}}

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ranking.ErrInvalidWeightConfiguration)
	assert.Contains(t, err.Error(), "invalid criteria")
}

func TestValidate_NegativeTeamCount(t *testing.T) {
	cfg := validConfigStruct()
	cfg.Teams = TeamsSection{{Category: "mixte", Number: -1}}

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, allocator.ErrInvalidComposition)
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "ASBG75", cfg.Interclubs.Instance)
	assert.Equal(t, 10*time.Second, cfg.Interclubs.Timeout)
	assert.Equal(t, ":8080", cfg.Dashboard.Addr)

	// Sections keep the file order
	require.Len(t, cfg.Criteria, 2)
	assert.Equal(t, "physique", cfg.Criteria[0].Name)
	assert.Equal(t, []ranking.Subcriterion{{Name: "vitesse", Weight: 0.5}, {Name: "endurance", Weight: 0.5}}, cfg.Criteria[0].Subcriteria)
	assert.Equal(t, "assiduite", cfg.Criteria[1].Name)
	assert.Nil(t, cfg.Criteria[1].Subcriteria)

	assert.Equal(t, TeamsSection{
		{Category: "veterans", Number: 1, Women: 1, Men: 3},
		{Category: "mixte", Number: 2, Women: 2, Men: 2},
		{Category: "masculine", Number: 1, Women: 0, Men: 4},
	}, cfg.Teams)
}

func TestLoadFromPath_ResolvePath(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "rankings.csv"), cfg.ResolvePath(cfg.RankingsPath))
	assert.Equal(t, "/srv/criteria.csv", cfg.ResolvePath(cfg.CriteriaPath))
	assert.Equal(t, "", cfg.ResolvePath(""))
}

func TestLoadFromPath_SectionErrors(t *testing.T) {
	base := `
dataDir: data
database: {driver: sqlite, dsn: x.db}
interclubs: {baseURL: "https://icbad.ffbad.org", instance: A, clubName: B}
`
	tests := []struct {
		name    string
		section string
		wantErr string
	}{
		{"criteria is a list", "criteria: [a, b]\nteams: {m: {number: 1}}\n", "criteria must be a mapping"},
		{"criterion without weight", "criteria: {a: {subcriteria: null}}\nteams: {m: {number: 1}}\n", `criterion "a" has no weight`},
		{"team without number", "criteria: {a: {weight: 1}}\nteams: {m: {women: 1}}\n", `team "m" has no number`},
		{"subcriteria is a list", "criteria: {a: {weight: 1, subcriteria: [x]}}\nteams: {m: {number: 1}}\n", "must be a mapping"},
		{"weights off", "criteria: {a: {weight: 0.5}}\nteams: {m: {number: 1}}\n", "invalid criteria"},
		{"missing teams", "criteria: {a: {weight: 1}}\n", "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, base+tt.section))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "dataDir: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interclubs.test.yaml"), []byte(validConfig), 0644))
	t.Chdir(dir)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "ASBG75", cfg.Interclubs.Instance)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWithEnv("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interclubs.missing.yaml not found")
}

func TestExample(t *testing.T) {
	cfg := Example()

	assert.Equal(t, "https://icbad.ffbad.org", cfg.Interclubs.BaseURL)
	assert.NoError(t, ranking.ValidateWeights(cfg.Criteria))
	require.NotEmpty(t, cfg.Teams)
	assert.Equal(t, "mixte", cfg.Teams[0].Category)
}
