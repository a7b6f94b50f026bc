package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/asbg75/interclubs/pkg/core/allocator"
	"github.com/asbg75/interclubs/pkg/core/ranking"
)

//go:embed example.yaml
var exampleConfig []byte

// Database selects the storage backend
type Database struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// Interclubs configures the results site scraper
type Interclubs struct {
	BaseURL  string        `yaml:"baseURL" validate:"required,url"`
	Instance string        `yaml:"instance" validate:"required"`
	ClubName string        `yaml:"clubName" validate:"required"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Dashboard configures the results web server
type Dashboard struct {
	Addr string `yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
}

// Config represents the application configuration
type Config struct {
	DataDir      string          `yaml:"dataDir" validate:"required"`
	RankingsPath string          `yaml:"rankingsPath,omitempty"`
	CriteriaPath string          `yaml:"criteriaPath,omitempty"`
	Database     Database        `yaml:"database"`
	Interclubs   Interclubs      `yaml:"interclubs"`
	Dashboard    Dashboard       `yaml:"dashboard"`
	Criteria     CriteriaSection `yaml:"criteria" validate:"required"`
	Teams        TeamsSection    `yaml:"teams" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// It looks for interclubs.<env>.yaml in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a configuration document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Example returns the bundled example configuration
func Example() *Config {
	cfg, err := Parse(exampleConfig)
	if err != nil {
		panic(fmt.Sprintf("invalid example config: %v", err))
	}
	return cfg
}

// Validate validates the configuration struct, the team compositions and the criteria weights.
// Weights are checked here so a bad configuration fails before any player data is read.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := ranking.ValidateWeights(cfg.Criteria); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}

	if err := allocator.ValidateCompositions(cfg.Teams); err != nil {
		return fmt.Errorf("invalid teams: %w", err)
	}

	return nil
}

// ResolvePath returns path as is when absolute, otherwise relative to the data directory
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "interclubs.yaml"
	if env != "" {
		configFileName = "interclubs." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
