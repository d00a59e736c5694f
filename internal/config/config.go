// Package config loads the triage engine's configuration from
// .triage/config.yaml, discovered by walking up from the working
// directory the way the teacher's internal/config discovers .cx.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the triage configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the triage configuration directory.
const ConfigDirName = ".triage"

// Config holds all triage engine configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Risk   RiskConfig   `yaml:"risk"`
	Impact ImpactConfig `yaml:"impact"`
	Output OutputConfig `yaml:"output"`
}

// ScanConfig controls which files the source loader considers, layered
// on top of the fixed noise policy in internal/noise.
type ScanConfig struct {
	Languages []string `yaml:"languages"`
	Exclude   []string `yaml:"exclude"`
}

// RiskConfig mirrors the §4.4 risk-scorer weight table; unset fields
// merge to the values in DefaultConfig. It is loaded, merged and
// validated, but risk.Score does not read it: scoring always uses the
// risk package's built-in table.
type RiskConfig struct {
	ClassificationWeights map[string]float64 `yaml:"classification_weights"`
	ChangeTypeWeights      map[string]float64 `yaml:"change_type_weights"`
	PublicAPIBoost         float64            `yaml:"public_api_boost"`
	BlastRadiusCoefficient float64            `yaml:"blast_radius_coefficient"`
	DependentCoefficient   float64            `yaml:"dependent_coefficient"`
}

// ImpactConfig bounds the impact counter's reverse-reachability walk.
type ImpactConfig struct {
	Cap int `yaml:"cap"`
}

// OutputConfig controls CLI output formatting defaults.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .triage/config.yaml, searching upward from
// workDir. If no config directory is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path, merging it over
// defaults and validating the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .triage directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .triage directory if it doesn't exist.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are sane.
func Validate(cfg *Config) error {
	if !IsValidFormat(cfg.Output.Format) {
		return fmt.Errorf("%w: output.format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.Format)
	}

	if cfg.Impact.Cap <= 0 {
		return fmt.Errorf("%w: impact.cap must be positive, got %d",
			ErrInvalidConfig, cfg.Impact.Cap)
	}

	if cfg.Risk.PublicAPIBoost < 0 {
		return fmt.Errorf("%w: risk.public_api_boost must be non-negative, got %f",
			ErrInvalidConfig, cfg.Risk.PublicAPIBoost)
	}

	return nil
}

// SaveDefault writes the default configuration to .triage/config.yaml
// in workDir, creating the directory if needed.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# entity triage configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
