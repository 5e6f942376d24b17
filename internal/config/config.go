package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FactsConfig selects and tunes the fact provider.
type FactsConfig struct {
	Rustc        string `yaml:"rustc,omitempty"`
	File         string `yaml:"file,omitempty"`
	SpecMetadata bool   `yaml:"spec_metadata,omitempty"`
}

// ProjectConfig is the content of tierdocs.yaml. Relative paths are
// relative to the project directory.
type ProjectConfig struct {
	TargetInfo string      `yaml:"target_info,omitempty"`
	Output     string      `yaml:"output,omitempty"`
	Sections   []string    `yaml:"sections,omitempty"`
	Facts      FactsConfig `yaml:"facts,omitempty"`
	Workers    int         `yaml:"workers,omitempty"`
	Timeout    string      `yaml:"timeout,omitempty"`
}

const ConfigFileName = tierdocs.ConfigFileName

// Load reads tierdocs.yaml from the project directory. Unknown keys are rejected.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: %w", configPath, tierdocs.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// LoadDotEnv loads the project's .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(sourcePath string) error {
	envPath := filepath.Join(sourcePath, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("loading %s: %w", envPath, err)
	}
	return nil
}
