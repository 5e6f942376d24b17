package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// Environment variables that override tierdocs.yaml.
const (
	EnvRustc     = "TIERDOCS_RUSTC"
	EnvFactsFile = "TIERDOCS_FACTS_FILE"
	EnvWorkers   = "TIERDOCS_WORKERS"
)

// Settings is the effective configuration of a run.
// Precedence, highest first: flags, environment, tierdocs.yaml, defaults.
type Settings struct {
	ProjectPath    string
	TargetInfoPath string
	OutputPath     string
	Sections       tierdocs.SectionVocabulary
	Rustc          string
	FactsFile      string
	SpecMetadata   bool
	Workers        int
	Timeout        time.Duration
}

// Defaults returns the settings used when nothing else is configured.
func Defaults(projectPath string) Settings {
	return Settings{
		ProjectPath:    projectPath,
		TargetInfoPath: filepath.Join(projectPath, tierdocs.DefaultTargetInfoDir),
		OutputPath:     filepath.Join(projectPath, tierdocs.DefaultOutputDir),
		Sections:       append(tierdocs.SectionVocabulary(nil), tierdocs.DefaultSections...),
		Rustc:          tierdocs.DefaultRustc,
		Timeout:        tierdocs.DefaultTimeout,
	}
}

// ApplyFile overlays the values set in cfg. A nil cfg changes nothing.
func (s *Settings) ApplyFile(cfg *ProjectConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.TargetInfo != "" {
		s.TargetInfoPath = s.Path(cfg.TargetInfo)
	}
	if cfg.Output != "" {
		s.OutputPath = s.Path(cfg.Output)
	}
	if len(cfg.Sections) > 0 {
		s.Sections = append(tierdocs.SectionVocabulary(nil), cfg.Sections...)
	}
	if cfg.Facts.Rustc != "" {
		s.Rustc = cfg.Facts.Rustc
	}
	if cfg.Facts.File != "" {
		s.FactsFile = s.Path(cfg.Facts.File)
	}
	if cfg.Facts.SpecMetadata {
		s.SpecMetadata = true
	}
	if cfg.Workers != 0 {
		s.Workers = cfg.Workers
	}
	if cfg.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in %s: %w: %w", ConfigFileName, tierdocs.ErrInvalidConfig, err)
		}
		s.Timeout = timeout
	}
	return nil
}

// ApplyEnv overlays the TIERDOCS_* variables found by lookup.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRustc); ok && v != "" {
		s.Rustc = v
	}
	if v, ok := lookup(EnvFactsFile); ok && v != "" {
		s.FactsFile = s.Path(v)
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, tierdocs.ErrInvalidConfig)
		}
		s.Workers = workers
	}
	return nil
}

// Path resolves p against the project directory unless it is absolute.
func (s *Settings) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.ProjectPath, p)
}

// GenerateConfig converts the settings into the configuration of a run.
func (s *Settings) GenerateConfig(verbose bool) tierdocs.GenerateConfig {
	return tierdocs.GenerateConfig{
		TargetInfoPath: s.TargetInfoPath,
		OutputPath:     s.OutputPath,
		Sections:       s.Sections,
		Workers:        s.Workers,
		Timeout:        s.Timeout,
		Verbose:        verbose,
	}
}

// LoadSettings loads the project's .env and tierdocs.yaml on top of the
// defaults. Flags are applied by the caller afterwards.
func LoadSettings(projectPath string, lookup func(string) (string, bool)) (Settings, error) {
	settings := Defaults(projectPath)

	if err := LoadDotEnv(projectPath); err != nil {
		return settings, err
	}

	cfg, err := Load(projectPath)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return settings, err
	}
	if err := settings.ApplyFile(cfg); err != nil {
		return settings, err
	}
	if err := settings.ApplyEnv(lookup); err != nil {
		return settings, err
	}
	return settings, nil
}
