// Package config provides hierarchical configuration management for relnote using koanf.
// Configuration is loaded with priority: environment variables (RELNOTE_*) > project config
// (.relnote/config.yml, or .relnote/config.json when no YAML file exists) > user config
// (~/.config/relnote/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/ariel-frischer/relnote/internal/fragment"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "RELNOTE_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the relnote tool configuration
type Configuration struct {
	// FragmentDir holds the pending <name>.<category>.md fragments.
	FragmentDir string `koanf:"fragment_dir" validate:"required"`
	// ChangelogFile receives each new release section at the top.
	ChangelogFile string `koanf:"changelog_file" validate:"required"`
	// OutputFile is overwritten with only the new section on every release.
	OutputFile string `koanf:"output_file" validate:"required"`
	// Cleanup selects which fragment files are removed after a release.
	Cleanup string `koanf:"cleanup" validate:"required,oneof=consumed all"`
	// Categories is the ordered category table used for rendering.
	Categories changelog.Categories `koanf:"categories" validate:"required,min=1,dive"`

	// Sources records which layers contributed to this configuration.
	Sources []ConfigSource `koanf:"-"`
}

// CleanupMode returns Cleanup as a fragment.CleanupMode.
func (c *Configuration) CleanupMode() fragment.CleanupMode {
	return fragment.CleanupMode(c.Cleanup)
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnote/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// SkipUserConfig ignores the user-level config file entirely
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := []ConfigSource{SourceDefault}

	loadDefaults(k)

	if !opts.SkipUserConfig {
		loaded, err := loadUserConfig(k, opts.UserConfigPath)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, SourceUser)
		}
	}

	loaded, err := loadProjectConfig(k, opts.ProjectConfigPath)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceProject)
	}

	if hasEnvOverrides() {
		if err := loadEnvironmentConfig(k); err != nil {
			return nil, err
		}
		sources = append(sources, SourceEnv)
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) (bool, error) {
	path := customPath
	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			return false, nil
		}
	}
	if !fileExists(path) {
		return false, nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return false, fmt.Errorf("loading user config: %w", err)
	}
	return true, nil
}

// loadProjectConfig loads project-level config. YAML is preferred; the JSON
// file is only read when no YAML file exists. A custom path may point at
// either format and is chosen by extension.
func loadProjectConfig(k *koanf.Koanf, customPath string) (bool, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return false, fmt.Errorf("config file %s not found", customPath)
		}
		return true, loadByExtension(k, customPath)
	}

	if yamlPath := ProjectConfigPath(); fileExists(yamlPath) {
		return true, loadYAMLConfig(k, yamlPath, "project")
	}
	if jsonPath := ProjectJSONConfigPath(); fileExists(jsonPath) {
		return true, loadJSONConfig(k, jsonPath, "project")
	}
	return false, nil
}

func loadByExtension(k *koanf.Koanf, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSONConfig(k, path, "project")
	}
	return loadYAMLConfig(k, path, "project")
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// hasEnvOverrides reports whether any RELNOTE_* variable is set.
func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			return true
		}
	}
	return false
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.FragmentDir = expandHomePath(cfg.FragmentDir)
	cfg.ChangelogFile = expandHomePath(cfg.ChangelogFile)
	cfg.OutputFile = expandHomePath(cfg.OutputFile)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTE_FRAGMENT_DIR -> fragment_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
