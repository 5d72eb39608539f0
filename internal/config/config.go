// Package config resolves the settings of a split run from defaults, an
// optional YAML file, the environment and command-line flags.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/d-kuro/docsplit/internal/errors"
	"github.com/d-kuro/docsplit/internal/splitter"
)

// Defaults matching the TypeDoc book layout the tool was written for.
const (
	DefaultInputPath = "./book/docs/classes/OpusPool.md"
	DefaultOutputDir = "./book/docs/classes/OpusPool/"
	DefaultLogLevel  = "info"
)

// Environment variables read by Load.
const (
	EnvInput    = "DOCSPLIT_INPUT"
	EnvOutput   = "DOCSPLIT_OUTPUT"
	EnvAnchor   = "DOCSPLIT_ANCHOR"
	EnvLogLevel = "LOG_LEVEL"
)

// Config holds the settings of one run.
type Config struct {
	InputPath   string            `yaml:"input_path"`
	OutputDir   string            `yaml:"output_dir"`
	Anchor      string            `yaml:"anchor"`
	Renames     map[string]string `yaml:"renames"`
	OnDuplicate string            `yaml:"on_duplicate"`
	LogLevel    string            `yaml:"log_level"`
	DryRun      bool              `yaml:"dry_run"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := splitter.DefaultOptions()
	return &Config{
		InputPath:   DefaultInputPath,
		OutputDir:   DefaultOutputDir,
		Anchor:      opts.Anchor,
		Renames:     opts.Renames,
		OnDuplicate: string(opts.OnDuplicate),
		LogLevel:    DefaultLogLevel,
	}
}

// Load builds a configuration from defaults, the YAML file at path (if
// non-empty), a .env file in the working directory (if present) and the
// process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	cfg.mergeEnv()

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigurationWithCause(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.ConfigurationWithCause(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if file.InputPath != "" {
		c.InputPath = file.InputPath
	}
	if file.OutputDir != "" {
		c.OutputDir = file.OutputDir
	}
	if file.Anchor != "" {
		c.Anchor = file.Anchor
	}
	if file.Renames != nil {
		c.Renames = MergeRenames(c.Renames, file.Renames)
	}
	if file.OnDuplicate != "" {
		c.OnDuplicate = file.OnDuplicate
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.DryRun {
		c.DryRun = true
	}
	return nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv(EnvInput); v != "" {
		c.InputPath = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvAnchor); v != "" {
		c.Anchor = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// ParseRenames parses "old=new" pairs.
func ParseRenames(pairs []string) (map[string]string, error) {
	renames := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, errors.ValidationWithDetails("rename must be old=new", pair)
		}
		renames[from] = to
	}
	return renames, nil
}

// MergeRenames returns base with overrides applied on top. Keys of base
// that overrides does not mention are kept.
func MergeRenames(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for from, to := range base {
		merged[from] = to
	}
	for from, to := range overrides {
		merged[from] = to
	}
	return merged
}

// FormatRenames renders renames as sorted "old=new" pairs.
func FormatRenames(renames map[string]string) []string {
	pairs := make([]string, 0, len(renames))
	for from, to := range renames {
		pairs = append(pairs, from+"="+to)
	}
	sort.Strings(pairs)
	return pairs
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return errors.Configuration("input path cannot be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.Configuration("output directory cannot be empty")
	}
	if strings.TrimSpace(c.Anchor) == "" {
		return errors.Configuration("anchor heading cannot be empty")
	}
	if _, err := splitter.ParseDuplicatePolicy(c.OnDuplicate); err != nil {
		return errors.ConfigurationWithCause("invalid on_duplicate", err)
	}
	return nil
}

// SplitOptions converts the configuration to parser options.
func (c *Config) SplitOptions() (splitter.Options, error) {
	policy, err := splitter.ParseDuplicatePolicy(c.OnDuplicate)
	if err != nil {
		return splitter.Options{}, err
	}
	return splitter.Options{
		Anchor:      c.Anchor,
		Renames:     c.Renames,
		OnDuplicate: policy,
	}, nil
}
