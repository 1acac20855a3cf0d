package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/engine/batch"
	"github.com/rshade/namesearch/internal/engine/cache"
	"github.com/rshade/namesearch/internal/ingest"
	"github.com/rshade/namesearch/internal/logging"
)

const (
	configFileName = "config.yaml"
	cacheDirName   = "cache"

	// EnvHome overrides the ~/.namesearch directory.
	EnvHome = "NAMESEARCH_HOME"
)

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// Config is the complete namesearch configuration.
type Config struct {
	// Requires is a semver constraint the running binary must satisfy.
	Requires string        `yaml:"requires,omitempty"`
	Scan     ScanConfig    `yaml:"scan"`
	Names    []string      `yaml:"names"`
	Source   SourceConfig  `yaml:"source"`
	Cache    CacheConfig   `yaml:"cache"`
	Output   OutputConfig  `yaml:"output"`
	Logging  LoggingConfig `yaml:"logging"`
}

// ScanConfig tunes the scan pipeline.
type ScanConfig struct {
	BatchSize int           `yaml:"batch_size"`
	Timeout   time.Duration `yaml:"timeout"`
	// Workers of 0 selects the number of CPUs.
	Workers int `yaml:"workers"`
}

// SourceConfig says where the corpus comes from.
type SourceConfig struct {
	Location string        `yaml:"location"`
	Timeout  time.Duration `yaml:"timeout"`
}

// CacheConfig controls the on-disk corpus cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ToLoggingConfig converts the YAML section to a logging.Config. A non-empty
// File switches output to the file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// New returns the built-in defaults.
func New() *Config {
	cacheDir := cacheDirName
	if dir, err := Dir(); err == nil {
		cacheDir = filepath.Join(dir, cacheDirName)
	}

	return &Config{
		Scan: ScanConfig{
			BatchSize: batch.DefaultBatchSize,
			Timeout:   engine.DefaultTimeout,
		},
		Names: append([]string(nil), DefaultNames...),
		Source: SourceConfig{
			Location: ingest.DefaultLocation,
			Timeout:  ingest.DefaultHTTPTimeout,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Directory:  cacheDir,
			TTLSeconds: cache.DefaultTTLSeconds,
		},
		Output: OutputConfig{
			Format: string(engine.OutputText),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Dir returns the namesearch home directory, $NAMESEARCH_HOME or ~/.namesearch.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".namesearch"), nil
}

// DefaultPath returns the path of the default config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load builds a Config from defaults, the file at path and the environment.
// An empty path selects DefaultPath, which may be absent; an explicit path
// must exist. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			if envErr := cfg.ApplyEnv(); envErr != nil {
				return nil, envErr
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.Cache.Directory = expandHome(cfg.Cache.Directory)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(New())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// NameSet returns the configured names as an engine.NameSet.
func (c *Config) NameSet() (engine.NameSet, error) {
	return engine.NewNameSet(c.Names...)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
