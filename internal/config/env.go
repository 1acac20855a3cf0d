package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/engine/cache"
)

// Environment variables read by ApplyEnv.
const (
	EnvBatchSize    = "NAMESEARCH_BATCH_SIZE"
	EnvTimeout      = "NAMESEARCH_TIMEOUT"
	EnvWorkers      = "NAMESEARCH_WORKERS"
	EnvSource       = "NAMESEARCH_SOURCE"
	EnvLogLevel     = "NAMESEARCH_LOG_LEVEL"
	EnvOutputFormat = "NAMESEARCH_OUTPUT_FORMAT"
)

// ApplyEnv overlays NAMESEARCH_* variables on c. Malformed numbers and
// durations are reported as ErrInvalidArgument; cache variables follow the
// cache package and fall back to the current values when malformed.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBatchSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", engine.ErrInvalidArgument, EnvBatchSize, v)
		}
		c.Scan.BatchSize = n
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", engine.ErrInvalidArgument, EnvTimeout, v)
		}
		c.Scan.Timeout = d
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", engine.ErrInvalidArgument, EnvWorkers, v)
		}
		c.Scan.Workers = n
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Source.Location = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.Format = v
	}

	c.Cache.Enabled = cache.EnabledFromEnv(c.Cache.Enabled)
	c.Cache.Directory = cache.DirFromEnv(c.Cache.Directory)
	c.Cache.TTLSeconds = cache.TTLFromEnv(c.Cache.TTLSeconds)

	return nil
}
