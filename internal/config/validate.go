package config

import (
	"errors"
	"fmt"

	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/engine/cache"
	"github.com/rshade/namesearch/internal/logging"
	"github.com/rshade/namesearch/pkg/version"
)

// Validate checks every section and returns all problems joined. Each
// problem wraps engine.ErrInvalidArgument.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", engine.ErrInvalidArgument, fmt.Sprintf(format, args...)))
	}

	if c.Requires != "" {
		ok, err := version.Satisfies(c.Requires)
		switch {
		case err != nil:
			add("requires: %v", err)
		case !ok:
			add("requires %q is not satisfied by version %s", c.Requires, version.GetVersion())
		}
	}

	if c.Scan.BatchSize <= 0 {
		add("scan.batch_size must be greater than 0, got %d", c.Scan.BatchSize)
	}
	if c.Scan.Timeout < 0 {
		add("scan.timeout must not be negative, got %s", c.Scan.Timeout)
	}
	if c.Scan.Workers < 0 {
		add("scan.workers must not be negative, got %d", c.Scan.Workers)
	}

	if len(c.Names) == 0 {
		add("names must not be empty")
	} else if _, err := c.NameSet(); err != nil {
		errs = append(errs, fmt.Errorf("names: %w", err))
	}

	if c.Source.Timeout < 0 {
		add("source.timeout must not be negative, got %s", c.Source.Timeout)
	}

	if c.Cache.Enabled {
		if c.Cache.Directory == "" {
			add("cache.directory must be set when the cache is enabled")
		}
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			add("cache.ttl_seconds: %v", err)
		}
	}

	if _, err := engine.ParseOutputFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}

	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		add("logging.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}

	return errors.Join(errs...)
}
