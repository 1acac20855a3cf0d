package ingest

import (
	"context"
	"errors"

	"github.com/rshade/namesearch/internal/engine/cache"
	"github.com/rshade/namesearch/internal/logging"
)

// CachedSource serves Inner's lines from Store when a fresh entry exists and
// stores them after a successful read otherwise. Cache failures are logged
// and never fail the read.
type CachedSource struct {
	Inner Source
	Store *cache.FileStore
}

func (s *CachedSource) Describe() string { return s.Inner.Describe() }

func (s *CachedSource) Lines(ctx context.Context) ([]string, error) {
	log := logging.FromContext(ctx)
	key := cache.KeyFor(s.Describe())

	entry, err := s.Store.Get(key)
	switch {
	case err == nil:
		log.Debug().
			Str("component", "cache").
			Str("source", s.Describe()).
			Int("lines", len(entry.Lines)).
			Dur("age", entry.Age()).
			Msg("cache hit")
		return entry.Lines, nil
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired):
		log.Debug().
			Str("component", "cache").
			Str("source", s.Describe()).
			Msg("cache miss")
	default:
		log.Warn().
			Str("component", "cache").
			Str("source", s.Describe()).
			Err(err).
			Msg("cache read failed, reading source")
	}

	lines, err := s.Inner.Lines(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.Store.Set(key, s.Describe(), lines); err != nil {
		log.Warn().
			Str("component", "cache").
			Str("source", s.Describe()).
			Err(err).
			Msg("cache write failed")
	}

	return lines, nil
}
