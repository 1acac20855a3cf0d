package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/engine/cache"
	"github.com/rshade/namesearch/internal/logging"
)

const (
	// DefaultLocation is the corpus scanned when no source is configured.
	DefaultLocation = "http://norvig.com/big.txt"

	// DefaultHTTPTimeout bounds a single corpus download.
	DefaultHTTPTimeout = 30 * time.Second

	// StdinLocation selects standard input.
	StdinLocation = "-"

	// MaxLineBytes is the longest line a source accepts.
	MaxLineBytes = 16 << 20

	initialBufferBytes = 64 << 10
)

// Source is a LineSource that can describe where it reads from.
type Source interface {
	engine.LineSource
	Describe() string
}

// Options tunes Open.
type Options struct {
	// HTTPTimeout applies when Client is nil; <= 0 selects DefaultHTTPTimeout.
	HTTPTimeout time.Duration

	// Client overrides the HTTP client.
	Client *http.Client

	// Store caches remote corpora when non-nil and enabled.
	Store *cache.FileStore

	// Stdin is read for StdinLocation; nil selects os.Stdin.
	Stdin io.Reader
}

// Open picks a source for location: HTTP for http:// and https:// URLs,
// standard input for "-", a local file otherwise. An empty location selects
// DefaultLocation.
func Open(location string, opts Options) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultLocation
	}

	switch {
	case location == StdinLocation:
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		return &ReaderSource{R: r, Name: "stdin"}, nil

	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		src := &HTTPSource{URL: location, Client: opts.Client, Timeout: opts.HTTPTimeout}
		if opts.Store != nil && opts.Store.IsEnabled() {
			return &CachedSource{Inner: src, Store: opts.Store}, nil
		}
		return src, nil

	default:
		return &FileSource{Path: location}, nil
	}
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

func (s *FileSource) Describe() string { return s.Path }

func (s *FileSource) Lines(ctx context.Context) ([]string, error) {
	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Str("operation", "read_file").
		Str("path", s.Path).
		Msg("reading corpus file")

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, unavailable("opening %s: %w", s.Path, err)
	}
	defer f.Close()

	lines, err := ReadLines(ctx, f)
	if err != nil {
		return nil, unavailable("reading %s: %w", s.Path, err)
	}
	return lines, nil
}

// HTTPSource downloads a corpus with a GET request.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func (s *HTTPSource) Describe() string { return s.URL }

func (s *HTTPSource) Lines(ctx context.Context) ([]string, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, unavailable("building request for %s: %w", s.URL, err)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, unavailable("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, unavailable("fetching %s: unexpected status %s", s.URL, resp.Status)
	}

	lines, err := ReadLines(ctx, resp.Body)
	if err != nil {
		return nil, unavailable("reading %s: %w", s.URL, err)
	}

	log.Debug().
		Str("component", "ingest").
		Str("operation", "fetch").
		Str("url", s.URL).
		Int("lines", len(lines)).
		Dur("duration", time.Since(start)).
		Msg("corpus downloaded")

	return lines, nil
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// ReaderSource reads from an arbitrary reader. It can be read once.
type ReaderSource struct {
	R    io.Reader
	Name string
}

func (s *ReaderSource) Describe() string {
	if s.Name == "" {
		return "reader"
	}
	return s.Name
}

func (s *ReaderSource) Lines(ctx context.Context) ([]string, error) {
	lines, err := ReadLines(ctx, s.R)
	if err != nil {
		return nil, unavailable("reading %s: %w", s.Describe(), err)
	}
	return lines, nil
}

// ReadLines splits r into lines. "\n", "\r" and "\r\n" terminators are
// removed, a final line without terminator is kept, and a trailing
// terminator does not add an empty line. Lines longer than MaxLineBytes fail
// with bufio.ErrTooLong. ctx is checked between lines.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialBufferBytes), MaxLineBytes)
	sc.Split(scanLines)

	var lines []string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanLines is bufio.ScanLines with a lone "\r" also ending a line.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A "\r" ending the buffer may be followed by "\n".
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %w", engine.ErrSourceUnavailable, fmt.Errorf(format, args...))
}
