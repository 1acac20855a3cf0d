package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached corpus.
type Entry struct {
	// Key is the SHA-256 of Source.
	Key string

	// Source is the location the lines were read from.
	Source string

	// Lines is the corpus, one element per line.
	Lines []string

	CreatedAt  time.Time
	ExpiresAt  time.Time
	TTLSeconds int
}

// entryFile is the on-disk form of an Entry. Lines are stored as bytes so
// that corpora which are not valid UTF-8 are read back unchanged.
type entryFile struct {
	Key        string    `json:"key"`
	Source     string    `json:"source"`
	Lines      [][]byte  `json:"lines"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTLSeconds int       `json:"ttl_seconds"`
}

// NewEntry creates an entry expiring ttlSeconds from now.
func NewEntry(key, source string, lines []string, ttlSeconds int) *Entry {
	now := time.Now().UTC().Truncate(time.Second)
	return &Entry{
		Key:        key,
		Source:     source,
		Lines:      lines,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry is past its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the time since the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	f := entryFile{
		Key:        e.Key,
		Source:     e.Source,
		CreatedAt:  e.CreatedAt,
		ExpiresAt:  e.ExpiresAt,
		TTLSeconds: e.TTLSeconds,
	}
	if e.Lines != nil {
		f.Lines = make([][]byte, len(e.Lines))
		for i, l := range e.Lines {
			f.Lines[i] = []byte(l)
		}
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var f entryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*e = Entry{
		Key:        f.Key,
		Source:     f.Source,
		CreatedAt:  f.CreatedAt,
		ExpiresAt:  f.ExpiresAt,
		TTLSeconds: f.TTLSeconds,
	}
	if f.Lines != nil {
		e.Lines = make([]string, len(f.Lines))
		for i, l := range f.Lines {
			e.Lines[i] = string(l)
		}
	}
	return nil
}
