package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	a := KeyFor("http://norvig.com/big.txt")
	assert.Len(t, a, 64)
	assert.Equal(t, a, KeyFor("  http://norvig.com/big.txt\n"))
	assert.NotEqual(t, a, KeyFor("http://norvig.com/small.txt"))
}

func TestEntry(t *testing.T) {
	e := NewEntry("k", "src", []string{"a", "b"}, 60)
	assert.False(t, e.IsExpired())
	assert.Equal(t, 60*time.Second, e.ExpiresAt.Sub(e.CreatedAt))

	e.ExpiresAt = time.Now().Add(-time.Second)
	assert.True(t, e.IsExpired())
}

func TestFileStore(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir(), true, DefaultTTLSeconds)
		require.NoError(t, err)

		lines := []string{"James went home", "", "John stayed"}
		require.NoError(t, store.Set("key1", "corpus.txt", lines))

		got, err := store.Get("key1")
		require.NoError(t, err)
		assert.Equal(t, lines, got.Lines)
		assert.Equal(t, "corpus.txt", got.Source)

		n, err := store.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("lines that are not valid UTF-8 are kept byte for byte", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir(), true, DefaultTTLSeconds)
		require.NoError(t, err)

		lines := []string{"caf\xe9 John", "\xff\xfe", "plain"}
		require.NoError(t, store.Set("latin1", "corpus.txt", lines))

		got, err := store.Get("latin1")
		require.NoError(t, err)
		assert.Equal(t, lines, got.Lines)
	})

	t.Run("missing key", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir(), true, DefaultTTLSeconds)
		require.NoError(t, err)

		_, err = store.Get("nope")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.Set("", "src", nil), ErrInvalidKey)
	})

	t.Run("expired entry is removed", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir, true, DefaultTTLSeconds)
		require.NoError(t, err)

		e := NewEntry("old", "src", []string{"x"}, MinTTLSeconds)
		e.ExpiresAt = time.Now().Add(-time.Minute)
		data, err := json.Marshal(e)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), data, 0o600))

		_, err = store.Get("old")
		assert.ErrorIs(t, err, ErrExpired)
		assert.NoFileExists(t, filepath.Join(dir, "old.json"))
	})

	t.Run("cleanup expired keeps live entries", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir, true, DefaultTTLSeconds)
		require.NoError(t, err)
		require.NoError(t, store.Set("live", "src", []string{"a"}))

		e := NewEntry("dead", "src", nil, MinTTLSeconds)
		e.ExpiresAt = time.Now().Add(-time.Minute)
		data, err := json.Marshal(e)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dead.json"), data, 0o600))

		require.NoError(t, store.CleanupExpired())
		n, err := store.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("delete and clear", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir(), true, DefaultTTLSeconds)
		require.NoError(t, err)
		require.NoError(t, store.Set("a", "src", nil))
		require.NoError(t, store.Set("b", "src", nil))

		require.NoError(t, store.Delete("a"))
		require.NoError(t, store.Delete("a"))

		require.NoError(t, store.Clear())
		n, err := store.Count()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("disabled", func(t *testing.T) {
		store, err := NewFileStore("", false, 0)
		require.NoError(t, err)
		assert.False(t, store.IsEnabled())

		_, err = store.Get("k")
		assert.ErrorIs(t, err, ErrDisabled)
		assert.ErrorIs(t, store.Set("k", "s", nil), ErrDisabled)
	})

	t.Run("invalid ttl", func(t *testing.T) {
		_, err := NewFileStore(t.TempDir(), true, 5)
		assert.ErrorIs(t, err, ErrInvalidTTL)
	})
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "3600", want: 3600},
		{in: "1h30m", want: 5400},
		{in: "30s", wantErr: true},
		{in: "8d", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvTTLSeconds, "120")
	t.Setenv(EnvCacheEnabled, "false")
	t.Setenv(EnvCacheDir, "/tmp/ns")

	assert.Equal(t, 120, TTLFromEnv(DefaultTTLSeconds))
	assert.False(t, EnabledFromEnv(true))
	assert.Equal(t, "/tmp/ns", DirFromEnv("x"))

	t.Setenv(EnvTTLSeconds, "garbage")
	t.Setenv(EnvCacheEnabled, "maybe")
	assert.Equal(t, DefaultTTLSeconds, TTLFromEnv(DefaultTTLSeconds))
	assert.True(t, EnabledFromEnv(true))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "30m", FormatDuration(30*time.Minute))
	assert.Equal(t, "1h30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "2d", FormatDuration(48*time.Hour))
}
