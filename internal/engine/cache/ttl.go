package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTTLSeconds keeps a downloaded corpus for one hour.
	DefaultTTLSeconds = 3600

	// MinTTLSeconds is one minute.
	MinTTLSeconds = 60

	// MaxTTLSeconds is seven days.
	MaxTTLSeconds = 604800

	minutesPerHour = 60
	hoursPerDay    = 24

	EnvTTLSeconds   = "NAMESEARCH_CACHE_TTL_SECONDS"
	EnvCacheEnabled = "NAMESEARCH_CACHE_ENABLED"
	EnvCacheDir     = "NAMESEARCH_CACHE_DIR"
)

var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ValidateTTL checks seconds against the allowed range.
func ValidateTTL(seconds int) error {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// TTLFromEnv returns the TTL set in the environment, or fallback when the
// variable is unset, malformed or out of range.
func TTLFromEnv(fallback int) int {
	v := os.Getenv(EnvTTLSeconds)
	if v == "" {
		return fallback
	}
	ttl, err := ParseTTL(v)
	if err != nil {
		return fallback
	}
	return ttl
}

// EnabledFromEnv returns the enabled flag set in the environment, or
// fallback when the variable is unset or not a boolean.
func EnabledFromEnv(fallback bool) bool {
	v := os.Getenv(EnvCacheEnabled)
	if v == "" {
		return fallback
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return enabled
}

// DirFromEnv returns the cache directory set in the environment, or fallback.
func DirFromEnv(fallback string) string {
	if v := os.Getenv(EnvCacheDir); v != "" {
		return v
	}
	return fallback
}

// FormatDuration renders d compactly: "45s", "30m", "1h30m", "2d3h".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}

// ParseTTL accepts integer seconds ("3600") or a duration ("1h30m").
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, perr := time.ParseDuration(s)
		if perr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", perr)
		}
		seconds = int(d.Seconds())
	}
	if err = ValidateTTL(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}
