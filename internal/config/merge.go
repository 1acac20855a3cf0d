package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyRequires = "requires"
	keyScan     = "scan"
	keyNames    = "names"
	keySource   = "source"
	keyCache    = "cache"
	keyOutput   = "output"
	keyLogging  = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyRequires: true,
	keyScan:     true,
	keyNames:    true,
	keySource:   true,
	keyCache:    true,
	keyOutput:   true,
	keyLogging:  true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A key present in the file replaces that whole section; absent
// keys leave target unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes one section into a fresh zero value and assigns
// it, so the section is replaced rather than merged field by field.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyRequires:
		var v string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Requires = v
	case keyScan:
		var v ScanConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Scan = v
	case keyNames:
		var v []string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Names = v
	case keySource:
		var v SourceConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Source = v
	case keyCache:
		var v CacheConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Cache = v
	case keyOutput:
		var v OutputConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		var v LoggingConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
