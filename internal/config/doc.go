// Package config loads namesearch settings from ~/.namesearch/config.yaml,
// environment variables and built-in defaults.
//
// Precedence, lowest first: defaults, the YAML file (top-level sections
// replace the defaults wholesale), NAMESEARCH_* environment variables, and
// finally CLI flags applied by the caller.
package config
