// Package cli implements the namesearch command line: scan, names and the
// config subcommands.
package cli
