package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/namesearch/internal/config"
	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// rootState is shared by all subcommands of one invocation.
type rootState struct {
	configPath string
	debug      bool

	cfg     *config.Config
	loadErr error
	logs    *logging.LogPathResult
}

// config returns the configuration loaded before the command ran. Load
// failures are reported as invalid arguments.
func (s *rootState) config() (*config.Config, error) {
	if s.loadErr != nil {
		if errors.Is(s.loadErr, engine.ErrInvalidArgument) {
			return nil, fmt.Errorf("loading configuration: %w", s.loadErr)
		}
		return nil, fmt.Errorf("%w: loading configuration: %w", engine.ErrInvalidArgument, s.loadErr)
	}
	return s.cfg, nil
}

// NewRootCmd creates the root command of the namesearch CLI.
func NewRootCmd(ver string) *cobra.Command {
	state := &rootState{}

	cmd := &cobra.Command{
		Use:   "namesearch",
		Short: "Find first names in large text corpora",
		Long: `namesearch splits a text corpus into fixed-size line batches, scans the
batches concurrently for a set of first names and reports every occurrence
as a (line offset, character offset) pair.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			state.cfg, state.loadErr = config.Load(state.configPath)
			setupLogging(cmd, state)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return state.logs.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&state.configPath, "config", "",
		"config file (default $NAMESEARCH_HOME/config.yaml or ~/.namesearch/config.yaml)")
	cmd.PersistentFlags().BoolVar(&state.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newScanCmd(state), newNamesCmd(state), newConfigCmd(state), newCacheCmd(state))

	return cmd
}

const rootCmdExample = `  # Scan the default corpus for the default 50 names
  namesearch scan

  # Scan a local file in batches of 500 lines with 4 workers
  namesearch scan --source ./big.txt --batch-size 500 --workers 4

  # Emit JSON and give up after 30 seconds
  namesearch scan --output json --timeout 30s

  # Browse results interactively
  namesearch scan --output tui

  # Write the default configuration
  namesearch config init

  # Drop cached downloads
  namesearch cache clear`

func newConfigCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(state), newConfigValidateCmd(state))
	return cmd
}
