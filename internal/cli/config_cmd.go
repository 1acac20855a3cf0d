package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/namesearch/internal/config"
)

func newConfigInitCmd(state *rootState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Example: `  # Create ~/.namesearch/config.yaml
  namesearch config init

  # Overwrite an existing file
  namesearch config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(state)
			if err != nil {
				return err
			}

			if err = config.WriteDefault(path, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w, use --force to overwrite", err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

func newConfigValidateCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: `Loads the configuration (file, then NAMESEARCH_* environment variables)
and checks scan settings, names, cache, output and logging sections and the
"requires" version constraint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := state.config()
			if err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return &ExitError{
					Code: ExitInvalidArgument,
					Err:  fmt.Errorf("configuration validation failed: %w", err),
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	}
}

func configPath(state *rootState) (string, error) {
	if state.configPath != "" {
		return state.configPath, nil
	}
	return config.DefaultPath()
}
