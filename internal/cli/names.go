package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNamesCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "Print the configured names, one per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := state.config()
			if err != nil {
				return err
			}
			names, err := cfg.NameSet()
			if err != nil {
				return fmt.Errorf("names: %w", err)
			}
			for _, n := range names.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
