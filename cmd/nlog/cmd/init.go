package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipp01105/nlog/v2/config"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}

			cfg := config.Default()
			cfg.Serializers.Redact = []string{"password"}
			if err := config.Save(path, cfg); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
