package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/philipp01105/nlog/v2/config"
)

func newSerializersCommand(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serializers",
		Short: "Print the resolved serializer table.",
		Long: `Print every key of the serializer table a logger built from the
configuration would use, in declaration order, with whether it carries a
transform or an explicit removal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			cfg.Stdout = cmd.ErrOrStderr()

			log, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "KEY\tENTRY")
			for _, o := range log.Serializers().Entries() {
				state := "transform"
				if o.Entry.IsRemoved() {
					state = "removed"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", o.Key, state)
			}
			return closeLogger(log, w.Flush())
		},
	}
}
