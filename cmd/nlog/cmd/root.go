package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/nlog/v2/config"
	"github.com/philipp01105/nlog/v2/logger"
)

// NewRootCommand builds the nlog command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "nlog",
		Short: "Inspect and exercise NLog configurations.",
		Long: `nlog loads a YAML logger configuration and lets you look at the resolved
serializer table or emit a single record through the configured handler.

Without --config the file nlog.yaml in the working directory is used when it
exists; otherwise built-in defaults apply.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}

	root.AddCommand(
		newSerializersCommand(load),
		newEmitCommand(load),
		newInitCommand(),
	)

	return root
}

// Execute runs the nlog CLI and exits with non-zero status on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads path, falling back to the default file and then to
// built-in defaults when no path was given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, err := config.Load(config.DefaultConfigFilename)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", config.DefaultConfigFilename, err)
	}
	return cfg, nil
}

// closeLogger closes log and combines its error with err.
func closeLogger(log *logger.Logger, err error) error {
	return multierr.Append(err, log.Close())
}
