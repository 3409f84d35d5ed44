package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/philipp01105/nlog/v2/config"
	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/logger"
	"github.com/philipp01105/nlog/v2/serializer"
)

var errBadField = errors.New("field must be key=value")

func newEmitCommand(load func() (*config.Config, error)) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "emit <message> [key=value ...]",
		Short: "Emit one record through the configured logger.",
		Long: `Emit one record with the given message and fields. Values that parse as
integers, floats or booleans are logged with that type. A field named "error"
is logged as an error value so the error serializer applies to it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(args[1:])
			if err != nil {
				return err
			}

			cfg, err := load()
			if err != nil {
				return err
			}
			cfg.Stdout = cmd.OutOrStdout()
			cfg.Stderr = cmd.ErrOrStderr()
			cfg.Level = level

			log, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			log.Log(cfg.LevelValue(), args[0], fields...)
			return closeLogger(log, nil)
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "info", "record level")

	return cmd
}

func parseFields(args []string) ([]core.Field, error) {
	fields := make([]core.Field, 0, len(args))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.Wrapf(errBadField, "parse %q", arg)
		}
		fields = append(fields, parseField(key, val))
	}
	return fields, nil
}

func parseField(key, val string) core.Field {
	if key == serializer.ErrorKey {
		return logger.Err(errors.New(val))
	}
	if i, err := strconv.ParseInt(val, 10, 64); err == nil {
		return logger.Int64(key, i)
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return logger.Float64(key, f)
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return logger.Bool(key, b)
	}
	return logger.String(key, val)
}
