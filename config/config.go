package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/formatter"
	"github.com/philipp01105/nlog/v2/handler"
	"github.com/philipp01105/nlog/v2/handler/zaphandler"
	"github.com/philipp01105/nlog/v2/logger"
	"github.com/philipp01105/nlog/v2/serializer"
)

// Config holds the settings needed to build a Logger.
type Config struct {
	// Level is the minimum level written (debug, info, warn, error, fatal, panic).
	Level string `yaml:"level"`
	// Format selects the encoder: text, json or zap.
	Format string `yaml:"format"`
	// MessageKey names the message field in structured output.
	MessageKey string `yaml:"message_key,omitempty"`
	// NestedKey places all structured fields under one sub-object.
	NestedKey string `yaml:"nested_key,omitempty"`
	// TimestampFormat is a Go time layout; empty means RFC3339Nano.
	TimestampFormat string `yaml:"timestamp_format,omitempty"`
	// Caller adds file and line to every record.
	Caller bool `yaml:"caller,omitempty"`
	// Output is stdout, stderr or file.
	Output string `yaml:"output"`
	// File configures the rotating file when Output is file.
	File FileConfig `yaml:"file,omitempty"`
	// Async enables the buffered queue of the console and file handlers.
	Async bool `yaml:"async,omitempty"`
	// BufferSize is the async queue capacity.
	BufferSize int `yaml:"buffer_size,omitempty"`
	// Fields are bound to every record.
	Fields map[string]string `yaml:"fields,omitempty"`
	// Serializers adjusts the serializer table.
	Serializers SerializerConfig `yaml:"serializers,omitempty"`

	// Stdout and Stderr replace the process streams. They are not persisted.
	Stdout io.Writer `yaml:"-"`
	Stderr io.Writer `yaml:"-"`
}

// FileConfig configures log file rotation.
type FileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// SerializerConfig lists keys to redact or to strip of their serializer.
// Removals are declared after redactions, so a key in both lists ends up
// removed.
type SerializerConfig struct {
	Redact []string `yaml:"redact,omitempty"`
	Remove []string `yaml:"remove,omitempty"`
}

const (
	// DefaultConfigFilename is the file read when no path is given.
	DefaultConfigFilename = "nlog.yaml"

	// DefaultFilePermissions is used when saving a config file.
	DefaultFilePermissions = 0o600

	// RedactedValue replaces the value of redacted fields.
	RedactedValue = "[REDACTED]"

	// WildcardName selects serializer.Wildcard in SerializerConfig lists.
	WildcardName = "*"
)

// Supported formats and outputs.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

var (
	errConfigIsNotSet   = errors.New("configuration is not set")
	errUnknownLevel     = errors.New("unknown level")
	errUnknownFormat    = errors.New("unknown format")
	errUnknownOutput    = errors.New("unknown output")
	errFilePathRequired = errors.New("file path must be provided for file output")
	errEmptyKey         = errors.New("serializer key must not be empty")
)

var levels = map[string]core.Level{
	"debug":   core.DebugLevel,
	"info":    core.InfoLevel,
	"warn":    core.WarnLevel,
	"warning": core.WarnLevel,
	"error":   core.ErrorLevel,
	"fatal":   core.FatalLevel,
	"panic":   core.PanicLevel,
}

// Default returns a config that writes text at info level to stdout.
func Default() *Config {
	return &Config{
		Level:  "info",
		Format: FormatText,
		Output: OutputStdout,
	}
}

// Load reads configuration from path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(contents)
}

// Parse decodes YAML contents and validates the result.
func Parse(contents []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks cfg and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if _, ok := levels[strings.ToLower(cfg.Level)]; !ok {
		return fmt.Errorf("%w: %q", errUnknownLevel, cfg.Level)
	}

	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	switch cfg.Format {
	case FormatText, FormatJSON, FormatZap:
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, cfg.Format)
	}

	if cfg.Output == "" {
		cfg.Output = OutputStdout
	}
	switch cfg.Output {
	case OutputStdout, OutputStderr:
	case OutputFile:
		if cfg.File.Path == "" {
			return errFilePathRequired
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownOutput, cfg.Output)
	}

	for _, list := range [][]string{cfg.Serializers.Redact, cfg.Serializers.Remove} {
		for _, name := range list {
			if strings.TrimSpace(name) == "" {
				return errEmptyKey
			}
		}
	}

	return nil
}

// LevelValue returns the parsed level. Call Validate first.
func (c *Config) LevelValue() core.Level {
	return levels[strings.ToLower(c.Level)]
}

// Overrides converts the serializer section into table overrides.
func (c *Config) Overrides() []serializer.Override {
	overrides := make([]serializer.Override, 0, len(c.Serializers.Redact)+len(c.Serializers.Remove))
	for _, name := range c.Serializers.Redact {
		overrides = append(overrides, serializer.Set(keyOf(name), redact))
	}
	for _, name := range c.Serializers.Remove {
		overrides = append(overrides, serializer.Remove(keyOf(name)))
	}
	return overrides
}

// Build validates c and constructs a Logger. Extra overrides are layered
// after the ones derived from the file.
func (c *Config) Build(overrides ...serializer.Override) (*logger.Logger, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	h, err := c.handler()
	if err != nil {
		return nil, fmt.Errorf("create handler: %w", err)
	}

	b := logger.NewBuilder().
		WithHandler(h).
		WithLevel(c.LevelValue()).
		WithCaller(c.Caller).
		WithNestedKey(c.NestedKey).
		WithFields(c.fields()...).
		WithSerializers(c.Overrides()...).
		WithSerializers(overrides...)

	log, err := b.Build()
	if err != nil {
		_ = h.Close()
		return nil, err
	}
	return log, nil
}

func (c *Config) handler() (handler.Handler, error) {
	if c.Format == FormatZap {
		if c.Output == OutputFile {
			return zaphandler.NewJSONFile(c.rotatingFile(), c.MessageKey), nil
		}
		return zaphandler.NewJSON(zapcore.AddSync(c.writer()), c.MessageKey), nil
	}

	fmtCfg := formatter.Config{
		IncludeCaller:   c.Caller,
		TimestampFormat: c.TimestampFormat,
		MessageKey:      c.MessageKey,
	}
	var f formatter.Formatter
	if c.Format == FormatJSON {
		f = formatter.NewJSONFormatter(fmtCfg)
	} else {
		f = formatter.NewTextFormatter(fmtCfg)
	}

	if c.Output == OutputFile {
		return handler.NewFileHandler(handler.FileConfig{
			Filename:   c.File.Path,
			Formatter:  f,
			Async:      c.Async,
			BufferSize: c.BufferSize,
			MaxSizeMB:  c.File.MaxSizeMB,
			MaxAgeDays: c.File.MaxAgeDays,
			MaxBackups: c.File.MaxBackups,
			Compress:   c.File.Compress,
		})
	}

	return handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:     c.writer(),
		Formatter:  f,
		Async:      c.Async,
		BufferSize: c.BufferSize,
	}), nil
}

// writer resolves the console stream.
func (c *Config) writer() io.Writer {
	switch c.Output {
	case OutputStderr:
		if c.Stderr != nil {
			return c.Stderr
		}
		return os.Stderr
	default:
		if c.Stdout != nil {
			return c.Stdout
		}
		return os.Stdout
	}
}

func (c *Config) rotatingFile() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   c.File.Path,
		MaxSize:    c.File.MaxSizeMB,
		MaxAge:     c.File.MaxAgeDays,
		MaxBackups: c.File.MaxBackups,
		Compress:   c.File.Compress,
	}
}

// fields returns the bound fields sorted by key.
func (c *Config) fields() []core.Field {
	if len(c.Fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]core.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, logger.String(k, c.Fields[k]))
	}
	return fields
}

func keyOf(name string) serializer.Key {
	if name == WildcardName {
		return serializer.Wildcard
	}
	return serializer.Field(name)
}

func redact(any) any {
	return RedactedValue
}
