// Package compiler runs the prefsgen pipeline: it loads Go packages, extracts
// preference schemas from marked holders, renders accessor types and writes them.
package compiler

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CreativeUnicorns/simpleprefs"
	"github.com/CreativeUnicorns/simpleprefs/compiler/gen"
)

// ConfigFile is the configuration file name the CLI looks for by default.
const ConfigFile = "prefsgen.yaml"

// DefaultDebounce is how long watch mode waits for file events to settle.
const DefaultDebounce = 200 * time.Millisecond

// ErrInvalidConfig indicates a configuration option was rejected.
var ErrInvalidConfig = errors.New("prefsgen: invalid configuration")

// ConfigError represents a rejected configuration value.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("prefsgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("prefsgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// Config holds pipeline settings. Zero fields are filled with defaults by
// NewConfig and LoadConfig.
type Config struct {
	// Dir is the directory package patterns are resolved against.
	Dir string `yaml:"dir"`
	// Patterns are go/packages patterns, "." by default.
	Patterns []string `yaml:"patterns"`
	// Output, when set, is the root every unit is written under
	// (Output/<package name>, or Output itself for the unnamed namespace).
	// When empty, units are written next to the holder's source.
	Output string `yaml:"output"`
	// Workers bounds concurrent generation.
	Workers int `yaml:"workers"`
	// BuildFlags are passed to the build tool when loading packages.
	BuildFlags []string `yaml:"build_flags"`
	// Header replaces the generated file header comment.
	Header string `yaml:"header"`
	// RuntimePackage replaces the import path generated code calls into.
	RuntimePackage string `yaml:"runtime_package"`
	// DryRun renders every unit but writes nothing to disk.
	DryRun bool `yaml:"dry_run"`
	// Debounce is the watch mode settle delay.
	Debounce time.Duration `yaml:"debounce"`

	Logger simpleprefs.Logger `yaml:"-"`
	// Writer, when set, receives every unit instead of the file system.
	Writer gen.Writer `yaml:"-"`
}

// Option configures the pipeline.
type Option func(*Config) error

// WithDir sets the directory patterns are resolved against.
func WithDir(dir string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(dir) == "" {
			return NewConfigError("Dir", nil, "directory cannot be empty")
		}
		c.Dir = dir
		return nil
	}
}

// WithPatterns sets the package patterns to load.
func WithPatterns(patterns ...string) Option {
	return func(c *Config) error {
		if len(patterns) == 0 {
			return NewConfigError("Patterns", nil, "at least one pattern is required")
		}
		c.Patterns = patterns
		return nil
	}
}

// WithOutput writes every unit under root instead of next to its source.
func WithOutput(root string) Option {
	return func(c *Config) error {
		c.Output = root
		return nil
	}
}

// WithWorkers bounds concurrent generation.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithBuildFlags sets flags such as -tags passed to the build tool.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = flags
		return nil
	}
}

// WithHeader sets the file header comment.
// It must keep the "Code generated ... DO NOT EDIT." form or the scanner
// will read generated files back as input.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return checkHeader(header)
	}
}

// WithRuntimePackage sets the import path generated code calls into.
func WithRuntimePackage(path string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(path) == "" {
			return NewConfigError("RuntimePackage", nil, "import path cannot be empty")
		}
		c.RuntimePackage = path
		return nil
	}
}

// WithDryRun renders without writing.
func WithDryRun(dry bool) Option {
	return func(c *Config) error {
		c.DryRun = dry
		return nil
	}
}

// WithDebounce sets the watch mode settle delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewConfigError("Debounce", d, "must be positive")
		}
		c.Debounce = d
		return nil
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l simpleprefs.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWriter sends units to w instead of the file system.
func WithWriter(w gen.Writer) Option {
	return func(c *Config) error {
		c.Writer = w
		return nil
	}
}

// NewConfig returns a Config with defaults, then applies opts in order.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig reads a YAML configuration file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read prefsgen config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse prefsgen config: %w", err)
		}
	}
	if err := c.Apply(); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply applies opts and fills any remaining zero fields with defaults.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return c.defaults()
}

func (c *Config) defaults() error {
	if c.Dir == "" {
		c.Dir = "."
	}
	if len(c.Patterns) == 0 {
		c.Patterns = []string{"."}
	}
	switch {
	case c.Workers == 0:
		c.Workers = runtime.GOMAXPROCS(0)
	case c.Workers < 0:
		return NewConfigError("Workers", c.Workers, "must be at least 1")
	}
	if err := checkHeader(c.Header); err != nil {
		return err
	}
	if c.Debounce == 0 {
		c.Debounce = DefaultDebounce
	}
	if c.Logger == nil {
		c.Logger = simpleprefs.NewDefaultLogger()
	}
	return nil
}

func checkHeader(header string) error {
	if header == "" {
		return nil
	}
	if !strings.HasPrefix(header, "Code generated ") || !strings.HasSuffix(header, " DO NOT EDIT.") {
		return NewConfigError("Header", header, `must match "Code generated ... DO NOT EDIT."`)
	}
	return nil
}

func (c *Config) generator() *gen.Generator {
	return &gen.Generator{Header: c.Header, RuntimePackage: c.RuntimePackage}
}
