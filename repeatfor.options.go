package repeatfor

import (
	"go/token"
	"strconv"

	"go.uber.org/zap"
)

// FormatMode controls whether ExpandSource runs go/format over its output
type FormatMode int

// Format modes
const (
	// FormatAuto formats when the output is valid Go and keeps raw output otherwise
	FormatAuto FormatMode = iota
	// FormatAlways fails when the output cannot be formatted
	FormatAlways
	// FormatNever returns the spliced output untouched
	FormatNever
)

// String returns the configuration name of the mode
func (m FormatMode) String() string {
	switch m {
	case FormatAlways:
		return FormatNameAlways
	case FormatNever:
		return FormatNameNever
	default:
		return FormatNameAuto
	}
}

// ParseFormatMode converts a configuration name into a FormatMode
func ParseFormatMode(name string) (FormatMode, error) {
	switch name {
	case FormatNameAuto, "":
		return FormatAuto, nil
	case FormatNameAlways:
		return FormatAlways, nil
	case FormatNameNever:
		return FormatNever, nil
	default:
		return FormatAuto, NewConfigError(ErrMsgInvalidFormat, ConfigFieldFormat, name)
	}
}

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	macro    string
	format   FormatMode
	maxDepth int
	header   string
	store    ExpansionStore
	logger   *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		macro:    DefaultMacroName,
		format:   FormatAuto,
		maxDepth: DefaultMaxDepth,
	}
}

// validate checks option values that New cannot repair
func (c *engineConfig) validate() error {
	if !token.IsIdentifier(c.macro) {
		return NewConfigError(ErrMsgInvalidMacro, ConfigFieldMacro, c.macro)
	}
	if c.maxDepth < 1 {
		return NewConfigError(ErrMsgInvalidMaxDepth, ConfigFieldMaxDepth, strconv.Itoa(c.maxDepth))
	}
	if c.format < FormatAuto || c.format > FormatNever {
		return NewConfigError(ErrMsgInvalidFormat, ConfigFieldFormat, strconv.Itoa(int(c.format)))
	}
	return nil
}

// WithMacroName sets the name recognized in `name!( ... )` calls by ExpandSource.
// Default: "repeatfor"
func WithMacroName(name string) Option {
	return func(c *engineConfig) {
		c.macro = name
	}
}

// WithFormatMode sets how ExpandSource formats its output.
// Default: FormatAuto
func WithFormatMode(mode FormatMode) Option {
	return func(c *engineConfig) {
		c.format = mode
	}
}

// WithMaxDepth bounds the number of re-scan passes ExpandSource performs for
// macro calls produced by expansion.
// Default: 16
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithHeader sets a line written above the output of files that contained
// at least one macro call. Empty disables the header.
// Default: none
func WithHeader(header string) Option {
	return func(c *engineConfig) {
		c.header = header
	}
}

// WithStore enables caching of ExpandSource results.
// Default: nil (no caching)
func WithStore(store ExpansionStore) Option {
	return func(c *engineConfig) {
		c.store = store
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
