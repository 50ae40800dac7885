package repeatfor

import (
	"bytes"
	"errors"
	"go/token"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-repeatfor/internal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the contents of a .repeatfor.yaml file:
//
//	macro: repeatfor
//	format: auto        # auto | always | never
//	max_depth: 16
//	header: "// Code generated by repeatfor. DO NOT EDIT."
//	log:
//	  level: info       # debug | info | warn | error
//	  format: console   # console | json
//	store:
//	  driver: filesystem  # memory | filesystem | postgres
//	  dsn: .repeatfor-cache
type Config struct {
	Macro    string      `yaml:"macro"`
	Format   string      `yaml:"format"`
	MaxDepth int         `yaml:"max_depth"`
	Header   string      `yaml:"header"`
	Log      LogConfig   `yaml:"log"`
	Store    StoreConfig `yaml:"store"`
}

// LogConfig selects the logger built by Config.Logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig selects the expansion store opened by Config.OpenStore.
// An empty driver disables caching.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

var (
	configLogLevels  = []string{ConfigLogLevelDebug, ConfigLogLevelInfo, ConfigLogLevelWarn, ConfigLogLevelError}
	configLogFormats = []string{ConfigLogFormatConsole, ConfigLogFormatJSON}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Macro:    DefaultMacroName,
		Format:   FormatNameAuto,
		MaxDepth: DefaultMaxDepth,
		Header:   DefaultHeader,
		Log: LogConfig{
			Level:  ConfigDefaultLogLevel,
			Format: ConfigDefaultLogFormat,
		},
	}
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeConfig, ErrMsgConfigRead).
			WithMetadata(MetaKeySource, path)
	}
	config, err := ParseConfig(data)
	if err != nil {
		var ce *cuserr.CustomError
		if errors.As(err, &ce) {
			return nil, ce.WithMetadata(MetaKeySource, path)
		}
		return nil, err
	}
	return config, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown fields are rejected; empty input yields the defaults.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, cuserr.WrapStdError(err, ErrCodeConfig, ErrMsgConfigParse)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every field and reports the first invalid one.
func (c *Config) Validate() error {
	if !token.IsIdentifier(c.Macro) {
		return NewConfigError(ErrMsgInvalidMacro, ConfigFieldMacro, c.Macro)
	}
	if _, err := ParseFormatMode(c.Format); err != nil {
		return err
	}
	if c.MaxDepth < 1 {
		return NewConfigError(ErrMsgInvalidMaxDepth, ConfigFieldMaxDepth, strconv.Itoa(c.MaxDepth))
	}
	if !slices.Contains(configLogLevels, c.Log.Level) {
		return NewConfigError(ErrMsgInvalidLevel, ConfigFieldLogLevel, c.Log.Level)
	}
	if !slices.Contains(configLogFormats, c.Log.Format) {
		return NewConfigError(ErrMsgInvalidLogForm, ConfigFieldLogFormat, c.Log.Format)
	}
	if c.Store.Driver != "" {
		drivers := ListStoreDrivers()
		if !slices.Contains(drivers, c.Store.Driver) {
			msg := ErrMsgUnknownDriver +
				internal.FormatSuggestions(internal.FindSimilarStrings(c.Store.Driver, drivers, 1))
			return NewConfigError(msg, ConfigFieldStoreDriver, c.Store.Driver)
		}
	}
	return nil
}

// Options converts the configuration into engine options. The store and
// logger are not included; see OpenStore and Logger.
func (c *Config) Options() ([]Option, error) {
	mode, err := ParseFormatMode(c.Format)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithMacroName(c.Macro),
		WithFormatMode(mode),
		WithMaxDepth(c.MaxDepth),
		WithHeader(c.Header),
	}, nil
}

// OpenStore opens the configured expansion store. It returns nil when no
// driver is configured.
func (c *Config) OpenStore() (ExpansionStore, error) {
	if c.Store.Driver == "" {
		return nil, nil
	}
	return OpenStore(c.Store.Driver, c.Store.DSN)
}

// Logger builds a zap logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, NewConfigError(ErrMsgInvalidLevel, ConfigFieldLogLevel, c.Log.Level)
	}

	var encoder zapcore.Encoder
	switch c.Log.Format {
	case ConfigLogFormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case ConfigLogFormatConsole:
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, NewConfigError(ErrMsgInvalidLogForm, ConfigFieldLogFormat, c.Log.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
