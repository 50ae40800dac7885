package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/alecthomas/kong"
	"github.com/itsatony/go-repeatfor"
	"go.uber.org/zap"
)

// CLI is the top-level command-line interface
type CLI struct {
	Config    string      `default:"${configFile}" help:"Configuration file; a missing default file is ignored" short:"c"`
	LogLevel  string      `default:"" enum:",debug,info,warn,error" help:"Override the configured log level"`
	LogFormat string      `default:"" enum:",console,json" help:"Override the configured log format"`
	Pprof     pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Expand    expandCmd    `cmd:"" default:"withargs" help:"Expand macro calls in a Go source file"`
	Invoke    invokeCmd    `cmd:"" help:"Expand a single invocation"`
	Inspect   inspectCmd   `cmd:"" help:"Describe how an invocation is understood"`
	Highlight highlightCmd `cmd:"" help:"Classify and color a Go fragment"`
	Version   versionCmd   `cmd:"" help:"Show version information"`
}

// exitSignal is raised by the kong exit hook and recovered in run
type exitSignal int

// exitError carries the exit code and message a command failed with
type exitError struct {
	code int
	msg  string
	name string // source name for positioned errors
	err  error
}

func (e *exitError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitErr(code int, msg string, err error) error {
	return &exitError{code: code, msg: msg, err: err}
}

func sourceErr(code int, name, msg string, err error) error {
	return &exitError{code: code, msg: msg, name: name, err: err}
}

// report prints err to w and returns its exit code
func report(w io.Writer, err error) int {
	var ee *exitError
	if !errors.As(err, &ee) {
		fmt.Fprintln(w, err)
		return ExitCodeError
	}
	if pos, ok := repeatfor.PositionOf(ee.err); ok && ee.name != "" {
		fmt.Fprintf(w, FmtPositionedError, ee.name, pos.Line, pos.Column, ee.msg, ee.err)
	} else {
		fmt.Fprintf(w, FmtErrorWithCause, ee.msg, ee.err)
	}
	return ee.code
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	vars := kong.Vars{
		"configFile": repeatfor.ConfigFileName,
	}.CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		kong.Name(CLIName),
		kong.Description(CLIDescription),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitSignal(code)) }),
		kong.ExplicitGroups([]kong.Group{cli.Pprof.group()}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)
}

// app holds what every command needs
type app struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	config *repeatfor.Config
	logger *zap.Logger
}

func (c *CLI) newApp(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	config, loaded, err := loadConfig(c.Config)
	if err != nil {
		return nil, exitErr(ExitCodeInputError, ErrMsgLoadConfigFailed, err)
	}
	if c.LogLevel != "" {
		config.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		config.Log.Format = c.LogFormat
	}

	logger, err := config.Logger(stderr)
	if err != nil {
		return nil, exitErr(ExitCodeUsageError, ErrMsgLoggerFailed, err)
	}
	if loaded {
		logger.Debug(LogMsgConfigLoaded, zap.String(LogFieldPath, c.Config))
	} else {
		logger.Debug(LogMsgConfigDefault, zap.String(LogFieldPath, c.Config))
	}

	return &app{
		ctx:    ctx,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		config: config,
		logger: logger,
	}, nil
}

// loadConfig reads path. Only the default file may be missing.
func loadConfig(path string) (*repeatfor.Config, bool, error) {
	config, err := repeatfor.LoadConfig(path)
	if err == nil {
		return config, true, nil
	}
	if path == repeatfor.ConfigFileName && errors.Is(err, fs.ErrNotExist) {
		return repeatfor.DefaultConfig(), false, nil
	}
	return nil, false, err
}

// newEngine builds an engine from the configuration. storeSpec overrides the
// configured store; extra options are applied last. The returned func closes
// the store.
func (a *app) newEngine(storeSpec string, extra ...repeatfor.Option) (*repeatfor.Engine, func(), error) {
	opts, err := a.config.Options()
	if err != nil {
		return nil, nil, exitErr(ExitCodeUsageError, ErrMsgEngineFailed, err)
	}

	var store repeatfor.ExpansionStore
	if storeSpec != "" {
		store, err = repeatfor.OpenStoreSpec(storeSpec)
	} else {
		store, err = a.config.OpenStore()
	}
	if err != nil {
		return nil, nil, exitErr(ExitCodeUsageError, ErrMsgOpenStoreFailed, err)
	}

	closeStore := func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			a.logger.Warn(LogMsgStoreClose, zap.Error(err))
		}
	}

	opts = append(opts, repeatfor.WithLogger(a.logger))
	if store != nil {
		opts = append(opts, repeatfor.WithStore(store))
	}
	opts = append(opts, extra...)

	engine, err := repeatfor.New(opts...)
	if err != nil {
		closeStore()
		return nil, nil, exitErr(ExitCodeUsageError, ErrMsgEngineFailed, err)
	}
	return engine, closeStore, nil
}
