package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/itsatony/go-repeatfor"
	"go.uber.org/zap"
)

type expandCmd struct {
	Source   string `arg:"" default:"-" help:"Go source file, or '-' for stdin"`
	Output   string `default:"-" help:"Output file, or '-' for stdout" short:"o"`
	Check    bool   `help:"Exit with status 3 when the output file is not up to date instead of writing it"`
	Format   string `default:"" enum:",auto,always,never" help:"Override the configured format mode"`
	Macro    string `help:"Override the configured macro name"`
	MaxDepth int    `help:"Override the configured maximum number of expansion passes"`
	Store    string `help:"Expansion store as driver or driver:dsn"`
}

// options converts the override flags into engine options
func (c *expandCmd) options() ([]repeatfor.Option, error) {
	var opts []repeatfor.Option
	if c.Format != "" {
		mode, err := repeatfor.ParseFormatMode(c.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, repeatfor.WithFormatMode(mode))
	}
	if c.Macro != "" {
		opts = append(opts, repeatfor.WithMacroName(c.Macro))
	}
	if c.MaxDepth != 0 {
		opts = append(opts, repeatfor.WithMaxDepth(c.MaxDepth))
	}
	return opts, nil
}

func (c *expandCmd) Run(a *app) error {
	if c.Check && c.Output == OutputStdout {
		return exitErr(ExitCodeUsageError, ErrMsgUsage, errors.New(ErrMsgCheckNeedsOutput))
	}

	opts, err := c.options()
	if err != nil {
		return exitErr(ExitCodeUsageError, ErrMsgEngineFailed, err)
	}
	engine, closeStore, err := a.newEngine(c.Store, opts...)
	if err != nil {
		return err
	}
	defer closeStore()

	src, err := readInput(c.Source, a.stdin)
	if err != nil {
		return exitErr(ExitCodeInputError, ErrMsgReadInputFailed, err)
	}

	name := displayName(c.Source)
	result, err := engine.ExpandSource(a.ctx, name, string(src))
	if err != nil {
		return sourceErr(ExitCodeError, name, ErrMsgExpandFailed, err)
	}

	if c.Check {
		return c.check(a, result)
	}

	if err := writeOutput(c.Output, []byte(result.Output), a.stdout); err != nil {
		return exitErr(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	a.logger.Debug(LogMsgWritten,
		zap.String(LogFieldPath, c.Output),
		zap.Int(LogFieldInvocations, result.Invocations),
		zap.Bool(LogFieldCached, result.Cached),
	)
	return nil
}

// check compares the expansion with the current output file
func (c *expandCmd) check(a *app, result *repeatfor.SourceResult) error {
	current, err := os.ReadFile(c.Output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return exitErr(ExitCodeInputError, ErrMsgReadInputFailed, err)
	}
	if err != nil || string(current) != result.Output {
		return exitErr(ExitCodeValidationError, ErrMsgOutOfDate, errors.New(c.Output))
	}
	a.logger.Debug(LogMsgUpToDate, zap.String(LogFieldPath, c.Output))
	return nil
}
