package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	// kong exits after printing help; turn that into a return value
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			code = int(sig)
		}
	}()

	var cli CLI
	parser, err := newParser(&cli, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgUsage, err)
		return ExitCodeError
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgUsage, err)
		return ExitCodeUsageError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := cli.newApp(ctx, stdin, stdout, stderr)
	if err != nil {
		return report(stderr, err)
	}
	defer func() { _ = a.logger.Sync() }()

	defer cli.Pprof.start(a.logger)()

	if err := ktx.Run(a); err != nil {
		return report(stderr, err)
	}
	return ExitCodeSuccess
}
