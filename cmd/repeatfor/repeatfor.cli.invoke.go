package main

import (
	"encoding/json"
	"fmt"
)

type invokeCmd struct {
	Text string `arg:"" help:"Invocation such as 'for T in [a, b] { T }'; stdin when omitted" optional:""`
}

func (c *invokeCmd) Run(a *app) error {
	text, err := readText(c.Text, a.stdin)
	if err != nil {
		return exitErr(ExitCodeInputError, ErrMsgReadInputFailed, err)
	}

	engine, closeStore, err := a.newEngine("")
	if err != nil {
		return err
	}
	defer closeStore()

	out, err := engine.Expand(a.ctx, text)
	if err != nil {
		return sourceErr(ExitCodeError, InvocationDisplayName, ErrMsgExpandFailed, err)
	}
	fmt.Fprint(a.stdout, out+FmtNewline)
	return nil
}

type inspectCmd struct {
	Text string `arg:"" help:"Invocation to inspect; stdin when omitted" optional:""`
}

func (c *inspectCmd) Run(a *app) error {
	text, err := readText(c.Text, a.stdin)
	if err != nil {
		return exitErr(ExitCodeInputError, ErrMsgReadInputFailed, err)
	}

	engine, closeStore, err := a.newEngine("")
	if err != nil {
		return err
	}
	defer closeStore()

	info, err := engine.Inspect(a.ctx, text)
	if err != nil {
		return sourceErr(ExitCodeError, InvocationDisplayName, ErrMsgInspectFailed, err)
	}

	data, err := json.MarshalIndent(info, "", JSONIndent)
	if err != nil {
		return exitErr(ExitCodeError, ErrMsgJSONMarshalFailed, err)
	}
	fmt.Fprint(a.stdout, string(data)+FmtNewline)
	return nil
}
