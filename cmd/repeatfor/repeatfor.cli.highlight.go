package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/itsatony/go-repeatfor/highlight"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

type highlightCmd struct {
	Code   string `arg:"" help:"Go fragment; prompts on a terminal or reads stdin when omitted" optional:""`
	Kind   string `default:"" help:"Comma separated parse kinds tried in order (default: all)" short:"k"`
	Format string `default:"ansi" enum:"ansi,html,json" help:"Output format" short:"f"`
}

func (c *highlightCmd) Run(a *app) error {
	kinds, err := highlight.ParseKinds(c.Kind)
	if err != nil {
		return exitErr(ExitCodeUsageError, ErrMsgUsage, err)
	}

	code, err := c.source(a)
	if err != nil {
		return err
	}

	res, err := highlight.ParseAs(code, kinds)
	if err != nil {
		return exitErr(ExitCodeValidationError, ErrMsgHighlightFailed, err)
	}
	a.logger.Debug(LogMsgHighlighted, zap.String(LogFieldKind, string(res.Kind)))

	var out string
	switch c.Format {
	case OutputFormatHTML:
		out = highlight.RenderHTML(code, res.Ranges)
	case OutputFormatJSON:
		data, err := json.MarshalIndent(res, "", JSONIndent)
		if err != nil {
			return exitErr(ExitCodeError, ErrMsgJSONMarshalFailed, err)
		}
		out = string(data)
	default:
		theme := highlight.NewTheme(lipgloss.NewRenderer(a.stdout))
		out = highlight.RenderANSI(code, res.Ranges, theme)
	}
	fmt.Fprint(a.stdout, out+FmtNewline)
	return nil
}

// source returns the fragment from the argument, an interactive prompt when
// stdin is a terminal, or stdin
func (c *highlightCmd) source(a *app) (string, error) {
	if c.Code != "" {
		return c.Code, nil
	}

	if f, ok := a.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		code, err := prompt(a.ctx, f, a.stderr)
		if err != nil {
			return "", exitErr(ExitCodeInputError, ErrMsgPromptFailed, err)
		}
		return code, nil
	}

	code, err := readText("", a.stdin)
	if err != nil {
		return "", exitErr(ExitCodeInputError, ErrMsgReadInputFailed, err)
	}
	return strings.TrimSuffix(code, FmtNewline), nil
}
