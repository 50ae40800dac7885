package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/itsatony/go-repeatfor"
)

type versionCmd struct {
	Format string `default:"text" enum:"text,json" help:"Output format" short:"F"`
}

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func (c *versionCmd) Run(a *app) error {
	v := versionOutput{
		Version:   repeatfor.Version,
		GoVersion: runtime.Version(),
	}

	if c.Format == OutputFormatJSON {
		data, err := json.MarshalIndent(v, "", JSONIndent)
		if err != nil {
			return exitErr(ExitCodeError, ErrMsgJSONMarshalFailed, err)
		}
		fmt.Fprint(a.stdout, string(data)+FmtNewline)
		return nil
	}

	fmt.Fprintf(a.stdout, VersionTextTemplate, v.Version, v.GoVersion)
	return nil
}
