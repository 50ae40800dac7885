package main

import (
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

var pprofModes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

type pprofConfig struct {
	Mode string `default:"" enum:",${pprofModes}" help:"Enable profiling" placeholder:"${enum}"`
	Dir  string `default:"." help:"Profile output directory" type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModes": strings.Join(slices.Sorted(maps.Keys(pprofModes)), ","),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts profiling if a mode is set and returns the stop function
func (c pprofConfig) start(logger *zap.Logger) (stop func()) {
	mode, ok := pprofModes[c.Mode]
	if !ok {
		return func() {}
	}

	logger.Debug(LogMsgProfileStart,
		zap.String(LogFieldMode, c.Mode),
		zap.String(LogFieldDir, c.Dir),
	)
	p := profile.Start(mode, profile.ProfilePath(c.Dir), profile.Quiet, profile.NoShutdownHook)

	return func() {
		p.Stop()
		logger.Debug(LogMsgProfileStop, zap.String(LogFieldMode, c.Mode))
	}
}
