package repeatfor

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// metadataOf extracts one metadata value from a custom error
func metadataOf(t *testing.T, err error, key string) string {
	t.Helper()
	var ce *cuserr.CustomError
	require.True(t, errors.As(err, &ce), "expected *cuserr.CustomError, got %T", err)
	value, _ := ce.GetMetadata(key)
	return value
}

// observedEngine returns an engine whose debug logs are captured
func observedEngine(t *testing.T, opts ...Option) (*Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	engine, err := New(append(opts, WithLogger(zap.New(core)))...)
	require.NoError(t, err)
	return engine, logs
}
