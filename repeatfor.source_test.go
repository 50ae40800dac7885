package repeatfor

import (
	"context"
	"errors"
	"go/format"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const zeroValuesSource = "package p\n\nrepeatfor!( for T in [int, string] {\n\tfunc zero~T() T { var z T; return z }\n} )\n"

const zeroValuesSpliced = "package p\n\n" +
	"func zeroint() int { var z int; return z }\n" +
	"\tfunc zerostring() string { var z string; return z }\n"

func TestExpandSource_Splice(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatNever))

	result, err := engine.ExpandSource(context.Background(), "zero.go", zeroValuesSource)
	require.NoError(t, err)
	assert.Equal(t, "zero.go", result.Name)
	assert.Equal(t, zeroValuesSpliced, result.Output)
	assert.Equal(t, 1, result.Invocations)
	assert.Equal(t, 1, result.Passes)
	assert.True(t, result.Changed)
	assert.False(t, result.Formatted)
	assert.False(t, result.Cached)
}

func TestExpandSource_MultipleCalls(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatNever))
	src := "a repeatfor!( for T in [x] { T } ) b f(repeatfor!( for T in [y, z] { T, } )) c"

	result, err := engine.ExpandSource(context.Background(), "multi.go", src)
	require.NoError(t, err)
	assert.Equal(t, "a x b f(y, z,) c", result.Output)
	assert.Equal(t, 2, result.Invocations)
	assert.Equal(t, 1, result.Passes)
}

func TestExpandSource_NoCalls(t *testing.T) {
	engine := MustNew(WithHeader(DefaultHeader))
	src := "package p\n\nfunc f(repeatfor bool) bool { return repeatfor != false }\n"

	result, err := engine.ExpandSource(context.Background(), "plain.go", src)
	require.NoError(t, err)
	assert.Equal(t, src, result.Output)
	assert.Equal(t, 0, result.Invocations)
	assert.Equal(t, 0, result.Passes)
	assert.False(t, result.Changed)
	assert.False(t, result.Formatted)
}

func TestExpandSource_CustomMacroName(t *testing.T) {
	engine := MustNew(WithMacroName("gen"), WithFormatMode(FormatNever))
	src := "gen!( for T in [a] { T } ) repeatfor!( for T in [b] { T } )"

	result, err := engine.ExpandSource(context.Background(), "custom.go", src)
	require.NoError(t, err)
	assert.Equal(t, "a repeatfor!( for T in [b] { T } )", result.Output)
	assert.Equal(t, 1, result.Invocations)
}

func TestExpandSource_Rescan(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatNever))
	src := "repeatfor!( for T in [a, b] { repeatfor!( for U in [x, y] { T.U } ) } )"

	result, err := engine.ExpandSource(context.Background(), "nested.go", src)
	require.NoError(t, err)
	assert.Equal(t, "a.x a.y b.x b.y", result.Output)
	assert.Equal(t, 2, result.Passes)
	assert.Equal(t, 3, result.Invocations)
}

func TestExpandSource_DepthExceeded(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatNever), WithMaxDepth(1))
	src := "repeatfor!( for T in [a] { repeatfor!( for U in [x] { T.U } ) } )"

	_, err := engine.ExpandSource(context.Background(), "deep.go", src)
	require.Error(t, err)
	assert.True(t, IsDepthExceeded(err))
	assert.Equal(t, "deep.go", metadataOf(t, err, MetaKeySource))
	assert.Equal(t, "1", metadataOf(t, err, MetaKeyMaxDepth))
}

func TestExpandSource_Header(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatNever), WithHeader(DefaultHeader))

	result, err := engine.ExpandSource(context.Background(), "zero.go", zeroValuesSource)
	require.NoError(t, err)
	assert.Equal(t, DefaultHeader+"\n"+zeroValuesSpliced, result.Output)
}

func TestExpandSource_FormatAuto(t *testing.T) {
	t.Run("valid Go is formatted", func(t *testing.T) {
		engine := MustNew(WithHeader(DefaultHeader))

		result, err := engine.ExpandSource(context.Background(), "zero.go", zeroValuesSource)
		require.NoError(t, err)

		expected, err := format.Source([]byte(DefaultHeader + "\n" + zeroValuesSpliced))
		require.NoError(t, err)
		assert.Equal(t, string(expected), result.Output)
		assert.True(t, result.Formatted)
	})

	t.Run("invalid Go falls back with a warning", func(t *testing.T) {
		engine, logs := observedEngine(t)

		result, err := engine.ExpandSource(context.Background(), "frag.go", "repeatfor!( for T in [a, b] { T + } )")
		require.NoError(t, err)
		assert.Equal(t, "a + b +", result.Output)
		assert.False(t, result.Formatted)

		warnings := logs.FilterMessage(LogMsgFormatFallback).All()
		require.Len(t, warnings, 1)
		assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
		assert.Equal(t, "frag.go", warnings[0].ContextMap()[LogFieldName])
	})
}

func TestExpandSource_FormatAlways(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatAlways))

	_, err := engine.ExpandSource(context.Background(), "frag.go", "repeatfor!( for T in [a] { T + } )")
	require.Error(t, err)
	assert.Equal(t, ErrorKindFormat, KindOf(err))
	assert.Equal(t, "frag.go", metadataOf(t, err, MetaKeySource))
}

func TestExpandSource_Errors(t *testing.T) {
	engine := MustNew(WithFormatMode(FormatNever))
	ctx := context.Background()

	t.Run("macro without arguments", func(t *testing.T) {
		_, err := engine.ExpandSource(ctx, "bad.go", "x\nrepeatfor! y")
		require.Error(t, err)
		assert.True(t, IsStructural(err))
		assert.Contains(t, err.Error(), ErrMsgMacroCallSyntax)

		pos, ok := PositionOf(err)
		require.True(t, ok)
		assert.Equal(t, 2, pos.Line)
		assert.Equal(t, 1, pos.Column)
		assert.Equal(t, "bad.go", metadataOf(t, err, MetaKeySource))
		assert.Equal(t, "0", metadataOf(t, err, MetaKeyPass))
	})

	t.Run("macro at end of input", func(t *testing.T) {
		_, err := engine.ExpandSource(ctx, "bad.go", "repeatfor!")
		require.Error(t, err)
		assert.True(t, IsStructural(err))
	})

	t.Run("invocation error keeps file position", func(t *testing.T) {
		_, err := engine.ExpandSource(ctx, "bad.go", "package p\nvar x = repeatfor!( for T [int] { T } )")
		require.Error(t, err)
		assert.True(t, IsStructural(err))

		pos, ok := PositionOf(err)
		require.True(t, ok)
		assert.Equal(t, 2, pos.Line)
	})

	t.Run("misplaced placeholder", func(t *testing.T) {
		_, err := engine.ExpandSource(ctx, "bad.go", "repeatfor!( for T in [int] { T #( T )* } )")
		require.Error(t, err)
		assert.True(t, IsMisplacedPlaceholder(err))
	})

	t.Run("lexer error", func(t *testing.T) {
		_, err := engine.ExpandSource(ctx, "bad.go", "f(")
		require.Error(t, err)
		assert.True(t, IsStructural(err))
		assert.Equal(t, "bad.go", metadataOf(t, err, MetaKeySource))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := engine.ExpandSource(cctx, "a.go", zeroValuesSource)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExpandSource_StoreHit(t *testing.T) {
	store := NewMemoryStore(MemoryStoreConfig{})
	engine, logs := observedEngine(t, WithStore(store), WithFormatMode(FormatNever))
	ctx := context.Background()

	first, err := engine.ExpandSource(ctx, "zero.go", zeroValuesSource)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, logs.FilterMessage(LogMsgStoreMiss).Len())

	second, err := engine.ExpandSource(ctx, "zero.go", zeroValuesSource)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Invocations, second.Invocations)
	assert.Equal(t, 0, second.Passes)
	assert.True(t, second.Changed)
	assert.Equal(t, 1, logs.FilterMessage(LogMsgStoreHit).Len())

	assert.Equal(t, int64(1), store.Stats().Hits)
}

func TestExpandSource_StoreKeyIncludesSettings(t *testing.T) {
	store := NewMemoryStore(MemoryStoreConfig{})
	ctx := context.Background()

	plain := MustNew(WithStore(store), WithFormatMode(FormatNever))
	_, err := plain.ExpandSource(ctx, "zero.go", zeroValuesSource)
	require.NoError(t, err)

	headed := MustNew(WithStore(store), WithFormatMode(FormatNever), WithHeader(DefaultHeader))
	result, err := headed.ExpandSource(ctx, "zero.go", zeroValuesSource)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, DefaultHeader+"\n"+zeroValuesSpliced, result.Output)

	assert.NotEqual(t, plain.expansionKey(zeroValuesSource), headed.expansionKey(zeroValuesSource))
	assert.Len(t, plain.expansionKey(zeroValuesSource), 64)
}

func TestExpandSource_ErrorsAreNotStored(t *testing.T) {
	store := NewMemoryStore(MemoryStoreConfig{})
	engine := MustNew(WithStore(store))

	_, err := engine.ExpandSource(context.Background(), "bad.go", "repeatfor! x")
	require.Error(t, err)
	assert.Equal(t, 0, store.Stats().EntryCount)
}

// failingStore is an ExpansionStore whose every operation fails
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) (*StoredExpansion, error) { return nil, errStoreDown }
func (failingStore) Put(context.Context, *StoredExpansion) error { return errStoreDown }
func (failingStore) Delete(context.Context, string) error { return errStoreDown }
func (failingStore) Close() error { return nil }

func TestExpandSource_StoreFailureIsLogged(t *testing.T) {
	engine, logs := observedEngine(t, WithStore(failingStore{}), WithFormatMode(FormatNever))

	result, err := engine.ExpandSource(context.Background(), "zero.go", zeroValuesSource)
	require.NoError(t, err)
	assert.Equal(t, zeroValuesSpliced, result.Output)

	failures := logs.FilterMessage(LogMsgStoreFailed).All()
	require.Len(t, failures, 2)
	for _, entry := range failures {
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	}
}
