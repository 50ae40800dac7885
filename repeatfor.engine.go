package repeatfor

import (
	"context"
	"strings"

	"github.com/itsatony/go-repeatfor/internal"
	"go.uber.org/zap"
)

// Engine expands repeatfor invocations. It holds only immutable
// configuration, so one Engine may be shared between goroutines.
type Engine struct {
	config *engineConfig
	logger *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Debug(LogMsgEngineCreated,
		zap.String(LogFieldMacro, config.macro),
		zap.String(LogFieldFormat, config.format.String()),
		zap.Int(LogFieldMaxDepth, config.maxDepth))

	return &Engine{
		config: config,
		logger: logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// MacroName returns the macro name recognized by ExpandSource
func (e *Engine) MacroName() string {
	return e.config.macro
}

// Store returns the configured expansion store, or nil
func (e *Engine) Store() ExpansionStore {
	return e.config.store
}

// Expand expands a bare invocation of the form
//
//	for T in [int, pkg.Widget] { ... }
//
// and returns the printed result with surrounding whitespace trimmed.
func (e *Engine) Expand(ctx context.Context, invocation string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := internal.NewLexer(invocation, e.logger).Tokenize()
	if err != nil {
		return "", err
	}

	out, err := e.expand(root.Children, root.End)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(internal.Print(out)), nil
}

// ExpandTokens expands an invocation that has already been tokenized. The
// returned tokens keep the layout trivia of the template body.
func (e *Engine) ExpandTokens(ctx context.Context, tokens []Token) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var end Position
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].End
	}
	return e.expand(tokens, end)
}

// expand runs parse, compile and render over one invocation
func (e *Engine) expand(tokens []Token, end Position) ([]Token, error) {
	e.logger.Debug(LogMsgExpandStart, zap.Int(internal.LogFieldTokens, len(tokens)))

	inv, err := internal.ParseInvocation(tokens, end, e.logger)
	if err != nil {
		return nil, err
	}

	tmpl := internal.NewCompiler(inv.Placeholder.Value, e.logger).Compile(inv.Body)
	out, err := internal.NewRenderer(e.logger).Render(tmpl, inv.Entries)
	if err != nil {
		return nil, err
	}

	e.logger.Debug(LogMsgExpandEnd, zap.Int(internal.LogFieldTokens, len(out)))
	return out, nil
}
