package repeatfor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/format"
	"strings"
	"time"

	"github.com/itsatony/go-repeatfor/internal"
	"go.uber.org/zap"
)

// SourceResult is the outcome of expanding the macro calls of one source file
type SourceResult struct {
	Name        string `json:"name"`
	Output      string `json:"output"`
	Invocations int    `json:"invocations"` // macro calls expanded over all passes
	Passes      int    `json:"passes"`      // zero for cached results
	Formatted   bool   `json:"formatted"`
	Changed     bool   `json:"changed"`
	Cached      bool   `json:"cached"`
}

// macroCall is one `name!( ... )` occurrence in a source text
type macroCall struct {
	start int   // byte offset of the macro name
	end   int   // byte offset just past the closing parenthesis
	args  Token // parenthesized argument group
}

// ExpandSource expands every `repeatfor!( ... )` call in src and splices the
// printed result over the call. The output is scanned again for calls that
// expansion produced, at most MaxDepth times. name is used in errors, logs
// and the store.
func (e *Engine) ExpandSource(ctx context.Context, name, src string) (*SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.logger.Debug(LogMsgSourceStart, zap.String(LogFieldName, name), zap.Int(LogFieldBytes, len(src)))

	key := e.expansionKey(src)
	if cached := e.lookup(ctx, key); cached != nil {
		return &SourceResult{
			Name:        name,
			Output:      cached.Output,
			Invocations: cached.Invocations,
			Changed:     cached.Output != src,
			Cached:      true,
		}, nil
	}

	result := &SourceResult{Name: name}
	text := src
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, err := internal.NewLexer(text, e.logger).Tokenize()
		if err != nil {
			return nil, withSource(err, name, result.Passes)
		}
		calls, err := e.findCalls(root.Children, nil)
		if err != nil {
			return nil, withSource(err, name, result.Passes)
		}
		if len(calls) == 0 {
			break
		}
		if result.Passes >= e.config.maxDepth {
			return nil, NewDepthExceededError(name, e.config.maxDepth)
		}

		e.logger.Debug(LogMsgMacroCallsFound,
			zap.String(LogFieldName, name),
			zap.Int(LogFieldPass, result.Passes),
			zap.Int(LogFieldCalls, len(calls)))

		text, err = e.splice(text, calls)
		if err != nil {
			return nil, withSource(err, name, result.Passes)
		}
		result.Passes++
		result.Invocations += len(calls)
	}

	if result.Invocations > 0 {
		if e.config.header != "" {
			text = e.config.header + "\n" + text
		}
		formatted, ok, err := e.format(name, text)
		if err != nil {
			return nil, err
		}
		text = formatted
		result.Formatted = ok
	}

	result.Output = text
	result.Changed = text != src
	e.save(ctx, key, result)

	e.logger.Debug(LogMsgSourceEnd,
		zap.String(LogFieldName, name),
		zap.Int(LogFieldInvocations, result.Invocations),
		zap.Int(LogFieldPass, result.Passes))
	return result, nil
}

// findCalls collects macro calls in source order. The arguments of a call
// are not searched; calls produced inside them are found on the next pass.
func (e *Engine) findCalls(tokens []Token, calls []macroCall) ([]macroCall, error) {
	var err error
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.IsIdent(e.config.macro) && i+1 < len(tokens) && tokens[i+1].IsPunct(CharBang) {
			if i+2 < len(tokens) && tokens[i+2].IsGroup(DelimParen) {
				args := tokens[i+2]
				calls = append(calls, macroCall{start: t.Pos.Offset, end: args.End.Offset, args: args})
				i += 2
				continue
			}
			// `name != x` is an ordinary comparison
			if i+2 >= len(tokens) || !tokens[i+2].IsPunct(CharEquals) {
				return nil, NewMacroCallError(e.config.macro, t.Pos)
			}
		}
		if t.Kind == TokenKindGroup {
			calls, err = e.findCalls(t.Children, calls)
			if err != nil {
				return nil, err
			}
		}
	}
	return calls, nil
}

// splice expands every call and replaces its byte range in text. All calls
// are expanded before any replacement so an error leaves nothing half done.
func (e *Engine) splice(text string, calls []macroCall) (string, error) {
	outputs := make([]string, len(calls))
	for i, call := range calls {
		out, err := e.expand(call.args.Children, closingPosition(call.args))
		if err != nil {
			return "", err
		}
		outputs[i] = strings.TrimSpace(internal.Print(out))
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for i, call := range calls {
		sb.WriteString(text[last:call.start])
		sb.WriteString(outputs[i])
		last = call.end
	}
	sb.WriteString(text[last:])
	return sb.String(), nil
}

// closingPosition returns the position of a group's closing delimiter
func closingPosition(group Token) Position {
	return Position{
		Offset: group.End.Offset - 1,
		Line:   group.End.Line,
		Column: group.End.Column - 1,
	}
}

// format applies the configured FormatMode. The bool reports whether the
// text was formatted.
func (e *Engine) format(name, text string) (string, bool, error) {
	if e.config.format == FormatNever {
		return text, false, nil
	}
	formatted, err := format.Source([]byte(text))
	if err != nil {
		if e.config.format == FormatAlways {
			return "", false, NewFormatError(name, err)
		}
		e.logger.Warn(LogMsgFormatFallback, zap.String(LogFieldName, name), zap.Error(err))
		return text, false, nil
	}
	return string(formatted), true, nil
}

// expansionKey digests everything that determines the output of ExpandSource
func (e *Engine) expansionKey(src string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%d\x00%s\x00",
		Version, e.config.macro, e.config.format, e.config.maxDepth, e.config.header)
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}

// lookup returns a stored expansion, or nil on a miss or a store failure
func (e *Engine) lookup(ctx context.Context, key string) *StoredExpansion {
	if e.config.store == nil {
		return nil
	}
	stored, err := e.config.store.Get(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			e.logger.Debug(LogMsgStoreMiss, zap.String(LogFieldKey, key))
		} else {
			e.logger.Warn(LogMsgStoreFailed, zap.String(LogFieldKey, key), zap.Error(err))
		}
		return nil
	}
	e.logger.Debug(LogMsgStoreHit, zap.String(LogFieldKey, key))
	return stored
}

// save records a fresh result; store failures are logged and ignored
func (e *Engine) save(ctx context.Context, key string, result *SourceResult) {
	if e.config.store == nil {
		return
	}
	err := e.config.store.Put(ctx, &StoredExpansion{
		Key:         key,
		Name:        result.Name,
		Output:      result.Output,
		Invocations: result.Invocations,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		e.logger.Warn(LogMsgStoreFailed, zap.String(LogFieldKey, key), zap.Error(err))
	}
}
