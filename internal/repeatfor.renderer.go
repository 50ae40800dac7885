package internal

import (
	"go.uber.org/zap"
)

// renderContext selects how placeholder and repeat-target nodes are rendered
type renderContext int

const (
	// renderTop is the template root: no entry is bound, repeat targets iterate
	renderTop renderContext = iota
	// renderRepeat is inside one iteration of a top-level repeat target
	renderRepeat
	// renderNested is inside a repeat target that belongs to another mechanism;
	// markers are kept and only placeholders are resolved
	renderNested
)

// Renderer expands a compiled template over a list of substitution entries
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRendererCreated)
	return &Renderer{logger: logger}
}

// Render produces the expanded token sequence. Any error aborts the whole
// render; no partial output is returned.
func (r *Renderer) Render(tmpl *Template, entries []SubstitutionEntry) ([]Token, error) {
	r.logger.Debug(LogMsgRenderStart,
		zap.Int(LogFieldEntries, len(entries)),
		zap.Bool(LogFieldExplicit, tmpl.Explicit))

	out, err := r.renderNode(tmpl.Root, renderTop, entries, nil)
	if err != nil {
		return nil, err
	}

	// The explicit-mode root is an invisible group; hand back its contents
	if len(out) == 1 && out[0].IsGroup(DelimNone) {
		out = out[0].Children
	}

	r.logger.Debug(LogMsgRenderEnd, zap.Int(LogFieldTokens, len(out)))
	return out, nil
}

// RenderNode renders a single node at the top level. Exposed for callers that
// build trees by hand.
func (r *Renderer) RenderNode(node Node, entries []SubstitutionEntry) ([]Token, error) {
	return r.renderNode(node, renderTop, entries, nil)
}

// renderNodes renders a node list in one context and concatenates the output
func (r *Renderer) renderNodes(nodes []Node, rc renderContext, entries []SubstitutionEntry, entry SubstitutionEntry) ([]Token, error) {
	var out []Token
	for _, n := range nodes {
		tokens, err := r.renderNode(n, rc, entries, entry)
		if err != nil {
			return nil, err
		}
		out = append(out, tokens...)
	}
	return out, nil
}

// renderNode renders one node. entry is the currently bound substitution
// entry and is nil in the top context.
func (r *Renderer) renderNode(node Node, rc renderContext, entries []SubstitutionEntry, entry SubstitutionEntry) ([]Token, error) {
	switch n := node.(type) {
	case *GroupNode:
		children, err := r.renderNodes(n.Children, rc, entries, entry)
		if err != nil {
			return nil, err
		}
		group := n.Token
		group.Children = children
		return []Token{group}, nil

	case *OtherNode:
		return []Token{n.Token.Clone()}, nil

	case *PlaceholderNode:
		if rc == renderTop {
			return nil, NewMisplacedPlaceholderError(n)
		}
		return substituteEntry(entry, n.Token.Lead), nil

	case *IdentConcatNode:
		if rc == renderTop {
			return nil, NewMisplacedPlaceholderError(n)
		}
		ident, err := SynthesizeIdent(n.Prefix.Value, entry, n.SuffixText(), n.Pos(), n.Prefix.Lead)
		if err != nil {
			return nil, err
		}
		return []Token{ident}, nil

	case *RepeatTargetNode:
		if rc == renderTop {
			return r.renderIterations(n, entries)
		}
		r.logger.Debug(LogMsgNestedPassthru, zap.Int(LogFieldLine, n.Pos().Line))
		children, err := r.renderNodes(n.Children, renderNested, entries, entry)
		if err != nil {
			return nil, err
		}
		return wrapRepeatTarget(n, children), nil

	default:
		return nil, NewUnknownNodeError(node)
	}
}

// renderIterations renders a top-level repeat target once per entry
func (r *Renderer) renderIterations(n *RepeatTargetNode, entries []SubstitutionEntry) ([]Token, error) {
	r.logger.Debug(LogMsgRepeatIteration,
		zap.Int(LogFieldEntries, len(entries)),
		zap.Int(LogFieldLine, n.Pos().Line))

	var out []Token
	for _, e := range entries {
		tokens, err := r.renderNodes(n.Children, renderRepeat, entries, e)
		if err != nil {
			return nil, err
		}
		out = append(out, tokens...)
	}
	return out, nil
}

// substituteEntry returns the entry tokens with the first one taking the
// placeholder's leading trivia
func substituteEntry(entry SubstitutionEntry, lead string) []Token {
	tokens := entry.Tokens()
	if len(tokens) > 0 {
		tokens[0] = tokens[0].WithLead(lead)
	}
	return tokens
}

// wrapRepeatTarget re-emits the original `#( ... )*` markers around children
func wrapRepeatTarget(n *RepeatTargetNode, children []Token) []Token {
	group := n.Group
	group.Children = children
	return []Token{n.Pound, group, n.Star}
}
