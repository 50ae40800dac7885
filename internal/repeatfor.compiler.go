package internal

import (
	"go.uber.org/zap"
)

// Compiler turns a raw template body into a tree of template nodes, resolving
// placeholder, identifier-concatenation and repeat-target markers.
type Compiler struct {
	placeholder string
	explicit    bool
	logger      *zap.Logger
}

// NewCompiler creates a compiler for the given placeholder name
func NewCompiler(placeholder string, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		placeholder: placeholder,
		logger:      logger,
	}
}

// Compile compiles the children of the body group. When the body holds no
// explicit repeat target, the whole body is wrapped in a synthetic one.
// Compilation never fails.
func (c *Compiler) Compile(body Token) *Template {
	c.logger.Debug(LogMsgCompileStart,
		zap.String(LogFieldPlaceholder, c.placeholder),
		zap.Int(LogFieldTokens, len(body.Children)))

	c.explicit = false
	nodes := c.compileTokens(body.Children)

	tmpl := &Template{
		Placeholder: c.placeholder,
		Explicit:    c.explicit,
	}
	invisible := body
	invisible.Delim = DelimNone
	invisible.Lead = ""
	invisible.CloseLead = ""
	if c.explicit {
		tmpl.Root = &GroupNode{Token: invisible, Children: nodes}
	} else {
		tmpl.Root = &RepeatTargetNode{Group: invisible, Children: nodes, Synthetic: true}
	}

	c.logger.Debug(LogMsgCompileEnd, zap.Bool(LogFieldExplicit, c.explicit))
	return tmpl
}

// compileTokens performs one forward pass over a token slice
func (c *Compiler) compileTokens(tokens []Token) []Node {
	nodes := make([]Node, 0, len(tokens))
	cur := NewCursor(tokens)

	for {
		t, ok := cur.Next()
		if !ok {
			return nodes
		}

		switch {
		case t.Kind == TokenKindGroup:
			nodes = append(nodes, &GroupNode{Token: t, Children: c.compileTokens(t.Children)})

		case t.IsIdent(c.placeholder):
			nodes = append(nodes, &PlaceholderNode{Token: t})

		case t.Kind == TokenKindIdent:
			if concat := c.matchIdentConcat(t, cur); concat != nil {
				nodes = append(nodes, concat)
				continue
			}
			nodes = append(nodes, &OtherNode{Token: t})

		case t.IsPunct(CharRepeatOpen):
			if rt := c.matchRepeatTarget(t, cur); rt != nil {
				nodes = append(nodes, rt)
				continue
			}
			nodes = append(nodes, &OtherNode{Token: t})

		default:
			nodes = append(nodes, &OtherNode{Token: t})
		}
	}
}

// matchIdentConcat recognizes `prefix ~ T` with an optional `~ suffix`.
// Nothing is consumed unless `~ T` matches.
func (c *Compiler) matchIdentConcat(prefix Token, cur *Cursor) *IdentConcatNode {
	tilde, ok := cur.Peek(0)
	if !ok || !tilde.IsPunct(CharConcat) {
		return nil
	}
	target, ok := cur.Peek(1)
	if !ok || !target.IsIdent(c.placeholder) {
		return nil
	}

	node := &IdentConcatNode{
		Prefix: prefix,
		Target: target,
		Source: []Token{prefix, tilde, target},
	}

	tilde2, ok2 := cur.Peek(2)
	suffix, ok3 := cur.Peek(3)
	if ok2 && ok3 && tilde2.IsPunct(CharConcat) && suffix.IsIdent() {
		node.Suffix = &suffix
		node.Source = append(node.Source, tilde2, suffix)
		cur.Skip(4)
		return node
	}

	cur.Skip(2)
	return node
}

// matchRepeatTarget recognizes `# ( ... ) *`. Nothing is consumed unless the
// parenthesized group and the star are both present.
func (c *Compiler) matchRepeatTarget(pound Token, cur *Cursor) *RepeatTargetNode {
	group, ok := cur.Peek(0)
	if !ok || !group.IsGroup(DelimParen) {
		return nil
	}
	star, ok := cur.Peek(1)
	if !ok || !star.IsPunct(CharRepeatClose) {
		return nil
	}
	cur.Skip(2)

	c.explicit = true
	return &RepeatTargetNode{
		Pound:    pound,
		Group:    group,
		Star:     star,
		Children: c.compileTokens(group.Children),
	}
}

// Compile is a convenience wrapper compiling body with a fresh compiler
func Compile(placeholder string, body Token, logger *zap.Logger) *Template {
	return NewCompiler(placeholder, logger).Compile(body)
}
