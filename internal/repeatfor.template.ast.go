package internal

import (
	"fmt"
	"strings"
)

// NodeType identifies template node types
type NodeType int

// Node type constants
const (
	NodeTypeGroup NodeType = iota
	NodeTypePlaceholder
	NodeTypeIdentConcat
	NodeTypeOther
	NodeTypeRepeatTarget
)

// Node type string names for debugging
const (
	NodeTypeNameGroup        = "GROUP"
	NodeTypeNamePlaceholder  = "PLACEHOLDER"
	NodeTypeNameIdentConcat  = "IDENT_CONCAT"
	NodeTypeNameOther        = "OTHER"
	NodeTypeNameRepeatTarget = "REPEAT_TARGET"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeGroup:
		return NodeTypeNameGroup
	case NodeTypePlaceholder:
		return NodeTypeNamePlaceholder
	case NodeTypeIdentConcat:
		return NodeTypeNameIdentConcat
	case NodeTypeOther:
		return NodeTypeNameOther
	case NodeTypeRepeatTarget:
		return NodeTypeNameRepeatTarget
	default:
		return NodeTypeNameOther
	}
}

// Node is the interface all compiled template nodes implement. The set of
// implementations is closed; the renderer switches over it exhaustively.
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
}

// GroupNode is a delimited group whose children were compiled recursively
type GroupNode struct {
	Token    Token // original group token; its Children are not used
	Children []Node
}

// Type returns NodeTypeGroup
func (n *GroupNode) Type() NodeType { return NodeTypeGroup }

// Pos returns the source position
func (n *GroupNode) Pos() Position { return n.Token.Pos }

// String returns a string representation
func (n *GroupNode) String() string {
	return fmt.Sprintf("GroupNode{%s, children=%d @ %s}", n.Token.Delim, len(n.Children), n.Token.Pos)
}

// PlaceholderNode is a bare occurrence of the placeholder identifier
type PlaceholderNode struct {
	Token Token
}

// Type returns NodeTypePlaceholder
func (n *PlaceholderNode) Type() NodeType { return NodeTypePlaceholder }

// Pos returns the source position
func (n *PlaceholderNode) Pos() Position { return n.Token.Pos }

// String returns a string representation
func (n *PlaceholderNode) String() string {
	return fmt.Sprintf("PlaceholderNode{%s @ %s}", n.Token.Value, n.Token.Pos)
}

// IdentConcatNode is the `prefix~T` or `prefix~T~suffix` marker
type IdentConcatNode struct {
	Prefix Token
	Target Token
	Suffix *Token // nil when no suffix was written
	Source []Token
}

// Type returns NodeTypeIdentConcat
func (n *IdentConcatNode) Type() NodeType { return NodeTypeIdentConcat }

// Pos returns the position of the prefix, which is where synthesized
// identifiers are reported.
func (n *IdentConcatNode) Pos() Position { return n.Prefix.Pos }

// SuffixText returns the suffix identifier or an empty string
func (n *IdentConcatNode) SuffixText() string {
	if n.Suffix == nil {
		return ""
	}
	return n.Suffix.Value
}

// String returns a string representation
func (n *IdentConcatNode) String() string {
	if n.Suffix == nil {
		return fmt.Sprintf("IdentConcatNode{%s~%s @ %s}", n.Prefix.Value, n.Target.Value, n.Prefix.Pos)
	}
	return fmt.Sprintf("IdentConcatNode{%s~%s~%s @ %s}", n.Prefix.Value, n.Target.Value, n.Suffix.Value, n.Prefix.Pos)
}

// OtherNode is any token that is not a recognized marker
type OtherNode struct {
	Token Token
}

// Type returns NodeTypeOther
func (n *OtherNode) Type() NodeType { return NodeTypeOther }

// Pos returns the source position
func (n *OtherNode) Pos() Position { return n.Token.Pos }

// String returns a string representation
func (n *OtherNode) String() string {
	text := PrintCompact([]Token{n.Token})
	if len(text) > MaxStringDisplayLength {
		text = text[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("OtherNode{%q @ %s}", text, n.Token.Pos)
}

// RepeatTargetNode is a `#( ... )*` region rendered once per entry. Pound,
// Group and Star are the original marker tokens, kept so a nested target
// can be emitted verbatim. A synthetic target has zero-value markers.
type RepeatTargetNode struct {
	Pound     Token
	Group     Token
	Star      Token
	Children  []Node
	Synthetic bool
}

// Type returns NodeTypeRepeatTarget
func (n *RepeatTargetNode) Type() NodeType { return NodeTypeRepeatTarget }

// Pos returns the position of the parenthesized group
func (n *RepeatTargetNode) Pos() Position { return n.Group.Pos }

// String returns a string representation
func (n *RepeatTargetNode) String() string {
	if n.Synthetic {
		return fmt.Sprintf("RepeatTargetNode{implicit, children=%d @ %s}", len(n.Children), n.Group.Pos)
	}
	return fmt.Sprintf("RepeatTargetNode{children=%d @ %s}", len(n.Children), n.Group.Pos)
}

// Template is a compiled template body
type Template struct {
	Placeholder string
	Root        Node
	Explicit    bool // true when the body contained at least one #( )* marker
}

// Dump returns an indented tree listing of the template for debugging
func (t *Template) Dump() string {
	var sb strings.Builder
	dumpNode(&sb, t.Root, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.String())
	sb.WriteByte('\n')
	for _, child := range childrenOf(n) {
		dumpNode(sb, child, depth+1)
	}
}

// childrenOf returns the compiled children of container nodes
func childrenOf(n Node) []Node {
	switch x := n.(type) {
	case *GroupNode:
		return x.Children
	case *RepeatTargetNode:
		return x.Children
	default:
		return nil
	}
}

// ContainsRepeatTarget reports whether any node in the tree is an explicit repeat target
func ContainsRepeatTarget(nodes []Node) bool {
	for _, n := range nodes {
		if rt, ok := n.(*RepeatTargetNode); ok && !rt.Synthetic {
			return true
		}
		if ContainsRepeatTarget(childrenOf(n)) {
			return true
		}
	}
	return false
}

// Walk calls fn for n and every node below it in depth-first order
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, child := range childrenOf(n) {
		Walk(child, fn)
	}
}
