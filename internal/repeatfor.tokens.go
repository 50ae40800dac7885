package internal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a location in the source text
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// TokenKind identifies the kind of a token tree element
type TokenKind int

// Token kind constants
const (
	TokenKindIdent TokenKind = iota
	TokenKindLiteral
	TokenKindPunct
	TokenKindGroup
)

// Token kind string names for debugging
const (
	TokenKindNameIdent   = "IDENT"
	TokenKindNameLiteral = "LITERAL"
	TokenKindNamePunct   = "PUNCT"
	TokenKindNameGroup   = "GROUP"
)

// String returns the string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenKindIdent:
		return TokenKindNameIdent
	case TokenKindLiteral:
		return TokenKindNameLiteral
	case TokenKindPunct:
		return TokenKindNamePunct
	case TokenKindGroup:
		return TokenKindNameGroup
	default:
		return TokenKindNameIdent
	}
}

// Delimiter identifies how a group token is enclosed
type Delimiter int

// Delimiter constants. DelimNone is an invisible group: only its children print.
const (
	DelimNone Delimiter = iota
	DelimParen
	DelimBracket
	DelimBrace
)

// Open returns the opening delimiter text
func (d Delimiter) Open() string {
	switch d {
	case DelimParen:
		return string(CharParenOpen)
	case DelimBracket:
		return string(CharBracketOpen)
	case DelimBrace:
		return string(CharBraceOpen)
	default:
		return ""
	}
}

// Close returns the closing delimiter text
func (d Delimiter) Close() string {
	switch d {
	case DelimParen:
		return string(CharParenClose)
	case DelimBracket:
		return string(CharBracketClose)
	case DelimBrace:
		return string(CharBraceClose)
	default:
		return ""
	}
}

// String returns a name for the delimiter
func (d Delimiter) String() string {
	switch d {
	case DelimParen:
		return "()"
	case DelimBracket:
		return "[]"
	case DelimBrace:
		return "{}"
	default:
		return "none"
	}
}

// Token is one element of a token tree: an atom (ident, literal, punct) or a
// delimited group of child tokens.
type Token struct {
	Kind      TokenKind
	Value     string    // text of an atom; empty for groups
	Delim     Delimiter // groups only
	Children  []Token   // groups only
	Pos       Position  // start of the token (opening delimiter for groups)
	End       Position  // position just past the token
	Lead      string    // whitespace and comments preceding the token
	CloseLead string    // trivia preceding a group's closing delimiter
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	if t.Kind == TokenKindGroup {
		return fmt.Sprintf("Token{%s %s, children=%d @ %s}", t.Kind, t.Delim, len(t.Children), t.Pos)
	}
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Kind, t.Value, t.Pos)
}

// IsIdent reports whether the token is an identifier, optionally with the given name
func (t Token) IsIdent(name ...string) bool {
	if t.Kind != TokenKindIdent {
		return false
	}
	return len(name) == 0 || t.Value == name[0]
}

// IsPunct reports whether the token is the given punctuation rune
func (t Token) IsPunct(ch rune) bool {
	return t.Kind == TokenKindPunct && t.Value == string(ch)
}

// IsGroup reports whether the token is a group with the given delimiter
func (t Token) IsGroup(delim Delimiter) bool {
	return t.Kind == TokenKindGroup && t.Delim == delim
}

// Clone returns a deep copy of the token
func (t Token) Clone() Token {
	if t.Children != nil {
		t.Children = CloneTokens(t.Children)
	}
	return t
}

// WithLead returns a copy of the token with its leading trivia replaced
func (t Token) WithLead(lead string) Token {
	t.Lead = lead
	return t
}

// CloneTokens deep-copies a token slice
func CloneTokens(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Clone()
	}
	return out
}

// NewIdentToken creates an identifier token
func NewIdentToken(name string, pos Position) Token {
	return Token{
		Kind:  TokenKindIdent,
		Value: name,
		Pos:   pos,
		End:   advancePosition(pos, name),
	}
}

// NewPunctToken creates a single-rune punctuation token
func NewPunctToken(ch rune, pos Position) Token {
	return Token{
		Kind:  TokenKindPunct,
		Value: string(ch),
		Pos:   pos,
		End:   advancePosition(pos, string(ch)),
	}
}

// NewLiteralToken creates a literal token
func NewLiteralToken(text string, pos Position) Token {
	return Token{
		Kind:  TokenKindLiteral,
		Value: text,
		Pos:   pos,
		End:   advancePosition(pos, text),
	}
}

// NewGroupToken creates a group token
func NewGroupToken(delim Delimiter, children []Token, pos Position) Token {
	return Token{
		Kind:     TokenKindGroup,
		Delim:    delim,
		Children: children,
		Pos:      pos,
	}
}

// advancePosition returns the position after text starting at pos
func advancePosition(pos Position, text string) Position {
	pos.Offset += len(text)
	if i := strings.LastIndexByte(text, CharNewline); i >= 0 {
		pos.Line += strings.Count(text, string(CharNewline))
		pos.Column = utf8.RuneCountInString(text[i+1:]) + 1
		return pos
	}
	pos.Column += utf8.RuneCountInString(text)
	return pos
}
