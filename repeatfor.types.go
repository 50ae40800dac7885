package repeatfor

import "github.com/itsatony/go-repeatfor/internal"

// Position is a location in source text
type Position = internal.Position

// Token is one element of a token tree. Callers that already hold tokens
// (for example from Tokenize) can expand them with Engine.ExpandTokens.
type Token = internal.Token

// TokenKind identifies the kind of a token
type TokenKind = internal.TokenKind

// Delimiter identifies how a group token is enclosed
type Delimiter = internal.Delimiter

// Token kinds
const (
	TokenKindIdent   = internal.TokenKindIdent
	TokenKindLiteral = internal.TokenKindLiteral
	TokenKindPunct   = internal.TokenKindPunct
	TokenKindGroup   = internal.TokenKindGroup
)

// Delimiters
const (
	DelimNone    = internal.DelimNone
	DelimParen   = internal.DelimParen
	DelimBracket = internal.DelimBracket
	DelimBrace   = internal.DelimBrace
)

// Tokenize lexes source into its top-level tokens. Whitespace and comments
// are kept as leading trivia so Print reproduces the input.
func Tokenize(source string) ([]Token, error) {
	return internal.Tokenize(source, nil)
}

// Print renders tokens back to source text
func Print(tokens []Token) string {
	return internal.Print(tokens)
}
