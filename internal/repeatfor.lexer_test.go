package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLexer_Tokenize_Atoms(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kinds  []TokenKind
		values []string
	}{
		{
			name:   "identifiers and puncts",
			input:  "a.b ~ c",
			kinds:  []TokenKind{TokenKindIdent, TokenKindPunct, TokenKindIdent, TokenKindPunct, TokenKindIdent},
			values: []string{"a", ".", "b", "~", "c"},
		},
		{
			name:   "multi-char operators split into single runes",
			input:  "x := y",
			kinds:  []TokenKind{TokenKindIdent, TokenKindPunct, TokenKindPunct, TokenKindIdent},
			values: []string{"x", ":", "=", "y"},
		},
		{
			name:   "numbers",
			input:  "1.5e-3 0x1F .5 42i",
			kinds:  []TokenKind{TokenKindLiteral, TokenKindLiteral, TokenKindLiteral, TokenKindLiteral},
			values: []string{"1.5e-3", "0x1F", ".5", "42i"},
		},
		{
			name:   "strings and runes",
			input:  "\"a\\\"b\" 'x' `raw\nline`",
			kinds:  []TokenKind{TokenKindLiteral, TokenKindLiteral, TokenKindLiteral},
			values: []string{"\"a\\\"b\"", "'x'", "`raw\nline`"},
		},
		{
			name:   "unicode identifier",
			input:  "größe _x1",
			kinds:  []TokenKind{TokenKindIdent, TokenKindIdent},
			values: []string{"größe", "_x1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, zap.NewNop())
			require.NoError(t, err)
			require.Len(t, tokens, len(tt.kinds))
			for i, tok := range tokens {
				assert.Equal(t, tt.kinds[i], tok.Kind, "token %d", i)
				assert.Equal(t, tt.values[i], tok.Value, "token %d", i)
			}
		})
	}
}

func TestLexer_Tokenize_Groups(t *testing.T) {
	tokens, err := Tokenize("f(a, [b]) { c }", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.True(t, tokens[0].IsIdent("f"))

	paren := tokens[1]
	require.True(t, paren.IsGroup(DelimParen))
	require.Len(t, paren.Children, 3)
	assert.True(t, paren.Children[0].IsIdent("a"))
	assert.True(t, paren.Children[1].IsPunct(CharComma))
	require.True(t, paren.Children[2].IsGroup(DelimBracket))
	assert.True(t, paren.Children[2].Children[0].IsIdent("b"))

	brace := tokens[2]
	require.True(t, brace.IsGroup(DelimBrace))
	assert.Equal(t, " ", brace.Lead)
	assert.Equal(t, " ", brace.CloseLead)
	require.Len(t, brace.Children, 1)
	assert.Equal(t, " ", brace.Children[0].Lead)
}

func TestLexer_Tokenize_Positions(t *testing.T) {
	root := lexRoot(t, "a (b)\n  c")
	tokens := root.Children
	require.Len(t, tokens, 3)

	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, tokens[0].End)
	assert.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, tokens[1].Pos)
	assert.Equal(t, Position{Offset: 5, Line: 1, Column: 6}, tokens[1].End)
	assert.Equal(t, Position{Offset: 3, Line: 1, Column: 4}, tokens[1].Children[0].Pos)
	assert.Equal(t, Position{Offset: 8, Line: 2, Column: 3}, tokens[2].Pos)
	assert.Equal(t, Position{Offset: 9, Line: 2, Column: 4}, root.End)
}

func TestLexer_Tokenize_Trivia(t *testing.T) {
	root := lexRoot(t, "a // note\n/* block */ b  ")
	require.Len(t, root.Children, 2)
	assert.Equal(t, "", root.Children[0].Lead)
	assert.Equal(t, " // note\n/* block */ ", root.Children[1].Lead)
	assert.Equal(t, "  ", root.CloseLead)
}

func TestLexer_Tokenize_RoundTrip(t *testing.T) {
	sources := []string{
		"",
		"   ",
		"func (w *Widget) Name() string { return \"w\" } // done\n",
		"impl_~T~_x #( T, )* { [ 1, 2 ] }",
		"/* lead */ x\n\ty\n",
		"m := map[string][]int{\"a\": {1, 2}}",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			root := lexRoot(t, src)
			assert.Equal(t, src, PrintToken(root))
		})
	}
}

func TestLexer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    string
		column  string
	}{
		{"unclosed paren", "a (b", ErrMsgUnclosedGroup, "1", "3"},
		{"unbalanced close", "a )", ErrMsgUnbalancedClose, "1", "3"},
		{"mismatched close", "(a]", ErrMsgMismatchedClose, "1", "3"},
		{"unterminated string", "x \"abc", ErrMsgUnterminatedString, "1", "3"},
		{"string broken by newline", "\"abc\ndef\"", ErrMsgUnterminatedString, "1", "1"},
		{"unterminated rune", "'a", ErrMsgUnterminatedRune, "1", "1"},
		{"unterminated raw string", "\n`abc", ErrMsgUnterminatedRaw, "2", "1"},
		{"unterminated comment", "a /* b", ErrMsgUnterminatedComment, "1", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input, zap.NewNop()).Tokenize()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, KindStructural, metadataOf(t, err, MetaKeyKind))
			assert.Equal(t, tt.line, metadataOf(t, err, MetaKeyLine))
			assert.Equal(t, tt.column, metadataOf(t, err, MetaKeyColumn))
		})
	}
}

func TestLexer_NilLogger(t *testing.T) {
	tokens, err := Tokenize("a b", nil)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}
