package internal

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// metadataOf extracts one metadata value from a custom error
func metadataOf(t *testing.T, err error, key string) string {
	t.Helper()
	var ce *cuserr.CustomError
	require.True(t, errors.As(err, &ce), "expected *cuserr.CustomError, got %T", err)
	value, _ := ce.GetMetadata(key)
	return value
}

// lexRoot tokenizes source and fails the test on error
func lexRoot(t *testing.T, source string) Token {
	t.Helper()
	root, err := NewLexer(source, zap.NewNop()).Tokenize()
	require.NoError(t, err)
	return root
}

// parseSource lexes and parses a full invocation
func parseSource(t *testing.T, source string) (*Invocation, error) {
	t.Helper()
	root := lexRoot(t, source)
	return ParseInvocation(root.Children, root.End, zap.NewNop())
}

// expandSource runs the whole pipeline and prints the result
func expandSource(t *testing.T, source string) (string, error) {
	t.Helper()
	inv, err := parseSource(t, source)
	if err != nil {
		return "", err
	}
	tmpl := Compile(inv.Placeholder.Value, inv.Body, zap.NewNop())
	out, err := NewRenderer(zap.NewNop()).Render(tmpl, inv.Entries)
	if err != nil {
		return "", err
	}
	return Print(out), nil
}

// mustEntries parses a comma-separated entry list
func mustEntries(t *testing.T, list string) []SubstitutionEntry {
	t.Helper()
	root := lexRoot(t, "["+list+"]")
	require.Len(t, root.Children, 1)
	entries, err := parseEntries(root.Children[0])
	require.NoError(t, err)
	return entries
}

// tokenTexts flattens tokens into their texts; invisible groups contribute
// only their children
func tokenTexts(tokens []Token) []string {
	var texts []string
	for _, tok := range tokens {
		if tok.Kind != TokenKindGroup {
			texts = append(texts, tok.Value)
			continue
		}
		if open := tok.Delim.Open(); open != "" {
			texts = append(texts, open)
		}
		texts = append(texts, tokenTexts(tok.Children)...)
		if closing := tok.Delim.Close(); closing != "" {
			texts = append(texts, closing)
		}
	}
	return texts
}
