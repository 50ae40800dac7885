package internal

import (
	"go/token"

	"go.uber.org/zap"
)

// Invocation is the structured request extracted from
// `for <placeholder> in [entries...] { body }`.
type Invocation struct {
	Placeholder Token
	Entries     []SubstitutionEntry
	Body        Token // brace group holding the template body
}

// ParseInvocation parses the tokens of a macro invocation. end is the position
// just past the last token and is reported when input stops early.
func ParseInvocation(tokens []Token, end Position, logger *zap.Logger) (*Invocation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := NewCursor(tokens)
	endToken := Token{Kind: TokenKindPunct, Pos: end}

	next := func() Token {
		if t, ok := c.Next(); ok {
			return t
		}
		return endToken
	}

	// for
	if t := next(); !t.IsIdent(KeywordFor) {
		return nil, NewExpectedError(ErrMsgExpectedKeyword, KeywordFor, t)
	}

	// T
	placeholder := next()
	if !placeholder.IsIdent() {
		return nil, NewExpectedError(ErrMsgExpectedPlaceholder, "identifier", placeholder)
	}
	if token.IsKeyword(placeholder.Value) {
		return nil, NewStructuralError(ErrMsgKeywordPlaceholder, placeholder.Pos).
			WithMetadata(MetaKeyActual, placeholder.Value)
	}

	// in
	if t := next(); !t.IsIdent(KeywordIn) {
		return nil, NewExpectedError(ErrMsgExpectedKeyword, KeywordIn, t)
	}

	// [ entries ]
	list := next()
	if !list.IsGroup(DelimBracket) {
		return nil, NewExpectedError(ErrMsgExpectedBracket, DelimBracket.String(), list)
	}
	entries, err := parseEntries(list)
	if err != nil {
		return nil, err
	}

	// { body }
	body := next()
	if !body.IsGroup(DelimBrace) {
		return nil, NewExpectedError(ErrMsgExpectedBrace, DelimBrace.String(), body)
	}

	if t, ok := c.Next(); ok {
		return nil, NewStructuralError(ErrMsgUnexpectedTrailing, t.Pos).
			WithMetadata(MetaKeyActual, describeToken(t))
	}

	logger.Debug(LogMsgInvocationParsed,
		zap.String(LogFieldPlaceholder, placeholder.Value),
		zap.Int(LogFieldEntries, len(entries)))

	return &Invocation{
		Placeholder: placeholder,
		Entries:     entries,
		Body:        body,
	}, nil
}

// parseEntries splits a bracket group on top-level commas; a trailing comma is allowed
func parseEntries(list Token) ([]SubstitutionEntry, error) {
	var entries []SubstitutionEntry
	var current []Token
	currentPos := list.Pos

	for _, t := range list.Children {
		if !t.IsPunct(CharComma) {
			current = append(current, t)
			continue
		}
		entry, err := ParseTypeEntry(current, currentPos)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		current = nil
		currentPos = t.Pos
	}

	if len(current) > 0 {
		entry, err := ParseTypeEntry(current, currentPos)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
