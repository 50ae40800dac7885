package internal

import (
	"strings"
	"unicode/utf8"
)

// Print renders a token sequence back to source text, reproducing the layout
// recorded in each token's leading trivia. Where two tokens without trivia
// between them would lex as one, a single space separates them.
func Print(tokens []Token) string {
	var p printer
	p.tokens(tokens)
	return p.sb.String()
}

// PrintToken renders a single token
func PrintToken(t Token) string {
	var p printer
	p.token(t)
	return p.sb.String()
}

// printer tracks the last emitted rune so adjacent atoms stay separate
type printer struct {
	sb     strings.Builder
	last   rune
	number bool // last token was a number literal
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}
	p.sb.WriteString(s)
	p.last, _ = utf8.DecodeLastRuneInString(s)
}

func (p *printer) tokens(tokens []Token) {
	for _, t := range tokens {
		p.token(t)
	}
}

func (p *printer) token(t Token) {
	if t.Lead != "" {
		p.write(t.Lead)
	} else if p.joins(t) {
		p.write(string(CharSpace))
	}

	if t.Kind != TokenKindGroup {
		p.write(t.Value)
		p.number = t.Kind == TokenKindLiteral && isNumberStart(t.Value)
		return
	}
	p.number = false
	p.write(t.Delim.Open())
	p.tokens(t.Children)
	p.write(t.CloseLead)
	p.write(t.Delim.Close())
	p.number = false
}

// joins reports whether t would merge with the previous output when written
// directly after it
func (p *printer) joins(t Token) bool {
	var text string
	if t.Kind == TokenKindGroup {
		text = t.Delim.Open()
	} else {
		text = t.Value
	}
	next, _ := utf8.DecodeRuneInString(text)
	if text == "" || p.last == 0 {
		return false
	}

	switch {
	case isIdentPart(p.last) && isIdentPart(next):
		return true
	case isIdentPart(p.last) && t.Kind == TokenKindLiteral && next == CharDot:
		return true
	case p.number && next == CharDot:
		return true
	case p.last == CharSlash && (next == CharSlash || next == CharStar):
		return true
	}
	return false
}

func isNumberStart(text string) bool {
	first, _ := utf8.DecodeRuneInString(text)
	return isDigit(first) || first == CharDot
}

// PrintCompact renders tokens with single spaces instead of their recorded
// trivia; used for diagnostics and entry text.
func PrintCompact(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == TokenKindGroup {
			parts = append(parts, t.Delim.Open()+PrintCompact(t.Children)+t.Delim.Close())
			continue
		}
		parts = append(parts, t.Value)
	}
	return strings.Join(parts, " ")
}
