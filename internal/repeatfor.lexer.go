package internal

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Lexer turns source text into a token tree. Whitespace and comments are not
// tokens; they are kept as the Lead trivia of the token that follows them.
type Lexer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// groupFrame is an open delimiter waiting for its closing counterpart
type groupFrame struct {
	token    Token
	children []Token
}

// NewLexer creates a new lexer
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns an invisible root group holding
// the top-level tokens. Trailing trivia is stored as the root's CloseLead.
func (l *Lexer) Tokenize() (Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)

	root := NewGroupToken(DelimNone, nil, l.currentPosition())
	stack := []*groupFrame{{token: root}}
	count := 0

	for {
		lead, err := l.scanTrivia()
		if err != nil {
			return Token{}, err
		}
		if l.isAtEnd() {
			top := stack[len(stack)-1]
			if len(stack) > 1 {
				return Token{}, NewStructuralError(ErrMsgUnclosedGroup, top.token.Pos).
					WithMetadata(MetaKeyExpected, top.token.Delim.Close())
			}
			top.token.Children = top.children
			top.token.CloseLead = lead
			top.token.End = l.currentPosition()
			l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, count))
			return top.token, nil
		}

		ch, _ := l.peekRune()
		switch {
		case isOpenDelim(ch):
			open := NewGroupToken(delimiterFor(ch), nil, l.currentPosition())
			open.Lead = lead
			l.advance()
			stack = append(stack, &groupFrame{token: open})

		case isCloseDelim(ch):
			pos := l.currentPosition()
			if len(stack) == 1 {
				return Token{}, NewStructuralError(ErrMsgUnbalancedClose, pos).
					WithMetadata(MetaKeyActual, string(ch))
			}
			top := stack[len(stack)-1]
			if top.token.Delim != delimiterFor(ch) {
				return Token{}, NewStructuralError(ErrMsgMismatchedClose, pos).
					WithMetadata(MetaKeyExpected, top.token.Delim.Close()).
					WithMetadata(MetaKeyActual, string(ch))
			}
			l.advance()
			stack = stack[:len(stack)-1]
			group := top.token
			group.Children = top.children
			group.CloseLead = lead
			group.End = l.currentPosition()
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, group)
			count++

		default:
			tok, err := l.scanAtom(ch)
			if err != nil {
				return Token{}, err
			}
			tok.Lead = lead
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, tok)
			count++
		}
	}
}

// scanAtom scans one identifier, literal, or punctuation token
func (l *Lexer) scanAtom(ch rune) (Token, error) {
	start := l.currentPosition()
	switch {
	case isIdentStart(ch):
		return NewIdentToken(l.scanWhile(isIdentPart), start), nil
	case isDigit(ch) || (ch == CharDot && isDigit(l.peekRuneAt(1))):
		return NewLiteralToken(l.scanNumber(), start), nil
	case ch == CharDoubleQuote:
		text, err := l.scanQuoted(CharDoubleQuote, ErrMsgUnterminatedString)
		if err != nil {
			return Token{}, err
		}
		return NewLiteralToken(text, start), nil
	case ch == CharSingleQuote:
		text, err := l.scanQuoted(CharSingleQuote, ErrMsgUnterminatedRune)
		if err != nil {
			return Token{}, err
		}
		return NewLiteralToken(text, start), nil
	case ch == CharBacktick:
		text, err := l.scanRaw()
		if err != nil {
			return Token{}, err
		}
		return NewLiteralToken(text, start), nil
	default:
		l.advance()
		return NewPunctToken(ch, start), nil
	}
}

// scanTrivia consumes whitespace and comments and returns them verbatim
func (l *Lexer) scanTrivia() (string, error) {
	startOffset := l.pos
	for !l.isAtEnd() {
		ch, _ := l.peekRune()
		switch {
		case isSpace(ch):
			l.advance()
		case ch == CharSlash && l.peekRuneAt(1) == CharSlash:
			for !l.isAtEnd() {
				if c, _ := l.peekRune(); c == CharNewline {
					break
				}
				l.advance()
			}
		case ch == CharSlash && l.peekRuneAt(1) == CharStar:
			start := l.currentPosition()
			l.advanceN(2)
			closed := false
			for !l.isAtEnd() {
				if l.matchStr("*/") {
					l.advanceN(2)
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return "", NewStructuralError(ErrMsgUnterminatedComment, start)
			}
		default:
			return l.source[startOffset:l.pos], nil
		}
	}
	return l.source[startOffset:l.pos], nil
}

// scanWhile consumes runes while pred holds and returns them
func (l *Lexer) scanWhile(pred func(rune) bool) string {
	startOffset := l.pos
	for !l.isAtEnd() {
		ch, _ := l.peekRune()
		if !pred(ch) {
			break
		}
		l.advance()
	}
	return l.source[startOffset:l.pos]
}

// scanNumber scans a numeric literal including hex, exponent and imaginary forms
func (l *Lexer) scanNumber() string {
	startOffset := l.pos
	isHex := l.matchStr("0x") || l.matchStr("0X")
	for !l.isAtEnd() {
		ch, _ := l.peekRune()
		exponent := (!isHex && (ch == 'e' || ch == 'E')) || (isHex && (ch == 'p' || ch == 'P'))
		switch {
		case exponent:
			l.advance()
			if next, _ := l.peekRune(); next == '+' || next == '-' {
				l.advance()
			}
		case isIdentPart(ch) || ch == CharDot:
			l.advance()
		default:
			return l.source[startOffset:l.pos]
		}
	}
	return l.source[startOffset:l.pos]
}

// scanQuoted scans an interpreted string or rune literal
func (l *Lexer) scanQuoted(quote rune, msg string) (string, error) {
	start := l.currentPosition()
	startOffset := l.pos
	l.advance() // opening quote
	for !l.isAtEnd() {
		ch, _ := l.peekRune()
		switch ch {
		case quote:
			l.advance()
			return l.source[startOffset:l.pos], nil
		case CharNewline:
			return "", NewStructuralError(msg, start)
		case CharBackslash:
			l.advanceN(2)
		default:
			l.advance()
		}
	}
	return "", NewStructuralError(msg, start)
}

// scanRaw scans a backtick raw string literal
func (l *Lexer) scanRaw() (string, error) {
	start := l.currentPosition()
	startOffset := l.pos
	l.advance() // opening backtick
	for !l.isAtEnd() {
		ch, _ := l.peekRune()
		l.advance()
		if ch == CharBacktick {
			return l.source[startOffset:l.pos], nil
		}
	}
	return "", NewStructuralError(ErrMsgUnterminatedRaw, start)
}

// Helper methods

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peekRune returns the current rune without advancing
func (l *Lexer) peekRune() (rune, int) {
	if l.isAtEnd() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.source[l.pos:])
}

// peekRuneAt returns the rune n runes ahead without advancing
func (l *Lexer) peekRuneAt(n int) rune {
	offset := l.pos
	for i := 0; i < n && offset < len(l.source); i++ {
		_, size := utf8.DecodeRuneInString(l.source[offset:])
		offset += size
	}
	if offset >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[offset:])
	return r
}

// advance consumes the current rune
func (l *Lexer) advance() {
	ch, size := l.peekRune()
	if size == 0 {
		return
	}
	l.pos += size
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// advanceN advances by n runes
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// Character classification helpers

func isSpace(ch rune) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet || ch == CharFormFeed
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == CharUnderscore || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}

func isOpenDelim(ch rune) bool {
	return ch == CharParenOpen || ch == CharBracketOpen || ch == CharBraceOpen
}

func isCloseDelim(ch rune) bool {
	return ch == CharParenClose || ch == CharBracketClose || ch == CharBraceClose
}

func delimiterFor(ch rune) Delimiter {
	switch ch {
	case CharParenOpen, CharParenClose:
		return DelimParen
	case CharBracketOpen, CharBracketClose:
		return DelimBracket
	case CharBraceOpen, CharBraceClose:
		return DelimBrace
	default:
		return DelimNone
	}
}

// Tokenize is a convenience wrapper lexing source into its top-level tokens
func Tokenize(source string, logger *zap.Logger) ([]Token, error) {
	root, err := NewLexer(source, logger).Tokenize()
	if err != nil {
		return nil, err
	}
	return root.Children, nil
}
