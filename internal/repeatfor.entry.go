package internal

import (
	"go/ast"
	"go/parser"
	"strings"
)

// SubstitutionEntry is one value the placeholder is bound to during one
// iteration of a repeat target.
type SubstitutionEntry interface {
	// Tokens returns the entry's full token rendering (a fresh copy)
	Tokens() []Token
	// FinalSegment returns the last path segment of the entry as a plain
	// identifier; false when the entry is not a (possibly qualified) name
	FinalSegment() (string, bool)
	// Pos returns where the entry was written
	Pos() Position
	// String returns the entry's source text
	String() string
}

// TypeEntry is a substitution entry holding a Go type expression such as
// int, pkg.Widget or List[string].
type TypeEntry struct {
	tokens []Token
	text   string
	expr   ast.Expr
}

// ParseTypeEntry parses tokens as a Go type expression
func ParseTypeEntry(tokens []Token, pos Position) (*TypeEntry, error) {
	if len(tokens) == 0 {
		return nil, NewStructuralError(ErrMsgEmptyEntry, pos)
	}

	text := strings.TrimSpace(Print(tokens))
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, NewStructuralErrorWithCause(ErrMsgInvalidEntry, tokens[0].Pos, err).
			WithMetadata(MetaKeyEntry, text)
	}
	if !isTypeExpr(expr) {
		return nil, NewStructuralError(ErrMsgInvalidEntry, tokens[0].Pos).
			WithMetadata(MetaKeyEntry, text)
	}

	return &TypeEntry{
		tokens: tokens,
		text:   text,
		expr:   expr,
	}, nil
}

// Tokens returns a copy of the entry tokens
func (e *TypeEntry) Tokens() []Token {
	return CloneTokens(e.tokens)
}

// FinalSegment returns the trailing identifier of a named type
func (e *TypeEntry) FinalSegment() (string, bool) {
	return finalSegment(e.expr)
}

// Pos returns the position of the entry's first token
func (e *TypeEntry) Pos() Position {
	return e.tokens[0].Pos
}

// String returns the entry source text
func (e *TypeEntry) String() string {
	return e.text
}

// finalSegment extracts the last name of a path-like type expression
func finalSegment(expr ast.Expr) (string, bool) {
	switch x := expr.(type) {
	case *ast.Ident:
		return x.Name, true
	case *ast.SelectorExpr:
		return x.Sel.Name, true
	case *ast.IndexExpr:
		return finalSegment(x.X)
	case *ast.IndexListExpr:
		return finalSegment(x.X)
	default:
		return "", false
	}
}

// isTypeExpr reports whether expr has the syntactic shape of a type
func isTypeExpr(expr ast.Expr) bool {
	switch x := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := x.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypeExpr(x.X) && isTypeExpr(x.Index)
	case *ast.IndexListExpr:
		if !isTypeExpr(x.X) {
			return false
		}
		for _, idx := range x.Indices {
			if !isTypeExpr(idx) {
				return false
			}
		}
		return true
	case *ast.StarExpr:
		return isTypeExpr(x.X)
	case *ast.ParenExpr:
		return isTypeExpr(x.X)
	case *ast.ArrayType:
		return isTypeExpr(x.Elt)
	case *ast.MapType:
		return isTypeExpr(x.Key) && isTypeExpr(x.Value)
	case *ast.ChanType:
		return isTypeExpr(x.Value)
	case *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	default:
		return false
	}
}
