package highlight

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/itsatony/go-cuserr"
)

// Shape errors for fragments that parse but are not of the requested kind
var (
	errNoDeclarations = errors.New(ErrMsgNoDeclarations)
	errNotSingleDecl  = errors.New(ErrMsgNotSingleDecl)
	errNotBlock       = errors.New(ErrMsgNotBlock)
	errNotType        = errors.New(ErrMsgNotType)
	errNoStatements   = errors.New(ErrMsgNoStatements)
)

// Result is the outcome of parsing a fragment as one kind
type Result struct {
	Kind   Kind   `json:"kind"`
	Ranges Ranges `json:"ranges"`
}

// ParseAs tries each kind in order and returns the ranges recorded for the
// first one that parses. When none does, the error joins every attempt.
func ParseAs(src string, kinds []Kind) (*Result, error) {
	if len(kinds) == 0 {
		return nil, cuserr.NewValidationError(ErrCodeHighlight, ErrMsgNoKinds)
	}

	var errs []error
	for _, kind := range kinds {
		ranges, err := parseKind(src, kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			continue
		}
		return &Result{Kind: kind, Ranges: ranges}, nil
	}

	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return nil, cuserr.WrapStdError(errors.Join(errs...), ErrCodeHighlight, ErrMsgNoKindMatched).
		WithMetadata(MetaKeyKinds, strings.Join(names, ","))
}

// Matching returns every kind in kinds that src parses as, in order
func Matching(src string, kinds []Kind) []Kind {
	var hits []Kind
	for _, kind := range kinds {
		if _, err := parseKind(src, kind); err == nil {
			hits = append(hits, kind)
		}
	}
	return hits
}

// parseKind parses src as one kind and collects its ranges
func parseKind(src string, kind Kind) (Ranges, error) {
	switch kind {
	case KindFile:
		return parseFile(src)
	case KindDecl:
		return parseDecl(src)
	case KindBlock:
		return parseBlock(src)
	case KindStmt:
		return parseStmt(src)
	case KindExpr:
		return parseExpr(src)
	case KindType:
		return parseType(src)
	default:
		return nil, cuserr.NewValidationError(ErrCodeHighlight, ErrMsgUnknownKind).
			WithMetadata(MetaKeyKind, string(kind))
	}
}

func parseFile(src string) (Ranges, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return Visit(fset, f, 0), nil
}

// parseWrapped parses prefix+src+suffix as a file
func parseWrapped(prefix, src, suffix string) (*token.FileSet, *ast.File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", prefix+src+suffix, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}
	return fset, f, nil
}

// collect visits nodes of a wrapped file and adds the comments that lie
// inside the fragment
func collect(fset *token.FileSet, f *ast.File, base int, nodes ...ast.Node) Ranges {
	ranges := make(Ranges)
	for _, n := range nodes {
		ranges.merge(Visit(fset, n, base))
	}
	v := newVisitor(fset, base)
	v.comments(f.Comments)
	ranges.merge(v.ranges)
	ranges.sort()
	return ranges
}

func parseDecl(src string) (Ranges, error) {
	fset, f, err := parseWrapped(wrapPackage, src, "")
	if err != nil {
		return nil, err
	}
	if len(f.Decls) == 0 {
		return nil, errNoDeclarations
	}
	nodes := make([]ast.Node, len(f.Decls))
	for i, d := range f.Decls {
		nodes[i] = d
	}
	return collect(fset, f, len(wrapPackage), nodes...), nil
}

func parseBlock(src string) (Ranges, error) {
	fset, f, err := parseWrapped(wrapBlockPrefix, src, "")
	if err != nil {
		return nil, err
	}
	if len(f.Decls) != 1 {
		return nil, errNotSingleDecl
	}
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return nil, errNotBlock
	}
	return collect(fset, f, len(wrapBlockPrefix), fn.Body), nil
}

func parseStmt(src string) (Ranges, error) {
	fset, f, err := parseWrapped(wrapStmtPrefix, src, wrapStmtSuffix)
	if err != nil {
		return nil, err
	}
	if len(f.Decls) != 1 {
		return nil, errNotSingleDecl
	}
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return nil, errNoStatements
	}
	// The closing brace must be the one from the suffix
	if fset.Position(fn.Body.Rbrace).Offset != len(wrapStmtPrefix)+len(src)+1 {
		return nil, errNotSingleDecl
	}
	if len(fn.Body.List) == 0 {
		return nil, errNoStatements
	}
	nodes := make([]ast.Node, len(fn.Body.List))
	for i, s := range fn.Body.List {
		nodes[i] = s
	}
	return collect(fset, f, len(wrapStmtPrefix), nodes...), nil
}

func parseExpr(src string) (Ranges, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return Visit(fset, expr, 0), nil
}

func parseType(src string) (Ranges, error) {
	fset, f, err := parseWrapped(wrapTypePrefix, src, "")
	if err != nil {
		return nil, err
	}
	if len(f.Decls) != 1 {
		return nil, errNotSingleDecl
	}
	gen, ok := f.Decls[0].(*ast.GenDecl)
	if !ok || gen.Tok != token.TYPE || len(gen.Specs) != 1 {
		return nil, errNotType
	}
	spec, ok := gen.Specs[0].(*ast.TypeSpec)
	if !ok || spec.Assign.IsValid() || spec.TypeParams != nil {
		return nil, errNotType
	}

	base := len(wrapTypePrefix)
	v := newVisitor(fset, base)
	v.markType(spec.Type)
	v.walk(spec.Type)
	v.comments(f.Comments)
	v.ranges.sort()
	return v.ranges, nil
}
