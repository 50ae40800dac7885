package highlight

import (
	"go/ast"
	"go/token"
	"sort"
)

// Range is a half-open byte range [Start, End) of the source
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered
func (r Range) Len() int {
	return r.End - r.Start
}

// Ranges maps each category to the byte ranges recorded for it. Ranges of
// different categories, and of the same category, may nest and overlap.
type Ranges map[Category][]Range

// Add records r under c
func (rs Ranges) Add(c Category, r Range) {
	rs[c] = append(rs[c], r)
}

// merge appends every range of other
func (rs Ranges) merge(other Ranges) {
	for c, list := range other {
		rs[c] = append(rs[c], list...)
	}
}

// sort orders each category's ranges by start, longer first
func (rs Ranges) sort() {
	for _, list := range rs {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Start != list[j].Start {
				return list[i].Start < list[j].Start
			}
			return list[i].End > list[j].End
		})
	}
}

// Visit walks node and records the byte range of every block, declaration,
// statement, expression, type, path, identifier, label and literal it
// contains. Offsets are file offsets minus base.
func Visit(fset *token.FileSet, node ast.Node, base int) Ranges {
	v := newVisitor(fset, base)
	if f, ok := node.(*ast.File); ok {
		v.comments(f.Comments)
	}
	v.walk(node)
	v.ranges.sort()
	return v.ranges
}

// visitor classifies nodes during a single pre-order walk. A parent marks
// the children it holds in type position before they are visited.
type visitor struct {
	fset   *token.FileSet
	base   int
	ranges Ranges

	types     map[ast.Node]bool // nodes in type position
	names     map[ast.Node]bool // binding identifiers and package qualifiers
	labels    map[ast.Node]bool // statement labels
	signature map[ast.Node]bool // function types of declarations and literals
}

func newVisitor(fset *token.FileSet, base int) *visitor {
	return &visitor{
		fset:      fset,
		base:      base,
		ranges:    make(Ranges),
		types:     make(map[ast.Node]bool),
		names:     make(map[ast.Node]bool),
		labels:    make(map[ast.Node]bool),
		signature: make(map[ast.Node]bool),
	}
}

func (v *visitor) walk(root ast.Node) {
	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if _, ok := n.(*ast.CommentGroup); ok {
			return false
		}
		v.markChildren(n)
		v.classify(n)
		return true
	})
}

// comments records every comment of a file
func (v *visitor) comments(groups []*ast.CommentGroup) {
	for _, g := range groups {
		for _, c := range g.List {
			v.add(CategoryComment, c)
		}
	}
}

func (v *visitor) add(c Category, n ast.Node) {
	if !n.Pos().IsValid() || !n.End().IsValid() {
		return
	}
	r := Range{
		Start: v.fset.Position(n.Pos()).Offset - v.base,
		End:   v.fset.Position(n.End()).Offset - v.base,
	}
	if r.Start < 0 || r.Start >= r.End {
		return
	}
	v.ranges.Add(c, r)
}

func (v *visitor) markType(n ast.Node) {
	if n != nil {
		v.types[n] = true
	}
}

func (v *visitor) markNames(idents []*ast.Ident) {
	for _, id := range idents {
		v.names[id] = true
	}
}

// markChildren records which children of n sit in type, name or label position
func (v *visitor) markChildren(n ast.Node) {
	inType := v.types[n]

	switch x := n.(type) {
	case *ast.File:
		v.names[x.Name] = true
	case *ast.SelectorExpr:
		v.names[x.Sel] = true
	case *ast.FuncDecl:
		v.names[x.Name] = true
		v.signature[x.Type] = true
	case *ast.FuncLit:
		v.signature[x.Type] = true
	case *ast.Field:
		v.markNames(x.Names)
		v.markType(x.Type)
	case *ast.TypeSpec:
		v.names[x.Name] = true
		v.markType(x.Type)
	case *ast.ValueSpec:
		v.markNames(x.Names)
		if x.Type != nil {
			v.markType(x.Type)
		}
	case *ast.ImportSpec:
		if x.Name != nil {
			v.names[x.Name] = true
		}
	case *ast.LabeledStmt:
		v.labels[x.Label] = true
	case *ast.BranchStmt:
		if x.Label != nil {
			v.labels[x.Label] = true
		}
	case *ast.CompositeLit:
		if x.Type != nil {
			v.markType(x.Type)
		}
	case *ast.TypeAssertExpr:
		if x.Type != nil {
			v.markType(x.Type)
		}
	case *ast.CallExpr:
		if fn, ok := x.Fun.(*ast.Ident); ok && (fn.Name == "new" || fn.Name == "make") && len(x.Args) > 0 {
			v.markType(x.Args[0])
		}
	case *ast.ArrayType:
		v.markType(x.Elt)
	case *ast.MapType:
		v.markType(x.Key)
		v.markType(x.Value)
	case *ast.ChanType:
		v.markType(x.Value)
	case *ast.Ellipsis:
		if x.Elt != nil {
			v.markType(x.Elt)
		}
	}

	if !inType {
		return
	}
	switch x := n.(type) {
	case *ast.StarExpr:
		v.markType(x.X)
	case *ast.ParenExpr:
		v.markType(x.X)
	case *ast.IndexExpr:
		v.markType(x.X)
		v.markType(x.Index)
	case *ast.IndexListExpr:
		v.markType(x.X)
		for _, idx := range x.Indices {
			v.markType(idx)
		}
	case *ast.SelectorExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			v.names[id] = true
		}
	case *ast.BinaryExpr:
		v.markType(x.X)
		v.markType(x.Y)
	case *ast.UnaryExpr:
		v.markType(x.X)
	}
}

// classify records the categories of n itself
func (v *visitor) classify(n ast.Node) {
	switch x := n.(type) {
	case *ast.BlockStmt:
		v.add(CategoryBlock, x)
		return
	case *ast.BadStmt, *ast.BadDecl, *ast.BadExpr:
		return
	case ast.Stmt:
		v.add(CategoryStmt, x)
		return
	case ast.Decl:
		v.add(CategoryDecl, x)
		return
	case *ast.Ident:
		v.classifyIdent(x)
		return
	}

	expr, ok := n.(ast.Expr)
	if !ok || v.signature[n] {
		return
	}

	switch x := expr.(type) {
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		v.add(CategoryType, x)
		return
	case *ast.BasicLit:
		v.add(CategoryLiteral, x)
	case *ast.SelectorExpr:
		if _, ok := x.X.(*ast.Ident); ok {
			v.add(CategoryPath, x)
		}
	case *ast.KeyValueExpr:
		return
	}

	if v.types[n] {
		v.add(CategoryType, expr)
	} else {
		v.add(CategoryExpr, expr)
	}
}

func (v *visitor) classifyIdent(id *ast.Ident) {
	if v.labels[id] {
		v.add(CategoryLabel, id)
		return
	}
	v.add(CategoryIdent, id)
	if v.names[id] {
		return
	}
	if v.types[id] {
		v.add(CategoryType, id)
		v.add(CategoryPath, id)
		return
	}
	v.add(CategoryExpr, id)
}
