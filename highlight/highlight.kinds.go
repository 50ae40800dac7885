package highlight

import (
	"strings"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-repeatfor/internal"
)

// Kind is a grammar production a source fragment can be parsed as
type Kind string

// Parse kinds, in the order ParseAs tries them by default
const (
	KindFile  Kind = "file"
	KindDecl  Kind = "decl"
	KindBlock Kind = "block"
	KindStmt  Kind = "stmt"
	KindExpr  Kind = "expr"
	KindType  Kind = "type"
)

// Category is a grammar category recorded for a byte range
type Category string

// Categories, in priority order. Later categories are narrower and win when
// ranges overlap in flat renderings.
const (
	CategoryBlock   Category = "block"
	CategoryDecl    Category = "decl"
	CategoryStmt    Category = "stmt"
	CategoryExpr    Category = "expr"
	CategoryType    Category = "type"
	CategoryPath    Category = "path"
	CategoryIdent   Category = "ident"
	CategoryLabel   Category = "label"
	CategoryLiteral Category = "literal"
	CategoryComment Category = "comment"
)

var allKinds = []Kind{KindFile, KindDecl, KindBlock, KindStmt, KindExpr, KindType}

var allCategories = []Category{
	CategoryBlock, CategoryDecl, CategoryStmt, CategoryExpr, CategoryType,
	CategoryPath, CategoryIdent, CategoryLabel, CategoryLiteral, CategoryComment,
}

// Kinds returns every parse kind in default order
func Kinds() []Kind {
	return append([]Kind(nil), allKinds...)
}

// Categories returns every category in priority order
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

// priority returns the position of c in Categories, or len when unknown
func (c Category) priority() int {
	for i, x := range allCategories {
		if x == c {
			return i
		}
	}
	return len(allCategories)
}

// ParseKind converts a name into a Kind. Unknown names fail with a
// "did you mean" hint.
func ParseKind(name string) (Kind, error) {
	names := make([]string, len(allKinds))
	for i, k := range allKinds {
		if string(k) == name {
			return k, nil
		}
		names[i] = string(k)
	}
	msg := ErrMsgUnknownKind + internal.FormatSuggestions(internal.FindSimilarStrings(name, names, 2))
	return "", cuserr.NewValidationError(ErrCodeHighlight, msg).
		WithMetadata(MetaKeyKind, name)
}

// ParseKinds parses a comma separated list such as "expr,type". An empty
// list yields every kind.
func ParseKinds(list string) ([]Kind, error) {
	if strings.TrimSpace(list) == "" {
		return Kinds(), nil
	}
	var kinds []Kind
	for _, name := range strings.Split(list, ",") {
		k, err := ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// ParseCategory converts a name into a Category
func ParseCategory(name string) (Category, error) {
	names := make([]string, len(allCategories))
	for i, c := range allCategories {
		if string(c) == name {
			return c, nil
		}
		names[i] = string(c)
	}
	msg := ErrMsgUnknownCat + internal.FormatSuggestions(internal.FindSimilarStrings(name, names, 2))
	return "", cuserr.NewValidationError(ErrCodeHighlight, msg).
		WithMetadata(MetaKeyKind, name)
}
