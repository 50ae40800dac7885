package highlight

// Error codes
const (
	ErrCodeHighlight = "REPEATFOR_HIGHLIGHT"
)

// Error message constants
const (
	ErrMsgUnknownKind    = "unknown parse kind"
	ErrMsgUnknownCat     = "unknown category"
	ErrMsgNoKinds        = "no parse kinds given"
	ErrMsgNoKindMatched  = "source does not parse as any of the given kinds"
	ErrMsgNoDeclarations = "no declarations"
	ErrMsgNotSingleDecl  = "trailing declarations after the parsed fragment"
	ErrMsgNotBlock       = "not a single block"
	ErrMsgNotType        = "not a single type expression"
	ErrMsgNoStatements   = "no statements"
)

// Error metadata keys
const (
	MetaKeyKind  = "kind"
	MetaKeyKinds = "kinds"
)

// Wrappers that turn a fragment into a parseable file. The fragment starts
// right after the prefix, so offsets are shifted back by len(prefix).
const (
	wrapPackage     = "package p\n"
	wrapBlockPrefix = wrapPackage + "func _() "
	wrapStmtPrefix  = wrapPackage + "func _() {\n"
	wrapStmtSuffix  = "\n}"
	wrapTypePrefix  = wrapPackage + "type _ "
)

// HTML fragments emitted by RenderHTML
const (
	htmlSpanOpen  = `<span data-frag="%s" class="%s">`
	htmlSpanClose = "</span>"
)

// Default theme colors (ANSI palette indexes)
const (
	colorType    = "6"
	colorLabel   = "5"
	colorLiteral = "2"
	colorComment = "8"
)
