package internal

// Keywords of the invocation surface
const (
	KeywordFor = "for"
	KeywordIn  = "in"
)

// Marker characters recognized by the template compiler
const (
	CharConcat      = '~'
	CharRepeatOpen  = '#'
	CharRepeatClose = '*'
	CharComma       = ','
	CharBang        = '!'
)

// Lexer character constants
const (
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
	CharFormFeed    = '\f'
	CharSlash       = '/'
	CharStar        = '*'
	CharBackslash   = '\\'
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharBacktick    = '`'
	CharUnderscore  = '_'
	CharDot         = '.'
)

// Delimiter characters
const (
	CharParenOpen    = '('
	CharParenClose   = ')'
	CharBracketOpen  = '['
	CharBracketClose = ']'
	CharBraceOpen    = '{'
	CharBraceClose   = '}'
)

// Display limits for String() output
const (
	MaxStringDisplayLength = 60
	TruncatedStringLength  = 57
	TruncationSuffix       = "..."
)

// Log message constants
const (
	LogMsgLexerCreated     = "lexer created"
	LogMsgTokenizerStart   = "starting tokenization"
	LogMsgTokenizerEnd     = "tokenization complete"
	LogMsgInvocationParsed = "invocation parsed"
	LogMsgCompileStart     = "compiling template"
	LogMsgCompileEnd       = "template compiled"
	LogMsgRendererCreated  = "renderer created"
	LogMsgRenderStart      = "starting render"
	LogMsgRenderEnd        = "render complete"
	LogMsgRepeatIteration  = "rendering repeat target"
	LogMsgNestedPassthru   = "passing nested repeat target through"
)

// Log field names
const (
	LogFieldSource      = "source_length"
	LogFieldTokens      = "token_count"
	LogFieldEntries     = "entry_count"
	LogFieldPlaceholder = "placeholder"
	LogFieldExplicit    = "explicit"
	LogFieldLine        = "line"
)

// Error metadata keys
const (
	MetaKeyKind       = "kind"
	MetaKeyLine       = "line"
	MetaKeyColumn     = "column"
	MetaKeyOffset     = "offset"
	MetaKeyExpected   = "expected"
	MetaKeyActual     = "actual"
	MetaKeyEntry      = "entry"
	MetaKeyNode       = "node"
	MetaKeySuggestion = "suggestion"
)

// Error kind values stored under MetaKeyKind
const (
	KindStructural               = "structural"
	KindMisplacedPlaceholder     = "misplaced_placeholder"
	KindInvalidSubstitutionShape = "invalid_substitution_shape"
)

// Error code constants for categorization
const (
	ErrCodeStructural = "REPEATFOR_STRUCTURAL"
	ErrCodeRender     = "REPEATFOR_RENDER"
)

// Error message constants - structural
const (
	ErrMsgUnterminatedString  = "unterminated string literal"
	ErrMsgUnterminatedRaw     = "unterminated raw string literal"
	ErrMsgUnterminatedRune    = "unterminated rune literal"
	ErrMsgUnterminatedComment = "unterminated block comment"
	ErrMsgUnbalancedClose     = "unexpected closing delimiter"
	ErrMsgUnclosedGroup       = "unclosed delimiter"
	ErrMsgMismatchedClose     = "mismatched closing delimiter"
	ErrMsgExpectedKeyword     = "expected keyword"
	ErrMsgExpectedPlaceholder = "expected placeholder identifier"
	ErrMsgKeywordPlaceholder  = "placeholder cannot be a keyword"
	ErrMsgExpectedBracket     = "expected bracketed substitution list"
	ErrMsgExpectedBrace       = "expected braced template body"
	ErrMsgUnexpectedTrailing  = "unexpected token after template body"
	ErrMsgEmptyEntry          = "empty substitution entry"
	ErrMsgInvalidEntry        = "substitution entry is not a type expression"
)

// Error message constants - render
const (
	ErrMsgMisplacedPlaceholder = "invalid position of repeat variable placeholder"
	ErrMsgInvalidShape         = "invalid type expression for identifier concatenation"
	ErrMsgUnknownNodeType      = "unknown template node type"
)
