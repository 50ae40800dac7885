package main

// CLI metadata
const (
	CLIName        = "repeatfor"
	CLIDescription = "Expand repeatfor! macro calls in Go source files"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input and output indicators
const (
	InputSourceStdin      = "-"
	OutputStdout          = "-"
	StdinDisplayName      = "<stdin>"
	InvocationDisplayName = "<invocation>"
	FilePermissions       = 0644
	PromptPlaceholder     = "Go code to highlight"
	PromptLabel           = "code> "
	PromptHint            = "enter to highlight, esc to cancel"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatANSI = "ansi"
	OutputFormatHTML = "html"
)

// Error messages - ALL must be constants
const (
	ErrMsgUsage             = "invalid usage"
	ErrMsgLoadConfigFailed  = "failed to load configuration"
	ErrMsgLoggerFailed      = "failed to build logger"
	ErrMsgOpenStoreFailed   = "failed to open expansion store"
	ErrMsgEngineFailed      = "invalid engine settings"
	ErrMsgReadInputFailed   = "failed to read input"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgExpandFailed      = "expansion failed"
	ErrMsgInspectFailed     = "inspection failed"
	ErrMsgHighlightFailed   = "highlighting failed"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
	ErrMsgCheckNeedsOutput  = "--check requires --output"
	ErrMsgOutOfDate         = "output is not up to date"
	ErrMsgPromptFailed      = "interactive prompt failed"
	ErrMsgPromptCancelled   = "prompt cancelled"
)

// Log messages
const (
	LogMsgConfigDefault = "configuration file not found, using defaults"
	LogMsgConfigLoaded  = "configuration loaded"
	LogMsgStoreClose    = "failed to close expansion store"
	LogMsgUpToDate      = "output is up to date"
	LogMsgWritten       = "output written"
	LogMsgHighlighted   = "fragment highlighted"
	LogMsgProfileStart  = "profiling started"
	LogMsgProfileStop   = "profiling stopped"
)

// Log field names
const (
	LogFieldPath        = "path"
	LogFieldKind        = "kind"
	LogFieldMode        = "mode"
	LogFieldDir         = "dir"
	LogFieldInvocations = "invocations"
	LogFieldCached      = "cached"
)

// Version output
const (
	VersionTextTemplate = "repeatfor version %s\nGo: %s\n"
)

// Format string constants
const (
	FmtErrorWithCause  = "%s: %v\n"
	FmtPositionedError = "%s:%d:%d: %s: %v\n"
	FmtNewline         = "\n"
	JSONIndent         = "  "
)
