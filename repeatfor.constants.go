package repeatfor

import (
	"time"

	"github.com/itsatony/go-repeatfor/internal"
)

// Version is the library version. It is part of every expansion store key,
// so upgrading invalidates cached output.
const Version = "0.4.0"

// Engine defaults
const (
	DefaultMacroName = "repeatfor"
	DefaultMaxDepth  = 16
	DefaultHeader    = "// Code generated by repeatfor. DO NOT EDIT."
)

// Invocation keywords and markers, re-exported for documentation and tooling
const (
	KeywordFor      = internal.KeywordFor
	KeywordIn       = internal.KeywordIn
	CharConcat      = internal.CharConcat
	CharRepeatOpen  = internal.CharRepeatOpen
	CharRepeatClose = internal.CharRepeatClose
	CharBang        = internal.CharBang
	CharEquals      = '='
)

// Format mode names
const (
	FormatNameAuto   = "auto"
	FormatNameAlways = "always"
	FormatNameNever  = "never"
)

// Inspection mode names
const (
	ModeNameExplicit = "explicit"
	ModeNameImplicit = "implicit"
)

// Store driver names
const (
	StoreDriverNameMemory     = "memory"
	StoreDriverNameFilesystem = "filesystem"
	StoreDriverNamePostgres   = "postgres"
)

// Memory store defaults
const (
	MemoryStoreDefaultTTL        = 24 * time.Hour
	MemoryStoreDefaultMaxEntries = 1000
	MemoryStoreParamTTL          = "ttl"
	MemoryStoreParamMaxEntries   = "max_entries"
)

// Filesystem store constants
const (
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
	FilesystemEntrySuffix     = ".json"
	FilesystemTempPattern     = ".tmp-*"
)

// PostgreSQL store driver configuration defaults
const (
	PostgresTablePrefix            = "repeatfor_"
	PostgresDefaultMaxOpenConns    = 10
	PostgresDefaultMaxIdleConns    = 2
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Configuration file constants
const (
	ConfigFileName         = ".repeatfor.yaml"
	ConfigLogLevelDebug    = "debug"
	ConfigLogLevelInfo     = "info"
	ConfigLogLevelWarn     = "warn"
	ConfigLogLevelError    = "error"
	ConfigLogFormatConsole = "console"
	ConfigLogFormatJSON    = "json"
	ConfigDefaultLogLevel  = ConfigLogLevelInfo
	ConfigDefaultLogFormat = ConfigLogFormatConsole
)

// Configuration field names reported in validation errors
const (
	ConfigFieldMacro       = "macro"
	ConfigFieldFormat      = "format"
	ConfigFieldMaxDepth    = "max_depth"
	ConfigFieldLogLevel    = "log.level"
	ConfigFieldLogFormat   = "log.format"
	ConfigFieldStoreDriver = "store.driver"
)

// Log message constants
const (
	LogMsgEngineCreated   = "engine created"
	LogMsgExpandStart     = "expanding invocation"
	LogMsgExpandEnd       = "invocation expanded"
	LogMsgSourceStart     = "expanding source"
	LogMsgSourceEnd       = "source expanded"
	LogMsgMacroCallsFound = "macro calls found"
	LogMsgFormatFallback  = "formatting failed, keeping unformatted output"
	LogMsgStoreHit        = "expansion store hit"
	LogMsgStoreMiss       = "expansion store miss"
	LogMsgStoreFailed     = "expansion store operation failed"
	LogMsgStoreEvicted    = "expansion evicted"
	LogMsgMigrationRun    = "applying store migration"
)

// Log field names
const (
	LogFieldName        = "name"
	LogFieldPass        = "pass"
	LogFieldCalls       = "calls"
	LogFieldInvocations = "invocations"
	LogFieldKey         = "key"
	LogFieldFormat      = "format"
	LogFieldMacro       = "macro"
	LogFieldMaxDepth    = "max_depth"
	LogFieldVersion     = "version"
	LogFieldBytes       = "bytes"
	LogFieldCount       = "count"
)

// Error metadata keys
const (
	MetaKeyKind     = internal.MetaKeyKind
	MetaKeyLine     = internal.MetaKeyLine
	MetaKeyColumn   = internal.MetaKeyColumn
	MetaKeyOffset   = internal.MetaKeyOffset
	MetaKeyExpected = internal.MetaKeyExpected
	MetaKeyActual   = internal.MetaKeyActual
	MetaKeyEntry    = internal.MetaKeyEntry
	MetaKeySource   = "source"
	MetaKeyPass     = "pass"
	MetaKeyMaxDepth = "max_depth"
	MetaKeyValue    = "value"
	MetaKeyField    = "field"
)

// Error code constants for categorization
const (
	ErrCodeStructural = internal.ErrCodeStructural
	ErrCodeRender     = internal.ErrCodeRender
	ErrCodeEngine     = "REPEATFOR_ENGINE"
	ErrCodeConfig     = "REPEATFOR_CONFIG"
)

// Error message constants - engine
const (
	ErrMsgDepthExceeded   = "macro expansion did not settle within the maximum depth"
	ErrMsgFormatFailed    = "expanded output is not valid Go source"
	ErrMsgMacroCallSyntax = "macro call must be followed by a parenthesized argument"
	ErrMsgInvalidMacro    = "macro name must be a Go identifier"
	ErrMsgInvalidMaxDepth = "max depth must be at least 1"
	ErrMsgInvalidFormat   = "unknown format mode"
)

// Error message constants - configuration
const (
	ErrMsgConfigRead     = "failed to read configuration file"
	ErrMsgConfigParse    = "failed to parse configuration"
	ErrMsgInvalidLevel   = "unknown log level"
	ErrMsgInvalidLogForm = "unknown log format"
	ErrMsgUnknownDriver  = "unknown store driver"
)

// Error message constants - store
const (
	ErrMsgNilStoreDriver          = "store driver is nil"
	ErrMsgDriverAlreadyRegistered = "store driver already registered"
	ErrMsgStoreDriverNotFound     = "store driver not found"
	ErrMsgStoreClosed             = "store is closed"
	ErrMsgExpansionNotFound       = "expansion not found"
	ErrMsgInvalidKey              = "invalid expansion key"
	ErrMsgNilExpansion            = "expansion is nil"
	ErrMsgInvalidStoreRoot        = "store root directory is empty"
	ErrMsgCreateStoreDir          = "failed to create store directory"
	ErrMsgReadExpansion           = "failed to read expansion"
	ErrMsgWriteExpansion          = "failed to write expansion"
	ErrMsgDeleteExpansion         = "failed to delete expansion"
	ErrMsgMarshalExpansion        = "failed to marshal expansion"
	ErrMsgUnmarshalExpansion      = "failed to unmarshal expansion"
	ErrMsgInvalidStoreSpec        = "store spec must be driver or driver:dsn"
)

// Error message constants - PostgreSQL store
const (
	ErrMsgPostgresEmptyConnString  = "PostgreSQL connection string is empty"
	ErrMsgPostgresConnectionFailed = "failed to connect to PostgreSQL"
	ErrMsgPostgresQueryFailed      = "PostgreSQL query failed"
	ErrMsgPostgresMigrationFailed  = "PostgreSQL migration failed"
	ErrMsgPostgresAlreadyClosed    = "PostgreSQL store is already closed"
)
