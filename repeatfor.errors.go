package repeatfor

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-repeatfor/internal"
)

// ErrorKind classifies expansion failures. It is stored as the "kind"
// metadata of every error the expansion pipeline returns.
type ErrorKind string

// Error kinds
const (
	ErrorKindNone                     ErrorKind = ""
	ErrorKindStructural               ErrorKind = internal.KindStructural
	ErrorKindMisplacedPlaceholder     ErrorKind = internal.KindMisplacedPlaceholder
	ErrorKindInvalidSubstitutionShape ErrorKind = internal.KindInvalidSubstitutionShape
	ErrorKindDepthExceeded            ErrorKind = "depth_exceeded"
	ErrorKindFormat                   ErrorKind = "format"
)

// KindOf returns the kind recorded on err, or ErrorKindNone when err carries
// no kind (including nil and errors from outside the pipeline).
func KindOf(err error) ErrorKind {
	var ce *cuserr.CustomError
	if !errors.As(err, &ce) {
		return ErrorKindNone
	}
	kind, ok := ce.GetMetadata(MetaKeyKind)
	if !ok {
		return ErrorKindNone
	}
	return ErrorKind(kind)
}

// PositionOf returns the source position recorded on err
func PositionOf(err error) (Position, bool) {
	var ce *cuserr.CustomError
	if !errors.As(err, &ce) {
		return Position{}, false
	}
	line, okLine := metaInt(ce, MetaKeyLine)
	column, okColumn := metaInt(ce, MetaKeyColumn)
	if !okLine || !okColumn {
		return Position{}, false
	}
	offset, _ := metaInt(ce, MetaKeyOffset)
	return Position{Offset: offset, Line: line, Column: column}, true
}

// IsStructural reports whether err is a malformed-invocation error
func IsStructural(err error) bool {
	return KindOf(err) == ErrorKindStructural
}

// IsMisplacedPlaceholder reports whether err is a placeholder used outside a repeat target
func IsMisplacedPlaceholder(err error) bool {
	return KindOf(err) == ErrorKindMisplacedPlaceholder
}

// IsInvalidSubstitutionShape reports whether err is an entry without a usable final segment
func IsInvalidSubstitutionShape(err error) bool {
	return KindOf(err) == ErrorKindInvalidSubstitutionShape
}

// IsDepthExceeded reports whether nested macro calls kept producing new calls
func IsDepthExceeded(err error) bool {
	return KindOf(err) == ErrorKindDepthExceeded
}

func metaInt(ce *cuserr.CustomError, key string) (int, bool) {
	raw, ok := ce.GetMetadata(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NewDepthExceededError creates an error for a source whose expansion kept
// producing macro calls after maxDepth passes
func NewDepthExceededError(name string, maxDepth int) error {
	return cuserr.NewValidationError(ErrCodeEngine, ErrMsgDepthExceeded).
		WithMetadata(MetaKeyKind, string(ErrorKindDepthExceeded)).
		WithMetadata(MetaKeySource, name).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(maxDepth))
}

// NewFormatError wraps a go/format failure
func NewFormatError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeEngine, ErrMsgFormatFailed).
		WithMetadata(MetaKeyKind, string(ErrorKindFormat)).
		WithMetadata(MetaKeySource, name)
}

// NewMacroCallError creates a structural error for `name!` without an argument group
func NewMacroCallError(macro string, pos Position) error {
	return internal.NewStructuralError(ErrMsgMacroCallSyntax, pos).
		WithMetadata(MetaKeyActual, macro+string(CharBang))
}

// NewConfigError creates a validation error for an option or config field
func NewConfigError(msg, field, value string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg).
		WithMetadata(MetaKeyField, field).
		WithMetadata(MetaKeyValue, value)
}

// withSource tags a pipeline error with the name of the file and the pass
// that produced it. Errors from elsewhere are returned unchanged.
func withSource(err error, name string, pass int) error {
	var ce *cuserr.CustomError
	if !errors.As(err, &ce) {
		return err
	}
	return ce.
		WithMetadata(MetaKeySource, name).
		WithMetadata(MetaKeyPass, strconv.Itoa(pass))
}
