package internal

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// withPosition attaches position metadata to a custom error
func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewStructuralError creates an error for malformed invocation syntax
func NewStructuralError(msg string, pos Position) *cuserr.CustomError {
	err := cuserr.NewValidationError(ErrCodeStructural, msg).
		WithMetadata(MetaKeyKind, KindStructural)
	return withPosition(err, pos)
}

// NewStructuralErrorWithCause creates a structural error wrapping an underlying cause
func NewStructuralErrorWithCause(msg string, pos Position, cause error) *cuserr.CustomError {
	err := cuserr.WrapStdError(cause, ErrCodeStructural, msg).
		WithMetadata(MetaKeyKind, KindStructural)
	return withPosition(err, pos)
}

// NewExpectedError creates a structural error describing an expected/actual mismatch
func NewExpectedError(msg, expected string, actual Token) *cuserr.CustomError {
	err := NewStructuralError(msg, actual.Pos).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyActual, describeToken(actual))
	if actual.Kind == TokenKindIdent {
		if hint := FindSimilarStrings(actual.Value, []string{expected}, 1); len(hint) > 0 {
			err = err.WithMetadata(MetaKeySuggestion, hint[0])
		}
	}
	return err
}

// NewMisplacedPlaceholderError creates an error for a marker used outside a repeat target
func NewMisplacedPlaceholderError(node Node) *cuserr.CustomError {
	err := cuserr.NewValidationError(ErrCodeRender, ErrMsgMisplacedPlaceholder).
		WithMetadata(MetaKeyKind, KindMisplacedPlaceholder).
		WithMetadata(MetaKeyNode, node.Type().String())
	return withPosition(err, node.Pos())
}

// NewInvalidShapeError creates an error for an entry without a final path segment
func NewInvalidShapeError(entry SubstitutionEntry, pos Position) *cuserr.CustomError {
	err := cuserr.NewValidationError(ErrCodeRender, ErrMsgInvalidShape).
		WithMetadata(MetaKeyKind, KindInvalidSubstitutionShape).
		WithMetadata(MetaKeyEntry, entry.String())
	return withPosition(err, pos)
}

// NewUnknownNodeError creates an internal error for a node type the renderer does not handle
func NewUnknownNodeError(node Node) *cuserr.CustomError {
	err := cuserr.NewInternalError(ErrCodeRender, errors.New(ErrMsgUnknownNodeType)).
		WithMetadata(MetaKeyNode, node.Type().String())
	return withPosition(err, node.Pos())
}

// describeToken returns a short description of a token for error metadata
func describeToken(t Token) string {
	if t.Kind == TokenKindGroup {
		return t.Delim.Open() + t.Delim.Close()
	}
	return t.Value
}
