package protocol

import "fmt"

// Validation codes. Authored data that fails validation is logged and
// dropped at the transport boundary; nothing malformed reaches the engine.
const (
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrBadOp           = "E_BAD_OP"
	ErrBadSpriteKind   = "E_BAD_SPRITE_KIND"
	ErrBadActionKind   = "E_BAD_ACTION_KIND"
	ErrBadValue        = "E_BAD_VALUE"
	ErrMissingField    = "E_MISSING_FIELD"
)

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errf(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
