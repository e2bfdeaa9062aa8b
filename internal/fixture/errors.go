package fixture

import (
	"errors"
	"fmt"
)

// Load error codes.
const (
	ErrCodeGeneric         = "E001"
	ErrCodeReadFailed      = "E002"
	ErrCodeParseFailed     = "E003"
	ErrCodeUnsupportedType = "E004"
	ErrCodeNotFound        = "E005"
	ErrCodeSchema          = "E006"
)

// LoadError is returned by Load and Parse.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the LoadError code in err's chain, or "" if there is none.
func ErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
