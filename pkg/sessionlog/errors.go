package sessionlog

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned when Log or End is called on a handle whose
// session has already ended.
var ErrSessionClosed = errors.New("session is closed")

// FormatError reports that a session file does not carry the expected header
// or footer contract, for example when End runs against a file whose header
// was never written or was edited by hand.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("session log format: %s", e.Reason)
	}
	return fmt.Sprintf("session log format: %s: %s", e.Path, e.Reason)
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
