package sessionlog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	t.Run("message without path", func(t *testing.T) {
		err := &FormatError{Reason: "cannot recover start date from header"}
		assert.Equal(t, "session log format: cannot recover start date from header", err.Error())
	})

	t.Run("message with path", func(t *testing.T) {
		err := &FormatError{Path: "/tmp/s.log", Reason: "cannot recover start date from header"}
		assert.Contains(t, err.Error(), "/tmp/s.log")
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		var err error = &FormatError{Reason: "x"}
		wrapped := fmt.Errorf("outer: %w", err)

		assert.True(t, IsFormatError(wrapped))
		assert.False(t, IsFormatError(errors.New("plain")))
		assert.False(t, IsFormatError(nil))
	})
}
