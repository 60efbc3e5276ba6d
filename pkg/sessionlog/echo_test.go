package sessionlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColorizeLine(t *testing.T) {
	entry := renderEntry(Entry{
		Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local),
		Category:  ERR,
		Message:   "boom",
	})

	// Styling must never lose the underlying text.
	assert.Contains(t, ColorizeLine(entry), "boom")
	assert.Contains(t, ColorizeLine(border), border)
	assert.Contains(t, ColorizeLine("When generated           : 2024-01-01 10:00:00"), "When generated")
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, styleInfo, styleFor(INF))
	assert.Equal(t, styleWarn, styleFor(WAR))
	assert.Equal(t, styleError, styleFor(ERR))
	// Unknown categories fall back to the block color.
	assert.Equal(t, styleInfo, styleFor(Category("???")))
}
