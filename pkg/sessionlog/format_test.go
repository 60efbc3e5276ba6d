package sessionlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

func TestRenderHeader(t *testing.T) {
	meta := Metadata{
		ScriptPath: "/opt/tools/deploy",
		User:       "CORP\\alice",
		Host:       "build-01",
		OSInfo:     "Debian GNU/Linux 12",
		Arch:       "amd64",
	}

	header := renderHeader(meta, testStart)
	lines := strings.Split(header, "\n")

	assert.Equal(t, border, lines[0])
	assert.Equal(t, "Script fullname          : /opt/tools/deploy", lines[1])
	assert.Equal(t, "When generated           : 2024-01-01 10:00:00", lines[2])
	assert.Equal(t, "Current user             : CORP\\alice", lines[3])
	assert.Equal(t, "Current computer         : build-01", lines[4])
	assert.Equal(t, "Operating System         : Debian GNU/Linux 12", lines[5])
	assert.Equal(t, "OS Architecture          : amd64", lines[6])
	assert.Equal(t, border, lines[7])
	assert.Equal(t, "", lines[8])
}

func TestRenderFooter(t *testing.T) {
	sum := summarize(testStart, testStart.Add(30*time.Second))
	footer := renderFooter(sum)
	lines := strings.Split(footer, "\n")

	assert.Equal(t, "", lines[0])
	assert.Equal(t, border, lines[1])
	assert.Equal(t, "End time                 : 2024-01-01 10:00:30", lines[2])
	assert.Equal(t, "Total duration (seconds) : 30", lines[3])
	assert.Equal(t, "Total duration (minutes) : 0.5", lines[4])
	assert.Equal(t, border, lines[5])
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		seconds int64
		minutes float64
	}{
		{"thirty seconds", 30 * time.Second, 30, 0.5},
		{"ninety seconds", 90 * time.Second, 90, 1.5},
		{"hundred seconds rounds minutes", 100 * time.Second, 100, 1.67},
		{"sub-second floors to zero", 900 * time.Millisecond, 0, 0.02},
		{"floor keeps partial seconds out", 30*time.Second + 700*time.Millisecond, 30, 0.51},
		{"one hour", time.Hour, 3600, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := summarize(testStart, testStart.Add(tt.elapsed))
			assert.Equal(t, tt.seconds, sum.Seconds)
			assert.InDelta(t, tt.minutes, sum.Minutes, 0.0001)
		})
	}
}

func TestExtractStartTime(t *testing.T) {
	t.Run("recovers timestamp from rendered header", func(t *testing.T) {
		header := renderHeader(Metadata{User: "u", Host: "h"}, testStart)

		got, err := ExtractStartTime(strings.NewReader(header))
		require.NoError(t, err)
		assert.True(t, got.Equal(testStart))
	})

	t.Run("round-trips the exact timestamp string", func(t *testing.T) {
		header := renderHeader(Metadata{}, testStart)

		got, err := ExtractStartTime(strings.NewReader(header))
		require.NoError(t, err)
		assert.Equal(t, testStart.Format(TimeLayout), got.Format(TimeLayout))
	})

	t.Run("missing header is a format error", func(t *testing.T) {
		_, err := ExtractStartTime(strings.NewReader("some\nrandom\nlines\n"))
		require.Error(t, err)
		assert.True(t, IsFormatError(err))
		assert.Contains(t, err.Error(), "cannot recover start date from header")
	})

	t.Run("label spacing is part of the contract", func(t *testing.T) {
		// One space short: must not match.
		good := fieldLine("When generated", testStart.Format(TimeLayout))
		bad := strings.Replace(good, " : ", ": ", 1)

		_, err := ExtractStartTime(strings.NewReader(bad + "\n"))
		assert.True(t, IsFormatError(err))
	})

	t.Run("does not scan past the head of the file", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < headerScanLimit+5; i++ {
			b.WriteString("filler line\n")
		}
		b.WriteString(fieldLine("When generated", testStart.Format(TimeLayout)) + "\n")

		_, err := ExtractStartTime(strings.NewReader(b.String()))
		assert.True(t, IsFormatError(err))
	})
}

func TestParseEntry(t *testing.T) {
	t.Run("round-trips a rendered entry", func(t *testing.T) {
		e := Entry{Timestamp: testStart, Category: WAR, Message: "disk low"}
		line := renderEntry(e)
		assert.Equal(t, "2024-01-01 10:00:00; WAR; disk low", line)

		got, ok := ParseEntry(line)
		require.True(t, ok)
		assert.Equal(t, WAR, got.Category)
		assert.Equal(t, "disk low", got.Message)
		assert.True(t, got.Timestamp.Equal(testStart))
	})

	t.Run("message may contain semicolons", func(t *testing.T) {
		line := renderEntry(Entry{Timestamp: testStart, Category: INF, Message: "a; b; c"})
		got, ok := ParseEntry(line)
		require.True(t, ok)
		assert.Equal(t, "a; b; c", got.Message)
	})

	t.Run("non-entry lines do not parse", func(t *testing.T) {
		for _, line := range []string{
			border,
			"",
			"When generated           : 2024-01-01 10:00:00",
			"2024-01-01 10:00:00; XXX; message",
		} {
			_, ok := ParseEntry(line)
			assert.False(t, ok, "line %q should not parse", line)
		}
	})
}

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain message untouched", "hello", "hello"},
		{"newline collapsed", "a\nb", "a b"},
		{"crlf collapsed to one space", "a\r\nb", "a b"},
		{"run of breaks collapsed", "a\n\n\nb", "a b"},
		{"semicolons kept", "a; b", "a; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeMessage(tt.in))
		})
	}
}

func TestSplitField(t *testing.T) {
	label, value, ok := splitField(fieldLine("Current computer", "build-01"))
	require.True(t, ok)
	assert.Equal(t, "Current computer", label)
	assert.Equal(t, "build-01", value)

	_, _, ok = splitField("short line")
	assert.False(t, ok)
}
