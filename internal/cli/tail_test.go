package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFollower(t *testing.T) {
	t.Run("holds a partial line until it completes", func(t *testing.T) {
		src := &bytes.Buffer{}
		out := &bytes.Buffer{}
		lf := &lineFollower{r: src}

		src.WriteString("2026-08-30 10:00:00; INF; first ")
		require.NoError(t, lf.emit(out))
		assert.Empty(t, out.String())

		src.WriteString("half joined\n")
		require.NoError(t, lf.emit(out))
		assert.Contains(t, out.String(), "first half joined")
		assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	})

	t.Run("emits every complete line in a chunk", func(t *testing.T) {
		src := &bytes.Buffer{}
		out := &bytes.Buffer{}
		lf := &lineFollower{r: src}

		src.WriteString("2026-08-30 10:00:00; INF; one\n2026-08-30 10:00:01; WAR; two\ntail")
		require.NoError(t, lf.emit(out))
		assert.Contains(t, out.String(), "one")
		assert.Contains(t, out.String(), "two")
		assert.NotContains(t, out.String(), "tail")
	})

	t.Run("finish flushes the leftover fragment", func(t *testing.T) {
		src := &bytes.Buffer{}
		out := &bytes.Buffer{}
		lf := &lineFollower{r: src}

		src.WriteString("no trailing newline")
		require.NoError(t, lf.emit(out))
		assert.Empty(t, out.String())

		lf.finish(out)
		assert.Contains(t, out.String(), "no trailing newline")

		// A second finish must not repeat the fragment.
		lf.finish(out)
		assert.Equal(t, 1, strings.Count(out.String(), "no trailing newline"))
	})
}
