package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ok.sh")
	require.Nil(t, os.WriteFile(script, []byte("  echo one  \n\nfalse"), 0644))

	t.Run("opens file", func(t *testing.T) {
		s, out := newTestSession("from stdin\n", WithInteractive(true))
		defer s.Close()

		require.Nil(t, s.LoadInputFile(script))
		assert.False(t, s.Interactive)
		assert.Empty(t, out.String())

		var lines []string
		for {
			line, _, err := s.ReadLine()
			if err == ErrEOF {
				break
			}
			require.Nil(t, err)
			lines = append(lines, line)
		}
		assert.Equal(t, []string{"echo one", "", "false"}, lines)
	})

	t.Run("missing", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.sh")
		s, out := newTestSession("", WithInteractive(true))

		err := s.LoadInputFile(missing)

		code, ok := ExitCode(err)
		assert.True(t, ok)
		assert.Equal(t, 127, code)
		assert.Equal(t, 127, s.LastReturn)
		assert.False(t, s.Interactive, "interactive is cleared even on failure")
		assert.Equal(t, "rash: no such file or directory: "+missing+"\n", out.String())
	})

	t.Run("directory", func(t *testing.T) {
		s, out := newTestSession("")

		err := s.LoadInputFile(dir)

		code, ok := ExitCode(err)
		assert.True(t, ok)
		assert.Equal(t, 21, code) // EISDIR
		assert.Contains(t, out.String(), "unexpected errno 21\n  err: ")
	})

	t.Run("replaced once", func(t *testing.T) {
		s, _ := newTestSession("")
		defer s.Close()

		require.Nil(t, s.LoadInputFile(script))
		assert.Panics(t, func() {
			s.LoadInputFile(script)
		})
	})
}
