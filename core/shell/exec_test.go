package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	t.Run("true then false", func(t *testing.T) {
		s, out := newTestSession("")

		s.Execute("true")
		assert.Equal(t, 0, s.LastReturn)
		s.Execute("false")
		assert.Equal(t, 1, s.LastReturn)
		assert.Empty(t, out.String())
	})

	t.Run("command not found", func(t *testing.T) {
		s, out := newTestSession("")

		s.Execute("nonexistent-cmd-xyz arg1")

		assert.Equal(t, 127, s.LastReturn)
		assert.Equal(t, "rash: command not found: nonexistent-cmd-xyz\n", out.String())
	})

	t.Run("empty command name", func(t *testing.T) {
		s, out := newTestSession("")

		s.Execute("")

		assert.Equal(t, 127, s.LastReturn)
		assert.Equal(t, "rash: command not found: \n", out.String())
	})

	t.Run("path not found", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		s, out := newTestSession("")

		s.Execute(missing)

		assert.Equal(t, 127, s.LastReturn)
		assert.Equal(t, "rash: command not found: "+missing+"\n", out.String())
	})

	t.Run("permission denied", func(t *testing.T) {
		notExecutable := filepath.Join(t.TempDir(), "script")
		require.Nil(t, os.WriteFile(notExecutable, []byte("#!/bin/sh\n"), 0644))
		s, out := newTestSession("")

		s.Execute(notExecutable)

		assert.Equal(t, 13, s.LastReturn) // EACCES
		assert.Contains(t, out.String(), "unexpected errno 13\n  err: ")
	})

	t.Run("exit code kept verbatim", func(t *testing.T) {
		s, _ := newTestSession("")

		s.Execute(helperLine(t, "exit", "42"))

		assert.Equal(t, 42, s.LastReturn)
	})

	t.Run("signal maps to 128+N", func(t *testing.T) {
		s, _ := newTestSession("")

		s.Execute(helperLine(t, "kill"))

		assert.Equal(t, 128+9, s.LastReturn)
	})

	t.Run("signal base configurable", func(t *testing.T) {
		s, _ := newTestSession("")
		s.Config.SignalStatusBase = 0

		s.Execute(helperLine(t, "kill"))

		assert.Equal(t, 9, s.LastReturn)
	})

	t.Run("consecutive spaces pass empty arguments", func(t *testing.T) {
		s, out := newTestSession("")

		s.Execute(helperLine(t, "args", "a", "", "b"))

		assert.Equal(t, 0, s.LastReturn)
		assert.Equal(t, "[\"a\" \"\" \"b\"]\n", out.String())
	})

	t.Run("shlex splitting", func(t *testing.T) {
		s, out := newTestSession("")
		s.split = ShlexSplit

		s.Execute(helperLine(t, "args", `"a b"`, "c"))

		assert.Equal(t, 0, s.LastReturn)
		assert.Equal(t, "[\"a b\" \"c\"]\n", out.String())
	})

	t.Run("shlex syntax error", func(t *testing.T) {
		s, out := newTestSession("")
		s.split = ShlexSplit

		s.Execute(`echo "oops`)

		assert.Equal(t, 2, s.LastReturn)
		assert.Contains(t, out.String(), "rash: syntax error: ")
	})

	t.Run("parameters untouched", func(t *testing.T) {
		s, _ := newTestSession("")
		_, _, err := s.HandleArgs([]string{"rash", "-s", "x", "y"})
		require.Nil(t, err)
		before := s.Params.Environ()

		for _, line := range []string{"true", "false", "nonexistent-cmd-xyz a b", "help", helperLine(t, "exit", "3")} {
			s.Execute(line)
		}

		assert.Equal(t, before, s.Params.Environ())
	})
}
