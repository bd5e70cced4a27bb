package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleArgs(t *testing.T) {
	cases := map[string]struct {
		argv            []string
		interactive     bool
		wantCommand     string
		wantOK          bool
		wantParams      []string
		wantMode        Mode
		wantInteractive bool
	}{
		"no args": {
			argv:       []string{"rash"},
			wantParams: []string{"0=rash"},
		},
		"empty argv": {
			argv:       nil,
			wantParams: []string{"0=rash"},
		},
		"keeps terminal detection": {
			argv:            []string{"/bin/rash"},
			interactive:     true,
			wantParams:      []string{"0=/bin/rash"},
			wantInteractive: true,
		},
		"command string": {
			argv:        []string{"rash", "-c", "echo hi"},
			interactive: true,
			wantCommand: "echo hi",
			wantOK:      true,
			wantParams:  []string{"0=rash"},
			wantMode:    ModeCommandString,
		},
		"command string renames $0": {
			argv:        []string{"rash", "-c", "echo hi", "myname", "a", "b"},
			wantCommand: "echo hi",
			wantOK:      true,
			wantParams:  []string{"0=myname", "1=a", "2=b"},
			wantMode:    ModeCommandString,
		},
		"command string options before command": {
			argv:        []string{"rash", "-c", "-x", "+e", "true"},
			wantCommand: "true",
			wantOK:      true,
			wantParams:  []string{"0=rash"},
			wantMode:    ModeCommandString,
		},
		"command string option after command is a name": {
			argv:        []string{"rash", "-c", "true", "-x", "-y"},
			wantCommand: "true",
			wantOK:      true,
			wantParams:  []string{"0=-x", "1=-y"},
			wantMode:    ModeCommandString,
		},
		"explicit stdin": {
			argv:       []string{"rash", "-s", "a", "b"},
			wantParams: []string{"0=rash", "1=a", "2=b"},
			wantMode:   ModeStdin,
		},
		"forced interactive": {
			argv:            []string{"rash", "-i", "a"},
			wantParams:      []string{"0=rash", "1=a"},
			wantMode:        ModeInteractive,
			wantInteractive: true,
		},
		"end of options first": {
			argv:       []string{"rash", "--", "-a", "+b"},
			wantParams: []string{"0=rash", "1=-a", "2=+b"},
		},
		"end of options later": {
			argv:       []string{"rash", "-s", "-x", "--", "-a"},
			wantParams: []string{"0=rash", "1=-a"},
			wantMode:   ModeStdin,
		},
		"long option ends options": {
			argv:       []string{"rash", "-s", "--verbose", "-a"},
			wantParams: []string{"0=rash", "1=-a"},
			wantMode:   ModeStdin,
		},
		"dash ignored": {
			argv:       []string{"rash", "-", "x", "-"},
			wantParams: []string{"0=rash", "1=x"},
		},
		"reserved options ignored": {
			argv:        []string{"rash", "-e", "-o", "+x", "y"},
			interactive: true,
			wantParams:  []string{"0=rash", "1=y"},

			wantInteractive: true,
		},
		"empty positional": {
			argv:       []string{"rash", "-s", "", "z"},
			wantParams: []string{"0=rash", "1=", "2=z"},
			wantMode:   ModeStdin,
		},
		"many positionals": {
			argv:       []string{"rash", "-s", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
			wantParams: []string{"0=rash", "1=1", "2=2", "3=3", "4=4", "5=5", "6=6", "7=7", "8=8", "9=9", "10=10"},
			wantMode:   ModeStdin,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s, out := newTestSession("", WithInteractive(tc.interactive))

			command, ok, err := s.HandleArgs(tc.argv)

			require.Nil(t, err)
			assert.Equal(t, tc.wantCommand, command)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantParams, s.Params.Environ())
			assert.Equal(t, tc.wantMode, s.Mode)
			assert.Equal(t, tc.wantInteractive, s.Interactive)
			assert.Equal(t, 0, s.LastReturn)
			assert.Empty(t, out.String())
		})
	}
}

func TestHandleArgsMissingCommand(t *testing.T) {
	for _, argv := range [][]string{
		{"rash", "-c"},
		{"rash", "-c", "-x", "--"},
	} {
		s, out := newTestSession("")

		_, ok, err := s.HandleArgs(argv)

		assert.False(t, ok)
		code, isExit := ExitCode(err)
		assert.True(t, isExit)
		assert.Equal(t, 2, code)
		assert.Equal(t, 2, s.LastReturn)
		assert.Equal(t, "rash: -c: option requires an argument\n", out.String())
	}
}

func TestHandleArgsScriptFile(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.sh")
	require.Nil(t, os.WriteFile(script, []byte("true\n"), 0644))

	s, out := newTestSession("", WithInteractive(true))
	defer s.Close()

	command, ok, err := s.HandleArgs([]string{"rash", script, "a", "-b", "--", "c"})

	require.Nil(t, err)
	assert.False(t, ok)
	assert.Empty(t, command)
	assert.Equal(t, ModeScriptFile, s.Mode)
	assert.False(t, s.Interactive)
	assert.Equal(t, []string{"0=rash", "1=a", "2=c"}, s.Params.Environ())
	assert.Empty(t, out.String())

	line, _, err := s.ReadLine()
	require.Nil(t, err)
	assert.Equal(t, "true", line)
}

func TestHandleArgsMissingScript(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.sh")
	s, out := newTestSession("")

	_, _, err := s.HandleArgs([]string{"rash", missing, "a"})

	code, isExit := ExitCode(err)
	assert.True(t, isExit)
	assert.Equal(t, 127, code)
	assert.Equal(t, "rash: no such file or directory: "+missing+"\n", out.String())

	// Arguments after the script are never reached.
	assert.Equal(t, []string{"0=rash"}, s.Params.Environ())
}
