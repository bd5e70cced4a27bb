package shell

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/josephlewis42/rash/core/config"
	"github.com/josephlewis42/rash/core/vos"
)

// newTestSession creates a non-interactive session reading stdin with stdout
// and stderr combined into the returned buffer.
func newTestSession(stdin string, opts ...Option) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := config.Default()
	cfg.Color = config.ColorNever

	base := []Option{
		WithIO(vos.NewVIOAdapter(strings.NewReader(stdin), out, out)),
		WithConfig(cfg),
		WithInteractive(false),
	}
	return NewSession(append(base, opts...)...), out
}

// TestHelperProcess isn't a real test, it's a child process the other tests
// start to get specific exit behavior.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, "bad-invoke")
		os.Exit(2)
	}

	switch args[1] {
	case "exit":
		code, _ := strconv.Atoi(args[2])
		os.Exit(code)
	case "kill":
		self, _ := os.FindProcess(os.Getpid())
		self.Kill()
		time.Sleep(time.Minute)
		os.Exit(0)
	case "args":
		fmt.Printf("%q\n", args[2:])
		os.Exit(0)
	default:
		fmt.Fprint(os.Stderr, "unknown-mode")
		os.Exit(2)
	}
}

// helperLine builds a command line that runs TestHelperProcess.
func helperLine(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	return strings.Join(append([]string{os.Args[0], "-test.run=TestHelperProcess", "--"}, args...), " ")
}
