package shell

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins.
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command that runs inside the shell process. It returns the
// command's status.
type Builtin interface {
	Main(s *Session, args []string) int
}

// BuiltinFunc adapts an ordinary function to a Builtin.
type BuiltinFunc func(s *Session, args []string) int

// Main calls f(s, args).
func (f BuiltinFunc) Main(s *Session, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Exit leaves the read loop with the given status, or the last status if
// none is given.
func Exit(s *Session, args []string) int {
	opts := getopt.New()
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: exit [N]")
		fmt.Fprintln(w, "Exit the shell with a status of N, or the last status if N is omitted.")
		return StatusUsage
	}

	status := s.LastReturn
	switch rest := opts.Args(); len(rest) {
	case 0:
	case 1:
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			fmt.Fprintf(s.Stderr(), "%s: exit: %s: numeric argument required\n", s.Name, rest[0])
			status = StatusUsage
			break
		}
		status = n
	default:
		fmt.Fprintf(s.Stderr(), "%s: exit: too many arguments\n", s.Name)
		return 1
	}

	s.quit = true
	return status
}

// Cd changes the working directory of the shell and future children.
func Cd(s *Session, args []string) int {
	switch len(args) {
	case 1:
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(s.Stderr(), "%s: %v\n", args[0], err)
			return 1
		}
		args = append(args, home)
		fallthrough
	case 2:
		if err := os.Chdir(args[1]); err != nil {
			fmt.Fprintf(s.Stderr(), "%s: %v\n", args[0], err)
			return 1
		}
	default:
		fmt.Fprintf(s.Stderr(), "%s: too many arguments\n", args[0])
		return 1
	}
	return 0
}

// Help lists the builtins.
func Help(s *Session, args []string) int {
	w := s.Stdout()
	fmt.Fprintf(w, "%s, the %s you actually want\n", s.Name, s.Name)
	fmt.Fprintln(w, "These shell commands are defined internally, everything else is run from PATH.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtins:")

	var builtins []string
	for k := range AllBuiltins {
		builtins = append(builtins, k)
	}
	sort.Strings(builtins)

	for _, name := range builtins {
		fmt.Fprintf(w, "  %s\n", name)
	}

	return 0
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
	AllBuiltins["help"] = BuiltinFunc(Help)
}
