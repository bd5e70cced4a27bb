package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/rash/core/logger"
	"github.com/josephlewis42/rash/core/vos"
)

const (
	// StatusNotFound is reported when a command or script doesn't exist.
	StatusNotFound = 127
	// StatusUsage is reported for invocation errors.
	StatusUsage = 2
)

// Execute runs a single line: a builtin if one matches the first word,
// otherwise a child process. LastReturn holds the result afterwards.
func (s *Session) Execute(line string) {
	s.execute(line, 0)
}

func (s *Session) execute(line string, bytesRead int) {
	args, err := s.split(line)
	if err != nil {
		fmt.Fprintf(s.Stdout(), "%s: syntax error: %v\n", s.Name, err)
		s.LastReturn = StatusUsage
		return
	}
	if len(args) == 0 {
		return
	}

	if builtin, ok := AllBuiltins[args[0]]; ok {
		s.LastReturn = builtin.Main(s, args)
		s.recordRun(args, bytesRead)
		return
	}

	s.spawn(args, bytesRead)
}

func (s *Session) spawn(args []string, bytesRead int) {
	if args[0] == "" {
		// exec refuses an empty name before searching PATH, report it like
		// any other program that doesn't exist.
		s.spawnFailed(args, &exec.Error{Name: args[0], Err: exec.ErrNotFound})
		return
	}

	cmd := exec.Command(args[0], args[1:]...)
	if stdin, ok := vos.Unwrap(s.Stdin()); ok {
		// Only real files are shared: exec drains any other reader with a
		// copying goroutine and the line reader would lose its input.
		cmd.Stdin = stdin
	}
	cmd.Stdout = s.Stdout()
	cmd.Stderr = s.Stderr()

	if err := cmd.Start(); err != nil {
		s.spawnFailed(args, err)
		return
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			s.log.Printf("waiting on %s: %v", args[0], err)
		}
	}

	s.LastReturn = s.exitStatus(cmd.ProcessState)
	s.recordRun(args, bytesRead)
}

func (s *Session) spawnFailed(args []string, err error) {
	s.LastReturn = s.reportSpawnError(args[0], err)
	s.record(logger.EventUnknownCommand, logger.Fields{
		"argv":   args,
		"status": s.LastReturn,
		"error":  err,
	})
}

// reportSpawnError prints a diagnostic for a process that couldn't be
// started and returns the status to record.
func (s *Session) reportSpawnError(name string, err error) int {
	var errno syscall.Errno
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(s.Stdout(), "%s: command not found: %s\n", s.Name, name)
		return StatusNotFound
	case errors.As(err, &errno):
		fmt.Fprintf(s.Stdout(), "unexpected errno %d\n  err: %v\n", int(errno), err)
		return int(errno)
	case errors.Is(err, fs.ErrPermission):
		// exec rejects files without an execute bit before calling execve.
		errno = syscall.EACCES
		fmt.Fprintf(s.Stdout(), "unexpected errno %d\n  err: %v\n", int(errno), err)
		return int(errno)
	default:
		fmt.Fprintf(s.Stdout(), "err %v\n", err)
		return 1
	}
}

// exitStatus converts a finished process state into a shell status. Children
// killed by a signal report the configured base plus the signal number.
func (s *Session) exitStatus(state *os.ProcessState) int {
	if state == nil {
		return 1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return s.Config.SignalStatusBase + int(ws.Signal())
	}
	return state.ExitCode()
}

func (s *Session) recordRun(args []string, bytesRead int) {
	s.record(logger.EventRunCommand, logger.Fields{
		"argv":       args,
		"status":     s.LastReturn,
		"bytes_read": bytesRead,
	})
}
