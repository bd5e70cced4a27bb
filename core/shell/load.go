package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/josephlewis42/rash/core/vos"
)

// LoadInputFile makes the script at path the session's standard input for
// the rest of the session. The session stops being interactive even if the
// file can't be opened.
//
// Every failure is fatal: a diagnostic is printed, LastReturn is set and an
// *ExitError is returned.
func (s *Session) LoadInputFile(path string) error {
	s.Interactive = false

	fd, err := openScript(path)
	if err == nil {
		s.replaceStdin(fd)
		return nil
	}

	var errno syscall.Errno
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.LastReturn = 127
		fmt.Fprintf(s.Stdout(), "%s: no such file or directory: %s\n", s.Name, path)
	case errors.As(err, &errno):
		s.LastReturn = int(errno)
		fmt.Fprintf(s.Stdout(), "unexpected errno %d\n  err: %v\n", int(errno), err)
	default:
		s.LastReturn = 2
		fmt.Fprintf(s.Stdout(), "err %v\n", err)
	}

	return &ExitError{Code: s.LastReturn}
}

func openScript(path string) (*os.File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// Directories open fine but every read fails.
	info, err := fd.Stat()
	switch {
	case err != nil:
		fd.Close()
		return nil, err
	case info.IsDir():
		fd.Close()
		return nil, &fs.PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}

	return fd, nil
}

// replaceStdin swaps the input stream, it happens at most once per session
// and always before the first read.
func (s *Session) replaceStdin(fd *os.File) {
	if s.stdinReplaced {
		panic("shell: standard input replaced twice")
	}
	s.stdinReplaced = true
	s.toClose = append(s.toClose, fd)
	s.vio = vos.WithStdin(s.vio, fd)
}
