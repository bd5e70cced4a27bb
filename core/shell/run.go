package shell

import (
	"errors"
	"fmt"

	"github.com/josephlewis42/rash/core/logger"
	"github.com/josephlewis42/rash/core/vos"
)

// Main runs a complete session for argv and returns the status the process
// should exit with.
func Main(argv []string, opts ...Option) int {
	return NewSession(opts...).Run(argv)
}

// Run handles the invocation arguments, then either executes the -c command
// or reads and executes lines until end of input. Teardown happens on every
// path and the last status is returned.
func (s *Session) Run(argv []string) int {
	command, ok, err := s.HandleArgs(argv)
	if err != nil {
		code, isExit := ExitCode(err)
		if !isExit {
			code = StatusUsage
		}
		s.LastReturn = code
		return s.Teardown()
	}

	s.Init()

	if ok {
		s.Execute(command)
	} else {
		s.loop()
	}

	return s.Teardown()
}

func (s *Session) loop() {
	for !s.quit {
		s.displayPrompt()

		line, n, err := s.ReadLine()
		switch {
		case errors.Is(err, ErrEOF):
			return // Input closed, quit.

		case err != nil:
			fmt.Fprintf(s.Stdout(), "unhandled err %v\n", err)
			s.record(logger.EventReadError, logger.Fields{"error": err})
			continue

		case len(line) == 0:
			continue // empty line

		default:
			s.execute(line, n)
		}
	}
}

func (s *Session) displayPrompt() {
	if s.Interactive {
		if p, ok := s.lineReader().(prompter); ok {
			p.SetPrompt(s.Config.Prompt)
		} else {
			fmt.Fprint(s.Stdout(), s.Config.Prompt)
		}
	}

	if err := vos.Flush(s.Stdout()); err != nil {
		s.log.Printf("flushing stdout: %v", err)
	}
}

// Teardown flushes output, releases resources and returns LastReturn as the
// process exit status.
func (s *Session) Teardown() int {
	if err := vos.Flush(s.Stdout()); err != nil {
		s.log.Printf("flushing stdout: %v", err)
	}

	s.record(logger.EventSessionEnd, logger.Fields{"status": s.LastReturn})

	if err := s.Close(); err != nil {
		s.log.Printf("closing session: %v", err)
	}

	return s.LastReturn
}
