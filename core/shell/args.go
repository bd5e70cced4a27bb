package shell

import (
	"fmt"
	"strings"
)

// HandleArgs interprets the shell's own invocation arguments, argv[0] being
// the name it was run as.
//
// It fills in the positional parameters and Mode, adjusts Interactive, and
// redirects input if a script file is named. When -c is given, the command
// string is returned with ok set and the caller runs it once instead of
// entering the read loop.
//
// Unknown options are accepted and ignored. An *ExitError is returned if the
// process must stop: -c without a command, or a script that can't be opened.
func (s *Session) HandleArgs(argv []string) (command string, ok bool, err error) {
	if len(argv) == 0 {
		s.Params.Set("0", s.Name)
		return "", false, nil
	}
	s.Params.Set("0", argv[0])

	args := argv[1:]
	if len(args) == 0 {
		return "", false, nil
	}

	var (
		immediate   bool
		optEnd      bool
		renameParam bool
		loadFile    string
	)

	selector := args[0]
	args = args[1:]
	switch selector {
	case "-c":
		// Execute the command from the next argument and exit.
		s.Interactive = false
		s.Mode = ModeCommandString
		immediate = true
	case "-s":
		// Explicitly read commands from stdin, this is the default.
		s.Mode = ModeStdin
	case "-i":
		s.Interactive = true
		s.Mode = ModeInteractive
	case "--":
		optEnd = true
	case "-":
		// Consumed and ignored.
	default:
		if !isOption(selector) {
			// Executing from a file: rash somescript.sh
			s.Mode = ModeScriptFile
			loadFile = selector
			break
		}
		// TODO: support set options (-e, -x, +o ...) once there's a set builtin.
	}

	if s.Mode == ModeScriptFile {
		if err := s.LoadInputFile(loadFile); err != nil {
			return "", false, err
		}
	}

	for _, arg := range args {
		switch {
		case isOption(arg) && !optEnd:
			// "--" ends shell options, everything else is reserved.
			if strings.HasPrefix(arg, "--") {
				optEnd = true
			}

		case immediate:
			// Everything after the command is a command name or positional.
			optEnd = true
			immediate = false
			command, ok = arg, true
			renameParam = true

		case renameParam:
			// sh -c command_string [command_name [argument...]]
			renameParam = false
			s.Params.Set("0", arg)

		default:
			s.Params.Append(arg)
		}
	}

	if immediate {
		fmt.Fprintf(s.Stderr(), "%s: -c: option requires an argument\n", s.Name)
		s.LastReturn = 2
		return "", false, &ExitError{Code: s.LastReturn}
	}

	return command, ok, nil
}

func isOption(arg string) bool {
	return strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "+")
}
