// Package shell is a minimal command interpreter.
//
// A session runs in these steps:
//
// 1. The invocation arguments decide where input comes from: standard input,
// a single -c command string, or a script file that replaces standard input.
// Remaining arguments become the positional parameters $1, $2, ...
//
// 2. Lines are read one at a time and trimmed. Blank lines are skipped.
//
// 3. Each line is split into words on single spaces; the first word names
// the program. No quoting, expansion or redirection is performed unless shlex
// splitting is configured.
//
// 4. Builtins run in-process, anything else is started as a child process
// sharing the session's standard streams. The shell waits for it and keeps
// its exit status.
//
// 5. At end of input the shell flushes output and exits with the last status.
package shell
