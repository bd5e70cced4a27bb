package shell

import (
	"bufio"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/rash/core/vos"
)

// LineReader reads one line of input at a time.
type LineReader interface {
	// ReadLine returns the next line with surrounding whitespace and the line
	// terminator removed, along with the number of raw bytes consumed. The
	// count is informational only and rarely matches len(line).
	//
	// ErrEOF is returned once the input is exhausted, other failures are
	// wrapped in an *IOError.
	ReadLine() (line string, n int, err error)
}

// prompter is implemented by readers that draw the prompt themselves.
type prompter interface {
	SetPrompt(prompt string)
}

// DirectReader reads lines straight from a stream.
type DirectReader struct {
	r *bufio.Reader
}

var _ LineReader = (*DirectReader)(nil)

// NewDirectReader creates a DirectReader over r.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadLine implements LineReader.ReadLine.
func (d *DirectReader) ReadLine() (string, int, error) {
	raw, err := d.r.ReadString('\n')
	switch {
	case err == io.EOF && len(raw) == 0:
		return "", 0, ErrEOF
	case err != nil && err != io.EOF:
		return "", len(raw), &IOError{Err: err}
	}

	// A final line without a terminator is still a line; the next call
	// reports the EOF.
	return strings.TrimSpace(raw), len(raw), nil
}

// EditingReader reads lines from a terminal with line editing.
type EditingReader struct {
	rl *readline.Instance
}

var _ LineReader = (*EditingReader)(nil)

// NewEditingReader creates a line editor over the session streams. The
// streams must be connected to a terminal.
func NewEditingReader(vio vos.VIO, prompt string) (*EditingReader, error) {
	cfg := &readline.Config{
		Prompt: prompt,
		Stdin:  readline.NewCancelableStdin(vio.Stdin()),
		Stdout: vio.Stdout(),
		Stderr: vio.Stderr(),
		FuncIsTerminal: func() bool {
			return true
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &EditingReader{rl: rl}, nil
}

// SetPrompt sets the prompt drawn by the next ReadLine.
func (e *EditingReader) SetPrompt(prompt string) {
	e.rl.SetPrompt(prompt)
}

// ReadLine implements LineReader.ReadLine.
func (e *EditingReader) ReadLine() (string, int, error) {
	line, err := e.rl.Readline()

	switch {
	case err == io.EOF:
		return "", 0, ErrEOF
	case err == readline.ErrInterrupt:
		// Interrupt clears the line.
		return "", 0, nil
	case err != nil:
		return "", 0, &IOError{Err: err}
	}

	// Readline strips the terminator, count it anyway.
	return strings.TrimSpace(line), len(line) + 1, nil
}

// Close restores the terminal.
func (e *EditingReader) Close() error {
	return e.rl.Close()
}

// ReadLine reads the next line from the session's input, choosing a reader
// on first use.
func (s *Session) ReadLine() (string, int, error) {
	return s.lineReader().ReadLine()
}

func (s *Session) lineReader() LineReader {
	if s.reader != nil {
		return s.reader
	}

	if s.Interactive && s.Config.LineEditing && IsTerminal(s.Stdin()) && IsTerminal(s.Stdout()) {
		editor, err := NewEditingReader(s.vio, s.Config.Prompt)
		if err == nil {
			s.reader = editor
			return s.reader
		}
		s.log.Printf("line editing unavailable: %v", err)
	}

	s.reader = NewDirectReader(s.Stdin())
	return s.reader
}
