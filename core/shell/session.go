package shell

import (
	"io"
	"io/ioutil"
	"log"

	"github.com/fatih/color"
	"github.com/josephlewis42/rash/core/config"
	"github.com/josephlewis42/rash/core/logger"
	"github.com/josephlewis42/rash/core/vos"
)

// Name is the name the shell reports in diagnostics.
const Name = "rash"

// Mode is how the session was asked to get its input.
type Mode int

const (
	// ModeDefault reads commands from standard input.
	ModeDefault Mode = iota
	// ModeCommandString runs a single -c command and exits.
	ModeCommandString
	// ModeScriptFile reads commands from a file named on the command line.
	ModeScriptFile
	// ModeStdin was explicitly requested with -s.
	ModeStdin
	// ModeInteractive was forced with -i.
	ModeInteractive
)

func (m Mode) String() string {
	switch m {
	case ModeCommandString:
		return "command-string"
	case ModeScriptFile:
		return "script-file"
	case ModeStdin:
		return "stdin"
	case ModeInteractive:
		return "interactive"
	default:
		return "default"
	}
}

// Session owns all interpreter state. It is not safe for concurrent use.
type Session struct {
	// Name prefixes diagnostics.
	Name string
	// Params holds the positional parameters, "0" is the invocation name.
	Params *vos.Params
	// LastReturn is the status of the last command, it becomes the shell's
	// exit code.
	LastReturn int
	// Interactive controls the prompt and banner.
	Interactive bool
	// Mode records how the invocation arguments were interpreted.
	Mode Mode

	Config *config.Configuration

	vio            vos.VIO
	interactiveSet bool
	stdinReplaced  bool
	toClose        listCloser
	reader         LineReader
	split          Splitter
	events         *logger.SessionLogger
	log            *log.Logger

	// Set to true to leave the read loop.
	quit bool
}

// Option configures a Session.
type Option func(*Session)

// WithIO sets the standard streams of the session.
func WithIO(vio vos.VIO) Option {
	return func(s *Session) {
		s.vio = vio
	}
}

// WithConfig sets the configuration.
func WithConfig(cfg *config.Configuration) Option {
	return func(s *Session) {
		s.Config = cfg
	}
}

// WithInteractive overrides terminal detection on stdin.
func WithInteractive(interactive bool) Option {
	return func(s *Session) {
		s.Interactive = interactive
		s.interactiveSet = true
	}
}

// WithEventLogger records session events to l.
func WithEventLogger(l *logger.Logger) Option {
	return func(s *Session) {
		s.events = l.NewSession()
	}
}

// WithLogger sets the operator log, it's silent by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithLineReader replaces the reader chosen at the first read.
func WithLineReader(r LineReader) Option {
	return func(s *Session) {
		s.reader = r
	}
}

// NewSession creates a session with an empty parameter table and a zero
// last status.
func NewSession(opts ...Option) *Session {
	s := &Session{
		Name:   Name,
		Params: vos.NewParams(),
		vio:    vos.NewOSIO(),
		Config: config.Default(),
		log:    log.New(ioutil.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(s)
	}

	if !s.interactiveSet {
		s.Interactive = IsTerminal(s.vio.Stdin())
	}
	if s.events == nil {
		s.events = logger.NewNopLogger().NewSession()
	}
	s.split = NewSplitter(s.Config.WordSplitting)

	return s
}

// Stdin returns the active input stream.
func (s *Session) Stdin() io.Reader {
	return s.vio.Stdin()
}

// Stdout is where prompts and diagnostics are written.
func (s *Session) Stdout() io.Writer {
	return s.vio.Stdout()
}

// Stderr receives usage errors.
func (s *Session) Stderr() io.Writer {
	return s.vio.Stderr()
}

// Init performs the startup side effects once arguments are handled.
func (s *Session) Init() {
	if s.Interactive && s.Config.Banner {
		s.Banner(s.Stdout())
	}

	s.record(logger.EventSessionStart, logger.Fields{
		"mode":        s.Mode.String(),
		"interactive": s.Interactive,
		"name":        s.Params.Get("0"),
		"positional":  s.Params.Positional(),
	})
}

// Banner writes the greeting shown to interactive users.
func (s *Session) Banner(w io.Writer) {
	banner := color.New(color.FgGreen, color.Bold)
	if s.Config.ShouldColor(s.Interactive) {
		banner.EnableColor()
	} else {
		banner.DisableColor()
	}

	banner.Fprintf(w, "the %s you actually want!", s.Name)
	io.WriteString(w, "\n\n")
}

func (s *Session) record(eventType string, fields logger.Fields) {
	if err := s.events.Record(eventType, fields); err != nil {
		s.log.Printf("couldn't record %s event: %v", eventType, err)
	}
}

// Close releases the script file and line editor, if any.
func (s *Session) Close() error {
	if c, ok := s.reader.(io.Closer); ok {
		s.toClose = append(s.toClose, c)
	}
	s.reader = nil

	err := s.toClose.Close()
	s.toClose = nil
	return err
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
