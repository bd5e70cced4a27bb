package ttylog

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/josephlewis42/rash/core/vos"
)

// Stream identifies which standard stream data passed through.
type Stream int

const (
	StreamStdin Stream = iota
	StreamStdout
	StreamStderr
)

// Entry is a chunk of data seen on a stream.
type Entry struct {
	TimestampMicros int64
	Stream          Stream
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(e *Entry) error {
		if e.Stream == StreamStdin {
			return nil
		}
		_, err := w.Write(e.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		e, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(e); err != nil {
			return err
		}
	}
}

// Recorder copies everything written to stdout and stderr to a LogSink.
// Stdin is passed through untouched so children keep sharing it.
type Recorder struct {
	*vos.VIOAdapter
	mutex  sync.Mutex
	output LogSink
	errLog *log.Logger
	now    func() time.Time
}

var _ vos.VIO = (*Recorder)(nil)

func (r *Recorder) recordIO(stream Stream, data []byte, dest func([]byte) (int, error)) (int, error) {
	eventTime := r.now()
	amount, err := dest(data)
	if amount > 0 {
		// The sink may hold on to the entry, data belongs to the caller.
		chunk := make([]byte, amount)
		copy(chunk, data[:amount])

		r.mutex.Lock()
		e2 := r.output(&Entry{
			TimestampMicros: eventTime.UnixMicro(),
			Stream:          stream,
			Data:            chunk,
		})
		r.mutex.Unlock()
		if e2 != nil {
			r.errLog.Printf("recording output: %v", e2)
		}
	}
	return amount, err
}

type recorderWriteCloser struct {
	r       *Recorder
	stream  Stream
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)
var _ vos.Wrapper = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	return rc.r.recordIO(rc.stream, p, rc.wrapped.Write)
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}

// Wrapped exposes the destination so terminal detection still sees it.
func (rc *recorderWriteCloser) Wrapped() interface{} {
	return rc.wrapped
}

// NewRecorder creates a VIO that forwards output to toWrap and output.
// Failures to record are reported to errLog.
func NewRecorder(toWrap vos.VIO, output LogSink, errLog *log.Logger) *Recorder {
	recorder := &Recorder{
		output: output,
		errLog: errLog,
		now:    time.Now,
	}

	recorder.VIOAdapter = vos.NewVIOAdapter(
		toWrap.Stdin(),
		&recorderWriteCloser{stream: StreamStdout, r: recorder, wrapped: toWrap.Stdout()},
		&recorderWriteCloser{stream: StreamStderr, r: recorder, wrapped: toWrap.Stderr()},
	)

	return recorder
}
