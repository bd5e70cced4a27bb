package vos

import (
	"io"
	"os"
)

type VIOAdapter struct {
	IStdin  io.ReadCloser
	IStdout io.WriteCloser
	IStderr io.WriteCloser
}

func NewVIOAdapter(stdin io.Reader, stdout, stderr io.Writer) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  toReadCloserOrDiscard(stdin),
		IStdout: toWriteCloserOrDiscard(stdout),
		IStderr: toWriteCloserOrDiscard(stderr),
	}
}

// NewOSIO returns the streams the current process was started with.
func NewOSIO() *VIOAdapter {
	return &VIOAdapter{
		IStdin:  os.Stdin,
		IStdout: os.Stdout,
		IStderr: os.Stderr,
	}
}

// WithStdin returns a copy of vio reading from stdin instead.
func WithStdin(vio VIO, stdin io.Reader) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  toReadCloserOrDiscard(stdin),
		IStdout: vio.Stdout(),
		IStderr: vio.Stderr(),
	}
}

var _ VIO = (*VIOAdapter)(nil)

func (pr *VIOAdapter) Stdin() io.ReadCloser {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() io.WriteCloser {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() io.WriteCloser {
	return pr.IStderr
}

// Flush pushes any buffered output in w to its destination. Writers that
// don't buffer are left alone.
func Flush(w io.Writer) error {
	switch w := w.(type) {
	case interface{ Flush() error }:
		return w.Flush()
	case *os.File:
		// Syncing a terminal or pipe fails with EINVAL, nothing is buffered
		// for those anyway.
		_ = w.Sync()
	}
	return nil
}

// Wrapper is implemented by streams that decorate another stream.
type Wrapper interface {
	Wrapped() interface{}
}

// Unwrap returns the *os.File behind a stream if it has one. Children are
// handed the file directly so they share the descriptor rather than a pipe.
func Unwrap(stream interface{}) (*os.File, bool) {
	switch s := stream.(type) {
	case *os.File:
		return s, true
	case nopWriteCloser:
		return Unwrap(s.Writer)
	case Wrapper:
		return Unwrap(s.Wrapped())
	}
	return nil, false
}

func toWriteCloserOrDiscard(w io.Writer) io.WriteCloser {
	if w == nil {
		return &devNull{}
	}
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}

	return nopWriteCloser{w}
}

func toReadCloserOrDiscard(r io.Reader) io.ReadCloser {
	if r == nil {
		return &devNull{}
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}

	return io.NopCloser(r)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// devNull implements io.Reader and io.Writer, always closing for reads and
// discarding writes.
type devNull struct{}

var _ io.ReadCloser = (*devNull)(nil)
var _ io.WriteCloser = (*devNull)(nil)

func (*devNull) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (*devNull) Close() error {
	return nil
}

func (*devNull) Write(b []byte) (int, error) {
	return len(b), nil
}
