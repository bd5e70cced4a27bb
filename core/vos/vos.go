// Package vos holds the process plumbing the shell is built on: the standard
// stream triple handed to children and the positional parameter table.
package vos

import "io"

// VIO is the set of standard streams a process runs with.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}
