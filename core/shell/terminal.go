package shell

import (
	"github.com/josephlewis42/rash/core/vos"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether stream is backed by a terminal device.
func IsTerminal(stream interface{}) bool {
	f, ok := vos.Unwrap(stream)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
