package shell

import (
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/rash/core/config"
)

// Splitter breaks a line into a command name and its arguments.
type Splitter func(line string) ([]string, error)

// NaiveSplit trims the line and splits it on every single space. Runs of
// spaces produce empty words which are passed along unchanged.
func NaiveSplit(line string) ([]string, error) {
	return strings.Split(strings.TrimSpace(line), " "), nil
}

// ShlexSplit splits the line into words honoring quotes and escapes.
func ShlexSplit(line string) ([]string, error) {
	return shlex.Split(line, true)
}

// NewSplitter returns the splitter for a config.Configuration WordSplitting
// value, unknown values get NaiveSplit.
func NewSplitter(mode string) Splitter {
	switch mode {
	case config.SplitShlex:
		return ShlexSplit
	default:
		return NaiveSplit
	}
}
