package vos

import (
	"fmt"
	"sort"
	"strconv"
)

// Params holds positional parameters keyed by their index as a string: "0"
// is the name the shell was invoked as, "1" onward are the arguments.
//
// Iteration is always in key order so diagnostics are deterministic.
type Params struct {
	values map[string]string
}

// NewParams creates an empty parameter table.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores value under key, replacing any existing value.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[key] = value
}

// Lookup retrieves the parameter named by key. The boolean reports whether
// it was set at all.
func (p *Params) Lookup(key string) (string, bool) {
	val, ok := p.values[key]
	return val, ok
}

// Get retrieves the parameter named by key or "" if it isn't set.
func (p *Params) Get(key string) string {
	val, _ := p.Lookup(key)
	return val
}

// Len returns the number of parameters, including $0.
func (p *Params) Len() int {
	return len(p.values)
}

// Positional returns the count of numbered arguments, excluding $0.
func (p *Params) Positional() int {
	count := 0
	for k := range p.values {
		if n, err := strconv.Atoi(k); err == nil && n > 0 {
			count++
		}
	}
	return count
}

// Append stores value at the next free index after the highest numbered
// argument and returns the key it was stored under.
func (p *Params) Append(value string) string {
	next := 1
	for k := range p.values {
		if n, err := strconv.Atoi(k); err == nil && n >= next {
			next = n + 1
		}
	}
	key := strconv.Itoa(next)
	p.Set(key, value)
	return key
}

// Keys returns the parameter names, numeric keys in numeric order first.
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	return keys
}

// Environ returns the parameters in the form "key=value", in key order.
func (p *Params) Environ() []string {
	var out []string
	for _, k := range p.Keys() {
		out = append(out, fmt.Sprintf("%s=%s", k, p.values[k]))
	}
	return out
}

func keyLess(a, b string) bool {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return an < bn
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
