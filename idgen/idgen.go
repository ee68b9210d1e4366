// Package idgen allocates the DOM ids given to charts that do not name their
// own.
package idgen

import (
	"strconv"
	"sync/atomic"
)

// Generator hands out element ids.  Implementations must be safe for
// concurrent use.
type Generator interface {
	Next() string
}

// Prefix begins every id produced by a Sequence.
const Prefix = "chart-"

// Sequence produces chart-0, chart-1, ... and never repeats an id until Reset.
// The zero value is ready to use.
type Sequence struct {
	n atomic.Uint64
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	return Prefix + strconv.FormatUint(s.n.Add(1)-1, 10)
}

// Reset restarts the sequence at chart-0.
func (s *Sequence) Reset() {
	s.n.Store(0)
}

// Default is the process-wide sequence used when no Generator is supplied.
var Default = &Sequence{}

// Func adapts an ordinary function to the Generator interface.
type Func func() string

func (f Func) Next() string { return f() }
