// Package errortypes defines the errors reported while parsing chart tags
// and rendering them.
package errortypes

import (
	"errors"
	"fmt"
)

// ErrFilePos extends the error interface to add details on the file position where the error occurred.
type ErrFilePos interface {
	error
	File() string
	Line() int
	Col() int
}

// IsErrFilePos identifies whether or not the provided error, or any error it
// wraps, carries a file position.
func IsErrFilePos(err error) bool {
	return ToErrFilePos(err) != nil
}

// ToErrFilePos returns the first error in err's chain that carries a file
// position, or nil if there is none.
// If IsErrFilePos returns true, this will not return nil.
func ToErrFilePos(err error) ErrFilePos {
	for err != nil {
		var pos ErrFilePos
		if !errors.As(err, &pos) {
			return nil
		}
		if pos.Line() > 0 {
			return pos
		}
		err = errors.Unwrap(pos)
	}
	return nil
}

type filePos struct {
	file string
	line int
	col  int
}

func (p filePos) File() string { return p.file }
func (p filePos) Line() int    { return p.line }
func (p filePos) Col() int     { return p.col }

func (p filePos) prefix() string {
	switch {
	case p.line == 0:
		return ""
	case p.file == "":
		return fmt.Sprintf("%d:%d: ", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d: ", p.file, p.line, p.col)
}
