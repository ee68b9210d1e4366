package errortypes

import (
	"errors"
	"fmt"
)

var (
	_ ErrFilePos = &SyntaxError{}
	_ ErrFilePos = &ResolutionError{}
)

// SyntaxError reports a tag that could not be parsed: missing arguments, a
// keyword other than "with", a malformed key=value option, or an unknown
// script library.
type SyntaxError struct {
	filePos
	Tag string // the tag being parsed, if known
	Msg string
}

// NewSyntaxError returns a SyntaxError for the given tag.
func NewSyntaxError(tag, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Tag: tag, Msg: fmt.Sprintf(format, args...)}
}

// At records where the error occurred.  Positions already set are kept.
func (e *SyntaxError) At(file string, line, col int) *SyntaxError {
	if e.line == 0 {
		e.filePos = filePos{file, line, col}
	}
	return e
}

func (e *SyntaxError) Error() string {
	if e.Tag == "" {
		return e.prefix() + e.Msg
	}
	return fmt.Sprintf("%s%s: %s", e.prefix(), e.Tag, e.Msg)
}

// ResolutionError reports a variable that is not defined in the render
// context.
type ResolutionError struct {
	filePos
	Name string // the variable reference, e.g. "sales.daily"
}

// NewResolutionError returns a ResolutionError for the named reference.
func NewResolutionError(name string) *ResolutionError {
	return &ResolutionError{Name: name}
}

// At records where the reference occurred.  Positions already set are kept.
func (e *ResolutionError) At(file string, line, col int) *ResolutionError {
	if e.line == 0 {
		e.filePos = filePos{file, line, col}
	}
	return e
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%sfailed lookup for variable %q", e.prefix(), e.Name)
}

// IsSyntax reports whether err is, or wraps, a SyntaxError.
func IsSyntax(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}

// IsResolution reports whether err is, or wraps, a ResolutionError.
func IsResolution(err error) bool {
	var e *ResolutionError
	return errors.As(err, &e)
}
