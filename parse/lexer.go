package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gochartkick/chartkick/ast"
)

// Lexer design from text/template

// Tokens ---------------------------------------------------------------------

// item represents a token or text string returned from the scanner.
type item struct {
	typ itemType // The type of this item.
	pos ast.Pos  // The starting position, in bytes, of this item in the input string.
	val string   // The value of this item.
}

func (i item) String() string {
	switch {
	case i.typ == itemEOF:
		return "EOF"
	case i.typ == itemError:
		return i.val
	case len(i.val) > 10:
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

// itemType identifies the type of lexical items.
type itemType int

const (
	itemInvalid    itemType = iota // not used
	itemEOF                        // EOF
	itemError                      // error occurred; value is text of error
	itemText                       // plain text
	itemComment                    // {# comment #}
	itemLeftDelim                  // {%
	itemTagContents                // everything between the delimiters, trimmed
	itemRightDelim                 // %}
)

var itemNames = map[itemType]string{
	itemEOF:         "EOF",
	itemError:       "error",
	itemText:        "text",
	itemComment:     "comment",
	itemLeftDelim:   "{%",
	itemTagContents: "tag",
	itemRightDelim:  "%}",
}

func (t itemType) String() string {
	if name, ok := itemNames[t]; ok {
		return name
	}
	return fmt.Sprintf("item%d", int(t))
}

const (
	eof          = -1
	leftDelim    = "{%"
	rightDelim   = "%}"
	leftComment  = "{#"
	rightComment = "#}"
)

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the lexical scanning.
//
// Based on the lexer from the "text/template" package.
// See http://www.youtube.com/watch?v=HxaD_trXwRE
type lexer struct {
	name  string    // the name of the input; used only during errors.
	input string    // the string being scanned.
	state stateFn   // the next lexing function to enter.
	pos   ast.Pos   // current position in the input.
	start ast.Pos   // start position of this item.
	width int       // width of last rune read from input.
	items chan item // channel of scanned items.
}

// nextItem returns the next item from the input.
func (l *lexer) nextItem() item {
	return <-l.items
}

// drain consumes the remaining items so the lexing goroutine can exit.
func (l *lexer) drain() {
	for range l.items {
	}
}

// lex creates a new scanner for the input string.
func lex(name, input string) *lexer {
	l := &lexer{
		name:  name,
		input: input,
		items: make(chan item),
		state: lexText,
	}
	go l.run()
	return l
}

// run runs the state machine for the lexer.
func (l *lexer) run() {
	for l.state != nil {
		l.state = l.state(l)
	}
	close(l.items)
}

// next returns the next rune in the input.
func (l *lexer) next() (r rune) {
	if l.pos >= ast.Pos(len(l.input)) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += ast.Pos(l.width)
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= ast.Pos(l.width)
}

// emit passes an item back to the client.
func (l *lexer) emit(t itemType) {
	l.items <- item{t, l.start, l.input[l.start:l.pos]}
	l.start = l.pos
}

// emitValue passes an item with the given value back to the client.
func (l *lexer) emitValue(t itemType, val string) {
	l.items <- item{t, l.start, val}
	l.start = l.pos
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// lineNumber reports which line we're on. Doing it this way
// means we don't have to worry about peek double counting.
func (l *lexer) lineNumber(pos ast.Pos) int {
	return 1 + strings.Count(l.input[:pos], "\n")
}

// columnNumber reports which column in the current line we're on.
func (l *lexer) columnNumber(pos ast.Pos) int {
	n := strings.LastIndex(l.input[:pos], "\n")
	return int(pos) - n
}

// errorf returns an error item and terminates the scan by passing
// back a nil pointer that will be the next state, terminating l.nextItem.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items <- item{itemError, l.start, fmt.Sprintf(format, args...)}
	return nil
}

// State functions ------------------------------------------------------------

// lexText scans until an opening tag or comment delimiter.
func lexText(l *lexer) stateFn {
	var rest = l.input[l.pos:]
	var next = strings.Index(rest, leftDelim)
	var comment = strings.Index(rest, leftComment)
	if comment != -1 && (next == -1 || comment < next) {
		next = comment
	}
	if next == -1 {
		l.pos = ast.Pos(len(l.input))
		if l.pos > l.start {
			l.emit(itemText)
		}
		l.emit(itemEOF)
		return nil
	}

	l.pos += ast.Pos(next)
	if l.pos > l.start {
		l.emit(itemText)
	}
	if next == comment {
		return lexComment
	}
	return lexLeftDelim
}

// lexComment scans a {# #} comment.  "{#" has not been consumed.
func lexComment(l *lexer) stateFn {
	var end = strings.Index(l.input[l.pos:], rightComment)
	if end == -1 {
		return l.errorf("unclosed comment")
	}
	l.pos += ast.Pos(end + len(rightComment))
	l.emit(itemComment)
	return lexText
}

// lexLeftDelim scans the left tag delimiter.
func lexLeftDelim(l *lexer) stateFn {
	l.pos += ast.Pos(len(leftDelim))
	l.emit(itemLeftDelim)
	return lexInsideTag
}

// lexInsideTag scans the tag contents up to the right delimiter.  Quoted
// strings may contain the right delimiter.
func lexInsideTag(l *lexer) stateFn {
	for {
		switch r := l.next(); r {
		case eof:
			return l.errorf("unclosed tag")
		case '"', '\'':
			if !skipQuoted(l, r) {
				return l.errorf("unterminated quoted string in tag")
			}
		case '%':
			if l.next() != '}' {
				l.backup()
				continue
			}
			l.pos -= ast.Pos(len(rightDelim))
			l.emitValue(itemTagContents, strings.TrimSpace(l.input[l.start:l.pos]))
			l.pos += ast.Pos(len(rightDelim))
			l.emit(itemRightDelim)
			return lexText
		}
	}
}

// skipQuoted consumes up to and including the closing quote.
func skipQuoted(l *lexer, quote rune) bool {
	for {
		switch l.next() {
		case eof:
			return false
		case '\\':
			l.next()
		case quote:
			return true
		}
	}
}
