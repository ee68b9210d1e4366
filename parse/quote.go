package parse

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var unescapes = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'b':  '\b',
	'f':  '\f',
}

// isQuoted reports whether s is surrounded by matching single or double quotes.
func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0]
}

// unquoteString takes a quoted string (including the surrounding quotes)
// and returns the unquoted string, along with any error encountered.
func unquoteString(s string) (string, error) {
	n := len(s)
	if n < 2 {
		return "", errors.New("too short a string")
	}
	if !isQuoted(s) {
		return "", errors.New("string not surrounded by quotes")
	}

	var quote = s[0]
	s = s[1 : n-1]
	if !strings.ContainsRune(s, '\\') && !strings.ContainsRune(s, rune(quote)) {
		return s, nil
	}

	var escaping = false
	var result = make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if escaping {
			if r == 'u' {
				if i+4 > len(s) {
					return "", errors.New("error scanning unicode escape, expect \\uNNNN")
				}
				num, err := strconv.ParseInt(s[i:i+4], 16, 0)
				if err != nil {
					return "", err
				}
				r = rune(num)
				i += 4
			} else {
				replacement, ok := unescapes[r]
				if !ok {
					return "", errors.New("unrecognized escape code: \\" + string(r))
				}
				r = replacement
			}
			result = append(result, r)
			escaping = false
			continue
		}

		switch r {
		case '\\':
			escaping = true
		case rune(quote):
			return "", errors.New("unescaped quote inside string")
		default:
			result = append(result, r)
		}
	}
	if escaping {
		return "", errors.New("string ends with an escape character")
	}
	return string(result), nil
}

// splitContents splits tag contents on whitespace, keeping quoted strings
// together even when they contain spaces.  A quote may begin mid-token, as in
// title="Sales by day".
func splitContents(contents string) ([]string, error) {
	var (
		bits  []string
		token strings.Builder
		quote rune
		esc   bool
		in    bool // inside a token
	)
	for _, r := range contents {
		switch {
		case quote != 0:
			token.WriteRune(r)
			switch {
			case esc:
				esc = false
			case r == '\\':
				esc = true
			case r == quote:
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			in = true
			token.WriteRune(r)
		case isSpace(r):
			if in {
				bits = append(bits, token.String())
				token.Reset()
				in = false
			}
		default:
			in = true
			token.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quoted string")
	}
	if in {
		bits = append(bits, token.String())
	}
	return bits, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
