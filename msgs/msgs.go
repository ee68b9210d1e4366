// Package msgs localizes the text the chart markup shows before a chart has
// drawn.
package msgs

// Loading is the placeholder text shown until the client-side chart draws.
const Loading = "Loading..."

// IDs lists the source text of every message the markup uses.
var IDs = []string{Loading}

// Provider provides access to message bundles by locale.
type Provider interface {
	// Bundle returns messages for the given locale, which is in the form
	// [language_territory].  It returns nil if no messages could be found.
	Bundle(locale string) Bundle
}

// Bundle is the set of messages available in a particular locale.
type Bundle interface {
	// Locale returns the locale of the bundle.
	Locale() string

	// Message returns the translation of the given source text, or "" if
	// there is none.
	Message(id string) string
}

// Text returns the translation of id from b, falling back to id itself.
// b may be nil.
func Text(b Bundle, id string) string {
	if b == nil {
		return id
	}
	if msg := b.Message(id); msg != "" {
		return msg
	}
	return id
}

// Map is a Bundle of fixed translations.
type Map struct {
	Lang     string
	Messages map[string]string
}

func (m Map) Locale() string { return m.Lang }

func (m Map) Message(id string) string { return m.Messages[id] }
