// Package pomsg reads message bundles from gettext PO files, one per locale.
package pomsg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/gettext/po"
	"golang.org/x/text/language"

	"github.com/gochartkick/chartkick/msgs"
)

type provider struct {
	bundles map[string]msgs.Bundle // by canonical locale
}

// FileOpener defines an abstraction for opening a po file given a locale
type FileOpener interface {
	// Open returns ReadCloser for the po file indicated by locale. It returns
	// nil if the file does not exist
	Open(locale string) (io.ReadCloser, error)
}

// Load returns a msgs.Provider that takes its translations by passing in the
// specified locales to the given FileOpener.
//
// Supports fallbacks for when a given locale does not exist, as long as the
// fallback files are in canonical form.
func Load(opener FileOpener, locales []string) (msgs.Provider, error) {
	var prov = provider{make(map[string]msgs.Bundle)}
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, err
		}

		r, err := opener.Open(locale)
		if err != nil {
			return nil, err
		}
		if r == nil {
			for _, fallback := range fallbacks(tag) {
				r, err = opener.Open(fallback.String())
				if err != nil {
					return nil, err
				}
				if r != nil {
					break
				}
			}
			if r == nil {
				continue
			}
		}

		pofile, err := po.Parse(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", locale, err)
		}
		prov.bundles[tag.String()] = newBundle(locale, pofile)
	}
	return prov, nil
}

// fsFileOpener is a FileOpener based on the filesystem and rooted at Dirname
type fsFileOpener struct {
	Dirname string
}

func (o fsFileOpener) Open(locale string) (io.ReadCloser, error) {
	switch f, err := os.Open(filepath.Join(o.Dirname, locale+".po")); {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, err
	default:
		return f, nil
	}
}

// Dir returns a msgs.Provider that takes translations from the given path.
// For example, if dir is "/usr/local/msgs", po files should be of the form:
//   /usr/local/msgs/<lang>.po
//   /usr/local/msgs/<lang>_<territory>.po
func Dir(dirname string) (msgs.Provider, error) {
	var files, err = os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	var locales []string
	for _, fi := range files {
		var name = fi.Name()
		if !fi.IsDir() && strings.HasSuffix(name, ".po") {
			locales = append(locales, strings.TrimSuffix(name, ".po"))
		}
	}
	return Load(fsFileOpener{dirname}, locales)
}

func (p provider) Bundle(locale string) msgs.Bundle {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil
	}
	for _, fb := range append([]language.Tag{tag}, fallbacks(tag)...) {
		if bundle, ok := p.bundles[fb.String()]; ok {
			return bundle
		}
	}
	return nil
}

type bundle struct {
	messages map[string]string
	locale   string
}

func newBundle(locale string, file po.File) *bundle {
	var messages = make(map[string]string)
	for _, msg := range file.Messages {
		if msg.Id == "" || len(msg.Str) == 0 || msg.Str[0] == "" {
			continue
		}
		messages[msg.Id] = msg.Str[0]
	}
	return &bundle{messages, locale}
}

func (b *bundle) Message(id string) string {
	return b.messages[id]
}

func (b *bundle) Locale() string {
	return b.locale
}

// WriteTemplate writes a PO template listing every message the chart markup
// uses, for translators to start from.
func WriteTemplate(w io.Writer) error {
	var file = po.File{}
	for _, id := range msgs.IDs {
		file.Messages = append(file.Messages, po.Message{
			Comment: po.Comment{
				ExtractedComments: []string{"Shown in place of a chart until it draws."},
			},
			Id: id,
		})
	}
	var ew = &errWriter{w: w}
	file.WriteTo(ew)
	return ew.err
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	var n, err = ew.w.Write(p)
	ew.err = err
	return n, err
}
