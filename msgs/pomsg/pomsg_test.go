package pomsg

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/gochartkick/chartkick/msgs"
)

func TestPOBundle(t *testing.T) {
	var pomsgs, err = Dir("testdata")
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		locale string
		str    string
	}{
		{"fr", "Chargement..."},
		{"fr_CA", "Chargement..."},
		{"pt", "Carregando..."},
		{"pt-BR", "Carregando..."},
		{"de", "Loading..."},
	}

	for _, test := range tests {
		var bundle = pomsgs.Bundle(test.locale)
		if bundle == nil {
			t.Errorf("%s: bundle not found", test.locale)
			continue
		}
		if actual := msgs.Text(bundle, msgs.Loading); actual != test.str {
			t.Errorf("%s: got %q, expected %q", test.locale, actual, test.str)
		}
	}
}

func TestPOBundleNotFound(t *testing.T) {
	var pomsgs, err = Dir("testdata")
	if err != nil {
		t.Fatal(err)
	}

	for _, locale := range []string{"xx", "it_IT", "not a locale"} {
		if bundle := pomsgs.Bundle(locale); bundle != nil {
			t.Errorf("%s: expected nil bundle, got %#v", locale, bundle)
		}
	}
}

type memOpener map[string]string

func (m memOpener) Open(locale string) (io.ReadCloser, error) {
	var content, ok = m[locale]
	if !ok {
		return nil, nil
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestLoadFallback(t *testing.T) {
	var opener = memOpener{
		"es": "msgid \"Loading...\"\nmsgstr \"Cargando...\"\n",
	}
	var prov, err = Load(opener, []string{"es_MX", "it"})
	if err != nil {
		t.Fatal(err)
	}

	var bundle = prov.Bundle("es_MX")
	if bundle == nil {
		t.Fatal("expected a bundle for es_MX")
	}
	if bundle.Locale() != "es_MX" {
		t.Errorf("got locale %q, expected es_MX", bundle.Locale())
	}
	if msg := bundle.Message(msgs.Loading); msg != "Cargando..." {
		t.Errorf("got %q, expected Cargando...", msg)
	}
	if prov.Bundle("it") != nil {
		t.Errorf("expected no bundle for it")
	}
}

func TestLoadBadLocale(t *testing.T) {
	if _, err := Load(memOpener{}, []string{"!!"}); err == nil {
		t.Errorf("expected an error for an invalid locale")
	}
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `msgid "Loading..."`) {
		t.Errorf("template is missing the placeholder message:\n%s", buf.String())
	}
}
