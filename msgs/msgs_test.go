package msgs

import "testing"

func TestText(t *testing.T) {
	var fr = Map{"fr", map[string]string{Loading: "Chargement..."}}
	var tests = []struct {
		bundle   Bundle
		expected string
	}{
		{nil, "Loading..."},
		{fr, "Chargement..."},
		{Map{"de", nil}, "Loading..."},
		{Map{"es", map[string]string{Loading: ""}}, "Loading..."},
	}
	for _, test := range tests {
		if actual := Text(test.bundle, Loading); actual != test.expected {
			t.Errorf("%v: got %q, expected %q", test.bundle, actual, test.expected)
		}
	}
	if fr.Locale() != "fr" {
		t.Errorf("unexpected locale %q", fr.Locale())
	}
}
