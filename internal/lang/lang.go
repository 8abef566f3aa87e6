package lang

import (
	"fmt"
	"strings"
)

// Language pairs a human label with the ISO-639-1 code consumed by the
// translation and speech services.
type Language struct {
	Label string
	Code  string
}

// English is the default and fallback content language.
var English = Language{Label: "English", Code: "en"}

// supported is the fixed set, in display order.
var supported = []Language{
	English,
	{Label: "Hindi", Code: "hi"},
	{Label: "Telugu", Code: "te"},
	{Label: "Tamil", Code: "ta"},
	{Label: "Bengali", Code: "bn"},
	{Label: "Kannada", Code: "kn"},
}

// All returns the supported languages in display order.
func All() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Lookup resolves a label or code, case-insensitively.
func Lookup(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range supported {
		if strings.EqualFold(l.Label, s) || strings.EqualFold(l.Code, s) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language %q (choose one of: %s)", s, strings.Join(Labels(), ", "))
}

// Labels returns the display labels of all supported languages.
func Labels() []string {
	out := make([]string, len(supported))
	for i, l := range supported {
		out[i] = l.Label
	}
	return out
}

// LabelFor returns the label for a code, or the code itself if unknown.
func LabelFor(code string) string {
	for _, l := range supported {
		if l.Code == code {
			return l.Label
		}
	}
	return code
}
