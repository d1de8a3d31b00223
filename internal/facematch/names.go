package facematch

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NameKey folds a person name into the form used to detect duplicate
// gallery entries: no diacritics, lowercase, dashes and underscores as
// spaces, whitespace collapsed.
func NameKey(name string) string {
	name = RemoveDiacritics(name)
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), " ")
}

// NameFromFile returns the person name encoded in a reference image path,
// which is the file name without its extension ("faces/sks.jpg" -> "sks").
func NameFromFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}
