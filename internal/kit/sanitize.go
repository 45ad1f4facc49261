package kit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// SanitizeText maps text onto what the PDF core fonts can render.
//
// Runes that exist in Windows-1252 are kept, so accented Latin letters survive.
// Other letters fall back to their unaccented base letter. Symbols, pictographs
// and control characters are dropped. Line breaks are kept; other whitespace
// becomes a single space.
func SanitizeText(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune('\n')
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case encodable(r):
			b.WriteRune(r)
		case unicode.IsLetter(r):
			if base, ok := baseLetter(r); ok {
				b.WriteRune(base)
			}
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func encodable(r rune) bool {
	if r < 0x20 || r == 0x7f || !unicode.IsPrint(r) {
		return false
	}
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}

func baseLetter(r rune) (rune, bool) {
	d, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	if d != utf8.RuneError && unicode.IsLetter(d) && encodable(d) {
		return d, true
	}
	return 0, false
}
