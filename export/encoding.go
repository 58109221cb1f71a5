package export

import "golang.org/x/text/encoding/charmap"

// ToWindows1252 re-encodes s for the PDF core fonts. Runes with no
// Windows-1252 byte become '?'.
func ToWindows1252(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, '?')
	}
	return string(out)
}
