package util

import "unicode/utf8"

// TruncateRunes shortens s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n])
}

// Preview returns a display excerpt of s, at most n runes, with an
// ellipsis when anything was cut.
func Preview(s string, n int) string {
	t := TruncateRunes(s, n)
	if t != s {
		t += "..."
	}
	return t
}
