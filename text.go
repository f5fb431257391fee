package querystring

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// splitOnFirst splits s around the first occurrence of sep. The tail excludes
// the separator. ok is false when sep is empty or absent, in which case head
// is s unchanged.
func splitOnFirst(s, sep string) (head, tail string, ok bool) {
	if sep == "" {
		return s, "", false
	}
	i := strings.Index(s, sep)
	if i == -1 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// Decode replaces '+' with a space and then percent-decodes s. A malformed
// percent sequence, or one decoding to invalid UTF-8, makes Decode return s
// unchanged.
func Decode(s string) string {
	out, ok := unescape(s)
	if !ok {
		return s
	}
	return out
}

func unescape(s string) (string, bool) {
	if !strings.ContainsAny(s, "+%") {
		return s, true
	}
	out, err := url.PathUnescape(strings.ReplaceAll(s, "+", " "))
	if err != nil || !utf8.ValidString(out) {
		return "", false
	}
	return out, true
}

// Encode percent-encodes every byte of s except the unreserved characters
// A-Z a-z 0-9 - _ . ~. Unlike the escapers in net/url this also escapes
// ! ' ( ) and *.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
