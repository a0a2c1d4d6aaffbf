package kitsu

import (
	"net/url"
	"strings"
)

// Bytes that pass through a literal query: RFC 3986 unreserved and reserved characters plus '%'.
const literalSafe = "-._~!#$%&'()*+,/:;=?@[]"

// EscapeQuery encodes search text for the filter[text] parameter.
//
// By default it form-encodes the text. In literal mode only bytes that cannot
// appear in a URL at all (spaces, controls, non-ASCII) are percent-encoded, so
// reserved characters such as '&' keep their URL meaning.
func EscapeQuery(q string, literal bool) string {
	if !literal {
		return url.QueryEscape(q)
	}

	var b strings.Builder
	for i := 0; i < len(q); i++ {
		c := q[i]
		if isAlnum(c) || strings.IndexByte(literalSafe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
