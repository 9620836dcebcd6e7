// Package jsonlite is the minimal JSON layer of the Flow-Like wire protocol.
//
// It is deliberately not a general JSON library. The protocol keeps leaf
// values as opaque pre-encoded JSON text, so the builder appends values as
// pre-rendered strings and the extractor performs targeted field lookups by
// scanning for a quoted key and consuming the following value with
// brace/bracket depth counting. The decoder is total: malformed input yields
// defensive defaults (empty string, zero, false) instead of errors or
// panics. Callers that need a diagnostic can enable Strict on a Decoder.
//
// Escaping covers quote, backslash and the standard control characters
// (\n, \r, \t); non-ASCII bytes pass through unescaped. This behavior is
// part of the wire contract shared with the other language bindings and must
// not be "improved".
package jsonlite

import (
	"strconv"
	"strings"
)

// Escape renders s with protocol escaping applied.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Quote renders s as a JSON string literal.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// Unquote strips one layer of JSON string encoding: if s is wrapped in
// double quotes, the quotes are removed and escapes are decoded. Any other
// input is returned unchanged.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	return unescape(s[1 : len(s)-1])
}

// unescape decodes protocol escapes inside a string body. Unknown escape
// sequences decode to the escaped character itself.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FormatFloat renders a float as JSON number text in the shortest form that
// round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseLenientInt parses raw JSON text as an integer the lenient way the
// protocol requires: plain integers parse exactly, floats truncate, and
// anything non-numeric parses as 0.
func ParseLenientInt(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	return int64(ParseLenientFloat(raw))
}

// ParseLenientFloat parses raw JSON text as a float; non-numeric text parses
// as 0.0.
func ParseLenientFloat(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return 0
}
