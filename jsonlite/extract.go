package jsonlite

// ExtractRaw returns the raw JSON text of a top-level field, or "" when the
// key is absent.
func ExtractRaw(doc, key string) string {
	var out string
	NewDecoder(doc).EachField(func(k, raw string) bool {
		if k == key {
			out = raw
			return false
		}
		return true
	})
	return out
}

// ExtractString returns a top-level string field with one layer of JSON
// string encoding removed. Missing keys and non-string values yield the raw
// text (or "" when absent).
func ExtractString(doc, key string) string {
	return Unquote(ExtractRaw(doc, key))
}

// ExtractBool returns a top-level boolean field, or def when the key is
// absent or the value is not a boolean literal.
func ExtractBool(doc, key string, def bool) bool {
	switch ExtractRaw(doc, key) {
	case "true":
		return true
	case "false":
		return false
	}
	return def
}

// ExtractInt returns a top-level integer field parsed leniently, or def when
// the key is absent.
func ExtractInt(doc, key string, def int64) int64 {
	raw := ExtractRaw(doc, key)
	if raw == "" {
		return def
	}
	return ParseLenientInt(raw)
}

// ParseObject parses an object document into a map of raw JSON values. This
// is the parse_inputs primitive: leaf values stay as opaque pre-encoded JSON
// text.
func ParseObject(doc string) map[string]string {
	return NewDecoder(doc).ReadObject()
}
