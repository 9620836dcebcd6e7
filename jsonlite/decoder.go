package jsonlite

import "errors"

// Decoder walks a JSON document of the known protocol schema. It does not
// validate overall document structure or reject malformed input: every read
// is total and falls back to the defensive default on unexpected bytes. With
// Strict set, the first unexpected byte is additionally recorded and
// retrievable via Err, which gives tests a diagnostic path without changing
// the defaults the protocol mandates.
type Decoder struct {
	// Strict records the first malformed-input diagnostic instead of only
	// defaulting.
	Strict bool

	s   string
	pos int
	err error
}

// NewDecoder returns a decoder positioned at the start of doc.
func NewDecoder(doc string) *Decoder {
	return &Decoder{s: doc}
}

// Err returns the first diagnostic recorded in strict mode, or nil.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) fail(msg string) {
	if d.Strict && d.err == nil {
		d.err = errors.New("jsonlite: " + msg)
	}
}

func (d *Decoder) skipSpace() {
	for d.pos < len(d.s) {
		switch d.s[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *Decoder) peek() (byte, bool) {
	if d.pos >= len(d.s) {
		return 0, false
	}
	return d.s[d.pos], true
}

// ReadString consumes a quoted string and returns its decoded content. A
// missing opening quote reads as the empty string.
func (d *Decoder) ReadString() string {
	d.skipSpace()
	c, ok := d.peek()
	if !ok || c != '"' {
		d.fail("expected string")
		return ""
	}
	d.pos++
	start := d.pos
	escaped := false
	for d.pos < len(d.s) && d.s[d.pos] != '"' {
		if d.s[d.pos] == '\\' {
			escaped = true
			d.pos++
		}
		d.pos++
	}
	if d.pos >= len(d.s) {
		d.fail("unterminated string")
	}
	body := d.s[start:min(d.pos, len(d.s))]
	if d.pos < len(d.s) {
		d.pos++ // closing quote
	}
	if escaped {
		return unescape(body)
	}
	return body
}

// ReadValue consumes the next value and returns its raw JSON text verbatim:
// strings keep their quotes and escapes, objects and arrays are consumed by
// depth counting, and scalars run to the next delimiter.
func (d *Decoder) ReadValue() string {
	d.skipSpace()
	c, ok := d.peek()
	if !ok {
		d.fail("expected value")
		return ""
	}
	switch c {
	case '"':
		return d.readRawString()
	case '{':
		return d.readBracketed('{', '}')
	case '[':
		return d.readBracketed('[', ']')
	}
	start := d.pos
	for d.pos < len(d.s) {
		switch d.s[d.pos] {
		case ',', '}', ']', ' ', '\t', '\n', '\r':
			return d.s[start:d.pos]
		}
		d.pos++
	}
	return d.s[start:]
}

// readRawString consumes a quoted string and returns it verbatim, quotes and
// escapes included.
func (d *Decoder) readRawString() string {
	start := d.pos
	d.pos++ // opening quote
	for d.pos < len(d.s) && d.s[d.pos] != '"' {
		if d.s[d.pos] == '\\' {
			d.pos++
		}
		d.pos++
	}
	if d.pos < len(d.s) {
		d.pos++ // closing quote
	} else {
		d.fail("unterminated string")
	}
	return d.s[start:min(d.pos, len(d.s))]
}

// readBracketed consumes a bracketed value by depth counting, skipping over
// string contents so braces inside strings do not affect the depth.
func (d *Decoder) readBracketed(open, close byte) string {
	start := d.pos
	depth := 0
	for d.pos < len(d.s) {
		switch c := d.s[d.pos]; c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				d.pos++
				return d.s[start:d.pos]
			}
		case '"':
			d.pos++
			for d.pos < len(d.s) && d.s[d.pos] != '"' {
				if d.s[d.pos] == '\\' {
					d.pos++
				}
				d.pos++
			}
		}
		d.pos++
	}
	d.fail("unterminated value")
	return d.s[start:]
}

// ReadObject consumes an object whose values are kept as raw JSON text.
// Anything that is not an object consumes as a value and reads as an empty
// map.
func (d *Decoder) ReadObject() map[string]string {
	out := make(map[string]string)
	d.skipSpace()
	c, ok := d.peek()
	if !ok || c != '{' {
		d.fail("expected object")
		d.ReadValue()
		return out
	}
	d.pos++
	for d.pos < len(d.s) {
		d.skipSpace()
		c, ok := d.peek()
		if !ok {
			d.fail("unterminated object")
			break
		}
		if c == '}' {
			d.pos++
			break
		}
		if c == ',' {
			d.pos++
			continue
		}
		before := d.pos
		key := d.ReadString()
		d.skipSpace()
		if c, ok := d.peek(); ok && c == ':' {
			d.pos++
		}
		out[key] = d.ReadValue()
		if d.pos == before {
			// Stray delimiter that neither key nor value consumed. Skip it
			// so malformed input cannot stall the scan.
			d.fail("unexpected byte in object")
			d.pos++
		}
	}
	return out
}

// EachField iterates the top-level key/value pairs of an object document.
// The callback receives the key and the raw value text; iteration stops when
// it returns false.
func (d *Decoder) EachField(fn func(key, raw string) bool) {
	d.skipSpace()
	c, ok := d.peek()
	if !ok || c != '{' {
		d.fail("expected object")
		return
	}
	d.pos++
	for d.pos < len(d.s) {
		d.skipSpace()
		c, ok := d.peek()
		if !ok || c == '}' {
			return
		}
		if c == ',' {
			d.pos++
			continue
		}
		before := d.pos
		key := d.ReadString()
		d.skipSpace()
		if c, ok := d.peek(); ok && c == ':' {
			d.pos++
		}
		if !fn(key, d.ReadValue()) {
			return
		}
		if d.pos == before {
			d.fail("unexpected byte in object")
			d.pos++
		}
	}
}
