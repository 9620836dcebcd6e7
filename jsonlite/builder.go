package jsonlite

import "strconv"

// Builder accumulates object and array tokens into a JSON document. Every
// appended value carries a trailing comma; closing an object or array (and
// finishing the document) trims the dangling comma, so callers never manage
// separators. Values are appended as pre-rendered text, which keeps numeric
// formatting and escaping under the caller's control.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{buf: make([]byte, 0, 128)}
}

// BeginObject opens an object.
func (b *Builder) BeginObject() *Builder {
	b.buf = append(b.buf, '{')
	return b
}

// EndObject closes the current object, trimming any trailing comma.
func (b *Builder) EndObject() *Builder {
	b.trimComma()
	b.buf = append(b.buf, '}', ',')
	return b
}

// BeginArray opens an array.
func (b *Builder) BeginArray() *Builder {
	b.buf = append(b.buf, '[')
	return b
}

// EndArray closes the current array, trimming any trailing comma.
func (b *Builder) EndArray() *Builder {
	b.trimComma()
	b.buf = append(b.buf, ']', ',')
	return b
}

// Key appends an object key. A value append must follow.
func (b *Builder) Key(name string) *Builder {
	b.buf = append(b.buf, Quote(name)...)
	b.buf = append(b.buf, ':')
	return b
}

// Raw appends pre-rendered JSON text as the next value.
func (b *Builder) Raw(v string) *Builder {
	b.buf = append(b.buf, v...)
	b.buf = append(b.buf, ',')
	return b
}

// Str appends a quoted, escaped string value.
func (b *Builder) Str(v string) *Builder {
	return b.Raw(Quote(v))
}

// Int appends an integer value.
func (b *Builder) Int(v int64) *Builder {
	return b.Raw(strconv.FormatInt(v, 10))
}

// Uint appends an unsigned integer value.
func (b *Builder) Uint(v uint64) *Builder {
	return b.Raw(strconv.FormatUint(v, 10))
}

// Bool appends a boolean value.
func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Raw("true")
	}
	return b.Raw("false")
}

// String finishes the document and returns it.
func (b *Builder) String() string {
	b.trimComma()
	return string(b.buf)
}

func (b *Builder) trimComma() {
	if n := len(b.buf); n > 0 && b.buf[n-1] == ',' {
		b.buf = b.buf[:n-1]
	}
}
