package jsonv

import (
	"strings"
	"unicode/utf8"
)

// EncodeOptions controls rendering.
type EncodeOptions struct {
	// Beautify puts every member and element on its own line.
	Beautify bool
	// Indent is the number of spaces per nesting level; 0 keeps the line
	// breaks and drops the indentation. Ignored unless Beautify is set.
	Indent int
}

// Encode renders v as JSON text. Strings are escaped the way
// JSON.stringify escapes them; numbers are written as stored in Num.
func Encode(v Value, opts EncodeOptions) string {
	e := encoder{opts: opts}
	if opts.Beautify && opts.Indent > 0 {
		e.unit = strings.Repeat(" ", opts.Indent)
	}
	e.value(v, 0)
	return e.b.String()
}

type encoder struct {
	opts EncodeOptions
	unit string
	b    strings.Builder
}

func (e *encoder) value(v Value, depth int) {
	switch v.Kind {
	case Null:
		e.b.WriteString("null")
	case Bool:
		if v.Bool {
			e.b.WriteString("true")
		} else {
			e.b.WriteString("false")
		}
	case Number:
		e.b.WriteString(v.Num)
	case String:
		writeString(&e.b, v.Str)
	case Array:
		if len(v.Items) == 0 {
			e.b.WriteString("[]")
			return
		}
		e.b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(item, depth+1)
		}
		e.newline(depth)
		e.b.WriteByte(']')
	case Object:
		if len(v.Members) == 0 {
			e.b.WriteString("{}")
			return
		}
		e.b.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.newline(depth + 1)
			writeString(&e.b, m.Key)
			e.b.WriteByte(':')
			if e.opts.Beautify {
				e.b.WriteByte(' ')
			}
			e.value(m.Value, depth+1)
		}
		e.newline(depth)
		e.b.WriteByte('}')
	}
}

func (e *encoder) newline(depth int) {
	if !e.opts.Beautify {
		return
	}
	e.b.WriteByte('\n')
	for range depth {
		e.b.WriteString(e.unit)
	}
}

const hexDigits = "0123456789abcdef"

// writeString quotes s. Lone surrogates stored by Parse are written as
// \uXXXX escapes, other invalid UTF-8 as U+FFFD.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			b.WriteString(s[start:i])
			switch c {
			case '"', '\\':
				b.WriteByte('\\')
				b.WriteByte(c)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if sr, ok := decodeSurrogate(s[i:]); ok && size == 1 {
			b.WriteString(s[start:i])
			b.WriteString(`\u`)
			for shift := 12; shift >= 0; shift -= 4 {
				b.WriteByte(hexDigits[sr>>shift&0xF])
			}
			i += 3
			start = i
			continue
		}
		if r == utf8.RuneError && size == 1 {
			b.WriteString(s[start:i])
			b.WriteString("\uFFFD")
			i++
			start = i
			continue
		}
		i += size
	}
	b.WriteString(s[start:])
	b.WriteByte('"')
}
