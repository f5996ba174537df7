package jsonv

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"jsonfix/internal/diag"
)

// MaxDepth bounds the nesting of arrays and objects.
const MaxDepth = 10000

type parser struct {
	cur cursor
}

// byteOrderMark is U+FEFF in UTF-8.
const byteOrderMark = "\ufeff"

// Parse parses a complete JSON document (RFC 8259). A leading byte order
// mark and surrounding whitespace are allowed, anything else after the value
// is an error. Duplicate object keys keep the position of their first
// occurrence and the value of their last. Error offsets count from the start
// of text, mark included. Errors are *SyntaxError.
func Parse(text string) (Value, error) {
	p := parser{cur: cursor{src: text}}
	if strings.HasPrefix(text, byteOrderMark) {
		p.cur.off = len(byteOrderMark)
	}
	p.cur.skipSpace()
	v, err := p.parseValue(0)
	if err != nil {
		return Value{}, err
	}
	p.cur.skipSpace()
	if !p.cur.eof() {
		return Value{}, p.fail(diag.SynTrailingData, "Unexpected non-whitespace character after JSON", p.cur.off)
	}
	return v, nil
}

func (p *parser) parseValue(depth int) (Value, error) {
	switch c := p.cur.peek(); {
	case p.cur.eof():
		return Value{}, p.unexpected()
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case c == 't':
		return p.parseLiteral("true", BoolValue(true))
	case c == 'f':
		return p.parseLiteral("false", BoolValue(false))
	case c == 'n':
		return p.parseLiteral("null", NullValue())
	case c == '-' || isDigit(c):
		return p.parseNumber()
	}
	return Value{}, p.unexpected()
}

func (p *parser) parseObject(depth int) (Value, error) {
	if depth >= MaxDepth {
		return Value{}, p.fail(diag.SynTooDeep, "Maximum nesting depth exceeded", p.cur.off)
	}
	p.cur.bump() // '{'
	p.cur.skipSpace()
	obj := ObjectValue()
	if p.cur.eat('}') {
		return obj, nil
	}

	var index map[string]int
	for {
		p.cur.skipSpace()
		if p.cur.peek() != '"' {
			return Value{}, p.unexpected()
		}
		key, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		p.cur.skipSpace()
		if !p.cur.eat(':') {
			return Value{}, p.unexpected()
		}
		p.cur.skipSpace()
		val, err := p.parseValue(depth + 1)
		if err != nil {
			return Value{}, err
		}

		// повторный ключ: значение последнего, позиция первого
		if index == nil {
			index = make(map[string]int)
		}
		if at, dup := index[key]; dup {
			obj.Members[at].Value = val
		} else {
			index[key] = len(obj.Members)
			obj.Members = append(obj.Members, Member{Key: key, Value: val})
		}

		p.cur.skipSpace()
		if p.cur.eat(',') {
			continue
		}
		if p.cur.eat('}') {
			return obj, nil
		}
		return Value{}, p.unexpected()
	}
}

func (p *parser) parseArray(depth int) (Value, error) {
	if depth >= MaxDepth {
		return Value{}, p.fail(diag.SynTooDeep, "Maximum nesting depth exceeded", p.cur.off)
	}
	p.cur.bump() // '['
	p.cur.skipSpace()
	arr := ArrayValue()
	if p.cur.eat(']') {
		return arr, nil
	}
	for {
		p.cur.skipSpace()
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		arr.Items = append(arr.Items, item)
		p.cur.skipSpace()
		if p.cur.eat(',') {
			continue
		}
		if p.cur.eat(']') {
			return arr, nil
		}
		return Value{}, p.unexpected()
	}
}

func (p *parser) parseString() (string, error) {
	p.cur.bump() // opening '"'
	var (
		buf     []byte
		escaped bool
	)
	chunk := p.cur.off
	for {
		if p.cur.eof() {
			return "", p.fail(diag.SynUnterminatedString, "Unterminated string", p.cur.off)
		}
		c := p.cur.peek()
		switch {
		case c == '"':
			tail := toValidUTF8(p.cur.src[chunk:p.cur.off])
			p.cur.bump()
			if !escaped {
				return tail, nil
			}
			return string(append(buf, tail...)), nil
		case c == '\\':
			buf = append(buf, toValidUTF8(p.cur.src[chunk:p.cur.off])...)
			escaped = true
			var err error
			if buf, err = p.parseEscape(buf); err != nil {
				return "", err
			}
			chunk = p.cur.off
		case c < 0x20:
			return "", p.fail(diag.SynBadStringChar, "Bad control character in string literal", p.cur.off)
		default:
			p.cur.bump()
		}
	}
}

// toValidUTF8 replaces every byte that is not part of a valid UTF-8
// sequence with U+FFFD.
func toValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString("\uFFFD")
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// parseEscape decodes one escape sequence starting at the backslash.
// A surrogate pair decodes to its code point; a lone surrogate is kept as
// its three-byte generalized UTF-8 form so that Encode can write it back
// as \uXXXX.
func (p *parser) parseEscape(buf []byte) ([]byte, error) {
	at := p.cur.off
	p.cur.bump() // '\\'
	if p.cur.eof() {
		return nil, p.fail(diag.SynUnterminatedString, "Unterminated string", p.cur.off)
	}
	switch c := p.cur.bump(); c {
	case '"', '\\', '/':
		return append(buf, c), nil
	case 'b':
		return append(buf, '\b'), nil
	case 'f':
		return append(buf, '\f'), nil
	case 'n':
		return append(buf, '\n'), nil
	case 'r':
		return append(buf, '\r'), nil
	case 't':
		return append(buf, '\t'), nil
	case 'u':
		r, err := p.hex4(at)
		if err != nil {
			return nil, err
		}
		if utf16.IsSurrogate(r) {
			full, ok := p.lowSurrogate(r)
			if !ok {
				return appendSurrogate(buf, r), nil
			}
			r = full
		}
		return utf8.AppendRune(buf, r), nil
	}
	return nil, p.fail(diag.SynBadEscape, "Bad escaped character", at)
}

func (p *parser) hex4(at int) (rune, error) {
	var r rune
	for range 4 {
		if p.cur.eof() {
			return 0, p.fail(diag.SynUnterminatedString, "Unterminated string", p.cur.off)
		}
		v, ok := hexVal(p.cur.peek())
		if !ok {
			return 0, p.fail(diag.SynBadEscape, "Bad Unicode escape", at)
		}
		r = r<<4 | v
		p.cur.bump()
	}
	return r, nil
}

// lowSurrogate combines a high surrogate with a following \uXXXX low
// surrogate. Anything else leaves the cursor untouched.
func (p *parser) lowSurrogate(high rune) (rune, bool) {
	rest := p.cur.src[p.cur.off:]
	if high >= 0xDC00 || len(rest) < 6 || rest[0] != '\\' || rest[1] != 'u' {
		return 0, false
	}
	var low rune
	for i := 2; i < 6; i++ {
		v, ok := hexVal(rest[i])
		if !ok {
			return 0, false
		}
		low = low<<4 | v
	}
	r := utf16.DecodeRune(high, low)
	if r == utf8.RuneError {
		return 0, false
	}
	p.cur.off += 6
	return r, true
}

// appendSurrogate writes r (0xD800..0xDFFF) as the three bytes UTF-8 would
// use if surrogates were allowed.
func appendSurrogate(buf []byte, r rune) []byte {
	return append(buf, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
}

// decodeSurrogate is the inverse of appendSurrogate.
func decodeSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2]&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), true
}

func (p *parser) parseNumber() (Value, error) {
	start := p.cur.off
	p.cur.eat('-')
	switch {
	case p.cur.eat('0'):
	case isDigit(p.cur.peek()):
		p.cur.skipDigits()
	default:
		return Value{}, p.fail(diag.SynBadNumber, "No number after minus sign", p.cur.off)
	}
	if p.cur.eat('.') {
		if !isDigit(p.cur.peek()) {
			return Value{}, p.fail(diag.SynBadNumber, "Unterminated fractional number", p.cur.off)
		}
		p.cur.skipDigits()
	}
	if c := p.cur.peek(); c == 'e' || c == 'E' {
		p.cur.bump()
		if c := p.cur.peek(); c == '+' || c == '-' {
			p.cur.bump()
		}
		if !isDigit(p.cur.peek()) {
			return Value{}, p.fail(diag.SynBadNumber, "Exponent part is missing a number", p.cur.off)
		}
		p.cur.skipDigits()
	}
	num, ok := canonicalNumber(p.cur.src[start:p.cur.off])
	if !ok {
		// JSON.stringify пишет бесконечность как null
		return NullValue(), nil
	}
	return NumberValue(num), nil
}

func (p *parser) parseLiteral(word string, v Value) (Value, error) {
	for i := 0; i < len(word); i++ {
		if p.cur.peek() != word[i] || p.cur.eof() {
			return Value{}, p.unexpected()
		}
		p.cur.bump()
	}
	return v, nil
}

// unexpected reports the byte under the cursor, or the end of input.
func (p *parser) unexpected() *SyntaxError {
	if p.cur.eof() {
		return &SyntaxError{
			Code:   diag.SynUnexpectedEnd,
			Reason: msgUnexpectedEnd,
			Offset: len(p.cur.src),
			AtEOF:  true,
		}
	}
	rest := p.cur.src[p.cur.off:]
	r, size := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError && size == 1 {
		r = rune(rest[0])
	}
	reason := fmt.Sprintf("Unexpected token %s (0x%02X)", strconv.Quote(rest[:size]), r)
	return p.fail(diag.SynUnexpectedToken, reason, p.cur.off)
}

func (p *parser) fail(code diag.Code, reason string, off int) *SyntaxError {
	return &SyntaxError{
		Code:   code,
		Reason: reason,
		Offset: off,
		AtEOF:  off >= len(p.cur.src),
	}
}
