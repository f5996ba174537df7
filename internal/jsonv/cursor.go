package jsonv

// cursor walks the document byte by byte.
type cursor struct {
	src string
	off int
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek возвращает текущий байт или 0 на конце ввода
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

// skipSpace пропускает только JSON-пробелы: ' ', '\t', '\n', '\r'
func (c *cursor) skipSpace() {
	for !c.eof() {
		switch c.src[c.off] {
		case ' ', '\t', '\n', '\r':
			c.off++
		default:
			return
		}
	}
}

func (c *cursor) skipDigits() {
	for isDigit(c.peek()) {
		c.off++
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func hexVal(b byte) (rune, bool) {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0'), true
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return rune(b-'A') + 10, true
	}
	return 0, false
}
