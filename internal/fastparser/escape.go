package fastparser

// Escape sequences accepted inside quoted atoms:
//
//	\b \t \v \n \f \r \" \' \\   short escapes
//	\ooo                        three octal digits, value 0-255
//	\xhh                        two hex digits
//	\<LF>[<CR>]  \<CR>[<LF>]     line continuation, decodes to a single '\n'

var shortEscapes = [256]byte{
	'b':  '\b',
	't':  '\t',
	'v':  '\v',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// escapeLen returns the length of the escape sequence at the start of s,
// which must begin with a backslash. It returns 0 if the sequence is illegal
// or incomplete.
func escapeLen(s []byte) int {
	if len(s) < 2 {
		return 0
	}
	c := s[1]
	switch {
	case shortEscapes[c] != 0:
		return 2
	case c == 'x':
		if len(s) >= 4 && isHexDigit(s[2]) && isHexDigit(s[3]) {
			return 4
		}
		return 0
	case isOctalDigit(c):
		// the leading digit bounds the value to 0377
		if c <= '3' && len(s) >= 4 && isOctalDigit(s[2]) && isOctalDigit(s[3]) {
			return 4
		}
		return 0
	case c == '\n':
		if len(s) > 2 && s[2] == '\r' {
			return 3
		}
		return 2
	case c == '\r':
		if len(s) > 2 && s[2] == '\n' {
			return 3
		}
		return 2
	}
	return 0
}

// escapeValue decodes a complete escape sequence as measured by escapeLen.
func escapeValue(seq []byte) byte {
	c := seq[1]
	switch {
	case shortEscapes[c] != 0:
		return shortEscapes[c]
	case c == 'x':
		return hexValue(seq[2])<<4 | hexValue(seq[3])
	case isOctalDigit(c):
		return (c-'0')<<6 | (seq[2]-'0')<<3 | (seq[3] - '0')
	default:
		return '\n'
	}
}

// CheckEscapes validates every escape sequence in the raw content of a quoted
// atom. It returns the offset of the first illegal backslash, or -1.
func CheckEscapes(raw []byte) int {
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			i++
			continue
		}
		n := escapeLen(raw[i:])
		if n == 0 {
			return i
		}
		i += n
	}
	return -1
}

// Unescape decodes raw in place and returns the decoded prefix of raw. The
// result is never longer than the input. Content without a backslash is
// returned unchanged. Illegal sequences are copied through verbatim; callers
// validate with CheckEscapes first.
func Unescape(raw []byte) []byte {
	w := 0
	for r := 0; r < len(raw); {
		c := raw[r]
		if c != '\\' {
			raw[w] = c
			w++
			r++
			continue
		}
		n := escapeLen(raw[r:])
		if n == 0 {
			raw[w] = c
			w++
			r++
			continue
		}
		raw[w] = escapeValue(raw[r : r+n])
		w++
		r += n
	}
	return raw[:w]
}
