package js_printer

import (
	"strconv"
	"strings"

	"github.com/jsgen/jsgen/internal/helpers"
)

const hexChars = "0123456789abcdef"

type escapeMode uint8

const (
	escapeString escapeMode = iota
	escapeRegExp
	escapeIdentifier

	// Raw template text, which keeps its escape sequences
	escapeTemplate
)

func (p *Printer) canPrintWithoutEscape(c rune, mode escapeMode) bool {
	if c >= 0x20 && c <= 0x7E {
		return true
	}
	return c >= 0x80 && mode != escapeIdentifier && p.options.Charset != nil && p.options.Charset.CanEncode(c)
}

// bestQuoteCharForString returns the quote that needs the fewest escapes.
// Ties go to double quotes unless single quotes are preferred.
func (p *Printer) bestQuoteCharForString(text string) byte {
	singleCost := 0
	doubleCost := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			singleCost++
		case '"':
			doubleCost++
		}
	}
	if p.options.PreferSingleQuotes {
		if singleCost <= doubleCost {
			return '\''
		}
	} else if singleCost < doubleCost {
		return '\''
	}
	return '"'
}

// quotedString returns the string literal for "text" including its quotes.
// Results are cached for the lifetime of the printer since every option that
// affects them is fixed when the printer is created.
func (p *Printer) quotedString(text string) string {
	if quoted, ok := p.quotedStrings[text]; ok {
		return quoted
	}
	quote := p.bestQuoteCharForString(text)
	js := make([]byte, 0, len(text)+2)
	js = append(js, quote)
	js = p.appendEscaped(js, text, quote, escapeString)
	js = append(js, quote)
	quoted := string(js)
	p.quotedStrings[text] = quoted
	return quoted
}

func (p *Printer) printableRegExp(pattern string) string {
	return string(p.appendEscaped(nil, pattern, 0, escapeRegExp))
}

func (p *Printer) printableTemplate(raw string) string {
	return string(p.appendEscaped(nil, raw, 0, escapeTemplate))
}

func (p *Printer) printableIdentifier(name string) string {
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 0x20 || c > 0x7E {
			return string(p.appendEscaped(nil, name, 0, escapeIdentifier))
		}
	}
	return name
}

func (p *Printer) appendEscaped(js []byte, text string, quote byte, mode escapeMode) []byte {
	n := len(text)
	i := 0

	for i < n {
		c, width := helpers.DecodeWTF8Rune(text[i:])
		if width == 0 {
			// Truncated sequences decode as one replacement character per byte
			width = 1
		}

		if mode == escapeIdentifier {
			if c >= 0x20 && c <= 0x7E {
				js = append(js, byte(c))
			} else if c > 0xFFFF {
				// Surrogate pair escapes are not allowed in identifiers
				js = append(js, "\\u{"...)
				js = strconv.AppendInt(js, int64(c), 16)
				js = append(js, '}')
			} else {
				js = appendUnicodeEscape(js, c)
			}
			i += width
			continue
		}

		switch c {
		case '\\':
			if mode == escapeRegExp || mode == escapeTemplate {
				// Keep escape sequences intact
				if i+1 < n {
					next, nextWidth := helpers.DecodeWTF8Rune(text[i+1:])
					if nextWidth == 0 {
						nextWidth = 1
					}
					if (!p.canPrintWithoutEscape(next, mode) && next != '\n' && next != '\r') || next == '<' {
						// "\é" means "é", which is printed below as a "\u" escape. A
						// "<" gets the same treatment so "</script" is still broken up.
						i++
						continue
					}
					if next < 0x80 {
						js = append(js, '\\', byte(next))
						i += 1 + nextWidth
						continue
					}
					js = append(js, '\\')
					js = append(js, text[i+1:i+1+nextWidth]...)
					i += 1 + nextWidth
					continue
				}
				js = append(js, '\\', '\\')
			} else {
				js = append(js, '\\', '\\')
			}

		case 0:
			if mode == escapeRegExp || (i+1 < n && text[i+1] >= '0' && text[i+1] <= '9') {
				// "\01" would be an octal escape
				js = append(js, "\\x00"...)
			} else {
				js = append(js, "\\0"...)
			}

		case '\b':
			if mode == escapeRegExp {
				// "\b" is a word boundary inside a pattern
				js = appendCodePointEscape(js, c)
			} else {
				js = append(js, "\\b"...)
			}

		case '\f':
			js = append(js, "\\f"...)

		case '\n':
			js = append(js, "\\n"...)

		case '\r':
			js = append(js, "\\r"...)

		case '\t':
			js = append(js, "\\t"...)

		case '\v':
			js = append(js, "\\v"...)

		case '\u2028':
			js = append(js, "\\u2028"...)

		case '\u2029':
			js = append(js, "\\u2029"...)

		case '\'', '"':
			if mode == escapeString && byte(c) == quote {
				js = append(js, '\\')
			}
			js = append(js, byte(c))

		case '`':
			if mode == escapeString || mode == escapeTemplate {
				js = append(js, '\\')
			}
			js = append(js, '`')

		case '$':
			if mode == escapeTemplate && i+1 < n && text[i+1] == '{' {
				// "${" would start a substitution
				js = append(js, '\\')
			}
			js = append(js, '$')

		case '=':
			if mode == escapeString && !p.options.TrustedStrings {
				js = append(js, "\\x3d"...)
			} else {
				js = append(js, '=')
			}

		case '&':
			if mode == escapeString && !p.options.TrustedStrings {
				js = append(js, "\\x26"...)
			} else {
				js = append(js, '&')
			}

		case '>':
			if (mode == escapeString && !p.options.TrustedStrings) ||
				(i >= 2 && (text[i-2:i] == "--" || text[i-2:i] == "]]")) {
				// Break up "-->" and "]]>"
				js = append(js, "\\x3e"...)
			} else {
				js = append(js, '>')
			}

		case '<':
			rest := text[i+1:]
			switch {
			case len(rest) >= 7 && strings.EqualFold(rest[:7], "/script"):
				if mode == escapeRegExp {
					// "</script" => "<\/script"
					js = append(js, '<', '\\')
				} else {
					js = append(js, "\\x3c"...)
				}

			case strings.HasPrefix(rest, "!--") || (mode == escapeString && !p.options.TrustedStrings):
				js = append(js, "\\x3c"...)

			default:
				js = append(js, '<')
			}

		default:
			if p.canPrintWithoutEscape(c, mode) {
				js = append(js, text[i:i+width]...)
			} else {
				js = appendCodePointEscape(js, c)
			}
		}

		i += width
	}

	return js
}

func appendUnicodeEscape(js []byte, c rune) []byte {
	return append(js, '\\', 'u', hexChars[c>>12], hexChars[(c>>8)&15], hexChars[(c>>4)&15], hexChars[c&15])
}

// Code points outside the basic plane are written as a surrogate pair
func appendCodePointEscape(js []byte, c rune) []byte {
	if c <= 0xFFFF {
		return appendUnicodeEscape(js, c)
	}
	c -= 0x10000
	js = appendUnicodeEscape(js, 0xD800+((c>>10)&0x3FF))
	return appendUnicodeEscape(js, 0xDC00+(c&0x3FF))
}
