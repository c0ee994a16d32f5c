package helpers

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Charset answers whether a code point can be written to the output without
// escaping. A nil Charset means printable ASCII only.
type Charset interface {
	Name() string
	CanEncode(c rune) bool
}

type utf8Charset struct{}

func (utf8Charset) Name() string { return "utf-8" }

func (utf8Charset) CanEncode(c rune) bool {
	// Lone surrogates have no UTF-8 encoding
	return c < 0xD800 || (c > 0xDFFF && c <= 0x10FFFF)
}

type charmapCharset struct {
	name    string
	charmap *charmap.Charmap
}

func (cs charmapCharset) Name() string { return cs.name }

func (cs charmapCharset) CanEncode(c rune) bool {
	_, ok := cs.charmap.EncodeRune(c)
	return ok
}

type encoderCharset struct {
	name     string
	encoding encoding.Encoding
}

func (cs encoderCharset) Name() string { return cs.name }

func (cs encoderCharset) CanEncode(c rune) bool {
	if c >= 0xD800 && c <= 0xDFFF {
		return false
	}
	_, err := cs.encoding.NewEncoder().String(string(c))
	return err == nil
}

// LookupCharset resolves a charset label the same way browsers resolve the
// "charset" attribute. "ascii" and "us-ascii" return nil since the WHATWG
// index aliases them to windows-1252.
func LookupCharset(label string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "ascii", "us-ascii":
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	if name == "utf-8" {
		return utf8Charset{}, nil
	}
	if cm, ok := enc.(*charmap.Charmap); ok {
		return charmapCharset{name: name, charmap: cm}, nil
	}
	return encoderCharset{name: name, encoding: enc}, nil
}
