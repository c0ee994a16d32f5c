package js_lexer

import (
	"testing"

	"github.com/jsgen/jsgen/internal/test"
)

func expectIdentifier(t *testing.T, text string, expected bool) {
	t.Helper()
	t.Run(text, func(t *testing.T) {
		t.Helper()
		test.AssertEqual(t, IsIdentifier(text), expected)
	})
}

func TestIdentifier(t *testing.T) {
	expectIdentifier(t, "", false)
	expectIdentifier(t, "a", true)
	expectIdentifier(t, "$", true)
	expectIdentifier(t, "_0", true)
	expectIdentifier(t, "a$b_c9", true)
	expectIdentifier(t, "0a", false)
	expectIdentifier(t, "a-b", false)
	expectIdentifier(t, "a b", false)
	expectIdentifier(t, "café", true)
	expectIdentifier(t, "π", true)
	expectIdentifier(t, "ab‌", true)
	expectIdentifier(t, "‌", false)
	expectIdentifier(t, "á", true)
	expectIdentifier(t, "😀", false)
}

func TestLatinIdentifier(t *testing.T) {
	test.AssertEqual(t, IsLatinIdentifier("abc"), true)
	test.AssertEqual(t, IsLatinIdentifier("café"), false)
	test.AssertEqual(t, IsLatinIdentifier("1x"), false)
}

func TestKeywords(t *testing.T) {
	test.AssertEqual(t, IsKeyword("class"), true)
	test.AssertEqual(t, IsKeyword("instanceof"), true)
	test.AssertEqual(t, IsKeyword("let"), false)
	test.AssertEqual(t, StrictModeReservedWords["let"], true)
	test.AssertEqual(t, IsKeyword("Class"), false)
}
