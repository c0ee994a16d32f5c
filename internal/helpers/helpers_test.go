package helpers_test

import (
	"strings"
	"testing"

	"github.com/jsgen/jsgen/internal/helpers"
	"github.com/jsgen/jsgen/internal/test"
)

func TestLookupCharset(t *testing.T) {
	cs, err := helpers.LookupCharset("us-ascii")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, cs, nil)

	cs, err = helpers.LookupCharset("UTF-8")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, cs.Name(), "utf-8")
	test.AssertEqual(t, cs.CanEncode('é'), true)
	test.AssertEqual(t, cs.CanEncode(0xD800), false)

	cs, err = helpers.LookupCharset("latin1")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, cs.Name(), "windows-1252")
	test.AssertEqual(t, cs.CanEncode('é'), true)
	test.AssertEqual(t, cs.CanEncode('π'), false)

	cs, err = helpers.LookupCharset("shift_jis")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, cs.CanEncode('あ'), true)
	test.AssertEqual(t, cs.CanEncode('é'), false)

	_, err = helpers.LookupCharset("no-such-charset")
	test.AssertEqual(t, err != nil, true)
}

func TestUTF16Len(t *testing.T) {
	test.AssertEqual(t, helpers.UTF16Len(""), 0)
	test.AssertEqual(t, helpers.UTF16Len("abc"), 3)
	test.AssertEqual(t, helpers.UTF16Len("é"), 1)
	test.AssertEqual(t, helpers.UTF16Len("😀"), 2)
	test.AssertEqual(t, helpers.UTF16Len(helpers.UTF16ToString([]uint16{0xD800})), 1)
}

func TestJoiner(t *testing.T) {
	j := helpers.Joiner{}
	j.AddString("a")
	j.AddBytes([]byte("bc"))
	j.AddString("")
	test.AssertEqual(t, j.Length(), uint32(3))
	test.AssertEqual(t, j.LastByte(), byte('c'))
	j.EnsureNewlineAtEnd()
	test.AssertEqual(t, string(j.Done()), "abc\n")
}

func TestPrettyPrintedStack(t *testing.T) {
	stack := helpers.PrettyPrintedStack()
	lines := strings.Split(stack, "\n")
	test.AssertEqual(t, strings.HasPrefix(lines[0], "helpers_test.TestPrettyPrintedStack (internal/helpers/helpers_test.go:"), true)
	test.AssertEqual(t, strings.Contains(stack, "testing.tRunner ("), true)
}
