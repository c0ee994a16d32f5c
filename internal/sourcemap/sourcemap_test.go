package sourcemap

import (
	"testing"

	"github.com/jsgen/jsgen/internal/logger"
	"github.com/jsgen/jsgen/internal/test"
)

func TestVLQ(t *testing.T) {
	for _, value := range []int{0, 1, -1, 15, 16, -16, 123, -4567, 1 << 20} {
		encoded := encodeVLQ(nil, value)
		decoded, end := DecodeVLQ(encoded, 0)
		test.AssertEqual(t, decoded, value)
		test.AssertEqual(t, end, len(encoded))
	}

	test.AssertEqual(t, string(encodeVLQ(nil, 0)), "A")
	test.AssertEqual(t, string(encodeVLQ(nil, 1)), "C")
	test.AssertEqual(t, string(encodeVLQ(nil, -1)), "D")
	test.AssertEqual(t, string(encodeVLQ(nil, 16)), "gB")
}

func TestLineColumnOffset(t *testing.T) {
	offset := LineColumnOffset{}
	offset.AdvanceString("ab\ncd")
	test.AssertEqual(t, offset, LineColumnOffset{Lines: 1, Columns: 2})
	offset.AdvanceString("\r\n😀")
	test.AssertEqual(t, offset, LineColumnOffset{Lines: 2, Columns: 2})

	a := LineColumnOffset{Lines: 1, Columns: 4}
	a.Add(LineColumnOffset{Columns: 3})
	test.AssertEqual(t, a, LineColumnOffset{Lines: 1, Columns: 7})
	a.Add(LineColumnOffset{Lines: 2, Columns: 1})
	test.AssertEqual(t, a, LineColumnOffset{Lines: 3, Columns: 1})
}

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.AddSourceMapping(logger.Loc{Line: 1, Column: 0}, "", LineColumnOffset{})
	b.AddSourceMapping(logger.Loc{Line: 1, Column: 0}, "", LineColumnOffset{})
	b.AddSourceMapping(logger.Loc{}, "ignored", LineColumnOffset{Columns: 2})
	b.AddSourceMapping(logger.Loc{Line: 1, Column: 4}, "foo", LineColumnOffset{Columns: 4})
	b.AddSourceMapping(logger.Loc{Line: 3, Column: 2}, "bar", LineColumnOffset{Lines: 2, Columns: 1})
	b.AddSourceMapping(logger.Loc{Line: 3, Column: 8}, "foo", LineColumnOffset{Lines: 2, Columns: 9})
	test.AssertEqual(t, b.MappingCount(), 4)

	data := b.Generate("out.js", "in.json")
	test.AssertEqualWithDiff(t, string(data),
		`{"version":3,"file":"out.js","sources":["in.json"],"names":["foo","bar"],"mappings":"AAAA,IAAIA;;CAEFC,QAAMD"}`)

	sm, err := Parse(data)
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, len(sm.Mappings), 4)
	test.AssertEqual(t, sm.Mappings[1], Mapping{GeneratedLine: 0, GeneratedColumn: 4, OriginalLine: 0, OriginalColumn: 4, OriginalName: 0})
	test.AssertEqual(t, sm.Mappings[2], Mapping{GeneratedLine: 2, GeneratedColumn: 1, OriginalLine: 2, OriginalColumn: 2, OriginalName: 1})
	test.AssertEqual(t, sm.Mappings[3], Mapping{GeneratedLine: 2, GeneratedColumn: 9, OriginalLine: 2, OriginalColumn: 8, OriginalName: 0})

	found := sm.Find(2, 5)
	test.AssertEqual(t, found != nil, true)
	test.AssertEqual(t, found.OriginalColumn, int32(2))
	test.AssertEqual(t, sm.Find(1, 0) == nil, true)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"version":2,"sources":[],"names":[],"mappings":""}`))
	test.AssertEqual(t, err != nil, true)
	_, err = Parse([]byte(`{"version":3,"sources":[],"names":[],"mappings":"A!"}`))
	test.AssertEqual(t, err != nil, true)
}
