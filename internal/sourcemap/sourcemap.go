package sourcemap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jsgen/jsgen/internal/logger"
)

type Mapping struct {
	GeneratedLine   int32 // 0-based
	GeneratedColumn int32 // 0-based count of UTF-16 code units

	SourceIndex    int32 // 0-based
	OriginalLine   int32 // 0-based
	OriginalColumn int32 // 0-based count of UTF-16 code units
	OriginalName   int32 // 0-based, -1 when absent
}

type SourceMap struct {
	Sources  []string
	Mappings []Mapping
	Names    []string
}

func (sm *SourceMap) Find(line int32, column int32) *Mapping {
	mappings := sm.Mappings

	// Binary search
	count := len(mappings)
	index := 0
	for count > 0 {
		step := count / 2
		i := index + step
		mapping := mappings[i]
		if mapping.GeneratedLine < line || (mapping.GeneratedLine == line && mapping.GeneratedColumn <= column) {
			index = i + 1
			count -= step + 1
		} else {
			count = step
		}
	}

	// Handle search failure
	if index > 0 {
		mapping := &mappings[index-1]

		// Match the behavior of the popular "source-map" library from Mozilla
		if mapping.GeneratedLine == line {
			return mapping
		}
	}
	return nil
}

var base64 = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

// A single base 64 digit can contain 6 bits of data. For the base 64 variable
// length quantities we use in the source map spec, the first bit is the sign,
// the next four bits are the actual value, and the 6th bit is the continuation
// bit. The continuation bit tells us whether there are more digits in this
// value following this digit.
//
//	Continuation
//	|    Sign
//	|    |
//	V    V
//	101011
func encodeVLQ(encoded []byte, value int) []byte {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	// Handle the common case
	if (vlq >> 5) == 0 {
		digit := vlq & 31
		encoded = append(encoded, base64[digit])
		return encoded
	}

	for {
		digit := vlq & 31
		vlq >>= 5

		// If there are still more digits in this value, we must make sure the
		// continuation bit is marked
		if vlq != 0 {
			digit |= 32
		}

		encoded = append(encoded, base64[digit])

		if vlq == 0 {
			break
		}
	}

	return encoded
}

// DecodeVLQ returns the value at "start" and the offset just past it. The
// returned offset equals "start" when the input holds no valid digit there.
func DecodeVLQ(encoded []byte, start int) (int, int) {
	shift := 0
	vlq := 0

	// Scan over the input
	for start < len(encoded) {
		index := bytes.IndexByte(base64, encoded[start])
		if index < 0 {
			break
		}

		// Decode a single byte
		vlq |= (index & 31) << shift
		start++
		shift += 5

		// Stop if there's no continuation bit
		if (index & 32) == 0 {
			break
		}
	}

	// Recover the value
	value := vlq >> 1
	if (vlq & 1) != 0 {
		value = -value
	}
	return value, start
}

// LineColumnOffset tracks a position in generated code. Columns count UTF-16
// code units like Mozilla's "source-map" library does.
type LineColumnOffset struct {
	Lines   int
	Columns int
}

func (a LineColumnOffset) ComesBefore(b LineColumnOffset) bool {
	return a.Lines < b.Lines || (a.Lines == b.Lines && a.Columns < b.Columns)
}

func (a *LineColumnOffset) Add(b LineColumnOffset) {
	if b.Lines == 0 {
		a.Columns += b.Columns
	} else {
		a.Lines += b.Lines
		a.Columns = b.Columns
	}
}

func (offset *LineColumnOffset) AdvanceString(text string) {
	columns := offset.Columns
	for i, c := range text {
		switch c {
		case '\r', '\n', '\u2028', '\u2029':
			// Handle Windows-specific "\r\n" newlines
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				columns++
				continue
			}

			offset.Lines++
			columns = 0

		default:
			if c <= 0xFFFF {
				columns++
			} else {
				columns += 2
			}
		}
	}
	offset.Columns = columns
}

type state struct {
	generatedLine   int
	generatedColumn int
	originalLine    int
	originalColumn  int
	originalName    int
}

// Builder accumulates mappings for a single generated file that maps back to
// a single source. Mappings must be added in generated order.
type Builder struct {
	mappings        []byte
	names           []string
	namesMap        map[string]int
	prevState       state
	prevOriginalLoc logger.Loc
	prevGenerated   LineColumnOffset
	hasPrevState    bool
	count           int
}

func NewBuilder() *Builder {
	return &Builder{namesMap: make(map[string]int)}
}

// AddSourceMapping records that the generated position "generated" comes from
// "originalLoc". Unknown locations are ignored.
func (b *Builder) AddSourceMapping(originalLoc logger.Loc, originalName string, generated LineColumnOffset) {
	if !originalLoc.IsValid() {
		return
	}

	// Avoid generating duplicate mappings
	if b.hasPrevState && originalLoc == b.prevOriginalLoc && generated == b.prevGenerated {
		return
	}
	if b.hasPrevState && generated.ComesBefore(b.prevGenerated) {
		panic("Internal error: source mappings must be added in order")
	}
	b.prevOriginalLoc = originalLoc
	b.prevGenerated = generated

	// Handle line breaks in between this mapping and the previous one
	for b.prevState.generatedLine < generated.Lines {
		b.mappings = append(b.mappings, ';')
		b.prevState.generatedLine++
		b.prevState.generatedColumn = 0
	}

	current := state{
		generatedLine:   generated.Lines,
		generatedColumn: generated.Columns,
		originalLine:    int(originalLoc.Line) - 1,
		originalColumn:  int(originalLoc.Column),
		originalName:    b.prevState.originalName,
	}

	// Put commas in between mappings
	if n := len(b.mappings); n > 0 && b.mappings[n-1] != ';' {
		b.mappings = append(b.mappings, ',')
	}

	// The source index is always zero since there's only one source
	b.mappings = encodeVLQ(b.mappings, current.generatedColumn-b.prevState.generatedColumn)
	b.mappings = encodeVLQ(b.mappings, 0)
	b.mappings = encodeVLQ(b.mappings, current.originalLine-b.prevState.originalLine)
	b.mappings = encodeVLQ(b.mappings, current.originalColumn-b.prevState.originalColumn)

	// Optionally reference the original name
	if originalName != "" {
		i, ok := b.namesMap[originalName]
		if !ok {
			i = len(b.names)
			b.names = append(b.names, originalName)
			b.namesMap[originalName] = i
		}
		b.mappings = encodeVLQ(b.mappings, i-b.prevState.originalName)
		current.originalName = i
	}

	b.prevState = current
	b.hasPrevState = true
	b.count++
}

func (b *Builder) MappingCount() int {
	return b.count
}

type jsonSourceMap struct {
	Version  int      `json:"version"`
	File     string   `json:"file,omitempty"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// Generate serializes the mappings as a version 3 source map
func (b *Builder) Generate(file string, source string) []byte {
	names := b.names
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(jsonSourceMap{
		Version:  3,
		File:     file,
		Sources:  []string{source},
		Names:    names,
		Mappings: string(b.mappings),
	})
	if err != nil {
		panic("Internal error: " + err.Error())
	}
	return data
}

// Parse decodes a version 3 source map. It only understands what "Generate"
// produces, which is enough to check and query generated maps.
func Parse(data []byte) (*SourceMap, error) {
	var raw jsonSourceMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Version != 3 {
		return nil, fmt.Errorf("unsupported source map version %d", raw.Version)
	}

	sm := &SourceMap{Sources: raw.Sources, Names: raw.Names}
	mappings := []byte(raw.Mappings)
	var generatedLine, generatedColumn, sourceIndex, originalLine, originalColumn, originalName int

	for i := 0; i < len(mappings); {
		switch mappings[i] {
		case ';':
			generatedLine++
			generatedColumn = 0
			i++
			continue
		case ',':
			i++
			continue
		}

		var delta, next int
		delta, next = DecodeVLQ(mappings, i)
		if next == i {
			return nil, fmt.Errorf("invalid mappings at offset %d", i)
		}
		generatedColumn += delta
		i = next

		mapping := Mapping{OriginalName: -1}
		if i < len(mappings) && mappings[i] != ',' && mappings[i] != ';' {
			values := [3]*int{&sourceIndex, &originalLine, &originalColumn}
			for _, value := range values {
				delta, next = DecodeVLQ(mappings, i)
				if next == i {
					return nil, fmt.Errorf("invalid mappings at offset %d", i)
				}
				*value += delta
				i = next
			}
			if i < len(mappings) && mappings[i] != ',' && mappings[i] != ';' {
				delta, next = DecodeVLQ(mappings, i)
				if next == i {
					return nil, fmt.Errorf("invalid mappings at offset %d", i)
				}
				originalName += delta
				i = next
				mapping.OriginalName = int32(originalName)
			}
		}

		mapping.GeneratedLine = int32(generatedLine)
		mapping.GeneratedColumn = int32(generatedColumn)
		mapping.SourceIndex = int32(sourceIndex)
		mapping.OriginalLine = int32(originalLine)
		mapping.OriginalColumn = int32(originalColumn)
		sm.Mappings = append(sm.Mappings, mapping)
	}

	return sm, nil
}
