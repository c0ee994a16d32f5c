package js_output

import (
	"context"

	"github.com/jsgen/jsgen/internal/helpers"
	"github.com/jsgen/jsgen/internal/logger"
	"github.com/jsgen/jsgen/internal/sourcemap"
)

type Options struct {
	// Printing stops once this is done. A nil context never stops.
	Context context.Context

	// Printing stops once the output is longer than this many bytes. Zero
	// means no limit.
	OutputLimit int

	SourceMap bool

	// The compact printer cuts lines that are longer than this at statement
	// boundaries. Zero means never.
	LineLengthThreshold int

	// Keep braces around single statements and empty blocks in the compact
	// printer. The pretty printer always keeps them.
	PreserveExtraBlocks bool
}

type pendingMapping struct {
	loc  logger.Loc
	name string
}

// output is the part shared by both printers: it owns the bytes written so
// far, the generated position and the source map.
type output struct {
	options Options

	js         helpers.Joiner
	generated  sourcemap.LineColumnOffset
	lastChar   byte
	prevChar   byte
	lineLength int
	canceled   bool

	builder *sourcemap.Builder
	pending []pendingMapping
}

func newOutput(options Options) output {
	o := output{options: options}
	if options.SourceMap {
		o.builder = sourcemap.NewBuilder()
	}
	return o
}

// writeToken writes code that source mappings point at
func (o *output) writeToken(text string) {
	if text == "" {
		return
	}
	if len(o.pending) > 0 {
		for _, m := range o.pending {
			o.builder.AddSourceMapping(m.loc, m.name, o.generated)
		}
		o.pending = o.pending[:0]
	}
	o.write(text)
}

// write writes whitespace or punctuation without flushing mappings
func (o *output) write(text string) {
	if text == "" {
		return
	}
	o.js.AddString(text)
	if len(text) >= 2 {
		o.prevChar = text[len(text)-2]
	} else {
		o.prevChar = o.lastChar
	}
	o.lastChar = text[len(text)-1]

	if o.builder != nil {
		o.generated.AdvanceString(text)
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			o.lineLength = 0
		} else {
			o.lineLength++
		}
	}
}

func (o *output) StartSourceMapping(loc logger.Loc, name string) {
	if o.builder != nil && loc.IsValid() {
		o.pending = append(o.pending, pendingMapping{loc: loc, name: name})
	}
}

// A node that printed nothing doesn't get a mapping
func (o *output) EndSourceMapping(loc logger.Loc) {
	if n := len(o.pending); n > 0 && o.pending[n-1].loc == loc {
		o.pending = o.pending[:n-1]
	}
}

func (o *output) ContinueProcessing() bool {
	if o.canceled {
		return false
	}
	if ctx := o.options.Context; ctx != nil && ctx.Err() != nil {
		o.canceled = true
	} else if limit := o.options.OutputLimit; limit > 0 && int(o.js.Length()) > limit {
		o.canceled = true
	}
	return !o.canceled
}

// Canceled reports whether printing was stopped before it was complete
func (o *output) Canceled() bool {
	return o.canceled
}

func (o *output) Length() int {
	return int(o.js.Length())
}

// SourceMap returns the source map for the code printed so far, or nil when
// source maps are disabled
func (o *output) SourceMap(file string, source string) []byte {
	if o.builder == nil {
		return nil
	}
	return o.builder.Generate(file, source)
}

func isWordChar(c byte) bool {
	return c == '_' || c == '$' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// needsSpaceBefore reports whether "text" would merge with what has already
// been written, as in "a in b", "/x/ /y/" or "a+ +b"
func (o *output) needsSpaceBefore(text string) bool {
	if text == "" || o.js.Length() == 0 {
		return false
	}
	c := text[0]
	last := o.lastChar

	switch {
	case (isWordChar(c) || c == '\\') && isWordChar(last):
		return true
	case c == '/' && last == '/':
		return true
	case (c == '+' || c == '-') && last == c:
		return true
	case c == '>' && last == '-' && o.prevChar == '-':
		// "a-- >b" must not become an HTML comment closer
		return true
	case c == '!' && last == '<':
		// "a< !--b" must not become an HTML comment opener
		return true
	}
	return false
}
