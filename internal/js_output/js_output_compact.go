package js_output

import (
	"github.com/jsgen/jsgen/internal/js_ast"
)

// Compact prints code without optional whitespace. Semicolons are written
// lazily so that the last statement of a block doesn't get one.
type Compact struct {
	output

	statementStarted    bool
	statementNeedsEnded bool
}

func NewCompact(options Options) *Compact {
	return &Compact{output: newOutput(options)}
}

func (c *Compact) maybeEndStatement() {
	if c.statementNeedsEnded {
		c.write(";")
		c.statementNeedsEnded = false
		c.maybeCutLine()
	}
	c.statementStarted = true
}

func (c *Compact) maybeCutLine() {
	if threshold := c.options.LineLengthThreshold; threshold > 0 && c.lineLength > threshold {
		c.write("\n")
	}
}

func (c *Compact) add(text string) {
	c.maybeEndStatement()
	if c.needsSpaceBefore(text) {
		c.write(" ")
	}
	c.writeToken(text)
}

func (c *Compact) Add(text string) {
	c.add(text)
}

func (c *Compact) AddOp(op string, binOp bool) {
	c.add(op)
}

func (c *Compact) AddNumber(text string) {
	c.add(text)
}

func (c *Compact) AddIdentifier(name string) {
	c.add(name)
}

func (c *Compact) BeginBlock() {
	c.add("{")
	c.statementStarted = false
}

func (c *Compact) EndBlock(lineBreak bool) {
	// The last statement in a block doesn't need a semicolon
	c.statementNeedsEnded = false
	c.writeToken("}")
	c.statementStarted = true
}

func (c *Compact) EndClass(stmtCtx bool) {
	if stmtCtx {
		c.statementStarted = false
		c.maybeCutLine()
	}
}

func (c *Compact) EndFunction(stmtCtx bool) {
	if stmtCtx {
		c.statementStarted = false
		c.maybeCutLine()
	}
}

func (c *Compact) BeginCaseBody() {
	c.add(":")
	c.statementStarted = false
}

func (c *Compact) EndCaseBody() {
}

func (c *Compact) ListSeparator() {
	c.add(",")
}

func (c *Compact) MaybeInsertSpace() {
}

func (c *Compact) MaybeLineBreak() {
	if threshold := c.options.LineLengthThreshold; threshold > 0 && c.lineLength > threshold {
		c.maybeEndStatement()
		c.statementStarted = false
		if c.lineLength > 0 {
			c.write("\n")
		}
	}
}

func (c *Compact) NotePreferredLineBreak() {
	c.MaybeLineBreak()
}

func (c *Compact) EndStatement(needSemicolon bool) {
	if needSemicolon {
		c.maybeEndStatement()
		c.writeToken(";")
		c.statementStarted = false
		c.maybeCutLine()
	} else if c.statementStarted {
		c.statementNeedsEnded = true
	}
}

func (c *Compact) ShouldPreserveExtraBlocks() bool {
	return c.options.PreserveExtraBlocks
}

func (c *Compact) BreakAfterBlockFor(tree *js_ast.Tree, block js_ast.Index, stmtCtx bool) bool {
	return stmtCtx
}

// Code returns the code printed so far. The semicolon of the final
// statement is never needed.
func (c *Compact) Code() []byte {
	return c.js.Done()
}
