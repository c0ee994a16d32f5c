package js_output

import (
	"strings"

	"github.com/jsgen/jsgen/internal/js_ast"
)

// Pretty prints one statement per line with two-space indentation and
// spaces around binary operators
type Pretty struct {
	output

	indent      int
	atLineStart bool
}

func NewPretty(options Options) *Pretty {
	return &Pretty{output: newOutput(options), atLineStart: true}
}

func (p *Pretty) startToken() {
	if p.atLineStart {
		p.write(strings.Repeat("  ", p.indent))
		p.atLineStart = false
	}
}

func (p *Pretty) newline() {
	if !p.atLineStart {
		p.write("\n")
		p.atLineStart = true
	}
}

func (p *Pretty) space() {
	if !p.atLineStart && p.lastChar != ' ' {
		p.write(" ")
	}
}

func (p *Pretty) Add(text string) {
	if text == "" {
		return
	}
	if !p.atLineStart && p.needsSpaceBefore(text) {
		p.write(" ")
	}
	p.startToken()
	p.writeToken(text)
}

func (p *Pretty) AddOp(op string, binOp bool) {
	if !binOp {
		p.Add(op)
		return
	}
	p.space()
	p.startToken()
	p.writeToken(op)
	p.write(" ")
}

func (p *Pretty) AddNumber(text string) {
	p.Add(text)
}

func (p *Pretty) AddIdentifier(name string) {
	p.Add(name)
}

func (p *Pretty) BeginBlock() {
	p.space()
	p.startToken()
	p.writeToken("{")
	p.indent++
	p.newline()
}

func (p *Pretty) EndBlock(lineBreak bool) {
	p.newline()
	p.indent--
	p.startToken()
	p.writeToken("}")
	if lineBreak {
		p.newline()
	}
}

func (p *Pretty) EndClass(stmtCtx bool) {
	if stmtCtx {
		p.newline()
	}
}

func (p *Pretty) EndFunction(stmtCtx bool) {
	if stmtCtx {
		p.newline()
	}
}

func (p *Pretty) BeginCaseBody() {
	p.Add(":")
	p.indent++
	p.newline()
}

func (p *Pretty) EndCaseBody() {
	p.newline()
	p.indent--
}

func (p *Pretty) ListSeparator() {
	p.Add(",")
	p.write(" ")
}

func (p *Pretty) MaybeInsertSpace() {
	p.space()
}

func (p *Pretty) MaybeLineBreak() {
	p.newline()
}

func (p *Pretty) NotePreferredLineBreak() {
}

func (p *Pretty) EndStatement(needSemicolon bool) {
	p.Add(";")
	p.newline()
}

func (p *Pretty) ShouldPreserveExtraBlocks() bool {
	return true
}

// BreakAfterBlockFor decides whether the code after a block starts on a new
// line. Blocks that are followed by "else", "catch", "finally" or "while"
// keep the keyword on the same line.
func (p *Pretty) BreakAfterBlockFor(tree *js_ast.Tree, block js_ast.Index, stmtCtx bool) bool {
	parent := tree.Parent(block)
	if !parent.IsValid() {
		return true
	}

	switch tree.Kind(parent) {
	case js_ast.SDoWhile, js_ast.EFunction, js_ast.SNamespace:
		return false

	case js_ast.STry:
		return tree.ChildPosition(block) != 0

	case js_ast.SCatch:
		try := tree.Parent(parent)
		return !try.IsValid() || tree.NumChildren(try) < 3

	case js_ast.SIf:
		if tree.ChildPosition(block) == 1 {
			return tree.NumChildren(parent) < 3
		}
		return true
	}
	return true
}

// Code returns the code printed so far
func (p *Pretty) Code() []byte {
	return p.js.Done()
}
