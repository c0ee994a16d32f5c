package js_printer

import (
	"github.com/jsgen/jsgen/internal/js_ast"
	"github.com/jsgen/jsgen/internal/logger"
)

// Context describes the grammar position a node is printed in. It is passed
// down explicitly and never stored on a node.
type Context uint8

const (
	ContextOther Context = iota

	// A statement inside a script, block or case body
	ContextStatement

	// The body of an "if" that has an "else". An "if" without an "else" in this
	// position must be wrapped in braces or the "else" would bind to it.
	ContextBeforeDanglingElse

	// The leading position of an expression statement, where "function",
	// "class" and "{" would start a declaration or a block
	ContextStartOfExpr

	// The initializer of a "for" loop, where "in" would end the clause
	ContextInForInitClause

	// The leading position of an expression-bodied arrow function, where "{"
	// would start a block body
	ContextStartOfArrowBody

	// The leading position after "export default", where "function" and
	// "class" would start a declaration but "{" is an object literal
	ContextExportDefault
)

func (ctx Context) String() string {
	switch ctx {
	case ContextOther:
		return "OTHER"
	case ContextStatement:
		return "STATEMENT"
	case ContextBeforeDanglingElse:
		return "BEFORE_DANGLING_ELSE"
	case ContextStartOfExpr:
		return "START_OF_EXPR"
	case ContextInForInitClause:
		return "IN_FOR_INIT_CLAUSE"
	case ContextStartOfArrowBody:
		return "START_OF_ARROW_BODY"
	case ContextExportDefault:
		return "EXPORT_DEFAULT"
	}
	return "INVALID"
}

// The "for" initializer restriction reaches into right operands. Every other
// context only applies to the leftmost token.
func contextForNoIn(ctx Context) Context {
	if ctx == ContextInForInitClause {
		return ctx
	}
	return ContextOther
}

func contextForNonEmptyStatement(ctx Context) Context {
	if ctx == ContextBeforeDanglingElse {
		return ctx
	}
	return ContextOther
}

// Sink receives the token stream. It owns spacing, line breaks, indentation
// and source map bookkeeping, and answers the few policy questions the
// printer can't decide on its own.
type Sink interface {
	// Add appends text. The sink inserts a space if the text would otherwise
	// merge with the previous token.
	Add(text string)

	// AddOp appends an operator. Space around binary operators is optional.
	AddOp(op string, binOp bool)

	AddNumber(text string)
	AddIdentifier(name string)

	BeginBlock()
	EndBlock(lineBreak bool)
	EndClass(stmtCtx bool)
	EndFunction(stmtCtx bool)
	BeginCaseBody()
	EndCaseBody()
	ListSeparator()
	MaybeInsertSpace()
	MaybeLineBreak()
	NotePreferredLineBreak()

	// EndStatement ends a statement. A semicolon is required when the
	// statement would otherwise continue into the next one.
	EndStatement(needSemicolon bool)

	StartSourceMapping(loc logger.Loc, name string)
	EndSourceMapping(loc logger.Loc)

	ShouldPreserveExtraBlocks() bool
	BreakAfterBlockFor(tree *js_ast.Tree, block js_ast.Index, stmtCtx bool) bool

	// ContinueProcessing is polled before every node. Once it returns false
	// the printer stops without emitting anything else.
	ContinueProcessing() bool
}
