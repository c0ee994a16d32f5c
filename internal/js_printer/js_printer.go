package js_printer

import (
	"fmt"

	"github.com/jsgen/jsgen/internal/helpers"
	"github.com/jsgen/jsgen/internal/js_ast"
)

type Options struct {
	// Use single quotes when a string needs as many escapes either way
	PreferSingleQuotes bool

	// Only break up "-->", "]]>", "</script" and "<!--" inside strings. When
	// this is false, "=", "&", "<" and ">" are always escaped.
	TrustedStrings bool

	// Characters outside printable ASCII are only printed as-is when the
	// charset can encode them. A nil charset means ASCII only.
	Charset helpers.Charset

	// Print JSDoc comments and casts. Type syntax that is part of the tree
	// is always printed.
	PreserveTypeAnnotations bool

	QuoteKeywordProperties bool
	UseOriginalName         bool
}

// Printer turns trees into tokens for a Sink. A Printer caches escaped
// strings and must not be used from more than one goroutine at a time.
type Printer struct {
	options       Options
	quotedStrings map[string]string
}

func NewPrinter(options Options) *Printer {
	return &Printer{
		options:       options,
		quotedStrings: make(map[string]string),
	}
}

// InvariantViolationError means the tree is malformed: a node has the wrong
// number of children or a child of a kind its slot doesn't allow.
type InvariantViolationError struct {
	Node   js_ast.Index
	Kind   js_ast.Kind
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("malformed %s node %d: %s", e.Kind, e.Node, e.Detail)
}

// UnsupportedConstructError means there is no way to print a node
type UnsupportedConstructError struct {
	Node js_ast.Index
	Kind js_ast.Kind
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("cannot print %s node %d", e.Kind, e.Node)
}

// This is thrown when the sink asks the printer to stop
type stopPrinting struct{}

type printer struct {
	*Printer
	tree *js_ast.Tree
	sink Sink
}

// Print sends the tokens for the subtree at "root" to "sink". Cancellation
// by the sink is not an error. The tree is never modified, so printing the
// same tree twice produces the same tokens.
func (p *Printer) Print(tree *js_ast.Tree, root js_ast.Index, ctx Context, sink Sink) (err error) {
	if !root.IsValid() || int(root) >= len(tree.Nodes) {
		return &InvariantViolationError{Node: root, Detail: "the root is not in the tree"}
	}

	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case stopPrinting:
			case *InvariantViolationError:
				err = e
			case *UnsupportedConstructError:
				err = e
			default:
				panic(r)
			}
		}
	}()

	pr := &printer{Printer: p, tree: tree, sink: sink}
	if kind := tree.Kind(root); kind.IsStatement() || kind.IsType() {
		pr.print(root, ctx)
	} else if ctx == ContextStatement {
		pr.printStatement(root)
	} else {
		pr.printExpr(root, js_ast.LLowest, ctx, 0)
	}
	return nil
}

func (p *printer) fail(n js_ast.Index, format string, args ...interface{}) {
	panic(&InvariantViolationError{Node: n, Kind: p.tree.Kind(n), Detail: fmt.Sprintf(format, args...)})
}

func (p *printer) isInTree(n js_ast.Index) bool {
	return n.IsValid() && int(n) < len(p.tree.Nodes)
}

// enter polls for cancellation and checks the shape of a node before any of
// it is printed
func (p *printer) enter(n js_ast.Index) *js_ast.Node {
	if !p.sink.ContinueProcessing() {
		panic(stopPrinting{})
	}

	node := &p.tree.Nodes[n]
	if !node.Kind.IsKnown() {
		panic(&UnsupportedConstructError{Node: n, Kind: node.Kind})
	}
	for i, child := range node.Children {
		if !p.isInTree(child) {
			p.fail(n, "child %d refers to missing node %d", i, child)
		}
	}
	if node.DeclaredType.IsValid() && !p.isInTree(node.DeclaredType) {
		p.fail(n, "type refers to missing node %d", node.DeclaredType)
	}
	if node.Generics.IsValid() && !p.isInTree(node.Generics) {
		p.fail(n, "generics refer to missing node %d", node.Generics)
	}
	for _, child := range node.Implements {
		if !p.isInTree(child) {
			p.fail(n, "implemented interface refers to missing node %d", child)
		}
	}
	if !node.Kind.ArityOK(len(node.Children)) {
		p.fail(n, "unexpected number of children %d", len(node.Children))
	}
	if (node.Kind == js_ast.EBinary && node.Op.IsUnary()) || (node.Kind == js_ast.EUnary && !node.Op.IsUnary()) {
		p.fail(n, "operator %q has the wrong arity", js_ast.OpTable[node.Op].Text)
	}
	if v := p.tree.CheckSlots(n); v != nil {
		p.fail(n, "%s", v)
	}
	return node
}

func (p *printer) print(n js_ast.Index, ctx Context) {
	p.printEntered(n, p.enter(n), ctx)
}

func (p *printer) printEntered(n js_ast.Index, node *js_ast.Node, ctx Context) {
	if node.Doc != nil && p.options.PreserveTypeAnnotations && node.Kind != js_ast.ECast {
		p.printJSDoc(node.Doc)
	}

	hasMapping := node.Loc.IsValid()
	if hasMapping {
		p.sink.StartSourceMapping(node.Loc, p.mappingName(node))
	}

	switch {
	case node.Kind.IsStatement():
		p.printStmt(n, node, ctx)
	case node.Kind.IsType():
		p.printType(n, node)
	default:
		p.printExprNode(n, node, ctx)
	}

	if hasMapping {
		p.sink.EndSourceMapping(node.Loc)
	}
}

func (p *printer) mappingName(node *js_ast.Node) string {
	if node.Kind == js_ast.EIdentifier && node.OriginalName != "" {
		return node.OriginalName
	}
	return ""
}

// printStatement prints a child of a script, block, case body or namespace
func (p *printer) printStatement(n js_ast.Index) {
	node := &p.tree.Nodes[n]
	switch {
	case node.Kind.IsStatement():
		p.print(n, ContextStatement)

	case node.Kind == js_ast.EClass || (node.Kind == js_ast.EFunction && !node.Flags.Has(js_ast.FlagArrow)):
		// Declarations
		p.print(n, ContextStatement)
		p.sink.MaybeLineBreak()

	default:
		// Any other expression is printed as an expression statement
		p.printExpr(n, js_ast.LLowest, ContextStartOfExpr, 0)
		p.sink.EndStatement(false)
	}
}

func (p *printer) printBlock(n js_ast.Index, stmtCtx bool) {
	p.sink.BeginBlock()
	for _, child := range p.tree.Children(n) {
		p.printStatement(child)
	}
	p.sink.EndBlock(p.sink.BreakAfterBlockFor(p.tree, n, stmtCtx))
}

// Declarations only end themselves when they are statements of their own
func (p *printer) endsItself(n js_ast.Index) bool {
	switch p.tree.ParentKind(n) {
	case js_ast.SFor, js_ast.SForIn, js_ast.SForOf:
		return p.tree.ChildPosition(n) != 0
	case js_ast.SExport, js_ast.SDeclare:
		return false
	}
	return true
}

// processEnd finishes a construct that was printed in a position that
// couldn't end it, such as the declaration after "export"
func (p *printer) processEnd(n js_ast.Index, ctx Context) {
	stmtCtx := ctx == ContextStatement
	node := &p.tree.Nodes[n]

	switch node.Kind {
	case js_ast.EClass, js_ast.SInterface, js_ast.SEnum, js_ast.SNamespace:
		p.sink.EndClass(stmtCtx)

	case js_ast.EFunction:
		if p.tree.Kind(node.Children[2]) == js_ast.EEmpty {
			p.sink.EndStatement(true)
		} else {
			p.sink.EndFunction(stmtCtx)
		}

	case js_ast.SDeclare, js_ast.SExport:
		if p.tree.ParentKind(n) != js_ast.SNamespace {
			p.processEnd(node.Children[0], ctx)
		}

	case js_ast.EComputedProperty:
		if len(node.Children) == 1 || p.tree.ParentKind(n) == js_ast.EClassMembers && !node.Flags.Has(js_ast.FlagMethod|js_ast.FlagGetter|js_ast.FlagSetter) {
			p.sink.EndStatement(true)
		}

	case js_ast.EMethod, js_ast.EGetter, js_ast.ESetter:
		fn := p.tree.Node(node.Children[0])
		if p.tree.Kind(fn.Children[2]) == js_ast.EEmpty {
			p.sink.EndStatement(true)
		}

	case js_ast.EField, js_ast.EIndexSignature, js_ast.ECallSignature:
		p.sink.EndStatement(true)

	default:
		if stmtCtx {
			p.sink.EndStatement(false)
		}
	}
}

func (p *printer) printStmt(n js_ast.Index, node *js_ast.Node, ctx Context) {
	switch node.Kind {
	case js_ast.SScript:
		for _, child := range node.Children {
			p.printStatement(child)
			p.sink.NotePreferredLineBreak()
		}

	case js_ast.SBlock:
		if node.Flags.Has(js_ast.FlagSynthetic) {
			for _, child := range node.Children {
				p.printStatement(child)
			}
		} else {
			p.printBlock(n, ctx == ContextStatement)
		}

	case js_ast.SEmpty:
		// Empty statements inside a block are dropped
		if ctx != ContextStatement {
			p.sink.EndStatement(true)
		}

	case js_ast.SExpr:
		p.printExpr(node.Children[0], js_ast.LLowest, ContextStartOfExpr, 0)
		p.sink.EndStatement(false)

	case js_ast.SVar, js_ast.SLet, js_ast.SConst:
		p.printDecls(node, ctx)
		if p.endsItself(n) {
			p.sink.EndStatement(false)
		}

	case js_ast.SIf:
		p.printIf(node, ctx)

	case js_ast.SFor:
		init, test, update, body := node.Children[0], node.Children[1], node.Children[2], node.Children[3]
		p.sink.Add("for")
		p.sink.MaybeInsertSpace()
		p.sink.Add("(")
		switch p.tree.Kind(init) {
		case js_ast.EEmpty:
		case js_ast.SVar, js_ast.SLet, js_ast.SConst:
			p.print(init, ContextInForInitClause)
		default:
			p.printExpr(init, js_ast.LLowest, ContextInForInitClause, 0)
		}
		p.sink.Add(";")
		if p.tree.Kind(test) != js_ast.EEmpty {
			p.sink.MaybeInsertSpace()
			p.printExpr(test, js_ast.LLowest, ContextOther, 0)
		}
		p.sink.Add(";")
		if p.tree.Kind(update) != js_ast.EEmpty {
			p.sink.MaybeInsertSpace()
			p.printExpr(update, js_ast.LLowest, ContextOther, 0)
		}
		p.sink.Add(")")
		p.printNonEmptyStatement(body, contextForNonEmptyStatement(ctx))

	case js_ast.SForIn, js_ast.SForOf:
		init, value, body := node.Children[0], node.Children[1], node.Children[2]
		p.sink.Add("for")
		if node.Flags.Has(js_ast.FlagAwait) {
			p.sink.Add("await")
		}
		p.sink.MaybeInsertSpace()
		p.sink.Add("(")
		switch p.tree.Kind(init) {
		case js_ast.SVar, js_ast.SLet, js_ast.SConst:
			p.print(init, ContextOther)
		default:
			p.printExpr(init, js_ast.LNew, ContextOther, 0)
		}
		p.sink.MaybeInsertSpace()
		if node.Kind == js_ast.SForIn {
			p.sink.Add("in")
			p.sink.MaybeInsertSpace()
			p.printExpr(value, js_ast.LLowest, ContextOther, 0)
		} else {
			p.sink.Add("of")
			p.sink.MaybeInsertSpace()
			p.printExpr(value, js_ast.LYield, ContextOther, 0)
		}
		p.sink.Add(")")
		p.printNonEmptyStatement(body, contextForNonEmptyStatement(ctx))

	case js_ast.SWhile, js_ast.SWith:
		if node.Kind == js_ast.SWhile {
			p.sink.Add("while")
		} else {
			p.sink.Add("with")
		}
		p.sink.MaybeInsertSpace()
		p.sink.Add("(")
		p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
		p.sink.Add(")")
		p.printNonEmptyStatement(node.Children[1], contextForNonEmptyStatement(ctx))

	case js_ast.SDoWhile:
		p.sink.Add("do")
		p.printNonEmptyStatement(node.Children[0], ContextOther)
		p.sink.MaybeInsertSpace()
		p.sink.Add("while")
		p.sink.MaybeInsertSpace()
		p.sink.Add("(")
		p.printExpr(node.Children[1], js_ast.LLowest, ContextOther, 0)
		p.sink.Add(")")
		p.sink.EndStatement(true)

	case js_ast.SSwitch:
		p.sink.Add("switch")
		p.sink.MaybeInsertSpace()
		p.sink.Add("(")
		p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
		p.sink.Add(")")
		p.sink.BeginBlock()
		for _, c := range node.Children[1:] {
			p.print(c, ContextOther)
		}
		p.sink.EndBlock(ctx == ContextStatement)

	case js_ast.SCase:
		p.sink.Add("case")
		p.sink.MaybeInsertSpace()
		p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
		p.printCaseBody(node.Children[1])

	case js_ast.SDefault:
		p.sink.Add("default")
		p.printCaseBody(node.Children[0])

	case js_ast.STry:
		p.sink.Add("try")
		p.print(node.Children[0], ContextOther)
		if catch := node.Children[1]; p.tree.Kind(catch) != js_ast.EEmpty {
			p.print(catch, ContextOther)
		}
		if len(node.Children) == 3 {
			p.sink.MaybeInsertSpace()
			p.sink.Add("finally")
			p.print(node.Children[2], ContextOther)
		}

	case js_ast.SCatch:
		p.sink.MaybeInsertSpace()
		p.sink.Add("catch")
		if binding := node.Children[0]; p.tree.Kind(binding) != js_ast.EEmpty {
			p.sink.MaybeInsertSpace()
			p.sink.Add("(")
			p.printExpr(binding, js_ast.LLowest, ContextOther, 0)
			p.sink.Add(")")
		}
		p.print(node.Children[1], ContextOther)

	case js_ast.SLabel:
		p.print(node.Children[0], ContextOther)
		p.sink.Add(":")
		body := node.Children[1]
		if p.tree.Kind(body) != js_ast.SBlock {
			p.sink.MaybeInsertSpace()
		}
		p.printNonEmptyStatement(body, contextForNonEmptyStatement(ctx))

	case js_ast.SBreak, js_ast.SContinue:
		if node.Kind == js_ast.SBreak {
			p.sink.Add("break")
		} else {
			p.sink.Add("continue")
		}
		if len(node.Children) == 1 {
			p.print(node.Children[0], ContextOther)
		}
		p.sink.EndStatement(false)

	case js_ast.SReturn:
		p.sink.Add("return")
		if len(node.Children) == 1 {
			p.sink.MaybeInsertSpace()
			p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
		}
		p.sink.EndStatement(false)

	case js_ast.SThrow:
		p.sink.Add("throw")
		p.sink.MaybeInsertSpace()
		p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
		p.sink.EndStatement(true)

	case js_ast.SDebugger:
		p.sink.Add("debugger")
		p.sink.EndStatement(false)

	case js_ast.SImport:
		p.printImport(node)

	case js_ast.SExport:
		p.printExport(node, ctx)

	case js_ast.SInterface, js_ast.SEnum, js_ast.SNamespace, js_ast.STypeAlias, js_ast.SDeclare:
		p.printTypeDeclaration(n, node, ctx)

	default:
		panic(&UnsupportedConstructError{Node: n, Kind: node.Kind})
	}
}

func (p *printer) printIf(node *js_ast.Node, ctx Context) {
	hasElse := len(node.Children) == 3

	// An "if" without an "else" here would steal the "else" that follows
	ambiguousElse := ctx == ContextBeforeDanglingElse && !hasElse
	if ambiguousElse {
		p.sink.BeginBlock()
	}

	p.sink.Add("if")
	p.sink.MaybeInsertSpace()
	p.sink.Add("(")
	p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
	p.sink.Add(")")

	if hasElse {
		p.printNonEmptyStatement(node.Children[1], ContextBeforeDanglingElse)
		p.sink.MaybeInsertSpace()
		p.sink.Add("else")
		p.printNonEmptyStatement(node.Children[2], contextForNonEmptyStatement(ctx))
	} else {
		p.printNonEmptyStatement(node.Children[1], ContextOther)
	}

	if ambiguousElse {
		p.sink.EndBlock(false)
	}
}

func (p *printer) printCaseBody(block js_ast.Index) {
	p.sink.BeginCaseBody()
	p.print(block, ContextStatement)
	p.sink.EndCaseBody()
}

func (p *printer) printDecls(node *js_ast.Node, ctx Context) {
	switch node.Kind {
	case js_ast.SVar:
		p.sink.Add("var")
	case js_ast.SLet:
		p.sink.Add("let")
	case js_ast.SConst:
		p.sink.Add("const")
	}
	declCtx := contextForNoIn(ctx)
	for i, decl := range node.Children {
		if i > 0 {
			p.sink.ListSeparator()
		}
		p.print(decl, declCtx)
	}
}

func (p *printer) printImport(node *js_ast.Node) {
	defaultName, items, source := node.Children[0], node.Children[1], node.Children[2]
	hasDefault := p.tree.Kind(defaultName) != js_ast.EEmpty
	hasItems := p.tree.Kind(items) != js_ast.EEmpty

	p.sink.Add("import")
	if hasDefault {
		p.print(defaultName, ContextOther)
		if hasItems {
			p.sink.ListSeparator()
		}
	}
	if hasItems {
		p.sink.MaybeInsertSpace()
		p.print(items, ContextOther)
	}
	if hasDefault || hasItems {
		p.sink.MaybeInsertSpace()
		p.sink.Add("from")
	}
	p.sink.MaybeInsertSpace()
	p.print(source, ContextOther)
	p.sink.EndStatement(false)
}

func (p *printer) printExport(node *js_ast.Node, ctx Context) {
	first := node.Children[0]
	p.sink.Add("export")

	switch {
	case node.Flags.Has(js_ast.FlagExportDefault):
		p.sink.Add("default")
		if p.isDeclaration(first) {
			p.print(first, ContextOther)
		} else {
			// "export default (function() {})()" must not start a declaration
			p.sink.MaybeInsertSpace()
			p.printExpr(first, js_ast.LYield, ContextExportDefault, 0)
		}

	case node.Flags.Has(js_ast.FlagExportAll):
		p.sink.MaybeInsertSpace()
		p.sink.AddOp("*", false)
		if node.Str != "" {
			p.sink.MaybeInsertSpace()
			p.sink.Add("as")
			p.sink.AddIdentifier(p.printableIdentifier(node.Str))
		}

	default:
		p.sink.MaybeInsertSpace()
		p.print(first, ContextOther)
	}

	if len(node.Children) == 2 {
		p.sink.MaybeInsertSpace()
		p.sink.Add("from")
		p.sink.MaybeInsertSpace()
		p.print(node.Children[1], ContextOther)
	}

	p.processEnd(first, ctx)
}

func (p *printer) isDeclaration(n js_ast.Index) bool {
	node := &p.tree.Nodes[n]
	return node.Kind == js_ast.EClass || (node.Kind == js_ast.EFunction && !node.Flags.Has(js_ast.FlagArrow))
}
