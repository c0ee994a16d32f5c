package js_printer

import "github.com/jsgen/jsgen/internal/js_ast"

// Blocks are counted through, so "{{a()}}" has one meaningful statement
func nonEmptyChildCount(tree *js_ast.Tree, n js_ast.Index, maxCount int) int {
	count := 0
	for _, child := range tree.Children(n) {
		if count >= maxCount {
			break
		}
		switch tree.Kind(child) {
		case js_ast.SBlock:
			count += nonEmptyChildCount(tree, child, maxCount-count)
		case js_ast.SEmpty:
		default:
			count++
		}
	}
	return count
}

func firstNonEmptyChild(tree *js_ast.Tree, n js_ast.Index) js_ast.Index {
	for _, child := range tree.Children(n) {
		switch tree.Kind(child) {
		case js_ast.SBlock:
			if found := firstNonEmptyChild(tree, child); found.IsValid() {
				return found
			}
		case js_ast.SEmpty:
		default:
			return child
		}
	}
	return js_ast.NoIndex
}

// These statements are not allowed as the direct body of a control flow
// statement. "do" is kept in braces since some engines misparse "if(a)do
// b();while(c);else d()".
func isBlockDeclOrDo(tree *js_ast.Tree, n js_ast.Index) bool {
	switch tree.Kind(n) {
	case js_ast.SLabel:
		body := tree.Child(n, 1)
		if tree.Kind(body) != js_ast.SBlock {
			return isBlockDeclOrDo(tree, body)
		}
		if nonEmptyChildCount(tree, body, 2) == 1 {
			return isBlockDeclOrDo(tree, firstNonEmptyChild(tree, body))
		}
		return false

	case js_ast.SLet, js_ast.SConst, js_ast.EClass, js_ast.SDoWhile:
		return true

	case js_ast.EFunction:
		return !tree.Node(n).Flags.Has(js_ast.FlagArrow)
	}
	return false
}

// printNonEmptyStatement prints the body of a control flow statement. A block
// body with a single meaningful statement is printed as that statement.
func (p *printer) printNonEmptyStatement(n js_ast.Index, ctx Context) {
	if p.tree.Kind(n) != js_ast.SBlock {
		if p.tree.Kind(n) == js_ast.SEmpty {
			p.sink.EndStatement(true)
			return
		}
		if isBlockDeclOrDo(p.tree, n) || (p.sink.ShouldPreserveExtraBlocks() && !p.isElseIf(n)) {
			// Declarations can't be the direct body of a statement
			p.sink.BeginBlock()
			p.printStatement(n)
			p.sink.MaybeLineBreak()
			p.sink.EndBlock(p.sink.BreakAfterBlockFor(p.tree, n, ctx == ContextStatement))
			return
		}
		p.printBody(n, ctx)
		return
	}

	switch nonEmptyChildCount(p.tree, n, 2) {
	case 0:
		if p.sink.ShouldPreserveExtraBlocks() {
			p.sink.BeginBlock()
			p.sink.EndBlock(p.sink.BreakAfterBlockFor(p.tree, n, ctx == ContextStatement))
		} else {
			p.sink.EndStatement(true)
		}

	case 1:
		child := firstNonEmptyChild(p.tree, n)
		if p.sink.ShouldPreserveExtraBlocks() || isBlockDeclOrDo(p.tree, child) {
			p.sink.BeginBlock()
			p.printStatement(child)
			p.sink.MaybeLineBreak()
			p.sink.EndBlock(p.sink.BreakAfterBlockFor(p.tree, n, ctx == ContextStatement))
		} else {
			p.printBody(child, ctx)
		}

	default:
		if p.tree.Node(n).Flags.Has(js_ast.FlagSynthetic) {
			p.sink.BeginBlock()
			p.print(n, ContextStatement)
			p.sink.EndBlock(p.sink.BreakAfterBlockFor(p.tree, n, ctx == ContextStatement))
		} else {
			p.print(n, ctx)
		}
	}
}

// A body that is a bare expression is printed as an expression statement
func (p *printer) printBody(n js_ast.Index, ctx Context) {
	if p.tree.Kind(n).IsStatement() {
		p.print(n, ctx)
		return
	}
	p.printStatement(n)
}

func (p *printer) isElseIf(n js_ast.Index) bool {
	return p.tree.Kind(n) == js_ast.SIf && p.tree.ParentKind(n) == js_ast.SIf && p.tree.ChildPosition(n) == 2
}
