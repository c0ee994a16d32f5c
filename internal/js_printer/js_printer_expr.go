package js_printer

import (
	"github.com/jsgen/jsgen/internal/js_ast"
	"github.com/jsgen/jsgen/internal/js_lexer"
)

type exprFlags uint8

const (
	// The left operand of "**", which can't be a unary expression
	isExponentiationLeft exprFlags = 1 << iota

	// An operand of "??", which can't be an unparenthesized "||" or "&&"
	isNullishOperand

	// An operand of "||" or "&&", which can't be an unparenthesized "??"
	isLogicalOperand
)

// A cast only prints as something when it carries a type to preserve
func (p *printer) isTransparentCast(node *js_ast.Node) bool {
	return node.Kind == js_ast.ECast && len(node.Children) == 1 && (!p.options.PreserveTypeAnnotations || node.Doc == nil)
}

func (p *printer) skipTransparentCasts(n js_ast.Index) js_ast.Index {
	for p.isTransparentCast(&p.tree.Nodes[n]) {
		n = p.tree.Nodes[n].Children[0]
	}
	return n
}

func (p *printer) level(n js_ast.Index) js_ast.L {
	if node := &p.tree.Nodes[n]; node.Kind == js_ast.ECast && !p.isTransparentCast(node) {
		// Printed as "/** @type {T} */ (x)"
		return js_ast.LMember
	}
	return p.tree.Level(n)
}

func (p *printer) needsParens(n js_ast.Index, level js_ast.L, ctx Context, flags exprFlags) bool {
	n = p.skipTransparentCasts(n)
	node := &p.tree.Nodes[n]

	if p.level(n) < level {
		return true
	}

	switch node.Kind {
	case js_ast.EBinary:
		switch node.Op {
		case js_ast.BinOpIn:
			if ctx == ContextInForInitClause {
				return true
			}

		case js_ast.BinOpLogicalOr, js_ast.BinOpLogicalAnd:
			if (flags & isNullishOperand) != 0 {
				return true
			}

		case js_ast.BinOpNullishCoalescing:
			if (flags & isLogicalOperand) != 0 {
				return true
			}

		case js_ast.BinOpAssign:
			// "({a} = b)" would otherwise start with a block
			if (ctx == ContextStartOfExpr || ctx == ContextStartOfArrowBody) && len(node.Children) == 2 &&
				p.tree.Kind(p.skipTransparentCasts(node.Children[0])) == js_ast.EObjectPattern {
				return true
			}
		}

	case js_ast.EFunction:
		if node.Flags.Has(js_ast.FlagArrow) {
			// The body of an arrow function could swallow the "in" of the loop
			if ctx == ContextInForInitClause && len(node.Children) == 3 && p.tree.Kind(node.Children[2]) != js_ast.SBlock {
				return true
			}
		} else if ctx == ContextStartOfExpr || ctx == ContextExportDefault {
			return true
		}

	case js_ast.EClass:
		if ctx == ContextStartOfExpr || ctx == ContextExportDefault {
			return true
		}

	case js_ast.EObject:
		if ctx == ContextStartOfExpr || ctx == ContextStartOfArrowBody {
			return true
		}
	}

	if (flags&isExponentiationLeft) != 0 && node.Kind != js_ast.ECast && p.tree.IsUnaryLike(n) {
		return true
	}
	return false
}

// printExpr prints an expression that must bind at least as tightly as
// "level", adding parentheses when it doesn't or when the grammar position
// described by "ctx" and "flags" would read it differently.
func (p *printer) printExpr(n js_ast.Index, level js_ast.L, ctx Context, flags exprFlags) {
	node := p.enter(n)
	if p.needsParens(n, level, ctx, flags) {
		p.sink.Add("(")
		p.printEntered(n, node, ContextOther)
		p.sink.Add(")")
		return
	}
	p.printEntered(n, node, ctx)
}

func (p *printer) printExprNode(n js_ast.Index, node *js_ast.Node, ctx Context) {
	switch node.Kind {
	case js_ast.EEmpty:

	case js_ast.EIdentifier:
		p.printIdentifierName(node)
		if node.Flags.Has(js_ast.FlagOptional) {
			p.sink.Add("?")
		}
		p.printTypeAnnotation(node)
		if len(node.Children) == 1 {
			// This is a declarator with an initializer
			p.sink.AddOp("=", true)
			p.printExpr(node.Children[0], js_ast.LYield, contextForNoIn(ctx), 0)
		}

	case js_ast.ELabelName:
		p.sink.AddIdentifier(p.printableIdentifier(node.Str))

	case js_ast.EThis:
		p.sink.Add("this")

	case js_ast.ESuper:
		p.sink.Add("super")

	case js_ast.ENull:
		p.sink.Add("null")

	case js_ast.ETrue:
		p.sink.Add("true")

	case js_ast.EFalse:
		p.sink.Add("false")

	case js_ast.ENumber:
		p.sink.AddNumber(formatNumber(node.Num))

	case js_ast.EBigInt:
		p.sink.AddNumber(node.Str + "n")

	case js_ast.EString:
		p.sink.Add(p.quotedString(node.Str))

	case js_ast.ERegExp:
		pattern := p.tree.Node(node.Children[0]).Str
		if pattern == "" {
			// "//" would be a comment
			pattern = "(?:)"
		}
		flags := ""
		if len(node.Children) == 2 {
			flags = p.tree.Node(node.Children[1]).Str
		}
		p.sink.Add("/" + p.printableRegExp(pattern) + "/" + flags)

	case js_ast.ETemplate:
		p.printTemplate(node)

	case js_ast.ETaggedTemplate:
		p.printExpr(node.Children[0], js_ast.LCall, ctx, 0)
		p.print(node.Children[1], ContextOther)

	case js_ast.EArray, js_ast.EArrayPattern:
		p.sink.Add("[")
		for i, item := range node.Children {
			if i > 0 {
				p.sink.ListSeparator()
			}
			if p.tree.Kind(item) != js_ast.EEmpty {
				p.printExpr(item, js_ast.LSpread, ContextOther, 0)
			}
		}
		if n := len(node.Children); n > 0 && p.tree.Kind(node.Children[n-1]) == js_ast.EEmpty {
			// A trailing hole needs its own comma
			p.sink.ListSeparator()
		}
		p.sink.Add("]")
		p.printTypeAnnotation(node)

	case js_ast.EObject, js_ast.EObjectPattern:
		p.sink.Add("{")
		for i, item := range node.Children {
			if i > 0 {
				p.sink.ListSeparator()
			}
			p.print(item, ContextOther)
		}
		p.sink.Add("}")
		p.printTypeAnnotation(node)

	case js_ast.EProperty:
		p.printProperty(node)

	case js_ast.EMethod, js_ast.EGetter, js_ast.ESetter:
		p.printMethod(n, node)

	case js_ast.EComputedProperty:
		p.printComputedProperty(n, node)

	case js_ast.EField:
		p.printModifiers(node)
		p.printPropertyKey(node.Str, node.Flags.Has(js_ast.FlagQuoted))
		if node.Flags.Has(js_ast.FlagOptional) {
			p.sink.Add("?")
		}
		p.printTypeAnnotation(node)
		if len(node.Children) == 1 {
			p.sink.AddOp("=", true)
			p.printExpr(node.Children[0], js_ast.LYield, ContextOther, 0)
		}

	case js_ast.ESpread:
		p.sink.Add("...")
		p.printExpr(node.Children[0], js_ast.LYield, ContextOther, 0)

	case js_ast.ERest:
		p.sink.Add("...")
		p.printExpr(node.Children[0], js_ast.LMember, ContextOther, 0)
		p.printTypeAnnotation(node)

	case js_ast.EParamList:
		p.sink.Add("(")
		for i, param := range node.Children {
			if i > 0 {
				p.sink.ListSeparator()
			}
			p.printExpr(param, js_ast.LSpread, ContextOther, 0)
		}
		p.sink.Add(")")

	case js_ast.EDefaultValue:
		p.print(node.Children[0], ctx)
		p.sink.AddOp("=", true)
		p.printExpr(node.Children[1], js_ast.LYield, ContextOther, 0)

	case js_ast.EFunction:
		if node.Flags.Has(js_ast.FlagArrow) {
			p.printArrow(node, ctx)
		} else {
			p.printFunction(node, ctx)
		}

	case js_ast.EClass:
		p.printClass(node, ctx)

	case js_ast.EClassMembers:
		p.printMembers(node)

	case js_ast.EDestructuringLHS:
		p.print(node.Children[0], ContextOther)
		if len(node.Children) == 2 {
			p.sink.AddOp("=", true)
			p.printExpr(node.Children[1], js_ast.LYield, contextForNoIn(ctx), 0)
		}

	case js_ast.EBinary:
		if node.Op.IsRightAssociative() {
			p.printRightAssociative(node, ctx)
		} else {
			p.printLeftAssociativeChain(n, node, ctx)
		}

	case js_ast.EUnary:
		entry := &js_ast.OpTable[node.Op]
		if node.Op.IsPrefix() {
			p.sink.AddOp(entry.Text, false)
			p.printExpr(node.Children[0], js_ast.LPrefix, ContextOther, 0)
		} else {
			p.printExpr(node.Children[0], js_ast.LPostfix, ctx, 0)
			p.sink.AddOp(entry.Text, false)
		}

	case js_ast.EConditional:
		p.printExpr(node.Children[0], js_ast.LConditional+1, ctx, 0)
		p.sink.AddOp("?", true)
		p.printExpr(node.Children[1], js_ast.LYield, ContextOther, 0)
		p.sink.AddOp(":", true)
		p.printExpr(node.Children[2], js_ast.LYield, contextForNoIn(ctx), 0)

	case js_ast.EDot:
		p.printDot(node, ctx)

	case js_ast.EIndex:
		if ctx == ContextStartOfExpr && !node.Flags.Has(js_ast.FlagOptionalChain) && p.printsAsLet(node.Children[0]) {
			// "let[" starts a declaration
			p.sink.Add("(")
			p.print(node.Children[0], ContextOther)
			p.sink.Add(")")
		} else {
			p.printExpr(node.Children[0], js_ast.LCall, ctx, 0)
		}
		if node.Flags.Has(js_ast.FlagOptionalChain) {
			p.sink.Add("?.")
		}
		p.sink.Add("[")
		p.printExpr(node.Children[1], js_ast.LLowest, ContextOther, 0)
		p.sink.Add("]")

	case js_ast.ECall:
		p.printCall(node, ctx)

	case js_ast.ENew:
		p.sink.Add("new")
		target := node.Children[0]
		if p.tree.ContainsKind(target, js_ast.ECall, true) || p.tree.ContainsKind(target, js_ast.EDynamicImport, true) ||
			p.hasOptionalChain(target) {
			// "new (a().b)()" is not "new a().b()" and "new a?.b()" doesn't parse
			p.sink.Add("(")
			p.print(target, ContextOther)
			p.sink.Add(")")
		} else {
			p.sink.MaybeInsertSpace()
			p.printExpr(target, js_ast.LMember, ContextOther, 0)
		}
		if len(node.Children) > 1 {
			p.printArgs(node.Children[1:])
		}

	case js_ast.EAwait:
		p.sink.Add("await")
		p.printExpr(node.Children[0], js_ast.LPrefix, ContextOther, 0)

	case js_ast.EYield:
		p.sink.Add("yield")
		if node.Flags.Has(js_ast.FlagGenerator) {
			p.sink.AddOp("*", false)
		}
		if len(node.Children) == 1 {
			p.sink.MaybeInsertSpace()
			p.printExpr(node.Children[0], js_ast.LYield, contextForNoIn(ctx), 0)
		}

	case js_ast.ECast:
		if p.options.PreserveTypeAnnotations && node.Doc != nil {
			p.printJSDoc(node.Doc)
			p.sink.Add("(")
			p.printExpr(node.Children[0], js_ast.LLowest, ContextOther, 0)
			p.sink.Add(")")
		} else {
			p.print(node.Children[0], ctx)
		}

	case js_ast.ENewTarget:
		p.sink.Add("new.target")

	case js_ast.EImportMeta:
		p.sink.Add("import.meta")

	case js_ast.EDynamicImport:
		p.sink.Add("import")
		p.printArgs(node.Children)

	case js_ast.EImportSpecs, js_ast.EExportSpecs:
		p.sink.Add("{")
		for i, item := range node.Children {
			if i > 0 {
				p.sink.ListSeparator()
			}
			p.print(item, ContextOther)
		}
		p.sink.Add("}")

	case js_ast.EImportSpec, js_ast.EExportSpec:
		first, last := node.Children[0], node.Children[1]
		p.print(first, ContextOther)
		if p.tree.Node(first).Str != p.tree.Node(last).Str {
			p.sink.Add("as")
			p.print(last, ContextOther)
		}

	case js_ast.EImportStar:
		p.sink.AddOp("*", false)
		p.sink.MaybeInsertSpace()
		p.sink.Add("as")
		p.sink.AddIdentifier(p.printableIdentifier(node.Str))

	case js_ast.EIndexSignature:
		p.sink.Add("[")
		p.print(node.Children[0], ContextOther)
		p.sink.Add("]")
		p.printTypeAnnotation(node)

	case js_ast.ECallSignature:
		if node.Flags.Has(js_ast.FlagConstruct) {
			p.sink.Add("new")
			p.sink.MaybeInsertSpace()
		}
		p.printGenerics(node)
		p.print(node.Children[0], ContextOther)
		p.printTypeAnnotation(node)

	default:
		// Template parts are printed by their template
		panic(&UnsupportedConstructError{Node: n, Kind: node.Kind})
	}
}

func (p *printer) printsAsLet(n js_ast.Index) bool {
	node := p.tree.Node(p.skipTransparentCasts(n))
	if node.Kind != js_ast.EIdentifier {
		return false
	}
	if p.options.UseOriginalName && node.OriginalName != "" {
		return node.OriginalName == "let"
	}
	return node.Str == "let"
}

// Reports whether any link of the member chain starting at "n" is optional
func (p *printer) hasOptionalChain(n js_ast.Index) bool {
	for {
		node := p.tree.Node(p.skipTransparentCasts(n))
		switch node.Kind {
		case js_ast.EDot, js_ast.EIndex, js_ast.ECall:
			if node.Flags.Has(js_ast.FlagOptionalChain) {
				return true
			}
			if len(node.Children) == 0 {
				return false
			}
			n = node.Children[0]

		default:
			return false
		}
	}
}

func (p *printer) printIdentifierName(node *js_ast.Node) {
	name := node.Str
	if p.options.UseOriginalName && node.OriginalName != "" {
		name = node.OriginalName
	}
	p.sink.AddIdentifier(p.printableIdentifier(name))
}

func (p *printer) printArgs(args []js_ast.Index) {
	p.sink.Add("(")
	for i, arg := range args {
		if i > 0 {
			p.sink.ListSeparator()
		}
		p.printExpr(arg, js_ast.LSpread, ContextOther, 0)
	}
	p.sink.Add(")")
}

func (p *printer) printRightAssociative(node *js_ast.Node, ctx Context) {
	entry := &js_ast.OpTable[node.Op]
	left, right := node.Children[0], node.Children[1]

	if node.Op == js_ast.BinOpPow {
		p.printExpr(left, entry.Level+1, ctx, isExponentiationLeft)
		p.sink.AddOp(entry.Text, true)
		p.printExpr(right, entry.Level, contextForNoIn(ctx), 0)
		return
	}

	p.printExpr(left, entry.Level+1, ctx, 0)
	p.sink.AddOp(entry.Text, true)
	p.printExpr(right, js_ast.LYield, contextForNoIn(ctx), 0)
}

func operandFlags(op js_ast.OpCode) exprFlags {
	switch op {
	case js_ast.BinOpNullishCoalescing:
		return isNullishOperand
	case js_ast.BinOpLogicalOr, js_ast.BinOpLogicalAnd:
		return isLogicalOperand
	}
	return 0
}

// Left-associative chains such as "a + b + c + d" lean to the left and can be
// arbitrarily deep, so the left spine is walked with a loop instead of
// recursion. Only the right operands recurse.
func (p *printer) printLeftAssociativeChain(n js_ast.Index, node *js_ast.Node, ctx Context) {
	level := js_ast.OpTable[node.Op].Level
	chain := []js_ast.Index{n}
	left := node.Children[0]

	for {
		leftNode := &p.tree.Nodes[left]
		if leftNode.Kind != js_ast.EBinary || !leftNode.Op.IsLeftAssociative() || js_ast.OpTable[leftNode.Op].Level != level ||
			(leftNode.Doc != nil && p.options.PreserveTypeAnnotations) ||
			p.needsParens(left, level, ctx, operandFlags(p.tree.Node(chain[len(chain)-1]).Op)) {
			break
		}
		p.enter(left)
		chain = append(chain, left)
		left = leftNode.Children[0]
	}

	// Every node in the chain starts at the leftmost operand
	for i := 1; i < len(chain); i++ {
		if loc := p.tree.Node(chain[i]).Loc; loc.IsValid() {
			p.sink.StartSourceMapping(loc, "")
		}
	}

	innermost := p.tree.Node(chain[len(chain)-1])
	p.printExpr(left, level, ctx, operandFlags(innermost.Op))

	rightCtx := contextForNoIn(ctx)
	for i := len(chain) - 1; i >= 0; i-- {
		if !p.sink.ContinueProcessing() {
			panic(stopPrinting{})
		}
		current := p.tree.Node(chain[i])
		if current.Op == js_ast.BinOpComma {
			p.sink.ListSeparator()
		} else {
			p.sink.AddOp(js_ast.OpTable[current.Op].Text, true)
		}
		p.printExpr(current.Children[1], level+1, rightCtx, operandFlags(current.Op))
		if i > 0 && current.Loc.IsValid() {
			p.sink.EndSourceMapping(current.Loc)
		}
	}
}

func (p *printer) printTemplate(node *js_ast.Node) {
	// Raw text is sent along with the surrounding punctuation so the sink
	// never separates it from the backtick or brace next to it
	text := "`"
	for _, part := range node.Children {
		partNode := p.enter(part)
		if partNode.Kind == js_ast.ETemplateString {
			text += p.printableTemplate(partNode.Str)
			continue
		}
		p.sink.Add(text + "${")
		p.printExpr(partNode.Children[0], js_ast.LLowest, ContextOther, 0)
		text = "}"
	}
	p.sink.Add(text + "`")
}

func (p *printer) printDot(node *js_ast.Node, ctx Context) {
	if p.options.UseOriginalName && node.OriginalName != "" {
		// A flattened name like "a$b" prints as the "a.b" it came from
		p.sink.AddIdentifier(node.OriginalName)
		return
	}

	target := node.Children[0]
	if p.tree.Kind(p.skipTransparentCasts(target)) == js_ast.ENumber {
		// "1.toString()" doesn't parse
		p.sink.Add("(")
		p.print(target, ContextOther)
		p.sink.Add(")")
	} else {
		p.printExpr(target, js_ast.LCall, ctx, 0)
	}

	name := node.Str
	optional := node.Flags.Has(js_ast.FlagOptionalChain)
	if !js_lexer.IsIdentifier(name) || (p.options.QuoteKeywordProperties && js_lexer.IsKeyword(name)) {
		if optional {
			p.sink.Add("?.")
		}
		p.sink.Add("[")
		p.sink.Add(p.quotedString(name))
		p.sink.Add("]")
		return
	}
	if optional {
		p.sink.Add("?.")
	} else {
		p.sink.Add(".")
	}
	p.sink.AddIdentifier(p.printableIdentifier(name))
}

func (p *printer) printCall(node *js_ast.Node, ctx Context) {
	target := node.Children[0]
	targetNode := p.tree.Node(p.skipTransparentCasts(target))

	// "(0, eval)(x)" evaluates in the global scope and "(0, a.b)()" calls
	// "b" without "a" as "this"
	indirectEval := targetNode.Kind == js_ast.EIdentifier && targetNode.Str == "eval" && !node.Flags.Has(js_ast.FlagDirectEval)
	freeCall := node.Flags.Has(js_ast.FlagFreeCall) && (targetNode.Kind == js_ast.EDot || targetNode.Kind == js_ast.EIndex)

	if indirectEval || freeCall {
		p.sink.Add("(")
		p.sink.AddNumber("0")
		p.sink.ListSeparator()
		p.printExpr(target, js_ast.LSpread, ContextOther, 0)
		p.sink.Add(")")
	} else {
		p.printExpr(target, js_ast.LCall, ctx, 0)
	}

	if node.Flags.Has(js_ast.FlagOptionalChain) {
		p.sink.Add("?.")
	}
	p.printArgs(node.Children[1:])
}

func (p *printer) printFunction(node *js_ast.Node, ctx Context) {
	name, params, body := node.Children[0], node.Children[1], node.Children[2]

	if node.Flags.Has(js_ast.FlagAsync) {
		p.sink.Add("async")
	}
	p.sink.Add("function")
	if node.Flags.Has(js_ast.FlagGenerator) {
		p.sink.AddOp("*", false)
		if p.tree.Kind(name) != js_ast.EEmpty {
			p.sink.MaybeInsertSpace()
		}
	}
	if p.tree.Kind(name) != js_ast.EEmpty {
		p.print(name, ContextOther)
	}
	p.printGenerics(node)
	p.print(params, ContextOther)
	p.printTypeAnnotation(node)

	if p.tree.Kind(body) == js_ast.EEmpty {
		// A signature without a body
		if ctx == ContextStatement {
			p.sink.EndStatement(true)
		}
		return
	}
	p.print(body, ContextOther)
	p.sink.EndFunction(ctx == ContextStatement)
}

func (p *printer) printArrow(node *js_ast.Node, ctx Context) {
	params, body := node.Children[1], node.Children[2]

	if node.Flags.Has(js_ast.FlagAsync) {
		p.sink.Add("async")
	}
	p.printGenerics(node)
	p.print(params, ContextOther)
	p.printTypeAnnotation(node)
	p.sink.AddOp("=>", true)

	if p.tree.Kind(body) == js_ast.SBlock {
		p.print(body, ContextOther)
	} else {
		p.printExpr(body, js_ast.LYield, ContextStartOfArrowBody, 0)
	}
	p.sink.EndFunction(ctx == ContextStatement)
}

func (p *printer) printClass(node *js_ast.Node, ctx Context) {
	name, extends, members := node.Children[0], node.Children[1], node.Children[2]

	p.sink.Add("class")
	if p.tree.Kind(name) != js_ast.EEmpty {
		p.print(name, ContextOther)
	}
	p.printGenerics(node)
	if p.tree.Kind(extends) != js_ast.EEmpty {
		p.sink.Add("extends")
		p.sink.MaybeInsertSpace()
		p.printExpr(extends, js_ast.LCall, ContextOther, 0)
	}
	if len(node.Implements) > 0 {
		p.sink.Add("implements")
		for i, item := range node.Implements {
			if i > 0 {
				p.sink.ListSeparator()
			}
			p.printTypeExpr(item, js_ast.LLowest)
		}
	}
	p.print(members, ContextOther)
	p.sink.EndClass(ctx == ContextStatement)
}

// Used for the bodies of classes, interfaces and object types
func (p *printer) printMembers(node *js_ast.Node) {
	p.sink.BeginBlock()
	for _, member := range node.Children {
		p.print(member, ContextOther)
		p.processEnd(member, ContextOther)
		p.sink.MaybeLineBreak()
	}
	p.sink.EndBlock(false)
}

func (p *printer) printModifiers(node *js_ast.Node) {
	if node.Access != js_ast.AccessNone {
		p.sink.Add(node.Access.String())
	}
	if node.Flags.Has(js_ast.FlagStatic) {
		p.sink.Add("static")
	}
}

// Keys that aren't plain identifiers are printed as numbers when that reads
// back as the same key and as strings otherwise
func (p *printer) printPropertyKey(key string, quoted bool) {
	switch {
	case !quoted && js_lexer.IsLatinIdentifier(key) && !(p.options.QuoteKeywordProperties && js_lexer.IsKeyword(key)):
		p.sink.AddIdentifier(key)
	case isSimpleNumber(key):
		p.sink.AddNumber(key)
	default:
		p.sink.Add(p.quotedString(key))
	}
}

func (p *printer) isShorthandFor(key string, value js_ast.Index) bool {
	valueNode := p.tree.Node(value)
	if valueNode.Kind == js_ast.EDefaultValue {
		valueNode = p.tree.Node(valueNode.Children[0])
	}
	if valueNode.Kind != js_ast.EIdentifier || len(valueNode.Children) != 0 || valueNode.DeclaredType.IsValid() {
		return false
	}
	name := valueNode.Str
	if p.options.UseOriginalName && valueNode.OriginalName != "" {
		name = valueNode.OriginalName
	}
	return name == key && js_lexer.IsLatinIdentifier(key) && !js_lexer.IsKeyword(key)
}

func (p *printer) printProperty(node *js_ast.Node) {
	value := node.Children[0]
	if node.Flags.Has(js_ast.FlagShorthand) && !node.Flags.Has(js_ast.FlagQuoted) && p.isShorthandFor(node.Str, value) {
		p.print(value, ContextOther)
		return
	}
	p.printPropertyKey(node.Str, node.Flags.Has(js_ast.FlagQuoted))
	p.sink.Add(":")
	p.sink.MaybeInsertSpace()
	p.printExpr(value, js_ast.LYield, ContextOther, 0)
}

func (p *printer) printFunctionTail(fnNode *js_ast.Node) {
	params, body := fnNode.Children[1], fnNode.Children[2]
	p.printGenerics(fnNode)
	p.print(params, ContextOther)
	p.printTypeAnnotation(fnNode)
	if p.tree.Kind(body) != js_ast.EEmpty {
		p.print(body, ContextOther)
	}
}

func (p *printer) printMethod(n js_ast.Index, node *js_ast.Node) {
	fn := node.Children[0]
	fnNode := p.enter(fn)
	paramCount := len(p.tree.Children(fnNode.Children[1]))

	p.printModifiers(node)
	switch node.Kind {
	case js_ast.EGetter:
		if paramCount != 0 {
			p.fail(n, "a getter must not have parameters")
		}
		p.sink.Add("get")
	case js_ast.ESetter:
		if paramCount != 1 {
			p.fail(n, "a setter must have exactly one parameter")
		}
		p.sink.Add("set")
	default:
		if fnNode.Flags.Has(js_ast.FlagAsync) {
			p.sink.Add("async")
		}
		if fnNode.Flags.Has(js_ast.FlagGenerator) {
			p.sink.AddOp("*", false)
		}
	}
	p.printPropertyKey(node.Str, node.Flags.Has(js_ast.FlagQuoted))
	if node.Flags.Has(js_ast.FlagOptional) {
		p.sink.Add("?")
	}
	p.printFunctionTail(fnNode)
}

func (p *printer) printComputedProperty(n js_ast.Index, node *js_ast.Node) {
	key := node.Children[0]
	isMethod := node.Flags.Has(js_ast.FlagMethod | js_ast.FlagGetter | js_ast.FlagSetter)

	var fnNode *js_ast.Node
	if isMethod {
		if len(node.Children) != 2 || p.tree.Kind(node.Children[1]) != js_ast.EFunction {
			p.fail(n, "a computed method needs a function")
		}
		fnNode = p.enter(node.Children[1])
	}

	p.printModifiers(node)
	switch {
	case node.Flags.Has(js_ast.FlagGetter):
		p.sink.Add("get")
	case node.Flags.Has(js_ast.FlagSetter):
		p.sink.Add("set")
	case isMethod:
		if fnNode.Flags.Has(js_ast.FlagAsync) {
			p.sink.Add("async")
		}
		if fnNode.Flags.Has(js_ast.FlagGenerator) {
			p.sink.AddOp("*", false)
		}
	}

	p.sink.Add("[")
	p.printExpr(key, js_ast.LYield, ContextOther, 0)
	p.sink.Add("]")

	if isMethod {
		p.printFunctionTail(fnNode)
		return
	}

	if node.Flags.Has(js_ast.FlagOptional) {
		p.sink.Add("?")
	}
	p.printTypeAnnotation(node)
	if len(node.Children) == 2 {
		if p.tree.ParentKind(n) == js_ast.EClassMembers {
			p.sink.AddOp("=", true)
		} else {
			p.sink.Add(":")
			p.sink.MaybeInsertSpace()
		}
		p.printExpr(node.Children[1], js_ast.LYield, ContextOther, 0)
	}
}
