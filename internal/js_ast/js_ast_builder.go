package js_ast

// Builder is a small convenience layer over "Tree.Add" used by tests and by
// callers that construct trees in Go instead of decoding them. Optional
// arguments take "NoIndex" when absent.
type Builder struct {
	Tree *Tree
}

func NewBuilder() *Builder {
	return &Builder{Tree: &Tree{}}
}

func (b *Builder) Add(node Node, children ...Index) Index {
	if len(children) > 0 {
		node.Children = children
	}
	return b.Tree.Add(node)
}

func (b *Builder) Node(kind Kind, children ...Index) Index {
	return b.Add(Node{Kind: kind}, children...)
}

func (b *Builder) orEmpty(i Index) Index {
	if i.IsValid() {
		return i
	}
	return b.Node(EEmpty)
}

func (b *Builder) Empty() Index { return b.Node(EEmpty) }
func (b *Builder) This() Index  { return b.Node(EThis) }
func (b *Builder) Super() Index { return b.Node(ESuper) }
func (b *Builder) Null() Index  { return b.Node(ENull) }

func (b *Builder) Bool(value bool) Index {
	if value {
		return b.Node(ETrue)
	}
	return b.Node(EFalse)
}

func (b *Builder) Ident(name string) Index {
	return b.Add(Node{Kind: EIdentifier, Str: name})
}

func (b *Builder) LabelName(name string) Index {
	return b.Add(Node{Kind: ELabelName, Str: name})
}

func (b *Builder) Num(value float64) Index {
	return b.Add(Node{Kind: ENumber, Num: value})
}

func (b *Builder) BigInt(digits string) Index {
	return b.Add(Node{Kind: EBigInt, Str: digits})
}

func (b *Builder) Str(value string) Index {
	return b.Add(Node{Kind: EString, Str: value})
}

func (b *Builder) RegExp(pattern string, flags string) Index {
	if flags == "" {
		return b.Node(ERegExp, b.Str(pattern))
	}
	return b.Node(ERegExp, b.Str(pattern), b.Str(flags))
}

func (b *Builder) TemplateString(raw string) Index {
	return b.Add(Node{Kind: ETemplateString, Str: raw})
}

func (b *Builder) TemplateSub(value Index) Index {
	return b.Node(ETemplateSub, value)
}

func (b *Builder) Template(parts ...Index) Index {
	return b.Node(ETemplate, parts...)
}

func (b *Builder) TaggedTemplate(tag Index, template Index) Index {
	return b.Node(ETaggedTemplate, tag, template)
}

func (b *Builder) Array(items ...Index) Index {
	return b.Node(EArray, items...)
}

func (b *Builder) Object(properties ...Index) Index {
	return b.Node(EObject, properties...)
}

func (b *Builder) Prop(key string, value Index) Index {
	return b.Add(Node{Kind: EProperty, Str: key}, value)
}

func (b *Builder) QuotedProp(key string, value Index) Index {
	return b.Add(Node{Kind: EProperty, Str: key, Flags: FlagQuoted}, value)
}

func (b *Builder) Shorthand(name string) Index {
	return b.Add(Node{Kind: EProperty, Str: name, Flags: FlagShorthand}, b.Ident(name))
}

func (b *Builder) Computed(key Index, value Index) Index {
	if value.IsValid() {
		return b.Node(EComputedProperty, key, value)
	}
	return b.Node(EComputedProperty, key)
}

func (b *Builder) Method(name string, fn Index) Index {
	return b.Add(Node{Kind: EMethod, Str: name}, fn)
}

func (b *Builder) Getter(name string, fn Index) Index {
	return b.Add(Node{Kind: EGetter, Str: name}, fn)
}

func (b *Builder) Setter(name string, fn Index) Index {
	return b.Add(Node{Kind: ESetter, Str: name}, fn)
}

func (b *Builder) Field(name string, value Index) Index {
	if value.IsValid() {
		return b.Add(Node{Kind: EField, Str: name}, value)
	}
	return b.Add(Node{Kind: EField, Str: name})
}

func (b *Builder) Spread(value Index) Index {
	return b.Node(ESpread, value)
}

func (b *Builder) Rest(target Index) Index {
	return b.Node(ERest, target)
}

func (b *Builder) Params(params ...Index) Index {
	return b.Node(EParamList, params...)
}

func (b *Builder) DefaultValue(target Index, value Index) Index {
	return b.Node(EDefaultValue, target, value)
}

// Func builds a function. An empty name builds an anonymous function and a
// missing body builds a signature without one.
func (b *Builder) Func(name string, params Index, body Index) Index {
	nameNode := b.Empty()
	if name != "" {
		nameNode = b.Ident(name)
	}
	return b.Node(EFunction, nameNode, params, b.orEmpty(body))
}

func (b *Builder) Arrow(params Index, body Index) Index {
	return b.Add(Node{Kind: EFunction, Flags: FlagArrow}, b.Empty(), params, body)
}

func (b *Builder) Class(name string, extends Index, members ...Index) Index {
	nameNode := b.Empty()
	if name != "" {
		nameNode = b.Ident(name)
	}
	return b.Node(EClass, nameNode, b.orEmpty(extends), b.Node(EClassMembers, members...))
}

func (b *Builder) ArrayPattern(items ...Index) Index {
	return b.Node(EArrayPattern, items...)
}

func (b *Builder) ObjectPattern(properties ...Index) Index {
	return b.Node(EObjectPattern, properties...)
}

func (b *Builder) Binary(op OpCode, left Index, right Index) Index {
	return b.Add(Node{Kind: EBinary, Op: op}, left, right)
}

func (b *Builder) Unary(op OpCode, value Index) Index {
	return b.Add(Node{Kind: EUnary, Op: op}, value)
}

func (b *Builder) Cond(test Index, yes Index, no Index) Index {
	return b.Node(EConditional, test, yes, no)
}

func (b *Builder) Dot(target Index, name string) Index {
	return b.Add(Node{Kind: EDot, Str: name}, target)
}

func (b *Builder) Elem(target Index, index Index) Index {
	return b.Node(EIndex, target, index)
}

func (b *Builder) Call(target Index, args ...Index) Index {
	return b.Node(ECall, append([]Index{target}, args...)...)
}

func (b *Builder) New(target Index, args ...Index) Index {
	return b.Node(ENew, append([]Index{target}, args...)...)
}

func (b *Builder) Await(value Index) Index {
	return b.Node(EAwait, value)
}

func (b *Builder) Yield(value Index) Index {
	if value.IsValid() {
		return b.Node(EYield, value)
	}
	return b.Node(EYield)
}

func (b *Builder) Cast(value Index, doc *JSDoc) Index {
	return b.Add(Node{Kind: ECast, Doc: doc}, value)
}

func (b *Builder) Script(stmts ...Index) Index {
	return b.Node(SScript, stmts...)
}

func (b *Builder) Block(stmts ...Index) Index {
	return b.Node(SBlock, stmts...)
}

func (b *Builder) EmptyStmt() Index {
	return b.Node(SEmpty)
}

func (b *Builder) Expr(value Index) Index {
	return b.Node(SExpr, value)
}

// Decl builds a declarator for "var", "let" and "const"
func (b *Builder) Decl(name string, value Index) Index {
	if value.IsValid() {
		return b.Add(Node{Kind: EIdentifier, Str: name}, value)
	}
	return b.Ident(name)
}

func (b *Builder) DestructuringDecl(pattern Index, value Index) Index {
	if value.IsValid() {
		return b.Node(EDestructuringLHS, pattern, value)
	}
	return b.Node(EDestructuringLHS, pattern)
}

func (b *Builder) Var(decls ...Index) Index   { return b.Node(SVar, decls...) }
func (b *Builder) Let(decls ...Index) Index   { return b.Node(SLet, decls...) }
func (b *Builder) Const(decls ...Index) Index { return b.Node(SConst, decls...) }

func (b *Builder) If(test Index, yes Index, no Index) Index {
	if no.IsValid() {
		return b.Node(SIf, test, yes, no)
	}
	return b.Node(SIf, test, yes)
}

func (b *Builder) For(init Index, test Index, update Index, body Index) Index {
	return b.Node(SFor, b.orEmpty(init), b.orEmpty(test), b.orEmpty(update), body)
}

func (b *Builder) ForIn(init Index, value Index, body Index) Index {
	return b.Node(SForIn, init, value, body)
}

func (b *Builder) ForOf(init Index, value Index, body Index) Index {
	return b.Node(SForOf, init, value, body)
}

func (b *Builder) While(test Index, body Index) Index {
	return b.Node(SWhile, test, body)
}

func (b *Builder) DoWhile(body Index, test Index) Index {
	return b.Node(SDoWhile, body, test)
}

func (b *Builder) Switch(test Index, cases ...Index) Index {
	return b.Node(SSwitch, append([]Index{test}, cases...)...)
}

func (b *Builder) Case(test Index, body ...Index) Index {
	return b.Node(SCase, test, b.Add(Node{Kind: SBlock, Flags: FlagSynthetic}, body...))
}

func (b *Builder) DefaultCase(body ...Index) Index {
	return b.Node(SDefault, b.Add(Node{Kind: SBlock, Flags: FlagSynthetic}, body...))
}

func (b *Builder) Try(block Index, catch Index, finally Index) Index {
	if finally.IsValid() {
		return b.Node(STry, block, b.orEmpty(catch), finally)
	}
	return b.Node(STry, block, catch)
}

func (b *Builder) Catch(binding Index, block Index) Index {
	return b.Node(SCatch, b.orEmpty(binding), block)
}

func (b *Builder) Labeled(name string, stmt Index) Index {
	return b.Node(SLabel, b.LabelName(name), stmt)
}

func (b *Builder) Break(label string) Index {
	if label != "" {
		return b.Node(SBreak, b.LabelName(label))
	}
	return b.Node(SBreak)
}

func (b *Builder) Continue(label string) Index {
	if label != "" {
		return b.Node(SContinue, b.LabelName(label))
	}
	return b.Node(SContinue)
}

func (b *Builder) Return(value Index) Index {
	if value.IsValid() {
		return b.Node(SReturn, value)
	}
	return b.Node(SReturn)
}

func (b *Builder) Throw(value Index) Index {
	return b.Node(SThrow, value)
}
