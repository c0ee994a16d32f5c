package js_printer

import (
	"strings"

	"github.com/jsgen/jsgen/internal/js_ast"
)

// printTypeAnnotation prints the ": T" after a binding, field or function
func (p *printer) printTypeAnnotation(node *js_ast.Node) {
	if node.DeclaredType.IsValid() {
		p.sink.Add(":")
		p.sink.MaybeInsertSpace()
		p.printTypeExpr(node.DeclaredType, js_ast.LLowest)
	}
}

func (p *printer) printGenerics(node *js_ast.Node) {
	if node.Generics.IsValid() {
		p.print(node.Generics, ContextOther)
	}
}

func (p *printer) printTypeExpr(n js_ast.Index, level js_ast.L) {
	node := p.enter(n)
	if p.tree.Level(n) < level {
		p.sink.Add("(")
		p.printEntered(n, node, ContextOther)
		p.sink.Add(")")
		return
	}
	p.printEntered(n, node, ContextOther)
}

func (p *printer) printTypeList(types []js_ast.Index) {
	for i, item := range types {
		if i > 0 {
			p.sink.ListSeparator()
		}
		p.printTypeExpr(item, js_ast.LLowest)
	}
}

func (p *printer) printType(n js_ast.Index, node *js_ast.Node) {
	switch node.Kind {
	case js_ast.TString:
		p.sink.Add("string")

	case js_ast.TNumber:
		p.sink.Add("number")

	case js_ast.TBoolean:
		p.sink.Add("boolean")

	case js_ast.TAny:
		p.sink.Add("any")

	case js_ast.TVoid:
		p.sink.Add("void")

	case js_ast.TUndefined:
		p.sink.Add("undefined")

	case js_ast.TNull:
		p.sink.Add("null")

	case js_ast.TNamed:
		p.sink.AddIdentifier(p.printableIdentifier(node.Str))

	case js_ast.TArray:
		p.printTypeExpr(node.Children[0], js_ast.LMember)
		p.sink.Add("[]")

	case js_ast.TFunction:
		p.print(node.Children[0], ContextOther)
		p.sink.AddOp("=>", true)
		p.printTypeExpr(node.Children[1], js_ast.LAssign)

	case js_ast.TUnion:
		for i, item := range node.Children {
			if i > 0 {
				p.sink.AddOp("|", true)
			}
			p.printTypeExpr(item, js_ast.LBitwiseOr+1)
		}

	case js_ast.TRecord:
		p.sink.Add("{")
		for i, member := range node.Children {
			if i > 0 {
				p.sink.ListSeparator()
			}
			p.print(member, ContextOther)
		}
		p.sink.Add("}")

	case js_ast.TParameterized:
		p.print(node.Children[0], ContextOther)
		p.sink.Add("<")
		p.printTypeList(node.Children[1:])
		p.sink.Add(">")

	case js_ast.TGenericList:
		p.sink.Add("<")
		for i, item := range node.Children {
			if i > 0 {
				p.sink.ListSeparator()
			}
			p.print(item, ContextOther)
		}
		p.sink.Add(">")

	case js_ast.TGeneric:
		p.sink.AddIdentifier(p.printableIdentifier(node.Str))
		if len(node.Children) == 1 {
			p.sink.Add("extends")
			p.printTypeExpr(node.Children[0], js_ast.LLowest)
		}

	case js_ast.TInterfaceExtends:
		p.printTypeList(node.Children)

	case js_ast.TInterfaceMembers:
		p.printMembers(node)

	case js_ast.TEnumMembers:
		p.sink.BeginBlock()
		for i, member := range node.Children {
			if i > 0 {
				p.sink.Add(",")
				p.sink.MaybeLineBreak()
			}
			p.print(member, ContextOther)
		}
		p.sink.MaybeLineBreak()
		p.sink.EndBlock(false)

	case js_ast.TEnumMember:
		p.printPropertyKey(node.Str, node.Flags.Has(js_ast.FlagQuoted))
		if len(node.Children) == 1 {
			p.sink.AddOp("=", true)
			p.printExpr(node.Children[0], js_ast.LYield, ContextOther, 0)
		}

	default:
		panic(&UnsupportedConstructError{Node: n, Kind: node.Kind})
	}
}

func (p *printer) printTypeDeclaration(n js_ast.Index, node *js_ast.Node, ctx Context) {
	stmtCtx := ctx == ContextStatement

	switch node.Kind {
	case js_ast.SInterface:
		name, extends, members := node.Children[0], node.Children[1], node.Children[2]
		p.sink.Add("interface")
		p.print(name, ContextOther)
		p.printGenerics(node)
		if len(p.tree.Children(extends)) > 0 {
			p.sink.Add("extends")
			p.print(extends, ContextOther)
		}
		p.print(members, ContextOther)
		p.sink.EndClass(stmtCtx)

	case js_ast.SEnum:
		p.sink.Add("enum")
		p.print(node.Children[0], ContextOther)
		p.print(node.Children[1], ContextOther)
		p.sink.EndClass(stmtCtx)

	case js_ast.SNamespace:
		p.sink.Add("namespace")
		p.print(node.Children[0], ContextOther)
		p.print(node.Children[1], ContextOther)
		p.sink.EndClass(stmtCtx)

	case js_ast.STypeAlias:
		p.sink.Add("type")
		p.sink.AddIdentifier(p.printableIdentifier(node.Str))
		p.printGenerics(node)
		p.sink.AddOp("=", true)
		p.printTypeExpr(node.Children[0], js_ast.LLowest)
		p.sink.EndStatement(true)

	case js_ast.SDeclare:
		child := node.Children[0]
		p.sink.Add("declare")
		p.print(child, ContextOther)
		if p.endsItself(n) {
			p.processEnd(child, ctx)
		}
	}
}

// printJSDoc prints the documentation of a node as a one-line comment
func (p *printer) printJSDoc(doc *js_ast.JSDoc) {
	if text := formatJSDoc(doc); text != "" {
		p.sink.Add(text)
		p.sink.MaybeInsertSpace()
	}
}

func formatJSDoc(doc *js_ast.JSDoc) string {
	var parts []string
	typed := func(tag string, t string) {
		parts = append(parts, tag+" {"+t+"}")
	}

	if doc.Description != "" {
		parts = append(parts, doc.Description)
	}
	if doc.Constructor {
		parts = append(parts, "@constructor")
	}
	if doc.Interface {
		parts = append(parts, "@interface")
	}
	if doc.Record {
		parts = append(parts, "@record")
	}
	if doc.Extends != "" {
		typed("@extends", doc.Extends)
	}
	for _, t := range doc.Implements {
		typed("@implements", t)
	}
	if len(doc.Templates) > 0 {
		parts = append(parts, "@template "+strings.Join(doc.Templates, ","))
	}
	if doc.Enum != "" {
		typed("@enum", doc.Enum)
	}
	if doc.Typedef != "" {
		typed("@typedef", doc.Typedef)
	}
	for _, param := range doc.Params {
		parts = append(parts, "@param {"+param.Type+"} "+param.Name)
	}
	if doc.Return != "" {
		typed("@return", doc.Return)
	}
	if doc.This != "" {
		typed("@this", doc.This)
	}
	if doc.Const {
		parts = append(parts, "@const")
	}
	if doc.Visibility != js_ast.AccessNone {
		parts = append(parts, "@"+doc.Visibility.String())
	}
	if doc.Export {
		parts = append(parts, "@export")
	}
	if doc.Deprecated {
		parts = append(parts, "@deprecated")
	}
	if doc.Override {
		parts = append(parts, "@override")
	}
	if doc.Type != "" {
		typed("@type", doc.Type)
	}

	if len(parts) == 0 {
		return ""
	}
	text := strings.Join(parts, " ")

	// The comment must stay on one line and must not end early
	text = strings.NewReplacer("*/", "*\\/", "\r\n", " ", "\n", " ", "\r", " ", "\u2028", " ", "\u2029", " ").Replace(text)
	return "/** " + text + " */"
}
