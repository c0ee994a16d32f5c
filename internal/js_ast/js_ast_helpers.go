package js_ast

import "fmt"

// SlotViolation describes a child that has a kind its parent does not allow
// in that position. It's shared by the validator and the printer so both
// agree on what a well-formed tree is.
type SlotViolation struct {
	Position int
	Expected []Kind

	// Used instead of "Expected" when any kind of a category fits, such as
	// "an expression" or "a type"
	Category string

	// Names an attached subtree such as "declared type". Empty for children.
	Slot string
}

func (v SlotViolation) String() string {
	subject := v.Slot
	if subject == "" {
		subject = fmt.Sprintf("child %d", v.Position)
	}
	if v.Category != "" {
		return subject + " must be " + v.Category
	}
	text := subject + " must be "
	for i, kind := range v.Expected {
		if i > 0 {
			if i == len(v.Expected)-1 {
				text += " or "
			} else {
				text += ", "
			}
		}
		text += kind.String()
	}
	return text
}

func (t *Tree) expect(n Index, position int, kinds ...Kind) *SlotViolation {
	children := t.Nodes[n].Children
	if position >= len(children) {
		return nil
	}
	actual := t.kindOf(children[position])
	if actual == KNone {
		return nil
	}
	for _, kind := range kinds {
		if kind == actual {
			return nil
		}
	}
	return &SlotViolation{Position: position, Expected: kinds}
}

func (t *Tree) expectAll(n Index, from int, kinds ...Kind) *SlotViolation {
	for i := from; i < len(t.Nodes[n].Children); i++ {
		if v := t.expect(n, i, kinds...); v != nil {
			return v
		}
	}
	return nil
}

// Missing nodes are reported by whoever follows the link
func (t *Tree) kindOf(n Index) Kind {
	if !n.IsValid() || int(n) >= len(t.Nodes) {
		return KNone
	}
	return t.Nodes[n].Kind
}

// CheckSlots checks the kinds of the children of "n" against the slots its
// kind defines. Arity is checked separately with "Kind.ArityOK".
func (t *Tree) CheckSlots(n Index) *SlotViolation {
	if v := t.checkSlotKinds(n); v != nil {
		return v
	}
	if v := t.checkSlotCategories(n); v != nil {
		return v
	}
	return t.checkAttachments(n)
}

func (t *Tree) checkSlotKinds(n Index) *SlotViolation {
	node := &t.Nodes[n]
	switch node.Kind {
	case ERegExp:
		return t.expectAll(n, 0, EString)

	case ETemplate:
		return t.expectAll(n, 0, ETemplateString, ETemplateSub)

	case ETaggedTemplate:
		return t.expect(n, 1, ETemplate)

	case EMethod, EGetter, ESetter:
		return t.expect(n, 0, EFunction)

	case EFunction:
		if v := t.expect(n, 0, EIdentifier, EEmpty); v != nil {
			return v
		}
		if v := t.expect(n, 1, EParamList); v != nil {
			return v
		}
		if !node.Flags.Has(FlagArrow) {
			return t.expect(n, 2, SBlock, EEmpty)
		}

	case EClass:
		if v := t.expect(n, 0, EIdentifier, EEmpty); v != nil {
			return v
		}
		return t.expect(n, 2, EClassMembers)

	case EClassMembers:
		return t.expectAll(n, 0, EMethod, EGetter, ESetter, EField, EComputedProperty, EIndexSignature, ECallSignature)

	case EObject:
		return t.expectAll(n, 0, EProperty, EMethod, EGetter, ESetter, EComputedProperty, ESpread)

	case EObjectPattern:
		return t.expectAll(n, 0, EProperty, EComputedProperty, ERest)

	case EImportSpecs:
		return t.expectAll(n, 0, EImportSpec)

	case EExportSpecs:
		return t.expectAll(n, 0, EExportSpec)

	case EImportSpec, EExportSpec:
		return t.expectAll(n, 0, EIdentifier)

	case EIndexSignature:
		return t.expect(n, 0, EIdentifier)

	case ECallSignature:
		return t.expect(n, 0, EParamList)

	case SVar, SLet, SConst:
		return t.expectAll(n, 0, EIdentifier, EDestructuringLHS)

	case SSwitch:
		return t.expectAll(n, 1, SCase, SDefault)

	case SCase:
		return t.expect(n, 1, SBlock)

	case SDefault:
		return t.expect(n, 0, SBlock)

	case STry:
		if v := t.expect(n, 0, SBlock); v != nil {
			return v
		}
		if v := t.expect(n, 1, SCatch, EEmpty); v != nil {
			return v
		}
		if len(node.Children) == 2 && t.Nodes[node.Children[1]].Kind == EEmpty {
			return &SlotViolation{Position: 1, Expected: []Kind{SCatch}}
		}
		return t.expect(n, 2, SBlock)

	case SCatch:
		return t.expect(n, 1, SBlock)

	case SLabel:
		return t.expect(n, 0, ELabelName)

	case SBreak, SContinue:
		return t.expect(n, 0, ELabelName)

	case SImport:
		if v := t.expect(n, 0, EIdentifier, EEmpty); v != nil {
			return v
		}
		if v := t.expect(n, 1, EImportSpecs, EImportStar, EEmpty); v != nil {
			return v
		}
		return t.expect(n, 2, EString)

	case SExport:
		if node.Flags.Has(FlagExportAll) {
			if v := t.expect(n, 0, EEmpty); v != nil {
				return v
			}
		}
		return t.expect(n, 1, EString)

	case SInterface:
		if v := t.expect(n, 0, EIdentifier); v != nil {
			return v
		}
		if v := t.expect(n, 1, TInterfaceExtends); v != nil {
			return v
		}
		return t.expect(n, 2, TInterfaceMembers)

	case SEnum:
		if v := t.expect(n, 0, EIdentifier); v != nil {
			return v
		}
		return t.expect(n, 1, TEnumMembers)

	case SNamespace:
		if v := t.expect(n, 0, EIdentifier, EDot); v != nil {
			return v
		}
		return t.expect(n, 1, SBlock)

	case TFunction:
		return t.expect(n, 0, EParamList)

	case TParameterized:
		return t.expect(n, 0, TNamed)

	case TGenericList:
		return t.expectAll(n, 0, TGeneric)

	case TEnumMembers:
		return t.expectAll(n, 0, TEnumMember)

	case TRecord, TInterfaceMembers:
		return t.expectAll(n, 0, EField, EMethod, EIndexSignature, ECallSignature)
	}
	return nil
}

type slotCategory uint8

const (
	slotExpr slotCategory = iota

	// Statements, plus expressions that print as expression statements
	slotStmt

	slotType

	// An expression or a "var", "let" or "const" declaration
	slotForInit

	// A block or an expression
	slotFunctionBody
)

func slotCategoryOf(parent *Node, position int) slotCategory {
	switch parent.Kind {
	case EFunction:
		if position == 2 {
			return slotFunctionBody
		}

	case SScript, SBlock, SDefault, STry, SExport, SDeclare:
		return slotStmt

	case SSwitch:
		if position > 0 {
			return slotStmt
		}

	case SIf:
		if position > 0 {
			return slotStmt
		}

	case SFor:
		switch position {
		case 0:
			return slotForInit
		case 3:
			return slotStmt
		}

	case SForIn, SForOf:
		switch position {
		case 0:
			return slotForInit
		case 2:
			return slotStmt
		}

	case SWhile, SWith, SCase, SCatch, SNamespace, SLabel:
		if position == 1 {
			return slotStmt
		}

	case SDoWhile:
		if position == 0 {
			return slotStmt
		}

	case SInterface, SEnum:
		if position > 0 {
			return slotType
		}

	case STypeAlias:
		return slotType

	case TFunction:
		if position == 1 {
			return slotType
		}

	case TRecord, TInterfaceMembers, TEnumMember:

	default:
		if parent.Kind.IsType() {
			return slotType
		}
	}
	return slotExpr
}

// Statements and types never fill an expression slot, and types only appear
// where the grammar expects one.
func (t *Tree) checkSlotCategories(n Index) *SlotViolation {
	node := &t.Nodes[n]
	for i, child := range node.Children {
		kind := t.kindOf(child)
		if !kind.IsKnown() {
			// Reported when the child itself is checked
			continue
		}
		switch slotCategoryOf(node, i) {
		case slotExpr:
			if !kind.IsExpression() {
				return &SlotViolation{Position: i, Category: "an expression"}
			}

		case slotStmt:
			if kind.IsType() {
				return &SlotViolation{Position: i, Category: "a statement or an expression"}
			}

		case slotType:
			if !kind.IsType() {
				return &SlotViolation{Position: i, Category: "a type"}
			}

		case slotForInit:
			if !kind.IsExpression() && kind != SVar && kind != SLet && kind != SConst {
				return &SlotViolation{Position: i, Category: "an expression or a declaration"}
			}

		case slotFunctionBody:
			if !kind.IsExpression() && kind != SBlock {
				return &SlotViolation{Position: i, Category: "a block or an expression"}
			}
		}
	}
	return nil
}

func (t *Tree) checkAttachments(n Index) *SlotViolation {
	node := &t.Nodes[n]
	if kind := t.kindOf(node.DeclaredType); kind.IsKnown() && !kind.IsType() {
		return &SlotViolation{Slot: "declared type", Category: "a type"}
	}
	if kind := t.kindOf(node.Generics); kind.IsKnown() && kind != TGenericList {
		return &SlotViolation{Slot: "generics", Expected: []Kind{TGenericList}}
	}
	for i, implements := range node.Implements {
		if kind := t.kindOf(implements); kind.IsKnown() && !kind.IsType() {
			return &SlotViolation{Slot: fmt.Sprintf("implemented type %d", i), Category: "a type"}
		}
	}
	return nil
}

// Validate checks the structural invariants of the subtree rooted at "root":
// every node is reachable exactly once, every parent link matches the node's
// real owner, and every kind has a legal number and kind of children.
func (t *Tree) Validate(root Index) error {
	if !root.IsValid() || int(root) >= len(t.Nodes) {
		return fmt.Errorf("root index %d is out of range", root)
	}
	seen := make([]bool, len(t.Nodes))
	type entry struct {
		node   Index
		parent Index
	}
	stack := []entry{{root, t.Nodes[root].Parent}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.node

		if !n.IsValid() || int(n) >= len(t.Nodes) {
			return fmt.Errorf("node %d refers to missing node %d", top.parent, n)
		}
		if seen[n] {
			return fmt.Errorf("node %d (%s) is reachable more than once", n, t.Nodes[n].Kind)
		}
		seen[n] = true

		node := &t.Nodes[n]
		if node.Parent != top.parent {
			return fmt.Errorf("node %d (%s) has parent %d but is owned by %d", n, node.Kind, node.Parent, top.parent)
		}
		if node.Kind == KNone || node.Kind >= kindCount {
			return fmt.Errorf("node %d has an invalid kind", n)
		}
		if !node.Kind.ArityOK(len(node.Children)) {
			info := &KindTable[node.Kind]
			if info.MaxChildren == unbounded {
				return fmt.Errorf("node %d (%s) has %d children but needs at least %d", n, node.Kind, len(node.Children), info.MinChildren)
			}
			return fmt.Errorf("node %d (%s) has %d children but needs between %d and %d", n, node.Kind, len(node.Children), info.MinChildren, info.MaxChildren)
		}
		if (node.Kind == EBinary && node.Op.IsUnary()) || (node.Kind == EUnary && !node.Op.IsUnary()) {
			return fmt.Errorf("node %d (%s) has operator %q of the wrong arity", n, node.Kind, OpTable[node.Op].Text)
		}
		if v := t.CheckSlots(n); v != nil {
			return fmt.Errorf("node %d (%s): %s", n, node.Kind, v)
		}

		for i := len(node.Implements) - 1; i >= 0; i-- {
			stack = append(stack, entry{node.Implements[i], n})
		}
		if node.Generics.IsValid() {
			stack = append(stack, entry{node.Generics, n})
		}
		if node.DeclaredType.IsValid() {
			stack = append(stack, entry{node.DeclaredType, n})
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{node.Children[i], n})
		}
	}
	return nil
}
