package js_ast

import (
	"math"

	"github.com/jsgen/jsgen/internal/logger"
)

// Every tree handed to the printer is an arena of nodes. Nodes refer to each
// other by index: a node owns its children through "Children" and points back
// at its owner through "Parent". The parent link is never used for ownership,
// only to answer questions such as "am I the callee of my parent call?".
//
// Trees are intended to be immutable once built. The printer treats them as
// read-only input and printing the same tree twice produces the same output.

type L int

// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Operators/Operator_Precedence
const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

type OpCode uint8

func (op OpCode) IsPrefix() bool {
	return op < UnOpPostDec
}

func (op OpCode) IsUnary() bool {
	return op <= UnOpPostInc
}

func (op OpCode) IsUpdate() bool {
	return op >= UnOpPreDec && op <= UnOpPostInc
}

// The comma operator is treated as left-associative so that a right-nested
// comma keeps its parentheses and the tree shape survives a round trip.
func (op OpCode) IsLeftAssociative() bool {
	return op >= BinOpAdd && op <= BinOpComma && op != BinOpPow
}

func (op OpCode) IsRightAssociative() bool {
	return op >= BinOpAssign || op == BinOpPow
}

func (op OpCode) IsAssign() bool {
	return op >= BinOpAssign
}

type Associativity uint8

const (
	AssociativityNone Associativity = iota
	AssociativityLeft
	AssociativityRight
)

func (op OpCode) Associativity() Associativity {
	switch {
	case op.IsLeftAssociative():
		return AssociativityLeft
	case op.IsRightAssociative():
		return AssociativityRight
	default:
		return AssociativityNone
	}
}

// If you add a new token, remember to add it to "OpTable" too
const (
	// Prefix
	UnOpPos OpCode = iota
	UnOpNeg
	UnOpCpl
	UnOpNot
	UnOpVoid
	UnOpTypeof
	UnOpDelete

	// Prefix update
	UnOpPreDec
	UnOpPreInc

	// Postfix update
	UnOpPostDec
	UnOpPostInc

	// Left-associative
	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpRem
	BinOpPow
	BinOpLt
	BinOpLe
	BinOpGt
	BinOpGe
	BinOpIn
	BinOpInstanceof
	BinOpShl
	BinOpShr
	BinOpUShr
	BinOpLooseEq
	BinOpLooseNe
	BinOpStrictEq
	BinOpStrictNe
	BinOpNullishCoalescing
	BinOpLogicalOr
	BinOpLogicalAnd
	BinOpBitwiseOr
	BinOpBitwiseAnd
	BinOpBitwiseXor
	BinOpComma

	// Right-associative
	BinOpAssign
	BinOpAddAssign
	BinOpSubAssign
	BinOpMulAssign
	BinOpDivAssign
	BinOpRemAssign
	BinOpPowAssign
	BinOpShlAssign
	BinOpShrAssign
	BinOpUShrAssign
	BinOpBitwiseOrAssign
	BinOpBitwiseAndAssign
	BinOpBitwiseXorAssign
	BinOpNullishCoalescingAssign
	BinOpLogicalOrAssign
	BinOpLogicalAndAssign

	opCount
)

type opTableEntry struct {
	Text      string
	Level     L
	IsKeyword bool
}

var OpTable = [opCount]opTableEntry{
	// Prefix
	{"+", LPrefix, false},
	{"-", LPrefix, false},
	{"~", LPrefix, false},
	{"!", LPrefix, false},
	{"void", LPrefix, true},
	{"typeof", LPrefix, true},
	{"delete", LPrefix, true},

	// Prefix update
	{"--", LPrefix, false},
	{"++", LPrefix, false},

	// Postfix update
	{"--", LPostfix, false},
	{"++", LPostfix, false},

	// Left-associative
	{"+", LAdd, false},
	{"-", LAdd, false},
	{"*", LMultiply, false},
	{"/", LMultiply, false},
	{"%", LMultiply, false},
	{"**", LExponentiation, false}, // Right-associative
	{"<", LCompare, false},
	{"<=", LCompare, false},
	{">", LCompare, false},
	{">=", LCompare, false},
	{"in", LCompare, true},
	{"instanceof", LCompare, true},
	{"<<", LShift, false},
	{">>", LShift, false},
	{">>>", LShift, false},
	{"==", LEquals, false},
	{"!=", LEquals, false},
	{"===", LEquals, false},
	{"!==", LEquals, false},
	{"??", LNullishCoalescing, false},
	{"||", LLogicalOr, false},
	{"&&", LLogicalAnd, false},
	{"|", LBitwiseOr, false},
	{"&", LBitwiseAnd, false},
	{"^", LBitwiseXor, false},
	{",", LComma, false},

	// Right-associative
	{"=", LAssign, false},
	{"+=", LAssign, false},
	{"-=", LAssign, false},
	{"*=", LAssign, false},
	{"/=", LAssign, false},
	{"%=", LAssign, false},
	{"**=", LAssign, false},
	{"<<=", LAssign, false},
	{">>=", LAssign, false},
	{">>>=", LAssign, false},
	{"|=", LAssign, false},
	{"&=", LAssign, false},
	{"^=", LAssign, false},
	{"??=", LAssign, false},
	{"||=", LAssign, false},
	{"&&=", LAssign, false},
}

// Index addresses a node inside a Tree. The first slot of every arena is
// reserved so that the zero value means "no node".
type Index uint32

const NoIndex Index = 0

func (i Index) IsValid() bool {
	return i != NoIndex
}

type Flags uint32

const (
	FlagStatic Flags = 1 << iota
	FlagGenerator
	FlagAsync
	FlagArrow
	FlagQuoted
	FlagShorthand
	FlagOptional      // TypeScript "a?: T"
	FlagOptionalChain // "a?.b", "a?.[b]", "a?.(b)"
	FlagFreeCall
	FlagDirectEval
	FlagGetter
	FlagSetter
	FlagMethod
	FlagExportDefault
	FlagExportAll
	FlagConstruct
	FlagAwait

	// A block that only groups statements and never prints braces
	FlagSynthetic
)

func (f Flags) Has(flag Flags) bool {
	return (f & flag) != 0
}

type Access uint8

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return ""
}

type Node struct {
	Kind   Kind
	Op     OpCode
	Access Access
	Flags  Flags

	// Identifier text, string value, property name, regexp pattern, raw
	// template text, label name or type name depending on the kind
	Str string
	Num float64

	Children []Index
	Parent   Index

	// Typed superset only
	DeclaredType Index
	Generics     Index
	Implements   []Index

	// The name this identifier had before renaming, if any
	OriginalName string

	Doc *JSDoc
	Loc logger.Loc
}

// JSDoc holds the structured documentation attached to a node. Types are kept
// as already-formatted type expressions.
type JSDoc struct {
	Description string
	Constructor bool
	Interface   bool
	Record      bool
	Extends     string
	Implements  []string
	Templates   []string
	Enum        string
	Typedef     string
	Params      []JSDocParam
	Return      string
	This        string
	Const       bool
	Visibility  Access
	Export      bool
	Deprecated  bool
	Override    bool
	Type        string
}

type JSDocParam struct {
	Name string
	Type string
}

type Tree struct {
	Nodes []Node
}

func (t *Tree) Node(i Index) *Node {
	return &t.Nodes[i]
}

func (t *Tree) Kind(i Index) Kind {
	return t.Nodes[i].Kind
}

func (t *Tree) Children(i Index) []Index {
	return t.Nodes[i].Children
}

func (t *Tree) NumChildren(i Index) int {
	return len(t.Nodes[i].Children)
}

func (t *Tree) Child(i Index, n int) Index {
	return t.Nodes[i].Children[n]
}

func (t *Tree) FirstChild(i Index) Index {
	if children := t.Nodes[i].Children; len(children) > 0 {
		return children[0]
	}
	return NoIndex
}

func (t *Tree) LastChild(i Index) Index {
	if children := t.Nodes[i].Children; len(children) > 0 {
		return children[len(children)-1]
	}
	return NoIndex
}

func (t *Tree) Parent(i Index) Index {
	return t.Nodes[i].Parent
}

// ParentKind returns the kind of the parent, or KNone for the root
func (t *Tree) ParentKind(i Index) Kind {
	if parent := t.Nodes[i].Parent; parent != NoIndex {
		return t.Nodes[parent].Kind
	}
	return KNone
}

// ChildPosition returns the position of a node among its parent's children,
// or -1 if it has no parent.
func (t *Tree) ChildPosition(i Index) int {
	parent := t.Nodes[i].Parent
	if parent == NoIndex {
		return -1
	}
	for n, child := range t.Nodes[parent].Children {
		if child == i {
			return n
		}
	}
	return -1
}

// Add appends a node to the arena and adopts its children. A node can only
// be adopted once.
func (t *Tree) Add(node Node) Index {
	if len(t.Nodes) == 0 {
		t.Nodes = append(t.Nodes, Node{Kind: KNone})
	}
	index := Index(len(t.Nodes))
	node.Parent = NoIndex
	for _, child := range node.Children {
		t.adopt(index, child)
	}
	if node.DeclaredType.IsValid() {
		t.adopt(index, node.DeclaredType)
	}
	if node.Generics.IsValid() {
		t.adopt(index, node.Generics)
	}
	for _, child := range node.Implements {
		t.adopt(index, child)
	}
	t.Nodes = append(t.Nodes, node)
	return index
}

func (t *Tree) adopt(parent Index, child Index) {
	if !child.IsValid() || int(child) >= len(t.Nodes) {
		panic("Internal error: child must be added before its parent")
	}
	if t.Nodes[child].Parent != NoIndex {
		panic("Internal error: node already has a parent")
	}
	t.Nodes[child].Parent = parent
}

// ContainsKind reports whether the subtree rooted at "i" contains a node of
// the given kind. Nested functions are skipped when asked to.
func (t *Tree) ContainsKind(i Index, kind Kind, skipFunctions bool) bool {
	stack := []Index{i}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.Nodes[n]
		if node.Kind == kind {
			return true
		}
		if skipFunctions && node.Kind == EFunction && n != i {
			continue
		}
		stack = append(stack, node.Children...)
	}
	return false
}

// Level returns the precedence level of a node. Non-operator expressions are
// primary expressions and bind as tightly as a member access.
func (t *Tree) Level(i Index) L {
	node := &t.Nodes[i]
	if !node.Kind.IsKnown() {
		return LMember
	}
	switch node.Kind {
	case EBinary, EUnary:
		return OpTable[node.Op].Level

	case ENumber:
		if node.Num != node.Num {
			return LMember
		}
		if math.Signbit(node.Num) {
			return LPrefix
		}
		return LMember

	case EFunction:
		if node.Flags.Has(FlagArrow) {
			return LAssign
		}
		return LMember

	case ENew:
		if len(node.Children) == 1 {
			return LNew
		}
		return LMember

	case ECast:
		if len(node.Children) == 1 {
			return t.Level(node.Children[0])
		}
	}
	return KindTable[node.Kind].Level
}

// IsUnaryLike reports whether a node starts with a prefix operator token
func (t *Tree) IsUnaryLike(i Index) bool {
	node := &t.Nodes[i]
	switch node.Kind {
	case EUnary:
		return node.Op.IsPrefix()
	case EAwait:
		return true
	case ENumber:
		return node.Num == node.Num && math.Signbit(node.Num)
	case ECast:
		return len(node.Children) == 1 && t.IsUnaryLike(node.Children[0])
	}
	return false
}
