package js_ast

// Kind is the closed tag of a node. Expressions start with "E", statements
// with "S" and typed-superset constructs with "T". If you add a new kind,
// remember to add it to "KindTable" and to the printer's dispatch too.
type Kind uint8

const (
	KNone Kind = iota

	// Expressions
	EEmpty
	EIdentifier
	ELabelName
	EThis
	ESuper
	ENull
	ETrue
	EFalse
	ENumber
	EBigInt
	EString
	ERegExp
	ETemplate
	ETemplateString
	ETemplateSub
	ETaggedTemplate
	EArray
	EObject
	EProperty
	EMethod
	EGetter
	ESetter
	EComputedProperty
	EField
	ESpread
	ERest
	EFunction
	EParamList
	EDefaultValue
	EClass
	EClassMembers
	EArrayPattern
	EObjectPattern
	EDestructuringLHS
	EBinary
	EUnary
	EConditional
	EDot
	EIndex
	ECall
	ENew
	EAwait
	EYield
	ECast
	ENewTarget
	EImportMeta
	EDynamicImport
	EImportSpecs
	EImportSpec
	EImportStar
	EExportSpecs
	EExportSpec
	EIndexSignature
	ECallSignature

	// Statements
	SScript
	SBlock
	SEmpty
	SExpr
	SVar
	SLet
	SConst
	SIf
	SFor
	SForIn
	SForOf
	SWhile
	SDoWhile
	SSwitch
	SCase
	SDefault
	STry
	SCatch
	SLabel
	SBreak
	SContinue
	SReturn
	SThrow
	SDebugger
	SWith
	SImport
	SExport
	SInterface
	SEnum
	SNamespace
	STypeAlias
	SDeclare

	// Types
	TString
	TNumber
	TBoolean
	TAny
	TVoid
	TUndefined
	TNull
	TNamed
	TArray
	TFunction
	TUnion
	TRecord
	TParameterized
	TGenericList
	TGeneric
	TInterfaceExtends
	TInterfaceMembers
	TEnumMembers
	TEnumMember

	kindCount
)

const unbounded = -1

type kindTableEntry struct {
	Name        string
	MinChildren int
	MaxChildren int
	Level       L
}

// KindTable fixes the arity of every kind and the precedence level of the
// kinds that are not operators. Operator levels live in "OpTable".
var KindTable = [kindCount]kindTableEntry{
	KNone: {"KNone", 0, 0, LLowest},

	EEmpty:            {"EEmpty", 0, 0, LMember},
	EIdentifier:       {"EIdentifier", 0, 1, LMember},
	ELabelName:        {"ELabelName", 0, 0, LMember},
	EThis:             {"EThis", 0, 0, LMember},
	ESuper:            {"ESuper", 0, 0, LMember},
	ENull:             {"ENull", 0, 0, LMember},
	ETrue:             {"ETrue", 0, 0, LMember},
	EFalse:            {"EFalse", 0, 0, LMember},
	ENumber:           {"ENumber", 0, 0, LMember},
	EBigInt:           {"EBigInt", 0, 0, LMember},
	EString:           {"EString", 0, 0, LMember},
	ERegExp:           {"ERegExp", 1, 2, LMember},
	ETemplate:         {"ETemplate", 1, unbounded, LMember},
	ETemplateString:   {"ETemplateString", 0, 0, LMember},
	ETemplateSub:      {"ETemplateSub", 1, 1, LMember},
	ETaggedTemplate:   {"ETaggedTemplate", 2, 2, LCall},
	EArray:            {"EArray", 0, unbounded, LMember},
	EObject:           {"EObject", 0, unbounded, LMember},
	EProperty:         {"EProperty", 1, 1, LMember},
	EMethod:           {"EMethod", 1, 1, LMember},
	EGetter:           {"EGetter", 1, 1, LMember},
	ESetter:           {"ESetter", 1, 1, LMember},
	EComputedProperty: {"EComputedProperty", 1, 2, LMember},
	EField:            {"EField", 0, 1, LMember},
	ESpread:           {"ESpread", 1, 1, LSpread},
	ERest:             {"ERest", 1, 1, LSpread},
	EFunction:         {"EFunction", 3, 3, LMember},
	EParamList:        {"EParamList", 0, unbounded, LMember},
	EDefaultValue:     {"EDefaultValue", 2, 2, LAssign},
	EClass:            {"EClass", 3, 3, LMember},
	EClassMembers:     {"EClassMembers", 0, unbounded, LMember},
	EArrayPattern:     {"EArrayPattern", 0, unbounded, LMember},
	EObjectPattern:    {"EObjectPattern", 0, unbounded, LMember},
	EDestructuringLHS: {"EDestructuringLHS", 1, 2, LMember},
	EBinary:           {"EBinary", 2, 2, LLowest},
	EUnary:            {"EUnary", 1, 1, LPrefix},
	EConditional:      {"EConditional", 3, 3, LConditional},
	EDot:              {"EDot", 1, 1, LMember},
	EIndex:            {"EIndex", 2, 2, LMember},
	ECall:             {"ECall", 1, unbounded, LCall},
	ENew:              {"ENew", 1, unbounded, LMember},
	EAwait:            {"EAwait", 1, 1, LPrefix},
	EYield:            {"EYield", 0, 1, LYield},
	ECast:             {"ECast", 1, 1, LMember},
	ENewTarget:        {"ENewTarget", 0, 0, LMember},
	EImportMeta:       {"EImportMeta", 0, 0, LMember},
	EDynamicImport:    {"EDynamicImport", 1, 1, LCall},
	EImportSpecs:      {"EImportSpecs", 0, unbounded, LMember},
	EImportSpec:       {"EImportSpec", 2, 2, LMember},
	EImportStar:       {"EImportStar", 0, 0, LMember},
	EExportSpecs:      {"EExportSpecs", 0, unbounded, LMember},
	EExportSpec:       {"EExportSpec", 2, 2, LMember},
	EIndexSignature:   {"EIndexSignature", 1, 1, LMember},
	ECallSignature:    {"ECallSignature", 1, 1, LMember},

	SScript:     {"SScript", 0, unbounded, LLowest},
	SBlock:      {"SBlock", 0, unbounded, LLowest},
	SEmpty:      {"SEmpty", 0, 0, LLowest},
	SExpr:       {"SExpr", 1, 1, LLowest},
	SVar:        {"SVar", 1, unbounded, LLowest},
	SLet:        {"SLet", 1, unbounded, LLowest},
	SConst:      {"SConst", 1, unbounded, LLowest},
	SIf:         {"SIf", 2, 3, LLowest},
	SFor:        {"SFor", 4, 4, LLowest},
	SForIn:      {"SForIn", 3, 3, LLowest},
	SForOf:      {"SForOf", 3, 3, LLowest},
	SWhile:      {"SWhile", 2, 2, LLowest},
	SDoWhile:    {"SDoWhile", 2, 2, LLowest},
	SSwitch:     {"SSwitch", 1, unbounded, LLowest},
	SCase:       {"SCase", 2, 2, LLowest},
	SDefault:    {"SDefault", 1, 1, LLowest},
	STry:        {"STry", 2, 3, LLowest},
	SCatch:      {"SCatch", 2, 2, LLowest},
	SLabel:      {"SLabel", 2, 2, LLowest},
	SBreak:      {"SBreak", 0, 1, LLowest},
	SContinue:   {"SContinue", 0, 1, LLowest},
	SReturn:     {"SReturn", 0, 1, LLowest},
	SThrow:      {"SThrow", 1, 1, LLowest},
	SDebugger:   {"SDebugger", 0, 0, LLowest},
	SWith:       {"SWith", 2, 2, LLowest},
	SImport:     {"SImport", 3, 3, LLowest},
	SExport:     {"SExport", 1, 2, LLowest},
	SInterface:  {"SInterface", 3, 3, LLowest},
	SEnum:       {"SEnum", 2, 2, LLowest},
	SNamespace:  {"SNamespace", 2, 2, LLowest},
	STypeAlias:  {"STypeAlias", 1, 1, LLowest},
	SDeclare:    {"SDeclare", 1, 1, LLowest},

	TString:           {"TString", 0, 0, LMember},
	TNumber:           {"TNumber", 0, 0, LMember},
	TBoolean:          {"TBoolean", 0, 0, LMember},
	TAny:              {"TAny", 0, 0, LMember},
	TVoid:             {"TVoid", 0, 0, LMember},
	TUndefined:        {"TUndefined", 0, 0, LMember},
	TNull:             {"TNull", 0, 0, LMember},
	TNamed:            {"TNamed", 0, 0, LMember},
	TArray:            {"TArray", 1, 1, LMember},
	TFunction:         {"TFunction", 2, 2, LAssign},
	TUnion:            {"TUnion", 2, unbounded, LBitwiseOr},
	TRecord:           {"TRecord", 0, unbounded, LMember},
	TParameterized:    {"TParameterized", 2, unbounded, LMember},
	TGenericList:      {"TGenericList", 1, unbounded, LMember},
	TGeneric:          {"TGeneric", 0, 1, LMember},
	TInterfaceExtends: {"TInterfaceExtends", 0, unbounded, LMember},
	TInterfaceMembers: {"TInterfaceMembers", 0, unbounded, LMember},
	TEnumMembers:      {"TEnumMembers", 0, unbounded, LMember},
	TEnumMember:       {"TEnumMember", 0, 1, LMember},
}

func (k Kind) String() string {
	if k < kindCount {
		return KindTable[k].Name
	}
	return "KInvalid"
}

// IsKnown reports whether the kind is one of the kinds listed above
func (k Kind) IsKnown() bool {
	return k > KNone && k < kindCount
}

func (k Kind) IsExpression() bool {
	return k >= EEmpty && k <= ECallSignature
}

func (k Kind) IsStatement() bool {
	return k >= SScript && k <= SDeclare
}

func (k Kind) IsType() bool {
	return k >= TString && k <= TEnumMember
}

// ArityOK reports whether "count" children are legal for this kind
func (k Kind) ArityOK(count int) bool {
	if k >= kindCount {
		return false
	}
	entry := &KindTable[k]
	return count >= entry.MinChildren && (entry.MaxChildren == unbounded || count <= entry.MaxChildren)
}

var kindsByName map[string]Kind

func init() {
	kindsByName = make(map[string]Kind, kindCount)
	for k := KNone + 1; k < kindCount; k++ {
		kindsByName[KindTable[k].Name] = k
	}
}

func KindFromName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}
