// Package hosttype is the narrow interface to the out-of-scope host
// compiler's AST and type checker (spec §1 "Out of scope"): the walker,
// resolver, and rewriter never see the real upstream tree, only the
// handful of node and declaration shapes declared here. A concrete
// in-memory implementation is included so the rest of the module can be
// built and tested without a real host compiler attached.
package hosttype

// Position is a source location, byte-offset plus line/column for
// diagnostics.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Span is a source range.
type Span struct {
	Start Position
	End   Position
}

// Node is implemented by every syntax node the walker or resolver can
// see. DocComment carries the raw leading doc comment text, if any,
// used by the configuration probe (§4.8) and the `description` op
// (§4.5).
type Node interface {
	Span() Span
	DocComment() string
	node()
}

// Type is the interface for every type-position syntax node the walker
// dispatches on (§4.5 table, §4.6).
type Type interface {
	Node
	typeNode()
}

type base struct {
	SpanVal Span
	Doc     string
}

func (b base) Span() Span       { return b.SpanVal }
func (b base) DocComment() string { return b.Doc }
func (base) node()              {}

// PrimitiveKind enumerates the bare keyword primitive types (§4.1).
type PrimitiveKind int

const (
	PrimitiveNever PrimitiveKind = iota
	PrimitiveAny
	PrimitiveVoid
	PrimitiveString
	PrimitiveNumber
	PrimitiveBoolean
	PrimitiveBigInt
	PrimitiveNull
	PrimitiveUndefined
)

// PrimitiveType is a bare keyword type with no operands.
type PrimitiveType struct {
	base
	Kind PrimitiveKind
}

func (*PrimitiveType) typeNode() {}

// LiteralKind tags the underlying value shape of a LiteralType.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

// LiteralType is a literal type: `"a"`, `5`, `true`/`false` (§4.5). A
// bare `null` literal is represented by PrimitiveType(PrimitiveNull)
// instead, per the emission rule's special case.
type LiteralType struct {
	base
	Kind  LiteralKind
	Value any
}

func (*LiteralType) typeNode() {}

// ArrayType is `T[]`.
type ArrayType struct {
	base
	Element Type
}

func (*ArrayType) typeNode() {}

// UnionType is `T1 | T2 | ...`.
type UnionType struct {
	base
	Members []Type
}

func (*UnionType) typeNode() {}

// IntersectionType is `T1 & T2 & ...`.
type IntersectionType struct {
	base
	Members []Type
}

func (*IntersectionType) typeNode() {}

// KeyofType is `keyof T`.
type KeyofType struct {
	base
	Operand Type
}

func (*KeyofType) typeNode() {}

// IndexedAccessType is `T[K]`.
type IndexedAccessType struct {
	base
	Object Type
	Index  Type
}

func (*IndexedAccessType) typeNode() {}

// ConditionalType is `Check extends Extends ? True : False` (§4.5).
type ConditionalType struct {
	base
	Check    Type
	Extends  Type
	True     Type
	False    Type
}

func (*ConditionalType) typeNode() {}

// InferType is `infer X` (§4.5).
type InferType struct {
	base
	Name string
}

func (*InferType) typeNode() {}

// ParenthesizedType is `(T)`; the walker unwraps and re-dispatches.
type ParenthesizedType struct {
	base
	Inner Type
}

func (*ParenthesizedType) typeNode() {}

// MappedModifier is a single `+`/`-`/bare modifier token on a mapped
// type's `?` or `readonly` position (§9 "four independent bits").
type MappedModifier int

const (
	ModifierNone MappedModifier = iota
	ModifierAdd
	ModifierRemove
)

// MappedType is `{ [P in C]?: V }`, optionally with `readonly`/`-readonly`
// and `?`/`-?` modifiers (§4.5, §9).
type MappedType struct {
	base
	ParameterName  string
	Constraint     Type
	Value          Type
	Optional       MappedModifier
	Readonly       MappedModifier
}

func (*MappedType) typeNode() {}

// QualifiedName is a possibly dotted type reference name, e.g. `NS.T`.
type QualifiedName struct {
	Parts []string
}

func (q QualifiedName) String() string {
	s := ""
	for i, p := range q.Parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

// TypeReferenceType is `Name<A1, ..., Ak>` (§4.6).
type TypeReferenceType struct {
	base
	Name          QualifiedName
	TypeArguments []Type
	// Symbol is the resolved symbol for Name at this occurrence, if the
	// host checker could supply one; nil means "look it up" (§4.4).
	Symbol Symbol
}

func (*TypeReferenceType) typeNode() {}

// TypeLiteralType is an anonymous `{ ... }` object type (§4.5, §4.6
// "Type literal").
type TypeLiteralType struct {
	base
	Members []Member
}

func (*TypeLiteralType) typeNode() {}

// FunctionTypeType is a function type `(params) => Ret` used in type
// position (§4.5 "Function-like").
type FunctionTypeType struct {
	base
	TypeParameters []TypeParameter
	Parameters     []Parameter
	ReturnType     Type
}

func (*FunctionTypeType) typeNode() {}

// TypeParameter is a generic declaration's type parameter, e.g. `<T>`.
type TypeParameter struct {
	Name       string
	Constraint Type
}
