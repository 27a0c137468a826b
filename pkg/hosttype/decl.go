package hosttype

// Declaration is any node that can be the target of the Declaration
// Resolver (§4.4) or a hoist-queue entry (§4.7).
type Declaration interface {
	Node
	declName() string
	declaration()
}

type declBase struct {
	base
	Name string
}

func (d declBase) declName() string { return d.Name }
func (declBase) declaration()       {}

// DeclName returns a declaration's own name, for callers outside this
// package (the resolve/rewrite packages need it to derive hoisted
// binding names, §4.7).
func DeclName(d Declaration) string { return d.declName() }

// ClassDeclaration is a named or anonymous class (§4.5 "Class / class
// expression"). Anonymous class expressions leave Name empty.
type ClassDeclaration struct {
	declBase
	TypeParameters []TypeParameter
	Members        []Member
	// Extends/Implements name the heritage clauses the class itself
	// declares; classes do not merge members across these the way
	// interfaces do (§4.5 only specifies merging for interfaces).
	Extends    *TypeReferenceType
	Implements []*TypeReferenceType
}

// InterfaceDeclaration is `interface Name<...> extends ... { ... }`
// (§4.5 "Interface / type literal").
type InterfaceDeclaration struct {
	declBase
	TypeParameters []TypeParameter
	Members        []Member
	Extends        []*TypeReferenceType
}

// TypeAliasDeclaration is `type Name<...> = Body;`.
type TypeAliasDeclaration struct {
	declBase
	TypeParameters []TypeParameter
	Body           Type
}

// EnumDeclaration is `enum Name { ... }`. Members are not modeled in
// detail since the walker only ever emits a live-binding thunk for an
// enum reference (§4.6 step 5), never its member values.
type EnumDeclaration struct {
	declBase
}

// FunctionKind distinguishes the carrier shapes the Tree Rewriter
// treats differently (§4.7).
type FunctionKind int

const (
	FunctionDeclarationKind FunctionKind = iota
	FunctionExpressionKind
	ArrowFunctionKind
)

// FunctionLike is a function declaration, function expression, or
// arrow function (§4.5 "Function-like", §4.7 carrier rules).
type FunctionLike struct {
	declBase
	Kind           FunctionKind
	TypeParameters []TypeParameter
	Parameters     []Parameter
	ReturnType     Type
	Body           Node
}

// Symbol is the narrow host-checker symbol oracle the resolver
// consults (§4.4). A symbol's declarations are host nodes, generally a
// Declaration but occasionally an ImportSpecifier when the binding
// resolution must bridge through an import.
type Symbol interface {
	Name() string
	Declarations() []Node
}

// Checker is the narrow host type-checker interface the resolver uses
// as a symbol oracle (§4.4): "look up the symbol at the node location".
type Checker interface {
	// SymbolAt returns the symbol a reference node resolves to, or nil
	// if the checker has no binding for it.
	SymbolAt(ref *TypeReferenceType) Symbol
	// TypeOfSymbol returns the symbol bound to the declared type of sym,
	// used to bridge through an import specifier when the first
	// declaration found is itself an import (§4.4).
	TypeOfSymbol(sym Symbol) Symbol
}

// ImportSpecifier is `import { Name [as Alias] } from "From"`, or the
// default/namespace forms distinguished by Name being empty.
type ImportSpecifier struct {
	declBase
	// From is the imported module's specifier, as written.
	From string
	// ImportedName is the name as exported by the source module, which
	// may differ from declBase.Name when the specifier uses `as`.
	ImportedName string
	// Synthetic marks the specifier as pinned against the host's
	// dead-import elimination (§9 "Cross-file identity"), set once the
	// walker resolves a class/enum reference through it.
	Synthetic bool
}

// ExportSpecifier models `export { Name [as Alias] } from "From"` and,
// when Name is empty, a star re-export `export * from "From"` (§4.4).
type ExportSpecifier struct {
	base
	// Name is the local name this module exports it as; empty for a
	// star re-export.
	Name string
	// PropertyName is the name as it exists in the re-exported module,
	// honoring `export { propertyName as Name } from "m"`; empty if
	// identical to Name.
	PropertyName string
	// From is the re-exported module's specifier.
	From string
}
