package hosttype

import "testing"

func TestTypeMarkersSatisfyInterface(t *testing.T) {
	var types []Type = []Type{
		&PrimitiveType{Kind: PrimitiveString},
		&LiteralType{Kind: LiteralString, Value: "a"},
		&ArrayType{Element: &PrimitiveType{Kind: PrimitiveNumber}},
		&UnionType{Members: []Type{&PrimitiveType{Kind: PrimitiveString}, &PrimitiveType{Kind: PrimitiveNumber}}},
		&IntersectionType{},
		&KeyofType{Operand: &PrimitiveType{Kind: PrimitiveString}},
		&IndexedAccessType{},
		&ConditionalType{},
		&InferType{Name: "X"},
		&ParenthesizedType{},
		&MappedType{ParameterName: "P"},
		&TypeReferenceType{Name: QualifiedName{Parts: []string{"Foo"}}},
		&TypeLiteralType{},
		&FunctionTypeType{},
	}
	for _, ty := range types {
		if ty.Span() != (Span{}) {
			t.Errorf("%T: expected zero span by default", ty)
		}
	}
}

func TestDeclarationMarkersSatisfyInterface(t *testing.T) {
	var decls []Declaration = []Declaration{
		&ClassDeclaration{declBase: declBase{Name: "C"}},
		&InterfaceDeclaration{declBase: declBase{Name: "I"}},
		&TypeAliasDeclaration{declBase: declBase{Name: "A"}},
		&EnumDeclaration{declBase: declBase{Name: "E"}},
		&FunctionLike{declBase: declBase{Name: "f"}},
		&ImportSpecifier{declBase: declBase{Name: "x"}, From: "m"},
	}
	for _, d := range decls {
		if d.declName() == "" {
			t.Errorf("%T: expected a non-empty name", d)
		}
	}
}

func TestQualifiedNameString(t *testing.T) {
	q := QualifiedName{Parts: []string{"NS", "T"}}
	if got := q.String(); got != "NS.T" {
		t.Errorf("String() = %q, want %q", got, "NS.T")
	}
}

func TestModuleDeclareAndGraphResolve(t *testing.T) {
	m := NewModule("a.ts")
	m.Declare(&TypeAliasDeclaration{declBase: declBase{Name: "A"}})
	if _, ok := m.Declarations["A"]; !ok {
		t.Fatal("Declare did not register under the declaration's own name")
	}

	g := MapGraph{"a.ts": m}
	got, err := g.Resolve(nil, "a.ts")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != m {
		t.Error("Resolve returned a different module")
	}
	if _, err := g.Resolve(nil, "missing.ts"); err == nil {
		t.Error("expected an error resolving an unregistered module")
	}
}

func TestMapCheckerBridging(t *testing.T) {
	c := NewMapChecker()
	importSym := NewSymbol("X")
	realSym := NewSymbol("X")
	c.Bridges[importSym] = realSym

	ref := &TypeReferenceType{Name: QualifiedName{Parts: []string{"X"}}, Symbol: importSym}
	if got := c.SymbolAt(ref); got != importSym {
		t.Fatalf("SymbolAt = %v, want %v", got, importSym)
	}
	if got := c.TypeOfSymbol(importSym); got != realSym {
		t.Fatalf("TypeOfSymbol = %v, want %v", got, realSym)
	}
	if got := c.TypeOfSymbol(realSym); got != nil {
		t.Fatalf("TypeOfSymbol(realSym) = %v, want nil (no bridge registered)", got)
	}
}
