package walk

import (
	"testing"

	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
)

func refWithSymbol(name string, decl hosttype.Declaration) *hosttype.TypeReferenceType {
	sym := hosttype.NewSymbol(name, decl)
	return &hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{name}}, Symbol: sym}
}

// TestLocalAliasReferenceHoistsAndInlines covers §4.6 step 5's
// "Type alias / interface" case for a locally-declared alias: the use
// site becomes `inline`, and the declaration lands in the local hoist
// queue keyed by its own name.
func TestLocalAliasReferenceHoistsAndInlines(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.TypeAliasDeclaration{}
	decl.Name = "Foo"
	decl.Body = &hosttype.PrimitiveType{Kind: hosttype.PrimitiveString}

	w.EmitType(refWithSymbol("Foo", decl))

	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	if len(s.Ops) != 2 || s.Ops[0] != int(op.Inline) {
		t.Fatalf("Ops = %v, want [inline, <idx>]", s.Ops)
	}
	if name, ok := w.LocalHoistQueue[decl]; !ok || name != "Foo" {
		t.Fatalf("LocalHoistQueue[decl] = %q, %v; want \"Foo\", true", name, ok)
	}
	if len(w.ForeignHoistQueue) != 0 {
		t.Fatalf("ForeignHoistQueue should stay empty, got %v", w.ForeignHoistQueue)
	}
}

// TestGenericAliasReferenceEmitsInlineCall covers the type-argument
// path of the same case: `Foo<string>` emits the argument(s) before
// `inlineCall name argc`.
func TestGenericAliasReferenceEmitsInlineCall(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.TypeAliasDeclaration{TypeParameters: []hosttype.TypeParameter{{Name: "T"}}}
	decl.Name = "Foo"
	decl.Body = tref("T")

	ref := refWithSymbol("Foo", decl)
	ref.TypeArguments = []hosttype.Type{&hosttype.PrimitiveType{Kind: hosttype.PrimitiveString}}
	w.EmitType(ref)

	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops, op.String, op.InlineCall, op.Code(0), op.Code(1))
}

// TestImportedEnumReferenceMarksSpecifierSynthetic covers §4.6 step 5's
// enum case and §9's "Cross-file identity": resolving through an
// import pins the specifier so it survives dead-import elimination.
func TestImportedEnumReferenceMarksSpecifierSynthetic(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.EnumDeclaration{}
	decl.Name = "Color"
	realSym := hosttype.NewSymbol("Color", decl)

	imp := &hosttype.ImportSpecifier{From: "./colors", ImportedName: "Color"}
	importSym := hosttype.NewSymbol("Color", imp)
	w.Resolver.Checker.(*hosttype.MapChecker).Bridges[importSym] = realSym

	ref := &hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{"Color"}}, Symbol: importSym}
	w.EmitType(ref)

	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	if len(s.Ops) != 2 || s.Ops[0] != int(op.Enum) {
		t.Fatalf("Ops = %v, want [enum, <idx>]", s.Ops)
	}
	if !imp.Synthetic {
		t.Fatal("expected the import specifier to be marked Synthetic")
	}
}

// TestClassReferenceEmitsTypeArgumentsThenClassReference covers the
// class case, including that type arguments are emitted before the
// class-reference thunk itself.
func TestClassReferenceEmitsTypeArgumentsThenClassReference(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.ClassDeclaration{TypeParameters: []hosttype.TypeParameter{{Name: "T"}}}
	decl.Name = "Box"

	ref := refWithSymbol("Box", decl)
	ref.TypeArguments = []hosttype.Type{&hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber}}
	w.EmitType(ref)

	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops, op.Number, op.ClassReference, op.Code(0))
}

// TestKnownClassAndNumberBrandShortCircuitResolution covers §4.6 steps
// 1 and 2 — neither ever touches the resolver, so an unbound symbol
// (nil) still resolves correctly.
func TestKnownClassAndNumberBrandShortCircuitResolution(t *testing.T) {
	w, p := newWalker()
	w.EmitType(&hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{"Date"}}})
	w.EmitType(&hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{"uint8"}}})

	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops, op.Date, op.NumberBrand, op.Code(5))
}

// TestUnresolvedReferenceDegradesToAny covers §7: an unresolved global
// degrades silently rather than faulting.
func TestUnresolvedReferenceDegradesToAny(t *testing.T) {
	w, p := newWalker()
	w.EmitType(&hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{"SomeGlobal"}}})
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops, op.Any)
}
