package walk

import (
	"testing"

	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
)

func namedProperty(name string, t hosttype.Type) *hosttype.PropertyMember {
	m := &hosttype.PropertyMember{}
	m.Name = name
	m.Type = t
	return m
}

func namedPropertySignature(name string, t hosttype.Type) *hosttype.PropertyMember {
	m := namedProperty(name, t)
	m.Signature = true
	return m
}

// TestClassDeduplicatesMembersByName covers §4.5's "deduplicated by
// name, first declaration wins" rule for class members.
func TestClassDeduplicatesMembersByName(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.ClassDeclaration{}
	decl.Name = "Box"
	first := namedProperty("v", &hosttype.PrimitiveType{Kind: hosttype.PrimitiveString})
	second := namedProperty("v", &hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber})
	decl.Members = []hosttype.Member{first, second}

	w.EmitClassDeclaration(decl)
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	// Non-generic top-level class: no frame, string wins, class closes.
	opsEqual(t, s.Ops, op.String, op.Property, op.Code(0), op.Class)
}

// TestGenericTopLevelClassOpensOwnFrame guards against a class's own
// `template` entries having nowhere to bind when it is the program's
// sole top-level carrier — unlike a union, a class cannot simply omit
// its frame once it has type parameters.
func TestGenericTopLevelClassOpensOwnFrame(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.ClassDeclaration{TypeParameters: []hosttype.TypeParameter{{Name: "T"}}}
	decl.Name = "Box"
	decl.Members = []hosttype.Member{namedProperty("v", tref("T"))}

	w.EmitClassDeclaration(decl)
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops,
		op.Frame, op.Template, op.Code(0),
		op.Loads, op.Code(0), op.Code(0),
		op.Property, op.Code(1),
		op.Class,
	)
}

// TestInterfaceExtendsMergesInheritedMembersSkippingShadowed covers
// §4.5's interface merge rule: a member the child already declares is
// not repeated from the parent.
func TestInterfaceExtendsMergesInheritedMembersSkippingShadowed(t *testing.T) {
	w, p := newWalker()
	parent := &hosttype.InterfaceDeclaration{}
	parent.Name = "Base"
	parent.Members = []hosttype.Member{
		namedPropertySignature("id", &hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber}),
		namedPropertySignature("name", &hosttype.PrimitiveType{Kind: hosttype.PrimitiveString}),
	}

	child := &hosttype.InterfaceDeclaration{}
	child.Name = "Child"
	child.Members = []hosttype.Member{
		namedPropertySignature("name", &hosttype.PrimitiveType{Kind: hosttype.PrimitiveBoolean}),
	}
	child.Extends = []*hosttype.TypeReferenceType{refWithSymbol("Base", parent)}

	w.EmitInterfaceDeclaration(child)
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops,
		op.Frame,
		op.Boolean, op.PropertySignature, op.Code(0), // own "name" wins
		op.Number, op.PropertySignature, op.Code(1), // inherited "id"
		op.ObjectLiteral,
	)
}

// TestMethodMemberEmitsTrailingModifierTrain covers §4.5's method
// modifier train ordering.
func TestMethodMemberEmitsTrailingModifierTrain(t *testing.T) {
	w, p := newWalker()
	m := &hosttype.MethodMember{
		ReturnType: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveVoid},
		Modifiers:  hosttype.Modifiers{Public: true, Abstract: true},
	}
	m.Name = "run"

	decl := &hosttype.ClassDeclaration{}
	decl.Name = "Worker"
	decl.Members = []hosttype.Member{m}

	w.EmitClassDeclaration(decl)
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops,
		op.Void, op.Method, op.Code(0), op.Public, op.Abstract,
		op.Class,
	)
}

// TestConstructorUsesDedicatedOpcode covers the decision to use the
// zero-arity `constructor` opcode rather than `method` with a literal
// "constructor" name.
func TestConstructorUsesDedicatedOpcode(t *testing.T) {
	w, p := newWalker()
	ctor := &hosttype.MethodMember{
		Constructor: true,
		Parameters: []hosttype.Parameter{
			{Name: "x", Type: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber}},
		},
		ReturnType: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveVoid},
	}
	decl := &hosttype.ClassDeclaration{}
	decl.Name = "Point"
	decl.Members = []hosttype.Member{ctor}

	w.EmitClassDeclaration(decl)
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops,
		op.Number, op.Parameter, op.Code(0),
		op.Void, op.Constructor,
		op.Class,
	)
}

// TestFunctionDeclarationEmitsFunctionOpcode covers a standalone
// function declaration's closing op, distinct from class/interface
// methods.
func TestFunctionDeclarationEmitsFunctionOpcode(t *testing.T) {
	w, p := newWalker()
	decl := &hosttype.FunctionLike{
		Parameters: []hosttype.Parameter{
			{Name: "x", Type: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveString}},
		},
		ReturnType: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveBoolean},
	}
	decl.Name = "isEmpty"

	w.EmitFunctionLikeDeclaration(decl)
	s, err := p.BuildPackStruct()
	if err != nil {
		t.Fatalf("BuildPackStruct: %v", err)
	}
	opsEqual(t, s.Ops,
		op.String, op.Parameter, op.Code(0),
		op.Boolean, op.Function, op.Code(1),
	)
}
