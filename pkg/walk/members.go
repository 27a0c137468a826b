package walk

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
	"github.com/timvandam/deepkit-framework/pkg/pack"
)

func (w *Walker) nameIndex(name string) int {
	return w.Program.FindOrAddStackEntry(pack.StackEntry{Kind: pack.KindName, Value: name})
}

// emitMember dispatches a single class/interface/type-literal member to
// its emission routine (spec §4.5).
func (w *Walker) emitMember(m hosttype.Member) {
	switch mm := m.(type) {
	case *hosttype.PropertyMember:
		w.emitProperty(mm)
	case *hosttype.IndexSignatureMember:
		w.emitIndexSignature(mm)
	case *hosttype.MethodMember:
		w.emitMethodMember(mm)
	}
}

// memberDedupKey returns the name members are deduplicated by (spec
// §4.5 "deduplicated by name", "first declaration wins"). Index
// signatures have no rendered name and are never deduplicated against
// each other.
func memberDedupKey(m hosttype.Member) string {
	if _, ok := m.(*hosttype.IndexSignatureMember); ok {
		return ""
	}
	return hosttype.MemberName(m)
}

func (w *Walker) emitIndexSignature(m *hosttype.IndexSignatureMember) {
	w.emitTypeOrAny(m.KeyType)
	w.emitTypeOrAny(m.ValueType)
	w.Program.PushOpCode(op.IndexSignature)
}

// emitProperty emits `property`/`propertySignature, nameIdx` followed by
// the trailing modifier train and an optional `description` (spec §4.5
// "Property signature / declaration").
func (w *Walker) emitProperty(m *hosttype.PropertyMember) {
	w.emitTypeOrAny(m.Type)
	idx := w.nameIndex(m.Name)
	if m.Signature {
		w.Program.PushOp(int(op.PropertySignature), idx)
	} else {
		w.Program.PushOp(int(op.Property), idx)
	}
	w.emitModifierTrain(m.Modifiers)
	if doc := m.DocComment(); doc != "" {
		w.emitDescription(doc)
	}
}

func (w *Walker) emitMethodMember(m *hosttype.MethodMember) {
	view := functionLikeNode{
		TypeParameters: m.TypeParameters,
		Parameters:     m.Parameters,
		ReturnType:     m.ReturnType,
	}
	switch {
	case m.Constructor:
		w.emitFunctionLike(view, "constructor", "", hosttype.Modifiers{})
	case m.Signature:
		w.emitFunctionLike(view, "methodSignature", m.Name, m.Modifiers)
	default:
		w.emitFunctionLike(view, "method", m.Name, m.Modifiers)
	}
}

// emitModifierTrain appends the trailing decoration-train ops for `?`,
// `readonly`, `public`, `private`, `protected`, `abstract`, and a
// `defaultValue` op wrapping a thunk around the initializer, in that
// order (spec §4.5: "modifier ops always follow the element they
// modify").
func (w *Walker) emitModifierTrain(mod hosttype.Modifiers) {
	if mod.Optional {
		w.Program.PushOpCode(op.Optional)
	}
	if mod.Readonly {
		w.Program.PushOpCode(op.Readonly)
	}
	if mod.Public {
		w.Program.PushOpCode(op.Public)
	}
	if mod.Private {
		w.Program.PushOpCode(op.Private)
	}
	if mod.Protected {
		w.Program.PushOpCode(op.Protected)
	}
	if mod.Abstract {
		w.Program.PushOpCode(op.Abstract)
	}
	if mod.Initializer != nil {
		idx := w.Program.FindOrAddStackEntry(pack.StackEntry{Kind: pack.KindThunk, Value: mod.Initializer})
		w.Program.PushOp(int(op.DefaultValue), idx)
	}
}

func (w *Walker) emitDescription(doc string) {
	idx := w.nameIndex(doc)
	w.Program.PushOp(int(op.Description), idx)
}

// emitClassBody emits a class declaration/expression's own shape (spec
// §4.5 "Class / class expression"): classes never merge members across
// `extends`/`implements` the way interfaces merge across `extends`. A
// top-level, non-generic class needs no frame of its own, same as a
// top-level union — but a class's own `template` entries need somewhere
// to live even when nothing else shares the program's buffer yet, so
// type parameters force a frame open regardless of position.
func (w *Walker) emitClassBody(d *hosttype.ClassDeclaration) {
	opened := !w.Program.Empty() || len(d.TypeParameters) > 0
	if opened {
		w.Program.PushFrame()
	}
	for _, tp := range d.TypeParameters {
		w.Program.PushTemplateParameter(tp.Name)
	}
	emitted := map[string]bool{}
	for _, m := range d.Members {
		key := memberDedupKey(m)
		if key != "" {
			if emitted[key] {
				continue
			}
			emitted[key] = true
		}
		w.emitMember(m)
	}
	w.Program.PushOpCode(op.Class)
	if opened {
		_ = w.Program.PopFrame()
	}
}

// emitInterfaceLike emits the shared shape of an interface declaration
// and an anonymous type literal: a frame, each own member deduplicated
// by name, the (interface-only) extends-clause member merge, and the
// closing `objectLiteral` (spec §4.5 "Interface / type literal").
func (w *Walker) emitInterfaceLike(typeParams []hosttype.TypeParameter, members []hosttype.Member, extends []*hosttype.TypeReferenceType) {
	w.Program.PushFrame()
	for _, tp := range typeParams {
		w.Program.PushTemplateParameter(tp.Name)
	}
	emitted := map[string]bool{}
	for _, m := range members {
		key := memberDedupKey(m)
		if key != "" {
			if emitted[key] {
				continue
			}
			emitted[key] = true
		}
		w.emitMember(m)
	}
	for _, ext := range extends {
		w.emitInheritedMembers(ext, emitted)
	}
	w.Program.PushOpCode(op.ObjectLiteral)
	_ = w.Program.PopFrame()
}

// emitInheritedMembers resolves an `extends` clause and recursively
// emits the parent's (and further ancestors') members not already
// shadowed by a name already emitted.
func (w *Walker) emitInheritedMembers(ext *hosttype.TypeReferenceType, emitted map[string]bool) {
	res, ok := w.Resolver.Resolve(w.Module, ext)
	if !ok {
		return
	}
	iface, ok := res.Declaration.(*hosttype.InterfaceDeclaration)
	if !ok {
		return
	}
	for _, m := range iface.Members {
		key := memberDedupKey(m)
		if key != "" {
			if emitted[key] {
				continue
			}
			emitted[key] = true
		}
		w.emitMember(m)
	}
	for _, grandparent := range iface.Extends {
		w.emitInheritedMembers(grandparent, emitted)
	}
}

func (w *Walker) emitTypeLiteral(n *hosttype.TypeLiteralType) {
	w.emitInterfaceLike(nil, n.Members, nil)
}

// EmitInterfaceDeclaration emits a named interface's own body — the
// hoisted program a resolved interface reference inlines (spec §4.6
// step 5 "Type alias / interface").
func (w *Walker) EmitInterfaceDeclaration(d *hosttype.InterfaceDeclaration) {
	w.emitInterfaceLike(d.TypeParameters, d.Members, d.Extends)
}

// EmitClassDeclaration emits a named or anonymous class's own body.
func (w *Walker) EmitClassDeclaration(d *hosttype.ClassDeclaration) {
	w.emitClassBody(d)
}

// EmitTypeAliasDeclaration emits a type alias's own body: a generic
// alias opens a frame and binds each type parameter as a `template`
// entry before its body is emitted (spec §8 scenarios 3, 5); a
// non-generic alias emits its body directly.
func (w *Walker) EmitTypeAliasDeclaration(d *hosttype.TypeAliasDeclaration) {
	if len(d.TypeParameters) == 0 {
		w.EmitType(d.Body)
		return
	}
	w.Program.PushFrame()
	for _, tp := range d.TypeParameters {
		w.Program.PushTemplateParameter(tp.Name)
	}
	w.EmitType(d.Body)
	_ = w.Program.PopFrame()
}
