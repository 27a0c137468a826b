package main

import "github.com/timvandam/deepkit-framework/pkg/hosttype"

// bindSymbols attaches a Symbol to every TypeReferenceType reachable
// from mod's own declarations, resolving directly against mod's local
// name table. It stands in for the real host checker's binding pass:
// the JSON-encoded tree this command reads carries only bare names, so
// this walk gives hosttype.MapChecker something to find at
// TypeReferenceType.Symbol, per its own doc comment ("the JSON source
// already carries resolved symbol references"). Names that don't
// resolve locally are left with a nil Symbol, which sends the walker's
// resolver down the "unresolved global → any" path (§4.4), exactly as
// it would for a genuinely external reference.
func bindSymbols(mod *hosttype.Module) {
	for _, decl := range mod.Declarations {
		bindDeclaration(mod, decl)
	}
}

func bindDeclaration(mod *hosttype.Module, decl hosttype.Declaration) {
	switch d := decl.(type) {
	case *hosttype.ClassDeclaration:
		if d.Extends != nil {
			bindReference(mod, d.Extends)
		}
		for _, im := range d.Implements {
			bindReference(mod, im)
		}
		bindTypeParams(mod, d.TypeParameters)
		bindMembers(mod, d.Members)
	case *hosttype.InterfaceDeclaration:
		for _, ex := range d.Extends {
			bindReference(mod, ex)
		}
		bindTypeParams(mod, d.TypeParameters)
		bindMembers(mod, d.Members)
	case *hosttype.TypeAliasDeclaration:
		bindTypeParams(mod, d.TypeParameters)
		bindType(mod, d.Body)
	case *hosttype.FunctionLike:
		bindTypeParams(mod, d.TypeParameters)
		bindParameters(mod, d.Parameters)
		bindType(mod, d.ReturnType)
	}
}

func bindReference(mod *hosttype.Module, ref *hosttype.TypeReferenceType) {
	if ref == nil {
		return
	}
	if d, ok := mod.Declarations[ref.Name.String()]; ok {
		ref.Symbol = hosttype.NewSymbol(ref.Name.String(), d)
	}
	for _, arg := range ref.TypeArguments {
		bindType(mod, arg)
	}
}

func bindTypeParams(mod *hosttype.Module, tps []hosttype.TypeParameter) {
	for _, tp := range tps {
		bindType(mod, tp.Constraint)
	}
}

func bindParameters(mod *hosttype.Module, params []hosttype.Parameter) {
	for _, p := range params {
		bindType(mod, p.Type)
	}
}

func bindMembers(mod *hosttype.Module, members []hosttype.Member) {
	for _, m := range members {
		switch v := m.(type) {
		case *hosttype.PropertyMember:
			bindType(mod, v.Type)
		case *hosttype.IndexSignatureMember:
			bindType(mod, v.KeyType)
			bindType(mod, v.ValueType)
		case *hosttype.MethodMember:
			bindTypeParams(mod, v.TypeParameters)
			bindParameters(mod, v.Parameters)
			bindType(mod, v.ReturnType)
		}
	}
}

func bindType(mod *hosttype.Module, t hosttype.Type) {
	switch v := t.(type) {
	case nil:
		return
	case *hosttype.ArrayType:
		bindType(mod, v.Element)
	case *hosttype.UnionType:
		for _, m := range v.Members {
			bindType(mod, m)
		}
	case *hosttype.IntersectionType:
		for _, m := range v.Members {
			bindType(mod, m)
		}
	case *hosttype.KeyofType:
		bindType(mod, v.Operand)
	case *hosttype.IndexedAccessType:
		bindType(mod, v.Object)
		bindType(mod, v.Index)
	case *hosttype.ConditionalType:
		bindType(mod, v.Check)
		bindType(mod, v.Extends)
		bindType(mod, v.True)
		bindType(mod, v.False)
	case *hosttype.ParenthesizedType:
		bindType(mod, v.Inner)
	case *hosttype.MappedType:
		bindType(mod, v.Constraint)
		bindType(mod, v.Value)
	case *hosttype.TypeReferenceType:
		bindReference(mod, v)
	case *hosttype.TypeLiteralType:
		bindMembers(mod, v.Members)
	case *hosttype.FunctionTypeType:
		bindTypeParams(mod, v.TypeParameters)
		bindParameters(mod, v.Parameters)
		bindType(mod, v.ReturnType)
	}
}
