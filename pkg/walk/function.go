package walk

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
)

// functionLikeNode is the shape every function-like carrier shares: a
// method, constructor, arrow, function expression/declaration, or bare
// function type (spec §4.5 "Function-like").
type functionLikeNode struct {
	TypeParameters []hosttype.TypeParameter
	Parameters     []hosttype.Parameter
	ReturnType     hosttype.Type
}

// emitFunctionLike emits a function-like's parameters, return type, and
// closing op (spec §4.5). kind selects the closing shape:
//   - "constructor": the dedicated zero-operand `constructor` op.
//   - "method"/"methodSignature": `method`/`methodSignature, nameIdx`
//     followed by the method's own trailing modifier train.
//   - anything else: a bare `function, nameIdx` with no trailing
//     modifiers, covering arrows, function expressions/declarations,
//     and function types used in type position.
func (w *Walker) emitFunctionLike(n functionLikeNode, kind, name string, mods hosttype.Modifiers) {
	opened := !w.Program.Empty() || len(n.TypeParameters) > 0
	if opened {
		w.Program.PushFrame()
	}
	for _, tp := range n.TypeParameters {
		w.Program.PushTemplateParameter(tp.Name)
	}
	for _, p := range n.Parameters {
		if p.Name == "" {
			continue
		}
		w.emitTypeOrAny(p.Type)
		idx := w.nameIndex(p.Name)
		w.Program.PushOp(int(op.Parameter), idx)
		w.emitModifierTrain(p.Modifiers)
	}
	w.emitTypeOrAny(n.ReturnType)

	switch kind {
	case "constructor":
		w.Program.PushOpCode(op.Constructor)
	case "method":
		idx := w.nameIndex(name)
		w.Program.PushOp(int(op.Method), idx)
		w.emitModifierTrain(mods)
	case "methodSignature":
		idx := w.nameIndex(name)
		w.Program.PushOp(int(op.MethodSignature), idx)
		w.emitModifierTrain(mods)
	default:
		idx := w.nameIndex(name)
		w.Program.PushOp(int(op.Function), idx)
	}
	if opened {
		_ = w.Program.PopFrame()
	}
}

// EmitFunctionLikeDeclaration emits a top-level function declaration,
// function expression, or arrow function's own type (spec §4.5, §4.7
// carrier rules). Anonymous function expressions and arrows carry an
// empty name.
func (w *Walker) EmitFunctionLikeDeclaration(d *hosttype.FunctionLike) {
	view := functionLikeNode{
		TypeParameters: d.TypeParameters,
		Parameters:     d.Parameters,
		ReturnType:     d.ReturnType,
	}
	w.emitFunctionLike(view, "function", hosttype.DeclName(d), hosttype.Modifiers{})
}

func (w *Walker) emitFunctionType(n *hosttype.FunctionTypeType) {
	w.emitFunctionLike(functionLikeNode{
		TypeParameters: n.TypeParameters,
		Parameters:     n.Parameters,
		ReturnType:     n.ReturnType,
	}, "function", "", hosttype.Modifiers{})
}
