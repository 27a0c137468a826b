// Package walk implements the Type-to-Bytecode Walker of spec §4.5/§4.6:
// a recursive-descent emitter that turns one hosttype.Type (or the body
// of a rewritten carrier declaration) into opcodes on a program.Program.
//
// A Walker is created per carrier alongside a fresh program.Program (spec
// §3 "Lifecycle"); it accumulates hoist-queue entries as it resolves type
// references, which the rewriter later drains to fixpoint (§4.7, §9
// "Cyclic type references").
package walk

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
	"github.com/timvandam/deepkit-framework/pkg/pack"
	"github.com/timvandam/deepkit-framework/pkg/program"
	"github.com/timvandam/deepkit-framework/pkg/resolve"
)

// Walker emits opcodes for one carrier's type into a program.Program. Its
// hoist queues accumulate declarations discovered while resolving type
// references (§4.6 step 5); the rewriter drains them after the walk.
type Walker struct {
	Program  *program.Program
	Resolver *resolve.Resolver
	Module   *hosttype.Module

	// LocalHoistQueue holds type alias/interface declarations found in
	// Module itself, keyed by declaration identity, valued by the
	// reference name used at the use site the hoist was discovered from
	// (spec §3 "Hoist queues").
	LocalHoistQueue map[hosttype.Declaration]string
	// ForeignHoistQueue holds the same, for declarations reached through
	// an import.
	ForeignHoistQueue map[hosttype.Declaration]string
}

// New creates a Walker over an already-created program.Program.
func New(p *program.Program, r *resolve.Resolver, mod *hosttype.Module) *Walker {
	return &Walker{
		Program:           p,
		Resolver:          r,
		Module:            mod,
		LocalHoistQueue:   map[hosttype.Declaration]string{},
		ForeignHoistQueue: map[hosttype.Declaration]string{},
	}
}

// EmitType dispatches on t's concrete kind and emits the corresponding
// opcodes (spec §4.5's table), following exactly the same tagged-switch
// shape as the teacher's expression compiler.
func (w *Walker) EmitType(t hosttype.Type) {
	switch n := t.(type) {
	case *hosttype.PrimitiveType:
		w.emitPrimitive(n)
	case *hosttype.LiteralType:
		w.emitLiteral(n)
	case *hosttype.ArrayType:
		w.EmitType(n.Element)
		w.Program.PushOpCode(op.Array)
	case *hosttype.UnionType:
		w.emitUnion(n)
	case *hosttype.IntersectionType:
		w.emitIntersection(n)
	case *hosttype.KeyofType:
		w.EmitType(n.Operand)
		w.Program.PushOpCode(op.Keyof)
	case *hosttype.IndexedAccessType:
		w.EmitType(n.Object)
		w.EmitType(n.Index)
		w.Program.PushOpCode(op.Query)
	case *hosttype.ConditionalType:
		w.emitConditional(n)
	case *hosttype.InferType:
		w.emitInfer(n)
	case *hosttype.ParenthesizedType:
		w.EmitType(n.Inner)
	case *hosttype.MappedType:
		w.emitMappedType(n)
	case *hosttype.TypeReferenceType:
		w.emitTypeReference(n)
	case *hosttype.TypeLiteralType:
		w.emitTypeLiteral(n)
	case *hosttype.FunctionTypeType:
		w.emitFunctionType(n)
	default:
		// Unsupported or unresolved syntax degrades to `any` rather than
		// aborting the walk (spec §7).
		w.Program.PushOpCode(op.Any)
	}
}

// emitTypeOrAny emits t, or `any` if t is nil — the table's recurring
// "(or `any`)" fallback for an absent index-signature value, parameter
// annotation, or return type.
func (w *Walker) emitTypeOrAny(t hosttype.Type) {
	if t == nil {
		w.Program.PushOpCode(op.Any)
		return
	}
	w.EmitType(t)
}

var primitiveOps = map[hosttype.PrimitiveKind]op.Code{
	hosttype.PrimitiveNever:     op.Never,
	hosttype.PrimitiveAny:       op.Any,
	hosttype.PrimitiveVoid:      op.Void,
	hosttype.PrimitiveString:    op.String,
	hosttype.PrimitiveNumber:    op.Number,
	hosttype.PrimitiveBoolean:   op.Boolean,
	hosttype.PrimitiveBigInt:    op.BigInt,
	hosttype.PrimitiveNull:      op.Null,
	hosttype.PrimitiveUndefined: op.Undefined,
}

func (w *Walker) emitPrimitive(n *hosttype.PrimitiveType) {
	c, ok := primitiveOps[n.Kind]
	if !ok {
		c = op.Any
	}
	w.Program.PushOpCode(c)
}

// emitLiteral emits `literal, stackIdx(node)` for a string/number/boolean
// literal type (spec §4.5). A bare `null` literal type is modeled as
// PrimitiveType(PrimitiveNull) instead and never reaches here.
func (w *Walker) emitLiteral(n *hosttype.LiteralType) {
	idx := w.Program.FindOrAddStackEntry(pack.StackEntry{Kind: pack.KindLiteralNode, Value: n.Value})
	w.Program.PushOp(int(op.Literal), idx)
}

func (w *Walker) emitUnion(n *hosttype.UnionType) {
	switch len(n.Members) {
	case 0:
		return
	case 1:
		w.EmitType(n.Members[0])
		return
	}
	opened := !w.Program.Empty()
	if opened {
		w.Program.PushFrame()
	}
	for _, m := range n.Members {
		w.EmitType(m)
	}
	w.Program.PushOpCode(op.Union)
	if opened {
		_ = w.Program.PopFrame()
	}
}

func (w *Walker) emitIntersection(n *hosttype.IntersectionType) {
	opened := !w.Program.Empty()
	if opened {
		w.Program.PushFrame()
	}
	for _, m := range n.Members {
		w.EmitType(m)
	}
	w.Program.PushOpCode(op.Intersection)
	if opened {
		_ = w.Program.PopFrame()
	}
}

func (w *Walker) emitConditional(n *hosttype.ConditionalType) {
	w.Program.PushConditionalFrame()
	w.EmitType(n.Check)
	w.EmitType(n.Extends)
	w.Program.PushOpCode(op.Extends)
	w.EmitType(n.True)
	w.EmitType(n.False)
	w.Program.PushOpCode(op.Condition)
	_ = w.Program.PopFrame()
}

// emitInfer emits `infer X` (spec §4.5): an `infer` binding only ever
// makes sense inside a conditional type's `extends` clause, so a missing
// enclosing conditional frame degrades to `never` rather than faulting —
// this is the one §7 "unresolved infer" case, not a programmer error.
func (w *Walker) emitInfer(n *hosttype.InferType) {
	f := w.Program.EnclosingConditionalFrame()
	if f == nil {
		w.Program.PushOpCode(op.Never)
		return
	}
	res, ok := w.Program.FindVariableInFrame(f, n.Name)
	if !ok {
		w.Program.PushVariable(n.Name, f)
		res, _ = w.Program.FindVariableInFrame(f, n.Name)
	}
	w.Program.PushOp(int(op.Infer), res.FrameOffset, res.Index)
}
