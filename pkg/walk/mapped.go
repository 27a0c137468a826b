package walk

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
)

// emitMappedType emits `{[P in C]?: V}` (spec §4.5 "Mapped type", §8
// scenario 5, §9 "Mapped-type coroutines"). P is bound in the mapped
// type's own frame rather than inside the coroutine: the coroutine's
// implicit frame exists purely to make V's computation reentrant per
// key, and both P and any enclosing generic's type parameters are
// reached from inside it by walking outward one frame at a time,
// exactly like any other nested frame reference.
func (w *Walker) emitMappedType(n *hosttype.MappedType) {
	f := w.Program.PushFrame()
	w.Program.PushVariable(n.ParameterName, f)
	w.emitTypeOrNever(n.Constraint)

	w.Program.PushCoRoutine()
	w.emitTypeOrNever(n.Value)
	coOffset, err := w.Program.PopCoRoutine()
	if err != nil {
		// PushCoRoutine/PopCoRoutine always pair up within one emitMappedType
		// call, so a mismatch here is a programmer error in the walker
		// itself, not a degraded-type condition (spec §7 last bullet).
		panic(err)
	}

	modifier := mappedModifierBits(n.Optional, n.Readonly)
	w.Program.PushOp(int(op.MappedType), coOffset, modifier)
	_ = w.Program.PopFrame()
}

func (w *Walker) emitTypeOrNever(t hosttype.Type) {
	if t == nil {
		w.Program.PushOpCode(op.Never)
		return
	}
	w.EmitType(t)
}

// mappedModifierBits packs the four independent +/-?/readonly bits
// into the `mappedType` op's second operand (spec §9): bit0 add-optional,
// bit1 remove-optional, bit2 add-readonly, bit3 remove-readonly.
func mappedModifierBits(optional, readonly hosttype.MappedModifier) int {
	bits := 0
	switch optional {
	case hosttype.ModifierAdd:
		bits |= 1 << 0
	case hosttype.ModifierRemove:
		bits |= 1 << 1
	}
	switch readonly {
	case hosttype.ModifierAdd:
		bits |= 1 << 2
	case hosttype.ModifierRemove:
		bits |= 1 << 3
	}
	return bits
}
