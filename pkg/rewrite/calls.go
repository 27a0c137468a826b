package rewrite

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/program"
	"github.com/timvandam/deepkit-framework/pkg/walk"
)

// autoTypeHelpers names the recognized call-position helpers §4.7
// rewrites unconditionally, regardless of what they resolve to.
var autoTypeHelpers = map[string]bool{
	"typeOf":       true,
	"valuesOf":     true,
	"propertiesOf": true,
}

// CallRewriteKind distinguishes which of §4.7's two call-expression
// rewrites, if any, applies to a given call site.
type CallRewriteKind int

const (
	// NoCallRewrite means the call site needs no change.
	NoCallRewrite CallRewriteKind = iota
	// AutoTypeHelperInject is the `typeOf`/`valuesOf`/`propertiesOf`
	// rewrite: append the first type argument's payload as a runtime
	// argument.
	AutoTypeHelperInject
	// ReceiveTypeInject is the generic-function rewrite: inject a type
	// argument's payload at the position of a `ReceiveType<X>` parameter.
	ReceiveTypeInject
)

// CallRewrite describes the edit RewriteCall found for one call
// expression. ArgumentIndex is the 0-based position in the final
// argument list the Payload lands at. PrependEmptyArray and
// PadUndefinedCount describe the synthetic filler §4.7 calls for when
// the existing argument list is shorter than the target position.
type CallRewrite struct {
	Kind              CallRewriteKind
	ArgumentIndex     int
	Payload           any
	PrependEmptyArray bool
	PadUndefinedCount int
}

// RewriteCall implements §4.7's call-expression rewrite. A call to a
// recognized auto-type helper is rewritten whenever it carries explicit
// type arguments, independent of what it resolves to. Any other call
// whose resolved declaration is a generic function with a parameter
// typed `ReceiveType<X>` (X matching one of that function's own type
// parameters) has the matching type argument's payload injected at that
// parameter's position.
func RewriteCall(w *walk.Walker, call *hosttype.CallExpression) (CallRewrite, error) {
	if autoTypeHelpers[lastPart(call.Callee)] {
		if len(call.TypeArguments) == 0 {
			return CallRewrite{}, nil
		}
		payload, err := payloadOf(w, call.TypeArguments[0])
		if err != nil {
			return CallRewrite{}, err
		}
		cr := CallRewrite{Kind: AutoTypeHelperInject, Payload: payload}
		if len(call.Arguments) == 0 {
			cr.PrependEmptyArray = true
			cr.ArgumentIndex = 1
		} else {
			cr.ArgumentIndex = len(call.Arguments)
		}
		return cr, nil
	}

	fn, ok := call.Resolved.(*hosttype.FunctionLike)
	if !ok {
		return CallRewrite{}, nil
	}
	paramIdx, typeParamIdx, ok := receiveTypeParam(fn)
	if !ok || typeParamIdx >= len(call.TypeArguments) {
		return CallRewrite{}, nil
	}
	payload, err := payloadOf(w, call.TypeArguments[typeParamIdx])
	if err != nil {
		return CallRewrite{}, err
	}
	cr := CallRewrite{Kind: ReceiveTypeInject, ArgumentIndex: paramIdx, Payload: payload}
	if paramIdx > len(call.Arguments) {
		cr.PadUndefinedCount = paramIdx - len(call.Arguments)
	}
	return cr, nil
}

func lastPart(name hosttype.QualifiedName) string {
	if len(name.Parts) == 0 {
		return ""
	}
	return name.Parts[len(name.Parts)-1]
}

// receiveTypeParam finds fn's first parameter typed `ReceiveType<X>`
// where X names one of fn's own type parameters.
func receiveTypeParam(fn *hosttype.FunctionLike) (paramIdx, typeParamIdx int, ok bool) {
	for pi, p := range fn.Parameters {
		ref, isRef := p.Type.(*hosttype.TypeReferenceType)
		if !isRef || ref.Name.String() != "ReceiveType" || len(ref.TypeArguments) != 1 {
			continue
		}
		argRef, isArgRef := ref.TypeArguments[0].(*hosttype.TypeReferenceType)
		if !isArgRef {
			continue
		}
		for ti, tp := range fn.TypeParameters {
			if tp.Name == argRef.Name.String() {
				return pi, ti, true
			}
		}
	}
	return 0, 0, false
}

// payloadOf walks t in a fresh program, independent of whatever program
// the surrounding carrier is using (spec §3 "Lifecycle" — a program is
// never reused across carriers, and a type argument injected into a
// call site is its own carrier in this sense).
func payloadOf(w *walk.Walker, t hosttype.Type) (any, error) {
	p := program.New()
	hw := walk.New(p, w.Resolver, w.Module)
	hw.LocalHoistQueue = w.LocalHoistQueue
	hw.ForeignHoistQueue = w.ForeignHoistQueue
	hw.EmitType(t)
	return finalize(hw)
}
