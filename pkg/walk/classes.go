package walk

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
)

// knownClassOps maps an identifier naming the typed-array family,
// `ArrayBuffer`, or a primitive wrapper class to its dedicated,
// argument-free opcode (spec §4.6 step 1). `Date`, `Promise`, `Set`,
// and `Map` are handled separately in emitKnownClass: `Date` has its
// own opcode, and the other three also emit their type arguments.
var knownClassOps = map[string]op.Code{
	"Int8Array":         op.Int8Array,
	"Uint8Array":        op.Uint8Array,
	"Uint8ClampedArray": op.Uint8ClampedArray,
	"Int16Array":        op.Int16Array,
	"Uint16Array":       op.Uint16Array,
	"Int32Array":        op.Int32Array,
	"Uint32Array":       op.Uint32Array,
	"Float32Array":      op.Float32Array,
	"Float64Array":      op.Float64Array,
	"BigInt64Array":     op.BigInt64Array,
	"BigUint64Array":    op.BigUint64Array,
	"ArrayBuffer":       op.ArrayBuffer,
	"String":            op.String,
	"Number":            op.Number,
	"Boolean":           op.Boolean,
	"BigInt":            op.BigInt,
}

// numberBrands enumerates the numeric-brand identifiers (spec §4.6 step
// 2); a brand's index in this fixed list is its `numberBrand` operand.
// These names never resolve to a user declaration.
var numberBrands = []string{
	"integer", "int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float", "float32", "float64",
}

func numberBrandValue(name string) (int, bool) {
	for i, n := range numberBrands {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// emitKnownClass attempts §4.6 steps 1 and 2: known classes and numeric
// brands short-circuit before any declaration resolution is attempted,
// since neither ever carries a user declaration.
func (w *Walker) emitKnownClass(n *hosttype.TypeReferenceType) bool {
	name := n.Name.String()
	switch name {
	case "Date":
		w.Program.PushOpCode(op.Date)
		return true
	case "Promise":
		w.emitOneTypeArgOrAny(n.TypeArguments)
		w.Program.PushOpCode(op.Promise)
		return true
	case "Set":
		w.emitOneTypeArgOrAny(n.TypeArguments)
		w.Program.PushOpCode(op.Set)
		return true
	case "Map":
		if len(n.TypeArguments) > 0 {
			w.EmitType(n.TypeArguments[0])
		} else {
			w.Program.PushOpCode(op.Any)
		}
		if len(n.TypeArguments) > 1 {
			w.EmitType(n.TypeArguments[1])
		} else {
			w.Program.PushOpCode(op.Any)
		}
		w.Program.PushOpCode(op.Map)
		return true
	}
	if c, ok := knownClassOps[name]; ok {
		w.Program.PushOpCode(c)
		return true
	}
	if brand, ok := numberBrandValue(name); ok {
		w.Program.PushOp(int(op.NumberBrand), brand)
		return true
	}
	return false
}

func (w *Walker) emitOneTypeArgOrAny(args []hosttype.Type) {
	if len(args) > 0 {
		w.EmitType(args[0])
		return
	}
	w.Program.PushOpCode(op.Any)
}
