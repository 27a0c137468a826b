// Package cuedebug renders a compiled pack back out as readable CUE
// source for developer-facing diagnostics: unions become CUE
// disjunctions, object and class member lists become CUE structs,
// arrays become CUE list types. It is a best-effort debug view, not an
// alternative runtime: the opcodes that drive generics, conditional
// types, and mapped-type coroutines (template, loads, infer, mappedType,
// jump, call, ...) have no static CUE shape, so they render as the CUE
// top type `_` annotated with the opcode name rather than being
// interpreted. Decoding the full algebra is the bytecode VM's job, and
// that VM is deliberately out of scope here, same as pkg/descriptor's
// refusal to decode the program it exports from.
package cuedebug

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/token"

	"github.com/timvandam/deepkit-framework/pkg/op"
	"github.com/timvandam/deepkit-framework/pkg/pack"
)

// Render decodes payload (the output of pack.Pack) and formats it as
// CUE source text.
func Render(payload any) (string, error) {
	s, err := pack.Unpack(payload)
	if err != nil {
		return "", fmt.Errorf("cuedebug: %w", err)
	}
	return RenderStruct(s)
}

// RenderStruct renders an already-unpacked pack.Struct.
func RenderStruct(s *pack.Struct) (string, error) {
	d := &decoder{ops: s.Ops, stack: s.Stack}
	if err := d.run(); err != nil {
		return "", err
	}
	root, ok := d.pop()
	if !ok {
		return "", fmt.Errorf("cuedebug: empty program produced no expression")
	}
	return root.text()
}

// frameMarker sits on the value stack at a Frame opcode, bounding the
// variable-arity combinators (union, intersection, objectLiteral,
// class) that pop everything pushed since the marker (spec §3 "Frame").
type frameMarker struct{}

// value is one decoded value. A member (isMember) carries its field
// name and optionality separately from its rendered type text, since
// Optional/Readonly/... modifiers mutate it after Property/
// PropertySignature pushes it.
type value struct {
	expr     string
	isMember bool
	name     string
	optional bool
}

func (v value) text() (string, error) {
	if !v.isMember {
		return v.expr, nil
	}
	suffix := ""
	if v.optional {
		suffix = "?"
	}
	return fmt.Sprintf("%s%s: %s", v.name, suffix, v.expr), nil
}

type decoder struct {
	ops   []int
	stack []pack.StackEntry
	vals  []any
}

func (d *decoder) push(v any) { d.vals = append(d.vals, v) }

func (d *decoder) pop() (value, bool) {
	for len(d.vals) > 0 {
		top := d.vals[len(d.vals)-1]
		d.vals = d.vals[:len(d.vals)-1]
		if v, ok := top.(value); ok {
			return v, true
		}
	}
	return value{}, false
}

// popSinceMarker pops every value pushed since the most recent
// frameMarker (and the marker itself), or the whole stack when no
// marker is present — the top-level "program nonempty" suppression
// case documented against pkg/walk's emitUnion/emitClass.
func (d *decoder) popSinceMarker() []value {
	markerAt := -1
	for i := len(d.vals) - 1; i >= 0; i-- {
		if _, ok := d.vals[i].(frameMarker); ok {
			markerAt = i
			break
		}
	}
	start := markerAt + 1
	out := make([]value, 0, len(d.vals)-start)
	for _, v := range d.vals[start:] {
		if vv, ok := v.(value); ok {
			out = append(out, vv)
		}
	}
	if markerAt >= 0 {
		d.vals = d.vals[:markerAt]
	} else {
		d.vals = d.vals[:0]
	}
	return out
}

func (d *decoder) stackText(idx int) string {
	if idx < 0 || idx >= len(d.stack) {
		return "_"
	}
	return fmt.Sprint(d.stack[idx].Value)
}

func (d *decoder) run() error {
	for i := 0; i < len(d.ops); {
		code := op.Code(d.ops[i])
		arity := op.OperandCount(code)
		operands := d.ops[i+1 : min(len(d.ops), i+1+arity)]
		if err := d.step(code, operands); err != nil {
			return err
		}
		i += 1 + arity
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var primitiveKeyword = map[op.Code]string{
	op.Never: "_|_", op.Any: "_", op.Void: "null", op.String: "string",
	op.Number: "number", op.Boolean: "bool", op.BigInt: "int",
	op.Null: "null", op.Undefined: "null", op.NumberBrand: "number",
	op.Date: "string", op.Promise: "_", op.ArrayBuffer: "bytes",
	op.Int8Array: "[...int]", op.Uint8Array: "[...int]",
	op.Uint8ClampedArray: "[...int]", op.Int16Array: "[...int]",
	op.Uint16Array: "[...int]", op.Int32Array: "[...int]",
	op.Uint32Array: "[...int]", op.Float32Array: "[...number]",
	op.Float64Array: "[...number]", op.BigInt64Array: "[...int]",
	op.BigUint64Array: "[...int]",
}

func (d *decoder) step(code op.Code, operands []int) error {
	switch code {
	case op.Frame:
		d.push(frameMarker{})
		return nil

	case op.Literal:
		text, err := formatLiteral(d.stack, operandOrZero(operands, 0))
		if err != nil {
			return err
		}
		d.push(value{expr: text})
		return nil

	case op.Array:
		elem, _ := d.pop()
		d.push(value{expr: fmt.Sprintf("[...%s]", elem.expr)})
		return nil

	case op.Union:
		members := d.popSinceMarker()
		d.push(value{expr: joinAlgebra(members, " | ")})
		return nil

	case op.Intersection:
		members := d.popSinceMarker()
		d.push(value{expr: joinAlgebra(members, " & ")})
		return nil

	case op.Property, op.PropertySignature:
		t, _ := d.pop()
		name := d.stackText(operandOrZero(operands, 0))
		d.push(value{isMember: true, name: name, expr: t.expr})
		return nil

	case op.Optional:
		top, ok := d.pop()
		if !ok {
			return nil
		}
		top.optional = true
		d.push(top)
		return nil

	case op.Readonly, op.Public, op.Private, op.Protected, op.Abstract:
		top, ok := d.pop()
		if !ok {
			return nil
		}
		d.push(top)
		return nil

	case op.DefaultValue:
		top, ok := d.pop()
		if ok {
			d.push(top)
		}
		return nil

	case op.Description:
		top, ok := d.pop()
		if ok {
			d.push(top)
		}
		return nil

	case op.ObjectLiteral, op.Class:
		members := d.popSinceMarker()
		d.push(value{expr: renderStruct(members)})
		return nil

	case op.ClassReference:
		d.push(value{expr: identOrText(d.stackText(operandOrZero(operands, 0)))})
		return nil

	case op.Enum:
		d.push(value{expr: identOrText(d.stackText(operandOrZero(operands, 0)))})
		return nil

	default:
		if kw, ok := primitiveKeyword[code]; ok {
			d.push(value{expr: kw})
			return nil
		}
		d.push(value{expr: fmt.Sprintf("_ /* %s */", code)})
		return nil
	}
}

func operandOrZero(operands []int, i int) int {
	if i < len(operands) {
		return operands[i]
	}
	return 0
}

func joinAlgebra(members []value, sep string) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, m.expr)
	}
	if len(parts) == 0 {
		return "_"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func renderStruct(members []value) string {
	if len(members) == 0 {
		return "{}"
	}
	lines := make([]string, 0, len(members))
	for _, m := range members {
		text, err := m.text()
		if err != nil {
			text = "_"
		}
		lines = append(lines, "\t"+text)
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

// identOrText formats a bare name as a CUE identifier when it looks
// like one, falling back to a quoted label for anything else (hoisted
// binding names carry the __Ω mangling prefix, which is not a valid
// bare CUE identifier start).
func identOrText(name string) string {
	id := ast.NewIdent(name)
	b, err := format.Node(id)
	if err != nil {
		return fmt.Sprintf("%q", name)
	}
	return string(b)
}

// formatLiteral renders one stack-backed literal value through the
// real cue/ast + cue/format path rather than ad hoc string formatting,
// so every leaf value in the render is genuine CUE source text.
func formatLiteral(stack []pack.StackEntry, idx int) (string, error) {
	if idx < 0 || idx >= len(stack) {
		return "_", nil
	}
	var n ast.Expr
	switch v := stack[idx].Value.(type) {
	case string:
		n = ast.NewString(v)
	case bool:
		n = ast.NewBool(v)
	case float64:
		n = &ast.BasicLit{Kind: token.FLOAT, Value: fmt.Sprintf("%v", v)}
	case int:
		n = &ast.BasicLit{Kind: token.INT, Value: fmt.Sprintf("%d", v)}
	case nil:
		n = ast.NewIdent("null")
	default:
		n = ast.NewString(fmt.Sprint(v))
	}
	b, err := format.Node(n)
	if err != nil {
		return "", fmt.Errorf("cuedebug: format literal: %w", err)
	}
	return string(b), nil
}
