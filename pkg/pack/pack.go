// Package pack implements the Pack structure (spec §3, §4.2): an opcode
// sequence paired with a side stack of values that cannot be represented
// as inline integer operands, plus the printable-ASCII wire encoding the
// runtime later decodes.
package pack

import (
	"fmt"

	"github.com/timvandam/deepkit-framework/pkg/op"
)

// offset is the printable-ASCII base the wire encoding adds to every
// opcode/operand value (spec §4.1): code = value + 33.
const offset = 33

// StackEntryKind tags the shape of a compile-time stack entry (spec §3).
type StackEntryKind int

const (
	// KindLiteralNode wraps a literal AST node (string/number/bool) that
	// the host tree still owns; the pack only records a reference to it.
	KindLiteralNode StackEntryKind = iota
	// KindThunk wraps a zero-argument accessor thunk over an identifier
	// or qualified name (e.g. `() => SomeClass`).
	KindThunk
	// KindName is a plain string or number used as a symbolic name, such
	// as a hoisted binding's identifier.
	KindName
)

// StackEntry is one compile-time value that couldn't fit in an inline
// operand. Value holds the underlying literal/thunk/name payload; its
// concrete Go type is opaque to this package and is round-tripped as-is.
type StackEntry struct {
	Kind  StackEntryKind
	Value any
}

// Struct is the Pack structure of spec §3: an opcode/operand byte
// sequence plus its side stack. Ops holds opcodes and their inline
// operands interleaved, exactly as they will be encoded.
type Struct struct {
	Ops   []int
	Stack []StackEntry
}

// New returns an empty pack structure.
func New() *Struct {
	return &Struct{}
}

// Validate checks the packable-range and operand-count invariants of
// spec §8 invariants 2 and 3: every opcode value and every operand value
// must stay under op.Ceiling, and every opcode must be followed by
// exactly its declared arity of operands.
func (s *Struct) Validate() error {
	for i := 0; i < len(s.Ops); {
		v := s.Ops[i]
		if v < 0 || v >= op.Ceiling {
			return fmt.Errorf("pack: value %d at offset %d exceeds ceiling %d", v, i, op.Ceiling)
		}
		arity := op.OperandCount(op.Code(v))
		for j := 1; j <= arity; j++ {
			if i+j >= len(s.Ops) {
				return fmt.Errorf("pack: opcode %s at offset %d is missing operand %d", op.Code(v), i, j)
			}
			operand := s.Ops[i+j]
			if operand < 0 || operand >= op.Ceiling {
				return fmt.Errorf("pack: operand %d of opcode %s at offset %d exceeds ceiling %d", j, op.Code(v), i, op.Ceiling)
			}
		}
		for _, j := range stackOperandPositions(op.Code(v)) {
			if j >= arity {
				continue
			}
			idx := s.Ops[i+1+j]
			if idx < 0 || idx >= len(s.Stack) {
				return fmt.Errorf("pack: opcode %s at offset %d references stack index %d out of range [0,%d)", op.Code(v), i, idx, len(s.Stack))
			}
		}
		i += 1 + arity
	}
	return nil
}

// stackOperandPositions returns, for an opcode, which of its operand
// slots (0-based, after the opcode itself) index into the side stack
// rather than carrying a plain integer (a jump target, a frame offset,
// a modifier bitset, ...). This mirrors the operand semantics implied by
// spec §4.1/§4.5/§4.6 — only the opcodes below ever reference Stack.
func stackOperandPositions(c op.Code) []int {
	switch c {
	case op.Literal, op.ClassReference, op.Enum, op.Template,
		op.PropertySignature, op.Property, op.Method, op.MethodSignature,
		op.Function, op.Description, op.DefaultValue, op.Parameter:
		return []int{0}
	case op.Inline:
		return []int{0}
	case op.InlineCall:
		return []int{0}
	default:
		return nil
	}
}

// Pack encodes a Struct into its wire payload (spec §4.1, §4.2). If the
// struct carries no stack entries, the payload is the bare encoded
// string; otherwise it is an ordered slice whose last element is that
// string and whose preceding elements are the stack entries in order.
func Pack(s *Struct) (any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	encoded := make([]byte, len(s.Ops))
	for i, v := range s.Ops {
		encoded[i] = byte(v + offset)
	}
	str := string(encoded)
	if len(s.Stack) == 0 {
		return str, nil
	}
	payload := make([]any, 0, len(s.Stack)+1)
	for _, e := range s.Stack {
		payload = append(payload, e.Value)
	}
	payload = append(payload, str)
	return payload, nil
}

// Unpack decodes a payload produced by Pack back into a Struct. Stack
// entry identity for non-name kinds cannot be recovered from the wire
// form alone (the Kind tag is not serialized, per spec §4.1), so Unpack
// always reports stack entries as KindName; callers that need the
// richer Kind should retain the original Struct instead of round
// tripping it, per the invariant of spec §8 item 1 ("modulo stack entry
// identity").
func Unpack(payload any) (*Struct, error) {
	switch v := payload.(type) {
	case string:
		ops, err := decode(v)
		if err != nil {
			return nil, err
		}
		s := &Struct{Ops: ops}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("pack: empty array payload")
		}
		str, ok := v[len(v)-1].(string)
		if !ok {
			return nil, fmt.Errorf("pack: last payload element is not an encoded string")
		}
		ops, err := decode(str)
		if err != nil {
			return nil, err
		}
		s := &Struct{Ops: ops}
		for _, e := range v[:len(v)-1] {
			s.Stack = append(s.Stack, StackEntry{Kind: KindName, Value: e})
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("pack: unsupported payload type %T", payload)
	}
}

func decode(s string) ([]int, error) {
	ops := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		v := int(s[i]) - offset
		if v < 0 {
			return nil, fmt.Errorf("pack: byte at offset %d decodes to negative value %d", i, v)
		}
		ops[i] = v
	}
	return ops, nil
}
