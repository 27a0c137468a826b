package pack

import (
	"reflect"
	"testing"

	"github.com/timvandam/deepkit-framework/pkg/op"
)

func TestRoundTripNoStack(t *testing.T) {
	s := &Struct{Ops: []int{int(op.String)}}
	payload, err := Pack(s)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	str, ok := payload.(string)
	if !ok {
		t.Fatalf("payload type = %T, want string", payload)
	}
	if len(str) != 1 {
		t.Fatalf("payload length = %d, want 1", len(str))
	}

	got, err := Unpack(payload)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !reflect.DeepEqual(got.Ops, s.Ops) {
		t.Errorf("Ops = %v, want %v", got.Ops, s.Ops)
	}
	if len(got.Stack) != 0 {
		t.Errorf("Stack = %v, want empty", got.Stack)
	}
}

func TestRoundTripWithStack(t *testing.T) {
	// Compiles to: frame, string, number, union (example from spec §8 scenario 2).
	s := &Struct{
		Ops:   []int{int(op.Frame), int(op.String), int(op.Number), int(op.Union)},
		Stack: []StackEntry{{Kind: KindName, Value: "P"}},
	}
	payload, err := Pack(s)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	arr, ok := payload.([]any)
	if !ok {
		t.Fatalf("payload type = %T, want []any", payload)
	}
	if len(arr) != 2 {
		t.Fatalf("payload length = %d, want 2", len(arr))
	}

	got, err := Unpack(payload)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !reflect.DeepEqual(got.Ops, s.Ops) {
		t.Errorf("Ops = %v, want %v", got.Ops, s.Ops)
	}
	if len(got.Stack) != 1 || got.Stack[0].Value != "P" {
		t.Errorf("Stack = %v, want [{P}]", got.Stack)
	}
}

func TestWireEncodingIsPrintableASCII(t *testing.T) {
	s := &Struct{Ops: []int{int(op.Literal), 0}, Stack: []StackEntry{{Kind: KindName, Value: "x"}}}
	payload, err := Pack(s)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	arr := payload.([]any)
	str := arr[len(arr)-1].(string)
	for _, c := range []byte(str) {
		if c < 33 || c > 126 {
			t.Errorf("encoded byte %d is not printable ASCII", c)
		}
	}
}

func TestValidateRejectsMissingOperand(t *testing.T) {
	s := &Struct{Ops: []int{int(op.Literal)}} // literal has arity 1, no operand supplied
	if _, err := Pack(s); err == nil {
		t.Error("expected error for opcode missing its operand")
	}
}

func TestValidateRejectsOutOfRangeStackIndex(t *testing.T) {
	s := &Struct{Ops: []int{int(op.Literal), 5}} // stack index 5 but stack is empty
	if _, err := Pack(s); err == nil {
		t.Error("expected error for out-of-range stack index")
	}
}

func TestValidateRejectsCeilingOverflow(t *testing.T) {
	s := &Struct{Ops: []int{op.Ceiling}}
	if _, err := Pack(s); err == nil {
		t.Error("expected error for opcode value at/above ceiling")
	}
}

func TestUnpackRejectsMalformedArrayPayload(t *testing.T) {
	if _, err := Unpack([]any{1, 2}); err == nil {
		t.Error("expected error: last element of array payload must be the encoded string")
	}
	if _, err := Unpack([]any{}); err == nil {
		t.Error("expected error for empty array payload")
	}
}
