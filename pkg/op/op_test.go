package op

import "testing"

func TestCeilingNotExceeded(t *testing.T) {
	if numCodes > Ceiling {
		t.Fatalf("numCodes=%d exceeds Ceiling=%d", numCodes, Ceiling)
	}
}

func TestEveryCodeHasMetadata(t *testing.T) {
	for c := Code(1); c < numCodes; c++ {
		info := GetInfo(c)
		if info.Name == "" {
			t.Errorf("opcode %d has no registered name", int(c))
		}
		if info.OperandCount < 0 || info.OperandCount > 2 {
			t.Errorf("opcode %s has unexpected operand count %d", info.Name, info.OperandCount)
		}
	}
}

func TestKnownArities(t *testing.T) {
	tests := []struct {
		c    Code
		want int
	}{
		{Never, 0},
		{Union, 0},
		{Literal, 1},
		{Property, 1},
		{Method, 1},
		{NumberBrand, 1},
		{Call, 1},
		{MappedType, 2},
		{InlineCall, 2},
		{Loads, 2},
		{Infer, 2},
	}
	for _, tt := range tests {
		if got := OperandCount(tt.c); got != tt.want {
			t.Errorf("OperandCount(%s) = %d, want %d", Name(tt.c), got, tt.want)
		}
	}
}

func TestStringUnknown(t *testing.T) {
	c := Code(numCodes + 5)
	if got := c.String(); got == "" {
		t.Errorf("String() for unknown opcode returned empty string")
	}
}

func TestStringKnown(t *testing.T) {
	if got := Union.String(); got != "union" {
		t.Errorf("Union.String() = %q, want %q", got, "union")
	}
}
