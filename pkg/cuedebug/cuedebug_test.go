package cuedebug

import (
	"strings"
	"testing"

	"github.com/timvandam/deepkit-framework/pkg/op"
	"github.com/timvandam/deepkit-framework/pkg/pack"
)

func ops(codes ...any) []int {
	out := make([]int, 0, len(codes))
	for _, c := range codes {
		switch v := c.(type) {
		case op.Code:
			out = append(out, int(v))
		case int:
			out = append(out, v)
		}
	}
	return out
}

func TestRenderPrimitive(t *testing.T) {
	s := &pack.Struct{Ops: ops(op.String)}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if got != "string" {
		t.Fatalf("got %q, want %q", got, "string")
	}
}

func TestRenderLiteralString(t *testing.T) {
	s := &pack.Struct{
		Ops:   ops(op.Literal, 0),
		Stack: []pack.StackEntry{{Kind: pack.KindLiteralNode, Value: "hello"}},
	}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if got != `"hello"` {
		t.Fatalf("got %q, want %q", got, `"hello"`)
	}
}

func TestRenderArray(t *testing.T) {
	s := &pack.Struct{Ops: ops(op.String, op.Array)}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if got != "[...string]" {
		t.Fatalf("got %q, want [...string]", got)
	}
}

func TestRenderTopLevelUnionSuppressesFrame(t *testing.T) {
	s := &pack.Struct{Ops: ops(op.String, op.Number, op.Union)}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if got != "(string | number)" {
		t.Fatalf("got %q, want (string | number)", got)
	}
}

func TestRenderObjectLiteralWithProperty(t *testing.T) {
	s := &pack.Struct{
		Ops:   ops(op.Frame, op.String, op.Property, 0, op.ObjectLiteral),
		Stack: []pack.StackEntry{{Kind: pack.KindName, Value: "x"}},
	}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if !strings.Contains(got, "x: string") {
		t.Fatalf("got %q, want member x: string", got)
	}
}

func TestRenderOptionalProperty(t *testing.T) {
	s := &pack.Struct{
		Ops:   ops(op.Frame, op.Number, op.Property, 0, op.Optional, op.ObjectLiteral),
		Stack: []pack.StackEntry{{Kind: pack.KindName, Value: "y"}},
	}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if !strings.Contains(got, "y?: number") {
		t.Fatalf("got %q, want member y?: number", got)
	}
}

func TestRenderUnknownOpcodeDegradesToPlaceholder(t *testing.T) {
	s := &pack.Struct{
		Ops:   ops(op.Template, 0),
		Stack: []pack.StackEntry{{Kind: pack.KindName, Value: "T"}},
	}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if !strings.Contains(got, "_") || !strings.Contains(got, "template") {
		t.Fatalf("got %q, want a placeholder naming template", got)
	}
}

func TestRenderClassReferenceUsesStackName(t *testing.T) {
	s := &pack.Struct{
		Ops:   ops(op.ClassReference, 0),
		Stack: []pack.StackEntry{{Kind: pack.KindName, Value: "Widget"}},
	}
	got, err := RenderStruct(s)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	if got != "Widget" {
		t.Fatalf("got %q, want Widget", got)
	}
}

func TestRenderThroughPackRoundTrip(t *testing.T) {
	s := &pack.Struct{Ops: ops(op.String, op.Number, op.Union)}
	payload, err := pack.Pack(s)
	if err != nil {
		t.Fatalf("pack.Pack: %v", err)
	}
	got, err := Render(payload)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "(string | number)" {
		t.Fatalf("got %q, want (string | number)", got)
	}
}
