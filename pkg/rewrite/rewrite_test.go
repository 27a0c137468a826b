package rewrite

import (
	"testing"

	"github.com/timvandam/deepkit-framework/pkg/config"
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/op"
	"github.com/timvandam/deepkit-framework/pkg/pack"
	"github.com/timvandam/deepkit-framework/pkg/program"
	"github.com/timvandam/deepkit-framework/pkg/resolve"
	"github.com/timvandam/deepkit-framework/pkg/walk"
)

func newWalker() (*walk.Walker, *program.Program) {
	p := program.New()
	r := resolve.New(hosttype.NewMapChecker(), hosttype.MapGraph{})
	mod := hosttype.NewModule("a.ts")
	return walk.New(p, r, mod), p
}

func tref(name string) *hosttype.TypeReferenceType {
	return &hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{name}}}
}

func unpackOps(t *testing.T, payload any) []int {
	t.Helper()
	s, err := pack.Unpack(payload)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	return s.Ops
}

// TestClassAttachmentProducesTypeMember covers §4.7 bullet 1 and §6's
// "every non-never-mode class gains a static member __type".
func TestClassAttachmentProducesTypeMember(t *testing.T) {
	w, _ := newWalker()
	decl := &hosttype.ClassDeclaration{}
	decl.Name = "Box"
	v := &hosttype.PropertyMember{}
	v.Name = "v"
	v.Type = &hosttype.PrimitiveType{Kind: hosttype.PrimitiveString}
	decl.Members = []hosttype.Member{v}

	att, err := ClassAttachment(w, decl)
	if err != nil {
		t.Fatalf("ClassAttachment: %v", err)
	}
	if att.Kind != ClassStaticMember {
		t.Fatalf("Kind = %v, want ClassStaticMember", att.Kind)
	}
	if att.Name != "__type" {
		t.Fatalf("Name = %q, want __type", att.Name)
	}
	ops := unpackOps(t, att.Payload)
	want := []int{int(op.String), int(op.Property), 0, int(op.Class)}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}
}

// TestAttachmentForDistinguishesDeclarationFromExpression covers §4.7's
// bullets 2 and 3.
func TestAttachmentForDistinguishesDeclarationFromExpression(t *testing.T) {
	decl := &hosttype.FunctionLike{Kind: hosttype.FunctionDeclarationKind, ReturnType: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveVoid}}
	decl.Name = "run"
	w, _ := newWalker()
	att, err := AttachmentFor(w, decl)
	if err != nil {
		t.Fatalf("AttachmentFor: %v", err)
	}
	if att.Kind != FunctionAssignment || att.Name != "run" {
		t.Fatalf("got %+v, want FunctionAssignment named run", att)
	}

	arrow := &hosttype.FunctionLike{Kind: hosttype.ArrowFunctionKind, ReturnType: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveVoid}}
	w2, _ := newWalker()
	att2, err := AttachmentFor(w2, arrow)
	if err != nil {
		t.Fatalf("AttachmentFor: %v", err)
	}
	if att2.Kind != FunctionExpressionWrap {
		t.Fatalf("got %+v, want FunctionExpressionWrap", att2)
	}
}

// TestMaybeClassAttachmentSkipsOnNeverMode covers §4.8's "in never mode
// the walker returns immediately, emitting no payload".
func TestMaybeClassAttachmentSkipsOnNeverMode(t *testing.T) {
	w, _ := newWalker()
	decl := &hosttype.ClassDeclaration{}
	decl.Name = "Box"
	probe := config.NewProbe()
	att, err := MaybeClassAttachment(probe, nil, t.TempDir(), w, decl)
	if err != nil {
		t.Fatalf("MaybeClassAttachment: %v", err)
	}
	if att != nil {
		t.Fatalf("got %+v, want nil (never mode)", att)
	}
}

// TestMaybeClassAttachmentRunsOnAlwaysTag covers the doc-tag override
// path through the same gate.
func TestMaybeClassAttachmentRunsOnAlwaysTag(t *testing.T) {
	w, _ := newWalker()
	decl := &hosttype.ClassDeclaration{}
	decl.Name = "Box"
	probe := config.NewProbe()
	att, err := MaybeClassAttachment(probe, []string{"@reflection always"}, t.TempDir(), w, decl)
	if err != nil {
		t.Fatalf("MaybeClassAttachment: %v", err)
	}
	if att == nil {
		t.Fatalf("got nil, want an attachment")
	}
}

// TestMangleJoinsQualifiedNameLeftToRight covers §4.7's "__Ω +
// left-to-right underscore join".
func TestMangleJoinsQualifiedNameLeftToRight(t *testing.T) {
	got := Mangle([]string{"NS", "Foo"})
	want := "__Ω" + "NS_Foo"
	if got != want {
		t.Fatalf("Mangle = %q, want %q", got, want)
	}
}

// TestDrainHoistQueuesProducesBindingPerAlias reproduces a type
// reference to a local alias, then drains the resulting queue.
func TestDrainHoistQueuesProducesBindingPerAlias(t *testing.T) {
	w, _ := newWalker()
	alias := &hosttype.TypeAliasDeclaration{Body: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber}}
	alias.Name = "Id"
	sym := hosttype.NewSymbol("Id", alias)
	ref := &hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{"Id"}}, Symbol: sym}

	w.EmitType(ref)
	if len(w.LocalHoistQueue) != 1 {
		t.Fatalf("LocalHoistQueue len = %d, want 1", len(w.LocalHoistQueue))
	}

	atts, err := DrainHoistQueues(w)
	if err != nil {
		t.Fatalf("DrainHoistQueues: %v", err)
	}
	if len(atts) != 1 {
		t.Fatalf("len(atts) = %d, want 1", len(atts))
	}
	if atts[0].Kind != HoistBinding {
		t.Fatalf("Kind = %v, want HoistBinding", atts[0].Kind)
	}
	if atts[0].Name != "__ΩId" {
		t.Fatalf("Name = %q, want __ΩId", atts[0].Name)
	}
	ops := unpackOps(t, atts[0].Payload)
	if len(ops) != 1 || ops[0] != int(op.Number) {
		t.Fatalf("ops = %v, want [number]", ops)
	}
}

// TestDrainHoistQueuesOrdersBatchDeterministically queues several
// aliases in the same drain round (via Go map iteration, which is
// randomized per process) and checks the resulting attachment order is
// stable regardless of the queue's internal map-iteration order, the
// same determinism guarantee cmd/reflect-transform relies on by
// sorting declaration names before walking them.
func TestDrainHoistQueuesOrdersBatchDeterministically(t *testing.T) {
	names := []string{"Zeta", "Alpha", "Mu", "Beta"}
	w, _ := newWalker()
	for _, n := range names {
		alias := &hosttype.TypeAliasDeclaration{Body: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber}}
		alias.Name = n
		sym := hosttype.NewSymbol(n, alias)
		ref := &hosttype.TypeReferenceType{Name: hosttype.QualifiedName{Parts: []string{n}}, Symbol: sym}
		w.EmitType(ref)
	}

	atts, err := DrainHoistQueues(w)
	if err != nil {
		t.Fatalf("DrainHoistQueues: %v", err)
	}
	if len(atts) != len(names) {
		t.Fatalf("len(atts) = %d, want %d", len(atts), len(names))
	}
	for i := 1; i < len(atts); i++ {
		if atts[i-1].Name >= atts[i].Name {
			t.Fatalf("atts not sorted by Name: %q then %q", atts[i-1].Name, atts[i].Name)
		}
	}
}

// TestDrainHoistQueuesIsIdempotentOnceEmpty covers the fixpoint loop
// terminating when nothing further gets enqueued.
func TestDrainHoistQueuesIsIdempotentOnceEmpty(t *testing.T) {
	w, _ := newWalker()
	atts, err := DrainHoistQueues(w)
	if err != nil {
		t.Fatalf("DrainHoistQueues: %v", err)
	}
	if len(atts) != 0 {
		t.Fatalf("len(atts) = %d, want 0", len(atts))
	}
}

// TestRewriteCallInjectsAutoTypeHelperArgument covers §4.7's `typeOf`
// rewrite: no existing arguments means a synthetic empty array is
// prepended and the payload becomes the second argument.
func TestRewriteCallInjectsAutoTypeHelperArgument(t *testing.T) {
	w, _ := newWalker()
	call := &hosttype.CallExpression{
		Callee:        hosttype.QualifiedName{Parts: []string{"typeOf"}},
		TypeArguments: []hosttype.Type{tref("Box")},
	}
	cr, err := RewriteCall(w, call)
	if err != nil {
		t.Fatalf("RewriteCall: %v", err)
	}
	if cr.Kind != AutoTypeHelperInject {
		t.Fatalf("Kind = %v, want AutoTypeHelperInject", cr.Kind)
	}
	if !cr.PrependEmptyArray {
		t.Fatalf("PrependEmptyArray = false, want true for a zero-argument call")
	}
	if cr.ArgumentIndex != 1 {
		t.Fatalf("ArgumentIndex = %d, want 1", cr.ArgumentIndex)
	}
}

// TestRewriteCallSkipsAutoTypeHelperWithoutTypeArguments covers the
// guard: no explicit type arguments means nothing to rewrite.
func TestRewriteCallSkipsAutoTypeHelperWithoutTypeArguments(t *testing.T) {
	w, _ := newWalker()
	call := &hosttype.CallExpression{Callee: hosttype.QualifiedName{Parts: []string{"typeOf"}}}
	cr, err := RewriteCall(w, call)
	if err != nil {
		t.Fatalf("RewriteCall: %v", err)
	}
	if cr.Kind != NoCallRewrite {
		t.Fatalf("Kind = %v, want NoCallRewrite", cr.Kind)
	}
}

// TestRewriteCallInjectsReceiveTypeParameter covers §4.7's generic
// `ReceiveType<X>` rewrite, padding missing arguments with undefined.
func TestRewriteCallInjectsReceiveTypeParameter(t *testing.T) {
	fn := &hosttype.FunctionLike{
		TypeParameters: []hosttype.TypeParameter{{Name: "T"}},
		Parameters: []hosttype.Parameter{
			{Name: "x", Type: &hosttype.PrimitiveType{Kind: hosttype.PrimitiveString}},
			{Name: "type", Type: &hosttype.TypeReferenceType{
				Name:          hosttype.QualifiedName{Parts: []string{"ReceiveType"}},
				TypeArguments: []hosttype.Type{tref("T")},
			}},
		},
	}
	fn.Name = "make"

	w, _ := newWalker()
	call := &hosttype.CallExpression{
		Callee:        hosttype.QualifiedName{Parts: []string{"make"}},
		TypeArguments: []hosttype.Type{&hosttype.PrimitiveType{Kind: hosttype.PrimitiveBoolean}},
		Arguments:     []*hosttype.Argument{{}},
		Resolved:      fn,
	}
	cr, err := RewriteCall(w, call)
	if err != nil {
		t.Fatalf("RewriteCall: %v", err)
	}
	if cr.Kind != ReceiveTypeInject {
		t.Fatalf("Kind = %v, want ReceiveTypeInject", cr.Kind)
	}
	if cr.ArgumentIndex != 1 {
		t.Fatalf("ArgumentIndex = %d, want 1", cr.ArgumentIndex)
	}
	if cr.PadUndefinedCount != 0 {
		t.Fatalf("PadUndefinedCount = %d, want 0 (argument already present)", cr.PadUndefinedCount)
	}
	ops := unpackOps(t, cr.Payload)
	if len(ops) != 1 || ops[0] != int(op.Boolean) {
		t.Fatalf("ops = %v, want [boolean]", ops)
	}
}

// TestRewriteCallNoPaddingWhenReceiveTypeIsFirstParameter covers the
// padding rule when the call omits the ReceiveType-typed argument
// entirely and that parameter is the first one: index 0 is already
// reachable, so no undefined padding is needed.
func TestRewriteCallNoPaddingWhenReceiveTypeIsFirstParameter(t *testing.T) {
	fn := &hosttype.FunctionLike{
		TypeParameters: []hosttype.TypeParameter{{Name: "T"}},
		Parameters: []hosttype.Parameter{
			{Name: "type", Type: &hosttype.TypeReferenceType{
				Name:          hosttype.QualifiedName{Parts: []string{"ReceiveType"}},
				TypeArguments: []hosttype.Type{tref("T")},
			}},
		},
	}
	fn.Name = "make"

	w, _ := newWalker()
	call := &hosttype.CallExpression{
		Callee:        hosttype.QualifiedName{Parts: []string{"make"}},
		TypeArguments: []hosttype.Type{&hosttype.PrimitiveType{Kind: hosttype.PrimitiveNumber}},
		Resolved:      fn,
	}
	cr, err := RewriteCall(w, call)
	if err != nil {
		t.Fatalf("RewriteCall: %v", err)
	}
	if cr.ArgumentIndex != 0 {
		t.Fatalf("ArgumentIndex = %d, want 0", cr.ArgumentIndex)
	}
	if cr.PadUndefinedCount != 0 {
		t.Fatalf("PadUndefinedCount = %d, want 0 when the target index is already reachable", cr.PadUndefinedCount)
	}
}

// TestRewriteCallIgnoresUnrelatedCalls covers the no-op path: a call to
// a plain, non-generic function with no ReceiveType parameter.
func TestRewriteCallIgnoresUnrelatedCalls(t *testing.T) {
	fn := &hosttype.FunctionLike{}
	fn.Name = "plain"
	w, _ := newWalker()
	call := &hosttype.CallExpression{Callee: hosttype.QualifiedName{Parts: []string{"plain"}}, Resolved: fn}
	cr, err := RewriteCall(w, call)
	if err != nil {
		t.Fatalf("RewriteCall: %v", err)
	}
	if cr.Kind != NoCallRewrite {
		t.Fatalf("Kind = %v, want NoCallRewrite", cr.Kind)
	}
}
