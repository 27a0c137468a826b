// Package rewrite implements the Tree Rewriter of spec §4.7: it drives a
// walk.Walker over one carrier's declaration, finalizes the resulting
// program into a payload, and describes the edit a real host compiler
// would splice into its tree. hosttype models no statement list or
// parent-pointer tree to mutate in place (§1 "out of scope"), so this
// package produces Attachment values instead of mutating anything —
// the same data a host-specific printer would consume to actually emit
// the `__type` member, the trailing assignment, or the hoisted binding.
package rewrite

import (
	"fmt"

	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/pack"
	"github.com/timvandam/deepkit-framework/pkg/walk"
)

// AttachmentKind identifies which of the Carrier contract's observable
// shapes (§6) an Attachment describes.
type AttachmentKind int

const (
	// ClassStaticMember is "every non-never-mode class gains a static
	// member __type".
	ClassStaticMember AttachmentKind = iota
	// FunctionAssignment is "every non-never-mode function declaration
	// gains a property assignment Fn.__type = ... immediately following
	// it".
	FunctionAssignment
	// FunctionExpressionWrap is "every non-never-mode function
	// expression / arrow is replaced by Object.assign(fn, {__type: ...})".
	FunctionExpressionWrap
	// HoistBinding is "every processed type alias/interface gains a
	// sibling const __Ω<Name> = ...; statement".
	HoistBinding
)

// Attachment is one carrier's resulting edit: what to attach, under
// what name, carrying what payload (the value pack.Pack produced).
type Attachment struct {
	Kind    AttachmentKind
	Name    string
	Payload any
}

// finalize turns a Walker's accumulated program into a payload (spec
// §4.2, §4.7 "finalize it, produce the payload expression").
func finalize(w *walk.Walker) (any, error) {
	s, err := w.Program.BuildPackStruct()
	if err != nil {
		return nil, fmt.Errorf("rewrite: %w", err)
	}
	return pack.Pack(s)
}

// ClassAttachment builds the `__type` static member attachment for a
// class declaration or expression (§4.7 bullet 1).
func ClassAttachment(w *walk.Walker, d *hosttype.ClassDeclaration) (Attachment, error) {
	w.EmitClassDeclaration(d)
	payload, err := finalize(w)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{Kind: ClassStaticMember, Name: "__type", Payload: payload}, nil
}

// FunctionDeclAttachment builds the `Name.__type = payload` assignment
// attachment for a function declaration (§4.7 bullet 2).
func FunctionDeclAttachment(w *walk.Walker, d *hosttype.FunctionLike) (Attachment, error) {
	w.EmitFunctionLikeDeclaration(d)
	payload, err := finalize(w)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{Kind: FunctionAssignment, Name: hosttype.DeclName(d), Payload: payload}, nil
}

// FunctionExpressionAttachment builds the Object.assign wrap attachment
// for a function expression or arrow (§4.7 bullet 3). Unlike the
// declaration case there is no name to assign onto — the wrap replaces
// the expression itself — so Name is left empty.
func FunctionExpressionAttachment(w *walk.Walker, d *hosttype.FunctionLike) (Attachment, error) {
	w.EmitFunctionLikeDeclaration(d)
	payload, err := finalize(w)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{Kind: FunctionExpressionWrap, Payload: payload}, nil
}

// AttachmentFor dispatches a FunctionLike to the declaration or
// expression/arrow attachment shape by its Kind, the distinction §4.7
// draws between bullets 2 and 3.
func AttachmentFor(w *walk.Walker, d *hosttype.FunctionLike) (Attachment, error) {
	if d.Kind == hosttype.FunctionDeclarationKind {
		return FunctionDeclAttachment(w, d)
	}
	return FunctionExpressionAttachment(w, d)
}
