// Package program implements the Compiler Program of spec §3/§4.3: the
// mutable builder a single invocation of the type-to-bytecode walker
// uses to accumulate opcodes, side-stack entries, lexical frames, and
// mapped-type coroutines, and to finalize them into a pack.Struct.
//
// A Program is created per rewritten carrier, populated once, finalized
// once, and discarded — it is never reused across carriers (spec §3
// "Lifecycle").
package program

import (
	"fmt"

	"github.com/timvandam/deepkit-framework/pkg/op"
	"github.com/timvandam/deepkit-framework/pkg/pack"
)

// Fault reports a compiler-program invariant violation (spec §7, last
// bullet): a missing coroutine on close, a missing frame on pop, or a
// pack overflowing the 64-opcode ceiling. These are programmer errors,
// not degraded-type conditions, and the host must return the source
// tree unchanged rather than emit a payload built from a Fault.
type Fault struct {
	Op  string
	Msg string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("program: %s: %s", f.Op, f.Msg)
}

func fault(opName, msg string) *Fault {
	return &Fault{Op: opName, Msg: msg}
}

// variable is a single (name, index) binding within a Frame.
type variable struct {
	name  string
	index int
}

// Frame is a lexical scope holding named variable bindings (spec §3).
// Frames nest LIFO; Program.current is always the top of the stack.
type Frame struct {
	parent      *Frame
	buf         *buffer
	opIndex     int
	vars        []variable
	conditional bool
}

// Conditional reports whether this frame is the immediate lexical scope
// of a conditional-type `extends` clause (spec §3).
func (f *Frame) Conditional() bool { return f.conditional }

// buffer is one opcode stream: either the program's main buffer or one
// coroutine's. It is addressed by pointer so frames can splice into the
// buffer that was active when they were opened, even if that buffer
// later stops being the active one (spec §4.3 pushOpAtFrame).
type buffer struct {
	ops []int
}

// coroutine is an inline subprogram (spec §3 Coroutine): its own opcode
// buffer and implicit frame, terminated with `return` and hoisted to the
// front of the final program.
type coroutine struct {
	buf   *buffer
	frame *Frame
}

// Program is the Compiler Program of spec §4.3.
type Program struct {
	stack []pack.StackEntry

	main *buffer

	openCoroutines []*coroutine
	doneCoroutines []*coroutine

	current *Frame

	// mainOffset starts at 2 (spec §4.3 popCoRoutine), reserving room for
	// a prepended `jump, mainOffset` once any coroutine exists.
	mainOffset int
}

// New creates an empty compiler program for one carrier.
func New() *Program {
	return &Program{
		main:       &buffer{},
		mainOffset: 2,
	}
}

// activeBuffer returns the buffer ops are currently appended to: the top
// open coroutine's buffer if one is open, else the main buffer (spec §3
// Compiler program invariant).
func (p *Program) activeBuffer() *buffer {
	if n := len(p.openCoroutines); n > 0 {
		return p.openCoroutines[n-1].buf
	}
	return p.main
}

// PushOp appends one or more opcodes/operands to the active buffer.
func (p *Program) PushOp(ops ...int) {
	b := p.activeBuffer()
	b.ops = append(b.ops, ops...)
}

// PushOpCode is a convenience wrapper taking typed opcodes instead of
// raw ints.
func (p *Program) PushOpCode(codes ...op.Code) {
	ops := make([]int, len(codes))
	for i, c := range codes {
		ops[i] = int(c)
	}
	p.PushOp(ops...)
}

// PushOpAtFrame splices ops at frame.opIndex within the buffer that was
// active when frame was opened (spec §4.3 pushOpAtFrame). This is used
// to inject a `var` op at the opening of a lexical scope when an
// `infer` binding is discovered mid-scope.
func (p *Program) PushOpAtFrame(f *Frame, ops ...int) {
	b := f.buf
	tail := make([]int, len(b.ops)-f.opIndex)
	copy(tail, b.ops[f.opIndex:])
	b.ops = append(b.ops[:f.opIndex], append(append([]int{}, ops...), tail...)...)
	// Every open frame whose opIndex falls at or after the splice point
	// must shift by the inserted length, so later pushOpAtFrame calls
	// against outer frames on the same buffer stay correct. Frame.parent
	// forms one linked chain from the innermost open frame (which may sit
	// inside a coroutine buffer) back to the root, so walking from
	// p.current covers every open frame regardless of which buffer it
	// belongs to.
	shiftFramesAfter(p.current, b, f.opIndex, len(ops))
}

func shiftFramesAfter(from *Frame, b *buffer, spliceAt, delta int) {
	for fr := from; fr != nil; fr = fr.parent {
		if fr.buf == b && fr.opIndex >= spliceAt {
			fr.opIndex += delta
		}
	}
}

// PushStack appends a new entry to the shared stack and returns its
// index.
func (p *Program) PushStack(e pack.StackEntry) int {
	p.stack = append(p.stack, e)
	return len(p.stack) - 1
}

// FindOrAddStackEntry performs a linear-scan dedup by value identity
// (spec §4.3), used for names and constants that may recur, and returns
// its index, adding it if not already present.
func (p *Program) FindOrAddStackEntry(e pack.StackEntry) int {
	for i, existing := range p.stack {
		if existing.Kind == e.Kind && existing.Value == e.Value {
			return i
		}
	}
	return p.PushStack(e)
}

// PushFrame opens a new lexical frame: it emits a `frame` op into the
// active buffer, records the buffer's post-emit length as the frame's
// opIndex, and chains a new current frame (spec §4.3). The only frame
// that skips the `frame` op is the implicit one a coroutine opens for
// itself; that path is handled by PushCoRoutine, not this method.
func (p *Program) PushFrame() *Frame {
	b := p.activeBuffer()
	b.ops = append(b.ops, int(op.Frame))
	f := &Frame{parent: p.current, buf: b, opIndex: len(b.ops)}
	p.current = f
	return f
}

// PushConditionalFrame opens a frame and marks it as the lexical scope
// of a conditional type's `extends` clause (spec §4.3).
func (p *Program) PushConditionalFrame() *Frame {
	f := p.PushFrame()
	f.conditional = true
	return f
}

// PopFrame restores the parent frame as current. It emits no op (spec
// §4.3). Popping past the root frame is a programmer error.
func (p *Program) PopFrame() error {
	if p.current == nil {
		return fault("popFrame", "no frame is open")
	}
	p.current = p.current.parent
	return nil
}

// CurrentFrame returns the currently open frame, or nil at the root.
func (p *Program) CurrentFrame() *Frame { return p.current }

// PushVariable inserts a `var` op at frame.opIndex (defaulting to the
// current frame) and binds name at the next index within that frame's
// variable list, returning the new index (spec §4.3).
func (p *Program) PushVariable(name string, f *Frame) int {
	if f == nil {
		f = p.current
	}
	idx := len(f.vars)
	f.vars = append(f.vars, variable{name: name, index: idx})
	p.PushOpAtFrame(f, int(op.Var))
	return idx
}

// PushTemplateParameter emits `template, nameIndex` into the current
// buffer and binds name in the current frame, for entry to a generic
// declaration (spec §4.3).
func (p *Program) PushTemplateParameter(name string) {
	nameIdx := p.FindOrAddStackEntry(pack.StackEntry{Kind: pack.KindName, Value: name})
	p.PushOp(int(op.Template), nameIdx)
	idx := len(p.current.vars)
	p.current.vars = append(p.current.vars, variable{name: name, index: idx})
}

// Resolution is a resolved variable reference: how many frames outward
// it was found (0 = current frame), and its index within that frame.
type Resolution struct {
	FrameOffset int
	Index       int
}

// FindVariable walks frames outward from current, counting frameOffset,
// looking for name (spec §3 Variable binding, §4.3 findVariable).
func (p *Program) FindVariable(name string) (Resolution, bool) {
	offset := 0
	for f := p.current; f != nil; f = f.parent {
		for i := len(f.vars) - 1; i >= 0; i-- {
			if f.vars[i].name == name {
				return Resolution{FrameOffset: offset, Index: f.vars[i].index}, true
			}
		}
		offset++
	}
	return Resolution{}, false
}

// FindVariableInFrame looks up name within f specifically, not any
// frame it encloses or is enclosed by, returning the Resolution an
// emitter should use to reference a binding that must live in exactly
// that frame (e.g. `infer X` binding into the conditional frame, spec
// §4.5/§9 — not whichever frame a plain outward FindVariable happens
// to find first).
func (p *Program) FindVariableInFrame(f *Frame, name string) (Resolution, bool) {
	if f == nil {
		return Resolution{}, false
	}
	offset := 0
	for c := p.current; c != nil; c = c.parent {
		if c == f {
			break
		}
		offset++
	}
	for i := len(f.vars) - 1; i >= 0; i-- {
		if f.vars[i].name == name {
			return Resolution{FrameOffset: offset, Index: f.vars[i].index}, true
		}
	}
	return Resolution{}, false
}

// EnclosingConditionalFrame returns the nearest ancestor frame (including
// current) marked conditional, used to resolve `infer X` (spec §4.5).
func (p *Program) EnclosingConditionalFrame() *Frame {
	for f := p.current; f != nil; f = f.parent {
		if f.conditional {
			return f
		}
	}
	return nil
}

// PushCoRoutine opens an implicit frame (no `frame` op, since the
// calling convention reserves one slot for the coroutine's own
// activation) and pushes a fresh opcode buffer onto the coroutine stack
// (spec §4.3).
func (p *Program) PushCoRoutine() {
	buf := &buffer{}
	f := &Frame{parent: p.current, buf: buf, opIndex: 0}
	p.current = f
	p.openCoroutines = append(p.openCoroutines, &coroutine{buf: buf, frame: f})
}

// PopCoRoutine closes the top coroutine: appends `return`, pops its
// frame, records it for later prepending, advances mainOffset, and
// returns the absolute offset where this coroutine will live once
// prepended (spec §4.3).
func (p *Program) PopCoRoutine() (int, error) {
	n := len(p.openCoroutines)
	if n == 0 {
		return 0, fault("popCoRoutine", "no coroutine is open")
	}
	co := p.openCoroutines[n-1]
	co.buf.ops = append(co.buf.ops, int(op.Return))
	p.openCoroutines = p.openCoroutines[:n-1]
	if err := p.PopFrame(); err != nil {
		return 0, err
	}
	startOffset := p.mainOffset
	p.mainOffset += len(co.buf.ops)
	p.doneCoroutines = append(p.doneCoroutines, co)
	return startOffset, nil
}

// BuildPackStruct prepends all completed coroutines in original order,
// then, if any coroutines exist, prepends `jump, mainOffset` so
// execution skips them, and returns the finished pack.Struct (spec
// §4.3, §8 invariant 5).
func (p *Program) BuildPackStruct() (*pack.Struct, error) {
	if len(p.openCoroutines) != 0 {
		return nil, fault("buildPackStruct", "a coroutine is still open")
	}
	if p.current != nil {
		return nil, fault("buildPackStruct", "a frame is still open")
	}

	var ops []int
	if len(p.doneCoroutines) > 0 {
		ops = append(ops, int(op.Jump), p.mainOffset)
		for _, co := range p.doneCoroutines {
			ops = append(ops, co.buf.ops...)
		}
	}
	ops = append(ops, p.main.ops...)

	s := &pack.Struct{Ops: ops, Stack: p.stack}
	if err := s.Validate(); err != nil {
		return nil, fault("buildPackStruct", err.Error())
	}
	return s, nil
}

// MainOffset returns the current main-program offset (spec §4.3).
func (p *Program) MainOffset() int { return p.mainOffset }

// Empty reports whether nothing has been emitted into the active
// buffer yet and no frame is open. The walker consults this before
// emitting a union, intersection, class, or function-like type to
// decide whether to open its own frame — a top-level carrier's body
// never needs one, since there is nothing else sharing its buffer
// (spec §4.5 "push frame (if program nonempty)", §8 scenario 2).
func (p *Program) Empty() bool {
	return p.current == nil && len(p.activeBuffer().ops) == 0
}
