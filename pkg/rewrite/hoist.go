package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/program"
	"github.com/timvandam/deepkit-framework/pkg/walk"
)

// manglePrefix is the binding-name prefix §4.7 specifies for a hoisted
// declaration's sibling const.
const manglePrefix = "__Ω"

// Mangle turns a hoisted reference name's dotted parts into its binding
// name: __Ω followed by a left-to-right underscore join (§4.7), the
// same word-joining idiom manifest.ToPascalCase applies when building a
// namespace root, repurposed here for a binding name instead.
func Mangle(parts []string) string {
	return manglePrefix + strings.Join(parts, "_")
}

// DrainHoistQueues implements §4.7's hoisting pass: repeatedly take
// every declaration currently queued — compile-local or embed-foreign,
// which §3 describes identically apart from where the host ultimately
// binds the result — build an independent program for each (its own
// type parameters bound as templates, then its body, exactly as
// EmitTypeAliasDeclaration/EmitInterfaceDeclaration already do for an
// inlined reference), and produce one HoistBinding attachment per
// declaration. Draining a declaration may enqueue further ones
// (mutually recursive aliases, §9 "Cyclic type references"), so this
// loops to a fixpoint.
func DrainHoistQueues(w *walk.Walker) ([]Attachment, error) {
	var out []Attachment
	seen := map[hosttype.Declaration]bool{}
	for {
		batch := pendingHoists(w, seen)
		if len(batch) == 0 {
			return out, nil
		}
		for _, d := range batch {
			seen[d] = true
			att, err := hoistOne(w, d)
			if err != nil {
				return nil, err
			}
			out = append(out, att)
		}
	}
}

// pendingHoists collects every not-yet-seen queued declaration and
// returns it sorted by its hoisted binding name, so a drain round's
// batch — and therefore the order hoisted __Ω bindings are emitted in
// — is deterministic across runs on the same input, matching
// cmd/reflect-transform's own sort.Strings over declaration names.
func pendingHoists(w *walk.Walker, seen map[hosttype.Declaration]bool) []hosttype.Declaration {
	var batch []hosttype.Declaration
	for d := range w.LocalHoistQueue {
		if !seen[d] {
			batch = append(batch, d)
		}
	}
	for d := range w.ForeignHoistQueue {
		if !seen[d] {
			batch = append(batch, d)
		}
	}
	sort.Slice(batch, func(i, j int) bool {
		return hoistBindingName(w, batch[i]) < hoistBindingName(w, batch[j])
	})
	return batch
}

func hoistOne(w *walk.Walker, d hosttype.Declaration) (Attachment, error) {
	p := program.New()
	hw := walk.New(p, w.Resolver, w.Module)
	// Share the same queues: emitting this declaration's own body may
	// discover further aliases to hoist, and the parent loop needs to
	// see them.
	hw.LocalHoistQueue = w.LocalHoistQueue
	hw.ForeignHoistQueue = w.ForeignHoistQueue

	switch dd := d.(type) {
	case *hosttype.TypeAliasDeclaration:
		hw.EmitTypeAliasDeclaration(dd)
	case *hosttype.InterfaceDeclaration:
		hw.EmitInterfaceDeclaration(dd)
	default:
		return Attachment{}, fmt.Errorf("rewrite: %T is not hoistable", d)
	}

	payload, err := finalize(hw)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{Kind: HoistBinding, Name: hoistBindingName(w, d), Payload: payload}, nil
}

// hoistBindingName derives a hoisted declaration's __Ω binding name from
// the original reference name recorded at its usage site (§3 "Both
// carry the original reference name used at the usage site, from which
// the hoisted binding name is derived"), falling back to the
// declaration's own name if it was never queued by either map (only
// possible for a caller driving DrainHoistQueues manually in a test).
func hoistBindingName(w *walk.Walker, d hosttype.Declaration) string {
	if name, ok := w.LocalHoistQueue[d]; ok {
		return Mangle(strings.Split(name, "."))
	}
	if name, ok := w.ForeignHoistQueue[d]; ok {
		return Mangle(strings.Split(name, "."))
	}
	return Mangle([]string{hosttype.DeclName(d)})
}
