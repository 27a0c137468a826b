// Command reflect-transform reads a JSON-encoded module (a single
// source file's declaration table, hosttype's "CLI's single-process
// JSON-tree mode"), compiles every class and function declaration
// into a type payload via pkg/walk + pkg/rewrite, and prints the
// results. Other declarations get no payload of their own; interfaces
// and type aliases appear only as hoisted bindings of the payloads
// that reference them. This mirrors cmd/convert-syntax's single-purpose "read,
// transform, print" shape.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/jhump/protoreflect/desc"

	"github.com/timvandam/deepkit-framework/pkg/config"
	"github.com/timvandam/deepkit-framework/pkg/cuedebug"
	"github.com/timvandam/deepkit-framework/pkg/descriptor"
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/program"
	"github.com/timvandam/deepkit-framework/pkg/resolve"
	"github.com/timvandam/deepkit-framework/pkg/rewrite"
	"github.com/timvandam/deepkit-framework/pkg/walk"
)

func main() {
	in := flag.String("in", "", "path to a JSON-encoded module file")
	reflection := flag.String("reflection", "", "configuration probe override: always, never, or empty for unset")
	showCue := flag.Bool("cue", false, "also render each payload as CUE source")
	showDescriptor := flag.Bool("descriptor", false, "also export class/interface declarations as protobuf descriptors")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "reflect-transform: -in is required")
		os.Exit(1)
	}

	mod, err := loadModule(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflect-transform: %v\n", err)
		os.Exit(1)
	}
	bindSymbols(mod)

	probe := config.NewProbe()
	if *reflection != "" {
		mode, ok := config.ParseMode(*reflection)
		if !ok {
			fmt.Fprintf(os.Stderr, "reflect-transform: invalid -reflection value %q\n", *reflection)
			os.Exit(1)
		}
		probe.Override = mode
	}

	checker := hosttype.NewMapChecker()
	resolver := resolve.New(checker, hosttype.MapGraph{mod.Path: mod})

	names := make([]string, 0, len(mod.Declarations))
	for name := range mod.Declarations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		decl := mod.Declarations[name]
		p := program.New()
		w := walk.New(p, resolver, mod)

		att, err := attachmentFor(probe, w, decl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reflect-transform: %s: %v\n", name, err)
			continue
		}
		if att == nil {
			fmt.Printf("%s: reflection disabled, no payload\n", name)
			continue
		}
		printAttachment(name, *att, *showCue)

		// Each carrier drains its own hoist queues to fixpoint right
		// after its own walk, per §4.7/§9 — a hoisted alias discovered
		// while walking this carrier is unrelated to any other
		// carrier's hoist set.
		hoists, err := rewrite.DrainHoistQueues(w)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reflect-transform: %s: hoist drain: %v\n", name, err)
			continue
		}
		for _, h := range hoists {
			printAttachment(h.Name, h, *showCue)
		}

		if *showDescriptor {
			if md, err := descriptor.Export(decl); err == nil {
				printDescriptor(name, md)
			}
		}
	}
}

func attachmentFor(probe *config.Probe, w *walk.Walker, decl hosttype.Declaration) (*rewrite.Attachment, error) {
	docTags := []string{decl.DocComment()}
	dir := ""
	switch d := decl.(type) {
	case *hosttype.ClassDeclaration:
		return rewrite.MaybeClassAttachment(probe, docTags, dir, w, d)
	case *hosttype.FunctionLike:
		return rewrite.MaybeFunctionAttachment(probe, docTags, dir, w, d)
	default:
		return nil, fmt.Errorf("%T has no standalone carrier payload (only classes/functions are rewrite carriers)", decl)
	}
}

func printAttachment(name string, att rewrite.Attachment, cue bool) {
	fmt.Printf("%s [%s %s]: %#v\n", name, attachmentKindName(att.Kind), att.Name, att.Payload)
	if !cue {
		return
	}
	text, err := cuedebug.Render(att.Payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflect-transform: %s: cue render: %v\n", name, err)
		return
	}
	fmt.Println(text)
}

func attachmentKindName(k rewrite.AttachmentKind) string {
	switch k {
	case rewrite.ClassStaticMember:
		return "classStaticMember"
	case rewrite.FunctionAssignment:
		return "functionAssignment"
	case rewrite.FunctionExpressionWrap:
		return "functionExpressionWrap"
	case rewrite.HoistBinding:
		return "hoistBinding"
	default:
		return "unknown"
	}
}

func printDescriptor(name string, md *desc.MessageDescriptor) {
	fields := md.GetFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.GetName()
	}
	fmt.Printf("%s descriptor %s fields=%v\n", name, md.GetName(), names)
}

func loadModule(path string) (*hosttype.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc struct {
		Path         string                     `json:"path"`
		Declarations map[string]json.RawMessage `json:"declarations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mod := hosttype.NewModule(doc.Path)
	for name, raw := range doc.Declarations {
		decl, err := hosttype.UnmarshalDeclaration(raw)
		if err != nil {
			return nil, fmt.Errorf("declaration %s: %w", name, err)
		}
		mod.Declare(decl)
	}
	return mod, nil
}
