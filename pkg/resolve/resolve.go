// Package resolve implements the Declaration Resolver (spec §4.4): it
// maps a type-name occurrence to its defining declaration, consulting
// the host checker first and falling back to a manual module-graph
// walk across named and star re-exports when the checker cannot
// bridge an import.
package resolve

import (
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/resolve/rescache"
)

// Result is what the resolver found for one reference occurrence.
type Result struct {
	Declaration hosttype.Declaration
	// ThroughImport is true if reaching Declaration required crossing
	// an ImportSpecifier — the walker uses this to classify the
	// reference into the compile-local or foreign-embed hoist queue
	// (spec §3 "Hoist queues").
	ThroughImport bool
	// Specifier is the import specifier that was crossed, if
	// ThroughImport is true. The rewriter marks it Synthetic to pin it
	// against dead-import elimination (spec §9 "Cross-file identity").
	Specifier *hosttype.ImportSpecifier
}

// Resolver resolves type references against a host Checker and a
// Graph of modules, optionally memoizing cross-file walks in a
// persisted Cache.
type Resolver struct {
	Checker hosttype.Checker
	Graph   hosttype.Graph
	// Cache, if non-nil, memoizes resolutions that crossed an import
	// by (module path, reference name) — the expensive case — across
	// process runs (spec §5's per-file checker cache, extended).
	Cache *rescache.Cache
}

// New returns a Resolver with no cache.
func New(checker hosttype.Checker, graph hosttype.Graph) *Resolver {
	return &Resolver{Checker: checker, Graph: graph}
}

// Resolve finds the defining declaration for ref, occurring within
// from. ok is false if no declaration could be found — the caller
// (the walker) must then emit `any`, per §4.4 "unresolved globals are
// not an error".
func (r *Resolver) Resolve(from *hosttype.Module, ref *hosttype.TypeReferenceType) (Result, bool) {
	sym := r.Checker.SymbolAt(ref)
	if sym == nil {
		return Result{}, false
	}
	return r.firstDeclaration(from, sym)
}

func (r *Resolver) firstDeclaration(from *hosttype.Module, sym hosttype.Symbol) (Result, bool) {
	decls := sym.Declarations()
	if len(decls) == 0 {
		return Result{}, false
	}
	first := decls[0]

	if imp, ok := first.(*hosttype.ImportSpecifier); ok {
		return r.resolveImport(from, imp, sym)
	}
	if d, ok := first.(hosttype.Declaration); ok {
		return Result{Declaration: d}, true
	}
	return Result{}, false
}

// resolveImport bridges through an import specifier: first by asking
// the checker for the declared type of the symbol (§4.4 "if the
// checker cannot bridge"), falling back to a manual module-graph walk
// otherwise.
func (r *Resolver) resolveImport(from *hosttype.Module, imp *hosttype.ImportSpecifier, sym hosttype.Symbol) (Result, bool) {
	if bridged := r.Checker.TypeOfSymbol(sym); bridged != nil {
		res, ok := r.firstDeclaration(from, bridged)
		if ok {
			res.ThroughImport = true
			res.Specifier = imp
		}
		return res, ok
	}

	if r.Cache != nil {
		if rec, hit, err := r.Cache.Get(from.Path, imp.ImportedName); err == nil && hit {
			if mod, err := r.Graph.Resolve(from, rec.ModulePath); err == nil {
				if d, ok := mod.Declarations[rec.DeclName]; ok {
					return Result{Declaration: d, ThroughImport: true, Specifier: imp}, true
				}
			}
		}
	}

	d, modPath, ok := r.resolveManual(from, imp.From, imp.ImportedName, map[string]bool{})
	if !ok {
		return Result{}, false
	}
	if r.Cache != nil {
		_ = r.Cache.Put(from.Path, imp.ImportedName, rescache.Record{
			ModulePath: modPath,
			DeclName:   hosttype.DeclName(d),
		})
	}
	return Result{Declaration: d, ThroughImport: true, Specifier: imp}, true
}

// resolveManual implements §4.4's fallback walk: open the referenced
// module, search its local name table, then transitively follow named
// re-exports (honoring propertyName) and star re-exports until a
// defining declaration is found or the graph is exhausted. visited
// guards against re-export cycles.
func (r *Resolver) resolveManual(from *hosttype.Module, specifier, name string, visited map[string]bool) (hosttype.Declaration, string, bool) {
	key := specifier + "\x00" + name
	if visited[key] {
		return nil, "", false
	}
	visited[key] = true

	mod, err := r.Graph.Resolve(from, specifier)
	if err != nil {
		return nil, "", false
	}
	if d, ok := mod.Declarations[name]; ok {
		return d, mod.Path, true
	}

	for _, exp := range mod.Exports {
		if exp.Name == "" || exp.Name != name {
			continue
		}
		propertyName := exp.PropertyName
		if propertyName == "" {
			propertyName = name
		}
		if d, modPath, ok := r.resolveManual(mod, exp.From, propertyName, visited); ok {
			return d, modPath, true
		}
	}

	for _, exp := range mod.Exports {
		if exp.Name != "" {
			continue
		}
		if d, modPath, ok := r.resolveManual(mod, exp.From, name, visited); ok {
			return d, modPath, true
		}
	}

	return nil, "", false
}
