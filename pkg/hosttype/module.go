package hosttype

import "fmt"

// Module is one source file's local declaration table, the subset of
// host-compiler bookkeeping the Declaration Resolver needs when the
// checker cannot bridge an import directly (§4.4 "manually walk the
// module graph").
type Module struct {
	Path string

	// Declarations is the local name table: every top-level
	// class/interface/type-alias/enum/function declared in this file,
	// keyed by its own name.
	Declarations map[string]Declaration

	Imports []*ImportSpecifier
	Exports []*ExportSpecifier
}

// NewModule returns an empty module at path.
func NewModule(path string) *Module {
	return &Module{Path: path, Declarations: map[string]Declaration{}}
}

// Declare registers a top-level declaration in this module's local
// name table.
func (m *Module) Declare(d Declaration) {
	m.Declarations[d.declName()] = d
}

// Graph is the read-only set of modules reachable from a source tree,
// the narrow substitute for the host compiler's module resolution I/O
// (§1 "Out of scope": module resolution I/O). Implementations resolve
// an import specifier string to a Module.
type Graph interface {
	Resolve(from *Module, specifier string) (*Module, error)
}

// MapGraph is an in-memory Graph keyed by resolved module path,
// sufficient for tests and for the CLI's single-process JSON-tree mode.
type MapGraph map[string]*Module

// Resolve looks specifier up directly as a path key, ignoring from
// (no relative-path resolution is modeled; callers register modules
// under the names they import them by).
func (g MapGraph) Resolve(from *Module, specifier string) (*Module, error) {
	m, ok := g[specifier]
	if !ok {
		return nil, fmt.Errorf("hosttype: module %q not found", specifier)
	}
	return m, nil
}
