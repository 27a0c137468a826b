package hosttype

// simpleSymbol is the reference Symbol implementation: a name plus its
// ordered list of declarations, exactly the shape §4.4 describes
// ("take its first declaration").
type simpleSymbol struct {
	name         string
	declarations []Node
}

func NewSymbol(name string, declarations ...Node) Symbol {
	return &simpleSymbol{name: name, declarations: declarations}
}

func (s *simpleSymbol) Name() string       { return s.name }
func (s *simpleSymbol) Declarations() []Node { return s.declarations }

// MapChecker is the in-memory reference Checker (§4.4): a direct table
// from reference node identity to resolved symbol, plus an import-
// bridging table used by TypeOfSymbol. It stands in for the host type
// checker in tests and in the CLI's single-process JSON-tree mode,
// where the JSON source already carries resolved symbol references
// rather than requiring name-based binding resolution.
type MapChecker struct {
	// Bridges maps a reference node's Symbol (already attached via
	// TypeReferenceType.Symbol at tree-construction time) through to the
	// bridged symbol when the direct one is an import specifier.
	Bridges map[Symbol]Symbol
}

// NewMapChecker returns an empty reference checker.
func NewMapChecker() *MapChecker {
	return &MapChecker{Bridges: map[Symbol]Symbol{}}
}

// SymbolAt returns ref.Symbol directly: in this reference
// implementation the tree already carries its resolved symbol, the way
// a real host checker would have attached one during type checking.
func (c *MapChecker) SymbolAt(ref *TypeReferenceType) Symbol {
	return ref.Symbol
}

// TypeOfSymbol looks up a bridge registered for sym, or returns nil if
// none was registered (meaning the resolver's manual module-graph walk
// must take over, per §4.4).
func (c *MapChecker) TypeOfSymbol(sym Symbol) Symbol {
	return c.Bridges[sym]
}
