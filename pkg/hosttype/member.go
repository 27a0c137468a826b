package hosttype

// Member is a single member of a class, interface, or object type
// literal (§4.5 "Property signature / declaration", "Function-like").
type Member interface {
	Node
	memberName() string
	member()
}

type memberBase struct {
	base
	Name string
}

func (m memberBase) memberName() string { return m.Name }
func (memberBase) member()              {}

// MemberName returns a member's own name, for callers outside this
// package — the walker deduplicates class/interface members by this
// name before emitting them (§4.5 "deduplicated by name").
func MemberName(m Member) string { return m.memberName() }

// Modifiers bundles the trailing decoration-train flags shared by
// properties, methods, and parameters (§4.5 "member modifiers").
type Modifiers struct {
	Optional  bool
	Readonly  bool
	Public    bool
	Private   bool
	Protected bool
	Abstract  bool
	// Initializer, if non-nil, is emitted as a `defaultValue` op wrapping
	// a zero-argument thunk around it (§4.5).
	Initializer Node
}

// PropertyMember is a class/object-literal property (`property` /
// `propertySignature`, §4.5).
type PropertyMember struct {
	memberBase
	Type Type
	Modifiers
	// Signature marks a property in an interface/type-literal body
	// (emits `propertySignature`) versus a concrete class field
	// (`property`).
	Signature bool
}

// IndexSignatureMember is `[key: K]: V` (§4.5).
type IndexSignatureMember struct {
	memberBase
	KeyType   Type
	ValueType Type
}

// Parameter is a single function/method parameter (§4.5 "Function-like").
// It is not itself a Member — it never appears in a class/interface
// Members list — but shares the same modifier vocabulary (parameter
// properties carry `public`/`private`/`protected`).
type Parameter struct {
	base
	Name string
	Type Type
	Modifiers
}

// MethodMember is a method (`method`) or method signature
// (`methodSignature`) member (§4.5 "Function-like").
type MethodMember struct {
	memberBase
	TypeParameters []TypeParameter
	Parameters     []Parameter
	ReturnType     Type
	Modifiers
	Signature bool
	// Constructor marks this member as the class constructor; the walker
	// closes it with the dedicated operand-free `constructor` op rather
	// than a named `method` op.
	Constructor bool
}
