package hosttype

import (
	"encoding/json"
	"fmt"
)

// envelope is the on-wire tagged-union shape every Type/Member/
// Declaration round-trips through: a kind tag plus its own field set,
// so a single JSON document can carry the polymorphic tree the CLI
// entrypoint reads (module.go's "CLI's single-process JSON-tree mode").
// Coverage is the statically-shaped surface pkg/walk's emission table
// already dispatches on; Node-typed fields with no Type/Member/
// Declaration shape of their own (Modifiers.Initializer, FunctionLike.
// Body) are not encoded, since this package models no general
// expression/statement grammar for them (see pkg/hosttype/expr.go's
// own doc comment for the same limitation).
type envelope struct {
	Kind string          `json:"kind"`
	Span Span            `json:"span,omitempty"`
	Doc  string          `json:"doc,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

func marshalEnvelope(kind string, sp Span, doc string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("hosttype: encode %s: %w", kind, err)
	}
	return json.Marshal(envelope{Kind: kind, Span: sp, Doc: doc, Data: raw})
}

// MarshalType encodes t as a tagged JSON document. A nil t encodes as
// JSON null.
func MarshalType(t Type) ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	switch v := t.(type) {
	case *PrimitiveType:
		return marshalEnvelope("primitive", v.Span(), v.Doc, struct {
			Kind PrimitiveKind `json:"kind"`
		}{v.Kind})

	case *LiteralType:
		return marshalEnvelope("literal", v.Span(), v.Doc, struct {
			Kind  LiteralKind `json:"kind"`
			Value any         `json:"value"`
		}{v.Kind, v.Value})

	case *ArrayType:
		elem, err := MarshalType(v.Element)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("array", v.Span(), v.Doc, struct {
			Element json.RawMessage `json:"element"`
		}{elem})

	case *UnionType:
		members, err := marshalTypes(v.Members)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("union", v.Span(), v.Doc, struct {
			Members []json.RawMessage `json:"members"`
		}{members})

	case *IntersectionType:
		members, err := marshalTypes(v.Members)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("intersection", v.Span(), v.Doc, struct {
			Members []json.RawMessage `json:"members"`
		}{members})

	case *KeyofType:
		operand, err := MarshalType(v.Operand)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("keyof", v.Span(), v.Doc, struct {
			Operand json.RawMessage `json:"operand"`
		}{operand})

	case *IndexedAccessType:
		object, err := MarshalType(v.Object)
		if err != nil {
			return nil, err
		}
		index, err := MarshalType(v.Index)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("indexedAccess", v.Span(), v.Doc, struct {
			Object json.RawMessage `json:"object"`
			Index  json.RawMessage `json:"index"`
		}{object, index})

	case *ConditionalType:
		check, err := MarshalType(v.Check)
		if err != nil {
			return nil, err
		}
		extends, err := MarshalType(v.Extends)
		if err != nil {
			return nil, err
		}
		tru, err := MarshalType(v.True)
		if err != nil {
			return nil, err
		}
		fls, err := MarshalType(v.False)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("conditional", v.Span(), v.Doc, struct {
			Check   json.RawMessage `json:"check"`
			Extends json.RawMessage `json:"extends"`
			True    json.RawMessage `json:"true"`
			False   json.RawMessage `json:"false"`
		}{check, extends, tru, fls})

	case *InferType:
		return marshalEnvelope("infer", v.Span(), v.Doc, struct {
			Name string `json:"name"`
		}{v.Name})

	case *ParenthesizedType:
		inner, err := MarshalType(v.Inner)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("paren", v.Span(), v.Doc, struct {
			Inner json.RawMessage `json:"inner"`
		}{inner})

	case *MappedType:
		constraint, err := MarshalType(v.Constraint)
		if err != nil {
			return nil, err
		}
		value, err := MarshalType(v.Value)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("mapped", v.Span(), v.Doc, struct {
			ParameterName string          `json:"parameterName"`
			Constraint    json.RawMessage `json:"constraint"`
			Value         json.RawMessage `json:"value"`
			Optional      MappedModifier  `json:"optional"`
			Readonly      MappedModifier  `json:"readonly"`
		}{v.ParameterName, constraint, value, v.Optional, v.Readonly})

	case *TypeReferenceType:
		args, err := marshalTypes(v.TypeArguments)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("typeReference", v.Span(), v.Doc, struct {
			Name          QualifiedName     `json:"name"`
			TypeArguments []json.RawMessage `json:"typeArguments"`
		}{v.Name, args})

	case *TypeLiteralType:
		members, err := marshalMembers(v.Members)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("typeLiteral", v.Span(), v.Doc, struct {
			Members []json.RawMessage `json:"members"`
		}{members})

	case *FunctionTypeType:
		tps, err := marshalTypeParams(v.TypeParameters)
		if err != nil {
			return nil, err
		}
		params, err := marshalParameters(v.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := MarshalType(v.ReturnType)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("functionType", v.Span(), v.Doc, struct {
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Parameters     []paramDTO      `json:"parameters"`
			ReturnType     json.RawMessage `json:"returnType"`
		}{tps, params, ret})

	default:
		return nil, fmt.Errorf("hosttype: %T has no JSON encoding", t)
	}
}

// UnmarshalType is MarshalType's inverse.
func UnmarshalType(raw json.RawMessage) (Type, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("hosttype: decode type envelope: %w", err)
	}
	b := base{SpanVal: env.Span, Doc: env.Doc}

	switch env.Kind {
	case "primitive":
		var d struct {
			Kind PrimitiveKind `json:"kind"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return &PrimitiveType{base: b, Kind: d.Kind}, nil

	case "literal":
		var d struct {
			Kind  LiteralKind `json:"kind"`
			Value any         `json:"value"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return &LiteralType{base: b, Kind: d.Kind, Value: d.Value}, nil

	case "array":
		var d struct {
			Element json.RawMessage `json:"element"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		elem, err := UnmarshalType(d.Element)
		if err != nil {
			return nil, err
		}
		return &ArrayType{base: b, Element: elem}, nil

	case "union":
		var d struct {
			Members []json.RawMessage `json:"members"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		members, err := unmarshalTypes(d.Members)
		if err != nil {
			return nil, err
		}
		return &UnionType{base: b, Members: members}, nil

	case "intersection":
		var d struct {
			Members []json.RawMessage `json:"members"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		members, err := unmarshalTypes(d.Members)
		if err != nil {
			return nil, err
		}
		return &IntersectionType{base: b, Members: members}, nil

	case "keyof":
		var d struct {
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		operand, err := UnmarshalType(d.Operand)
		if err != nil {
			return nil, err
		}
		return &KeyofType{base: b, Operand: operand}, nil

	case "indexedAccess":
		var d struct {
			Object json.RawMessage `json:"object"`
			Index  json.RawMessage `json:"index"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		object, err := UnmarshalType(d.Object)
		if err != nil {
			return nil, err
		}
		index, err := UnmarshalType(d.Index)
		if err != nil {
			return nil, err
		}
		return &IndexedAccessType{base: b, Object: object, Index: index}, nil

	case "conditional":
		var d struct {
			Check   json.RawMessage `json:"check"`
			Extends json.RawMessage `json:"extends"`
			True    json.RawMessage `json:"true"`
			False   json.RawMessage `json:"false"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		check, err := UnmarshalType(d.Check)
		if err != nil {
			return nil, err
		}
		extends, err := UnmarshalType(d.Extends)
		if err != nil {
			return nil, err
		}
		tru, err := UnmarshalType(d.True)
		if err != nil {
			return nil, err
		}
		fls, err := UnmarshalType(d.False)
		if err != nil {
			return nil, err
		}
		return &ConditionalType{base: b, Check: check, Extends: extends, True: tru, False: fls}, nil

	case "infer":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return &InferType{base: b, Name: d.Name}, nil

	case "paren":
		var d struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		inner, err := UnmarshalType(d.Inner)
		if err != nil {
			return nil, err
		}
		return &ParenthesizedType{base: b, Inner: inner}, nil

	case "mapped":
		var d struct {
			ParameterName string          `json:"parameterName"`
			Constraint    json.RawMessage `json:"constraint"`
			Value         json.RawMessage `json:"value"`
			Optional      MappedModifier  `json:"optional"`
			Readonly      MappedModifier  `json:"readonly"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		constraint, err := UnmarshalType(d.Constraint)
		if err != nil {
			return nil, err
		}
		value, err := UnmarshalType(d.Value)
		if err != nil {
			return nil, err
		}
		return &MappedType{base: b, ParameterName: d.ParameterName, Constraint: constraint, Value: value, Optional: d.Optional, Readonly: d.Readonly}, nil

	case "typeReference":
		var d struct {
			Name          QualifiedName     `json:"name"`
			TypeArguments []json.RawMessage `json:"typeArguments"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		args, err := unmarshalTypes(d.TypeArguments)
		if err != nil {
			return nil, err
		}
		return &TypeReferenceType{base: b, Name: d.Name, TypeArguments: args}, nil

	case "typeLiteral":
		var d struct {
			Members []json.RawMessage `json:"members"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		members, err := unmarshalMembers(d.Members)
		if err != nil {
			return nil, err
		}
		return &TypeLiteralType{base: b, Members: members}, nil

	case "functionType":
		var d struct {
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Parameters     []paramDTO      `json:"parameters"`
			ReturnType     json.RawMessage `json:"returnType"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		tps, err := unmarshalTypeParams(d.TypeParameters)
		if err != nil {
			return nil, err
		}
		params, err := unmarshalParameters(d.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := UnmarshalType(d.ReturnType)
		if err != nil {
			return nil, err
		}
		return &FunctionTypeType{base: b, TypeParameters: tps, Parameters: params, ReturnType: ret}, nil

	default:
		return nil, fmt.Errorf("hosttype: unknown type kind %q", env.Kind)
	}
}

func marshalTypes(ts []Type) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(ts))
	for i, t := range ts {
		raw, err := MarshalType(t)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalTypes(raws []json.RawMessage) ([]Type, error) {
	out := make([]Type, len(raws))
	for i, raw := range raws {
		t, err := UnmarshalType(raw)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// typeParamDTO / paramDTO carry a TypeParameter/Parameter's own Type
// field through the same recursive envelope as everything else.
type typeParamDTO struct {
	Name       string          `json:"name"`
	Constraint json.RawMessage `json:"constraint,omitempty"`
}

type paramDTO struct {
	Name      string          `json:"name"`
	Type      json.RawMessage `json:"type"`
	Modifiers Modifiers       `json:"modifiers"`
}

func marshalTypeParams(tps []TypeParameter) ([]typeParamDTO, error) {
	out := make([]typeParamDTO, len(tps))
	for i, tp := range tps {
		c, err := MarshalType(tp.Constraint)
		if err != nil {
			return nil, err
		}
		out[i] = typeParamDTO{Name: tp.Name, Constraint: c}
	}
	return out, nil
}

func unmarshalTypeParams(dtos []typeParamDTO) ([]TypeParameter, error) {
	out := make([]TypeParameter, len(dtos))
	for i, d := range dtos {
		c, err := UnmarshalType(d.Constraint)
		if err != nil {
			return nil, err
		}
		out[i] = TypeParameter{Name: d.Name, Constraint: c}
	}
	return out, nil
}

func marshalParameters(ps []Parameter) ([]paramDTO, error) {
	out := make([]paramDTO, len(ps))
	for i, p := range ps {
		t, err := MarshalType(p.Type)
		if err != nil {
			return nil, err
		}
		out[i] = paramDTO{Name: p.Name, Type: t, Modifiers: p.Modifiers}
	}
	return out, nil
}

func unmarshalParameters(dtos []paramDTO) ([]Parameter, error) {
	out := make([]Parameter, len(dtos))
	for i, d := range dtos {
		t, err := UnmarshalType(d.Type)
		if err != nil {
			return nil, err
		}
		out[i] = Parameter{Name: d.Name, Type: t, Modifiers: d.Modifiers}
	}
	return out, nil
}

// MarshalMember encodes a single class/interface/type-literal member.
func MarshalMember(m Member) ([]byte, error) {
	switch v := m.(type) {
	case *PropertyMember:
		t, err := MarshalType(v.Type)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("property", v.Span(), v.Doc, struct {
			Name      string          `json:"name"`
			Type      json.RawMessage `json:"type"`
			Modifiers Modifiers       `json:"modifiers"`
			Signature bool            `json:"signature"`
		}{v.Name, t, v.Modifiers, v.Signature})

	case *IndexSignatureMember:
		k, err := MarshalType(v.KeyType)
		if err != nil {
			return nil, err
		}
		val, err := MarshalType(v.ValueType)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("indexSignature", v.Span(), v.Doc, struct {
			Name      string          `json:"name"`
			KeyType   json.RawMessage `json:"keyType"`
			ValueType json.RawMessage `json:"valueType"`
		}{v.Name, k, val})

	case *MethodMember:
		tps, err := marshalTypeParams(v.TypeParameters)
		if err != nil {
			return nil, err
		}
		params, err := marshalParameters(v.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := MarshalType(v.ReturnType)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("method", v.Span(), v.Doc, struct {
			Name           string          `json:"name"`
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Parameters     []paramDTO      `json:"parameters"`
			ReturnType     json.RawMessage `json:"returnType"`
			Modifiers      Modifiers       `json:"modifiers"`
			Signature      bool            `json:"signature"`
			Constructor    bool            `json:"constructor"`
		}{v.Name, tps, params, ret, v.Modifiers, v.Signature, v.Constructor})

	default:
		return nil, fmt.Errorf("hosttype: %T has no JSON encoding", m)
	}
}

// UnmarshalMember is MarshalMember's inverse.
func UnmarshalMember(raw json.RawMessage) (Member, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("hosttype: decode member envelope: %w", err)
	}
	mb := func(name string) memberBase {
		return memberBase{base: base{SpanVal: env.Span, Doc: env.Doc}, Name: name}
	}

	switch env.Kind {
	case "property":
		var d struct {
			Name      string          `json:"name"`
			Type      json.RawMessage `json:"type"`
			Modifiers Modifiers       `json:"modifiers"`
			Signature bool            `json:"signature"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		t, err := UnmarshalType(d.Type)
		if err != nil {
			return nil, err
		}
		return &PropertyMember{memberBase: mb(d.Name), Type: t, Modifiers: d.Modifiers, Signature: d.Signature}, nil

	case "indexSignature":
		var d struct {
			Name      string          `json:"name"`
			KeyType   json.RawMessage `json:"keyType"`
			ValueType json.RawMessage `json:"valueType"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		k, err := UnmarshalType(d.KeyType)
		if err != nil {
			return nil, err
		}
		val, err := UnmarshalType(d.ValueType)
		if err != nil {
			return nil, err
		}
		return &IndexSignatureMember{memberBase: mb(d.Name), KeyType: k, ValueType: val}, nil

	case "method":
		var d struct {
			Name           string          `json:"name"`
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Parameters     []paramDTO      `json:"parameters"`
			ReturnType     json.RawMessage `json:"returnType"`
			Modifiers      Modifiers       `json:"modifiers"`
			Signature      bool            `json:"signature"`
			Constructor    bool            `json:"constructor"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		tps, err := unmarshalTypeParams(d.TypeParameters)
		if err != nil {
			return nil, err
		}
		params, err := unmarshalParameters(d.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := UnmarshalType(d.ReturnType)
		if err != nil {
			return nil, err
		}
		return &MethodMember{memberBase: mb(d.Name), TypeParameters: tps, Parameters: params, ReturnType: ret, Modifiers: d.Modifiers, Signature: d.Signature, Constructor: d.Constructor}, nil

	default:
		return nil, fmt.Errorf("hosttype: unknown member kind %q", env.Kind)
	}
}

func marshalMembers(ms []Member) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(ms))
	for i, m := range ms {
		raw, err := MarshalMember(m)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalMembers(raws []json.RawMessage) ([]Member, error) {
	out := make([]Member, len(raws))
	for i, raw := range raws {
		m, err := UnmarshalMember(raw)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// MarshalDeclaration encodes a top-level declaration.
func MarshalDeclaration(d Declaration) ([]byte, error) {
	switch v := d.(type) {
	case *ClassDeclaration:
		tps, err := marshalTypeParams(v.TypeParameters)
		if err != nil {
			return nil, err
		}
		members, err := marshalMembers(v.Members)
		if err != nil {
			return nil, err
		}
		var extends json.RawMessage
		if v.Extends != nil {
			extends, err = MarshalType(v.Extends)
			if err != nil {
				return nil, err
			}
		}
		implements := make([]json.RawMessage, len(v.Implements))
		for i, im := range v.Implements {
			raw, err := MarshalType(im)
			if err != nil {
				return nil, err
			}
			implements[i] = raw
		}
		return marshalEnvelope("class", v.Span(), v.Doc, struct {
			Name           string            `json:"name"`
			TypeParameters []typeParamDTO    `json:"typeParameters"`
			Members        []json.RawMessage `json:"members"`
			Extends        json.RawMessage   `json:"extends,omitempty"`
			Implements     []json.RawMessage `json:"implements,omitempty"`
		}{v.Name, tps, members, extends, implements})

	case *InterfaceDeclaration:
		tps, err := marshalTypeParams(v.TypeParameters)
		if err != nil {
			return nil, err
		}
		members, err := marshalMembers(v.Members)
		if err != nil {
			return nil, err
		}
		extends := make([]json.RawMessage, len(v.Extends))
		for i, ex := range v.Extends {
			raw, err := MarshalType(ex)
			if err != nil {
				return nil, err
			}
			extends[i] = raw
		}
		return marshalEnvelope("interface", v.Span(), v.Doc, struct {
			Name           string            `json:"name"`
			TypeParameters []typeParamDTO    `json:"typeParameters"`
			Members        []json.RawMessage `json:"members"`
			Extends        []json.RawMessage `json:"extends,omitempty"`
		}{v.Name, tps, members, extends})

	case *TypeAliasDeclaration:
		tps, err := marshalTypeParams(v.TypeParameters)
		if err != nil {
			return nil, err
		}
		body, err := MarshalType(v.Body)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("typeAlias", v.Span(), v.Doc, struct {
			Name           string          `json:"name"`
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Body           json.RawMessage `json:"body"`
		}{v.Name, tps, body})

	case *EnumDeclaration:
		return marshalEnvelope("enum", v.Span(), v.Doc, struct {
			Name string `json:"name"`
		}{v.Name})

	case *FunctionLike:
		tps, err := marshalTypeParams(v.TypeParameters)
		if err != nil {
			return nil, err
		}
		params, err := marshalParameters(v.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := MarshalType(v.ReturnType)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("function", v.Span(), v.Doc, struct {
			Name           string          `json:"name"`
			Kind           FunctionKind    `json:"kind"`
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Parameters     []paramDTO      `json:"parameters"`
			ReturnType     json.RawMessage `json:"returnType"`
		}{v.Name, v.Kind, tps, params, ret})

	default:
		return nil, fmt.Errorf("hosttype: %T has no JSON encoding", d)
	}
}

// UnmarshalDeclaration is MarshalDeclaration's inverse.
func UnmarshalDeclaration(raw json.RawMessage) (Declaration, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("hosttype: decode declaration envelope: %w", err)
	}
	db := func(name string) declBase {
		return declBase{base: base{SpanVal: env.Span, Doc: env.Doc}, Name: name}
	}

	switch env.Kind {
	case "class":
		var d struct {
			Name           string            `json:"name"`
			TypeParameters []typeParamDTO    `json:"typeParameters"`
			Members        []json.RawMessage `json:"members"`
			Extends        json.RawMessage   `json:"extends,omitempty"`
			Implements     []json.RawMessage `json:"implements,omitempty"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		tps, err := unmarshalTypeParams(d.TypeParameters)
		if err != nil {
			return nil, err
		}
		members, err := unmarshalMembers(d.Members)
		if err != nil {
			return nil, err
		}
		var extends *TypeReferenceType
		if len(d.Extends) > 0 {
			t, err := UnmarshalType(d.Extends)
			if err != nil {
				return nil, err
			}
			ref, ok := t.(*TypeReferenceType)
			if !ok {
				return nil, fmt.Errorf("hosttype: class extends is not a type reference")
			}
			extends = ref
		}
		implements := make([]*TypeReferenceType, len(d.Implements))
		for i, raw := range d.Implements {
			t, err := UnmarshalType(raw)
			if err != nil {
				return nil, err
			}
			ref, ok := t.(*TypeReferenceType)
			if !ok {
				return nil, fmt.Errorf("hosttype: class implements entry %d is not a type reference", i)
			}
			implements[i] = ref
		}
		return &ClassDeclaration{declBase: db(d.Name), TypeParameters: tps, Members: members, Extends: extends, Implements: implements}, nil

	case "interface":
		var d struct {
			Name           string            `json:"name"`
			TypeParameters []typeParamDTO    `json:"typeParameters"`
			Members        []json.RawMessage `json:"members"`
			Extends        []json.RawMessage `json:"extends,omitempty"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		tps, err := unmarshalTypeParams(d.TypeParameters)
		if err != nil {
			return nil, err
		}
		members, err := unmarshalMembers(d.Members)
		if err != nil {
			return nil, err
		}
		extends := make([]*TypeReferenceType, len(d.Extends))
		for i, raw := range d.Extends {
			t, err := UnmarshalType(raw)
			if err != nil {
				return nil, err
			}
			ref, ok := t.(*TypeReferenceType)
			if !ok {
				return nil, fmt.Errorf("hosttype: interface extends entry %d is not a type reference", i)
			}
			extends[i] = ref
		}
		return &InterfaceDeclaration{declBase: db(d.Name), TypeParameters: tps, Members: members, Extends: extends}, nil

	case "typeAlias":
		var d struct {
			Name           string          `json:"name"`
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Body           json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		tps, err := unmarshalTypeParams(d.TypeParameters)
		if err != nil {
			return nil, err
		}
		body, err := UnmarshalType(d.Body)
		if err != nil {
			return nil, err
		}
		return &TypeAliasDeclaration{declBase: db(d.Name), TypeParameters: tps, Body: body}, nil

	case "enum":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return &EnumDeclaration{declBase: db(d.Name)}, nil

	case "function":
		var d struct {
			Name           string          `json:"name"`
			Kind           FunctionKind    `json:"kind"`
			TypeParameters []typeParamDTO  `json:"typeParameters"`
			Parameters     []paramDTO      `json:"parameters"`
			ReturnType     json.RawMessage `json:"returnType"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		tps, err := unmarshalTypeParams(d.TypeParameters)
		if err != nil {
			return nil, err
		}
		params, err := unmarshalParameters(d.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := UnmarshalType(d.ReturnType)
		if err != nil {
			return nil, err
		}
		return &FunctionLike{declBase: db(d.Name), Kind: d.Kind, TypeParameters: tps, Parameters: params, ReturnType: ret}, nil

	default:
		return nil, fmt.Errorf("hosttype: unknown declaration kind %q", env.Kind)
	}
}
