// Package descriptor exports a class or interface declaration's own
// member list as a protobuf *desc.MessageDescriptor, built purely
// in-memory via jhump/protoreflect's builder API (no .proto files, no
// protoc). It independently re-derives a protobuf-shaped schema from
// the same structural member list the type-to-bytecode walker already
// collects, giving a concrete RPC-marshalling export path distinct from
// (and never decoding) the bytecode program itself.
package descriptor

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/builder"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/timvandam/deepkit-framework/pkg/hosttype"
)

// Export builds a MessageDescriptor for d's own member list. Only
// class and interface declarations carry a member list; anything else
// is rejected outright rather than degrading silently, since a caller
// asking to export a non-structural declaration is a programmer error,
// not an unresolved-reference condition.
func Export(d hosttype.Declaration) (*desc.MessageDescriptor, error) {
	name := hosttype.DeclName(d)
	if name == "" {
		name = "Anonymous"
	}
	members, err := membersOf(d)
	if err != nil {
		return nil, err
	}

	mb := builder.NewMessage(name)
	number := int32(1)
	seen := map[string]bool{}
	for _, m := range members {
		key := memberExportKey(m)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		fb, err := fieldBuilderFor(m, number)
		if err != nil {
			return nil, fmt.Errorf("descriptor: field %s: %w", key, err)
		}
		mb.AddField(fb)
		number++
	}

	md, err := mb.Build()
	if err != nil {
		return nil, fmt.Errorf("descriptor: build %s: %w", name, err)
	}
	return md, nil
}

func membersOf(d hosttype.Declaration) ([]hosttype.Member, error) {
	switch dd := d.(type) {
	case *hosttype.ClassDeclaration:
		return dd.Members, nil
	case *hosttype.InterfaceDeclaration:
		return dd.Members, nil
	default:
		return nil, fmt.Errorf("descriptor: %T has no exportable member list", d)
	}
}

func memberExportKey(m hosttype.Member) string {
	if _, ok := m.(*hosttype.IndexSignatureMember); ok {
		return ""
	}
	return hosttype.MemberName(m)
}

// fieldBuilderFor maps one member to a protobuf field. Method members
// get an opaque string field named after the method; properties get a
// typed field, even when their type does not map onto a
// scalar — such members fall back to an opaque JSON-string field (see
// scalarType) so no property is silently dropped from the export.
func fieldBuilderFor(m hosttype.Member, number int32) (*builder.FieldBuilder, error) {
	prop, ok := m.(*hosttype.PropertyMember)
	if !ok {
		return builder.NewField(hosttype.MemberName(m), builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING)).SetNumber(number), nil
	}

	if arr, ok := prop.Type.(*hosttype.ArrayType); ok {
		ft, scalar := scalarType(arr.Element)
		fb := builder.NewField(prop.Name, ft).SetNumber(number).SetRepeated()
		if !scalar {
			// Element has no precise scalar mapping; still exported as a
			// repeated opaque JSON-string field.
		}
		return fb, nil
	}

	ft, _ := scalarType(prop.Type)
	return builder.NewField(prop.Name, ft).SetNumber(number), nil
}

// scalarType maps a hosttype.Type onto the closest protobuf scalar.
// ok is false when no precise mapping exists (type references, unions,
// object literals, function types, ...); the caller still gets a usable
// field type (an opaque JSON string), just not a precise one.
func scalarType(t hosttype.Type) (*builder.FieldType, bool) {
	prim, ok := t.(*hosttype.PrimitiveType)
	if !ok {
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING), false
	}
	switch prim.Kind {
	case hosttype.PrimitiveString:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING), true
	case hosttype.PrimitiveNumber:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_DOUBLE), true
	case hosttype.PrimitiveBoolean:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_BOOL), true
	case hosttype.PrimitiveBigInt:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_INT64), true
	default:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING), false
	}
}
