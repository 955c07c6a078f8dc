package ir

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"retypegen/bfbs"
)

type (
	// TypeKind tags the variant a Type or ElementType holds.
	TypeKind string

	// Type is the resolved storage shape of one field.
	Type struct {
		Kind TypeKind `json:"kind"`
		// Elem is set for array and vector kinds only.
		Elem *ElementType `json:"elem,omitempty"`
		// Length is the element count of array kinds.
		Length int `json:"length,omitempty"`
		// FQName names the target definition of object kinds. References stay
		// names instead of links, so mutually recursive schemas resolve in a
		// single pass.
		FQName string `json:"fqname,omitempty"`
	}

	// ElementType is the element of an array or vector. Element positions
	// admit scalars, strings and object references only; nesting a container
	// in a container goes through a named struct.
	ElementType struct {
		Kind   TypeKind `json:"kind"`
		FQName string   `json:"fqname,omitempty"`
	}
)

const (
	TypeKindUInt8   = TypeKind("uint8")
	TypeKindUInt16  = TypeKind("uint16")
	TypeKindUInt32  = TypeKind("uint32")
	TypeKindUInt64  = TypeKind("uint64")
	TypeKindInt8    = TypeKind("int8")
	TypeKindInt16   = TypeKind("int16")
	TypeKindInt32   = TypeKind("int32")
	TypeKindInt64   = TypeKind("int64")
	TypeKindBool    = TypeKind("bool")
	TypeKindFloat16 = TypeKind("float16")
	TypeKindFloat32 = TypeKind("float32")
	TypeKindFloat64 = TypeKind("float64")
	TypeKindString  = TypeKind("string")
	TypeKindArray   = TypeKind("array")
	TypeKindVector  = TypeKind("vector")
	TypeKindObject  = TypeKind("object")
)

var scalarKinds = map[bfbs.BaseType]TypeKind{
	bfbs.BaseTypeBool:   TypeKindBool,
	bfbs.BaseTypeByte:   TypeKindInt8,
	bfbs.BaseTypeUByte:  TypeKindUInt8,
	bfbs.BaseTypeShort:  TypeKindInt16,
	bfbs.BaseTypeUShort: TypeKindUInt16,
	bfbs.BaseTypeInt:    TypeKindInt32,
	bfbs.BaseTypeUInt:   TypeKindUInt32,
	bfbs.BaseTypeLong:   TypeKindInt64,
	bfbs.BaseTypeULong:  TypeKindUInt64,
	bfbs.BaseTypeFloat:  TypeKindFloat32,
	bfbs.BaseTypeDouble: TypeKindFloat64,
	bfbs.BaseTypeString: TypeKindString,
}

// ScalarWrapperPrefix marks the synthetic single-field structs schema authors
// must write to get container-of-scalar semantics out of the IDL. Wrapper
// objects never become definitions of their own; references to them collapse
// back to the wrapped scalar.
const ScalarWrapperPrefix = "fbs.scalars."

var scalarWrappers = map[string]TypeKind{
	"fbs.scalars.Float32": TypeKindFloat32,
}

// flattenScalarWrapper resolves a referenced object to either the scalar its
// wrapper stands for or a by-name object reference.
func flattenScalarWrapper(target bfbs.Object) (ElementType, error) {
	if !strings.HasPrefix(target.Name, ScalarWrapperPrefix) {
		return ElementType{Kind: TypeKindObject, FQName: target.Name}, nil
	}
	kind, ok := scalarWrappers[target.Name]
	if !ok {
		return ElementType{}, ErrMalformedDeclaration{
			FQName: target.Name,
			Reason: "unrecognized scalar wrapper",
		}
	}
	return ElementType{Kind: kind}, nil
}

// resolveType maps the raw storage type of a field of owner into the model.
// UType and None tags never reach this point: the object and enum resolvers
// drop the raw entries carrying them beforehand.
func resolveType(schema *bfbs.Schema, owner string, typ bfbs.Type) (Type, error) {
	if kind, ok := scalarKinds[typ.BaseType]; ok {
		return Type{Kind: kind}, nil
	}
	switch typ.BaseType {
	case bfbs.BaseTypeObj:
		elem, err := flattenScalarWrapper(schema.Objects[typ.Index])
		if err != nil {
			err := errors.Wrapf(err, "ir.resolveType error resolving a field of `%s`", owner)
			return Type{}, err
		}
		return Type{Kind: elem.Kind, FQName: elem.FQName}, nil
	case bfbs.BaseTypeUnion:
		return Type{Kind: TypeKindObject, FQName: schema.Enums[typ.Index].Name}, nil
	case bfbs.BaseTypeArray:
		elem, err := resolveElementType(schema, owner, typ.Element, typ.Index)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: TypeKindArray, Elem: &elem, Length: int(typ.FixedLength)}, nil
	case bfbs.BaseTypeVector:
		elem, err := resolveElementType(schema, owner, typ.Element, typ.Index)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: TypeKindVector, Elem: &elem}, nil
	default:
		return Type{}, ErrMalformedDeclaration{
			FQName: owner,
			Reason: fmt.Sprintf("unsupported base type %s", typ.BaseType),
		}
	}
}

// resolveElementType maps the element tag of a container or the underlying
// type of a scalar enum. Container and union tags are rejected here: the IDL
// cannot express container-of-container or container-of-union directly.
func resolveElementType(schema *bfbs.Schema, owner string, element bfbs.BaseType, index int32) (ElementType, error) {
	if kind, ok := scalarKinds[element]; ok {
		return ElementType{Kind: kind}, nil
	}
	if element == bfbs.BaseTypeObj {
		elem, err := flattenScalarWrapper(schema.Objects[index])
		if err != nil {
			err := errors.Wrapf(err, "ir.resolveElementType error resolving an element of `%s`", owner)
			return ElementType{}, err
		}
		return elem, nil
	}
	return ElementType{}, ErrMalformedDeclaration{
		FQName: owner,
		Reason: fmt.Sprintf("unsupported element type %s", element),
	}
}
