package bfbstest

import (
	"retypegen/bfbs"
)

// Scalar returns the storage type of a plain scalar or string field.
func Scalar(base bfbs.BaseType) bfbs.Type {
	return bfbs.Type{BaseType: base, Index: -1}
}

// Obj returns the storage type of a field holding the object at index.
func Obj(index int32) bfbs.Type {
	return bfbs.Type{BaseType: bfbs.BaseTypeObj, Index: index}
}

// Union returns the storage type of a field or arm backed by the union enum
// at index.
func Union(index int32) bfbs.Type {
	return bfbs.Type{BaseType: bfbs.BaseTypeUnion, Index: index}
}

// UType returns the underlying type flatc records for union enums.
func UType(index int32) bfbs.Type {
	return bfbs.Type{BaseType: bfbs.BaseTypeUType, Index: index}
}

// VectorOf returns the storage type of a vector field. index is the target
// of object- or enum-element vectors, -1 otherwise.
func VectorOf(element bfbs.BaseType, index int32) bfbs.Type {
	return bfbs.Type{BaseType: bfbs.BaseTypeVector, Element: element, Index: index}
}

// ArrayOf returns the storage type of a fixed-size array field.
func ArrayOf(element bfbs.BaseType, index int32, length uint16) bfbs.Type {
	return bfbs.Type{BaseType: bfbs.BaseTypeArray, Element: element, Index: index, FixedLength: length}
}

// UnionArm returns an enum value carrying a payload type, the shape flatc
// gives each member of a union.
func UnionArm(name string, typ bfbs.Type) bfbs.EnumVal {
	return bfbs.EnumVal{Name: name, UnionType: &typ}
}

// StringAttr returns an attribute carrying a value.
func StringAttr(key, value string) bfbs.KeyValue {
	return bfbs.KeyValue{Key: key, Value: &value}
}

// FlagAttr returns an attribute declared without a value.
func FlagAttr(key string) bfbs.KeyValue {
	return bfbs.KeyValue{Key: key}
}
