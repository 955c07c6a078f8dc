// Package bfbs reads compiled FlatBuffers schemas (.bfbs files, the output of
// `flatc --schema --binary`) into plain Go structs. Only the reflection
// records needed by the semantic pass are decoded; everything else in the
// buffer is ignored.
package bfbs

import (
	"fmt"
)

type (
	// Schema is the root record of a reflection buffer.
	Schema struct {
		Objects []Object `json:"objects"`
		Enums   []Enum   `json:"enums"`
	}

	// Object is a raw table or struct definition.
	Object struct {
		Name string `json:"name"`
		// Fields come in the buffer's own order; any meaningful ordering is
		// applied later from the `order` attribute.
		Fields []Field `json:"fields"`
		// IsStruct is set for fixed-layout definitions (IDL `struct`, as
		// opposed to `table`).
		IsStruct        bool       `json:"is_struct"`
		Attributes      []KeyValue `json:"attributes"`
		Documentation   []string   `json:"documentation"`
		DeclarationFile *string    `json:"declaration_file,omitempty"`
	}

	// Field is a raw struct member.
	Field struct {
		Name          string     `json:"name"`
		Type          Type       `json:"type"`
		Deprecated    bool       `json:"deprecated"`
		Required      bool       `json:"required"`
		Attributes    []KeyValue `json:"attributes"`
		Documentation []string   `json:"documentation"`
	}

	// Type is the raw storage shape of a field or enum.
	Type struct {
		BaseType BaseType `json:"base_type"`
		// Element is the element tag of vector/array base types.
		Element BaseType `json:"element"`
		// Index points into Schema.Objects or Schema.Enums for object-,
		// union- and enum-typed fields; -1 otherwise.
		Index       int32  `json:"index"`
		FixedLength uint16 `json:"fixed_length"`
	}

	// Enum is a raw enum or union definition. Unions are represented as enums
	// whose underlying type carries the UType tag and whose values carry a
	// payload type each.
	Enum struct {
		Name            string     `json:"name"`
		Values          []EnumVal  `json:"values"`
		UnderlyingType  Type       `json:"underlying_type"`
		Attributes      []KeyValue `json:"attributes"`
		Documentation   []string   `json:"documentation"`
		DeclarationFile *string    `json:"declaration_file,omitempty"`
	}

	// EnumVal is a raw enum value or union arm. UnionType is nil for plain
	// enum values; union arms carry it, including the synthetic NONE arm
	// (recognizable by its BaseTypeNone tag).
	EnumVal struct {
		Name          string     `json:"name"`
		UnionType     *Type      `json:"union_type,omitempty"`
		Documentation []string   `json:"documentation"`
		Attributes    []KeyValue `json:"attributes"`
	}

	// KeyValue is one raw attribute. A nil Value means the attribute was
	// declared without one.
	KeyValue struct {
		Key   string  `json:"key"`
		Value *string `json:"value,omitempty"`
	}
)

// BaseType enumerates the raw type tags of the reflection format.
type BaseType int8

const (
	BaseTypeNone BaseType = iota
	BaseTypeUType
	BaseTypeBool
	BaseTypeByte
	BaseTypeUByte
	BaseTypeShort
	BaseTypeUShort
	BaseTypeInt
	BaseTypeUInt
	BaseTypeLong
	BaseTypeULong
	BaseTypeFloat
	BaseTypeDouble
	BaseTypeString
	BaseTypeVector
	BaseTypeObj
	BaseTypeUnion
	BaseTypeArray
	BaseTypeVector64
)

var baseTypeNames = map[BaseType]string{
	BaseTypeNone:     "None",
	BaseTypeUType:    "UType",
	BaseTypeBool:     "Bool",
	BaseTypeByte:     "Byte",
	BaseTypeUByte:    "UByte",
	BaseTypeShort:    "Short",
	BaseTypeUShort:   "UShort",
	BaseTypeInt:      "Int",
	BaseTypeUInt:     "UInt",
	BaseTypeLong:     "Long",
	BaseTypeULong:    "ULong",
	BaseTypeFloat:    "Float",
	BaseTypeDouble:   "Double",
	BaseTypeString:   "String",
	BaseTypeVector:   "Vector",
	BaseTypeObj:      "Obj",
	BaseTypeUnion:    "Union",
	BaseTypeArray:    "Array",
	BaseTypeVector64: "Vector64",
}

func (b BaseType) String() string {
	name, ok := baseTypeNames[b]
	if !ok {
		return fmt.Sprintf("BaseType(%d)", int8(b))
	}
	return name
}

// FileIdentifier is the four-byte identifier flatc stamps into every compiled
// schema buffer.
const FileIdentifier = "BFBS"
