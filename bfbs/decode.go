package bfbs

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

// Virtual-table slots of the reflection records, as laid out by reflection.fbs.
// Slot N lives at vtable offset 4 + 2*N.
const (
	slotSchemaObjects flatbuffers.VOffsetT = 4
	slotSchemaEnums   flatbuffers.VOffsetT = 6

	slotObjectName            flatbuffers.VOffsetT = 4
	slotObjectFields          flatbuffers.VOffsetT = 6
	slotObjectIsStruct        flatbuffers.VOffsetT = 8
	slotObjectAttributes      flatbuffers.VOffsetT = 14
	slotObjectDocumentation   flatbuffers.VOffsetT = 16
	slotObjectDeclarationFile flatbuffers.VOffsetT = 18

	slotFieldName          flatbuffers.VOffsetT = 4
	slotFieldType          flatbuffers.VOffsetT = 6
	slotFieldDeprecated    flatbuffers.VOffsetT = 16
	slotFieldRequired      flatbuffers.VOffsetT = 18
	slotFieldAttributes    flatbuffers.VOffsetT = 22
	slotFieldDocumentation flatbuffers.VOffsetT = 24

	slotTypeBaseType    flatbuffers.VOffsetT = 4
	slotTypeElement     flatbuffers.VOffsetT = 6
	slotTypeIndex       flatbuffers.VOffsetT = 8
	slotTypeFixedLength flatbuffers.VOffsetT = 10

	slotEnumName            flatbuffers.VOffsetT = 4
	slotEnumValues          flatbuffers.VOffsetT = 6
	slotEnumUnderlyingType  flatbuffers.VOffsetT = 10
	slotEnumAttributes      flatbuffers.VOffsetT = 12
	slotEnumDocumentation   flatbuffers.VOffsetT = 14
	slotEnumDeclarationFile flatbuffers.VOffsetT = 16

	slotEnumValName          flatbuffers.VOffsetT = 4
	slotEnumValUnionType     flatbuffers.VOffsetT = 10
	slotEnumValDocumentation flatbuffers.VOffsetT = 12
	slotEnumValAttributes    flatbuffers.VOffsetT = 14

	slotKeyValueKey   flatbuffers.VOffsetT = 4
	slotKeyValueValue flatbuffers.VOffsetT = 6
)

// HasIdentifier reports whether bs carries the "BFBS" file identifier at the
// standard position.
func HasIdentifier(bs []byte) bool {
	if len(bs) < 8 {
		return false
	}
	return string(bs[4:8]) == FileIdentifier
}

// Decode reads a compiled schema buffer into a Schema. The buffer's file
// identifier is checked first; the records themselves are trusted to be well
// formed, since they come straight from flatc.
func Decode(bs []byte) (*Schema, error) {
	if len(bs) < 8 {
		return nil, errors.Errorf("bfbs.Decode error: buffer too short to be a compiled schema (%d bytes)", len(bs))
	}
	if !HasIdentifier(bs) {
		return nil, errors.Errorf("bfbs.Decode error: expected file identifier `%s`, got `%s` instead", FileIdentifier, string(bs[4:8]))
	}
	root := flatbuffers.Table{Bytes: bs, Pos: flatbuffers.GetUOffsetT(bs)}
	schema := Schema{
		Objects: decodeTables(root, slotSchemaObjects, decodeObject),
		Enums:   decodeTables(root, slotSchemaEnums, decodeEnum),
	}
	return &schema, nil
}

func decodeObject(t flatbuffers.Table) Object {
	return Object{
		Name:            stringSlot(t, slotObjectName),
		Fields:          decodeTables(t, slotObjectFields, decodeField),
		IsStruct:        t.GetBoolSlot(slotObjectIsStruct, false),
		Attributes:      decodeTables(t, slotObjectAttributes, decodeKeyValue),
		Documentation:   stringVectorSlot(t, slotObjectDocumentation),
		DeclarationFile: stringPtrSlot(t, slotObjectDeclarationFile),
	}
}

func decodeField(t flatbuffers.Table) Field {
	field := Field{
		Name:          stringSlot(t, slotFieldName),
		Deprecated:    t.GetBoolSlot(slotFieldDeprecated, false),
		Required:      t.GetBoolSlot(slotFieldRequired, false),
		Attributes:    decodeTables(t, slotFieldAttributes, decodeKeyValue),
		Documentation: stringVectorSlot(t, slotFieldDocumentation),
	}
	if typ, ok := tableSlot(t, slotFieldType); ok {
		field.Type = decodeType(typ)
	}
	return field
}

func decodeType(t flatbuffers.Table) Type {
	return Type{
		BaseType:    BaseType(t.GetInt8Slot(slotTypeBaseType, 0)),
		Element:     BaseType(t.GetInt8Slot(slotTypeElement, 0)),
		Index:       t.GetInt32Slot(slotTypeIndex, -1),
		FixedLength: t.GetUint16Slot(slotTypeFixedLength, 0),
	}
}

func decodeEnum(t flatbuffers.Table) Enum {
	enum := Enum{
		Name:            stringSlot(t, slotEnumName),
		Values:          decodeTables(t, slotEnumValues, decodeEnumVal),
		Attributes:      decodeTables(t, slotEnumAttributes, decodeKeyValue),
		Documentation:   stringVectorSlot(t, slotEnumDocumentation),
		DeclarationFile: stringPtrSlot(t, slotEnumDeclarationFile),
	}
	if typ, ok := tableSlot(t, slotEnumUnderlyingType); ok {
		enum.UnderlyingType = decodeType(typ)
	}
	return enum
}

func decodeEnumVal(t flatbuffers.Table) EnumVal {
	value := EnumVal{
		Name:          stringSlot(t, slotEnumValName),
		Documentation: stringVectorSlot(t, slotEnumValDocumentation),
		Attributes:    decodeTables(t, slotEnumValAttributes, decodeKeyValue),
	}
	if typ, ok := tableSlot(t, slotEnumValUnionType); ok {
		unionType := decodeType(typ)
		value.UnionType = &unionType
	}
	return value
}

func decodeKeyValue(t flatbuffers.Table) KeyValue {
	return KeyValue{
		Key:   stringSlot(t, slotKeyValueKey),
		Value: stringPtrSlot(t, slotKeyValueValue),
	}
}

// tableSlot resolves a table-valued slot, reporting whether it is present.
func tableSlot(t flatbuffers.Table, slot flatbuffers.VOffsetT) (flatbuffers.Table, bool) {
	o := flatbuffers.UOffsetT(t.Offset(slot))
	if o == 0 {
		return flatbuffers.Table{}, false
	}
	return flatbuffers.Table{Bytes: t.Bytes, Pos: t.Indirect(o + t.Pos)}, true
}

// decodeTables decodes a vector-of-tables slot through decodeOne. A missing
// slot decodes as nil.
func decodeTables[T any](t flatbuffers.Table, slot flatbuffers.VOffsetT, decodeOne func(flatbuffers.Table) T) []T {
	o := flatbuffers.UOffsetT(t.Offset(slot))
	if o == 0 {
		return nil
	}
	n := t.VectorLen(o)
	start := t.Vector(o)
	results := make([]T, 0, n)
	for j := 0; j < n; j++ {
		pos := t.Indirect(start + flatbuffers.UOffsetT(j*flatbuffers.SizeUOffsetT))
		results = append(
			results,
			decodeOne(flatbuffers.Table{Bytes: t.Bytes, Pos: pos}),
		)
	}
	return results
}

func stringSlot(t flatbuffers.Table, slot flatbuffers.VOffsetT) string {
	o := flatbuffers.UOffsetT(t.Offset(slot))
	if o == 0 {
		return ""
	}
	return t.String(o + t.Pos)
}

func stringPtrSlot(t flatbuffers.Table, slot flatbuffers.VOffsetT) *string {
	o := flatbuffers.UOffsetT(t.Offset(slot))
	if o == 0 {
		return nil
	}
	s := t.String(o + t.Pos)
	return &s
}

func stringVectorSlot(t flatbuffers.Table, slot flatbuffers.VOffsetT) []string {
	o := flatbuffers.UOffsetT(t.Offset(slot))
	if o == 0 {
		return nil
	}
	n := t.VectorLen(o)
	start := t.Vector(o)
	results := make([]string, 0, n)
	for j := 0; j < n; j++ {
		results = append(
			results,
			t.String(start+flatbuffers.UOffsetT(j*flatbuffers.SizeUOffsetT)),
		)
	}
	return results
}
