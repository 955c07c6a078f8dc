// Package bfbstest builds compiled schema buffers in memory, so tests can
// exercise the reader and the semantic pass on real bytes without shelling
// out to flatc.
package bfbstest

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"retypegen/bfbs"
)

// Build encodes schema into the byte layout flatc emits for .bfbs files,
// file identifier included.
func Build(schema bfbs.Schema) []byte {
	b := flatbuffers.NewBuilder(1024)

	objects := buildTables(b, schema.Objects, buildObject)
	enums := buildTables(b, schema.Enums, buildEnum)

	b.StartObject(8)
	b.PrependUOffsetTSlot(0, objects, 0)
	b.PrependUOffsetTSlot(1, enums, 0)
	root := b.EndObject()
	b.FinishWithFileIdentifier(root, []byte(bfbs.FileIdentifier))
	return b.FinishedBytes()
}

func buildObject(b *flatbuffers.Builder, object bfbs.Object) flatbuffers.UOffsetT {
	name := b.CreateString(object.Name)
	fields := buildTables(b, object.Fields, buildField)
	attributes := buildTables(b, object.Attributes, buildKeyValue)
	documentation := buildStrings(b, object.Documentation)
	declarationFile := buildStringPtr(b, object.DeclarationFile)

	b.StartObject(8)
	b.PrependUOffsetTSlot(0, name, 0)
	b.PrependUOffsetTSlot(1, fields, 0)
	b.PrependBoolSlot(2, object.IsStruct, false)
	b.PrependUOffsetTSlot(5, attributes, 0)
	b.PrependUOffsetTSlot(6, documentation, 0)
	b.PrependUOffsetTSlot(7, declarationFile, 0)
	return b.EndObject()
}

func buildField(b *flatbuffers.Builder, field bfbs.Field) flatbuffers.UOffsetT {
	name := b.CreateString(field.Name)
	typ := buildType(b, field.Type)
	attributes := buildTables(b, field.Attributes, buildKeyValue)
	documentation := buildStrings(b, field.Documentation)

	b.StartObject(14)
	b.PrependUOffsetTSlot(0, name, 0)
	b.PrependUOffsetTSlot(1, typ, 0)
	b.PrependBoolSlot(6, field.Deprecated, false)
	b.PrependBoolSlot(7, field.Required, false)
	b.PrependUOffsetTSlot(9, attributes, 0)
	b.PrependUOffsetTSlot(10, documentation, 0)
	return b.EndObject()
}

func buildType(b *flatbuffers.Builder, typ bfbs.Type) flatbuffers.UOffsetT {
	b.StartObject(6)
	b.PrependInt8Slot(0, int8(typ.BaseType), 0)
	b.PrependInt8Slot(1, int8(typ.Element), 0)
	b.PrependInt32Slot(2, typ.Index, -1)
	b.PrependUint16Slot(3, typ.FixedLength, 0)
	return b.EndObject()
}

func buildEnum(b *flatbuffers.Builder, enum bfbs.Enum) flatbuffers.UOffsetT {
	name := b.CreateString(enum.Name)
	values := buildTables(b, enum.Values, buildEnumVal)
	underlyingType := buildType(b, enum.UnderlyingType)
	attributes := buildTables(b, enum.Attributes, buildKeyValue)
	documentation := buildStrings(b, enum.Documentation)
	declarationFile := buildStringPtr(b, enum.DeclarationFile)

	b.StartObject(7)
	b.PrependUOffsetTSlot(0, name, 0)
	b.PrependUOffsetTSlot(1, values, 0)
	b.PrependUOffsetTSlot(3, underlyingType, 0)
	b.PrependUOffsetTSlot(4, attributes, 0)
	b.PrependUOffsetTSlot(5, documentation, 0)
	b.PrependUOffsetTSlot(6, declarationFile, 0)
	return b.EndObject()
}

func buildEnumVal(b *flatbuffers.Builder, value bfbs.EnumVal) flatbuffers.UOffsetT {
	name := b.CreateString(value.Name)
	var unionType flatbuffers.UOffsetT
	if value.UnionType != nil {
		unionType = buildType(b, *value.UnionType)
	}
	documentation := buildStrings(b, value.Documentation)
	attributes := buildTables(b, value.Attributes, buildKeyValue)

	b.StartObject(6)
	b.PrependUOffsetTSlot(0, name, 0)
	b.PrependUOffsetTSlot(3, unionType, 0)
	b.PrependUOffsetTSlot(4, documentation, 0)
	b.PrependUOffsetTSlot(5, attributes, 0)
	return b.EndObject()
}

func buildKeyValue(b *flatbuffers.Builder, kv bfbs.KeyValue) flatbuffers.UOffsetT {
	key := b.CreateString(kv.Key)
	value := buildStringPtr(b, kv.Value)

	b.StartObject(2)
	b.PrependUOffsetTSlot(0, key, 0)
	b.PrependUOffsetTSlot(1, value, 0)
	return b.EndObject()
}

func buildTables[T any](
	b *flatbuffers.Builder,
	items []T,
	buildOne func(*flatbuffers.Builder, T) flatbuffers.UOffsetT,
) flatbuffers.UOffsetT {
	if len(items) == 0 {
		return 0
	}
	offsets := make([]flatbuffers.UOffsetT, 0, len(items))
	for _, item := range items {
		offsets = append(offsets, buildOne(b, item))
	}
	return buildVector(b, offsets)
}

func buildStrings(b *flatbuffers.Builder, ss []string) flatbuffers.UOffsetT {
	if len(ss) == 0 {
		return 0
	}
	offsets := make([]flatbuffers.UOffsetT, 0, len(ss))
	for _, s := range ss {
		offsets = append(offsets, b.CreateString(s))
	}
	return buildVector(b, offsets)
}

func buildStringPtr(b *flatbuffers.Builder, s *string) flatbuffers.UOffsetT {
	if s == nil {
		return 0
	}
	return b.CreateString(*s)
}

// Offsets are prepended in reverse so the vector reads back in items order.
func buildVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeUOffsetT, len(offsets), flatbuffers.SizeUOffsetT)
	for j := len(offsets) - 1; j >= 0; j-- {
		b.PrependUOffsetT(offsets[j])
	}
	return b.EndVector(len(offsets))
}
