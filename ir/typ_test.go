package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retypegen/bfbs"
	"retypegen/bfbs/bfbstest"
)

func TestResolveTypeScalars(t *testing.T) {
	schema := &bfbs.Schema{}
	// Widths and signedness carry over exactly, with no widening.
	expectedKinds := map[bfbs.BaseType]TypeKind{
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
	for base, expected := range expectedKinds {
		typ, err := resolveType(schema, "owner", bfbstest.Scalar(base))
		require.NoError(t, err)
		assert.Equal(t, Type{Kind: expected}, typ)
	}
}

func TestResolveTypeReferences(t *testing.T) {
	schema := &bfbs.Schema{
		Objects: []bfbs.Object{
			{Name: "rerun.datatypes.Vec2D"},
			{Name: "fbs.scalars.Float32"},
		},
		Enums: []bfbs.Enum{
			{Name: "rerun.datatypes.Transform"},
		},
	}

	{
		typ, err := resolveType(schema, "owner", bfbstest.Obj(0))
		require.NoError(t, err)
		assert.Equal(t, Type{Kind: TypeKindObject, FQName: "rerun.datatypes.Vec2D"}, typ)
	}
	{
		// A reference to the wrapper collapses into the scalar it wraps.
		typ, err := resolveType(schema, "owner", bfbstest.Obj(1))
		require.NoError(t, err)
		assert.Equal(t, Type{Kind: TypeKindFloat32}, typ)
	}
	{
		// Unions resolve by name like any other object.
		typ, err := resolveType(schema, "owner", bfbstest.Union(0))
		require.NoError(t, err)
		assert.Equal(t, Type{Kind: TypeKindObject, FQName: "rerun.datatypes.Transform"}, typ)
	}
}

func TestResolveTypeContainers(t *testing.T) {
	schema := &bfbs.Schema{
		Objects: []bfbs.Object{
			{Name: "fbs.scalars.Float32"},
			{Name: "rerun.datatypes.Vec2D"},
		},
	}

	{
		typ, err := resolveType(schema, "owner", bfbstest.ArrayOf(bfbs.BaseTypeFloat, -1, 4))
		require.NoError(t, err)
		assert.Equal(
			t,
			Type{Kind: TypeKindArray, Elem: &ElementType{Kind: TypeKindFloat32}, Length: 4},
			typ,
		)
	}
	{
		// vector<fbs.scalars.Float32> reads back as a vector of plain floats,
		// with the wrapper invisible.
		typ, err := resolveType(schema, "owner", bfbstest.VectorOf(bfbs.BaseTypeObj, 0))
		require.NoError(t, err)
		assert.Equal(
			t,
			Type{Kind: TypeKindVector, Elem: &ElementType{Kind: TypeKindFloat32}},
			typ,
		)
	}
	{
		typ, err := resolveType(schema, "owner", bfbstest.VectorOf(bfbs.BaseTypeObj, 1))
		require.NoError(t, err)
		assert.Equal(
			t,
			Type{Kind: TypeKindVector, Elem: &ElementType{Kind: TypeKindObject, FQName: "rerun.datatypes.Vec2D"}},
			typ,
		)
	}
}

func TestResolveTypeRejections(t *testing.T) {
	schema := &bfbs.Schema{
		Objects: []bfbs.Object{
			{Name: "fbs.scalars.Matrix3x3"},
		},
	}

	{
		_, err := resolveType(schema, "owner", bfbstest.UType(-1))
		malformed := ErrMalformedDeclaration{}
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "owner", malformed.FQName)
		assert.Contains(t, err.Error(), "UType")
	}
	{
		_, err := resolveType(schema, "owner", bfbstest.Scalar(bfbs.BaseTypeNone))
		malformed := ErrMalformedDeclaration{}
		require.ErrorAs(t, err, &malformed)
	}
	{
		// Only the float wrapper is recognized.
		_, err := resolveType(schema, "owner", bfbstest.Obj(0))
		malformed := ErrMalformedDeclaration{}
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "fbs.scalars.Matrix3x3", malformed.FQName)
		assert.Contains(t, err.Error(), "unrecognized scalar wrapper")
	}
	{
		// Containers cannot nest directly.
		_, err := resolveType(schema, "owner", bfbstest.VectorOf(bfbs.BaseTypeVector, -1))
		malformed := ErrMalformedDeclaration{}
		require.ErrorAs(t, err, &malformed)
	}
	{
		// Neither can a container hold a bare union.
		_, err := resolveType(schema, "owner", bfbstest.VectorOf(bfbs.BaseTypeUnion, -1))
		malformed := ErrMalformedDeclaration{}
		require.ErrorAs(t, err, &malformed)
	}
}

func TestResolveElementType(t *testing.T) {
	schema := &bfbs.Schema{}

	{
		elem, err := resolveElementType(schema, "owner", bfbs.BaseTypeUByte, -1)
		require.NoError(t, err)
		assert.Equal(t, ElementType{Kind: TypeKindUInt8}, elem)
	}
	{
		elem, err := resolveElementType(schema, "owner", bfbs.BaseTypeString, -1)
		require.NoError(t, err)
		assert.Equal(t, ElementType{Kind: TypeKindString}, elem)
	}
	{
		_, err := resolveElementType(schema, "owner", bfbs.BaseTypeUType, -1)
		malformed := ErrMalformedDeclaration{}
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "owner", malformed.FQName)
	}
}
