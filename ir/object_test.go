package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retypegen/bfbs"
	"retypegen/bfbs/bfbstest"
)

func strPtr(s string) *string {
	return &s
}

func TestObjectKindFromPkgName(t *testing.T) {
	expectedKinds := map[string]ObjectKind{
		"rerun.datatypes":  ObjectKindDatatype,
		"rerun.components": ObjectKindComponent,
		"rerun.archetypes": ObjectKindArchetype,
	}
	for pkgName, expected := range expectedKinds {
		kind, err := ObjectKindFromPkgName(pkgName)
		require.NoError(t, err)
		assert.Equal(t, expected, kind)
	}

	_, err := ObjectKindFromPkgName("rerun.widgets")
	unknown := ErrUnknownPackage{}
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, `unknown package "rerun.widgets"`, err.Error())
}

func TestSplitFQName(t *testing.T) {
	{
		pkgName, name := splitFQName("rerun.components.Point2D")
		assert.Equal(t, "rerun.components", pkgName)
		assert.Equal(t, "Point2D", name)
	}
	{
		pkgName, name := splitFQName("Point2D")
		assert.Equal(t, "", pkgName)
		assert.Equal(t, "Point2D", name)
	}
}

func TestObjectFromRawObject(t *testing.T) {
	schema := &bfbs.Schema{
		Objects: []bfbs.Object{
			{
				Name:            "rerun.archetypes.Points",
				DeclarationFile: strPtr("//archetypes/points.fbs"),
				Documentation:   []string{" A batch of points.", ` \py Backed by numpy arrays.`},
				Attributes:      []bfbs.KeyValue{bfbstest.StringAttr("order", "2")},
				Fields: []bfbs.Field{
					{
						Name:       "colors",
						Type:       bfbstest.VectorOf(bfbs.BaseTypeUInt, -1),
						Attributes: []bfbs.KeyValue{bfbstest.StringAttr("order", "200")},
					},
					{
						Name: "shape_type",
						Type: bfbstest.UType(0),
					},
					{
						Name:       "shape",
						Type:       bfbstest.Union(0),
						Attributes: []bfbs.KeyValue{bfbstest.StringAttr("order", "100")},
					},
				},
			},
		},
		Enums: []bfbs.Enum{
			{Name: "rerun.datatypes.Shape"},
		},
	}

	object, err := objectFromRawObject(schema, schema.Objects[0])

	require.NoError(t, err)
	assert.Equal(t, "rerun.archetypes.Points", object.FQName)
	assert.Equal(t, "rerun.archetypes", object.PkgName)
	assert.Equal(t, "Points", object.Name)
	assert.Equal(t, ObjectKindArchetype, object.Kind)
	assert.Equal(t, "//archetypes/points.fbs", object.Filepath)
	assert.Equal(t, uint32(2), object.Order())
	assert.True(t, object.IsStruct())
	assert.False(t, object.IsEnum())
	assert.False(t, object.IsUnion())
	assert.Equal(t, []string{" A batch of points."}, object.Docs.Doc)
	assert.Equal(t, map[string][]string{"py": {" Backed by numpy arrays."}}, object.Docs.TaggedDocs)

	// The discriminant entry disappears; the remaining fields sort by order.
	require.Len(t, object.Fields, 2)
	assert.Equal(t, "shape", object.Fields[0].Name)
	assert.Equal(t, "colors", object.Fields[1].Name)
	assert.Equal(t, Type{Kind: TypeKindObject, FQName: "rerun.datatypes.Shape"}, object.Fields[0].Type)
}

func TestObjectFromRawObjectMissingDeclarationFile(t *testing.T) {
	raw := bfbs.Object{
		Name:       "rerun.components.Point2D",
		Attributes: []bfbs.KeyValue{bfbstest.StringAttr("order", "1")},
	}

	_, err := objectFromRawObject(&bfbs.Schema{}, raw)

	malformed := ErrMalformedDeclaration{}
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "no declaration_file found for `rerun.components.Point2D`", err.Error())
}

func TestObjectFromRawObjectMissingOrder(t *testing.T) {
	raw := bfbs.Object{
		Name:            "rerun.components.Point2D",
		DeclarationFile: strPtr("//components/point2d.fbs"),
	}

	_, err := objectFromRawObject(&bfbs.Schema{}, raw)

	missing := ErrMissingAttribute{}
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "rerun.components.Point2D", missing.Owner)
	assert.Equal(t, AttrOrder, missing.Name)
}

func TestObjectFromRawEnumUnion(t *testing.T) {
	schema := &bfbs.Schema{
		Objects: []bfbs.Object{
			{Name: "rerun.datatypes.Rect2D"},
			{Name: "rerun.datatypes.Circle"},
		},
		Enums: []bfbs.Enum{
			{
				Name:            "rerun.datatypes.Shape",
				DeclarationFile: strPtr("//datatypes/shape.fbs"),
				Attributes:      []bfbs.KeyValue{bfbstest.StringAttr("order", "5")},
				UnderlyingType:  bfbstest.UType(0),
				Values: []bfbs.EnumVal{
					bfbstest.UnionArm("NONE", bfbstest.Scalar(bfbs.BaseTypeNone)),
					bfbstest.UnionArm("Rect2D", bfbstest.Obj(0)),
					bfbstest.UnionArm("Circle", bfbstest.Obj(1)),
				},
			},
		},
	}

	object, err := objectFromRawEnum(schema, schema.Enums[0])

	require.NoError(t, err)
	assert.True(t, object.IsUnion())
	assert.False(t, object.IsEnum())
	assert.False(t, object.IsStruct())
	require.NotNil(t, object.Union)
	assert.Nil(t, object.Union.UType)

	// The padding arm disappears; the real arms keep declaration order.
	require.Len(t, object.Fields, 2)
	assert.Equal(t, "Rect2D", object.Fields[0].Name)
	assert.Equal(t, "Circle", object.Fields[1].Name)
	assert.Equal(t, uint32(0), object.Fields[0].Order())
	assert.Equal(t, uint32(1), object.Fields[1].Order())
	assert.Equal(t, Type{Kind: TypeKindObject, FQName: "rerun.datatypes.Circle"}, object.Fields[1].Type)
}

func TestObjectFromRawEnumScalarBacked(t *testing.T) {
	raw := bfbs.Enum{
		Name:            "rerun.datatypes.ColorModel",
		DeclarationFile: strPtr("//datatypes/color_model.fbs"),
		Attributes:      []bfbs.KeyValue{bfbstest.StringAttr("order", "6")},
		UnderlyingType:  bfbstest.Scalar(bfbs.BaseTypeUByte),
		Values: []bfbs.EnumVal{
			{Name: "RGB"},
			{Name: "BGR"},
		},
	}

	object, err := objectFromRawEnum(&bfbs.Schema{}, raw)

	require.NoError(t, err)
	assert.True(t, object.IsEnum())
	assert.False(t, object.IsUnion())
	assert.False(t, object.IsStruct())
	require.NotNil(t, object.Union)
	require.NotNil(t, object.Union.UType)
	assert.Equal(t, ElementType{Kind: TypeKindUInt8}, *object.Union.UType)
	// Plain labels carry no payload, so nothing resolves into an arm.
	assert.Empty(t, object.Fields)
}

func TestObjectFromRawEnumMissingDeclarationFile(t *testing.T) {
	raw := bfbs.Enum{
		Name:           "rerun.datatypes.Shape",
		Attributes:     []bfbs.KeyValue{bfbstest.StringAttr("order", "5")},
		UnderlyingType: bfbstest.UType(-1),
	}

	_, err := objectFromRawEnum(&bfbs.Schema{}, raw)

	malformed := ErrMalformedDeclaration{}
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "rerun.datatypes.Shape", malformed.FQName)
}
