package ir

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"retypegen/bfbs"
)

type (
	// ObjectKind is the domain role of a definition, encoded in the package
	// it was declared in.
	ObjectKind string

	// UnionSpecifics is the extra payload of enum and union definitions. A
	// nil UType marks a genuine sum-type union; a set one marks a scalar
	// enumeration and names the scalar backing its values.
	UnionSpecifics struct {
		UType *ElementType `json:"utype"`
	}

	// Object is one resolved struct, table, enum, or union definition.
	Object struct {
		// Filepath is the schema file the definition was written in.
		Filepath string `json:"filepath"`
		FQName   string `json:"fqname"`
		// PkgName and Name split FQName on its last dot.
		PkgName string     `json:"pkg_name"`
		Name    string     `json:"name"`
		Docs    Docs       `json:"docs"`
		Kind    ObjectKind `json:"kind"`
		Attrs   Attributes `json:"attrs"`
		// Fields come pre-sorted: struct members ascending by their `order`
		// attribute, enum values and union arms in declaration order.
		Fields []ObjectField `json:"fields"`
		// Union is nil for struct and table definitions.
		Union *UnionSpecifics `json:"union,omitempty"`

		order uint32
	}
)

const (
	// ObjectKindAny is the zero value; registry queries use it as "no filter".
	ObjectKindAny       = ObjectKind("")
	ObjectKindDatatype  = ObjectKind("datatype")
	ObjectKindComponent = ObjectKind("component")
	ObjectKindArchetype = ObjectKind("archetype")
)

// ObjectKindFromPkgName classifies a definition by its package name.
func ObjectKindFromPkgName(pkgName string) (ObjectKind, error) {
	switch {
	case strings.HasPrefix(pkgName, "rerun.datatypes"):
		return ObjectKindDatatype, nil
	case strings.HasPrefix(pkgName, "rerun.components"):
		return ObjectKindComponent, nil
	case strings.HasPrefix(pkgName, "rerun.archetypes"):
		return ObjectKindArchetype, nil
	default:
		return ObjectKindAny, ErrUnknownPackage{PkgName: pkgName}
	}
}

// IsStruct reports a struct or table definition.
func (r Object) IsStruct() bool {
	return r.Union == nil
}

// IsEnum reports a scalar-backed enumeration.
func (r Object) IsEnum() bool {
	return r.Union != nil && r.Union.UType != nil
}

// IsUnion reports a genuine sum-type union.
func (r Object) IsUnion() bool {
	return r.Union != nil && r.Union.UType == nil
}

// Order is the mandatory `order` attribute of the definition. Validated once
// at resolution time, so reading it cannot fail.
func (r Object) Order() uint32 {
	return r.order
}

// splitFQName splits a fully-qualified name on its last dot. A name without
// any dot has an empty package.
func splitFQName(fqname string) (pkgName string, name string) {
	j := strings.LastIndex(fqname, ".")
	if j < 0 {
		return "", fqname
	}
	return fqname[:j], fqname[j+1:]
}

// resolveCommon derives the parts shared by both construction paths and
// enforces that the definition names a real declaration file.
func resolveCommon(fqname string, declarationFile *string, docs []string, attrs []bfbs.KeyValue) (Object, error) {
	pkgName, name := splitFQName(fqname)
	kind, err := ObjectKindFromPkgName(pkgName)
	if err != nil {
		return Object{}, err
	}
	if declarationFile == nil || *declarationFile == "" {
		return Object{}, ErrMalformedDeclaration{
			FQName: fqname,
			Reason: "no declaration_file found",
		}
	}
	object := Object{
		Filepath: *declarationFile,
		FQName:   fqname,
		PkgName:  pkgName,
		Name:     name,
		Docs:     docsFromRaw(docs),
		Kind:     kind,
		Attrs:    attributesFromRaw(attrs),
	}
	object.order, err = GetAttr[uint32](object.Attrs, fqname, AttrOrder)
	if err != nil {
		return Object{}, err
	}
	return object, nil
}

// objectFromRawObject resolves a raw struct or table definition.
func objectFromRawObject(schema *bfbs.Schema, raw bfbs.Object) (*Object, error) {
	object, err := resolveCommon(raw.Name, raw.DeclarationFile, raw.Documentation, raw.Attributes)
	if err != nil {
		return nil, err
	}
	owner := fieldOwner{
		fqname:      object.FQName,
		pkgName:     object.PkgName,
		filepath:    object.Filepath,
		fixedLayout: raw.IsStruct,
	}
	// UType entries co-locate a union member's discriminant with its payload
	// field; they carry no semantic field of their own.
	rawFields := lo.Filter(raw.Fields, func(field bfbs.Field, _ int) bool {
		return field.Type.BaseType != bfbs.BaseTypeUType
	})
	fields := make([]ObjectField, 0, len(rawFields))
	for _, rawField := range rawFields {
		field, err := fieldFromRawField(schema, owner, rawField)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].order < fields[j].order
	})
	object.Fields = fields
	return &object, nil
}

// objectFromRawEnum resolves a raw enum or union definition.
func objectFromRawEnum(schema *bfbs.Schema, raw bfbs.Enum) (*Object, error) {
	object, err := resolveCommon(raw.Name, raw.DeclarationFile, raw.Documentation, raw.Attributes)
	if err != nil {
		return nil, err
	}
	union := UnionSpecifics{}
	if raw.UnderlyingType.BaseType != bfbs.BaseTypeUType {
		utype, err := resolveElementType(schema, object.FQName, raw.UnderlyingType.BaseType, raw.UnderlyingType.Index)
		if err != nil {
			return nil, err
		}
		union.UType = &utype
	}
	object.Union = &union

	owner := fieldOwner{
		fqname:   object.FQName,
		pkgName:  object.PkgName,
		filepath: object.Filepath,
	}
	// Payloadless values are the zero/padding entries the raw format inserts;
	// they never become arms.
	rawValues := lo.Filter(raw.Values, func(value bfbs.EnumVal, _ int) bool {
		return value.UnionType != nil && value.UnionType.BaseType != bfbs.BaseTypeNone
	})
	fields := make([]ObjectField, 0, len(rawValues))
	for index, rawValue := range rawValues {
		field, err := fieldFromRawEnumValue(schema, owner, index, rawValue)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	object.Fields = fields
	return &object, nil
}
