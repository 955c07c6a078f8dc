package ir

import (
	"retypegen/bfbs"
)

// ObjectField is one resolved struct member, enum value, or union arm.
type ObjectField struct {
	// Filepath is the declaration file of the owning object. Fields carry no
	// file of their own in the raw schema.
	Filepath string `json:"filepath"`
	// FQName is "<owner fqname>.<field name>".
	FQName     string     `json:"fqname"`
	PkgName    string     `json:"pkg_name"`
	Name       string     `json:"name"`
	Docs       Docs       `json:"docs"`
	Type       Type       `json:"type"`
	Attrs      Attributes `json:"attrs"`
	Required   bool       `json:"required"`
	Deprecated bool       `json:"deprecated"`

	order uint32
}

// Order is the field's position among its siblings: the mandatory `order`
// attribute for struct members, the declaration index for enum values and
// union arms (the IDL cannot attach attributes to those). Validated once at
// resolution time, so reading it cannot fail.
func (r ObjectField) Order() uint32 {
	return r.order
}

// fieldOwner carries the parts of a resolved object its fields inherit.
type fieldOwner struct {
	fqname      string
	pkgName     string
	filepath    string
	fixedLayout bool
}

func fieldFromRawField(schema *bfbs.Schema, owner fieldOwner, field bfbs.Field) (ObjectField, error) {
	fqname := owner.fqname + "." + field.Name
	attrs := attributesFromRaw(field.Attributes)
	order, err := GetAttr[uint32](attrs, fqname, AttrOrder)
	if err != nil {
		return ObjectField{}, err
	}
	typ, err := resolveType(schema, fqname, field.Type)
	if err != nil {
		return ObjectField{}, err
	}
	result := ObjectField{
		Filepath: owner.filepath,
		FQName:   fqname,
		PkgName:  owner.pkgName,
		Name:     field.Name,
		Docs:     docsFromRaw(field.Documentation),
		Type:     typ,
		Attrs:    attrs,
		// Fixed-layout structs have no optional members.
		Required:   field.Required || owner.fixedLayout,
		Deprecated: field.Deprecated,
		order:      order,
	}
	return result, nil
}

// fieldFromRawEnumValue resolves one enum value or union arm. Callers have
// already dropped payloadless entries, so the payload type is always there.
func fieldFromRawEnumValue(schema *bfbs.Schema, owner fieldOwner, index int, value bfbs.EnumVal) (ObjectField, error) {
	fqname := owner.fqname + "." + value.Name
	typ, err := resolveType(schema, fqname, *value.UnionType)
	if err != nil {
		return ObjectField{}, err
	}
	result := ObjectField{
		Filepath: owner.filepath,
		FQName:   fqname,
		PkgName:  owner.pkgName,
		Name:     value.Name,
		Docs:     docsFromRaw(value.Documentation),
		Type:     typ,
		Attrs:    attributesFromRaw(value.Attributes),
		Required: true,
		order:    uint32(index),
	}
	return result, nil
}
