package ir

import (
	"github.com/iancoleman/orderedmap"
	"github.com/samber/lo"
)

// ToOrderedMap renders the registry as an insertion-ordered JSON document:
// one entry per definition, keyed by fully-qualified name, in
// OrderedObjects(kind) order. The CLI and debugging sessions use it to
// inspect a resolved schema without reaching into the model types.
func (r *Objects) ToOrderedMap(kind ObjectKind) *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	for _, object := range r.OrderedObjects(kind) {
		lhm.Set(object.FQName, object.ToOrderedMap())
	}
	return lhm
}

// ToOrderedMap renders one definition with its keys in a fixed order.
func (r Object) ToOrderedMap() *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	lhm.Set("filepath", r.Filepath)
	lhm.Set("fqname", r.FQName)
	lhm.Set("pkg_name", r.PkgName)
	lhm.Set("name", r.Name)
	lhm.Set("kind", r.Kind)
	lhm.Set("order", r.Order())
	lhm.Set("docs", r.Docs)
	lhm.Set("attrs", r.Attrs)

	specifics := orderedmap.New()
	switch {
	case r.IsStruct():
		specifics.Set("kind", "struct")
	case r.IsEnum():
		specifics.Set("kind", "enum")
		specifics.Set("utype", *r.Union.UType)
	default:
		specifics.Set("kind", "union")
	}
	lhm.Set("specifics", specifics)

	lhm.Set("fields", lo.Map(r.Fields, func(field ObjectField, _ int) *orderedmap.OrderedMap {
		return field.ToOrderedMap()
	}))
	return lhm
}

// ToOrderedMap renders one field with its keys in a fixed order.
func (r ObjectField) ToOrderedMap() *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	lhm.Set("name", r.Name)
	lhm.Set("fqname", r.FQName)
	lhm.Set("type", r.Type)
	lhm.Set("required", r.Required)
	lhm.Set("deprecated", r.Deprecated)
	lhm.Set("order", r.Order())
	lhm.Set("docs", r.Docs)
	lhm.Set("attrs", r.Attrs)
	return lhm
}
