// Package ir turns raw reflection schemas into a resolved object model: every
// struct, table, enum and union classified by its domain role, with normalized
// documentation and attributes, resolved field types, and the synthetic
// scalar-wrapper structs flattened away. Code generators for the individual
// target languages consume this model and never touch the raw schema.
package ir

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"retypegen/bfbs"
)

// Objects is the registry of every resolved definition of one schema, keyed
// by fully-qualified name. It is built in a single pass and read-only
// afterwards; any number of generators can query it concurrently.
type Objects struct {
	objects map[string]*Object
}

// FromBuf decodes a compiled schema buffer and resolves it.
func FromBuf(bs []byte) (*Objects, error) {
	schema, err := bfbs.Decode(bs)
	if err != nil {
		err := errors.Wrap(err, "ir.FromBuf error")
		return nil, err
	}
	return FromSchema(schema)
}

// FromSchema resolves every definition of schema. Enums resolve first, so any
// field referencing a union or enum can do so by name; scalar-wrapper objects
// exist only to be flattened and never become definitions. The first
// resolution failure aborts the pass.
func FromSchema(schema *bfbs.Schema) (*Objects, error) {
	registry := Objects{objects: map[string]*Object{}}
	for _, rawEnum := range schema.Enums {
		object, err := objectFromRawEnum(schema, rawEnum)
		if err != nil {
			err := errors.Wrap(err, "ir.FromSchema error")
			return nil, err
		}
		registry.objects[object.FQName] = object
	}
	rawObjects := lo.Filter(schema.Objects, func(object bfbs.Object, _ int) bool {
		return !strings.HasPrefix(object.Name, ScalarWrapperPrefix)
	})
	for _, rawObject := range rawObjects {
		object, err := objectFromRawObject(schema, rawObject)
		if err != nil {
			err := errors.Wrap(err, "ir.FromSchema error")
			return nil, err
		}
		registry.objects[object.FQName] = object
	}
	return &registry, nil
}

// Get looks up a definition by fully-qualified name.
func (r *Objects) Get(fqname string) (*Object, error) {
	object, ok := r.objects[fqname]
	if !ok {
		return nil, ErrUnknownObject{FQName: fqname}
	}
	return object, nil
}

// Len is the number of resolved definitions.
func (r *Objects) Len() int {
	return len(r.objects)
}

// OrderedObjects returns the definitions of the given kind sorted ascending
// by order; ObjectKindAny selects all of them. Ties break on the
// fully-qualified name, keeping the sequence stable across runs.
func (r *Objects) OrderedObjects(kind ObjectKind) []*Object {
	results := make([]*Object, 0, len(r.objects))
	for _, object := range r.objects {
		if kind != ObjectKindAny && object.Kind != kind {
			continue
		}
		results = append(results, object)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].order != results[j].order {
			return results[i].order < results[j].order
		}
		return results[i].FQName < results[j].FQName
	})
	return results
}

// OrderedDatatypes returns the datatype definitions sorted by order.
func (r *Objects) OrderedDatatypes() []*Object {
	return r.OrderedObjects(ObjectKindDatatype)
}

// OrderedComponents returns the component definitions sorted by order.
func (r *Objects) OrderedComponents() []*Object {
	return r.OrderedObjects(ObjectKindComponent)
}

// OrderedArchetypes returns the archetype definitions sorted by order.
func (r *Objects) OrderedArchetypes() []*Object {
	return r.OrderedObjects(ObjectKindArchetype)
}
