package ir

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"retypegen/bfbs"
)

// Attributes is the property bag of one object or field. A key mapped to nil
// was declared without a value; the typed accessors treat it the same as an
// absent key, so value-less flags are only visible through Has.
type Attributes map[string]*string

// AttrOrder is the mandatory attribute fixing the position of every object
// and field in generated output.
const AttrOrder = "order"

// AttrScalar lists the exact types an attribute value can be parsed into.
type AttrScalar interface {
	string | bool |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

func attributesFromRaw(kvs []bfbs.KeyValue) Attributes {
	return lo.SliceToMap(kvs, func(kv bfbs.KeyValue) (string, *string) {
		return kv.Key, kv.Value
	})
}

// Has reports whether the attribute was declared at all, with a value or not.
func (r Attributes) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// GetAttr parses the named attribute of owner into T. An absent attribute is
// an ErrMissingAttribute; a present one that does not parse is an
// ErrInvalidAttribute.
func GetAttr[T AttrScalar](attrs Attributes, owner string, name string) (T, error) {
	value, err := TryGetAttr[T](attrs, owner, name)
	if err != nil {
		var zero T
		return zero, err
	}
	if value == nil {
		var zero T
		return zero, ErrMissingAttribute{Owner: owner, Name: name}
	}
	return *value, nil
}

// TryGetAttr is GetAttr with absence turned into a nil result. A present but
// unparsable value still fails, to keep "not specified" and "specified wrong"
// apart.
func TryGetAttr[T AttrScalar](attrs Attributes, owner string, name string) (*T, error) {
	raw, ok := attrs[name]
	if !ok || raw == nil {
		return nil, nil
	}
	parsed, err := parseAttr[T](*raw)
	if err != nil {
		var zero T
		return nil, ErrInvalidAttribute{
			Owner: owner,
			Name:  name,
			Value: *raw,
			Want:  fmt.Sprintf("%T", zero),
			Cause: err,
		}
	}
	return &parsed, nil
}

func parseAttr[T AttrScalar](raw string) (T, error) {
	var parsed T
	switch typed := any(&parsed).(type) {
	case *string:
		*typed = raw
	case *bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return parsed, err
		}
		*typed = v
	case *int8:
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return parsed, err
		}
		*typed = int8(v)
	case *int16:
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return parsed, err
		}
		*typed = int16(v)
	case *int32:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return parsed, err
		}
		*typed = int32(v)
	case *int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return parsed, err
		}
		*typed = v
	case *uint8:
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return parsed, err
		}
		*typed = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return parsed, err
		}
		*typed = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return parsed, err
		}
		*typed = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return parsed, err
		}
		*typed = v
	case *float32:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return parsed, err
		}
		*typed = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return parsed, err
		}
		*typed = v
	}
	return parsed, nil
}
