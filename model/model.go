// Package model implements the schema-driven entity layer of tipline: the
// declarative validation and coercion engine, the attribute schemas of every
// entity kind, and their lifecycle defaults.
//
// Entities are plain structs whose columns are declared with `model` struct
// tags. Each kind registers an immutable Schema at init time classifying its
// externally settable fields into typed buckets. The engine performs partial
// updates from untrusted key-value maps and allow-listed serialization; it
// issues no I/O and owns no locks. Persistence and relation traversal live
// in the store package.
package model

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/tipline/tipline/errors"
)

// updater is implemented by entity kinds that override the generic bucket
// dispatch with their own data-driven update rule (FieldAttr).
type updater interface {
	update(values map[string]any) error
}

// Update applies a partial update from an untrusted key-value map onto the
// entity. Fields absent from the map, or present with a nil value, are left
// untouched. The operation is atomic with respect to validation: every field
// is coerced and validated before any assignment happens, so a failure
// leaves the entity wholly unmodified.
func Update(m any, values map[string]any) error {
	if values == nil {
		return nil
	}
	if u, ok := m.(updater); ok {
		return u.update(values)
	}

	c, v, err := lookup(m)
	if err != nil {
		return err
	}

	type assignment struct {
		index int
		value reflect.Value
	}
	var pending []assignment

	for name, spec := range c.schema.Fields {
		raw, present := values[name]
		if !present || raw == nil {
			continue
		}
		info := c.attrs[name]

		var coerced any
		switch spec.Bucket {
		case Text:
			coerced = asText(raw)
		case Int:
			n, ok := asInt(raw)
			if !ok {
				return errors.NewTypeCoercion(name, "int")
			}
			coerced = n
		case Bool:
			coerced = asBool(raw)
		case Time:
			t, ok := asTime(raw)
			if !ok {
				return errors.NewTypeCoercion(name, "timestamp")
			}
			coerced = t
		case LocalizedText:
			in, ok := asLocalized(raw)
			if !ok {
				return errors.NewTypeCoercion(name, "localized mapping")
			}
			current, _ := v.Field(info.index).Interface().(Localized)
			coerced = current.Merged(in)
		case Opaque:
			coerced = raw
		}

		if spec.Validator != nil {
			if err := spec.Validator(name, coerced); err != nil {
				return err
			}
		}

		field := v.Field(info.index)
		rv := reflect.ValueOf(coerced)
		if !rv.Type().AssignableTo(field.Type()) {
			return errors.NewTypeCoercion(name, field.Type().String())
		}
		pending = append(pending, assignment{index: info.index, value: rv})
	}

	for _, a := range pending {
		v.Field(a.index).Set(a.value)
	}
	return nil
}

// Serialize returns a field-name-to-value map of the entity. With no
// explicit fields the full public set is returned. Requesting any field
// outside the public set fails the whole call with an UnknownFieldError
// naming the offenders.
func Serialize(m any, fields ...string) (map[string]any, error) {
	c, v, err := lookup(m)
	if err != nil {
		return nil, err
	}

	keys := fields
	if len(keys) == 0 {
		keys = c.public
	}

	var unknown []string
	for _, k := range keys {
		if _, ok := c.publicSet[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.NewUnknownField(unknown...)
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = v.Field(c.attrs[k].index).Interface()
	}
	return out, nil
}

// asText produces the canonical text representation of a raw value.
func asText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// asInt parses a raw value as a base-10 integer.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// JSON numbers decode as float64.
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// asBool interprets a raw value as a boolean. The literal tokens "true" and
// "false" are honored case-sensitively; any other value falls back to
// generic truthiness, so the text "no" coerces to true. That quirk matches
// the historical update contract and is kept as an explicit, tested rule.
func asBool(v any) bool {
	if s, ok := v.(string); ok {
		switch s {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return truthy(v)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return len(x) > 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	}
	return true
}
