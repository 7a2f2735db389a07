package model

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Bucket classifies how the engine treats a settable field.
type Bucket int

const (
	// Text fields are coerced to their canonical string form.
	Text Bucket = iota
	// Int fields are parsed as base-10 integers.
	Int
	// Bool fields accept the literal tokens "true"/"false", any other
	// value falls back to generic truthiness.
	Bool
	// Time fields are assigned as-is; the caller supplies valid timestamps.
	Time
	// LocalizedText fields are language-keyed mappings, merged on update.
	LocalizedText
	// Opaque fields are stored verbatim, wholesale replacement.
	Opaque
)

// AttrType describes the storage shape of any declared attribute, settable
// or not. Derived from the Go field type at registration.
type AttrType int

const (
	AttrText AttrType = iota
	AttrInt
	AttrBool
	AttrTime
	AttrLocalized
	AttrJSON
)

// FieldSpec declares the bucket of a settable field and its optional
// validator.
type FieldSpec struct {
	Bucket    Bucket
	Validator Validator
}

// Schema is the per-entity-kind classification of fields. It is the single
// source of truth the engine consults: only fields named here are settable
// through Update, and only fields outside Hidden are serializable.
type Schema struct {
	// Table is the storage table name.
	Table string
	// Key lists the primary key columns; defaults to ["id"].
	Key []string
	// Fields maps settable field names to their bucket and validator.
	// A field name keys at most one entry, so it belongs to exactly one
	// bucket by construction.
	Fields map[string]FieldSpec
	// Hidden lists fields excluded from the public serialization set
	// (credential material, receipt hashes).
	Hidden []string
}

// compiled is a registered schema with the reflection tables built once at
// registration time.
type compiled struct {
	schema *Schema
	// attrs maps field name to struct field index and storage type,
	// covering every tagged field.
	attrs map[string]attrInfo
	// public is the sorted default serialization set.
	public []string
	// publicSet mirrors public for membership tests.
	publicSet map[string]struct{}
}

type attrInfo struct {
	index int
	typ   AttrType
}

var registry = map[reflect.Type]*compiled{}

var (
	timeType      = reflect.TypeOf(time.Time{})
	localizedType = reflect.TypeOf(Localized{})
	anyType       = reflect.TypeOf((*any)(nil)).Elem()
)

// register compiles and stores the schema for the entity prototype. Called
// from package init for every entity kind; schema mistakes are programmer
// errors and panic.
func register(proto any, s *Schema) {
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("model: register needs a struct pointer, got %T", proto))
	}
	st := t.Elem()
	if _, dup := registry[st]; dup {
		panic(fmt.Sprintf("model: %s registered twice", st.Name()))
	}
	if len(s.Key) == 0 {
		s.Key = []string{"id"}
	}

	c := &compiled{
		schema:    s,
		attrs:     map[string]attrInfo{},
		publicSet: map[string]struct{}{},
	}

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name := f.Tag.Get("model")
		if name == "" || name == "-" {
			continue
		}
		if _, dup := c.attrs[name]; dup {
			panic(fmt.Sprintf("model: %s declares %q twice", st.Name(), name))
		}
		c.attrs[name] = attrInfo{index: i, typ: attrTypeOf(st.Name(), name, f.Type)}
	}

	hidden := map[string]struct{}{}
	for _, h := range s.Hidden {
		if _, ok := c.attrs[h]; !ok {
			panic(fmt.Sprintf("model: %s hides unknown field %q", st.Name(), h))
		}
		hidden[h] = struct{}{}
	}

	for name, spec := range s.Fields {
		info, ok := c.attrs[name]
		if !ok {
			panic(fmt.Sprintf("model: %s has no field %q", st.Name(), name))
		}
		if want := bucketAttrType(spec.Bucket); info.typ != want {
			panic(fmt.Sprintf("model: %s field %q bucket does not match its Go type", st.Name(), name))
		}
	}

	for name := range c.attrs {
		if _, h := hidden[name]; h {
			continue
		}
		c.public = append(c.public, name)
		c.publicSet[name] = struct{}{}
	}
	sort.Strings(c.public)

	registry[st] = c
}

func attrTypeOf(entity, field string, t reflect.Type) AttrType {
	switch {
	case t.Kind() == reflect.String:
		return AttrText
	case t.Kind() == reflect.Int:
		return AttrInt
	case t.Kind() == reflect.Bool:
		return AttrBool
	case t == timeType:
		return AttrTime
	case t == localizedType:
		return AttrLocalized
	case t == anyType:
		return AttrJSON
	}
	panic(fmt.Sprintf("model: %s field %q has unsupported type %s", entity, field, t))
}

func bucketAttrType(b Bucket) AttrType {
	switch b {
	case Text:
		return AttrText
	case Int:
		return AttrInt
	case Bool:
		return AttrBool
	case Time:
		return AttrTime
	case LocalizedText:
		return AttrLocalized
	case Opaque:
		return AttrJSON
	}
	panic(fmt.Sprintf("model: unknown bucket %d", b))
}

func lookup(m any) (*compiled, reflect.Value, error) {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, reflect.Value{}, fmt.Errorf("model: %T is not an entity pointer", m)
	}
	c, ok := registry[v.Elem().Type()]
	if !ok {
		return nil, reflect.Value{}, fmt.Errorf("model: %T is not a registered entity", m)
	}
	return c, v.Elem(), nil
}

// TableOf returns the storage table name of a registered entity.
func TableOf(m any) string {
	c, _, err := lookup(m)
	if err != nil {
		panic(err)
	}
	return c.schema.Table
}

// KeyOf returns the primary key columns of a registered entity.
func KeyOf(m any) []string {
	c, _, err := lookup(m)
	if err != nil {
		panic(err)
	}
	return c.schema.Key
}

// PublicAttrs returns the sorted public field set of a registered entity.
func PublicAttrs(m any) []string {
	c, _, err := lookup(m)
	if err != nil {
		panic(err)
	}
	return append([]string(nil), c.public...)
}

// Attrs returns every declared attribute of the entity, hidden ones
// included, as a field-name-to-value map. The storage layer uses it to
// build rows; it is not a serialization surface.
func Attrs(m any) (map[string]any, error) {
	c, v, err := lookup(m)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(c.attrs))
	for name, info := range c.attrs {
		out[name] = v.Field(info.index).Interface()
	}
	return out, nil
}

// AttrTypes returns the storage type of every declared attribute.
func AttrTypes(m any) (map[string]AttrType, error) {
	c, _, err := lookup(m)
	if err != nil {
		return nil, err
	}
	out := make(map[string]AttrType, len(c.attrs))
	for name, info := range c.attrs {
		out[name] = info.typ
	}
	return out, nil
}

// SetAttr assigns a decoded storage value to the named attribute without
// engine coercion. The value must already have the field's Go type.
func SetAttr(m any, name string, value any) error {
	c, v, err := lookup(m)
	if err != nil {
		return err
	}
	info, ok := c.attrs[name]
	if !ok {
		return fmt.Errorf("model: %T has no attribute %q", m, name)
	}
	f := v.Field(info.index)
	rv := reflect.ValueOf(value)
	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	if !rv.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("model: cannot assign %T to %T.%s", value, m, name)
	}
	f.Set(rv)
	return nil
}
