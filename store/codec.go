package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
)

// columns returns the full attribute set of an entity in a stable order,
// together with the per-column storage types.
func columns(m any) ([]string, map[string]model.AttrType, error) {
	types, err := model.AttrTypes(m)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, types, nil
}

// encode converts an attribute value to its database representation.
// Booleans become 0/1, timestamps RFC3339 text, localized mappings and
// opaque values JSON text.
func encode(name string, typ model.AttrType, v any) (any, error) {
	switch typ {
	case model.AttrText:
		return v, nil
	case model.AttrInt:
		return v, nil
	case model.AttrBool:
		if v.(bool) {
			return 1, nil
		}
		return 0, nil
	case model.AttrTime:
		return v.(time.Time).Format(time.RFC3339), nil
	case model.AttrLocalized, model.AttrJSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", name)
		}
		return string(raw), nil
	}
	return nil, errors.Newf("unknown storage type for %s", name)
}

// scanDest returns a scan target suitable for the column's storage type.
func scanDest(typ model.AttrType) any {
	switch typ {
	case model.AttrInt, model.AttrBool:
		return new(int64)
	default:
		return new(string)
	}
}

// decode converts a scanned database value back to the attribute's Go type.
func decode(name string, typ model.AttrType, dest any) (any, error) {
	switch typ {
	case model.AttrText:
		return *dest.(*string), nil
	case model.AttrInt:
		return int(*dest.(*int64)), nil
	case model.AttrBool:
		return *dest.(*int64) != 0, nil
	case model.AttrTime:
		raw := *dest.(*string)
		if raw == "" {
			return model.NullTime, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", name)
		}
		return t.UTC(), nil
	case model.AttrLocalized:
		raw := *dest.(*string)
		var l model.Localized
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &l); err != nil {
				return nil, errors.Wrapf(err, "decode %s", name)
			}
		}
		return l, nil
	case model.AttrJSON:
		raw := *dest.(*string)
		var v any
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, errors.Wrapf(err, "decode %s", name)
			}
		}
		return v, nil
	}
	return nil, errors.Newf("unknown storage type for %s", name)
}
