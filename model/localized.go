package model

// Localized is a mapping from language code to text. Partial updates merge
// language by language: languages absent from the incoming map are preserved.
type Localized map[string]string

// Clone returns a copy of l. A nil receiver clones to nil.
func (l Localized) Clone() Localized {
	if l == nil {
		return nil
	}
	out := make(Localized, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Merged returns a copy of l with the entries of in applied on top of it.
// When l is empty the incoming mapping becomes the value outright.
func (l Localized) Merged(in Localized) Localized {
	if len(l) == 0 {
		return in.Clone()
	}
	out := l.Clone()
	for k, v := range in {
		out[k] = v
	}
	return out
}

// asLocalized converts an untrusted raw value into a Localized mapping.
// Map values are coerced to their canonical text representation.
func asLocalized(v any) (Localized, bool) {
	switch m := v.(type) {
	case Localized:
		return m, true
	case map[string]string:
		return Localized(m), true
	case map[string]any:
		out := make(Localized, len(m))
		for k, val := range m {
			out[k] = asText(val)
		}
		return out, true
	}
	return nil, false
}
