package model

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model/lang"
)

// Validator checks an already-coerced value against a declared constraint.
// Validators are pure: they inspect only the value and use attr for error
// messages.
type Validator func(attr string, v any) error

// Text length bounds. Defaults match the system settings defaults; the
// configuration memory copy refreshes them when the admin changes the
// thresholds.
var limits = struct {
	sync.RWMutex
	name int
	text int
}{name: 128, text: 4096}

// SetTextLimits updates the maximum lengths enforced by the text validators.
func SetTextLimits(nameLen, textLen int) {
	limits.Lock()
	defer limits.Unlock()
	if nameLen > 0 {
		limits.name = nameLen
	}
	if textLen > 0 {
		limits.text = textLen
	}
}

func textLimits() (nameLen, textLen int) {
	limits.RLock()
	defer limits.RUnlock()
	return limits.name, limits.text
}

var (
	shortURLRe = regexp.MustCompile(`^/s/[a-z0-9]{1,30}$`)
	longURLRe  = regexp.MustCompile(`^/[a-z0-9#=_&?/-]{1,255}$`)
)

// ShortText accepts bounded single-line text.
func ShortText(attr string, v any) error {
	s, ok := v.(string)
	if !ok {
		return errors.NewTypeCoercion(attr, "string")
	}
	if strings.ContainsAny(s, "\r\n") {
		return errors.NewValidation(attr, "contains line breaks")
	}
	nameLen, _ := textLimits()
	if n := utf8.RuneCountInString(s); n > nameLen {
		return errors.NewValidation(attr, "text exceeds name length limit %d (%d)", nameLen, n)
	}
	return nil
}

// LongText accepts bounded multi-line text.
func LongText(attr string, v any) error {
	s, ok := v.(string)
	if !ok {
		return errors.NewTypeCoercion(attr, "string")
	}
	_, textLen := textLimits()
	if n := utf8.RuneCountInString(s); n > textLen {
		return errors.NewValidation(attr, "text exceeds length limit %d (%d)", textLen, n)
	}
	return nil
}

// ShortLocal applies ShortText to every value of a language-keyed mapping.
func ShortLocal(attr string, v any) error {
	return localizedEach(attr, v, ShortText)
}

// LongLocal applies LongText to every value of a language-keyed mapping.
func LongLocal(attr string, v any) error {
	return localizedEach(attr, v, LongText)
}

func localizedEach(attr string, v any, inner Validator) error {
	m, ok := v.(Localized)
	if !ok {
		return errors.NewTypeCoercion(attr, "localized mapping")
	}
	for code, text := range m {
		if !lang.Supported(code) {
			return errors.NewValidation(attr, "unsupported language code %q", code)
		}
		if err := inner(attr, text); err != nil {
			return err
		}
	}
	return nil
}

// ValidShortURL accepts shortener paths of the form /s/<token>.
func ValidShortURL(attr string, v any) error {
	s, ok := v.(string)
	if !ok {
		return errors.NewTypeCoercion(attr, "string")
	}
	if !shortURLRe.MatchString(s) {
		return errors.NewValidation(attr, "invalid short url")
	}
	return nil
}

// ValidLongURL accepts site-relative destination paths.
func ValidLongURL(attr string, v any) error {
	s, ok := v.(string)
	if !ok {
		return errors.NewTypeCoercion(attr, "string")
	}
	if !longURLRe.MatchString(s) {
		return errors.NewValidation(attr, "invalid url")
	}
	return nil
}

// NatNum accepts integers >= 0.
func NatNum(attr string, v any) error {
	n, ok := v.(int)
	if !ok {
		return errors.NewTypeCoercion(attr, "int")
	}
	if n < 0 {
		return errors.NewValidation(attr, "negative value %d", n)
	}
	return nil
}
