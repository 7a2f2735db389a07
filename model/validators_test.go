package model

import (
	"strings"
	"testing"

	"github.com/tipline/tipline/errors"
)

func TestShortTextRejectsLineBreaks(t *testing.T) {
	if err := ShortText("name", "one line"); err != nil {
		t.Fatalf("ShortText() error on valid input: %v", err)
	}
	if err := ShortText("name", "two\nlines"); !errors.IsValidation(err) {
		t.Errorf("ShortText() = %v, want ValidationError for line break", err)
	}
}

func TestTextLengthLimits(t *testing.T) {
	SetTextLimits(128, 4096)
	defer SetTextLimits(128, 4096)

	if err := ShortText("name", strings.Repeat("a", 128)); err != nil {
		t.Errorf("ShortText() error at limit: %v", err)
	}
	if err := ShortText("name", strings.Repeat("a", 129)); !errors.IsValidation(err) {
		t.Errorf("ShortText() = %v, want ValidationError over limit", err)
	}
	if err := LongText("body", strings.Repeat("b", 4096)); err != nil {
		t.Errorf("LongText() error at limit: %v", err)
	}
	if err := LongText("body", strings.Repeat("b", 4097)); !errors.IsValidation(err) {
		t.Errorf("LongText() = %v, want ValidationError over limit", err)
	}

	// Refreshed limits apply to subsequent validations.
	SetTextLimits(4, 8)
	if err := ShortText("name", "abcde"); !errors.IsValidation(err) {
		t.Errorf("ShortText() = %v, want ValidationError with lowered limit", err)
	}
}

func TestLocalizedValidatorsCheckLanguageCodes(t *testing.T) {
	cases := []struct {
		name  string
		value Localized
		ok    bool
	}{
		{"supported single", Localized{"en": "hello"}, true},
		{"supported pair", Localized{"en": "a", "it": "b"}, true},
		{"regioned code", Localized{"pt-BR": "ola"}, true},
		{"unknown code", Localized{"xx": "nope"}, false},
		{"mixed", Localized{"en": "ok", "zz-ZZ": "nope"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ShortLocal("title", tc.value)
			if tc.ok && err != nil {
				t.Errorf("ShortLocal(%v) error: %v", tc.value, err)
			}
			if !tc.ok && !errors.IsValidation(err) {
				t.Errorf("ShortLocal(%v) = %v, want ValidationError", tc.value, err)
			}
		})
	}
}

func TestLongLocalAppliesInnerTextValidator(t *testing.T) {
	SetTextLimits(128, 16)
	defer SetTextLimits(128, 4096)

	err := LongLocal("footer", Localized{"en": strings.Repeat("x", 17)})
	if !errors.IsValidation(err) {
		t.Errorf("LongLocal() = %v, want ValidationError for oversized value", err)
	}
}

func TestURLValidators(t *testing.T) {
	cases := []struct {
		v  Validator
		in string
		ok bool
	}{
		{ValidShortURL, "/s/report1", true},
		{ValidShortURL, "/s/UPPER", false},
		{ValidShortURL, "/not-short", false},
		{ValidShortURL, "https://example.org", false},
		{ValidLongURL, "/submission?ctx=1", true},
		{ValidLongURL, "/a/b/c-d_e", true},
		{ValidLongURL, "no-leading-slash", false},
	}

	for _, tc := range cases {
		err := tc.v("url", tc.in)
		if tc.ok && err != nil {
			t.Errorf("validator(%q) error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("validator(%q) = nil, want error", tc.in)
		}
	}
}

func TestNatNum(t *testing.T) {
	if err := NatNum("days", 0); err != nil {
		t.Errorf("NatNum(0) error: %v", err)
	}
	if err := NatNum("days", 90); err != nil {
		t.Errorf("NatNum(90) error: %v", err)
	}
	if err := NatNum("days", -1); !errors.IsValidation(err) {
		t.Errorf("NatNum(-1) = %v, want ValidationError", err)
	}
	if err := NatNum("days", "9"); !errors.IsTypeCoercion(err) {
		t.Errorf("NatNum(string) = %v, want TypeCoercionError", err)
	}
}
