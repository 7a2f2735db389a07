package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipline/tipline/errors"
)

func TestSerializeDefaultsToPublicSet(t *testing.T) {
	u := NewUser()
	u.Username = "alice"
	u.Password = "secret-hash"
	u.Salt = "secret-salt"

	out, err := Serialize(u)
	require.NoError(t, err)

	assert.Equal(t, "alice", out["username"])
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "salt")
	assert.Len(t, out, len(PublicAttrs(u)))
}

func TestSerializeUnknownFieldFails(t *testing.T) {
	u := NewUser()

	_, err := Serialize(u, "password")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownField(err))

	var ue *errors.UnknownFieldError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"password"}, ue.Fields)
}

func TestSerializeUnknownFieldNamesAllOffenders(t *testing.T) {
	u := NewUser()

	_, err := Serialize(u, "username", "password", "no_such_field")
	require.Error(t, err)

	var ue *errors.UnknownFieldError
	require.True(t, errors.As(err, &ue))
	assert.ElementsMatch(t, []string{"password", "no_such_field"}, ue.Fields)
}

func TestSerializeSubsetReturnsExactlyRequested(t *testing.T) {
	u := NewUser()
	u.Username = "bob"
	u.Role = RoleReceiver

	out, err := Serialize(u, "username", "role")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "bob", "role": "receiver"}, out)
}

func TestUpdateLocalizedMergePreservesOtherLanguages(t *testing.T) {
	c := NewContext()
	c.Name = Localized{"en": "Report"}

	err := Update(c, map[string]any{"name": map[string]any{"it": "Segnala"}})
	require.NoError(t, err)
	assert.Equal(t, Localized{"en": "Report", "it": "Segnala"}, c.Name)
}

func TestUpdateLocalizedEmptyTakesIncomingOutright(t *testing.T) {
	c := NewContext()

	err := Update(c, map[string]any{"description": map[string]any{"it": "b"}})
	require.NoError(t, err)
	assert.Equal(t, Localized{"it": "b"}, c.Description)
}

func TestUpdateIsAtomicOnValidationFailure(t *testing.T) {
	u := NewUser()
	u.Username = "before"
	u.Description = Localized{"en": "old"}

	err := Update(u, map[string]any{
		"username":    "after",
		"description": map[string]any{"xx-XX": "bad language"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	assert.Equal(t, "before", u.Username, "validation failure must leave the entity unmodified")
	assert.Equal(t, Localized{"en": "old"}, u.Description)
}

func TestUpdateNilValueIsNoOp(t *testing.T) {
	u := NewUser()
	u.Username = "alice"

	err := Update(u, map[string]any{"username": nil})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestUpdateIgnoresUnknownAndNonSettableKeys(t *testing.T) {
	u := NewUser()
	id := u.ID

	err := Update(u, map[string]any{
		"id":            "attacker-chosen",
		"password":      "attacker-chosen",
		"no_such_field": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, id, u.ID, "identifier is immutable after creation")
	assert.Empty(t, u.Password)
}

func TestUpdateIntCoercion(t *testing.T) {
	r := NewReceiver("user-1")

	require.NoError(t, Update(r, map[string]any{"presentation_order": "7"}))
	assert.Equal(t, 7, r.PresentationOrder)

	require.NoError(t, Update(r, map[string]any{"presentation_order": float64(3)}))
	assert.Equal(t, 3, r.PresentationOrder)

	err := Update(r, map[string]any{"presentation_order": "seven"})
	require.Error(t, err)
	assert.True(t, errors.IsTypeCoercion(err))
	assert.Equal(t, 3, r.PresentationOrder)
}

func TestUpdateNatNumRejectsNegative(t *testing.T) {
	c := NewContext()
	c.TipTimeToLive = 15

	err := Update(c, map[string]any{"tip_timetolive": -1})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 15, c.TipTimeToLive)
}

func TestUpdateBoolLiteralTokens(t *testing.T) {
	r := NewReceiver("user-1")
	r.TipNotification = true

	require.NoError(t, Update(r, map[string]any{"tip_notification": "false"}))
	assert.False(t, r.TipNotification)

	require.NoError(t, Update(r, map[string]any{"tip_notification": "true"}))
	assert.True(t, r.TipNotification)
}

// Any string other than the exact tokens falls back to generic truthiness,
// so "no" coerces to true. Historical behavior, kept deliberately.
func TestUpdateBoolTruthinessQuirk(t *testing.T) {
	r := NewReceiver("user-1")

	require.NoError(t, Update(r, map[string]any{"tip_notification": "no"}))
	assert.True(t, r.TipNotification)

	require.NoError(t, Update(r, map[string]any{"tip_notification": ""}))
	assert.False(t, r.TipNotification)

	require.NoError(t, Update(r, map[string]any{"tip_notification": "False"}))
	assert.True(t, r.TipNotification, "token matching is case-sensitive")

	require.NoError(t, Update(r, map[string]any{"tip_notification": 0}))
	assert.False(t, r.TipNotification)
}

func TestUpdateTextCoercesNonStrings(t *testing.T) {
	rt := NewReceiverTip("itip-1", "rcvr-1")

	require.NoError(t, Update(rt, map[string]any{"label": 42}))
	assert.Equal(t, "42", rt.Label)
}

func TestUpdateOpaqueReplacesWholesale(t *testing.T) {
	ad := NewApplicationData()
	ad.DefaultQuestionnaire = map[string]any{"old": true}

	next := map[string]any{"steps": []any{"a", "b"}}
	require.NoError(t, Update(ad, map[string]any{"default_questionnaire": next}))
	assert.Equal(t, next, ad.DefaultQuestionnaire)
}

func TestFieldAttrLocalizedValueMerges(t *testing.T) {
	fa := NewFieldAttr("field-1")

	err := Update(fa, map[string]any{
		"field_id": "field-1",
		"name":     "placeholder",
		"type":     "localized",
		"value":    map[string]any{"en": "x"},
	})
	require.NoError(t, err)

	err = Update(fa, map[string]any{
		"field_id": "field-1",
		"name":     "placeholder",
		"type":     "localized",
		"value":    map[string]any{"it": "y"},
	})
	require.NoError(t, err)

	assert.Equal(t, Localized{"en": "x", "it": "y"}, fa.Value)
}

func TestFieldAttrPlainValueCoercesToText(t *testing.T) {
	fa := NewFieldAttr("field-1")

	err := Update(fa, map[string]any{
		"field_id": "field-1",
		"name":     "min_len",
		"type":     "int",
		"value":    map[string]any{"en": "x"},
	})
	require.NoError(t, err)

	// Non-localized kinds discard the mapping form entirely.
	_, isLocalized := fa.Value.(Localized)
	assert.False(t, isLocalized)
	assert.IsType(t, "", fa.Value)
}

func TestFieldAttrRequiresAllSubFields(t *testing.T) {
	fa := NewFieldAttr("field-1")
	fa.Name = "keep"

	err := Update(fa, map[string]any{"name": "partial"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, "keep", fa.Name, "failed update must not mutate")
}

func TestWhistleblowerTipHidesReceiptHash(t *testing.T) {
	wt := NewWhistleblowerTip("itip-1", "receipt-hash")

	out, err := Serialize(wt)
	require.NoError(t, err)
	assert.NotContains(t, out, "receipt_hash")

	_, err = Serialize(wt, "receipt_hash")
	assert.True(t, errors.IsUnknownField(err))
}

func TestInternalTipAccessRevokeDate(t *testing.T) {
	it := NewInternalTip()
	deadline := it.AccessRevokeDate(90)
	assert.Equal(t, it.WBLastAccess.AddDate(0, 0, 90), deadline)

	// Changing the configured window changes future computations only.
	assert.Equal(t, it.WBLastAccess.AddDate(0, 0, 30), it.AccessRevokeDate(30))
	assert.Equal(t, NullTime, NullTime, "stored timestamps are untouched")
}

func TestConstructorsAssignLifecycleDefaults(t *testing.T) {
	u := NewUser()
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreationDate.IsZero())
	assert.True(t, IsNullTime(u.LastLogin))
	assert.True(t, u.Deletable)

	u2 := NewUser()
	assert.NotEqual(t, u.ID, u2.ID)

	it := NewInternalTip()
	assert.True(t, it.EnableTwoWayComments)
	assert.True(t, it.New)
	assert.True(t, IsNullTime(it.IdentityProvidedDate))

	rt := NewReceiverTip(it.ID, u.ID)
	assert.Equal(t, it.ID, rt.InternalTipID)
	assert.True(t, rt.EnableNotifications)
	assert.Zero(t, rt.AccessCounter)
}
