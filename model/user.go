package model

import "time"

// User roles.
const (
	RoleAdmin     = "admin"
	RoleReceiver  = "receiver"
	RoleCustodian = "custodian"
)

// User states.
const (
	StateEnabled  = "enabled"
	StateDisabled = "disabled"
)

// User is an authenticated actor: an admin, a receiver, or a custodian.
// Credential material (password hash and salt) is never part of the public
// serialization set.
type User struct {
	ID           string    `model:"id"`
	CreationDate time.Time `model:"creation_date"`

	Username string `model:"username"`
	Password string `model:"password"`
	Salt     string `model:"salt"`

	Deletable bool `model:"deletable"`

	Name        string    `model:"name"`
	Description Localized `model:"description"`
	PublicName  string    `model:"public_name"`

	Role                 string    `model:"role"`
	State                string    `model:"state"`
	LastLogin            time.Time `model:"last_login"`
	MailAddress          string    `model:"mail_address"`
	Language             string    `model:"language"`
	PasswordChangeNeeded bool      `model:"password_change_needed"`
	PasswordChangeDate   time.Time `model:"password_change_date"`

	PGPKeyFingerprint string    `model:"pgp_key_fingerprint"`
	PGPKeyPublic      string    `model:"pgp_key_public"`
	PGPKeyExpiration  time.Time `model:"pgp_key_expiration"`

	ImgID string `model:"img_id"`
}

// NewUser creates a user with a fresh identifier and lifecycle defaults.
func NewUser() *User {
	return &User{
		ID:                   NewID(),
		CreationDate:         Now(),
		Deletable:            true,
		PasswordChangeNeeded: true,
		LastLogin:            NullTime,
		PasswordChangeDate:   NullTime,
		PGPKeyExpiration:     NullTime,
	}
}

// Receiver carries the submission-handling privileges of a user. Its
// identifier equals the owning user's identifier (1:1 link).
type Receiver struct {
	ID string `model:"id"`

	Configuration string `model:"configuration"`
	// configurations: 'default', 'forcefully_selected', 'unselectable'

	CanDeleteSubmission   bool `model:"can_delete_submission"`
	CanPostponeExpiration bool `model:"can_postpone_expiration"`
	CanGrantPermissions   bool `model:"can_grant_permissions"`

	TipNotification bool `model:"tip_notification"`

	PresentationOrder int `model:"presentation_order"`
}

// NewReceiver creates the receiver profile for the given user.
func NewReceiver(userID string) *Receiver {
	return &Receiver{
		ID:              userID,
		Configuration:   "default",
		TipNotification: true,
	}
}

func init() {
	register(&User{}, &Schema{
		Table: "user",
		Fields: map[string]FieldSpec{
			"username":               {Bucket: Text, Validator: ShortText},
			"role":                   {Bucket: Text},
			"state":                  {Bucket: Text},
			"language":               {Bucket: Text},
			"mail_address":           {Bucket: Text},
			"name":                   {Bucket: Text, Validator: ShortText},
			"public_name":            {Bucket: Text, Validator: ShortText},
			"description":            {Bucket: LocalizedText, Validator: LongLocal},
			"deletable":              {Bucket: Bool},
			"password_change_needed": {Bucket: Bool},
		},
		Hidden: []string{"password", "salt"},
	})

	register(&Receiver{}, &Schema{
		Table: "receiver",
		Fields: map[string]FieldSpec{
			"configuration":           {Bucket: Text},
			"presentation_order":      {Bucket: Int},
			"can_delete_submission":   {Bucket: Bool},
			"can_postpone_expiration": {Bucket: Bool},
			"can_grant_permissions":   {Bucket: Bool},
			"tip_notification":        {Bucket: Bool},
		},
	})
}
