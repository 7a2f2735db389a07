package model

import "time"

// Comment and message author kinds.
const (
	AuthorReceiver      = "receiver"
	AuthorWhistleblower = "whistleblower"
)

// Identity access request reply states.
const (
	ReplyPending    = "pending"
	ReplyAuthorized = "authorized"
	ReplyDenied     = "denied"
)

// InternalTip is the aggregation root for one whistleblower submission. It
// owns answers, files, comments, per-receiver tip views, and at most one
// whistleblower access link; all of those reference the internal tip, never
// the reverse.
type InternalTip struct {
	ID           string    `model:"id"`
	CreationDate time.Time `model:"creation_date"`
	UpdateDate   time.Time `model:"update_date"`

	ContextID string `model:"context_id"`

	QuestionnaireHash string    `model:"questionnaire_hash"`
	Preview           any       `model:"preview"`
	Progressive       int       `model:"progressive"`
	Tor2Web           bool      `model:"tor2web"`
	TotalScore        int       `model:"total_score"`
	ExpirationDate    time.Time `model:"expiration_date"`

	IdentityProvided     bool      `model:"identity_provided"`
	IdentityProvidedDate time.Time `model:"identity_provided_date"`

	EnableTwoWayComments        bool `model:"enable_two_way_comments"`
	EnableTwoWayMessages        bool `model:"enable_two_way_messages"`
	EnableAttachments           bool `model:"enable_attachments"`
	EnableWhistleblowerIdentity bool `model:"enable_whistleblower_identity"`

	WBLastAccess time.Time `model:"wb_last_access"`

	New bool `model:"new"`
}

// NewInternalTip creates a submission root with lifecycle defaults.
func NewInternalTip() *InternalTip {
	now := Now()
	return &InternalTip{
		ID:                   NewID(),
		CreationDate:         now,
		UpdateDate:           now,
		Progressive:          0,
		IdentityProvidedDate: NullTime,
		EnableTwoWayComments: true,
		EnableTwoWayMessages: true,
		EnableAttachments:    true,
		WBLastAccess:         now,
		New:                  true,
	}
}

// AccessRevokeDate computes when whistleblower access lapses: the last
// whistleblower access plus the configured retention window in days. The
// window is a configuration value, so changing it affects future
// computations without touching stored timestamps.
func (t *InternalTip) AccessRevokeDate(retentionDays int) time.Time {
	return t.WBLastAccess.Add(time.Duration(retentionDays) * 24 * time.Hour)
}

// ReceiverTip is the per-receiver view over an internal tip, tracking the
// receiver's accesses, label, and notification preference. The pair
// (internaltip_id, receiver_id) is unique.
type ReceiverTip struct {
	ID string `model:"id"`

	InternalTipID string `model:"internaltip_id"`
	ReceiverID    string `model:"receiver_id"`

	LastAccess    time.Time `model:"last_access"`
	AccessCounter int       `model:"access_counter"`

	Label string `model:"label"`

	CanAccessWhistleblowerIdentity bool `model:"can_access_whistleblower_identity"`

	New bool `model:"new"`

	EnableNotifications bool `model:"enable_notifications"`
}

// NewReceiverTip links an internal tip to a receiver.
func NewReceiverTip(internalTipID, receiverID string) *ReceiverTip {
	return &ReceiverTip{
		ID:                  NewID(),
		InternalTipID:       internalTipID,
		ReceiverID:          receiverID,
		LastAccess:          NullTime,
		New:                 true,
		EnableNotifications: true,
	}
}

// WhistleblowerTip grants the original submitter continued access to the
// tip through a secret receipt. Its absence is the authoritative signal that
// whistleblower access has been revoked; there is no separate flag.
type WhistleblowerTip struct {
	ID string `model:"id"`

	InternalTipID string `model:"internaltip_id"`
	ReceiptHash   string `model:"receipt_hash"`

	AccessCounter int `model:"access_counter"`
}

// NewWhistleblowerTip creates the access link for an internal tip.
func NewWhistleblowerTip(internalTipID, receiptHash string) *WhistleblowerTip {
	return &WhistleblowerTip{
		ID:            NewID(),
		InternalTipID: internalTipID,
		ReceiptHash:   receiptHash,
	}
}

// IdentityAccessRequest tracks a receiver's request to view the
// whistleblower's identity and the custodian's answer.
type IdentityAccessRequest struct {
	ID string `model:"id"`

	ReceiverTipID     string    `model:"receivertip_id"`
	RequestDate       time.Time `model:"request_date"`
	RequestMotivation string    `model:"request_motivation"`
	ReplyDate         time.Time `model:"reply_date"`
	ReplyUserID       string    `model:"reply_user_id"`
	ReplyMotivation   string    `model:"reply_motivation"`
	Reply             string    `model:"reply"`
}

// NewIdentityAccessRequest creates a pending request for a receiver tip.
func NewIdentityAccessRequest(receiverTipID string) *IdentityAccessRequest {
	return &IdentityAccessRequest{
		ID:            NewID(),
		ReceiverTipID: receiverTipID,
		RequestDate:   Now(),
		ReplyDate:     NullTime,
		Reply:         ReplyPending,
	}
}

// Comment is attached to the internal tip and visible to every receiver.
type Comment struct {
	ID           string    `model:"id"`
	CreationDate time.Time `model:"creation_date"`

	InternalTipID string `model:"internaltip_id"`

	AuthorID string `model:"author_id"`
	Content  string `model:"content"`

	Type string `model:"type"`
	// types: 'receiver', 'whistleblower'

	New bool `model:"new"`
}

// NewComment creates a comment on an internal tip.
func NewComment(internalTipID string) *Comment {
	return &Comment{
		ID:            NewID(),
		CreationDate:  Now(),
		InternalTipID: internalTipID,
		New:           true,
	}
}

// Message is a private 1:1 exchange between the whistleblower and one
// receiver, attached to the receiver tip.
type Message struct {
	ID           string    `model:"id"`
	CreationDate time.Time `model:"creation_date"`

	ReceiverTipID string `model:"receivertip_id"`
	Content       string `model:"content"`

	Type string `model:"type"`
	// types: 'receiver', 'whistleblower'

	New bool `model:"new"`
}

// NewMessage creates a message on a receiver tip.
func NewMessage(receiverTipID string) *Message {
	return &Message{
		ID:            NewID(),
		CreationDate:  Now(),
		ReceiverTipID: receiverTipID,
		New:           true,
	}
}

func init() {
	register(&InternalTip{}, &Schema{
		Table:  "internaltip",
		Fields: map[string]FieldSpec{},
	})

	register(&ReceiverTip{}, &Schema{
		Table: "receivertip",
		Fields: map[string]FieldSpec{
			"label":                {Bucket: Text},
			"enable_notifications": {Bucket: Bool},
		},
	})

	register(&WhistleblowerTip{}, &Schema{
		Table:  "whistleblowertip",
		Fields: map[string]FieldSpec{},
		Hidden: []string{"receipt_hash"},
	})

	register(&IdentityAccessRequest{}, &Schema{
		Table:  "identityaccessrequest",
		Fields: map[string]FieldSpec{},
	})

	register(&Comment{}, &Schema{
		Table:  "comment",
		Fields: map[string]FieldSpec{},
	})

	register(&Message{}, &Schema{
		Table:  "message",
		Fields: map[string]FieldSpec{},
	})
}
