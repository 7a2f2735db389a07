package model

// Context is a submission category: which receivers handle it, which
// questionnaire collects it, and how it is presented.
type Context struct {
	ID string `model:"id"`

	ShowSmallReceiverCards     bool `model:"show_small_receiver_cards"`
	ShowContext                bool `model:"show_context"`
	ShowRecipientsDetails      bool `model:"show_recipients_details"`
	AllowRecipientsSelection   bool `model:"allow_recipients_selection"`
	MaximumSelectableReceivers int  `model:"maximum_selectable_receivers"`
	SelectAllReceivers         bool `model:"select_all_receivers"`

	EnableComments       bool `model:"enable_comments"`
	EnableMessages       bool `model:"enable_messages"`
	EnableTwoWayComments bool `model:"enable_two_way_comments"`
	EnableTwoWayMessages bool `model:"enable_two_way_messages"`
	EnableAttachments    bool `model:"enable_attachments"`

	// TipTimeToLive is the submission retention window in days.
	TipTimeToLive int `model:"tip_timetolive"`

	Name                    Localized `model:"name"`
	Description             Localized `model:"description"`
	RecipientsClarification Localized `model:"recipients_clarification"`
	StatusPageMessage       Localized `model:"status_page_message"`

	ShowReceiversInAlphabeticalOrder bool `model:"show_receivers_in_alphabetical_order"`

	PresentationOrder int `model:"presentation_order"`

	QuestionnaireID string `model:"questionnaire_id"`

	ImgID string `model:"img_id"`
}

// NewContext creates a context with presentation and capability defaults.
func NewContext() *Context {
	return &Context{
		ID:                   NewID(),
		ShowContext:          true,
		SelectAllReceivers:   true,
		EnableComments:       true,
		EnableTwoWayComments: true,
		EnableTwoWayMessages: true,
		EnableAttachments:    true,
		TipTimeToLive:        15,
	}
}

func init() {
	register(&Context{}, &Schema{
		Table: "context",
		Fields: map[string]FieldSpec{
			"questionnaire_id": {Bucket: Text},

			"name":                     {Bucket: LocalizedText, Validator: ShortLocal},
			"description":              {Bucket: LocalizedText, Validator: LongLocal},
			"recipients_clarification": {Bucket: LocalizedText, Validator: LongLocal},
			"status_page_message":      {Bucket: LocalizedText, Validator: LongLocal},

			"tip_timetolive":               {Bucket: Int, Validator: NatNum},
			"maximum_selectable_receivers": {Bucket: Int},
			"presentation_order":           {Bucket: Int},

			"select_all_receivers":                 {Bucket: Bool},
			"show_small_receiver_cards":            {Bucket: Bool},
			"show_context":                         {Bucket: Bool},
			"show_recipients_details":              {Bucket: Bool},
			"show_receivers_in_alphabetical_order": {Bucket: Bool},
			"allow_recipients_selection":           {Bucket: Bool},
			"enable_comments":                      {Bucket: Bool},
			"enable_messages":                      {Bucket: Bool},
			"enable_two_way_comments":              {Bucket: Bool},
			"enable_two_way_messages":              {Bucket: Bool},
			"enable_attachments":                   {Bucket: Bool},
		},
	})
}
