package model

import "github.com/tipline/tipline/internal/version"

// Node is the system-wide settings singleton. Exactly one live row is
// expected; its absence means the system is unconfigured and callers must
// bootstrap explicitly, it is never substituted with zero-valued defaults.
type Node struct {
	ID string `model:"id"`

	Version   string `model:"version"`
	VersionDB string `model:"version_db"`

	Name string `model:"name"`

	BasicAuth         bool   `model:"basic_auth"`
	BasicAuthUsername string `model:"basic_auth_username"`
	BasicAuthPassword string `model:"basic_auth_password"`

	PublicSite     string `model:"public_site"`
	HiddenService  string `model:"hidden_service"`
	TBDownloadLink string `model:"tb_download_link"`

	ReceiptSalt string `model:"receipt_salt"`

	LanguagesEnabled any    `model:"languages_enabled"`
	DefaultLanguage  string `model:"default_language"`
	DefaultPassword  string `model:"default_password"`

	Description            Localized `model:"description"`
	Presentation           Localized `model:"presentation"`
	Footer                 Localized `model:"footer"`
	SecurityAwarenessTitle Localized `model:"security_awareness_title"`
	SecurityAwarenessText  Localized `model:"security_awareness_text"`

	// Advanced settings
	MaximumNamesize           int  `model:"maximum_namesize"`
	MaximumTextsize           int  `model:"maximum_textsize"`
	MaximumFilesize           int  `model:"maximum_filesize"`
	Tor2WebAdmin              bool `model:"tor2web_admin"`
	Tor2WebCustodian          bool `model:"tor2web_custodian"`
	Tor2WebWhistleblower      bool `model:"tor2web_whistleblower"`
	Tor2WebReceiver           bool `model:"tor2web_receiver"`
	Tor2WebUnauth             bool `model:"tor2web_unauth"`
	AllowUnencrypted          bool `model:"allow_unencrypted"`
	DisableEncryptionWarnings bool `model:"disable_encryption_warnings"`
	AllowIframesInclusion     bool `model:"allow_iframes_inclusion"`
	SubmissionMinimumDelay    int  `model:"submission_minimum_delay"`
	SubmissionMaximumTTL      int  `model:"submission_maximum_ttl"`

	// Default privileges of receivers
	CanPostponeExpiration bool `model:"can_postpone_expiration"`
	CanDeleteSubmission   bool `model:"can_delete_submission"`
	CanGrantPermissions   bool `model:"can_grant_permissions"`

	Ahmia         bool `model:"ahmia"`
	AllowIndexing bool `model:"allow_indexing"`

	WizardDone bool `model:"wizard_done"`

	DisableSubmissions                bool `model:"disable_submissions"`
	DisablePrivacyBadge               bool `model:"disable_privacy_badge"`
	DisableSecurityAwarenessBadge     bool `model:"disable_security_awareness_badge"`
	DisableSecurityAwarenessQuestions bool `model:"disable_security_awareness_questions"`
	DisableKeyCodeHint                bool `model:"disable_key_code_hint"`
	DisableDonationPanel              bool `model:"disable_donation_panel"`

	EnableCaptcha     bool `model:"enable_captcha"`
	EnableProofOfWork bool `model:"enable_proof_of_work"`

	EnableExperimentalFeatures bool `model:"enable_experimental_features"`

	WhistleblowingQuestion      Localized `model:"whistleblowing_question"`
	WhistleblowingButton        Localized `model:"whistleblowing_button"`
	WhistleblowingReceiptPrompt Localized `model:"whistleblowing_receipt_prompt"`

	SimplifiedLogin bool `model:"simplified_login"`

	EnableCustomPrivacyBadge bool      `model:"enable_custom_privacy_badge"`
	CustomPrivacyBadgeTor    Localized `model:"custom_privacy_badge_tor"`
	CustomPrivacyBadgeNone   Localized `model:"custom_privacy_badge_none"`

	HeaderTitleHomepage       Localized `model:"header_title_homepage"`
	HeaderTitleSubmissionpage Localized `model:"header_title_submissionpage"`
	HeaderTitleReceiptpage    Localized `model:"header_title_receiptpage"`
	HeaderTitleTippage        Localized `model:"header_title_tippage"`

	WidgetCommentsTitle Localized `model:"widget_comments_title"`
	WidgetMessagesTitle Localized `model:"widget_messages_title"`
	WidgetFilesTitle    Localized `model:"widget_files_title"`

	LandingPage string `model:"landing_page"`

	ContextsClarification           Localized `model:"contexts_clarification"`
	ShowSmallContextCards           bool      `model:"show_small_context_cards"`
	ShowContextsInAlphabeticalOrder bool      `model:"show_contexts_in_alphabetical_order"`

	// WBTipTimeToLive is the whistleblower access retention window in days.
	WBTipTimeToLive int `model:"wbtip_timetolive"`

	ThresholdFreeDiskMegabytesHigh   int `model:"threshold_free_disk_megabytes_high"`
	ThresholdFreeDiskMegabytesMedium int `model:"threshold_free_disk_megabytes_medium"`
	ThresholdFreeDiskMegabytesLow    int `model:"threshold_free_disk_megabytes_low"`

	ThresholdFreeDiskPercentageHigh   int `model:"threshold_free_disk_percentage_high"`
	ThresholdFreeDiskPercentageMedium int `model:"threshold_free_disk_percentage_medium"`
	ThresholdFreeDiskPercentageLow    int `model:"threshold_free_disk_percentage_low"`

	ContextSelectorType string `model:"context_selector_type"`
}

// NewNode creates the settings singleton with its bootstrap defaults.
func NewNode() *Node {
	langs := make([]any, 0, 8)
	for _, c := range []string{"en"} {
		langs = append(langs, c)
	}
	return &Node{
		ID:        NewID(),
		Version:   version.Version,
		VersionDB: version.DatabaseVersion,

		TBDownloadLink: "https://www.torproject.org/download/download",

		LanguagesEnabled: langs,
		DefaultLanguage:  "en",
		DefaultPassword:  "changeme",

		MaximumNamesize:        128,
		MaximumTextsize:        4096,
		MaximumFilesize:        30,
		Tor2WebAdmin:           true,
		Tor2WebCustodian:       true,
		Tor2WebReceiver:        true,
		Tor2WebUnauth:          true,
		AllowUnencrypted:       true,
		SubmissionMinimumDelay: 10,
		SubmissionMaximumTTL:   10800,

		EnableCaptcha:     true,
		EnableProofOfWork: true,

		SimplifiedLogin: true,

		LandingPage: "homepage",

		WBTipTimeToLive: 90,

		ThresholdFreeDiskMegabytesHigh:   200,
		ThresholdFreeDiskMegabytesMedium: 500,
		ThresholdFreeDiskMegabytesLow:    1000,

		ThresholdFreeDiskPercentageHigh:   3,
		ThresholdFreeDiskPercentageMedium: 5,
		ThresholdFreeDiskPercentageLow:    10,

		ContextSelectorType: "list",
	}
}

func init() {
	register(&Node{}, &Schema{
		Table: "node",
		Fields: map[string]FieldSpec{
			"name":                  {Bucket: Text, Validator: ShortText},
			"public_site":           {Bucket: Text, Validator: ShortText},
			"hidden_service":        {Bucket: Text, Validator: ShortText},
			"tb_download_link":      {Bucket: Text, Validator: ShortText},
			"default_language":      {Bucket: Text, Validator: ShortText},
			"default_password":      {Bucket: Text, Validator: LongText},
			"landing_page":          {Bucket: Text},
			"context_selector_type": {Bucket: Text, Validator: ShortText},

			"maximum_namesize":                      {Bucket: Int, Validator: NatNum},
			"maximum_textsize":                      {Bucket: Int, Validator: NatNum},
			"maximum_filesize":                      {Bucket: Int, Validator: NatNum},
			"submission_minimum_delay":              {Bucket: Int, Validator: NatNum},
			"submission_maximum_ttl":                {Bucket: Int, Validator: NatNum},
			"threshold_free_disk_megabytes_high":    {Bucket: Int, Validator: NatNum},
			"threshold_free_disk_megabytes_medium":  {Bucket: Int, Validator: NatNum},
			"threshold_free_disk_megabytes_low":     {Bucket: Int, Validator: NatNum},
			"threshold_free_disk_percentage_high":   {Bucket: Int},
			"threshold_free_disk_percentage_medium": {Bucket: Int},
			"threshold_free_disk_percentage_low":    {Bucket: Int},
			"wbtip_timetolive":                      {Bucket: Int, Validator: NatNum},

			"tor2web_admin":                        {Bucket: Bool},
			"tor2web_receiver":                     {Bucket: Bool},
			"tor2web_whistleblower":                {Bucket: Bool},
			"tor2web_custodian":                    {Bucket: Bool},
			"tor2web_unauth":                       {Bucket: Bool},
			"can_postpone_expiration":              {Bucket: Bool},
			"can_delete_submission":                {Bucket: Bool},
			"can_grant_permissions":                {Bucket: Bool},
			"ahmia":                                {Bucket: Bool},
			"allow_indexing":                       {Bucket: Bool},
			"allow_unencrypted":                    {Bucket: Bool},
			"disable_encryption_warnings":          {Bucket: Bool},
			"simplified_login":                     {Bucket: Bool},
			"show_contexts_in_alphabetical_order":  {Bucket: Bool},
			"show_small_context_cards":             {Bucket: Bool},
			"allow_iframes_inclusion":              {Bucket: Bool},
			"disable_submissions":                  {Bucket: Bool},
			"disable_privacy_badge":                {Bucket: Bool},
			"disable_security_awareness_badge":     {Bucket: Bool},
			"disable_security_awareness_questions": {Bucket: Bool},
			"enable_custom_privacy_badge":          {Bucket: Bool},
			"disable_key_code_hint":                {Bucket: Bool},
			"disable_donation_panel":               {Bucket: Bool},
			"enable_captcha":                       {Bucket: Bool},
			"enable_proof_of_work":                 {Bucket: Bool},
			"enable_experimental_features":         {Bucket: Bool},
			// wizard_done is excluded: it is set by the backend only.

			"description":                   {Bucket: LocalizedText, Validator: LongLocal},
			"presentation":                  {Bucket: LocalizedText, Validator: LongLocal},
			"footer":                        {Bucket: LocalizedText, Validator: LongLocal},
			"security_awareness_title":      {Bucket: LocalizedText, Validator: LongLocal},
			"security_awareness_text":       {Bucket: LocalizedText, Validator: LongLocal},
			"whistleblowing_question":       {Bucket: LocalizedText, Validator: LongLocal},
			"whistleblowing_button":         {Bucket: LocalizedText, Validator: LongLocal},
			"whistleblowing_receipt_prompt": {Bucket: LocalizedText, Validator: LongLocal},
			"custom_privacy_badge_tor":      {Bucket: LocalizedText, Validator: LongLocal},
			"custom_privacy_badge_none":     {Bucket: LocalizedText, Validator: LongLocal},
			"header_title_homepage":         {Bucket: LocalizedText, Validator: LongLocal},
			"header_title_submissionpage":   {Bucket: LocalizedText, Validator: LongLocal},
			"header_title_receiptpage":      {Bucket: LocalizedText, Validator: LongLocal},
			"header_title_tippage":          {Bucket: LocalizedText, Validator: LongLocal},
			"contexts_clarification":        {Bucket: LocalizedText, Validator: LongLocal},
			"widget_comments_title":         {Bucket: LocalizedText, Validator: ShortLocal},
			"widget_messages_title":         {Bucket: LocalizedText, Validator: ShortLocal},
			"widget_files_title":            {Bucket: LocalizedText, Validator: ShortLocal},
		},
		Hidden: []string{"basic_auth_password", "receipt_salt"},
	})
}
