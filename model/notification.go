package model

import "time"

// Notification is the mail delivery settings singleton: SMTP parameters
// plus the localized template slots for every notification kind. Like Node,
// absence means unconfigured.
type Notification struct {
	ID string `model:"id"`

	Server string `model:"server"`
	Port   int    `model:"port"`

	Username string `model:"username"`
	Password string `model:"password"`

	SourceName  string `model:"source_name"`
	SourceEmail string `model:"source_email"`

	Security string `model:"security"`
	// security types: 'TLS', 'SSL'

	// Admin templates
	AdminPGPAlertMailTitle      Localized `model:"admin_pgp_alert_mail_title"`
	AdminPGPAlertMailTemplate   Localized `model:"admin_pgp_alert_mail_template"`
	AdminAnomalyMailTemplate    Localized `model:"admin_anomaly_mail_template"`
	AdminAnomalyMailTitle       Localized `model:"admin_anomaly_mail_title"`
	AdminAnomalyDiskLow         Localized `model:"admin_anomaly_disk_low"`
	AdminAnomalyDiskMedium      Localized `model:"admin_anomaly_disk_medium"`
	AdminAnomalyDiskHigh        Localized `model:"admin_anomaly_disk_high"`
	AdminAnomalyActivities      Localized `model:"admin_anomaly_activities"`
	AdminTestStaticMailTemplate Localized `model:"admin_test_static_mail_template"`
	AdminTestStaticMailTitle    Localized `model:"admin_test_static_mail_title"`

	// Receiver templates
	TipMailTemplate           Localized `model:"tip_mail_template"`
	TipMailTitle              Localized `model:"tip_mail_title"`
	FileMailTemplate          Localized `model:"file_mail_template"`
	FileMailTitle             Localized `model:"file_mail_title"`
	CommentMailTemplate       Localized `model:"comment_mail_template"`
	CommentMailTitle          Localized `model:"comment_mail_title"`
	MessageMailTemplate       Localized `model:"message_mail_template"`
	MessageMailTitle          Localized `model:"message_mail_title"`
	TipExpirationMailTemplate Localized `model:"tip_expiration_mail_template"`
	TipExpirationMailTitle    Localized `model:"tip_expiration_mail_title"`
	PGPAlertMailTitle         Localized `model:"pgp_alert_mail_title"`
	PGPAlertMailTemplate      Localized `model:"pgp_alert_mail_template"`

	ReceiverNotificationLimitReachedMailTemplate Localized `model:"receiver_notification_limit_reached_mail_template"`
	ReceiverNotificationLimitReachedMailTitle    Localized `model:"receiver_notification_limit_reached_mail_title"`

	ExportTemplate             Localized `model:"export_template"`
	ExportMessageRecipient     Localized `model:"export_message_recipient"`
	ExportMessageWhistleblower Localized `model:"export_message_whistleblower"`

	// Whistleblower identity templates
	IdentityAccessAuthorizedMailTemplate Localized `model:"identity_access_authorized_mail_template"`
	IdentityAccessAuthorizedMailTitle    Localized `model:"identity_access_authorized_mail_title"`
	IdentityAccessDeniedMailTemplate     Localized `model:"identity_access_denied_mail_template"`
	IdentityAccessDeniedMailTitle        Localized `model:"identity_access_denied_mail_title"`
	IdentityAccessRequestMailTemplate    Localized `model:"identity_access_request_mail_template"`
	IdentityAccessRequestMailTitle       Localized `model:"identity_access_request_mail_title"`
	IdentityProvidedMailTemplate         Localized `model:"identity_provided_mail_template"`
	IdentityProvidedMailTitle            Localized `model:"identity_provided_mail_title"`

	DisableAdminNotificationEmails     bool `model:"disable_admin_notification_emails"`
	DisableCustodianNotificationEmails bool `model:"disable_custodian_notification_emails"`
	DisableReceiverNotificationEmails  bool `model:"disable_receiver_notification_emails"`
	SendEmailForEveryEvent             bool `model:"send_email_for_every_event"`

	TipExpirationThreshold       int `model:"tip_expiration_threshold"`
	NotificationThresholdPerHour int `model:"notification_threshold_per_hour"`
	NotificationSuspensionTime   int `model:"notification_suspension_time"`

	ExceptionEmailAddress           string    `model:"exception_email_address"`
	ExceptionEmailPGPKeyFingerprint string    `model:"exception_email_pgp_key_fingerprint"`
	ExceptionEmailPGPKeyPublic      string    `model:"exception_email_pgp_key_public"`
	ExceptionEmailPGPKeyExpiration  time.Time `model:"exception_email_pgp_key_expiration"`
}

// NewNotification creates the notification singleton with placeholder
// delivery settings that admins are expected to replace.
func NewNotification() *Notification {
	return &Notification{
		ID:          NewID(),
		Server:      "mail.example.org",
		Port:        9267,
		Username:    "hey_you_should_change_me",
		Password:    "yes_you_really_should_change_me",
		SourceName:  "Tipline - CHANGE EMAIL ACCOUNT USED FOR NOTIFICATION",
		SourceEmail: "notification@example.org",
		Security:    "TLS",

		SendEmailForEveryEvent: true,

		TipExpirationThreshold:       72,
		NotificationThresholdPerHour: 20,
		NotificationSuspensionTime:   2 * 3600,

		ExceptionEmailPGPKeyExpiration: NullTime,
	}
}

func init() {
	register(&Notification{}, &Schema{
		Table: "notification",
		Fields: map[string]FieldSpec{
			"server":                  {Bucket: Text, Validator: ShortText},
			"username":                {Bucket: Text, Validator: ShortText},
			"source_name":             {Bucket: Text, Validator: ShortText},
			"source_email":            {Bucket: Text, Validator: ShortText},
			"security":                {Bucket: Text, Validator: ShortText},
			"exception_email_address": {Bucket: Text, Validator: ShortText},

			"admin_anomaly_mail_title":        {Bucket: LocalizedText, Validator: LongLocal},
			"admin_anomaly_mail_template":     {Bucket: LocalizedText, Validator: LongLocal},
			"admin_anomaly_disk_low":          {Bucket: LocalizedText, Validator: LongLocal},
			"admin_anomaly_disk_medium":       {Bucket: LocalizedText, Validator: LongLocal},
			"admin_anomaly_disk_high":         {Bucket: LocalizedText, Validator: LongLocal},
			"admin_anomaly_activities":        {Bucket: LocalizedText, Validator: LongLocal},
			"admin_pgp_alert_mail_title":      {Bucket: LocalizedText, Validator: LongLocal},
			"admin_pgp_alert_mail_template":   {Bucket: LocalizedText, Validator: LongLocal},
			"admin_test_static_mail_template": {Bucket: LocalizedText, Validator: LongLocal},
			"admin_test_static_mail_title":    {Bucket: LocalizedText, Validator: LongLocal},
			"pgp_alert_mail_title":            {Bucket: LocalizedText, Validator: LongLocal},
			"pgp_alert_mail_template":         {Bucket: LocalizedText, Validator: LongLocal},
			"tip_mail_template":               {Bucket: LocalizedText, Validator: LongLocal},
			"tip_mail_title":                  {Bucket: LocalizedText, Validator: LongLocal},
			"file_mail_template":              {Bucket: LocalizedText, Validator: LongLocal},
			"file_mail_title":                 {Bucket: LocalizedText, Validator: LongLocal},
			"comment_mail_template":           {Bucket: LocalizedText, Validator: LongLocal},
			"comment_mail_title":              {Bucket: LocalizedText, Validator: LongLocal},
			"message_mail_template":           {Bucket: LocalizedText, Validator: LongLocal},
			"message_mail_title":              {Bucket: LocalizedText, Validator: LongLocal},
			"tip_expiration_mail_template":    {Bucket: LocalizedText, Validator: LongLocal},
			"tip_expiration_mail_title":       {Bucket: LocalizedText, Validator: LongLocal},

			"receiver_notification_limit_reached_mail_template": {Bucket: LocalizedText, Validator: LongLocal},
			"receiver_notification_limit_reached_mail_title":    {Bucket: LocalizedText, Validator: LongLocal},

			"identity_access_authorized_mail_template": {Bucket: LocalizedText, Validator: LongLocal},
			"identity_access_authorized_mail_title":    {Bucket: LocalizedText, Validator: LongLocal},
			"identity_access_denied_mail_template":     {Bucket: LocalizedText, Validator: LongLocal},
			"identity_access_denied_mail_title":        {Bucket: LocalizedText, Validator: LongLocal},
			"identity_access_request_mail_template":    {Bucket: LocalizedText, Validator: LongLocal},
			"identity_access_request_mail_title":       {Bucket: LocalizedText, Validator: LongLocal},
			"identity_provided_mail_template":          {Bucket: LocalizedText, Validator: LongLocal},
			"identity_provided_mail_title":             {Bucket: LocalizedText, Validator: LongLocal},

			"export_template":              {Bucket: LocalizedText, Validator: LongLocal},
			"export_message_whistleblower": {Bucket: LocalizedText, Validator: LongLocal},
			"export_message_recipient":     {Bucket: LocalizedText, Validator: LongLocal},

			"port":                            {Bucket: Int},
			"tip_expiration_threshold":        {Bucket: Int, Validator: NatNum},
			"notification_threshold_per_hour": {Bucket: Int, Validator: NatNum},
			"notification_suspension_time":    {Bucket: Int, Validator: NatNum},

			"disable_admin_notification_emails":    {Bucket: Bool},
			"disable_receiver_notification_emails": {Bucket: Bool},
			"send_email_for_every_event":           {Bucket: Bool},
		},
		Hidden: []string{"password"},
	})
}
