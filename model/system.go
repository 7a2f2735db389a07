package model

import "time"

// Mail is a spooled notification email awaiting delivery.
type Mail struct {
	ID           string    `model:"id"`
	CreationDate time.Time `model:"creation_date"`

	Address string `model:"address"`
	Subject string `model:"subject"`
	Body    string `model:"body"`

	ProcessingAttempts int `model:"processing_attempts"`
}

// NewMail creates a spool entry.
func NewMail() *Mail {
	return &Mail{ID: NewID(), CreationDate: Now()}
}

// Stats is a periodic activity snapshot.
type Stats struct {
	ID            string    `model:"id"`
	Start         time.Time `model:"start"`
	Summary       any       `model:"summary"`
	FreeDiskSpace int       `model:"free_disk_space"`
}

// NewStats creates a snapshot record.
func NewStats() *Stats {
	return &Stats{ID: NewID()}
}

// Anomalies records one anomaly detection event.
type Anomalies struct {
	ID     string    `model:"id"`
	Date   time.Time `model:"date"`
	Alarm  int       `model:"alarm"`
	Events any       `model:"events"`
}

// NewAnomalies creates an anomaly record.
func NewAnomalies() *Anomalies {
	return &Anomalies{ID: NewID()}
}

// ArchivedSchema caches a rendered questionnaire schema, keyed by the
// composite of content hash and rendering kind.
type ArchivedSchema struct {
	Hash   string `model:"hash"`
	Type   string `model:"type"`
	Schema any    `model:"schema"`
}

// NewArchivedSchema creates a cache entry under its natural key.
func NewArchivedSchema(hash, kind string) *ArchivedSchema {
	return &ArchivedSchema{Hash: hash, Type: kind}
}

// ApplicationData versions the default questionnaire blob.
type ApplicationData struct {
	ID                   string `model:"id"`
	Version              int    `model:"version"`
	DefaultQuestionnaire any    `model:"default_questionnaire"`
}

// NewApplicationData creates a versioned blob record.
func NewApplicationData() *ApplicationData {
	return &ApplicationData{ID: NewID()}
}

// Counter is a generic named counter keyed by a short code.
type Counter struct {
	Key        string    `model:"key"`
	Counter    int       `model:"counter"`
	UpdateDate time.Time `model:"update_date"`
}

// NewCounter creates a counter starting at one.
func NewCounter(key string) *Counter {
	return &Counter{Key: key, Counter: 1, UpdateDate: Now()}
}

// ShortURL maps a shortener path to its destination.
type ShortURL struct {
	ID       string `model:"id"`
	Shorturl string `model:"shorturl"`
	Longurl  string `model:"longurl"`
}

// NewShortURL creates a shortener mapping.
func NewShortURL() *ShortURL {
	return &ShortURL{ID: NewID()}
}

// CustomTexts holds the per-language text overrides, keyed by language.
type CustomTexts struct {
	Lang  string `model:"lang"`
	Texts any    `model:"texts"`
}

// NewCustomTexts creates the override record for a language.
func NewCustomTexts(lang string) *CustomTexts {
	return &CustomTexts{Lang: lang}
}

// ReceiverContext is the join record pairing receivers with contexts. Join
// records carry no identifier and no payload beyond the two references;
// the pair is unique.
type ReceiverContext struct {
	ContextID  string `model:"context_id"`
	ReceiverID string `model:"receiver_id"`
}

// NewReceiverContext pairs a context with a receiver.
func NewReceiverContext(contextID, receiverID string) *ReceiverContext {
	return &ReceiverContext{ContextID: contextID, ReceiverID: receiverID}
}

// ReceiverInternalTip is the join record pairing receivers with internal
// tips.
type ReceiverInternalTip struct {
	ReceiverID    string `model:"receiver_id"`
	InternalTipID string `model:"internaltip_id"`
}

// NewReceiverInternalTip pairs a receiver with an internal tip.
func NewReceiverInternalTip(receiverID, internalTipID string) *ReceiverInternalTip {
	return &ReceiverInternalTip{ReceiverID: receiverID, InternalTipID: internalTipID}
}

func init() {
	register(&Mail{}, &Schema{
		Table: "mail",
		Fields: map[string]FieldSpec{
			"address": {Bucket: Text},
			"subject": {Bucket: Text},
			"body":    {Bucket: Text},
		},
	})

	register(&Stats{}, &Schema{
		Table:  "stats",
		Fields: map[string]FieldSpec{},
	})

	register(&Anomalies{}, &Schema{
		Table:  "anomalies",
		Fields: map[string]FieldSpec{},
	})

	register(&ArchivedSchema{}, &Schema{
		Table: "archivedschema",
		Key:   []string{"hash", "type"},
		Fields: map[string]FieldSpec{
			"hash": {Bucket: Text},
		},
	})

	register(&ApplicationData{}, &Schema{
		Table: "applicationdata",
		Fields: map[string]FieldSpec{
			"version":               {Bucket: Int},
			"default_questionnaire": {Bucket: Opaque},
		},
	})

	register(&Counter{}, &Schema{
		Table: "counter",
		Key:   []string{"key"},
		Fields: map[string]FieldSpec{
			"key": {Bucket: Text, Validator: ShortText},
		},
	})

	register(&ShortURL{}, &Schema{
		Table: "shorturl",
		Fields: map[string]FieldSpec{
			"shorturl": {Bucket: Text, Validator: ValidShortURL},
			"longurl":  {Bucket: Text, Validator: ValidLongURL},
		},
	})

	register(&CustomTexts{}, &Schema{
		Table: "customtexts",
		Key:   []string{"lang"},
		Fields: map[string]FieldSpec{
			"lang":  {Bucket: Text, Validator: ShortText},
			"texts": {Bucket: Opaque},
		},
	})

	register(&ReceiverContext{}, &Schema{
		Table:  "receiver_context",
		Key:    []string{"context_id", "receiver_id"},
		Fields: map[string]FieldSpec{},
	})

	register(&ReceiverInternalTip{}, &Schema{
		Table:  "receiver_internaltip",
		Key:    []string{"receiver_id", "internaltip_id"},
		Fields: map[string]FieldSpec{},
	})
}
