package model

import "github.com/tipline/tipline/errors"

// Field instance kinds: a master template or a concrete instance cloned
// from one.
const (
	FieldInstance  = "instance"
	FieldReference = "reference"
	FieldTemplate  = "template"
)

// Questionnaire is an ordered collection of steps attached to contexts.
type Questionnaire struct {
	ID string `model:"id"`

	Key                               string `model:"key"`
	Name                              string `model:"name"`
	ShowStepsNavigationBar            bool   `model:"show_steps_navigation_bar"`
	StepsNavigationRequiresCompletion bool   `model:"steps_navigation_requires_completion"`
	EnableWhistleblowerIdentity       bool   `model:"enable_whistleblower_identity"`

	Editable bool `model:"editable"`
}

// NewQuestionnaire creates an editable questionnaire.
func NewQuestionnaire() *Questionnaire {
	return &Questionnaire{ID: NewID(), Editable: true}
}

// Step groups fields inside a questionnaire.
type Step struct {
	ID string `model:"id"`

	QuestionnaireID   string    `model:"questionnaire_id"`
	Label             Localized `model:"label"`
	Description       Localized `model:"description"`
	PresentationOrder int       `model:"presentation_order"`
	TriggeredByScore  int       `model:"triggered_by_score"`
}

// NewStep creates a step for a questionnaire.
func NewStep(questionnaireID string) *Step {
	return &Step{ID: NewID(), QuestionnaireID: questionnaireID}
}

// Field is one questionnaire input. Fields may nest into groups and may be
// cloned from a template; instance distinguishes the master template from
// concrete instances.
type Field struct {
	ID string `model:"id"`

	X     int `model:"x"`
	Y     int `model:"y"`
	Width int `model:"width"`

	Key string `model:"key"`

	Label       Localized `model:"label"`
	Description Localized `model:"description"`
	Hint        Localized `model:"hint"`

	Required bool `model:"required"`
	Preview  bool `model:"preview"`

	MultiEntry     bool      `model:"multi_entry"`
	MultiEntryHint Localized `model:"multi_entry_hint"`

	// StatsEnabled duplicates the field for statistics collection when
	// encryption is enabled.
	StatsEnabled bool `model:"stats_enabled"`

	TriggeredByScore int `model:"triggered_by_score"`

	FieldGroupID string `model:"fieldgroup_id"`
	StepID       string `model:"step_id"`
	TemplateID   string `model:"template_id"`

	Type string `model:"type"`

	Instance string `model:"instance"`
	Editable bool   `model:"editable"`
}

// NewField creates an editable input box instance.
func NewField() *Field {
	return &Field{
		ID:       NewID(),
		Type:     "inputbox",
		Instance: FieldInstance,
		Editable: true,
	}
}

// FieldOption is a selectable option of a field, optionally scoring and
// triggering other fields or steps when selected.
type FieldOption struct {
	ID string `model:"id"`

	FieldID           string    `model:"field_id"`
	PresentationOrder int       `model:"presentation_order"`
	Label             Localized `model:"label"`
	ScorePoints       int       `model:"score_points"`
	TriggerField      string    `model:"trigger_field"`
	TriggerStep       string    `model:"trigger_step"`
}

// NewFieldOption creates an option for a field.
func NewFieldOption(fieldID string) *FieldOption {
	return &FieldOption{ID: NewID(), FieldID: fieldID}
}

// FieldAttr is a typed attribute of a field. It deliberately bypasses the
// generic bucket dispatch: field_id, name, and type are always coerced to
// text, while the handling of value is decided by the type sub-field read
// at update time. A "localized" type merges value as a localized mapping;
// every other type coerces value to plain text.
type FieldAttr struct {
	ID string `model:"id"`

	FieldID string `model:"field_id"`
	Name    string `model:"name"`
	Type    string `model:"type"`
	Value   any    `model:"value"`
}

// NewFieldAttr creates an attribute for a field.
func NewFieldAttr(fieldID string) *FieldAttr {
	return &FieldAttr{ID: NewID(), FieldID: fieldID}
}

// update implements the per-instance, data-driven typing rule. All four
// sub-fields are required; the whole update is applied only after every
// value has been coerced.
func (fa *FieldAttr) update(values map[string]any) error {
	if values == nil {
		return nil
	}

	for _, k := range []string{"field_id", "name", "type", "value"} {
		if _, ok := values[k]; !ok {
			return errors.NewValidation(k, "required")
		}
	}

	fieldID := asText(values["field_id"])
	name := asText(values["name"])
	kind := asText(values["type"])

	var value any
	if kind == "localized" {
		in, ok := asLocalized(values["value"])
		if !ok {
			return errors.NewTypeCoercion("value", "localized mapping")
		}
		current, _ := fa.Value.(Localized)
		value = current.Merged(in)
	} else {
		value = asText(values["value"])
	}

	fa.FieldID = fieldID
	fa.Name = name
	fa.Type = kind
	fa.Value = value
	return nil
}

// FieldAnswer holds one submitted answer; non-leaf answers group into
// repeatable answer groups for multi-entry fields.
type FieldAnswer struct {
	ID string `model:"id"`

	InternalTipID      string `model:"internaltip_id"`
	FieldAnswerGroupID string `model:"fieldanswergroup_id"`
	Key                string `model:"key"`
	IsLeaf             bool   `model:"is_leaf"`
	Value              string `model:"value"`
}

// NewFieldAnswer creates a leaf answer for an internal tip.
func NewFieldAnswer(internalTipID string) *FieldAnswer {
	return &FieldAnswer{ID: NewID(), InternalTipID: internalTipID, IsLeaf: true}
}

// FieldAnswerGroup numbers one repetition of a multi-entry answer.
type FieldAnswerGroup struct {
	ID string `model:"id"`

	Number        int    `model:"number"`
	FieldAnswerID string `model:"fieldanswer_id"`
}

// NewFieldAnswerGroup creates a repetition group under an answer.
func NewFieldAnswerGroup(fieldAnswerID string) *FieldAnswerGroup {
	return &FieldAnswerGroup{ID: NewID(), FieldAnswerID: fieldAnswerID}
}

func init() {
	register(&Questionnaire{}, &Schema{
		Table: "questionnaire",
		Fields: map[string]FieldSpec{
			"name": {Bucket: Text},
			"key":  {Bucket: Text},

			"editable":                             {Bucket: Bool},
			"show_steps_navigation_bar":            {Bucket: Bool},
			"steps_navigation_requires_completion": {Bucket: Bool},
		},
	})

	register(&Step{}, &Schema{
		Table: "step",
		Fields: map[string]FieldSpec{
			"questionnaire_id":   {Bucket: Text},
			"presentation_order": {Bucket: Int},
			"triggered_by_score": {Bucket: Int},
			"label":              {Bucket: LocalizedText},
			"description":        {Bucket: LocalizedText},
		},
	})

	register(&Field{}, &Schema{
		Table: "field",
		Fields: map[string]FieldSpec{
			"type":     {Bucket: Text},
			"instance": {Bucket: Text},
			"key":      {Bucket: Text},

			"x":                  {Bucket: Int},
			"y":                  {Bucket: Int},
			"width":              {Bucket: Int},
			"triggered_by_score": {Bucket: Int},

			"label":            {Bucket: LocalizedText, Validator: LongLocal},
			"description":      {Bucket: LocalizedText, Validator: LongLocal},
			"hint":             {Bucket: LocalizedText, Validator: LongLocal},
			"multi_entry_hint": {Bucket: LocalizedText, Validator: ShortLocal},

			"editable":      {Bucket: Bool},
			"multi_entry":   {Bucket: Bool},
			"preview":       {Bucket: Bool},
			"required":      {Bucket: Bool},
			"stats_enabled": {Bucket: Bool},
		},
	})

	register(&FieldOption{}, &Schema{
		Table: "fieldoption",
		Fields: map[string]FieldSpec{
			"field_id":           {Bucket: Text},
			"presentation_order": {Bucket: Int},
			"score_points":       {Bucket: Int},
			"label":              {Bucket: LocalizedText},
		},
	})

	register(&FieldAttr{}, &Schema{
		Table: "fieldattr",
		// Settable through the custom update rule only; the bucket table
		// records the always-text sub-fields for serialization purposes.
		Fields: map[string]FieldSpec{
			"field_id": {Bucket: Text},
			"name":     {Bucket: Text},
			"type":     {Bucket: Text},
		},
	})

	register(&FieldAnswer{}, &Schema{
		Table: "fieldanswer",
		Fields: map[string]FieldSpec{
			"internaltip_id": {Bucket: Text},
			"key":            {Bucket: Text},
			"value":          {Bucket: Text},
			"is_leaf":        {Bucket: Bool},
		},
	})

	register(&FieldAnswerGroup{}, &Schema{
		Table: "fieldanswergroup",
		Fields: map[string]FieldSpec{
			"fieldanswer_id": {Bucket: Text},
			"number":         {Bucket: Int},
		},
	})
}
