package store

import (
	"time"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
)

// ReceiverTipsByInternalTip returns every receiver's view over the tip.
func (tx *Tx) ReceiverTipsByInternalTip(internalTipID string) ([]*model.ReceiverTip, error) {
	var out []*model.ReceiverTip
	err := tx.list(&model.ReceiverTip{}, func() any {
		rt := &model.ReceiverTip{}
		out = append(out, rt)
		return rt
	}, "internaltip_id = ?", "", internalTipID)
	return out, err
}

// ReceiverTipsByReceiver returns every tip view held by the receiver.
func (tx *Tx) ReceiverTipsByReceiver(receiverID string) ([]*model.ReceiverTip, error) {
	var out []*model.ReceiverTip
	err := tx.list(&model.ReceiverTip{}, func() any {
		rt := &model.ReceiverTip{}
		out = append(out, rt)
		return rt
	}, "receiver_id = ?", "", receiverID)
	return out, err
}

// WhistleblowerTipByInternalTip returns the tip's whistleblower access link,
// or nil when access has been revoked. Revocation has no flag of its own;
// the absence of this row is the signal.
func (tx *Tx) WhistleblowerTipByInternalTip(internalTipID string) (*model.WhistleblowerTip, error) {
	var out []*model.WhistleblowerTip
	err := tx.list(&model.WhistleblowerTip{}, func() any {
		wt := &model.WhistleblowerTip{}
		out = append(out, wt)
		return wt
	}, "internaltip_id = ?", "", internalTipID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// WhistleblowerAccessRevoked reports whether the submitter can still reach
// the tip.
func (tx *Tx) WhistleblowerAccessRevoked(internalTipID string) (bool, error) {
	wt, err := tx.WhistleblowerTipByInternalTip(internalTipID)
	if err != nil {
		return false, err
	}
	return wt == nil, nil
}

// CommentsByInternalTip returns the tip's comments oldest first.
func (tx *Tx) CommentsByInternalTip(internalTipID string) ([]*model.Comment, error) {
	var out []*model.Comment
	err := tx.list(&model.Comment{}, func() any {
		c := &model.Comment{}
		out = append(out, c)
		return c
	}, "internaltip_id = ?", "creation_date", internalTipID)
	return out, err
}

// MessagesByReceiverTip returns the private exchange on a receiver tip
// oldest first.
func (tx *Tx) MessagesByReceiverTip(receiverTipID string) ([]*model.Message, error) {
	var out []*model.Message
	err := tx.list(&model.Message{}, func() any {
		m := &model.Message{}
		out = append(out, m)
		return m
	}, "receivertip_id = ?", "creation_date", receiverTipID)
	return out, err
}

// InternalFilesByInternalTip returns the tip's attachments.
func (tx *Tx) InternalFilesByInternalTip(internalTipID string) ([]*model.InternalFile, error) {
	var out []*model.InternalFile
	err := tx.list(&model.InternalFile{}, func() any {
		f := &model.InternalFile{}
		out = append(out, f)
		return f
	}, "internaltip_id = ?", "creation_date", internalTipID)
	return out, err
}

// ReceiverFilesByReceiverTip returns the receiver's copies of the tip's
// attachments.
func (tx *Tx) ReceiverFilesByReceiverTip(receiverTipID string) ([]*model.ReceiverFile, error) {
	var out []*model.ReceiverFile
	err := tx.list(&model.ReceiverFile{}, func() any {
		f := &model.ReceiverFile{}
		out = append(out, f)
		return f
	}, "receivertip_id = ?", "", receiverTipID)
	return out, err
}

// ReceiverFilesByInternalFile returns every per-receiver copy of one
// attachment.
func (tx *Tx) ReceiverFilesByInternalFile(internalFileID string) ([]*model.ReceiverFile, error) {
	var out []*model.ReceiverFile
	err := tx.list(&model.ReceiverFile{}, func() any {
		f := &model.ReceiverFile{}
		out = append(out, f)
		return f
	}, "internalfile_id = ?", "", internalFileID)
	return out, err
}

// IdentityAccessRequestsByReceiverTip returns the identity requests raised
// on a receiver tip, newest first.
func (tx *Tx) IdentityAccessRequestsByReceiverTip(receiverTipID string) ([]*model.IdentityAccessRequest, error) {
	var out []*model.IdentityAccessRequest
	err := tx.list(&model.IdentityAccessRequest{}, func() any {
		r := &model.IdentityAccessRequest{}
		out = append(out, r)
		return r
	}, "receivertip_id = ?", "request_date DESC", receiverTipID)
	return out, err
}

// FieldAnswersByInternalTip returns the submitted answers of a tip.
func (tx *Tx) FieldAnswersByInternalTip(internalTipID string) ([]*model.FieldAnswer, error) {
	var out []*model.FieldAnswer
	err := tx.list(&model.FieldAnswer{}, func() any {
		a := &model.FieldAnswer{}
		out = append(out, a)
		return a
	}, "internaltip_id = ?", "", internalTipID)
	return out, err
}

// StepsByQuestionnaire returns the questionnaire's steps in presentation
// order.
func (tx *Tx) StepsByQuestionnaire(questionnaireID string) ([]*model.Step, error) {
	var out []*model.Step
	err := tx.list(&model.Step{}, func() any {
		s := &model.Step{}
		out = append(out, s)
		return s
	}, "questionnaire_id = ?", "presentation_order", questionnaireID)
	return out, err
}

// FieldsByStep returns the top level fields of a step.
func (tx *Tx) FieldsByStep(stepID string) ([]*model.Field, error) {
	var out []*model.Field
	err := tx.list(&model.Field{}, func() any {
		f := &model.Field{}
		out = append(out, f)
		return f
	}, "step_id = ?", "y, x", stepID)
	return out, err
}

// FieldsByGroup returns the children of a composite field.
func (tx *Tx) FieldsByGroup(fieldGroupID string) ([]*model.Field, error) {
	var out []*model.Field
	err := tx.list(&model.Field{}, func() any {
		f := &model.Field{}
		out = append(out, f)
		return f
	}, "fieldgroup_id = ?", "y, x", fieldGroupID)
	return out, err
}

// OptionsByField returns a field's options in presentation order.
func (tx *Tx) OptionsByField(fieldID string) ([]*model.FieldOption, error) {
	var out []*model.FieldOption
	err := tx.list(&model.FieldOption{}, func() any {
		o := &model.FieldOption{}
		out = append(out, o)
		return o
	}, "field_id = ?", "presentation_order", fieldID)
	return out, err
}

// AttrsByField returns a field's typed attributes.
func (tx *Tx) AttrsByField(fieldID string) ([]*model.FieldAttr, error) {
	var out []*model.FieldAttr
	err := tx.list(&model.FieldAttr{}, func() any {
		a := &model.FieldAttr{}
		out = append(out, a)
		return a
	}, "field_id = ?", "name", fieldID)
	return out, err
}

// UserByUsername resolves a login name. Returns ErrNotFound when unknown.
func (tx *Tx) UserByUsername(username string) (*model.User, error) {
	var out []*model.User
	err := tx.list(&model.User{}, func() any {
		u := &model.User{}
		out = append(out, u)
		return u
	}, "username = ?", "", username)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "user %q", username)
	}
	return out[0], nil
}

// ExpiredInternalTips returns the tips whose expiration date has been set
// and has passed. RFC3339 text compares in time order, so the cutoffs work
// lexically. Tips carrying the null timestamp never expire.
func (tx *Tx) ExpiredInternalTips(now time.Time) ([]*model.InternalTip, error) {
	var out []*model.InternalTip
	err := tx.list(&model.InternalTip{}, func() any {
		t := &model.InternalTip{}
		out = append(out, t)
		return t
	}, "expiration_date > ? AND expiration_date < ?", "",
		model.NullTime.Format(time.RFC3339), now.Format(time.RFC3339))
	return out, err
}
