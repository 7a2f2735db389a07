package store

import (
	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
)

// AddReceiverContext pairs a receiver with a context. Both ends must exist;
// a dangling end is a RelationIntegrityError and an existing pair is
// ErrConflict.
func (tx *Tx) AddReceiverContext(contextID, receiverID string) error {
	if ok, err := tx.Exists(&model.Context{}, contextID); err != nil {
		return err
	} else if !ok {
		return errors.NewRelationIntegrity("receiver_context", "context "+contextID)
	}
	if ok, err := tx.Exists(&model.Receiver{}, receiverID); err != nil {
		return err
	} else if !ok {
		return errors.NewRelationIntegrity("receiver_context", "receiver "+receiverID)
	}
	return tx.Add(model.NewReceiverContext(contextID, receiverID))
}

// RemoveReceiverContext unpairs a receiver from a context.
func (tx *Tx) RemoveReceiverContext(contextID, receiverID string) error {
	return tx.Delete(model.NewReceiverContext(contextID, receiverID))
}

// ReceiversOfContext returns the receivers assigned to a context in their
// presentation order.
func (tx *Tx) ReceiversOfContext(contextID string) ([]*model.Receiver, error) {
	var out []*model.Receiver
	err := tx.list(&model.Receiver{}, func() any {
		r := &model.Receiver{}
		out = append(out, r)
		return r
	}, "id IN (SELECT receiver_id FROM receiver_context WHERE context_id = ?)",
		"presentation_order", contextID)
	return out, err
}

// ContextsOfReceiver returns the contexts a receiver is assigned to.
func (tx *Tx) ContextsOfReceiver(receiverID string) ([]*model.Context, error) {
	var out []*model.Context
	err := tx.list(&model.Context{}, func() any {
		c := &model.Context{}
		out = append(out, c)
		return c
	}, "id IN (SELECT context_id FROM receiver_context WHERE receiver_id = ?)",
		"presentation_order", receiverID)
	return out, err
}

// AddReceiverInternalTip pairs a receiver with an internal tip. Both ends
// must exist; a dangling end is a RelationIntegrityError and an existing
// pair is ErrConflict.
func (tx *Tx) AddReceiverInternalTip(receiverID, internalTipID string) error {
	if ok, err := tx.Exists(&model.Receiver{}, receiverID); err != nil {
		return err
	} else if !ok {
		return errors.NewRelationIntegrity("receiver_internaltip", "receiver "+receiverID)
	}
	if ok, err := tx.Exists(&model.InternalTip{}, internalTipID); err != nil {
		return err
	} else if !ok {
		return errors.NewRelationIntegrity("receiver_internaltip", "internaltip "+internalTipID)
	}
	return tx.Add(model.NewReceiverInternalTip(receiverID, internalTipID))
}

// ReceiversOfInternalTip returns the receivers a tip was submitted to.
func (tx *Tx) ReceiversOfInternalTip(internalTipID string) ([]*model.Receiver, error) {
	var out []*model.Receiver
	err := tx.list(&model.Receiver{}, func() any {
		r := &model.Receiver{}
		out = append(out, r)
		return r
	}, "id IN (SELECT receiver_id FROM receiver_internaltip WHERE internaltip_id = ?)",
		"presentation_order", internalTipID)
	return out, err
}
