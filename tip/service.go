// Package tip implements the receiver-side operations over submissions:
// access with its counters, comments, private messages, identity access
// requests, expiration postponement, and the full delete cascade.
//
// Every operation runs inside one store transaction. Permission checks
// combine the node-wide defaults from config.Memory with the receiver's own
// privileges; either side being set is enough.
package tip

import (
	"time"

	"go.uber.org/zap"

	"github.com/tipline/tipline/config"
	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/store"
)

// Service exposes the receiver tip operations.
type Service struct {
	store *store.Store
	mem   *config.Memory
	log   *zap.SugaredLogger
}

// NewService creates the tip service. mem may be config.Mem or a dedicated
// snapshot in tests; a nil logger keeps the service silent.
func NewService(s *store.Store, mem *config.Memory, logger *zap.SugaredLogger) *Service {
	return &Service{store: s, mem: mem, log: logger}
}

// accessRTip loads the receiver tip and enforces ownership. A tip owned by
// another receiver is reported as not found, indistinguishable from a tip
// that does not exist.
func accessRTip(tx *store.Tx, userID, rtipID string) (*model.ReceiverTip, error) {
	rtip := &model.ReceiverTip{}
	err := tx.Get(rtip, rtipID)
	if errors.IsNotFound(err) || (err == nil && rtip.ReceiverID != userID) {
		return nil, errors.Wrapf(errors.ErrNotFound, "receivertip %s", rtipID)
	}
	if err != nil {
		return nil, err
	}
	return rtip, nil
}

// Access records one access by the receiver and returns the full serialized
// view of the tip.
func (s *Service) Access(userID, rtipID string) (map[string]any, error) {
	var view map[string]any
	err := s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		rtip.AccessCounter++
		rtip.LastAccess = model.Now()
		if err := tx.Save(rtip); err != nil {
			return err
		}

		if s.log != nil {
			s.log.Debugw("Tip access granted",
				"internaltip_id", rtip.InternalTipID,
				"user_id", userID,
				"access_counter", rtip.AccessCounter)
		}

		view, err = serializeRTip(tx, rtip)
		return err
	})
	return view, err
}

// CreateComment attaches a receiver comment to the tip, visible to every
// receiver, and touches the submission's update date.
func (s *Service) CreateComment(userID, rtipID, content string) (*model.Comment, error) {
	var comment *model.Comment
	err := s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		if err := touchInternalTip(tx, rtip.InternalTipID); err != nil {
			return err
		}

		comment = model.NewComment(rtip.InternalTipID)
		comment.AuthorID = rtip.ReceiverID
		comment.Content = content
		comment.Type = model.AuthorReceiver
		return tx.Add(comment)
	})
	return comment, err
}

// CreateMessage attaches a private receiver message to the tip, visible to
// the whistleblower only, and touches the submission's update date.
func (s *Service) CreateMessage(userID, rtipID, content string) (*model.Message, error) {
	var msg *model.Message
	err := s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		if err := touchInternalTip(tx, rtip.InternalTipID); err != nil {
			return err
		}

		msg = model.NewMessage(rtip.ID)
		msg.Content = content
		msg.Type = model.AuthorReceiver
		return tx.Add(msg)
	})
	return msg, err
}

// CreateIdentityAccessRequest raises a pending identity request on the tip.
func (s *Service) CreateIdentityAccessRequest(userID, rtipID, motivation string) (*model.IdentityAccessRequest, error) {
	var iar *model.IdentityAccessRequest
	err := s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		iar = model.NewIdentityAccessRequest(rtip.ID)
		iar.RequestMotivation = motivation
		return tx.Add(iar)
	})
	return iar, err
}

// receiverTipVariables lists the per-receiver tip settings a receiver may
// change.
var receiverTipVariables = map[string]struct{}{
	"label":                {},
	"enable_notifications": {},
}

// SetReceiverTipVariable updates one of the receiver's own tip settings
// (label, enable_notifications). Anything else is rejected.
func (s *Service) SetReceiverTipVariable(userID, rtipID, key string, value any) error {
	return s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		if _, ok := receiverTipVariables[key]; !ok {
			return errors.NewUnknownField(key)
		}

		if err := model.Update(rtip, map[string]any{key: value}); err != nil {
			return err
		}
		return tx.Save(rtip)
	})
}

// internalTipVariables lists the submission flags a privileged receiver may
// flip.
var internalTipVariables = map[string]struct{}{
	"enable_two_way_comments": {},
	"enable_two_way_messages": {},
	"enable_attachments":      {},
}

// SetInternalTipVariable flips one of the submission-wide exchange flags.
// Requires the grant privilege, node-wide or per receiver.
func (s *Service) SetInternalTipVariable(userID, rtipID, key string, value bool) error {
	return s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		recv := &model.Receiver{}
		if err := tx.Get(recv, rtip.ReceiverID); err != nil {
			return err
		}
		if !s.mem.CanGrantPermissions() && !recv.CanGrantPermissions {
			return errors.Wrap(errors.ErrForbidden, "set internaltip variable")
		}

		if _, ok := internalTipVariables[key]; !ok {
			return errors.NewUnknownField(key)
		}

		itip := &model.InternalTip{}
		if err := tx.Get(itip, rtip.InternalTipID); err != nil {
			return err
		}
		switch key {
		case "enable_two_way_comments":
			itip.EnableTwoWayComments = value
		case "enable_two_way_messages":
			itip.EnableTwoWayMessages = value
		case "enable_attachments":
			itip.EnableAttachments = value
		}
		return tx.Save(itip)
	})
}

// PostponeExpiration pushes the submission's expiration one context
// time-to-live window ahead of now. Requires the postpone privilege,
// node-wide or per receiver. A context with a negative time-to-live never
// expires, so postponing is a no-op.
func (s *Service) PostponeExpiration(userID, rtipID string) error {
	return s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		recv := &model.Receiver{}
		if err := tx.Get(recv, rtip.ReceiverID); err != nil {
			return err
		}
		if !s.mem.CanPostponeExpiration() && !recv.CanPostponeExpiration {
			return errors.Wrap(errors.ErrForbidden, "postpone expiration")
		}

		itip := &model.InternalTip{}
		if err := tx.Get(itip, rtip.InternalTipID); err != nil {
			return err
		}

		ctx := &model.Context{}
		if err := tx.Get(ctx, itip.ContextID); err != nil {
			return err
		}
		if ctx.TipTimeToLive > -1 {
			itip.ExpirationDate = model.Now().Add(time.Duration(ctx.TipTimeToLive) * 24 * time.Hour)
			if err := tx.Save(itip); err != nil {
				return err
			}
		}

		if s.log != nil {
			s.log.Debugw("Expiration postponed",
				"internaltip_id", itip.ID,
				"expiration_date", itip.ExpirationDate)
		}
		return nil
	})
}

// Delete removes the whole submission the receiver tip belongs to. Requires
// the delete privilege, node-wide or per receiver.
func (s *Service) Delete(userID, rtipID string) error {
	return s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		recv := &model.Receiver{}
		if err := tx.Get(recv, rtip.ReceiverID); err != nil {
			return err
		}
		if !s.mem.CanDeleteSubmission() && !recv.CanDeleteSubmission {
			return errors.Wrap(errors.ErrForbidden, "delete submission")
		}

		itip := &model.InternalTip{}
		if err := tx.Get(itip, rtip.InternalTipID); err != nil {
			return err
		}
		return deleteInternalTip(tx, itip, s.log)
	})
}

func touchInternalTip(tx *store.Tx, internalTipID string) error {
	itip := &model.InternalTip{}
	if err := tx.Get(itip, internalTipID); err != nil {
		return err
	}
	itip.UpdateDate = model.Now()
	return tx.Save(itip)
}
