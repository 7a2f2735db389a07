package tip

import (
	"time"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/store"
)

// serializeRTip builds the full receiver view of a tip: the submission's
// public attributes plus the receiver list, comments, messages, files, and
// identity access requests.
func serializeRTip(tx *store.Tx, rtip *model.ReceiverTip) (map[string]any, error) {
	itip := &model.InternalTip{}
	if err := tx.Get(itip, rtip.InternalTipID); err != nil {
		return nil, err
	}

	ret, err := model.Serialize(itip)
	if err != nil {
		return nil, err
	}

	receivers, err := receiverList(tx, itip.ID)
	if err != nil {
		return nil, err
	}
	comments, err := commentList(tx, itip.ID)
	if err != nil {
		return nil, err
	}
	messages, err := messageList(tx, rtip.ID)
	if err != nil {
		return nil, err
	}
	files, err := receiverFileList(tx, rtip)
	if err != nil {
		return nil, err
	}
	iars, err := identityAccessRequestList(tx, rtip.ID)
	if err != nil {
		return nil, err
	}

	ret["id"] = rtip.ID
	ret["internaltip_id"] = itip.ID
	ret["receiver_id"] = rtip.ReceiverID
	ret["label"] = rtip.Label
	ret["access_counter"] = rtip.AccessCounter
	ret["enable_notifications"] = rtip.EnableNotifications
	ret["receivers"] = receivers
	ret["comments"] = comments
	ret["messages"] = messages
	ret["files"] = files
	ret["iars"] = iars

	return ret, nil
}

// receiverList summarizes every receiver's engagement with the submission.
func receiverList(tx *store.Tx, internalTipID string) ([]map[string]any, error) {
	rtips, err := tx.ReceiverTipsByInternalTip(internalTipID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(rtips))
	for _, rt := range rtips {
		name := ""
		u := &model.User{}
		if err := tx.Get(u, rt.ReceiverID); err == nil {
			name = u.Name
		} else if !errors.IsNotFound(err) {
			return nil, err
		}
		out = append(out, map[string]any{
			"id":             rt.ReceiverID,
			"name":           name,
			"last_access":    rt.LastAccess.Format(time.RFC3339),
			"access_counter": rt.AccessCounter,
		})
	}
	return out, nil
}

func commentList(tx *store.Tx, internalTipID string) ([]map[string]any, error) {
	comments, err := tx.CommentsByInternalTip(internalTipID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(comments))
	for _, c := range comments {
		out = append(out, serializeComment(tx, c))
	}
	return out, nil
}

// serializeComment resolves the author display name. Whistleblower comments
// never expose an identity; receiver comments fall back to a generic label
// when the author account is gone.
func serializeComment(tx *store.Tx, c *model.Comment) map[string]any {
	author := "Recipient"
	if c.Type == model.AuthorWhistleblower {
		author = "Whistleblower"
	} else if c.AuthorID != "" {
		u := &model.User{}
		if err := tx.Get(u, c.AuthorID); err == nil {
			author = u.Name
		}
	}

	return map[string]any{
		"id":            c.ID,
		"author":        author,
		"type":          c.Type,
		"creation_date": c.CreationDate.Format(time.RFC3339),
		"content":       c.Content,
	}
}

func messageList(tx *store.Tx, rtipID string) ([]map[string]any, error) {
	messages, err := tx.MessagesByReceiverTip(rtipID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		out = append(out, map[string]any{
			"id":            m.ID,
			"type":          m.Type,
			"creation_date": m.CreationDate.Format(time.RFC3339),
			"content":       m.Content,
		})
	}
	return out, nil
}

func identityAccessRequestList(tx *store.Tx, rtipID string) ([]map[string]any, error) {
	iars, err := tx.IdentityAccessRequestsByReceiverTip(rtipID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(iars))
	for _, iar := range iars {
		view, err := model.Serialize(iar)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}
