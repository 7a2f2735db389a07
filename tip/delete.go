package tip

import (
	"go.uber.org/zap"

	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/store"
)

// markFilesForSecureDeletion queues the submission's file paths for secure
// deletion. Receiver files whose path just references the internal file's
// plaintext are skipped, the shared path is queued once through the
// internal file.
func markFilesForSecureDeletion(tx *store.Tx, itip *model.InternalTip, logger *zap.SugaredLogger) error {
	ifiles, err := tx.InternalFilesByInternalTip(itip.ID)
	if err != nil {
		return err
	}

	for _, ifile := range ifiles {
		if ifile.FilePath != "" {
			if logger != nil {
				logger.Debugw("Marking internalfile for secure deletion", "path", ifile.FilePath)
			}
			if err := tx.Add(model.NewSecureFileDelete(ifile.FilePath)); err != nil {
				return err
			}
		}

		rfiles, err := tx.ReceiverFilesByInternalFile(ifile.ID)
		if err != nil {
			return err
		}
		for _, rfile := range rfiles {
			if rfile.FilePath == ifile.FilePath || rfile.FilePath == "" {
				continue
			}
			if logger != nil {
				logger.Debugw("Marking receiverfile for secure deletion", "path", rfile.FilePath)
			}
			if err := tx.Add(model.NewSecureFileDelete(rfile.FilePath)); err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteInternalTip removes the submission and everything hanging off it,
// then drops its archived questionnaire schema if no other submission still
// uses it.
func deleteInternalTip(tx *store.Tx, itip *model.InternalTip, logger *zap.SugaredLogger) error {
	if logger != nil {
		logger.Debugw("Removing internaltip", "internaltip_id", itip.ID)
	}

	if err := markFilesForSecureDeletion(tx, itip, logger); err != nil {
		return err
	}

	rtips, err := tx.ReceiverTipsByInternalTip(itip.ID)
	if err != nil {
		return err
	}
	for _, rtip := range rtips {
		if err := tx.DeleteWhere(&model.Message{}, "receivertip_id = ?", rtip.ID); err != nil {
			return err
		}
		if err := tx.DeleteWhere(&model.IdentityAccessRequest{}, "receivertip_id = ?", rtip.ID); err != nil {
			return err
		}
	}

	if err := tx.DeleteWhere(&model.FieldAnswerGroup{},
		"fieldanswer_id IN (SELECT id FROM fieldanswer WHERE internaltip_id = ?)", itip.ID); err != nil {
		return err
	}

	for _, proto := range []any{
		&model.ReceiverFile{},
		&model.InternalFile{},
		&model.Comment{},
		&model.FieldAnswer{},
		&model.ReceiverTip{},
		&model.WhistleblowerTip{},
		&model.ReceiverInternalTip{},
	} {
		if err := tx.DeleteWhere(proto, "internaltip_id = ?", itip.ID); err != nil {
			return err
		}
	}

	if err := tx.Delete(itip); err != nil {
		return err
	}

	// The archived schema is shared by every submission made against the
	// same questionnaire revision; it goes only when the last one does.
	if itip.QuestionnaireHash != "" {
		remaining, err := tx.CountWhere(&model.InternalTip{}, "questionnaire_hash = ?", itip.QuestionnaireHash)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.DeleteWhere(&model.ArchivedSchema{}, "hash = ?", itip.QuestionnaireHash); err != nil {
				return err
			}
		}
	}

	return nil
}
