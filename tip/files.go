package tip

import (
	"time"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/store"
)

// receiverFileList serializes the receiver's copies of the submission's
// attachments.
func receiverFileList(tx *store.Tx, rtip *model.ReceiverTip) ([]map[string]any, error) {
	rfiles, err := tx.ReceiverFilesByReceiverTip(rtip.ID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(rfiles))
	for _, rfile := range rfiles {
		ifile := &model.InternalFile{}
		if err := tx.Get(ifile, rfile.InternalFileID); err != nil {
			return nil, err
		}
		out = append(out, serializeReceiverFile(ifile, rfile, rtip.ID))
	}
	return out, nil
}

// serializeReceiverFile mixes the attachment metadata from the internal
// file with the receiver-dependent state. Encrypted copies get a ".pgp"
// suffix on the name so the receiver recognizes the format; files whose
// copy is not readable keep their metadata but lose the download link.
func serializeReceiverFile(ifile *model.InternalFile, rfile *model.ReceiverFile, rtipID string) map[string]any {
	name := ifile.Name
	if rfile.Status == model.FileStatusEncrypted {
		name += ".pgp"
	}

	href := ""
	if rfile.Downloadable() {
		href = "/rtip/" + rtipID + "/download/" + rfile.ID
	}

	size := rfile.Size
	if !rfile.Downloadable() {
		// No readable copy; report the original size.
		size = ifile.Size
	}

	return map[string]any{
		"id":              rfile.ID,
		"internalfile_id": ifile.ID,
		"status":          rfile.Status,
		"href":            href,
		"name":            name,
		"content_type":    ifile.ContentType,
		"creation_date":   ifile.CreationDate.Format(time.RFC3339),
		"size":            size,
		"downloads":       rfile.Downloads,
	}
}

// EncryptForReceiver records that the receiver's copy of an attachment has
// been re-encrypted to its own path. Only a copy still referencing the
// shared plaintext can transition.
func (s *Service) EncryptForReceiver(rfileID, encryptedPath string, size int) error {
	return s.store.Transact(func(tx *store.Tx) error {
		rfile := &model.ReceiverFile{}
		if err := tx.Get(rfile, rfileID); err != nil {
			return err
		}

		if rfile.Status != model.FileStatusReference {
			return errors.Newf("receiverfile %s is %s, not a plaintext reference", rfileID, rfile.Status)
		}
		if encryptedPath == "" || encryptedPath == rfile.FilePath {
			return errors.New("encrypted copy needs a path of its own")
		}

		rfile.FilePath = encryptedPath
		rfile.Size = size
		rfile.Status = model.FileStatusEncrypted
		return tx.Save(rfile)
	})
}

// RecordDownload bumps the download counters after a copy has been served.
func (s *Service) RecordDownload(userID, rtipID, rfileID string) error {
	return s.store.Transact(func(tx *store.Tx) error {
		rtip, err := accessRTip(tx, userID, rtipID)
		if err != nil {
			return err
		}

		rfile := &model.ReceiverFile{}
		if err := tx.Get(rfile, rfileID); err != nil {
			return err
		}
		if rfile.ReceiverTipID != rtip.ID {
			return errors.Wrapf(errors.ErrNotFound, "receiverfile %s", rfileID)
		}
		if !rfile.Downloadable() {
			return errors.Wrapf(errors.ErrForbidden, "receiverfile %s is %s", rfileID, rfile.Status)
		}

		rfile.Downloads++
		rfile.LastAccess = model.Now()
		return tx.Save(rfile)
	})
}
