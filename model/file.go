package model

import "time"

// Receiver file statuses. A 'reference' path equals the parent internal
// file's path; 'encrypted' is a distinct receiver-only-readable copy;
// 'unavailable' and 'nokey' mean the path is not readable and downloads
// must be refused.
const (
	FileStatusReference   = "reference"
	FileStatusEncrypted   = "encrypted"
	FileStatusUnavailable = "unavailable"
	FileStatusNoKey       = "nokey"
)

// InternalFile is the original attachment as received, before it is
// packaged for specific receivers.
type InternalFile struct {
	ID           string    `model:"id"`
	CreationDate time.Time `model:"creation_date"`

	InternalTipID string `model:"internaltip_id"`

	Name     string `model:"name"`
	FilePath string `model:"file_path"`

	ContentType string `model:"content_type"`
	Size        int    `model:"size"`

	New bool `model:"new"`

	Submission bool `model:"submission"`

	ProcessingAttempts int `model:"processing_attempts"`
}

// NewInternalFile creates an attachment record for an internal tip.
func NewInternalFile(internalTipID string) *InternalFile {
	return &InternalFile{
		ID:            NewID(),
		CreationDate:  Now(),
		InternalTipID: internalTipID,
		New:           true,
	}
}

// ReceiverFile is the per-receiver materialization of an internal file.
type ReceiverFile struct {
	ID string `model:"id"`

	InternalTipID  string `model:"internaltip_id"`
	InternalFileID string `model:"internalfile_id"`
	ReceiverID     string `model:"receiver_id"`
	ReceiverTipID  string `model:"receivertip_id"`

	FilePath   string    `model:"file_path"`
	Size       int       `model:"size"`
	Downloads  int       `model:"downloads"`
	LastAccess time.Time `model:"last_access"`

	New bool `model:"new"`

	Status string `model:"status"`
}

// NewReceiverFile creates a receiver file referencing the shared internal
// file path. Per-receiver encryption later flips it to an encrypted copy.
func NewReceiverFile(ifile *InternalFile, rtip *ReceiverTip) *ReceiverFile {
	return &ReceiverFile{
		ID:             NewID(),
		InternalTipID:  ifile.InternalTipID,
		InternalFileID: ifile.ID,
		ReceiverID:     rtip.ReceiverID,
		ReceiverTipID:  rtip.ID,
		FilePath:       ifile.FilePath,
		Size:           ifile.Size,
		LastAccess:     NullTime,
		New:            true,
		Status:         FileStatusReference,
	}
}

// Downloadable reports whether the receiver path may be served.
func (rf *ReceiverFile) Downloadable() bool {
	return rf.Status == FileStatusReference || rf.Status == FileStatusEncrypted
}

// SecureFileDelete queues a filesystem path for secure deletion.
type SecureFileDelete struct {
	ID       string `model:"id"`
	FilePath string `model:"filepath"`
}

// NewSecureFileDelete queues the given path.
func NewSecureFileDelete(path string) *SecureFileDelete {
	return &SecureFileDelete{ID: NewID(), FilePath: path}
}

// File stores small binary blobs (logos, avatars) as encoded text.
type File struct {
	ID   string `model:"id"`
	Data string `model:"data"`
}

// NewFile creates an empty stored file.
func NewFile() *File {
	return &File{ID: NewID()}
}

func init() {
	register(&InternalFile{}, &Schema{
		Table:  "internalfile",
		Fields: map[string]FieldSpec{},
	})

	register(&ReceiverFile{}, &Schema{
		Table:  "receiverfile",
		Fields: map[string]FieldSpec{},
	})

	register(&SecureFileDelete{}, &Schema{
		Table:  "securefiledelete",
		Fields: map[string]FieldSpec{},
	})

	register(&File{}, &Schema{
		Table: "file",
		Fields: map[string]FieldSpec{
			"data": {Bucket: Text},
		},
	})
}
