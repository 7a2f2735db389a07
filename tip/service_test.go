package tip

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipline/tipline/config"
	"github.com/tipline/tipline/db"
	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
	"github.com/tipline/tipline/store"
)

type fixture struct {
	store *store.Store
	mem   *config.Memory
	svc   *Service

	user *model.User
	recv *model.Receiver
	ctx  *model.Context
	itip *model.InternalTip
	rtip *model.ReceiverTip
}

// newFixture builds a submission with one receiver and no privileges
// granted anywhere.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	sqlDB, err := db.OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	f := &fixture{
		store: store.New(sqlDB, nil),
		mem:   &config.Memory{},
	}
	f.svc = NewService(f.store, f.mem, nil)

	f.user = model.NewUser()
	f.user.Name = "Marta"
	f.user.Role = model.RoleReceiver
	f.recv = model.NewReceiver(f.user.ID)
	f.ctx = model.NewContext()
	f.itip = model.NewInternalTip()
	f.itip.ContextID = f.ctx.ID
	f.itip.QuestionnaireHash = "qh1"
	f.rtip = model.NewReceiverTip(f.itip.ID, f.recv.ID)

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		for _, m := range []any{f.user, f.recv, f.ctx, f.itip, f.rtip} {
			if err := tx.Add(m); err != nil {
				return err
			}
		}
		as := model.NewArchivedSchema("qh1", "preview")
		as.Schema = map[string]any{"steps": []any{}}
		return tx.Add(as)
	}))

	return f
}

// grant refreshes the settings snapshot from a node carrying the given
// node-wide privileges.
func (f *fixture) grant(postpone, del, grant bool) {
	node := model.NewNode()
	node.CanPostponeExpiration = postpone
	node.CanDeleteSubmission = del
	node.CanGrantPermissions = grant
	f.mem.Refresh(node)
}

func TestAccess(t *testing.T) {
	f := newFixture(t)

	t.Run("another receiver's tip looks absent", func(t *testing.T) {
		_, err := f.svc.Access("someone-else", f.rtip.ID)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("records the access and serializes the view", func(t *testing.T) {
		view, err := f.svc.Access(f.user.ID, f.rtip.ID)
		require.NoError(t, err)

		assert.Equal(t, f.rtip.ID, view["id"])
		assert.Equal(t, f.itip.ID, view["internaltip_id"])
		assert.Equal(t, 1, view["access_counter"])
		assert.Equal(t, true, view["enable_notifications"])

		receivers := view["receivers"].([]map[string]any)
		require.Len(t, receivers, 1)
		assert.Equal(t, "Marta", receivers[0]["name"])

		assert.Empty(t, view["comments"])
		assert.Empty(t, view["files"])

		_, hidden := view["receipt_hash"]
		assert.False(t, hidden)

		view, err = f.svc.Access(f.user.ID, f.rtip.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, view["access_counter"], "every access counts")
	})
}

func TestCreateComment(t *testing.T) {
	f := newFixture(t)

	before := model.Now().Add(-time.Hour)
	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		f.itip.UpdateDate = before
		return tx.Save(f.itip)
	}))

	comment, err := f.svc.CreateComment(f.user.ID, f.rtip.ID, "looks credible")
	require.NoError(t, err)
	assert.Equal(t, model.AuthorReceiver, comment.Type)
	assert.Equal(t, f.recv.ID, comment.AuthorID)

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		itip := &model.InternalTip{}
		if err := tx.Get(itip, f.itip.ID); err != nil {
			return err
		}
		assert.True(t, itip.UpdateDate.After(before), "commenting touches the submission")

		comments, err := tx.CommentsByInternalTip(f.itip.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "looks credible", comments[0].Content)
		return nil
	}))

	view, err := f.svc.Access(f.user.ID, f.rtip.ID)
	require.NoError(t, err)
	comments := view["comments"].([]map[string]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "Marta", comments[0]["author"])
}

func TestCreateMessage(t *testing.T) {
	f := newFixture(t)

	msg, err := f.svc.CreateMessage(f.user.ID, f.rtip.ID, "can you clarify the dates?")
	require.NoError(t, err)
	assert.Equal(t, model.AuthorReceiver, msg.Type)
	assert.Equal(t, f.rtip.ID, msg.ReceiverTipID)

	view, err := f.svc.Access(f.user.ID, f.rtip.ID)
	require.NoError(t, err)
	messages := view["messages"].([]map[string]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "can you clarify the dates?", messages[0]["content"])
}

func TestCreateIdentityAccessRequest(t *testing.T) {
	f := newFixture(t)

	iar, err := f.svc.CreateIdentityAccessRequest(f.user.ID, f.rtip.ID, "needed for the case file")
	require.NoError(t, err)
	assert.Equal(t, model.ReplyPending, iar.Reply)
	assert.True(t, model.IsNullTime(iar.ReplyDate))

	view, err := f.svc.Access(f.user.ID, f.rtip.ID)
	require.NoError(t, err)
	iars := view["iars"].([]map[string]any)
	require.Len(t, iars, 1)
	assert.Equal(t, "needed for the case file", iars[0]["request_motivation"])
}

func TestSetReceiverTipVariable(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.SetReceiverTipVariable(f.user.ID, f.rtip.ID, "label", "follow up"))
	require.NoError(t, f.svc.SetReceiverTipVariable(f.user.ID, f.rtip.ID, "enable_notifications", false))

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		rtip := &model.ReceiverTip{}
		if err := tx.Get(rtip, f.rtip.ID); err != nil {
			return err
		}
		assert.Equal(t, "follow up", rtip.Label)
		assert.False(t, rtip.EnableNotifications)
		return nil
	}))

	err := f.svc.SetReceiverTipVariable(f.user.ID, f.rtip.ID, "access_counter", 99)
	assert.True(t, errors.IsUnknownField(err), "counters are not settable")

	err = f.svc.SetReceiverTipVariable(f.user.ID, f.rtip.ID, "receiver_id", "someone-else")
	assert.True(t, errors.IsUnknownField(err), "ownership is not settable")
}

func TestSetInternalTipVariable(t *testing.T) {
	f := newFixture(t)

	t.Run("requires the grant privilege", func(t *testing.T) {
		err := f.svc.SetInternalTipVariable(f.user.ID, f.rtip.ID, "enable_two_way_comments", false)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
	})

	t.Run("node-wide privilege suffices", func(t *testing.T) {
		f.grant(false, false, true)
		defer f.mem.Refresh(model.NewNode())

		require.NoError(t, f.svc.SetInternalTipVariable(f.user.ID, f.rtip.ID, "enable_two_way_comments", false))

		require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
			itip := &model.InternalTip{}
			if err := tx.Get(itip, f.itip.ID); err != nil {
				return err
			}
			assert.False(t, itip.EnableTwoWayComments)
			return nil
		}))
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		f.grant(false, false, true)
		defer f.mem.Refresh(model.NewNode())

		err := f.svc.SetInternalTipVariable(f.user.ID, f.rtip.ID, "total_score", true)
		assert.True(t, errors.IsUnknownField(err))
	})
}

func TestPostponeExpiration(t *testing.T) {
	f := newFixture(t)

	t.Run("requires the postpone privilege", func(t *testing.T) {
		err := f.svc.PostponeExpiration(f.user.ID, f.rtip.ID)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
	})

	t.Run("receiver privilege suffices", func(t *testing.T) {
		require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
			f.recv.CanPostponeExpiration = true
			return tx.Save(f.recv)
		}))

		require.NoError(t, f.svc.PostponeExpiration(f.user.ID, f.rtip.ID))

		require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
			itip := &model.InternalTip{}
			if err := tx.Get(itip, f.itip.ID); err != nil {
				return err
			}
			want := model.Now().Add(time.Duration(f.ctx.TipTimeToLive) * 24 * time.Hour)
			assert.WithinDuration(t, want, itip.ExpirationDate, time.Minute)
			return nil
		}))
	})
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	// One attachment: the receiver copy still references the plaintext,
	// a second receiver got an encrypted copy of its own.
	ifile := model.NewInternalFile(f.itip.ID)
	ifile.Name = "ledger.xlsx"
	ifile.FilePath = "/files/ledger"
	refCopy := model.NewReceiverFile(ifile, f.rtip)
	encCopy := model.NewReceiverFile(ifile, f.rtip)
	encCopy.FilePath = "/files/ledger.recv2"
	encCopy.Status = model.FileStatusEncrypted
	wtip := model.NewWhistleblowerTip(f.itip.ID, "hash")

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		for _, m := range []any{ifile, refCopy, encCopy, wtip} {
			if err := tx.Add(m); err != nil {
				return err
			}
		}
		return nil
	}))

	t.Run("requires the delete privilege", func(t *testing.T) {
		err := f.svc.Delete(f.user.ID, f.rtip.ID)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
	})

	t.Run("removes the aggregate", func(t *testing.T) {
		f.grant(false, true, false)
		defer f.mem.Refresh(model.NewNode())

		require.NoError(t, f.svc.Delete(f.user.ID, f.rtip.ID))

		require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
			err := tx.Get(&model.InternalTip{}, f.itip.ID)
			assert.True(t, errors.IsNotFound(err))

			rtips, err := tx.ReceiverTipsByInternalTip(f.itip.ID)
			require.NoError(t, err)
			assert.Empty(t, rtips)

			wt, err := tx.WhistleblowerTipByInternalTip(f.itip.ID)
			require.NoError(t, err)
			assert.Nil(t, wt)

			n, err := tx.Count(&model.SecureFileDelete{})
			require.NoError(t, err)
			assert.Equal(t, 2, n, "plaintext queued once, encrypted copy queued separately")

			remaining, err := tx.CountWhere(&model.ArchivedSchema{}, "hash = ?", "qh1")
			require.NoError(t, err)
			assert.Zero(t, remaining, "orphaned schema goes with its last submission")
			return nil
		}))
	})
}

func TestEncryptForReceiver(t *testing.T) {
	f := newFixture(t)

	ifile := model.NewInternalFile(f.itip.ID)
	ifile.Name = "report.pdf"
	ifile.FilePath = "/files/report"
	ifile.Size = 2048
	rfile := model.NewReceiverFile(ifile, f.rtip)

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		if err := tx.Add(ifile); err != nil {
			return err
		}
		return tx.Add(rfile)
	}))

	t.Run("needs a distinct path", func(t *testing.T) {
		err := f.svc.EncryptForReceiver(rfile.ID, "/files/report", 2100)
		assert.Error(t, err)
	})

	t.Run("transitions reference to encrypted", func(t *testing.T) {
		require.NoError(t, f.svc.EncryptForReceiver(rfile.ID, "/files/report.pgp", 2100))

		view, err := f.svc.Access(f.user.ID, f.rtip.ID)
		require.NoError(t, err)
		files := view["files"].([]map[string]any)
		require.Len(t, files, 1)
		assert.Equal(t, model.FileStatusEncrypted, files[0]["status"])
		assert.Equal(t, "report.pdf.pgp", files[0]["name"], "encrypted copies are marked in the name")
		assert.Equal(t, 2100, files[0]["size"])
		assert.NotEmpty(t, files[0]["href"])
	})

	t.Run("refuses a second transition", func(t *testing.T) {
		err := f.svc.EncryptForReceiver(rfile.ID, "/files/report.again", 2100)
		assert.Error(t, err)
	})
}

func TestRecordDownload(t *testing.T) {
	f := newFixture(t)

	ifile := model.NewInternalFile(f.itip.ID)
	ifile.FilePath = "/files/x"
	rfile := model.NewReceiverFile(ifile, f.rtip)

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		if err := tx.Add(ifile); err != nil {
			return err
		}
		return tx.Add(rfile)
	}))

	require.NoError(t, f.svc.RecordDownload(f.user.ID, f.rtip.ID, rfile.ID))

	require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
		got := &model.ReceiverFile{}
		if err := tx.Get(got, rfile.ID); err != nil {
			return err
		}
		assert.Equal(t, 1, got.Downloads)
		assert.False(t, model.IsNullTime(got.LastAccess))
		return nil
	}))

	t.Run("unreadable copies are refused", func(t *testing.T) {
		require.NoError(t, f.store.Transact(func(tx *store.Tx) error {
			rf := &model.ReceiverFile{}
			if err := tx.Get(rf, rfile.ID); err != nil {
				return err
			}
			rf.Status = model.FileStatusNoKey
			return tx.Save(rf)
		}))

		err := f.svc.RecordDownload(f.user.ID, f.rtip.ID, rfile.ID)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
	})
}
