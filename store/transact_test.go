package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipline/tipline/errors"
)

func TestTransactLifecycle(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		s := New(mockDB, nil)
		err = s.Transact(func(tx *Tx) error { return nil })
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		s := New(mockDB, nil)
		boom := errors.New("boom")
		err = s.Transact(func(tx *Tx) error { return boom })
		assert.True(t, errors.Is(err, boom))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates begin failure", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin().WillReturnError(errors.New("db gone"))

		s := New(mockDB, nil)
		err = s.Transact(func(tx *Tx) error { return nil })
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and repanics on panic", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		s := New(mockDB, nil)
		assert.Panics(t, func() {
			_ = s.Transact(func(tx *Tx) error { panic("unexpected") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces commit failure", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("disk full"))

		s := New(mockDB, nil)
		err = s.Transact(func(tx *Tx) error { return nil })
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
