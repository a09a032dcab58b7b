package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"station-track-backend/internal/apperr"
)

// newMockDB wires GORM onto a sqlmock connection for exact SQL expectations.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func userRow(id uuid.UUID, stations string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "identity", "stations", "created_at", "updated_at"}).
		AddRow(id.String(), "alice", []byte(stations), now, now)
}

func TestUpdateStationCommitsSingleTransaction(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(id, `{"station3":"Scanned"}`))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WithArgs(Any{}, Any{}, Any{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := s.UpdateStation(context.Background(), id, 3, "Completed", time.Now().UTC())
	require.NoError(t, err)

	stations, err := user.StationValues()
	require.NoError(t, err)
	assert.Equal(t, "Completed", stations[2].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStationUnknownUserRollsBack(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "identity", "stations", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := s.UpdateStation(context.Background(), uuid.New(), 1, "Scanned", time.Now().UTC())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStationWriteFailureRollsBack(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(id, `{}`))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WithArgs(Any{}, Any{}, Any{}).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := s.UpdateStation(context.Background(), id, 2, "Scanned", time.Now().UTC())
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStationInvalidIndexTouchesNothing(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	_, err := s.UpdateStation(context.Background(), uuid.New(), 7, "Scanned", time.Now().UTC())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// No transaction, no queries.
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
