package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mysqldriver "github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	searchQuery = regexp.QuoteMeta("SELECT username, email FROM users WHERE username LIKE ?")
	existsQuery = regexp.QuoteMeta("SELECT 1 FROM users WHERE username = ?")
	insertQuery = regexp.QuoteMeta("INSERT INTO users (username, email) VALUES (?, ?)")
)

func newStorage(t *testing.T) (*ContactStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewContactStorage(sqlx.NewDb(db, "sqlmock"), logger), mock
}

func TestSearchByUsername(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectQuery(searchQuery).WithArgs("%and%").
		WillReturnRows(sqlmock.NewRows([]string{"username", "email"}).
			AddRow("andrii", "andrii@example.com"))

	contacts, err := s.SearchByUsername(context.Background(), "and")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, domain.Contact{Username: "andrii", Email: "andrii@example.com"}, contacts[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByUsernameNoMatches(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectQuery(searchQuery).WithArgs("%xyz-nonexistent%").
		WillReturnRows(sqlmock.NewRows([]string{"username", "email"}))

	contacts, err := s.SearchByUsername(context.Background(), "xyz-nonexistent")
	require.NoError(t, err)
	assert.Empty(t, contacts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectQuery(existsQuery).WithArgs("andrii").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := s.Exists(context.Background(), "andrii")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExistsNoRow(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectQuery(existsQuery).WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	ok, err := s.Exists(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsert(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectExec(insertQuery).WithArgs("petro", "petro@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Insert(context.Background(), domain.Contact{Username: "petro", Email: "petro@example.com"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Проигравший гонку insert упирается в первичный ключ; ошибка драйвера
// должна превращаться в domain.ErrContactExists для обоих бекендов.
func TestInsertDuplicateKeyTranslation(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		s, mock := newStorage(t)
		mock.ExpectExec(insertQuery).WithArgs("andrii", "x@y.z").
			WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := s.Insert(context.Background(), domain.Contact{Username: "andrii", Email: "x@y.z"})
		assert.ErrorIs(t, err, domain.ErrContactExists)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, mock := newStorage(t)
		mock.ExpectExec(insertQuery).WithArgs("andrii", "x@y.z").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

		err := s.Insert(context.Background(), domain.Contact{Username: "andrii", Email: "x@y.z"})
		assert.ErrorIs(t, err, domain.ErrContactExists)
	})
}

func TestInsertOtherErrorPassesThrough(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectExec(insertQuery).WithArgs("petro", "petro@example.com").
		WillReturnError(errors.New("connection reset"))

	err := s.Insert(context.Background(), domain.Contact{Username: "petro", Email: "petro@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrContactExists)
}

func TestPing(t *testing.T) {
	s, mock := newStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	assert.NoError(t, s.Ping(context.Background()))
}
