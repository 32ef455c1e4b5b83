package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &DB{DB: db, logger: logger.Nop(), errorClassificator: NewPostgresErrorClassifier()}, mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(int64(1), "Andrew", "andrew@example.com", "$argon2id$digest", now, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(createUser)).
		WithArgs("Andrew", "andrew@example.com", "$argon2id$digest").
		WillReturnRows(userRow(now))

	created, err := repo.CreateUser(context.Background(), models.User{
		Name:         "Andrew",
		Email:        "andrew@example.com",
		PasswordHash: "$argon2id$digest",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "andrew@example.com", created.Email)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "andrew@example.com"})
	require.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{})
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.Contains(t, err.Error(), "db network error")
}

func TestFindUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
			WithArgs("andrew@example.com").
			WillReturnRows(userRow(time.Now()))

		user, err := repo.FindUserByEmail(context.Background(), "andrew@example.com")
		require.NoError(t, err)
		assert.Equal(t, "$argon2id$digest", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestFindUserByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(findUserByID)).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), 7)
	require.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestUpdateUser(t *testing.T) {
	t.Run("name and email", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		name, email := "Jess", "jess@example.com"

		mock.ExpectQuery(`UPDATE users SET updated_at = now\(\), name = \$1, email = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(name, email, int64(1)).
			WillReturnRows(userRow(time.Now()))

		_, err := repo.UpdateUser(context.Background(), 1, models.UserUpdate{Name: &name, Email: &email})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		email := "taken@example.com"

		mock.ExpectQuery("UPDATE users").
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.UpdateUser(context.Background(), 1, models.UserUpdate{Email: &email})
		require.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("success removes tasks tokens and user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteUserTasks)).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(deleteUserTokens)).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery(regexp.QuoteMeta(deleteUser)).WithArgs(int64(1)).WillReturnRows(userRow(time.Now()))
		mock.ExpectCommit()

		deleted, err := repo.DeleteUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user rolls back", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteUserTasks)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(deleteUserTokens)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(deleteUser)).WillReturnRows(sqlmock.NewRows(userRowColumns))
		mock.ExpectRollback()

		_, err := repo.DeleteUser(context.Background(), 1)
		require.ErrorIs(t, err, ErrNoUserWasFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin fails", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectBegin().WillReturnError(errors.New("conn closed"))

		_, err := repo.DeleteUser(context.Background(), 1)
		require.ErrorIs(t, err, ErrBeginningTransaction)
	})

	t.Run("task delete fails", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteUserTasks)).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		_, err := repo.DeleteUser(context.Background(), 1)
		require.ErrorIs(t, err, ErrExecutingStatement)
	})
}

func TestAvatar(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(setUserAvatar)).
			WithArgs([]byte{1, 2, 3}, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetAvatar(context.Background(), 1, []byte{1, 2, 3}))
	})

	t.Run("set for missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(setUserAvatar)).
			WithArgs(sqlmock.AnyArg(), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.SetAvatar(context.Background(), 9, nil), ErrNoUserWasFound)
	})

	t.Run("get", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getUserAvatar)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"avatar"}).AddRow([]byte{0x89, 'P', 'N', 'G'}))

		avatar, err := repo.GetAvatar(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, avatar)
	})

	t.Run("get when none stored", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getUserAvatar)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"avatar"}).AddRow(nil))

		_, err := repo.GetAvatar(context.Background(), 1)
		require.ErrorIs(t, err, ErrAvatarNotFound)
	})

	t.Run("get for missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getUserAvatar)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"avatar"}))

		_, err := repo.GetAvatar(context.Background(), 2)
		require.ErrorIs(t, err, ErrNoUserWasFound)
	})
}
