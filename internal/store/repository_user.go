package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account records and avatars against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row interface{ Scan(...any) error }, user *models.User) error {
	return row.Scan(&user.UserID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
}

// classifyUserError maps driver errors onto the package's sentinel errors.
func classifyUserError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoUserWasFound
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrEmailAlreadyExists
	case pgerrcode.NoDataFound:
		return ErrNoUserWasFound
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// CreateUser persists a new user record and returns it with server-assigned
// fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.PasswordHash)

	var created models.User
	if err := scanUser(row, &created); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, classifyUserError(err)
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose email matches exactly.
// The caller is expected to pass a normalized address.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	if err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email), &found); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user by email")
		}
		return models.User{}, classifyUserError(err)
	}

	return found, nil
}

// FindUserByID retrieves the user by primary key.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	if err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID), &found); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.FindUserByID").Int64("user_id", userID).Msg("error finding user by id")
		}
		return models.User{}, classifyUserError(err)
	}

	return found, nil
}

// UpdateUser writes the non-nil fields of update and returns the new record.
// An empty update only bumps updated_at.
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("failed to create query")
		return models.User{}, err
	}

	var updated models.User
	if err = scanUser(r.db.QueryRowContext(ctx, query, args...), &updated); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", userID).Msg("error updating user")
		return models.User{}, classifyUserError(err)
	}

	return updated, nil
}

// DeleteUser removes the user's tasks, session tokens and finally the user
// itself inside a single transaction.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("failed to begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteUserTasks, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to delete user tasks")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, deleteUserTokens, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to delete user tokens")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var deleted models.User
	if err = scanUser(tx.QueryRowContext(ctx, deleteUser, userID), &deleted); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to delete user")
		return models.User{}, classifyUserError(err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("failed to commit transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return deleted, nil
}

// SetAvatar replaces the stored avatar. A nil avatar clears it.
func (r *userRepository) SetAvatar(ctx context.Context, userID int64, avatar []byte) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setUserAvatar, avatar, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetAvatar").Int64("user_id", userID).Msg("failed to set avatar")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// GetAvatar returns the stored avatar bytes.
//
// Error handling:
//   - no such user → [ErrNoUserWasFound].
//   - user without an avatar → [ErrAvatarNotFound].
func (r *userRepository) GetAvatar(ctx context.Context, userID int64) ([]byte, error) {
	log := logger.FromContext(ctx)

	var avatar []byte
	if err := r.db.QueryRowContext(ctx, getUserAvatar, userID).Scan(&avatar); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.GetAvatar").Int64("user_id", userID).Msg("failed to get avatar")
		}
		return nil, classifyUserError(err)
	}

	if len(avatar) == 0 {
		return nil, ErrAvatarNotFound
	}

	return avatar, nil
}
