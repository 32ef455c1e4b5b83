package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/jackc/pgerrcode"
)

// tokenRepository keeps session tokens in the "user_tokens" table, one row
// per token. Appending is a single INSERT so concurrent logins never lose a
// token, and revocation is a DELETE of exactly the targeted rows.
type tokenRepository struct {
	*DB
	logger *logger.Logger
}

// NewTokenRepository constructs a [TokenRepository] backed by db.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		DB:     db,
		logger: logger,
	}
}

// AddToken appends token to the user's set.
func (r *tokenRepository) AddToken(ctx context.Context, userID int64, token string) error {
	log := logger.FromContext(ctx)

	err := r.withRetry(ctx, func() error {
		_, execErr := r.DB.ExecContext(ctx, addToken, userID, token)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "tokenRepository.AddToken").Int64("user_id", userID).Msg("failed to add token")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrNoUserWasFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// HasToken reports whether token is in the user's current set.
func (r *tokenRepository) HasToken(ctx context.Context, userID int64, token string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	err := r.withRetry(ctx, func() error {
		return r.DB.QueryRowContext(ctx, hasToken, userID, token).Scan(&exists)
	})
	if err != nil {
		log.Err(err).Str("func", "tokenRepository.HasToken").Int64("user_id", userID).Msg("failed to look up token")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// DeleteToken removes exactly one token. Removing an absent token is not an error.
func (r *tokenRepository) DeleteToken(ctx context.Context, userID int64, token string) error {
	return r.exec(ctx, "tokenRepository.DeleteToken", deleteToken, userID, token)
}

// DeleteAllTokens empties the user's set.
func (r *tokenRepository) DeleteAllTokens(ctx context.Context, userID int64) error {
	return r.exec(ctx, "tokenRepository.DeleteAllTokens", deleteAllTokens, userID)
}

// DeleteOtherTokens keeps only keep in the user's set.
func (r *tokenRepository) DeleteOtherTokens(ctx context.Context, userID int64, keep string) error {
	return r.exec(ctx, "tokenRepository.DeleteOtherTokens", deleteOtherTokens, userID, keep)
}

func (r *tokenRepository) exec(ctx context.Context, funcName, query string, userID int64, args ...any) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, query, append([]any{userID}, args...)...); err != nil {
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("failed to delete tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
