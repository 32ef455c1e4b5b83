package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// sessionService is the concrete implementation of SessionService.
//
// Postgres (TokenRepository) is the source of truth for every user's token
// set. A token enters the SessionCache just before its Postgres insert and
// leaves it right after its Postgres delete, so a cache hit can be trusted
// and a miss falls back to Postgres.
type sessionService struct {
	tokens store.TokenRepository
	cache  store.SessionCache

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match are rejected.
	tokenIssuer string

	// tokenTTL is the token lifetime; zero issues non-expiring tokens.
	tokenTTL time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService over the given token store
// and cache, populated with token parameters from cfg.
func NewSessionService(tokens store.TokenRepository, cache store.SessionCache, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		tokens:       tokens,
		cache:        cache,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		tokenTTL:     cfg.TokenTTL,
		logger:       logger,
	}
}

// Issue signs a token for userID and appends it to the user's token set.
//
// The cache entry is written before the Postgres row. A RevokeAll running
// between the two steps then leaves at most a Postgres-only token, never a
// cache entry Postgres no longer backs.
func (s *sessionService) Issue(ctx context.Context, userID int64) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, userID, s.tokenTTL, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Issue").Int64("user_id", userID).Msg("failed to generate token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	cached := true
	if err = s.cache.Add(ctx, userID, token.SignedString); err != nil {
		cached = false
		log.Warn().Err(err).Str("func", "*sessionService.Issue").Msg("failed to cache token")
	}

	if err = s.tokens.AddToken(ctx, userID, token.SignedString); err != nil {
		log.Err(err).Str("func", "*sessionService.Issue").Int64("user_id", userID).Msg("failed to store token")
		if cached {
			if cacheErr := s.cache.Remove(ctx, userID, token.SignedString); cacheErr != nil {
				log.Err(cacheErr).Str("func", "*sessionService.Issue").Int64("user_id", userID).Msg("failed to evict unstored token from cache")
			}
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Resolve verifies the token and checks that it is still in its user's set.
func (s *sessionService) Resolve(ctx context.Context, tokenString string) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*sessionService.Resolve").Msg("token rejected")
		return models.Session{}, ErrInvalidToken
	}

	session := models.Session{UserID: token.UserID, Token: tokenString}

	found, err := s.cache.Contains(ctx, token.UserID, tokenString)
	if err != nil {
		log.Warn().Err(err).Str("func", "*sessionService.Resolve").Msg("session cache lookup failed")
	}
	if found {
		return session, nil
	}

	found, err = s.tokens.HasToken(ctx, token.UserID, tokenString)
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Resolve").Int64("user_id", token.UserID).Msg("failed to look up token")
		return models.Session{}, fmt.Errorf("session lookup failed: %w", err)
	}
	if !found {
		return models.Session{}, ErrUnknownSession
	}

	return session, nil
}

// Revoke drops one token from Postgres and then from the cache. A cache
// failure is reported because the cache would keep accepting the token.
func (s *sessionService) Revoke(ctx context.Context, userID int64, token string) error {
	log := logger.FromContext(ctx)

	if err := s.tokens.DeleteToken(ctx, userID, token); err != nil {
		log.Err(err).Str("func", "*sessionService.Revoke").Int64("user_id", userID).Msg("failed to delete token")
		return fmt.Errorf("revoke token: %w", err)
	}

	if err := s.cache.Remove(ctx, userID, token); err != nil {
		log.Err(err).Str("func", "*sessionService.Revoke").Int64("user_id", userID).Msg("failed to evict token from cache")
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

// RevokeAll empties the user's token set.
func (s *sessionService) RevokeAll(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := s.tokens.DeleteAllTokens(ctx, userID); err != nil {
		log.Err(err).Str("func", "*sessionService.RevokeAll").Int64("user_id", userID).Msg("failed to delete tokens")
		return fmt.Errorf("revoke all tokens: %w", err)
	}

	if err := s.cache.RemoveAll(ctx, userID); err != nil {
		log.Err(err).Str("func", "*sessionService.RevokeAll").Int64("user_id", userID).Msg("failed to evict tokens from cache")
		return fmt.Errorf("revoke all tokens: %w", err)
	}

	return nil
}

// RevokeOthers keeps only the given token in the user's set. The kept token
// is not re-cached: a concurrent Revoke of it could otherwise be undone.
func (s *sessionService) RevokeOthers(ctx context.Context, userID int64, keep string) error {
	log := logger.FromContext(ctx)

	if err := s.tokens.DeleteOtherTokens(ctx, userID, keep); err != nil {
		log.Err(err).Str("func", "*sessionService.RevokeOthers").Int64("user_id", userID).Msg("failed to delete tokens")
		return fmt.Errorf("revoke other tokens: %w", err)
	}

	if err := s.cache.RemoveAll(ctx, userID); err != nil {
		log.Err(err).Str("func", "*sessionService.RevokeOthers").Int64("user_id", userID).Msg("failed to evict tokens from cache")
		return fmt.Errorf("revoke other tokens: %w", err)
	}

	return nil
}
