package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/mock"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-task-manager"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     testSignKey,
		TokenIssuer:      testIssuer,
		AvatarMaxBytes:   1 << 20,
		TasksMaxPageSize: 100,
	}
}

func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (SessionService, *mock.MockTokenRepository, *mock.MockSessionCache) {
	t.Helper()
	tokens := mock.NewMockTokenRepository(ctrl)
	cache := mock.NewMockSessionCache(ctrl)
	return NewSessionService(tokens, cache, testAppConfig(), logger.Nop()), tokens, cache
}

func signedToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testIssuer, userID, 0, testSignKey)
	require.NoError(t, err)
	return token.SignedString
}

func TestSessionService_Issue(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	var stored string
	gomock.InOrder(
		cache.EXPECT().Add(ctx, int64(7), gomock.Any()).Return(nil),
		tokens.EXPECT().AddToken(ctx, int64(7), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, token string) error {
				stored = token
				return nil
			}),
	)

	token, err := svc.Issue(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stored, token.SignedString)
	assert.Equal(t, int64(7), token.UserID)
}

func TestSessionService_Issue_StoreFailureEvictsCachedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	var cached string
	gomock.InOrder(
		cache.EXPECT().Add(gomock.Any(), int64(7), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, token string) error {
				cached = token
				return nil
			}),
		tokens.EXPECT().AddToken(gomock.Any(), int64(7), gomock.Any()).Return(errors.New("db down")),
		cache.EXPECT().Remove(gomock.Any(), int64(7), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, token string) error {
				assert.Equal(t, cached, token)
				return nil
			}),
	)

	_, err := svc.Issue(context.Background(), 7)
	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestSessionService_Issue_StoreFailureWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	cache.EXPECT().Add(gomock.Any(), int64(7), gomock.Any()).Return(errors.New("redis down"))
	tokens.EXPECT().AddToken(gomock.Any(), int64(7), gomock.Any()).Return(errors.New("db down"))

	_, err := svc.Issue(context.Background(), 7)
	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestSessionService_Issue_CacheFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	cache.EXPECT().Add(gomock.Any(), int64(7), gomock.Any()).Return(errors.New("redis down"))
	tokens.EXPECT().AddToken(gomock.Any(), int64(7), gomock.Any()).Return(nil)

	_, err := svc.Issue(context.Background(), 7)
	require.NoError(t, err)
}

func TestSessionService_Resolve_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestSessionSvc(t, ctrl)

	foreign, err := utils.GenerateJWTToken(testIssuer, 7, 0, "other-key")
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"empty":        "",
		"foreign key":  foreign.SignedString,
		"expired":      expired,
		"tampered sig": signedToken(t, 7) + "x",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Resolve(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSessionService_Resolve_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, cache := newTestSessionSvc(t, ctrl)
	token := signedToken(t, 7)

	cache.EXPECT().Contains(gomock.Any(), int64(7), token).Return(true, nil)

	session, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, token, session.Token)
}

func TestSessionService_Resolve_CacheMissFallsBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)
	token := signedToken(t, 7)

	cache.EXPECT().Contains(gomock.Any(), int64(7), token).Return(false, errors.New("redis down"))
	tokens.EXPECT().HasToken(gomock.Any(), int64(7), token).Return(true, nil)

	session, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
}

func TestSessionService_Resolve_Revoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)
	token := signedToken(t, 7)

	cache.EXPECT().Contains(gomock.Any(), int64(7), token).Return(false, nil)
	tokens.EXPECT().HasToken(gomock.Any(), int64(7), token).Return(false, nil)

	_, err := svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSessionService_Resolve_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)
	token := signedToken(t, 7)

	cache.EXPECT().Contains(gomock.Any(), int64(7), token).Return(false, nil)
	tokens.EXPECT().HasToken(gomock.Any(), int64(7), token).Return(false, errors.New("db down"))

	_, err := svc.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownSession)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestSessionService_Revoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	gomock.InOrder(
		tokens.EXPECT().DeleteToken(gomock.Any(), int64(7), "tok").Return(nil),
		cache.EXPECT().Remove(gomock.Any(), int64(7), "tok").Return(nil),
	)

	require.NoError(t, svc.Revoke(context.Background(), 7, "tok"))
}

func TestSessionService_Revoke_StoreFailureSkipsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, _ := newTestSessionSvc(t, ctrl)

	tokens.EXPECT().DeleteToken(gomock.Any(), int64(7), "tok").Return(errors.New("db down"))

	require.Error(t, svc.Revoke(context.Background(), 7, "tok"))
}

func TestSessionService_Revoke_CacheFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	tokens.EXPECT().DeleteToken(gomock.Any(), int64(7), "tok").Return(nil)
	cache.EXPECT().Remove(gomock.Any(), int64(7), "tok").Return(errors.New("redis down"))

	require.Error(t, svc.Revoke(context.Background(), 7, "tok"))
}

func TestSessionService_RevokeAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	gomock.InOrder(
		tokens.EXPECT().DeleteAllTokens(gomock.Any(), int64(7)).Return(nil),
		cache.EXPECT().RemoveAll(gomock.Any(), int64(7)).Return(nil),
	)

	require.NoError(t, svc.RevokeAll(context.Background(), 7))
}

func TestSessionService_RevokeOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, tokens, cache := newTestSessionSvc(t, ctrl)

	gomock.InOrder(
		tokens.EXPECT().DeleteOtherTokens(gomock.Any(), int64(7), "keep").Return(nil),
		cache.EXPECT().RemoveAll(gomock.Any(), int64(7)).Return(nil),
	)

	require.NoError(t, svc.RevokeOthers(context.Background(), 7, "keep"))
}
