// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── context ───────────────────────────────────────────────────────────────────

func TestWithSession_RoundTrip(t *testing.T) {
	ctx := WithSession(context.Background(), models.Session{UserID: 7, Token: "tok"})

	userID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), userID)

	session, ok := GetSessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, models.Session{UserID: 7, Token: "tok"}, session)
}

func TestGetSessionFromContext_Missing(t *testing.T) {
	_, ok := GetSessionFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(1))
	_, ok = GetSessionFromContext(ctx)
	assert.False(t, ok, "user id without token is not a session")
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "42")
	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
}

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
}

// ── jwt ───────────────────────────────────────────────────────────────────────

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", 123, 0, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(123), token.UserID)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "123", claims.Subject)
	assert.Nil(t, claims.ExpiresAt, "no TTL means no exp claim")
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err)
}

func TestGenerateJWTToken_WithTTL(t *testing.T) {
	token, err := GenerateJWTToken("iss", 1, time.Hour, "key")
	require.NoError(t, err)
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt.Time, time.Minute)
}

func TestGenerateJWTToken_UniquePerCall(t *testing.T) {
	a, err := GenerateJWTToken("iss", 1, 0, "key")
	require.NoError(t, err)
	b, err := GenerateJWTToken("iss", 1, 0, "key")
	require.NoError(t, err)
	assert.NotEqual(t, a.SignedString, b.SignedString)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		issuer string
		userID int64
		ttl    time.Duration
		key    string
	}{
		{"empty issuer", "", 1, 0, "key"},
		{"empty key", "iss", 1, 0, ""},
		{"zero user", "iss", 0, 0, "key"},
		{"negative ttl", "iss", 1, -time.Second, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.ttl, tt.key)
			assert.ErrorIs(t, err, ErrInvalidJWTParams)
		})
	}
}

func TestValidateAndParseJWTToken(t *testing.T) {
	valid, err := GenerateJWTToken("iss", 42, 0, "key")
	require.NoError(t, err)

	expiredClaims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("key"))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: "iss", Subject: "42"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "iss", Subject: "abc"}).
		SignedString([]byte("key"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		key     string
		issuer  string
		wantErr bool
	}{
		{name: "valid", token: valid.SignedString, key: "key", issuer: "iss"},
		{name: "garbage", token: "not.a.jwt", key: "key", issuer: "iss", wantErr: true},
		{name: "wrong key", token: valid.SignedString, key: "other", issuer: "iss", wantErr: true},
		{name: "wrong issuer", token: valid.SignedString, key: "key", issuer: "other", wantErr: true},
		{name: "expired", token: expired, key: "key", issuer: "iss", wantErr: true},
		{name: "alg none", token: noneAlg, key: "key", issuer: "iss", wantErr: true},
		{name: "non-numeric subject", token: badSubject, key: "key", issuer: "iss", wantErr: true},
		{name: "tampered", token: valid.SignedString + "x", key: "key", issuer: "iss", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), token.UserID)
			assert.Equal(t, tt.token, token.SignedString)
		})
	}
}

// ── hash ──────────────────────────────────────────────────────────────────────

func TestHashString(t *testing.T) {
	a := HashString("data", "key")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashString("data", "key"))
	assert.NotEqual(t, a, HashString("data", "other-key"))
	assert.NotEqual(t, a, HashString("other-data", "key"))
}

// ── http ──────────────────────────────────────────────────────────────────────

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	n, err := WriteJSON(rr, map[string]string{"status": "ok"}, http.StatusCreated)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, rr.Body.Len(), n)
}

func TestWriteJSON_MarshalError(t *testing.T) {
	rr := httptest.NewRecorder()

	_, err := WriteJSON(rr, math.Inf(1), http.StatusOK)
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":{"kind":"internal","message":"Internal Server Error"}}`, rr.Body.String())
}

func TestWriteJSON_NoHTMLEscaping(t *testing.T) {
	rr := httptest.NewRecorder()

	_, err := WriteJSON(rr, map[string]string{"description": "<b>&</b>"}, http.StatusOK)
	require.NoError(t, err)

	assert.Contains(t, rr.Body.String(), "<b>&</b>")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	require.NotNil(t, client1.Client)
	assert.NotSame(t, client1.Client, client2.Client)
}

// ── uuid ──────────────────────────────────────────────────────────────────────

func TestNewTraceID(t *testing.T) {
	id := NewTraceID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
