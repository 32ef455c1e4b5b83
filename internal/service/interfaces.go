// Package service implements the business logic of the task manager:
// session tokens, user accounts and avatars, and owner-scoped task CRUD.
//
// Services receive already decoded input, validate it with the validators
// package, persist through the store package and report failures with the
// sentinel errors in errors.go or a *validators.ValidationError.
package service

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService issues, resolves and revokes session tokens.
type SessionService interface {
	// Issue creates a new token for userID and appends it to the user's set.
	Issue(ctx context.Context, userID int64) (models.Token, error)

	// Resolve returns the session a bearer token belongs to.
	// Fails with ErrInvalidToken or ErrUnknownSession.
	Resolve(ctx context.Context, token string) (models.Session, error)

	// Revoke removes exactly one token. Revoking an absent token succeeds.
	Revoke(ctx context.Context, userID int64, token string) error

	// RevokeAll removes every token of the user.
	RevokeAll(ctx context.Context, userID int64) error

	// RevokeOthers removes every token of the user except keep.
	RevokeOthers(ctx context.Context, userID int64, keep string) error
}

// UserService manages accounts, their sessions and avatars.
type UserService interface {
	SignUp(ctx context.Context, request models.SignUpRequest) (models.AuthResponse, error)
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)
	Logout(ctx context.Context, session models.Session) error
	LogoutAll(ctx context.Context, userID int64) error

	GetProfile(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile applies a partial update of name, email and password.
	// A password change ends every other session of the user.
	UpdateProfile(ctx context.Context, session models.Session, fields models.Fields) (models.User, error)

	// DeleteAccount removes the user with all tasks and sessions and returns
	// the removed record.
	DeleteAccount(ctx context.Context, userID int64) (models.User, error)

	SetAvatar(ctx context.Context, userID int64, image []byte) error
	ClearAvatar(ctx context.Context, userID int64) error
	GetAvatar(ctx context.Context, userID int64) ([]byte, error)
}

// TaskService is task CRUD scoped to a single owner. Tasks of other owners
// are reported as ErrNotFound.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, fields models.Fields) (models.Task, error)
	Get(ctx context.Context, ownerID, taskID int64) (models.Task, error)
	List(ctx context.Context, ownerID int64, params models.TaskListParams) ([]models.Task, error)
	Update(ctx context.Context, ownerID, taskID int64, fields models.Fields) (models.Task, error)

	// Delete removes the task and returns the removed record.
	Delete(ctx context.Context, ownerID, taskID int64) (models.Task, error)
}

// NotificationQueue accepts notifications for asynchronous delivery.
// Enqueue must not block; it reports whether the notification was accepted.
type NotificationQueue interface {
	Enqueue(ctx context.Context, notification models.Notification) bool
}
