package store

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and their avatars.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)

	// DeleteUser removes the user with every task and session token it owns
	// in one transaction and returns the removed record.
	DeleteUser(ctx context.Context, userID int64) (models.User, error)

	// SetAvatar stores avatar for the user; a nil avatar clears it.
	SetAvatar(ctx context.Context, userID int64, avatar []byte) error
	GetAvatar(ctx context.Context, userID int64) ([]byte, error)
}

// TaskRepository persists tasks. Every method except CreateTask is scoped by
// owner: a task owned by someone else is reported as ErrTaskNotFound.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error)
	ListTasks(ctx context.Context, query models.TaskQuery) ([]models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID int64, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID int64) (models.Task, error)
}

// TokenRepository is the authoritative store of every user's session token set.
type TokenRepository interface {
	AddToken(ctx context.Context, userID int64, token string) error
	HasToken(ctx context.Context, userID int64, token string) (bool, error)
	DeleteToken(ctx context.Context, userID int64, token string) error
	DeleteAllTokens(ctx context.Context, userID int64) error

	// DeleteOtherTokens removes every token of the user except keep.
	DeleteOtherTokens(ctx context.Context, userID int64, keep string) error
}

// SessionCache is a best-effort accelerator in front of TokenRepository.
// A miss never means a token is invalid.
type SessionCache interface {
	Add(ctx context.Context, userID int64, token string) error
	Contains(ctx context.Context, userID int64, token string) (bool, error)
	Remove(ctx context.Context, userID int64, token string) error
	RemoveAll(ctx context.Context, userID int64) error
}

// ErrorClassificator decides whether a failed database operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
