package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/crypto"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	users         store.UserRepository
	sessions      SessionService
	hasher        crypto.PasswordHasher
	validator     validators.Validator
	notifications NotificationQueue

	// avatarMaxBytes is the upload size ceiling for avatars.
	avatarMaxBytes int64

	logger *logger.Logger
}

// NewUserService constructs a UserService. Notifications are handed to
// notifications and never awaited.
func NewUserService(
	users store.UserRepository,
	sessions SessionService,
	hasher crypto.PasswordHasher,
	notifications NotificationQueue,
	cfg config.App,
	logger *logger.Logger,
) UserService {
	return &userService{
		users:          users,
		sessions:       sessions,
		hasher:         hasher,
		validator:      validators.NewUserValidator(),
		notifications:  notifications,
		avatarMaxBytes: cfg.AvatarMaxBytes,
		logger:         logger,
	}
}

// mapUserError translates store errors into domain errors.
func mapUserError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrNoUserWasFound), errors.Is(err, store.ErrAvatarNotFound):
		return ErrNotFound
	default:
		return err
	}
}

// SignUp validates the request, stores the account with a hashed password,
// opens the first session and schedules a welcome notification.
//
// Returns a *validators.ValidationError listing every invalid field,
// ErrDuplicateEmail, or a wrapped internal error.
func (u *userService) SignUp(ctx context.Context, request models.SignUpRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := u.validator.Validate(ctx, request); err != nil {
		return models.AuthResponse{}, err
	}

	passwordHash, err := u.hasher.Hash(strings.TrimSpace(request.Password))
	if err != nil {
		log.Err(err).Str("func", "*userService.SignUp").Msg("failed to hash password")
		return models.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.CreateUser(ctx, models.User{
		Name:         strings.TrimSpace(request.Name),
		Email:        validators.NormalizeEmail(request.Email),
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("func", "*userService.SignUp").Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", mapUserError(err))
	}

	token, err := u.sessions.Issue(ctx, user.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	u.notifications.Enqueue(ctx, models.NewWelcomeNotification(user))

	return models.AuthResponse{User: user, Token: token.SignedString}, nil
}

// Login checks the credentials and opens a new session. Every kind of
// mismatch yields ErrAuthentication.
func (u *userService) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	user, err := u.users.FindUserByEmail(ctx, validators.NormalizeEmail(credentials.Email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthResponse{}, ErrAuthentication
		}
		log.Err(err).Str("func", "*userService.Login").Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !u.hasher.Verify(strings.TrimSpace(credentials.Password), user.PasswordHash) {
		log.Info().Str("func", "*userService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.AuthResponse{}, ErrAuthentication
	}

	token, err := u.sessions.Issue(ctx, user.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{User: user, Token: token.SignedString}, nil
}

// Logout ends only the session that made the request.
func (u *userService) Logout(ctx context.Context, session models.Session) error {
	return u.sessions.Revoke(ctx, session.UserID, session.Token)
}

// LogoutAll ends every session of the user.
func (u *userService) LogoutAll(ctx context.Context, userID int64) error {
	return u.sessions.RevokeAll(ctx, userID)
}

func (u *userService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := u.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapUserError(err)
	}
	return user, nil
}

// UpdateProfile validates fields against {name, email, password}, re-hashes a
// new password and persists the change.
func (u *userService) UpdateProfile(ctx context.Context, session models.Session, fields models.Fields) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := u.validator.Validate(ctx, fields); err != nil {
		return models.User{}, err
	}

	changes := validators.ProfileChangesFromFields(fields)
	if changes.IsEmpty() {
		return u.GetProfile(ctx, session.UserID)
	}

	update := models.UserUpdate{Name: changes.Name, Email: changes.Email}
	if changes.Password != nil {
		passwordHash, err := u.hasher.Hash(*changes.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.UpdateProfile").Msg("failed to hash password")
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &passwordHash
	}

	user, err := u.users.UpdateUser(ctx, session.UserID, update)
	if err != nil {
		return models.User{}, mapUserError(err)
	}

	// The new password is already committed, so a revocation failure is
	// logged and the update still succeeds.
	if update.PasswordHash != nil {
		if err = u.sessions.RevokeOthers(ctx, session.UserID, session.Token); err != nil {
			log.Err(err).Str("func", "*userService.UpdateProfile").Int64("user_id", session.UserID).Msg("failed to revoke other sessions after password change")
		}
	}

	return user, nil
}

// DeleteAccount removes the account, its tasks and sessions and schedules a
// removal notification.
func (u *userService) DeleteAccount(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := u.users.DeleteUser(ctx, userID)
	if err != nil {
		return models.User{}, mapUserError(err)
	}

	// rows are gone already; this only evicts cached sessions
	if err = u.sessions.RevokeAll(ctx, userID); err != nil {
		log.Warn().Err(err).Str("func", "*userService.DeleteAccount").Int64("user_id", userID).Msg("failed to revoke sessions of removed user")
	}

	u.notifications.Enqueue(ctx, models.NewAccountRemovedNotification(user))

	return user, nil
}

// SetAvatar normalizes the uploaded image and stores it.
func (u *userService) SetAvatar(ctx context.Context, userID int64, image []byte) error {
	log := logger.FromContext(ctx)

	avatar, err := normalizeAvatar(image, u.avatarMaxBytes)
	if err != nil {
		log.Info().Err(err).Str("func", "*userService.SetAvatar").Int64("user_id", userID).Msg("avatar rejected")
		return ErrInvalidAttachment
	}

	if err = u.users.SetAvatar(ctx, userID, avatar); err != nil {
		return mapUserError(err)
	}

	return nil
}

func (u *userService) ClearAvatar(ctx context.Context, userID int64) error {
	if err := u.users.SetAvatar(ctx, userID, nil); err != nil {
		return mapUserError(err)
	}
	return nil
}

// GetAvatar returns the stored PNG or ErrNotFound when the user or the
// avatar does not exist.
func (u *userService) GetAvatar(ctx context.Context, userID int64) ([]byte, error) {
	avatar, err := u.users.GetAvatar(ctx, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return avatar, nil
}
