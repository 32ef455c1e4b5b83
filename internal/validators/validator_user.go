package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var updatableUserFields = map[string]struct{}{
	FieldName:     {},
	FieldEmail:    {},
	FieldPassword: {},
}

// ProfileChanges is a validated and normalized profile update.
// Password is the trimmed plaintext; hashing is up to the caller.
type ProfileChanges struct {
	Name     *string
	Email    *string
	Password *string
}

// IsEmpty reports whether no field is being changed.
func (c ProfileChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Password == nil
}

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate accepts models.SignUpRequest (optionally scoped to some of name,
// email and password) and models.Fields holding a profile update.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignUpRequest:
		return v.validateSignUp(ctx, value, fields...)
	case *models.SignUpRequest:
		return v.validateSignUp(ctx, *value, fields...)

	case models.Fields:
		return v.validateProfileUpdate(ctx, value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignUp(ctx context.Context, request models.SignUpRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	verr := NewValidationError()
	for _, f := range fields {
		switch f {
		case FieldName:
			if msg := checkName(request.Name); msg != "" {
				verr.Add(FieldName, msg)
			}
		case FieldEmail:
			if msg := checkEmail(NormalizeEmail(request.Email)); msg != "" {
				verr.Add(FieldEmail, msg)
			}
		case FieldPassword:
			if msg := checkPassword(request.Password); msg != "" {
				verr.Add(FieldPassword, msg)
			}
		default:
			return ErrUnknownField
		}
	}

	return verr.OrNil()
}

func (v *UserValidator) validateProfileUpdate(ctx context.Context, update models.Fields) error {
	verr := NewValidationError()

	for key, raw := range update {
		if _, ok := updatableUserFields[key]; !ok {
			verr.Add(key, MsgNotAllowed)
			continue
		}

		value, ok := raw.(string)
		if !ok {
			verr.Add(key, MsgMustBeString)
			continue
		}

		var msg string
		switch key {
		case FieldName:
			msg = checkName(value)
		case FieldEmail:
			msg = checkEmail(NormalizeEmail(value))
		case FieldPassword:
			msg = checkPassword(value)
		}
		if msg != "" {
			verr.Add(key, msg)
		}
	}

	return verr.OrNil()
}

// ProfileChangesFromFields converts an already validated profile update.
func ProfileChangesFromFields(update models.Fields) ProfileChanges {
	var changes ProfileChanges

	if value, ok := update[FieldName].(string); ok {
		name := strings.TrimSpace(value)
		changes.Name = &name
	}
	if value, ok := update[FieldEmail].(string); ok {
		email := NormalizeEmail(value)
		changes.Email = &email
	}
	if value, ok := update[FieldPassword].(string); ok {
		password := strings.TrimSpace(value)
		changes.Password = &password
	}

	return changes
}
