package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
)

const (
	FieldDescription = "description"
	FieldCompleted   = "completed"

	// FieldDescriptionRequired scopes task validation to creation, where
	// the description must be present.
	FieldDescriptionRequired = "description required"
)

var writableTaskFields = map[string]struct{}{
	FieldDescription: {},
	FieldCompleted:   {},
}

type TaskValidator struct {
}

func NewTaskValidator() Validator {
	return &TaskValidator{}
}

// Validate accepts models.Fields holding a task to create or a partial task
// update. Pass FieldDescriptionRequired when validating creation.
func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Fields:
		return v.validateTaskFields(ctx, value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTaskFields(ctx context.Context, task models.Fields, fields ...string) error {
	verr := NewValidationError()

	for _, f := range fields {
		switch f {
		case FieldDescriptionRequired:
			if _, ok := task[FieldDescription]; !ok {
				verr.Add(FieldDescription, MsgRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	for key, raw := range task {
		if _, ok := writableTaskFields[key]; !ok {
			verr.Add(key, MsgNotAllowed)
			continue
		}

		switch key {
		case FieldDescription:
			value, ok := raw.(string)
			if !ok {
				verr.Add(key, MsgMustBeString)
				continue
			}
			if msg := checkDescription(value); msg != "" {
				verr.Add(key, msg)
			}
		case FieldCompleted:
			if _, ok := raw.(bool); !ok {
				verr.Add(key, MsgMustBeBoolean)
			}
		}
	}

	return verr.OrNil()
}

// TaskUpdateFromFields converts already validated task fields.
func TaskUpdateFromFields(task models.Fields) models.TaskUpdate {
	var update models.TaskUpdate

	if value, ok := task[FieldDescription].(string); ok {
		description := strings.TrimSpace(value)
		update.Description = &description
	}
	if value, ok := task[FieldCompleted].(bool); ok {
		update.Completed = &value
	}

	return update
}
