package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
)

// Error kinds reported in the "kind" member of an error body.
const (
	kindValidation     = "validation"
	kindAuthentication = "authentication"
	kindUnauthorized   = "unauthorized"
	kindNotFound       = "not_found"
	kindDuplicateEmail = "duplicate_email"
	kindAttachment     = "invalid_attachment"
	kindBadRequest     = "bad_request"
	kindInternal       = "internal"
)

type errorMapping struct {
	status int
	kind   string
}

var errorStatusMap = map[error]errorMapping{
	validators.ErrValidation:     {http.StatusBadRequest, kindValidation},
	service.ErrAuthentication:    {http.StatusBadRequest, kindAuthentication},
	service.ErrInvalidToken:      {http.StatusUnauthorized, kindUnauthorized},
	service.ErrUnknownSession:    {http.StatusUnauthorized, kindUnauthorized},
	service.ErrNotFound:          {http.StatusNotFound, kindNotFound},
	service.ErrDuplicateEmail:    {http.StatusBadRequest, kindDuplicateEmail},
	service.ErrInvalidAttachment: {http.StatusBadRequest, kindAttachment},

	ErrEmptyAuthorizationHeader:   {http.StatusUnauthorized, kindUnauthorized},
	ErrInvalidAuthorizationHeader: {http.StatusUnauthorized, kindUnauthorized},
	ErrEmptyToken:                 {http.StatusUnauthorized, kindUnauthorized},
	ErrInvalidJSON:                {http.StatusBadRequest, kindBadRequest},
	ErrInvalidID:                  {http.StatusNotFound, kindNotFound},
	ErrMissingAvatar:              {http.StatusBadRequest, kindAttachment},
	ErrRouteNotFound:              {http.StatusNotFound, kindNotFound},
	ErrNotImplemented:             {http.StatusNotFound, kindNotFound},
}

var internalError = errorMapping{http.StatusInternalServerError, kindInternal}

func mappingFromError(err error) errorMapping {
	for target, mapping := range errorStatusMap {
		if errors.Is(err, target) {
			return mapping
		}
	}
	return internalError
}

type errorBody struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeError renders err as a JSON error body. Unmapped errors are logged and
// reported as a bare internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapping := mappingFromError(err)

	details := errorDetails{Kind: mapping.kind, Message: err.Error()}
	if mapping == internalError {
		logger.FromRequest(r).Err(err).Str("func", "writeError").Msg("internal error")
		details.Message = http.StatusText(http.StatusInternalServerError)
	}

	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		details.Message = "validation failed"
		details.Fields = verr.Fields
	}

	utils.WriteJSON(w, errorBody{Error: details}, mapping.status)
}
