package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/go-chi/chi/v5"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// decodeJSON decodes a single JSON value from the request body into dst.
// A field of the wrong JSON type is reported as a *validators.ValidationError
// naming that field.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))

	err := decoder.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr := validators.NewValidationError()
		verr.Add(typeErr.Field, fmt.Sprintf("must be %s", typeErr.Type.Kind()))
		return verr
	}

	return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
}

// decodeFields decodes a JSON object body. An empty body yields no fields.
func decodeFields(w http.ResponseWriter, r *http.Request) (models.Fields, error) {
	fields := models.Fields{}
	if err := decodeJSON(w, r, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = models.Fields{}
	}
	return fields, nil
}

// idFromPath parses the {id} path parameter. Anything that is not a positive
// integer cannot name an existing record.
func idFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// sessionFromRequest returns the session stored by the auth middleware.
func sessionFromRequest(r *http.Request) (models.Session, error) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		return models.Session{}, service.ErrInvalidToken
	}
	return session, nil
}
