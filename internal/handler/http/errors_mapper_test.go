package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestMappingFromError(t *testing.T) {
	verr := validators.NewValidationError()
	verr.Add("name", validators.MsgRequired)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", verr, http.StatusBadRequest},
		{"authentication", service.ErrAuthentication, http.StatusBadRequest},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"unknown session", service.ErrUnknownSession, http.StatusUnauthorized},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"duplicate email", service.ErrDuplicateEmail, http.StatusBadRequest},
		{"attachment", service.ErrInvalidAttachment, http.StatusBadRequest},
		{"wrapped", fmt.Errorf("ctx: %w", service.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mappingFromError(tt.err).status)
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"kind":"internal","message":"Internal Server Error"}}`, rec.Body.String())
}

func TestWriteError_ValidationFields(t *testing.T) {
	verr := validators.NewValidationError()
	verr.Add("description", validators.MsgEmpty)

	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), verr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		fmt.Sprintf(`{"error":{"kind":"validation","message":"validation failed","fields":{"description":%q}}}`, validators.MsgEmpty),
		rec.Body.String())
}
