package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/mock"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "valid-token"

type testServices struct {
	sessions *mock.MockSessionService
	users    *mock.MockUserService
	tasks    *mock.MockTaskService
}

// newTestRouter builds the full router over mocked services.
func newTestRouter(t *testing.T) (http.Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testServices{
		sessions: mock.NewMockSessionService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		tasks:    mock.NewMockTaskService(ctrl),
	}
	services := &service.Services{
		SessionService: m.sessions,
		UserService:    m.users,
		TaskService:    m.tasks,
	}

	h := NewHandler(services, config.App{AvatarMaxBytes: 1 << 20}, models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123"), logger.Nop())
	return h.Init(), m
}

// expectAuth lets testToken resolve to user 1.
func (m testServices) expectAuth() {
	m.sessions.EXPECT().Resolve(gomock.Any(), testToken).Return(models.Session{UserID: 1, Token: testToken}, nil)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorDetails {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}
