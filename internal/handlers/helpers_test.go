package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/dto"
	"github.com/yukikurage/taskflow-api/internal/logging"
	"github.com/yukikurage/taskflow-api/internal/repository/memory"
	"github.com/yukikurage/taskflow-api/internal/services"
)

type testServer struct {
	router *gin.Engine
	svc    *services.Services
}

func newTestServer(t *testing.T, drafter services.TaskDrafter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewDiscardLogger()
	svc := services.New(memory.New(), services.NewTokenService("test-secret", time.Hour), drafter, logger)
	store := cookie.NewStore([]byte("secret"))

	return &testServer{
		router: NewRouter(svc, store, logger),
		svc:    svc,
	}
}

// do sends a JSON request; token may be empty for anonymous calls.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", constants.BearerScheme+" "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns the auth response.
func (s *testServer) register(t *testing.T, username, role string) dto.AuthResponse {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "password123",
		"firstName": "Test",
		"lastName":  "User",
		"role":      role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"errors"`
}
