package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow-api/internal/dto"
)

func TestUserHandler_List(t *testing.T) {
	srv := newTestServer(t, nil)
	alice := srv.register(t, "alice", "employee")
	srv.register(t, "bob", "employee")

	w := srv.do(t, http.MethodGet, "/api/users", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]dto.UserDTO](t, w)
	assert.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_Update(t *testing.T) {
	srv := newTestServer(t, nil)
	alice := srv.register(t, "alice", "employee")
	bob := srv.register(t, "bob", "employee")
	lead := srv.register(t, "lead", "scrum_master")

	tests := []struct {
		name           string
		token          string
		target         string
		body           map[string]any
		expectedStatus int
	}{
		{
			name:           "self update",
			token:          alice.Token,
			target:         alice.User.ID,
			body:           map[string]any{"firstName": "Alicia"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "employee cannot edit others",
			token:          alice.Token,
			target:         bob.User.ID,
			body:           map[string]any{"firstName": "Robert"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "scrum master can edit others",
			token:          lead.Token,
			target:         bob.User.ID,
			body:           map[string]any{"lastName": "Builder"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid email",
			token:          alice.Token,
			target:         alice.User.ID,
			body:           map[string]any{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "display-name email for another mailbox",
			token:          alice.Token,
			target:         alice.User.ID,
			body:           map[string]any{"email": "Bob <bob@example.com>"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown user",
			token:          lead.Token,
			target:         "missing",
			body:           map[string]any{"firstName": "Ghost"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPut, "/api/users/"+tt.target, tt.token, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}

	w := srv.do(t, http.MethodGet, "/api/auth/me", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[dto.UserDTO](t, w)
	assert.Equal(t, "Alicia", me.FirstName)
	assert.Equal(t, "alice@example.com", me.Email)
}
