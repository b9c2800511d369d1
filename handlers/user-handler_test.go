package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/web-mahadihasan/TasksZen-Server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRegistrar struct {
	registerFn func(ctx context.Context, user models.User) (*models.User, bool, error)
	calls      int
}

func (f *fakeUserRegistrar) RegisterUser(ctx context.Context, user models.User) (*models.User, bool, error) {
	f.calls++
	return f.registerFn(ctx, user)
}

func postUser(t *testing.T, h *UserHandler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))
	req := httptest.NewRequest(http.MethodPost, "/users", &body)
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	return rec
}

func TestRegisterNewUser(t *testing.T) {
	fake := &fakeUserRegistrar{
		registerFn: func(ctx context.Context, user models.User) (*models.User, bool, error) {
			user.ID = primitive.NewObjectID()
			return &user, true, nil
		},
	}
	h := NewUserHandler(fake)

	rec := postUser(t, h, map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"photoUrl": "https://example.com/jane.png",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestRegisterExistingUserIsNoOp(t *testing.T) {
	existing := models.User{ID: primitive.NewObjectID(), Name: "Jane Doe", Email: "jane@example.com"}
	fake := &fakeUserRegistrar{
		registerFn: func(ctx context.Context, user models.User) (*models.User, bool, error) {
			return &existing, false, nil
		},
	}
	h := NewUserHandler(fake)

	rec := postUser(t, h, map[string]string{"name": "Jane Doe", "email": "jane@example.com"})

	require.Equal(t, http.StatusOK, rec.Code, "duplicate registration is not an error")
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, existing.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]string
	}{
		{name: "missing email", payload: map[string]string{"name": "Jane Doe"}},
		{name: "malformed email", payload: map[string]string{"name": "Jane Doe", "email": "nope"}},
		{name: "missing name", payload: map[string]string{"email": "jane@example.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeUserRegistrar{}
			h := NewUserHandler(fake)

			rec := postUser(t, h, tc.payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, fake.calls)
		})
	}
}
