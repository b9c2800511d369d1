package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/web-mahadihasan/TasksZen-Server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJWT(t *testing.T, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	h := NewAuthHandler()
	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))
	req := httptest.NewRequest(http.MethodPost, "/jwt", &body)
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)
	return rec
}

func TestIssueToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec := postJWT(t, map[string]string{"name": "Jane Doe", "email": "jane@example.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got["token"])

	claims, err := utils.ValidateToken(got["token"])
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane Doe", claims.Name)
}

func TestIssueTokenValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec := postJWT(t, map[string]string{"name": "Jane Doe"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
