package registrarsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_KeepsSessionCookie(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		http.SetCookie(w, &http.Cookie{Name: "registrar.sid", Value: "token", Path: "/", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(LoginResponse{
			Message: "Login successful",
			User:    SessionUser{ID: "u1", Username: req.Username, Role: RoleAdmin},
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("registrar.sid"); err == nil && c.Value == "token" {
			_ = json.NewEncoder(w).Encode(MeResponse{Authenticated: true, User: &SessionUser{ID: "u1"}})
			return
		}
		_ = json.NewEncoder(w).Encode(MeResponse{})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(srv.URL + "/")

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.False(t, me.Authenticated)

	login, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.Equal(t, "admin", login.User.Username)

	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.Authenticated)
}

func TestClient_DecodesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:   ErrorCodeValidation,
			Message: "Invalid request",
			Details: []FieldError{{Field: "programs", Issue: "at least one program must be selected"}},
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateRegistration(context.Background(), CreateRegistrationRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, ErrorCodeValidation, apiErr.Code)
	require.Len(t, apiErr.Details, 1)
	require.Equal(t, http.StatusBadRequest, StatusCode(err))
	require.False(t, IsNotFound(err))
}

func TestClient_NonJSONError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RegistrationPDF(context.Background(), "missing")
	require.True(t, IsNotFound(err))
}
