package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	p   httpx.Principal
	ok  bool
	err error
}

func (f fakeAuthenticator) Authenticate(*http.Request) (httpx.Principal, bool, error) {
	return f.p, f.ok, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorResponse {
	t.Helper()
	var body httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRequireCapability(t *testing.T) {
	leader := httpx.Principal{
		UserID:       "u1",
		Role:         "team_leader",
		Capabilities: []string{"registrations:read"},
	}

	tests := []struct {
		name     string
		auth     fakeAuthenticator
		wantCode int
		wantErr  string
	}{
		{"anonymous", fakeAuthenticator{}, http.StatusUnauthorized, "unauthorized"},
		{"missing capability", fakeAuthenticator{p: leader, ok: true}, http.StatusForbidden, "forbidden"},
		{"store failure", fakeAuthenticator{err: errors.New("boom")}, http.StatusInternalServerError, "server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.Chain(okHandler(),
				httpx.AuthnMiddleware(tt.auth),
				httpx.RequireCapability("programs:manage"),
			)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/programs", nil))

			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantErr, decodeError(t, rec).Error)
		})
	}

	t.Run("granted", func(t *testing.T) {
		h := httpx.Chain(okHandler(),
			httpx.AuthnMiddleware(fakeAuthenticator{p: leader, ok: true}),
			httpx.RequireCapability("registrations:read"),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registrations", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireCapability_SessionOnly(t *testing.T) {
	anyone := httpx.Principal{UserID: "u2", Role: "team_leader"}

	for _, tc := range []struct {
		name string
		auth fakeAuthenticator
		want int
	}{
		{"anonymous", fakeAuthenticator{}, http.StatusUnauthorized},
		{"signed in", fakeAuthenticator{p: anyone, ok: true}, http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := httpx.Chain(okHandler(), httpx.AuthnMiddleware(tc.auth), httpx.RequireCapability())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestAuthnMiddleware_AttachesPrincipal(t *testing.T) {
	want := httpx.Principal{UserID: "u1", Username: "admin", Role: "admin"}

	var got httpx.Principal
	var found bool
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = httpx.PrincipalFromContext(r.Context())
	}), httpx.AuthnMiddleware(fakeAuthenticator{p: want, ok: true}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.True(t, found)
	require.Equal(t, want, got)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, httpx.DecodeJSON(rec, req, &dst))
	require.Equal(t, "x", dst.Name)

	for _, body := range []string{"", "{", `{"name":"x"} {}`, `[1,2]`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &dst)
		require.ErrorIs(t, err, httpx.ErrBadBody, body)
	}
}

func TestWriteError_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusBadRequest, "validation_error", "Invalid request",
		httpx.ErrorDetail{Field: "fullName", Issue: "required"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	body := decodeError(t, rec)
	require.Equal(t, []httpx.ErrorDetail{{Field: "fullName", Issue: "required"}}, body.Details)
}
