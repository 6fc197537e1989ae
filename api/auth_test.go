package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashtra/rashtra-api/api"
)

func TestAuthenticator_IssueAndParse(t *testing.T) {
	a := api.NewAuthenticator("secret", []string{"Admin@City.gov"})

	token, err := a.IssueToken("user-1", "admin@city.gov", time.Hour)
	require.NoError(t, err)

	id, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.True(t, id.Admin)

	token, _ = a.IssueToken("user-2", "citizen@mail.com", time.Hour)
	id, err = a.Parse(token)
	require.NoError(t, err)
	assert.False(t, id.Admin)
}

func TestAuthenticator_RejectsBadTokens(t *testing.T) {
	a := api.NewAuthenticator("secret", nil)

	expired, _ := a.IssueToken("user-1", "", -time.Minute)
	_, err := a.Parse(expired)
	assert.ErrorIs(t, err, api.ErrUnauthenticated)

	other, _ := api.NewAuthenticator("other", nil).IssueToken("user-1", "", time.Hour)
	_, err = a.Parse(other)
	assert.ErrorIs(t, err, api.ErrUnauthenticated)

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("secret"))
	_, err = a.Parse(noSubject)
	assert.ErrorIs(t, err, api.ErrUnauthenticated)

	_, err = a.Parse("garbage")
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
}

func TestAuthenticator_Middleware(t *testing.T) {
	a := api.NewAuthenticator("secret", []string{"admin@city.gov"})
	var seen api.Identity
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = api.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/mine", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token, _ := a.IssueToken("user-1", "admin@city.gov", time.Hour)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-1", seen.UserID)
	assert.True(t, seen.Admin)
}

func TestRequireAdmin(t *testing.T) {
	a := api.NewAuthenticator("secret", []string{"admin@city.gov"})
	h := a.Middleware(api.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	citizen, _ := a.IssueToken("user-1", "citizen@mail.com", time.Hour)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/complaints/1", nil)
	req.Header.Set("Authorization", "Bearer "+citizen)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	admin, _ := a.IssueToken("user-2", "admin@city.gov", time.Hour)
	req.Header.Set("Authorization", "Bearer "+admin)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	api.RequireAdmin(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticator_MiddlewareReusesVerifiedToken(t *testing.T) {
	a := api.NewAuthenticator("secret", []string{"admin@city.gov"})
	var seen []api.Identity
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := api.IdentityFrom(r.Context())
		seen = append(seen, id)
	}))

	admin, _ := a.IssueToken("admin-1", "admin@city.gov", time.Hour)
	citizen, _ := a.IssueToken("user-1", "citizen@mail.com", time.Hour)
	for _, token := range []string{admin, admin, citizen, citizen} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	require.Len(t, seen, 4)
	assert.Equal(t, api.Identity{UserID: "admin-1", Email: "admin@city.gov", Admin: true}, seen[1])
	assert.Equal(t, api.Identity{UserID: "user-1", Email: "citizen@mail.com"}, seen[3])
}

func TestAuthenticator_MiddlewareRejectsForeignToken(t *testing.T) {
	a := api.NewAuthenticator("secret", nil)
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	forged, _ := api.NewAuthenticator("other", nil).IssueToken("user-1", "", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
