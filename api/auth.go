package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/config"
)

// ErrUnauthenticated is returned for a missing or invalid bearer token
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when a non-admin calls an admin route
var ErrForbidden = errors.New("admin access required")

// Identity is the authenticated caller. Admin is the only privilege level.
type Identity struct {
	UserID string
	Email  string
	Admin  bool
}

// Claims is the bearer token payload. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// adminGroup is the go-guardian group carried by admin identities
const adminGroup = "admin"

// TokenCacheTTL bounds how long a verified token is trusted without being
// parsed again
const TokenCacheTTL = time.Minute

// Authenticator verifies HS256 bearer tokens and resolves the admin flag
// from an email allow-list. Requests go through a go-guardian cached bearer
// strategy whose verifier is Parse.
type Authenticator struct {
	secret []byte
	admins map[string]struct{}
	guard  auth.Authenticator
}

// NewAuthenticator returns an Authenticator for secret and the admin allow-list
func NewAuthenticator(secret string, adminEmails []string) *Authenticator {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	a := &Authenticator{secret: []byte(secret), admins: admins}

	cache := store.NewFIFO(context.Background(), TokenCacheTTL)
	a.guard = auth.New()
	a.guard.EnableStrategy(bearer.CachedStrategyKey, bearer.New(a.verifyToken, cache))
	return a
}

// verifyToken is the go-guardian bearer verifier
func (a *Authenticator) verifyToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	id, err := a.Parse(token)
	if err != nil {
		return nil, err
	}
	var groups []string
	if id.Admin {
		groups = []string{adminGroup}
	}
	return auth.NewDefaultUser(id.Email, id.UserID, groups, nil), nil
}

func identityFromInfo(info auth.Info) Identity {
	id := Identity{UserID: info.ID(), Email: info.UserName()}
	for _, g := range info.Groups() {
		if g == adminGroup {
			id.Admin = true
		}
	}
	return id
}

// IsAdmin reports whether email is on the allow-list
func (a *Authenticator) IsAdmin(email string) bool {
	_, ok := a.admins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// IssueToken signs a token for userID valid for ttl
func (a *Authenticator) IssueToken(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse verifies a raw token and returns the identity it carries
func (a *Authenticator) Parse(raw string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Admin:  a.IsAdmin(claims.Email),
	}, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// caller identity in the request context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, err := a.guard.Authenticate(r)
		if err != nil {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, fmt.Errorf("%w: %v", ErrUnauthenticated, err))
			return
		}
		id := identityFromInfo(info)
		zap.S().Debugw("authenticated", "user", id.UserID, "admin", id.Admin)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin lets only admins through. It must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, ErrUnauthenticated)
			return
		}
		if !id.Admin {
			config.ErrorStatus("forbidden", http.StatusForbidden, w, ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
