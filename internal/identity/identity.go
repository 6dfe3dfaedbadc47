// Package identity verifies the bearer tokens issued by the hosted auth
// provider and carries the authenticated user through request contexts.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrUnauthenticated signals a missing or rejected bearer token.
	ErrUnauthenticated = errors.New("identity: unauthenticated")
	// ErrNoSecret is returned when no signing secret is configured.
	ErrNoSecret = errors.New("identity: signing secret not configured")
)

// Identity is the authenticated principal.
type Identity struct {
	UserID string
	Email  string
}

// Claims are the token claims the API reads.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token, returning the identity in its subject.
func (v *Verifier) Verify(token string) (Identity, error) {
	if v == nil || len(v.secret) == 0 {
		return Identity{}, ErrNoSecret
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return Identity{UserID: subject, Email: claims.Email}, nil
}

// Issue signs a token for userID valid for ttl. Used for local development
// and tests; production tokens come from the auth provider.
func (v *Verifier) Issue(userID, email string, ttl time.Duration) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrNoSecret
	}
	now := jwt.TimeFunc()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type contextKey string

const identityContextKey contextKey = "finseva/identity"

// WithIdentity stores the identity within the context for downstream handlers.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext retrieves the identity previously stored in context.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// RequireUser rejects requests without a valid bearer token.
func RequireUser(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondAuthError(w, http.StatusUnauthorized, "unauthenticated", "bearer token missing")
				return
			}

			id, err := v.Verify(token)
			if err != nil {
				if errors.Is(err, ErrNoSecret) {
					respondAuthError(w, http.StatusServiceUnavailable, "auth_unavailable", "authentication is not configured")
					return
				}
				respondAuthError(w, http.StatusUnauthorized, "invalid_token", "bearer token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func respondAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   code,
		"message": message,
		"status":  status,
	})
}
