package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/smartiq/pim-go/internal/domain/auth"
	"github.com/smartiq/pim-go/internal/domain/user"
)

// APIKeyHeader carries the client's API key.
const APIKeyHeader = "X-API-Key"

type requesterKey struct{}

// RequesterFromContext returns the authenticated user set by the security
// middleware, or nil when the request is unauthenticated.
func RequesterFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(requesterKey{}).(*user.User)
	return u
}

// Security authenticates requests via HMAC-SHA256 hashed API keys and
// resolves the key's owner, so downstream handlers receive an explicit
// requester identity instead of an ambient session.
type Security struct {
	apikeys auth.Repository
	users   user.Repository
	pepper  []byte
}

// NewSecurity creates the security middleware with the given repositories
// and HMAC pepper.
func NewSecurity(apikeys auth.Repository, users user.Repository, pepper []byte) *Security {
	return &Security{
		apikeys: apikeys,
		users:   users,
		pepper:  pepper,
	}
}

// Middleware rejects requests without a valid API key and injects the
// resolved user into the request context.
func (s *Security) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.authenticate(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), requesterKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate computes the HMAC-SHA256 of the presented key, looks it up,
// and performs a constant-time comparison before resolving the owner.
func (s *Security) authenticate(r *http.Request) (*user.User, error) {
	key := r.Header.Get(APIKeyHeader)
	if key == "" {
		return nil, errors.New("missing api key")
	}

	mac := hmac.New(sha256.New, s.pepper)
	mac.Write([]byte(key))
	hash := mac.Sum(nil)

	info, err := s.apikeys.FindByHash(r.Context(), hex.EncodeToString(hash))
	if err != nil {
		return nil, errors.Wrap(err, "lookup api key")
	}

	stored, err := hex.DecodeString(info.KeyHash)
	if err != nil {
		return nil, errors.Wrap(err, "decode stored hash")
	}
	if subtle.ConstantTimeCompare(hash, stored) != 1 {
		return nil, errors.New("hash mismatch")
	}

	u, err := s.users.GetByLogin(r.Context(), info.UserLogin)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve user %q", info.UserLogin)
	}
	return u, nil
}
