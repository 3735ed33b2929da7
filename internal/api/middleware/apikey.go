package middleware

import (
	"net/http"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mkuiper/portfolio-tracker/internal/api/response"
)

// APIKeyAuth verifies fernet tokens on mutating endpoints. Tokens are minted
// out-of-band with the same key (see GenerateToken) and expire after the
// configured TTL. A zero-value APIKeyAuth (no key) disables verification,
// which keeps local development friction-free.
type APIKeyAuth struct {
	key *fernet.Key
	ttl time.Duration
}

// NewAPIKeyAuth creates an APIKeyAuth from a base64-encoded fernet key.
// An empty key string disables verification.
func NewAPIKeyAuth(encodedKey string, ttl time.Duration) (*APIKeyAuth, error) {
	if encodedKey == "" {
		return &APIKeyAuth{}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, err
	}

	return &APIKeyAuth{key: key, ttl: ttl}, nil
}

// GenerateToken mints a fernet token carrying the given subject, suitable for
// the X-API-Key header. Returns an empty string when verification is disabled.
func (a *APIKeyAuth) GenerateToken(subject string) (string, error) {
	if a.key == nil {
		return "", nil
	}
	token, err := fernet.EncryptAndSign([]byte(subject), a.key)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// Handler is the middleware: it rejects requests whose X-API-Key header is
// missing, malformed, or expired.
func (a *APIKeyAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.key == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("X-API-Key")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		payload := fernet.VerifyAndDecrypt([]byte(token), a.ttl, []*fernet.Key{a.key})
		if payload == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
