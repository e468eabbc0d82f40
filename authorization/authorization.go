package authorization

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cristalhq/jwt/v4"
	"stayvista_service/domain"
)

const (
	CookieName = "token"

	// Sessions are long lived, the client re-authenticates through the
	// identity provider and asks for a fresh token on every sign-in.
	TokenValidity = 365 * 24 * time.Hour
)

// GenerateToken signs the identity claim with the given key. The claim
// must carry an email, everything else is optional.
func GenerateToken(key []byte, claims *domain.Claims) (string, error) {
	if claims.Email == "" {
		return "", fmt.Errorf("claims without email")
	}

	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return "", err
	}

	if claims.ExpiresAt.IsZero() {
		claims.ExpiresAt = time.Now().Add(TokenValidity)
	}

	builder := jwt.NewBuilder(signer)
	token, err := builder.Build(claims)
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

// VerifyToken checks signature and expiry and returns the embedded claim.
func VerifyToken(key []byte, raw string) (*domain.Claims, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, key)
	if err != nil {
		return nil, err
	}

	var claims domain.Claims
	err = jwt.ParseClaims([]byte(raw), verifier, &claims)
	if err != nil {
		return nil, err
	}

	if !claims.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("token without email claim")
	}

	return &claims, nil
}

// SetSessionCookie delivers the token in an httpOnly cookie. In production
// the frontend is served cross-site, so the cookie must be Secure with
// SameSite=None; in development it stays strict over plain http.
func SetSessionCookie(rw http.ResponseWriter, token string, production bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(rw, cookie)
}

// ClearSessionCookie drops the session client-side. Idempotent.
func ClearSessionCookie(rw http.ResponseWriter, production bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(rw, cookie)
}

type claimsKey struct{}

// ClaimsFromContext returns the verified identity claim attached by
// Middleware, if the request carried a valid session token.
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*domain.Claims)
	return claims, ok
}

func ContextWithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// Middleware reads the session cookie and, when it verifies, attaches the
// claim to the request context. A missing or invalid cookie is not an
// error here; routes that need a session are rejected by the policy
// middleware or by the handler itself.
func Middleware(key []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
			cookie, err := h.Cookie(CookieName)
			if err == nil && cookie.Value != "" {
				if claims, err := VerifyToken(key, cookie.Value); err == nil {
					h = h.WithContext(ContextWithClaims(h.Context(), claims))
				}
			}
			next.ServeHTTP(rw, h)
		})
	}
}
