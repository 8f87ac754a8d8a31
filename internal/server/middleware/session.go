package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lamnguyen-ct/storefront/internal/usecase"
	"github.com/lamnguyen-ct/storefront/pkg/crypto"
)

// UserContextKey is where resolved users are stored on the echo context.
const UserContextKey = "user"

type SessionConfig struct {
	Auth              usecase.AuthUsecase
	Sealer            crypto.Sealer
	CookieName        string
	SignInPath        string
	ProtectedPrefixes []string
}

// SessionToken extracts the provider access token from the Authorization
// bearer header or, failing that, the sealed session cookie. An
// unreadable cookie counts as no session.
func SessionToken(c echo.Context, cookieName string, sealer crypto.Sealer) string {
	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader && token != "" {
		return token
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	token, err := sealer.Open(cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

// SessionGate is the request-level gate for protected path prefixes:
// without an active session the request is redirected to the sign-in
// page before any handler runs. It complements, and is independent of,
// whatever gating the pages themselves do.
func SessionGate(config SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isProtected(config.ProtectedPrefixes, c.Request().URL.Path) {
				return next(c)
			}

			token := SessionToken(c, config.CookieName, config.Sealer)
			if token == "" {
				return c.Redirect(http.StatusFound, config.SignInPath)
			}

			user, err := config.Auth.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return c.Redirect(http.StatusFound, config.SignInPath)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// RequireSession is the API flavour of the gate: missing or invalid
// sessions get 401 instead of a redirect.
func RequireSession(config SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := SessionToken(c, config.CookieName, config.Sealer)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			user, err := config.Auth.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func isProtected(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
