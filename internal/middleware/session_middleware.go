package middleware

import (
	"strings"
	"time"

	"lifeshare/internal/models"
	"lifeshare/internal/services"
	"lifeshare/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie carries the session token for browser callers.
const SessionCookie = "lifeshare_session"

const sessionLocal = "session"

// LoadSession resolves the session token from the cookie or the
// Authorization header and stores the session in the request locals.
// It never rejects a request; the Require* middlewares do that.
func LoadSession(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, fromCookie := sessionToken(c)
		if token == "" {
			return c.Next()
		}

		session, err := authService.ValidateSession(c.UserContext(), token)
		if err != nil {
			logger.Log.WithError(err).WithField("path", c.Path()).Debug("Ignoring invalid session")
			if fromCookie {
				ClearSessionCookie(c)
			}
			return c.Next()
		}

		c.Locals(sessionLocal, session)
		return c.Next()
	}
}

// RequireSession redirects callers without a session to the login page.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentSession(c) == nil {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RequireSessionJSON answers callers without a session with a 401 JSON error.
func RequireSessionJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentSession(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": models.ErrAuthRequired.Error(),
			})
		}
		return c.Next()
	}
}

// CurrentSession returns the session resolved by LoadSession, or nil.
func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionLocal).(*models.Session)
	return session
}

// CurrentUsername returns the identity of the request, or "".
func CurrentUsername(c *fiber.Ctx) string {
	if session := CurrentSession(c); session != nil {
		return session.Username
	}
	return ""
}

// SetSessionCookie stores token in an HttpOnly cookie that expires with the session.
func SetSessionCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// sessionToken prefers the cookie and falls back to "Bearer <token>".
func sessionToken(c *fiber.Ctx) (string, bool) {
	if token := c.Cookies(SessionCookie); token != "" {
		return token, true
	}

	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1]), false
	}
	return "", false
}
