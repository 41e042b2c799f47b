package middleware

import (
	"context"
	"strings"

	"recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey         AuthContextKey = "user"
	UserKeyFiber    string         = "User"    // Fiber context key (string)
	SessionKeyFiber string         = "Session" // Fiber context key (string)
)

// RequireSession validates the bearer session token, loads the session
// context object and the account behind it, and rejects logged-out sessions.
func (m *Middleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireSession")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Check for Bearer token format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token := tokenParts[1]
		if token == "" {
			log.Info("empty token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}

		session, err := m.sessions.Resolve(c.UserContext(), token)
		if err != nil {
			log.Info("session resolution failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		if session.State == models.StateLoggedOut {
			log.Info("rejected logged-out session", "sessionID", session.ID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		user, err := m.userRepo.GetByEmail(c.UserContext(), session.Email)
		if err != nil {
			log.Info("session user not found", "email", session.Email, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		// Store session and user in Fiber context
		c.Locals(SessionKeyFiber, session)
		c.Locals(UserKeyFiber, user)

		// Add to Go context for controllers (preserve trace ID from TraceID middleware)
		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GetUser extracts the authenticated user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSession extracts the session context object from Fiber context
func GetSession(c *fiber.Ctx) *models.Session {
	session, ok := c.Locals(SessionKeyFiber).(*models.Session)
	if !ok {
		return nil
	}
	return session
}
