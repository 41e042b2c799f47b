package handlers

import (
	"errors"

	"recommai/internal/app"
	authController "recommai/internal/controllers/auth"
	"recommai/internal/handlers/middleware"
	"recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	// Public endpoints
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)

	// Protected endpoints - require an established session
	protected := auth.Group("/", h.middleware.RequireSession())
	protected.Post("/logout", h.logout)
	protected.Get("/me", h.me)
}

// register creates a new account; it never logs the user in.
func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("register")

	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed register request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and password are required.",
		})
	}

	if err := h.authController.Register(c.UserContext(), req); err != nil {
		switch {
		case errors.Is(err, authController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Email and password are required.",
			})
		case errors.Is(err, authController.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Email already exists.",
			})
		default:
			// Raw detail stays in the logs; clients get a generic message
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Database connection failed.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful! Please log in.",
	})
}

// login verifies credentials and returns the session token on success.
func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("login")

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed login request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Please enter email and password.",
		})
	}

	user, session, token, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, authController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Please enter email and password.",
			})
		case errors.Is(err, authController.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Incorrect email or password.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Database connection failed.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful!",
		"token":   token,
		"state":   session.State,
		"user":    user.ToProfile(),
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("logout")

	session := middleware.GetSession(c)
	if session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := h.authController.Logout(c.UserContext(), session); err != nil {
		log.Er("logout failed", err, "sessionID", session.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	session := middleware.GetSession(c)
	if user == nil || session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{
		"user":  user.ToProfile(),
		"state": session.State,
	})
}
