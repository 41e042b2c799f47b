package authController

import (
	"context"
	"errors"

	. "recommai/internal/models"
	"recommai/internal/repositories"
	"recommai/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/gorm"
)

// Error kinds surfaced by the credential store. Handlers translate these to
// user-facing messages; raw store errors stay in the logs.
var (
	ErrValidation         = errors.New("email and password are required")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrConnection         = errors.New("database connection failed")
)

// AuthController handles credential storage and verification
type AuthController struct {
	userRepo repositories.UserRepository
	sessions *services.SessionService
	log      logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*User, *Session, string, error)
	Logout(ctx context.Context, session *Session) error
}

func New(repos repositories.Repository, services services.Service) AuthControllerInterface {
	return &AuthController{
		userRepo: repos.User,
		sessions: services.Session,
		log:      logger.New("authController"),
	}
}

// Register creates a new account. The password is hashed with a fresh salt
// on every call; success does not log the user in.
func (c *AuthController) Register(ctx context.Context, req RegisterRequest) error {
	log := c.log.TraceFromContext(ctx).Function("Register")

	if req.Email == "" || req.Password == "" {
		return ErrValidation
	}

	user := &User{Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		log.Er("failed to hash password", err)
		return ErrConnection
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Info("registration rejected, email already exists", "email", req.Email)
			return ErrDuplicateEmail
		}
		log.Er("registration failed", err, "email", req.Email)
		return ErrConnection
	}

	log.Info("user registered", "userID", user.ID, "email", user.Email)
	return nil
}

// Login verifies credentials and establishes a session on success. An
// unknown email and a wrong password produce the same error so the response
// never reveals which field was wrong.
func (c *AuthController) Login(
	ctx context.Context,
	req LoginRequest,
) (*User, *Session, string, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	if req.Email == "" || req.Password == "" {
		return nil, nil, "", ErrValidation
	}

	user, err := c.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info("login rejected, unknown email", "email", req.Email)
			return nil, nil, "", ErrInvalidCredentials
		}
		log.Er("login lookup failed", err, "email", req.Email)
		return nil, nil, "", ErrConnection
	}

	if !user.CheckPassword(req.Password) {
		log.Info("login rejected, wrong password", "email", req.Email)
		return nil, nil, "", ErrInvalidCredentials
	}

	session, token, err := c.sessions.Establish(ctx, user.Email)
	if err != nil {
		log.Er("failed to establish session", err, "email", req.Email)
		return nil, nil, "", ErrConnection
	}

	log.Info("user logged in", "userID", user.ID, "email", user.Email)
	return user, session, token, nil
}

// Logout transitions the session to logged out and removes it from the
// session store.
func (c *AuthController) Logout(ctx context.Context, session *Session) error {
	log := c.log.TraceFromContext(ctx).Function("Logout")

	if err := session.Apply(EventLogout, "", ""); err != nil {
		return err
	}

	if err := c.sessions.Destroy(ctx, session.ID); err != nil {
		log.Er("failed to destroy session", err, "sessionID", session.ID)
		return ErrConnection
	}

	return nil
}
