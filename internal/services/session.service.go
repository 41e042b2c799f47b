package services

import (
	"context"
	"errors"
	"time"

	"recommai/config"
	"recommai/internal/database"
	. "recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SESSION_CACHE_PREFIX = "session:"
	SESSION_EXPIRY       = 24 * time.Hour
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid session token")
)

// SessionService owns the session context objects: it issues signed tokens
// referencing a session stored in the Session cache DB, and persists state
// machine transitions applied by the handlers.
type SessionService struct {
	cache  database.CacheClient
	secret []byte
	log    logger.Logger
}

func NewSessionService(db database.DB, config config.Config) *SessionService {
	return &SessionService{
		cache:  db.Cache.Session,
		secret: []byte(config.SessionSecret),
		log:    logger.New("SessionService"),
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Establish creates a session for an authenticated user and returns the
// session plus the signed token the client presents on later requests.
func (s *SessionService) Establish(ctx context.Context, email string) (*Session, string, error) {
	log := s.log.Function("Establish")

	session := NewSession(email)

	if err := s.Save(ctx, session); err != nil {
		return nil, "", err
	}

	claims := sessionClaims{
		SessionID: session.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SESSION_EXPIRY)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", log.Err("failed to sign session token", err, "email", email)
	}

	log.Info("session established", "sessionID", session.ID, "email", email)
	return session, token, nil
}

// Resolve validates a token and loads the session it references.
func (s *SessionService) Resolve(ctx context.Context, token string) (*Session, error) {
	sessionID, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, sessionID)
}

// ParseToken verifies the signature and extracts the session ID.
func (s *SessionService) ParseToken(token string) (uuid.UUID, error) {
	log := s.log.Function("ParseToken")

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		log.Warn("session token rejected", "error", err)
		return uuid.Nil, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		log.Warn("session token carries malformed session ID", "error", err)
		return uuid.Nil, ErrInvalidToken
	}

	return sessionID, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	log := s.log.Function("Get")

	var session Session
	found, err := database.NewCacheBuilder(s.cache, SESSION_CACHE_PREFIX+sessionID.String()).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return nil, log.Err("failed to read session", err, "sessionID", sessionID)
	}

	if !found {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (s *SessionService) Save(ctx context.Context, session *Session) error {
	log := s.log.Function("Save")

	err := database.NewCacheBuilder(s.cache, SESSION_CACHE_PREFIX+session.ID.String()).
		WithStruct(session).
		WithTTL(SESSION_EXPIRY).
		WithContext(ctx).
		Set()
	if err != nil {
		return log.Err("failed to save session", err, "sessionID", session.ID)
	}

	return nil
}

// Destroy removes the session; the token becomes useless even before expiry.
func (s *SessionService) Destroy(ctx context.Context, sessionID uuid.UUID) error {
	log := s.log.Function("Destroy")

	err := database.NewCacheBuilder(s.cache, SESSION_CACHE_PREFIX+sessionID.String()).
		WithContext(ctx).
		Delete()
	if err != nil {
		return log.Err("failed to destroy session", err, "sessionID", sessionID)
	}

	log.Info("session destroyed", "sessionID", sessionID)
	return nil
}
