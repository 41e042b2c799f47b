package services

import (
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(secret string) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		log:    logger.New("SessionService"),
	}
}

func signTestToken(t *testing.T, secret, sid string, expiresAt time.Time) string {
	claims := sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestSessionService_ParseToken(t *testing.T) {
	service := newTestSessionService("test-secret")

	t.Run("Valid token", func(t *testing.T) {
		sessionID := uuid.New()
		token := signTestToken(t, "test-secret", sessionID.String(), time.Now().Add(time.Hour))

		parsed, err := service.ParseToken(token)

		require.NoError(t, err)
		assert.Equal(t, sessionID, parsed)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token := signTestToken(t, "other-secret", uuid.New().String(), time.Now().Add(time.Hour))

		_, err := service.ParseToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := signTestToken(t, "test-secret", uuid.New().String(), time.Now().Add(-time.Hour))

		_, err := service.ParseToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Malformed token", func(t *testing.T) {
		_, err := service.ParseToken("not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Session ID is not a UUID", func(t *testing.T) {
		token := signTestToken(t, "test-secret", "not-a-uuid", time.Now().Add(time.Hour))

		_, err := service.ParseToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
