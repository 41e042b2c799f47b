package repositories

import (
	"context"
	"time"

	"recommai/internal/database"
	. "recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

const queryTimeout = 5 * time.Second

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

// Create inserts a new user row. The unique index on email makes duplicate
// registration fail; callers classify the error.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

// GetByEmail looks up a user by exact email match, case-sensitive as stored.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, log.Err("failed to get user by email", err, "email", email)
	}

	return &user, nil
}
