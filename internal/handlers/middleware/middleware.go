package middleware

import (
	"recommai/config"
	"recommai/internal/database"
	"recommai/internal/repositories"
	"recommai/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB       database.DB
	userRepo repositories.UserRepository
	sessions *services.SessionService
	Config   config.Config
	log      logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:       db,
		userRepo: repos.User,
		sessions: services.Session,
		Config:   config,
		log:      log,
	}
}
