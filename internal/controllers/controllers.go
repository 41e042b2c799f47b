package controllers

import (
	"recommai/config"
	"recommai/internal/database"
	"recommai/internal/repositories"
	"recommai/internal/services"

	authController "recommai/internal/controllers/auth"
	searchController "recommai/internal/controllers/search"
)

type Controllers struct {
	Auth   authController.AuthControllerInterface
	Search searchController.SearchControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:   authController.New(repos, services),
		Search: searchController.New(repos, services),
	}
}
