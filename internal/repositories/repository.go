package repositories

import (
	"recommai/internal/database"
)

type Repository struct {
	User           UserRepository
	Media          MediaRepository
	Recommendation RecommendationRepository
	SearchHistory  SearchHistoryRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:           NewUserRepository(db),
		Media:          NewMediaRepository(db),
		Recommendation: NewRecommendationRepository(db),
		SearchHistory:  NewSearchHistoryRepository(db),
	}
}
