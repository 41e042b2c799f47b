package repositories

import (
	"context"

	"recommai/internal/database"
	. "recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const searchHistoryLimit = 20

type SearchHistoryRepository interface {
	Create(ctx context.Context, entry *SearchHistory) error
	GetRecentByUser(ctx context.Context, userID uuid.UUID) ([]SearchHistory, error)
}

type searchHistoryRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSearchHistoryRepository(db database.DB) SearchHistoryRepository {
	return &searchHistoryRepository{
		db:  db,
		log: logger.New("searchHistoryRepository"),
	}
}

func (r *searchHistoryRepository) Create(ctx context.Context, entry *SearchHistory) error {
	log := r.log.Function("Create")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.SQLWithContext(ctx).Create(entry).Error; err != nil {
		return log.Err("failed to create search history entry", err, "userID", entry.UserID)
	}

	return nil
}

func (r *searchHistoryRepository) GetRecentByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]SearchHistory, error) {
	log := r.log.Function("GetRecentByUser")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var entries []SearchHistory
	err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(searchHistoryLimit).
		Find(&entries).Error
	if err != nil {
		return nil, log.Err("failed to get search history", err, "userID", userID)
	}

	return entries, nil
}
