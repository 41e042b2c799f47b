package repositories

import (
	"context"

	"recommai/internal/database"
	. "recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type RecommendationRepository interface {
	// FindByTitle returns the first row whose chosen_title case-insensitively
	// contains the query, or nil when nothing matches. No ordering is applied;
	// ambiguous queries resolve to whichever row the store returns first.
	FindByTitle(ctx context.Context, query string) (*SiameseRecommendation, error)

	// FindByTitleAndDomain additionally requires the row's chosen domain to
	// match the one the user declared at search time.
	FindByTitleAndDomain(ctx context.Context, query string, domain Domain) (*SiameseRecommendation, error)

	CountRows(ctx context.Context) (int64, error)
}

type recommendationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRecommendationRepository(db database.DB) RecommendationRepository {
	return &recommendationRepository{
		db:  db,
		log: logger.New("recommendationRepository"),
	}
}

func (r *recommendationRepository) FindByTitle(
	ctx context.Context,
	query string,
) (*SiameseRecommendation, error) {
	log := r.log.Function("FindByTitle")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row SiameseRecommendation
	result := r.db.SQLWithContext(ctx).
		Where("chosen_title ILIKE ?", "%"+query+"%").
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return nil, log.Err("failed to query recommendation row", result.Error, "query", query)
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &row, nil
}

func (r *recommendationRepository) FindByTitleAndDomain(
	ctx context.Context,
	query string,
	domain Domain,
) (*SiameseRecommendation, error) {
	log := r.log.Function("FindByTitleAndDomain")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row SiameseRecommendation
	result := r.db.SQLWithContext(ctx).
		Where("chosen_title ILIKE ? AND chosen_domain = ?", "%"+query+"%", domain).
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return nil, log.Err(
			"failed to query recommendation row",
			result.Error,
			"query", query,
			"domain", domain,
		)
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &row, nil
}

func (r *recommendationRepository) CountRows(ctx context.Context) (int64, error) {
	log := r.log.Function("CountRows")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.SQLWithContext(ctx).Model(&SiameseRecommendation{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count recommendation rows", err)
	}

	return count, nil
}
