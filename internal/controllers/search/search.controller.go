package searchController

import (
	"context"
	"encoding/json"
	"errors"

	. "recommai/internal/models"
	"recommai/internal/repositories"
	"recommai/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("no recommendations found for that title")
	ErrConnection = errors.New("database connection failed")
)

// SearchController resolves free-text title queries against the precomputed
// similarity table and enriches matches through the media lookup.
type SearchController struct {
	recommendationRepo repositories.RecommendationRepository
	mediaRepo          repositories.MediaRepository
	historyRepo        repositories.SearchHistoryRepository
	log                logger.Logger
}

type SearchControllerInterface interface {
	FindSimilarTitles(ctx context.Context, query string) ([]SimilarTitle, Domain, error)
	FindFullResults(ctx context.Context, query string, domain Domain) (*ResultsBundle, error)
	RecordSearch(ctx context.Context, userID uuid.UUID, query string, domain Domain, bundle *ResultsBundle)
	RecentSearches(ctx context.Context, userID uuid.UUID) ([]SearchHistory, error)
}

func New(repos repositories.Repository, services services.Service) SearchControllerInterface {
	return &SearchController{
		recommendationRepo: repos.Recommendation,
		mediaRepo:          repos.Media,
		historyRepo:        repos.SearchHistory,
		log:                logger.New("searchController"),
	}
}

// FindSimilarTitles returns the populated slots of the first matching row
// as bare title/score pairs, without media enrichment. A query matching
// nothing yields an empty slice and an empty domain, not an error.
func (c *SearchController) FindSimilarTitles(
	ctx context.Context,
	query string,
) ([]SimilarTitle, Domain, error) {
	log := c.log.TraceFromContext(ctx).Function("FindSimilarTitles")

	if query == "" {
		return []SimilarTitle{}, "", nil
	}

	row, err := c.recommendationRepo.FindByTitle(ctx, query)
	if err != nil {
		log.Er("similar titles lookup failed", err, "query", query)
		return nil, "", ErrConnection
	}

	if row == nil {
		return []SimilarTitle{}, "", nil
	}

	slots := row.Recommendations()
	titles := make([]SimilarTitle, 0, len(slots))
	for _, slot := range slots {
		titles = append(titles, SimilarTitle{
			Title:      slot.Title,
			Similarity: slot.Similarity(),
		})
	}

	return titles, row.ChosenDomain, nil
}

// FindFullResults matches the query and the user's declared domain against
// one recommendation row and builds the full results bundle: the input item
// plus every populated slot, each enriched with synopsis and image. The six
// media resolutions are independently fallback-safe, so a matched row always
// produces a renderable bundle.
func (c *SearchController) FindFullResults(
	ctx context.Context,
	query string,
	domain Domain,
) (*ResultsBundle, error) {
	log := c.log.TraceFromContext(ctx).Function("FindFullResults")

	row, err := c.recommendationRepo.FindByTitleAndDomain(ctx, query, domain)
	if err != nil {
		log.Er("full results lookup failed", err, "query", query, "domain", domain)
		return nil, ErrConnection
	}

	if row == nil {
		log.Info("no recommendation row matched", "query", query, "domain", domain)
		return nil, ErrNotFound
	}

	inputDetails := c.mediaRepo.Resolve(ctx, row.ChosenID, domain)
	bundle := &ResultsBundle{
		InputItem: ResultItem{
			Title:    row.ChosenTitle,
			Synopsis: inputDetails.Synopsis,
			ImageURL: inputDetails.ImageURL,
		},
		Recommendations: []ResultItem{},
		RecDomain:       row.RecDomain(),
	}

	for _, slot := range row.Recommendations() {
		details := c.mediaRepo.Resolve(ctx, slot.ID, row.RecDomain())
		bundle.Recommendations = append(bundle.Recommendations, ResultItem{
			Title:    slot.Title,
			Synopsis: details.Synopsis,
			ImageURL: details.ImageURL,
		})
	}

	log.Info(
		"full results assembled",
		"query", query,
		"domain", domain,
		"chosenTitle", row.ChosenTitle,
		"recommendations", len(bundle.Recommendations),
	)
	return bundle, nil
}

// RecordSearch appends a history row for a successful search. History is
// best-effort; a write failure is logged and swallowed so it never breaks
// the results flow.
func (c *SearchController) RecordSearch(
	ctx context.Context,
	userID uuid.UUID,
	query string,
	domain Domain,
	bundle *ResultsBundle,
) {
	log := c.log.TraceFromContext(ctx).Function("RecordSearch")

	snapshot := make([]string, 0, len(bundle.Recommendations))
	for _, rec := range bundle.Recommendations {
		snapshot = append(snapshot, rec.Title)
	}

	results, err := json.Marshal(snapshot)
	if err != nil {
		log.Er("failed to marshal history snapshot", err, "userID", userID)
		return
	}

	entry := &SearchHistory{
		UserID:      userID,
		Query:       query,
		Domain:      domain,
		ResultCount: len(bundle.Recommendations),
		Results:     results,
	}

	if err := c.historyRepo.Create(ctx, entry); err != nil {
		log.Er("failed to record search history", err, "userID", userID)
	}
}

func (c *SearchController) RecentSearches(
	ctx context.Context,
	userID uuid.UUID,
) ([]SearchHistory, error) {
	log := c.log.TraceFromContext(ctx).Function("RecentSearches")

	entries, err := c.historyRepo.GetRecentByUser(ctx, userID)
	if err != nil {
		log.Er("failed to load search history", err, "userID", userID)
		return nil, ErrConnection
	}

	return entries, nil
}
