package searchController

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "recommai/internal/models"
	"recommai/internal/repositories"
	"recommai/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommendationRepo struct {
	row *SiameseRecommendation
	err error
}

func (f *fakeRecommendationRepo) FindByTitle(
	ctx context.Context,
	query string,
) (*SiameseRecommendation, error) {
	return f.row, f.err
}

func (f *fakeRecommendationRepo) FindByTitleAndDomain(
	ctx context.Context,
	query string,
	domain Domain,
) (*SiameseRecommendation, error) {
	return f.row, f.err
}

func (f *fakeRecommendationRepo) CountRows(ctx context.Context) (int64, error) {
	return 0, nil
}

// fakeMediaRepo answers with per-id details and falls back like the real one.
type fakeMediaRepo struct {
	details map[int64]MediaDetails
	calls   []int64
}

func (f *fakeMediaRepo) Resolve(ctx context.Context, id int64, domain Domain) MediaDetails {
	f.calls = append(f.calls, id)
	if d, ok := f.details[id]; ok {
		return d
	}
	return MediaDetails{Synopsis: FallbackSynopsis, ImageURL: FallbackImageURL}
}

func (f *fakeMediaRepo) ShardCounts(ctx context.Context) ([]int64, error) {
	return nil, nil
}

func (f *fakeMediaRepo) FindCrossShardDuplicates(ctx context.Context, limit int) ([]int64, error) {
	return nil, nil
}

func (f *fakeMediaRepo) CountAnimes(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeHistoryRepo struct {
	entries   []SearchHistory
	createErr error
	getErr    error
}

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *SearchHistory) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) GetRecentByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]SearchHistory, error) {
	return f.entries, f.getErr
}

func newSearchController(
	rec repositories.RecommendationRepository,
	media repositories.MediaRepository,
	history repositories.SearchHistoryRepository,
) SearchControllerInterface {
	return New(repositories.Repository{
		Recommendation: rec,
		Media:          media,
		SearchHistory:  history,
	}, services.Service{})
}

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func i64(v int64) *int64 { return &v }

func str(v string) *string { return &v }

func fullAnimeRow() *SiameseRecommendation {
	return &SiameseRecommendation{
		ID:           7,
		ChosenID:     21,
		ChosenTitle:  "One Piece (1999)",
		ChosenDomain: DomainAnime,
		RecID1:       i64(20), RecTitle1: str("Naruto"), RecPercent1: dec("0.87"),
		RecID2: i64(269), RecTitle2: str("Bleach"), RecPercent2: dec("0.84"),
		RecID3: i64(6702), RecTitle3: str("Fairy Tail"), RecPercent3: dec("0.81"),
		RecID4: i64(11061), RecTitle4: str("Hunter x Hunter"), RecPercent4: dec("0.79"),
		RecID5: i64(38000), RecTitle5: str("Demon Slayer"), RecPercent5: dec("0.76"),
	}
}

func TestSearchController_FindSimilarTitles(t *testing.T) {
	t.Run("Returns populated slots in order", func(t *testing.T) {
		controller := newSearchController(
			&fakeRecommendationRepo{row: fullAnimeRow()},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		titles, domain, err := controller.FindSimilarTitles(context.Background(), "one piece")

		require.NoError(t, err)
		assert.Equal(t, DomainAnime, domain)
		require.Len(t, titles, 5)
		assert.Equal(t, "Naruto", titles[0].Title)
		assert.InDelta(t, 0.87, titles[0].Similarity, 0.0001)
		assert.Equal(t, "Demon Slayer", titles[4].Title)
	})

	t.Run("Empty query yields no results and no error", func(t *testing.T) {
		controller := newSearchController(
			&fakeRecommendationRepo{row: fullAnimeRow()},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		titles, domain, err := controller.FindSimilarTitles(context.Background(), "")

		require.NoError(t, err)
		assert.Empty(t, titles)
		assert.Empty(t, domain)
	})

	t.Run("No matching row yields no results and no error", func(t *testing.T) {
		controller := newSearchController(
			&fakeRecommendationRepo{},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		titles, domain, err := controller.FindSimilarTitles(context.Background(), "no such title")

		require.NoError(t, err)
		assert.Empty(t, titles)
		assert.Empty(t, domain)
	})

	t.Run("Store failure", func(t *testing.T) {
		controller := newSearchController(
			&fakeRecommendationRepo{err: errors.New("connection refused")},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		_, _, err := controller.FindSimilarTitles(context.Background(), "one piece")

		assert.ErrorIs(t, err, ErrConnection)
	})
}

func TestSearchController_FindFullResults(t *testing.T) {
	t.Run("Enriches input and every slot", func(t *testing.T) {
		media := &fakeMediaRepo{details: map[int64]MediaDetails{
			21: {Synopsis: "Pirates chase the One Piece.", ImageURL: "op.jpg"},
			20: {Synopsis: "A ninja dreams of becoming Hokage.", ImageURL: "naruto.jpg"},
		}}
		controller := newSearchController(
			&fakeRecommendationRepo{row: fullAnimeRow()},
			media,
			&fakeHistoryRepo{},
		)

		bundle, err := controller.FindFullResults(context.Background(), "one piece", DomainAnime)

		require.NoError(t, err)
		assert.Equal(t, DomainAnime, bundle.RecDomain)
		assert.Equal(t, "One Piece (1999)", bundle.InputItem.Title)
		assert.Equal(t, "Pirates chase the One Piece.", bundle.InputItem.Synopsis)
		assert.Equal(t, "op.jpg", bundle.InputItem.ImageURL)

		require.Len(t, bundle.Recommendations, 5)
		assert.Equal(t, "Naruto", bundle.Recommendations[0].Title)
		assert.Equal(t, "A ninja dreams of becoming Hokage.", bundle.Recommendations[0].Synopsis)

		// slots without media rows degrade to fallbacks
		assert.Equal(t, FallbackSynopsis, bundle.Recommendations[1].Synopsis)
		assert.Equal(t, FallbackImageURL, bundle.Recommendations[1].ImageURL)

		// input item first, then each slot in order
		assert.Equal(t, []int64{21, 20, 269, 6702, 11061, 38000}, media.calls)
	})

	t.Run("Partially populated row enriches only real slots", func(t *testing.T) {
		row := &SiameseRecommendation{
			ChosenID:     400,
			ChosenTitle:  "Portal",
			ChosenDomain: DomainGame,
			RecID1:       i64(620), RecTitle1: str("Portal 2"), RecPercent1: dec("0.95"),
		}
		controller := newSearchController(
			&fakeRecommendationRepo{row: row},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		bundle, err := controller.FindFullResults(context.Background(), "portal", DomainGame)

		require.NoError(t, err)
		assert.Equal(t, DomainGame, bundle.RecDomain)
		require.Len(t, bundle.Recommendations, 1)
		assert.Equal(t, "Portal 2", bundle.Recommendations[0].Title)
	})

	t.Run("No matching row", func(t *testing.T) {
		controller := newSearchController(
			&fakeRecommendationRepo{},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		bundle, err := controller.FindFullResults(context.Background(), "no such title", DomainAnime)

		assert.Nil(t, bundle)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Store failure", func(t *testing.T) {
		controller := newSearchController(
			&fakeRecommendationRepo{err: errors.New("connection refused")},
			&fakeMediaRepo{},
			&fakeHistoryRepo{},
		)

		_, err := controller.FindFullResults(context.Background(), "one piece", DomainAnime)

		assert.ErrorIs(t, err, ErrConnection)
	})
}

func TestSearchController_RecordSearch(t *testing.T) {
	t.Run("Writes a titles snapshot", func(t *testing.T) {
		history := &fakeHistoryRepo{}
		controller := newSearchController(
			&fakeRecommendationRepo{},
			&fakeMediaRepo{},
			history,
		)

		userID := uuid.New()
		bundle := &ResultsBundle{
			Recommendations: []ResultItem{
				{Title: "Naruto"},
				{Title: "Bleach"},
			},
		}
		controller.RecordSearch(context.Background(), userID, "one piece", DomainAnime, bundle)

		require.Len(t, history.entries, 1)
		entry := history.entries[0]
		assert.Equal(t, userID, entry.UserID)
		assert.Equal(t, "one piece", entry.Query)
		assert.Equal(t, DomainAnime, entry.Domain)
		assert.Equal(t, 2, entry.ResultCount)
		assert.JSONEq(t, `["Naruto","Bleach"]`, string(entry.Results))
	})

	t.Run("Write failure is swallowed", func(t *testing.T) {
		history := &fakeHistoryRepo{createErr: errors.New("connection refused")}
		controller := newSearchController(
			&fakeRecommendationRepo{},
			&fakeMediaRepo{},
			history,
		)

		controller.RecordSearch(context.Background(), uuid.New(), "one piece", DomainAnime,
			&ResultsBundle{Recommendations: []ResultItem{}})

		assert.Empty(t, history.entries)
	})
}

func TestSearchController_RecentSearches(t *testing.T) {
	history := &fakeHistoryRepo{}
	for i := 0; i < 3; i++ {
		history.entries = append(history.entries, SearchHistory{
			Query:  fmt.Sprintf("query %d", i),
			Domain: DomainAnime,
		})
	}
	controller := newSearchController(&fakeRecommendationRepo{}, &fakeMediaRepo{}, history)

	entries, err := controller.RecentSearches(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Len(t, entries, 3)

	history.getErr = errors.New("connection refused")
	_, err = controller.RecentSearches(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrConnection)
}
