package repositories

import (
	"context"
	"fmt"
	"strings"

	"recommai/internal/database"
	. "recommai/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type MediaRepository interface {
	// Resolve returns the synopsis and image URL for one media item. It
	// never fails outward: any query error or missing row degrades to the
	// fallback literals so the results view always has renderable content.
	Resolve(ctx context.Context, id int64, domain Domain) MediaDetails

	// ShardCounts returns the row count of each game shard in order.
	ShardCounts(ctx context.Context) ([]int64, error)

	// FindCrossShardDuplicates returns game ids present in more than one
	// shard, violating the disjointness invariant the fan-out relies on.
	FindCrossShardDuplicates(ctx context.Context, limit int) ([]int64, error)

	CountAnimes(ctx context.Context) (int64, error)
}

type mediaRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMediaRepository(db database.DB) MediaRepository {
	return &mediaRepository{
		db:  db,
		log: logger.New("mediaRepository"),
	}
}

// gameShardUnion probes all ten shards in a single round-trip instead of
// ten sequential point-reads. At most one shard yields a row for a given
// id, so the outer select coalesces to the single match.
var gameShardUnion = buildGameShardUnion()

func buildGameShardUnion() string {
	parts := make([]string, 0, GameShardCount)
	for i := 1; i <= GameShardCount; i++ {
		parts = append(parts, fmt.Sprintf(
			"SELECT id, detailed_description, header_image FROM steam_games_chunk_%d WHERE id = ?", i,
		))
	}
	return "SELECT detailed_description, header_image FROM (" +
		strings.Join(parts, " UNION ALL ") + ") AS all_games LIMIT 1"
}

func (r *mediaRepository) Resolve(ctx context.Context, id int64, domain Domain) MediaDetails {
	details := MediaDetails{
		Synopsis: FallbackSynopsis,
		ImageURL: FallbackImageURL,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	switch domain {
	case DomainAnime:
		r.resolveAnime(ctx, id, &details)
	case DomainGame:
		r.resolveGame(ctx, id, &details)
	default:
		r.log.Function("Resolve").Warn("unknown media domain", "domain", domain, "id", id)
	}

	return details
}

// resolveAnime runs two independent single-row lookups; each falls back on
// its own if the row is missing or the query fails.
func (r *mediaRepository) resolveAnime(ctx context.Context, id int64, details *MediaDetails) {
	log := r.log.Function("resolveAnime")

	var anime Anime
	result := r.db.SQLWithContext(ctx).Limit(1).Find(&anime, "id = ?", id)
	if result.Error != nil {
		log.Er("anime synopsis lookup failed", result.Error, "id", id)
	} else if result.RowsAffected > 0 && anime.Synopsis != "" {
		details.Synopsis = anime.Synopsis
	}

	var picture AnimeMainPicture
	result = r.db.SQLWithContext(ctx).Limit(1).Find(&picture, "anime_id = ?", id)
	if result.Error != nil {
		log.Er("anime picture lookup failed", result.Error, "id", id)
	} else if result.RowsAffected > 0 && picture.LargeURL != "" {
		details.ImageURL = picture.LargeURL
	}
}

func (r *mediaRepository) resolveGame(ctx context.Context, id int64, details *MediaDetails) {
	log := r.log.Function("resolveGame")

	args := make([]interface{}, GameShardCount)
	for i := range args {
		args[i] = id
	}

	var game SteamGame
	result := r.db.SQLWithContext(ctx).Raw(gameShardUnion, args...).Scan(&game)
	if result.Error != nil {
		log.Er("game shard fan-out failed", result.Error, "id", id)
		return
	}

	if result.RowsAffected == 0 {
		return
	}

	if game.DetailedDescription != "" {
		details.Synopsis = game.DetailedDescription
	}
	if game.HeaderImage != "" {
		details.ImageURL = game.HeaderImage
	}
}

func (r *mediaRepository) ShardCounts(ctx context.Context) ([]int64, error) {
	log := r.log.Function("ShardCounts")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	counts := make([]int64, GameShardCount)
	for i := 1; i <= GameShardCount; i++ {
		query := fmt.Sprintf("SELECT COUNT(*) FROM steam_games_chunk_%d", i)
		if err := r.db.SQLWithContext(ctx).Raw(query).Scan(&counts[i-1]).Error; err != nil {
			return nil, log.Err("failed to count game shard", err, "shard", i)
		}
	}

	return counts, nil
}

func (r *mediaRepository) FindCrossShardDuplicates(ctx context.Context, limit int) ([]int64, error) {
	log := r.log.Function("FindCrossShardDuplicates")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	parts := make([]string, 0, GameShardCount)
	for i := 1; i <= GameShardCount; i++ {
		parts = append(parts, fmt.Sprintf("SELECT id FROM steam_games_chunk_%d", i))
	}
	query := "SELECT id FROM (" + strings.Join(parts, " UNION ALL ") +
		") AS all_ids GROUP BY id HAVING COUNT(*) > 1 LIMIT ?"

	var duplicates []int64
	if err := r.db.SQLWithContext(ctx).Raw(query, limit).Scan(&duplicates).Error; err != nil {
		return nil, log.Err("failed to check shard disjointness", err)
	}

	return duplicates, nil
}

func (r *mediaRepository) CountAnimes(ctx context.Context) (int64, error) {
	log := r.log.Function("CountAnimes")

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.SQLWithContext(ctx).Model(&Anime{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count animes", err)
	}

	return count, nil
}
