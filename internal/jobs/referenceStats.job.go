package jobs

import (
	"context"
	"time"

	"recommai/internal/database"
	"recommai/internal/models"
	"recommai/internal/repositories"
	"recommai/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	REFERENCE_STATS_CACHE_KEY = "reference:stats"
	REFERENCE_STATS_EXPIRY    = 48 * time.Hour
	duplicateReportLimit      = 20
)

// ReferenceStats is the nightly snapshot of the read-only reference tables.
// ShardOverlaps lists game ids found in more than one shard; a non-empty
// list means the disjointness invariant the fan-out query relies on is
// broken upstream.
type ReferenceStats struct {
	RecommendationRows int64     `json:"recommendationRows"`
	AnimeRows          int64     `json:"animeRows"`
	GameShardRows      []int64   `json:"gameShardRows"`
	ShardOverlaps      []int64   `json:"shardOverlaps"`
	CollectedAt        time.Time `json:"collectedAt"`
}

// ReferenceStatsJob audits the externally populated reference tables and
// caches the snapshot for the admin endpoint.
type ReferenceStatsJob struct {
	recommendationRepo repositories.RecommendationRepository
	mediaRepo          repositories.MediaRepository
	cache              database.CacheClient
	log                logger.Logger
	schedule           services.Schedule
}

func NewReferenceStatsJob(
	repos repositories.Repository,
	cache database.CacheClient,
	schedule services.Schedule,
) *ReferenceStatsJob {
	log := logger.New("referenceStatsJob")
	log.Info("Creating new reference stats job", "schedule", schedule)

	return &ReferenceStatsJob{
		recommendationRepo: repos.Recommendation,
		mediaRepo:          repos.Media,
		cache:              cache,
		log:                log,
		schedule:           schedule,
	}
}

func (j *ReferenceStatsJob) Name() string {
	return "NightlyReferenceStats"
}

func (j *ReferenceStatsJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *ReferenceStatsJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")
	log.Info("Starting reference table audit")

	stats := ReferenceStats{CollectedAt: time.Now().UTC()}

	var err error
	stats.RecommendationRows, err = j.recommendationRepo.CountRows(ctx)
	if err != nil {
		return log.Err("failed to count recommendation rows", err)
	}

	stats.AnimeRows, err = j.mediaRepo.CountAnimes(ctx)
	if err != nil {
		return log.Err("failed to count animes", err)
	}

	stats.GameShardRows, err = j.mediaRepo.ShardCounts(ctx)
	if err != nil {
		return log.Err("failed to count game shards", err)
	}

	stats.ShardOverlaps, err = j.mediaRepo.FindCrossShardDuplicates(ctx, duplicateReportLimit)
	if err != nil {
		return log.Err("failed to check shard disjointness", err)
	}

	if len(stats.ShardOverlaps) > 0 {
		log.Warn(
			"game shards are not disjoint, fan-out lookups may return arbitrary rows",
			"overlappingIDs", stats.ShardOverlaps,
		)
	}

	err = database.NewCacheBuilder(j.cache, REFERENCE_STATS_CACHE_KEY).
		WithStruct(stats).
		WithTTL(REFERENCE_STATS_EXPIRY).
		WithContext(ctx).
		Set()
	if err != nil {
		return log.Err("failed to cache reference stats", err)
	}

	log.Info(
		"Reference table audit completed",
		"recommendationRows", stats.RecommendationRows,
		"animeRows", stats.AnimeRows,
		"shards", models.GameShardCount,
	)
	return nil
}
