package models

// Domain partitions both the recommendation rows and the lookup tables.
type Domain string

const (
	DomainAnime Domain = "anime"
	DomainGame  Domain = "game"
)

// GameShardCount is the number of steam_games_chunk_N tables. Any given game
// id lives in exactly one shard; the shards are disjoint and together cover
// every game id referenced by a recommendation row.
const GameShardCount = 10

func (d Domain) Valid() bool {
	return d == DomainAnime || d == DomainGame
}

// MediaDetails is the enrichment payload for one title. Resolution never
// fails outward; missing rows degrade to the fallback literals.
type MediaDetails struct {
	Synopsis string `json:"synopsis"`
	ImageURL string `json:"imageUrl"`
}

const (
	FallbackSynopsis = "No synopsis available."
	FallbackImageURL = "default_image_url.png"
)

// Anime maps the read-only animes reference table. Only the columns this
// service reads are declared.
type Anime struct {
	ID       int64  `gorm:"primaryKey"`
	Synopsis string `gorm:"type:text"`
}

func (Anime) TableName() string {
	return "animes"
}

// AnimeMainPicture is the one-to-one image side table for animes.
type AnimeMainPicture struct {
	AnimeID  int64  `gorm:"primaryKey;column:anime_id"`
	LargeURL string `gorm:"column:large_url;type:text"`
}

func (AnimeMainPicture) TableName() string {
	return "anime_main_pictures"
}

// SteamGame is the row shape shared by all ten steam_games_chunk_N shards.
// It carries no TableName; shard access goes through the fan-out query in
// the media repository.
type SteamGame struct {
	ID                  int64  `gorm:"primaryKey"`
	DetailedDescription string `gorm:"column:detailed_description;type:text"`
	HeaderImage         string `gorm:"column:header_image;type:text"`
}
