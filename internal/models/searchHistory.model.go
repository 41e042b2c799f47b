package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchHistory records one successful full-results search. Results holds a
// JSON snapshot of the recommendation titles and scores as they were
// returned, so history survives reference-table refreshes.
type SearchHistory struct {
	BaseUUIDModel
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"userId"`
	Query       string         `gorm:"type:text;not null"       json:"query"`
	Domain      Domain         `gorm:"type:text;not null"       json:"domain"`
	ResultCount int            `gorm:"type:int"                 json:"resultCount"`
	Results     datatypes.JSON `gorm:"type:jsonb"               json:"results"`
}
