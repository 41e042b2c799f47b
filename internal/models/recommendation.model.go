package models

import (
	"github.com/shopspring/decimal"
)

// SiameseRecommendation maps one precomputed row of the read-only
// siamese_recommendations table: one chosen input title plus five fixed
// recommendation slots. The table is produced by an out-of-band batch
// process; this service only reads it.
//
// Slots are nullable. A slot counts as populated only when id, title, and
// percent are all present; consumers go through Recommendations() instead
// of touching the positional columns.
type SiameseRecommendation struct {
	ID           int64  `gorm:"primaryKey"`
	ChosenID     int64  `gorm:"column:chosen_id"`
	ChosenTitle  string `gorm:"column:chosen_title;type:text"`
	ChosenDomain Domain `gorm:"column:chosen_domain;type:text"`

	RecID1      *int64           `gorm:"column:rec_id_1"`
	RecTitle1   *string          `gorm:"column:rec_title_1;type:text"`
	RecPercent1 *decimal.Decimal `gorm:"column:rec_percent_1;type:numeric"`

	RecID2      *int64           `gorm:"column:rec_id_2"`
	RecTitle2   *string          `gorm:"column:rec_title_2;type:text"`
	RecPercent2 *decimal.Decimal `gorm:"column:rec_percent_2;type:numeric"`

	RecID3      *int64           `gorm:"column:rec_id_3"`
	RecTitle3   *string          `gorm:"column:rec_title_3;type:text"`
	RecPercent3 *decimal.Decimal `gorm:"column:rec_percent_3;type:numeric"`

	RecID4      *int64           `gorm:"column:rec_id_4"`
	RecTitle4   *string          `gorm:"column:rec_title_4;type:text"`
	RecPercent4 *decimal.Decimal `gorm:"column:rec_percent_4;type:numeric"`

	RecID5      *int64           `gorm:"column:rec_id_5"`
	RecTitle5   *string          `gorm:"column:rec_title_5;type:text"`
	RecPercent5 *decimal.Decimal `gorm:"column:rec_percent_5;type:numeric"`
}

func (SiameseRecommendation) TableName() string {
	return "siamese_recommendations"
}

// RecDomain is the domain all five recommendation slots belong to. A row
// recommends within a single target domain, named by the chosen_domain
// column.
func (r *SiameseRecommendation) RecDomain() Domain {
	return r.ChosenDomain
}

// RecommendationSlot is one populated recommendation candidate.
type RecommendationSlot struct {
	ID      int64
	Title   string
	Percent decimal.Decimal
}

// Similarity returns the score as a float in [0,1] for response payloads.
func (s RecommendationSlot) Similarity() float64 {
	return s.Percent.InexactFloat64()
}

// Recommendations unpacks the populated slots in order, skipping any slot
// with a missing id, title, or percent.
func (r *SiameseRecommendation) Recommendations() []RecommendationSlot {
	raw := []struct {
		id      *int64
		title   *string
		percent *decimal.Decimal
	}{
		{r.RecID1, r.RecTitle1, r.RecPercent1},
		{r.RecID2, r.RecTitle2, r.RecPercent2},
		{r.RecID3, r.RecTitle3, r.RecPercent3},
		{r.RecID4, r.RecTitle4, r.RecPercent4},
		{r.RecID5, r.RecTitle5, r.RecPercent5},
	}

	slots := make([]RecommendationSlot, 0, len(raw))
	for _, slot := range raw {
		if slot.id == nil || slot.title == nil || slot.percent == nil {
			continue
		}
		slots = append(slots, RecommendationSlot{
			ID:      *slot.id,
			Title:   *slot.title,
			Percent: *slot.percent,
		})
	}

	return slots
}

// SimilarTitle is the light search result: a candidate title and its
// similarity score, without media enrichment.
type SimilarTitle struct {
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// ResultItem is one fully enriched entry on the results page.
type ResultItem struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	ImageURL string `json:"imageUrl"`
}

// ResultsBundle is everything the results view needs: the matched input
// item and its enriched recommendations, plus the domain the
// recommendations belong to.
type ResultsBundle struct {
	InputItem       ResultItem   `json:"inputItem"`
	Recommendations []ResultItem `json:"recommendations"`
	RecDomain       Domain       `json:"recDomain"`
}
