package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptrInt64(v int64) *int64 {
	return &v
}

func ptrString(v string) *string {
	return &v
}

func ptrDecimal(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestSiameseRecommendation_Recommendations(t *testing.T) {
	t.Run("All slots empty", func(t *testing.T) {
		row := &SiameseRecommendation{
			ChosenID:     1,
			ChosenTitle:  "One Piece (1999)",
			ChosenDomain: DomainAnime,
		}

		assert.Empty(t, row.Recommendations())
	})

	t.Run("Single populated slot", func(t *testing.T) {
		row := &SiameseRecommendation{
			ChosenID:     1,
			ChosenTitle:  "One Piece (1999)",
			ChosenDomain: DomainAnime,
			RecID1:       ptrInt64(42),
			RecTitle1:    ptrString("Naruto"),
			RecPercent1:  ptrDecimal("0.87"),
		}

		slots := row.Recommendations()

		assert.Len(t, slots, 1)
		assert.Equal(t, int64(42), slots[0].ID)
		assert.Equal(t, "Naruto", slots[0].Title)
		assert.InDelta(t, 0.87, slots[0].Similarity(), 0.0001)
	})

	t.Run("Partially populated slot is skipped", func(t *testing.T) {
		row := &SiameseRecommendation{
			RecID1:      ptrInt64(42),
			RecTitle1:   ptrString("Naruto"),
			RecPercent1: ptrDecimal("0.87"),

			// id without title or percent
			RecID2: ptrInt64(43),

			// title and percent without id
			RecTitle3:   ptrString("Bleach"),
			RecPercent3: ptrDecimal("0.8"),

			RecID4:      ptrInt64(44),
			RecTitle4:   ptrString("Fairy Tail"),
			RecPercent4: ptrDecimal("0.75"),
		}

		slots := row.Recommendations()

		assert.Len(t, slots, 2)
		assert.Equal(t, "Naruto", slots[0].Title)
		assert.Equal(t, "Fairy Tail", slots[1].Title)
	})

	t.Run("Five populated slots keep order", func(t *testing.T) {
		row := &SiameseRecommendation{
			RecID1: ptrInt64(1), RecTitle1: ptrString("A"), RecPercent1: ptrDecimal("0.9"),
			RecID2: ptrInt64(2), RecTitle2: ptrString("B"), RecPercent2: ptrDecimal("0.8"),
			RecID3: ptrInt64(3), RecTitle3: ptrString("C"), RecPercent3: ptrDecimal("0.7"),
			RecID4: ptrInt64(4), RecTitle4: ptrString("D"), RecPercent4: ptrDecimal("0.6"),
			RecID5: ptrInt64(5), RecTitle5: ptrString("E"), RecPercent5: ptrDecimal("0.5"),
		}

		slots := row.Recommendations()

		assert.Len(t, slots, 5)
		for i, expected := range []string{"A", "B", "C", "D", "E"} {
			assert.Equal(t, expected, slots[i].Title)
			assert.Equal(t, int64(i+1), slots[i].ID)
		}
	})
}

func TestSiameseRecommendation_RecDomain(t *testing.T) {
	row := &SiameseRecommendation{ChosenDomain: DomainGame}
	assert.Equal(t, DomainGame, row.RecDomain())
}

func TestDomain_Valid(t *testing.T) {
	assert.True(t, DomainAnime.Valid())
	assert.True(t, DomainGame.Valid())
	assert.False(t, Domain("").Valid())
	assert.False(t, Domain("movie").Valid())
}
