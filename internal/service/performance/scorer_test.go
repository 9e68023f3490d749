package performance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
)

const defaultGradeTable = "60:D,75:C,85:B,:A"

func score(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scorePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func scoreRow(indicatorID, weight string, self, appraiser *decimal.Decimal) performance.IndicatorScore {
	return performance.IndicatorScore{
		IndicatorID:    indicatorID,
		Weight:         score(weight),
		SelfScore:      self,
		AppraiserScore: appraiser,
	}
}

func TestParseGradeBands(t *testing.T) {
	t.Run("full table", func(t *testing.T) {
		bands, err := ParseGradeBands(defaultGradeTable)
		require.NoError(t, err)
		require.Len(t, bands, 4)
		assert.Nil(t, bands[3].UpTo)
		assert.True(t, bands[0].UpTo.Equal(score("60")))
		assert.Equal(t, "A", bands[3].Grade)
	})

	t.Run("single unbounded band", func(t *testing.T) {
		bands, err := ParseGradeBands(":PASS")
		require.NoError(t, err)
		require.Len(t, bands, 1)
		assert.Nil(t, bands[0].UpTo)
	})

	invalid := []struct {
		name  string
		table string
	}{
		{"empty table", ""},
		{"missing grade", "60:,75:C,:A"},
		{"descending bounds", "75:C,60:D,:A"},
		{"unbounded band not last", ":A,60:D"},
		{"last band bounded", "60:D,75:C"},
		{"negative bound", "-5:D,:A"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGradeBands(tt.table)
			assert.ErrorIs(t, err, performance.ErrGradeBandsInvalid)
		})
	}
}

func TestGradeFor(t *testing.T) {
	bands, err := ParseGradeBands(defaultGradeTable)
	require.NoError(t, err)

	tests := []struct {
		score string
		grade string
	}{
		{"0", "D"},
		{"59.99", "D"},
		{"60", "C"},
		{"74.99", "C"},
		{"75", "B"},
		{"85", "A"},
		{"100", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			assert.Equal(t, tt.grade, GradeFor(score(tt.score), bands))
		})
	}
}

func TestWeightedScore(t *testing.T) {
	t.Run("weights scale each row", func(t *testing.T) {
		rows := []performance.IndicatorScore{
			scoreRow("i-1", "60", scorePtr("80"), nil),
			scoreRow("i-2", "40", scorePtr("90"), nil),
		}
		result := WeightedScore(rows, func(r performance.IndicatorScore) *decimal.Decimal {
			return r.SelfScore
		})
		require.NotNil(t, result)
		assert.Equal(t, "84.00", result.StringFixed(2))
	})

	t.Run("unscored rows drop out with their weight", func(t *testing.T) {
		rows := []performance.IndicatorScore{
			scoreRow("i-1", "60", scorePtr("80"), nil),
			scoreRow("i-2", "40", nil, nil),
		}
		result := WeightedScore(rows, func(r performance.IndicatorScore) *decimal.Decimal {
			return r.SelfScore
		})
		require.NotNil(t, result)
		assert.Equal(t, "80.00", result.StringFixed(2))
	})

	t.Run("nothing scored yields nil", func(t *testing.T) {
		rows := []performance.IndicatorScore{scoreRow("i-1", "100", nil, nil)}
		result := WeightedScore(rows, func(r performance.IndicatorScore) *decimal.Decimal {
			return r.SelfScore
		})
		assert.Nil(t, result)
	})
}

func TestFinalizeScores(t *testing.T) {
	t.Run("appraiser score wins over self score", func(t *testing.T) {
		rows := []performance.IndicatorScore{
			scoreRow("i-1", "50", scorePtr("90"), scorePtr("70")),
			scoreRow("i-2", "50", scorePtr("80"), nil),
		}
		finalized, total := FinalizeScores(rows)
		require.NotNil(t, total)
		assert.Equal(t, "75.00", total.StringFixed(2))
		assert.True(t, finalized[0].FinalScore.Equal(score("70")))
		assert.True(t, finalized[1].FinalScore.Equal(score("80")))
	})

	t.Run("fully unscored appraisal has no final score", func(t *testing.T) {
		rows := []performance.IndicatorScore{scoreRow("i-1", "100", nil, nil)}
		finalized, total := FinalizeScores(rows)
		assert.Nil(t, total)
		assert.Nil(t, finalized[0].FinalScore)
	})
}
